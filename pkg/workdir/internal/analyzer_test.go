package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/blob"
	"github.com/utkarsh5026/gitproject/pkg/objects/tree"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

func newStore(t *testing.T) *store.FileObjectStore {
	t.Helper()
	mfs := fsio.NewMemoryFS()
	s := store.NewFileObjectStore(mfs, scpath.SourcePath("/w/.gitproject"), objects.CodecNone)
	require.NoError(t, s.Initialize())
	return s
}

func putBlob(t *testing.T, s store.ObjectStore, content string) objects.Fingerprint {
	t.Helper()
	fp, e := blob.Store(s, []byte(content))
	require.NoError(t, e)
	return fp
}

type entrySpec struct {
	kind objects.ObjectType
	fp   objects.Fingerprint
	name string
}

func putTree(t *testing.T, s store.ObjectStore, link objects.Fingerprint, entries ...entrySpec) objects.Fingerprint {
	t.Helper()
	tr := tree.NewTree()
	for _, e := range entries {
		require.NoError(t, tr.AddEntry(e.kind, e.fp, e.name))
	}
	if !link.IsZero() {
		tr.SetPreviousTreeLink(link)
	}
	fp, e := tr.Write(s)
	require.NoError(t, e)
	return fp
}

func summarize(plan *Plan) map[string]string {
	out := make(map[string]string, len(plan.Operations))
	for _, op := range plan.Operations {
		if op.Action == ActionCreateDir {
			out[op.Path.String()] = "/"
		} else {
			out[op.Path.String()] = string(op.Content)
		}
	}
	return out
}

func TestPlanTree_FollowsLinks(t *testing.T) {
	s := newStore(t)
	old := putTree(t, s, "",
		entrySpec{objects.BlobType, putBlob(t, s, "one"), "f1"},
		entrySpec{objects.BlobType, putBlob(t, s, "two"), "f2"},
	)
	newer := putTree(t, s, old,
		entrySpec{objects.BlobType, putBlob(t, s, "one v2"), "f1"},
		entrySpec{objects.BlobType, putBlob(t, s, "three"), "f3"},
	)

	plan, e := NewAnalyzer(s).PlanTree(context.Background(), newer)
	require.NoError(t, e)

	assert.Equal(t, newer, plan.Tree)
	assert.Equal(t, map[string]string{"f1": "one v2", "f2": "two", "f3": "three"}, summarize(plan))
	files, dirs := plan.Counts()
	assert.Equal(t, 3, files)
	assert.Equal(t, 0, dirs)
}

func TestPlanTree_NestedNamesAndSubtrees(t *testing.T) {
	s := newStore(t)
	inner := putTree(t, s, "",
		entrySpec{objects.BlobType, putBlob(t, s, "x"), "x.txt"},
	)
	root := putTree(t, s, "",
		entrySpec{objects.TreeType, inner, "pkg"},
		entrySpec{objects.BlobType, putBlob(t, s, "readme"), "docs/README"},
	)

	plan, e := NewAnalyzer(s).PlanTree(context.Background(), root)
	require.NoError(t, e)

	assert.Equal(t, map[string]string{
		"docs/README": "readme",
		"pkg":         "/",
		"pkg/x.txt":   "x",
	}, summarize(plan))

	var order []string
	for _, op := range plan.Operations {
		order = append(order, op.Path.String())
	}
	assert.Equal(t, []string{"docs/README", "pkg", "pkg/x.txt"}, order)
}

func TestPlanTree_NewerEntryReplacesInheritedShape(t *testing.T) {
	s := newStore(t)
	oldDir := putTree(t, s, "",
		entrySpec{objects.BlobType, putBlob(t, s, "stale"), "stale.txt"},
	)
	old := putTree(t, s, "",
		entrySpec{objects.TreeType, oldDir, "lib"},
		entrySpec{objects.BlobType, putBlob(t, s, "file"), "bin"},
	)
	newDir := putTree(t, s, "",
		entrySpec{objects.BlobType, putBlob(t, s, "tool"), "tool"},
	)
	newer := putTree(t, s, old,
		entrySpec{objects.BlobType, putBlob(t, s, "lib is a file now"), "lib"},
		entrySpec{objects.TreeType, newDir, "bin"},
	)

	plan, e := NewAnalyzer(s).PlanTree(context.Background(), newer)
	require.NoError(t, e)

	assert.Equal(t, map[string]string{
		"lib":      "lib is a file now",
		"bin":      "/",
		"bin/tool": "tool",
	}, summarize(plan))
}

func TestPlanTree_EmptyTree(t *testing.T) {
	s := newStore(t)
	fp := putTree(t, s, "")
	assert.Equal(t, objects.EmptyFingerprint, fp)

	plan, e := NewAnalyzer(s).PlanTree(context.Background(), fp)
	require.NoError(t, e)
	assert.Empty(t, plan.Operations)
}

func TestPlanTree_MissingObjects(t *testing.T) {
	s := newStore(t)
	missing := objects.ComputeFingerprint([]byte("never stored"))

	t.Run("tree", func(t *testing.T) {
		_, e := NewAnalyzer(s).PlanTree(context.Background(), missing)
		require.Error(t, e)
		assert.True(t, errors.Is(e, err.ErrNotFound))
	})

	t.Run("linked tree", func(t *testing.T) {
		root := putTree(t, s, missing,
			entrySpec{objects.BlobType, putBlob(t, s, "a"), "a"},
		)
		_, e := NewAnalyzer(s).PlanTree(context.Background(), root)
		assert.True(t, errors.Is(e, err.ErrNotFound))
	})

	t.Run("blob", func(t *testing.T) {
		root := putTree(t, s, "",
			entrySpec{objects.BlobType, missing, "gone"},
		)
		_, e := NewAnalyzer(s).PlanTree(context.Background(), root)
		assert.True(t, errors.Is(e, err.ErrNotFound))
	})
}

func TestPlanTree_Cancelled(t *testing.T) {
	s := newStore(t)
	root := putTree(t, s, "", entrySpec{objects.BlobType, putBlob(t, s, "a"), "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, e := NewAnalyzer(s).PlanTree(ctx, root)
	assert.ErrorIs(t, e, context.Canceled)
}
