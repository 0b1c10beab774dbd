package index

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/tree"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

const root = scpath.RepositoryPath("/w")

func newManager(t *testing.T) (*Manager, *fsio.MemoryFS, *store.FileObjectStore) {
	t.Helper()
	mfs := fsio.NewMemoryFS()
	s := store.NewFileObjectStore(mfs, root.SourcePath(), objects.CodecGzip)
	require.NoError(t, s.Initialize())
	return NewManager(mfs, root, s), mfs, s
}

func TestManager_AddFile(t *testing.T) {
	m, mfs, s := newManager(t)
	require.NoError(t, mfs.WriteFile("/w/f1.txt", []byte("file1"), 0o644))

	entry, e := m.AddFile("f1.txt")
	require.NoError(t, e)
	require.NotNil(t, entry)
	assert.Equal(t, OpAddBlob, entry.Op)
	assert.Equal(t, objects.ComputeFingerprint([]byte("file1")), entry.Fingerprint)

	ok, _ := s.Has(entry.Fingerprint)
	assert.True(t, ok, "blob should be written when staged")

	_, e = m.AddFile("/w/f1.txt")
	assert.True(t, errors.Is(e, err.ErrDuplicateEntry), "got %v", e)

	idx, e := m.Load()
	require.NoError(t, e)
	assert.Equal(t, 1, idx.Count())
}

func TestManager_AddFileEdgeCases(t *testing.T) {
	m, mfs, _ := newManager(t)
	require.NoError(t, mfs.WriteFile("/w/empty.txt", nil, 0o644))
	require.NoError(t, mfs.MkdirAll("/w/sub", 0o755))

	entry, e := m.AddFile("empty.txt")
	require.NoError(t, e)
	assert.Nil(t, entry, "empty files are skipped")

	_, e = m.AddFile("missing.txt")
	assert.True(t, errors.Is(e, err.ErrNotFound), "got %v", e)

	_, e = m.AddFile("sub")
	assert.True(t, errors.Is(e, err.ErrInvalidInput), "got %v", e)

	_, e = m.AddFile("../etc/passwd")
	assert.True(t, errors.Is(e, err.ErrInvalidInput), "got %v", e)

	_, e = m.AddFile(".gitproject/index")
	assert.True(t, errors.Is(e, err.ErrInvalidInput), "got %v", e)
}

func TestManager_AddDirectory(t *testing.T) {
	m, mfs, s := newManager(t)
	require.NoError(t, mfs.MkdirAll("/w/sub", 0o755))
	require.NoError(t, mfs.WriteFile("/w/sub/f4.txt", []byte("file4"), 0o644))

	entry, e := m.AddDirectory("sub")
	require.NoError(t, e)
	assert.Equal(t, OpAddTree, entry.Op)

	sub, e := tree.Read(s, entry.Fingerprint)
	require.NoError(t, e)
	assert.True(t, sub.Has("f4.txt"))

	_, e = m.AddDirectory("nope")
	assert.True(t, errors.Is(e, err.ErrNotFound), "got %v", e)
}

func TestManager_AddAll(t *testing.T) {
	m, mfs, _ := newManager(t)
	require.NoError(t, mfs.WriteFile("/w/f1.txt", []byte("file1"), 0o644))
	require.NoError(t, mfs.WriteFile("/w/f2.txt", []byte("file2"), 0o644))
	require.NoError(t, mfs.WriteFile("/w/empty", nil, 0o644))
	require.NoError(t, mfs.WriteFile("/w/debug.log", []byte("x"), 0o644))
	require.NoError(t, mfs.WriteFile("/w/.gitprojectignore", []byte("*.log\n"), 0o644))
	require.NoError(t, mfs.MkdirAll("/w/sub", 0o755))
	require.NoError(t, mfs.WriteFile("/w/sub/f3.txt", []byte("file3"), 0o644))

	_, e := m.MarkDeleted("f2.txt")
	require.NoError(t, e)

	result, e := m.AddAll()
	require.NoError(t, e)

	var added []string
	for _, a := range result.Added {
		added = append(added, a.Path)
	}
	assert.ElementsMatch(t, []string{".gitprojectignore", "f1.txt", "sub"}, added)
	assert.ElementsMatch(t, []string{"empty", "f2.txt"}, result.Skipped)
	assert.Equal(t, []string{"debug.log"}, result.Ignored)

	idx, e := m.Load()
	require.NoError(t, e)
	assert.Equal(t, 4, idx.Count())
}

func TestManager_EditDeleteUnstage(t *testing.T) {
	m, mfs, _ := newManager(t)
	require.NoError(t, mfs.WriteFile("/w/f1.txt", []byte("edited"), 0o644))

	_, e := m.MarkEdited("f1.txt")
	require.NoError(t, e)
	_, e = m.MarkEdited("gone.txt")
	assert.True(t, errors.Is(e, err.ErrNotFound), "got %v", e)

	_, e = m.MarkDeleted("gone.txt")
	require.NoError(t, e, "deleting a path that no longer exists on disk is allowed")

	idx, _ := m.Load()
	assert.Contains(t, idx.EditSet(), "f1.txt")
	assert.Contains(t, idx.DeleteSet(), "gone.txt")

	require.NoError(t, m.Unstage("f1.txt"))
	e = m.Unstage("f1.txt")
	assert.True(t, errors.Is(e, err.ErrNotFound), "got %v", e)

	require.NoError(t, m.Clear())
	idx, _ = m.Load()
	assert.True(t, idx.IsEmpty())
}
