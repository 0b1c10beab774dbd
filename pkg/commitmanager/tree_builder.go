package commitmanager

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/index"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/blob"
	"github.com/utkarsh5026/gitproject/pkg/objects/tree"
	"github.com/utkarsh5026/gitproject/pkg/repository/ignore"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

const pkgName = "commitmanager"

// TreeBuilder turns the index into the tree of a new commit.
//
// Additions are inserted directly. Without edits or deletions the new tree
// links the parent tree, so the whole history stays reachable without
// copying. Otherwise the builder walks back through previous-tree links:
//
//	parent tree ──link──▶ older tree ──link──▶ ... ──▶ ""
//
// copying each ancestor entry that is still live, re-storing edited names
// from the working directory and dropping deleted ones. Once nothing is
// pending, the remaining chain is attached as the new tree's link.
type TreeBuilder struct {
	fs       fsio.FS
	store    store.ObjectStore
	repoRoot scpath.RepositoryPath
	logger   *slog.Logger
}

// NewTreeBuilder creates a new TreeBuilder writing through s.
func NewTreeBuilder(fs fsio.FS, s store.ObjectStore, repoRoot scpath.RepositoryPath, logger *slog.Logger) *TreeBuilder {
	return &TreeBuilder{fs: fs, store: s, repoRoot: repoRoot, logger: logger}
}

// pending tracks the edit and delete names the walk still has to resolve.
type pending struct {
	edits   map[string]struct{}
	deletes map[string]struct{}

	// deleted holds every resolved deletion; older copies of these names
	// must not be re-linked.
	deleted map[string]struct{}
}

func (p *pending) empty() bool {
	return len(p.edits) == 0 && len(p.deletes) == 0
}

func (p *pending) unresolved() []string {
	names := make([]string, 0, len(p.edits)+len(p.deletes))
	for n := range p.edits {
		names = append(names, n)
	}
	for n := range p.deletes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BuildFromIndex writes the tree for idx on top of parentTree ("" for the
// first commit) and returns its fingerprint.
//
// Edits or deletions that no ancestor holds are dropped with a warning, or
// rejected with a NotFound error when strict is set.
func (tb *TreeBuilder) BuildFromIndex(ctx context.Context, idx *index.Index, parentTree objects.Fingerprint, strict bool) (objects.Fingerprint, error) {
	if e := checkContext(ctx); e != nil {
		return "", e
	}

	t := tree.NewTree()
	for _, entry := range idx.Additions() {
		if e := t.AddEntry(entry.Kind(), entry.Fingerprint, entry.Path); e != nil {
			return "", e
		}
	}

	p := &pending{
		edits:   idx.EditSet(),
		deletes: idx.DeleteSet(),
		deleted: make(map[string]struct{}),
	}

	if p.empty() {
		t.SetPreviousTreeLink(parentTree)
		return tb.write(t)
	}

	resolved, e := tb.walk(ctx, t, parentTree, p)
	if e != nil {
		return "", e
	}
	if !resolved {
		names := p.unresolved()
		if strict {
			return "", err.New(pkgName, err.CodeNotFound, "BuildFromIndex",
				"no ancestor tree holds "+strings.Join(names, ", "), nil)
		}
		tb.logger.Warn("dropping unresolved index entries", "paths", names)
	}
	return tb.write(t)
}

// walk resolves p against the chain starting at fp, filling t. It reports
// whether everything pending was resolved; t's link is set in that case.
func (tb *TreeBuilder) walk(ctx context.Context, t *tree.Tree, fp objects.Fingerprint, p *pending) (bool, error) {
	var stopAt objects.Fingerprint

	for !fp.IsZero() {
		if e := checkContext(ctx); e != nil {
			return false, e
		}

		ancestor, e := tree.Read(tb.store, fp)
		if e != nil {
			return false, e
		}
		if e := tb.absorb(t, ancestor, p); e != nil {
			return false, e
		}
		next := ancestor.PreviousTreeLink()

		if p.empty() {
			if stopAt.IsZero() {
				stopAt, e = tb.deepestShadow(ctx, next, p.deleted)
				if e != nil {
					return false, e
				}
				if stopAt.IsZero() {
					t.SetPreviousTreeLink(next)
					return true, nil
				}
			} else if fp == stopAt {
				t.SetPreviousTreeLink(next)
				return true, nil
			}
		}
		fp = next
	}
	return p.empty(), nil
}

// absorb merges one ancestor's entries into t. Names already present in t are
// newer and win.
func (tb *TreeBuilder) absorb(t *tree.Tree, ancestor *tree.Tree, p *pending) error {
	entries := append(ancestor.Blobs(), ancestor.Subtrees()...)
	for _, entry := range entries {
		name := entry.Name

		if _, ok := p.deletes[name]; ok {
			delete(p.deletes, name)
			p.deleted[name] = struct{}{}
			tb.logger.Debug("resolved deletion", "path", name, "tree", entry.Fingerprint.Short())
			continue
		}
		if _, ok := p.deleted[name]; ok {
			continue
		}
		if t.Has(name) {
			continue
		}

		if _, ok := p.edits[name]; ok {
			delete(p.edits, name)
			kept, e := tb.restage(t, entry)
			if e != nil {
				return e
			}
			if !kept {
				p.deleted[name] = struct{}{}
			}
			continue
		}

		if e := t.AddEntry(entry.Kind, entry.Fingerprint, name); e != nil {
			return e
		}
	}
	return nil
}

// restage snapshots the working-directory content behind an edited entry.
// A file that is now empty or missing leaves the name out of the tree and
// restage reports false.
func (tb *TreeBuilder) restage(t *tree.Tree, old tree.Entry) (bool, error) {
	abs, e := tb.repoRoot.JoinRelative(scpath.RelativePath(old.Name))
	if e != nil {
		return false, err.New(pkgName, err.CodeInvalidInput, "restage", "invalid path "+old.Name, e)
	}

	var fp objects.Fingerprint
	switch {
	case old.IsSubtree() && tb.fs.IsDir(abs):
		patterns, e := ignore.Load(tb.fs, tb.repoRoot.Join(scpath.IgnoreFile))
		if e != nil {
			return false, e
		}
		fp, e = tree.BuildFromDirectory(tb.fs, tb.store, abs, old.Name, patterns)
		if e != nil {
			return false, e
		}
	case old.IsBlob():
		fp, e = blob.StoreFile(tb.fs, tb.store, abs)
		if e != nil {
			return false, e
		}
	}

	if fp.IsZero() {
		tb.logger.Warn("edited path is empty or missing, leaving it out", "path", old.Name)
		return false, nil
	}
	tb.logger.Debug("re-stored edited path", "path", old.Name, "old", old.Fingerprint.Short(), "new", fp.Short())
	return true, t.AddEntry(old.Kind, fp, old.Name)
}

// deepestShadow returns the oldest tree in the chain from fp that still
// carries one of the deleted names, or "" when linking fp is safe.
func (tb *TreeBuilder) deepestShadow(ctx context.Context, fp objects.Fingerprint, deleted map[string]struct{}) (objects.Fingerprint, error) {
	var deepest objects.Fingerprint
	for !fp.IsZero() {
		if e := checkContext(ctx); e != nil {
			return "", e
		}
		t, e := tree.Read(tb.store, fp)
		if e != nil {
			return "", e
		}
		for name := range deleted {
			if t.Has(name) {
				deepest = fp
				break
			}
		}
		fp = t.PreviousTreeLink()
	}
	return deepest, nil
}

func (tb *TreeBuilder) write(t *tree.Tree) (objects.Fingerprint, error) {
	fp, e := t.Write(tb.store)
	if e != nil {
		return "", e
	}
	tb.logger.Debug("tree written", "fingerprint", fp, "entries", t.Len(), "link", t.PreviousTreeLink().Short())
	return fp, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
