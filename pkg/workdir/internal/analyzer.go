package internal

import (
	"context"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/blob"
	"github.com/utkarsh5026/gitproject/pkg/objects/tree"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

const pkgName = "workdir"

// blobReadConcurrency bounds the parallel blob reads while planning.
const blobReadConcurrency = 8

// target is what ends up at one working-tree path.
type target struct {
	dir bool
	fp  objects.Fingerprint
}

// Analyzer walks a tree, including every tree reachable through
// previous-tree links, and turns it into a Plan.
type Analyzer struct {
	store store.ObjectStore
}

// NewAnalyzer creates a new Analyzer reading from s.
func NewAnalyzer(s store.ObjectStore) *Analyzer {
	return &Analyzer{store: s}
}

// PlanTree resolves treeFp into a Plan. Every tree and blob it references is
// read here, so a missing or unreadable object fails the plan before anything
// on disk is touched.
func (a *Analyzer) PlanTree(ctx context.Context, treeFp objects.Fingerprint) (*Plan, error) {
	targets := make(map[string]target)
	if e := a.collect(ctx, treeFp, "", targets); e != nil {
		return nil, e
	}

	paths := make([]string, 0, len(targets))
	for p := range targets {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	plan := &Plan{Tree: treeFp, Operations: make([]Operation, len(paths))}
	for i, p := range paths {
		t := targets[p]
		op := Operation{Path: scpath.RelativePath(p), Fingerprint: t.fp, Action: ActionWriteFile}
		if t.dir {
			op.Action = ActionCreateDir
		}
		plan.Operations[i] = op
	}

	if e := a.loadContents(ctx, plan); e != nil {
		return nil, e
	}
	return plan, nil
}

// collect materializes fp into targets under base. The previous-tree link
// goes first into the same directory, then the tree's own entries replace
// whatever they inherited.
func (a *Analyzer) collect(ctx context.Context, fp objects.Fingerprint, base string, targets map[string]target) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t, e := tree.Read(a.store, fp)
	if e != nil {
		return err.New(pkgName, err.GetCode(e), "plan", "cannot read tree "+fp.Short(), e)
	}

	if link := t.PreviousTreeLink(); !link.IsZero() {
		if e := a.collect(ctx, link, base, targets); e != nil {
			return e
		}
	}

	for _, entry := range t.Subtrees() {
		p := path.Join(base, entry.Name)
		claim(targets, p)
		targets[p] = target{dir: true}
		if e := a.collect(ctx, entry.Fingerprint, p, targets); e != nil {
			return e
		}
	}
	for _, entry := range t.Blobs() {
		p := path.Join(base, entry.Name)
		claim(targets, p)
		targets[p] = target{fp: entry.Fingerprint}
	}
	return nil
}

// claim clears p for a newer entry: anything inherited at or below p goes,
// and so does an inherited file sitting where one of p's parents must be a
// directory.
func claim(targets map[string]target, p string) {
	delete(targets, p)
	prefix := p + "/"
	for existing := range targets {
		if strings.HasPrefix(existing, prefix) {
			delete(targets, existing)
		}
	}
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if t, ok := targets[dir]; ok && !t.dir {
			delete(targets, dir)
		}
	}
}

// loadContents reads every blob of the plan concurrently.
func (a *Analyzer) loadContents(ctx context.Context, plan *Plan) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(blobReadConcurrency)

	for i := range plan.Operations {
		op := &plan.Operations[i]
		if op.Action != ActionWriteFile {
			continue
		}
		g.Go(func() error {
			if e := ctx.Err(); e != nil {
				return e
			}
			b, e := blob.Read(a.store, op.Fingerprint)
			if e != nil {
				return err.New(pkgName, err.GetCode(e), "plan", "cannot read blob for "+op.Path.String(), e)
			}
			op.Content = b.Content()
			return nil
		})
	}
	return g.Wait()
}
