// Package workdir materializes commits into the working directory.
package workdir

import (
	"context"
	"log/slog"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/commit"
	"github.com/utkarsh5026/gitproject/pkg/repository/lock"
	"github.com/utkarsh5026/gitproject/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/gitproject/pkg/workdir/internal"
)

const pkgName = "workdir"

// Manager replaces the working directory with the snapshot of a commit.
//
// A checkout runs in three phases:
//  1. Plan: resolve the commit and walk its tree, following previous-tree
//     links, reading every tree and blob it needs
//  2. Clear: remove everything except the .gitproject directory
//  3. Materialize: create directories and write files in path order
//
// Nothing on disk changes unless the plan succeeds. HEAD and the index are
// left alone.
type Manager struct {
	repo     sourcerepo.Repository
	fileOps  *internal.FileOps
	analyzer *internal.Analyzer
	logger   *slog.Logger
}

// NewManager creates a new working directory manager
func NewManager(repo sourcerepo.Repository) *Manager {
	return &Manager{
		repo:     repo,
		fileOps:  internal.NewFileOps(repo.FS(), repo.WorkingDirectory()),
		analyzer: internal.NewAnalyzer(repo.ObjectStore()),
		logger:   repo.Logger().With("component", "workdir"),
	}
}

// Checkout materializes the commit fp ("" for HEAD).
func (m *Manager) Checkout(ctx context.Context, fp objects.Fingerprint, opts ...Option) (CheckoutResult, error) {
	cfg := &checkoutConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	repoLock, e := lock.Acquire(m.repo.FS(), m.repo.SourceDirectory())
	if e != nil {
		return CheckoutResult{}, NewWorkdirError("lock", "", e)
	}
	defer func() {
		if e := repoLock.Release(); e != nil {
			m.logger.Error("failed to release lock", "error", e)
		}
	}()

	fp, e = m.resolve(fp)
	if e != nil {
		return CheckoutResult{}, NewWorkdirError("resolve", "", e)
	}

	c, e := commit.Read(m.repo.ObjectStore(), fp)
	if e != nil {
		return CheckoutResult{}, NewWorkdirError("read commit", "", e)
	}

	plan, e := m.analyzer.PlanTree(ctx, c.Tree)
	if e != nil {
		return CheckoutResult{}, NewWorkdirError("plan", "", e)
	}

	files, dirs := plan.Counts()
	result := CheckoutResult{
		Commit:       fp,
		Tree:         c.Tree,
		FilesWritten: files,
		DirsCreated:  dirs,
		Operations:   plan.Operations,
		DryRun:       cfg.dryRun,
	}
	if cfg.dryRun {
		return result, nil
	}

	if e := ctx.Err(); e != nil {
		return CheckoutResult{}, e
	}

	result.Removed, e = m.fileOps.Clear()
	if e != nil {
		return result, NewWorkdirError("clear", "", e)
	}

	total := len(plan.Operations)
	for i, op := range plan.Operations {
		if e := m.fileOps.ApplyOperation(op); e != nil {
			return result, NewWorkdirError(op.Action.String(), op.Path, e)
		}
		if cfg.onProgress != nil {
			cfg.onProgress(i+1, total, op.Path.String())
		}
	}

	m.logger.Info("checked out commit", "commit", fp, "tree", c.Tree.Short(), "files", files, "dirs", dirs)
	return result, nil
}

func (m *Manager) resolve(fp objects.Fingerprint) (objects.Fingerprint, error) {
	if !fp.IsZero() {
		return fp, fp.Validate()
	}
	head, e := m.repo.Head().Read()
	if e != nil {
		return "", e
	}
	if head.IsZero() {
		return "", err.New(pkgName, err.CodeNotFound, "Checkout", "no commits yet", nil)
	}
	return head, nil
}
