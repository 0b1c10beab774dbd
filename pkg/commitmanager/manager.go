// Package commitmanager creates commits from the index and walks the commit
// chain.
package commitmanager

import (
	"context"
	"errors"
	"log/slog"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/config"
	"github.com/utkarsh5026/gitproject/pkg/index"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/commit"
	"github.com/utkarsh5026/gitproject/pkg/repository/lock"
	"github.com/utkarsh5026/gitproject/pkg/repository/sourcerepo"
)

// Manager handles the creation of commits and navigation of the commit chain.
//
// The commit creation process follows these steps:
//  1. Read HEAD to find the parent commit and its tree
//  2. Build a tree from the index on top of the parent tree
//  3. Store the commit object with an empty child field
//  4. Write the journal (the commit point)
//  5. Link the parent to the new commit, update HEAD and clear the index
//  6. Remove the journal
//
// Steps 5 and 6 are replayed by Recover when a previous run died between the
// journal write and its removal. The whole sequence runs under the repository
// lock.
type Manager struct {
	repo        sourcerepo.Repository
	treeBuilder *TreeBuilder
	journal     *journal
	indexPath   string
	logger      *slog.Logger
}

// NewManager creates a new Manager for repo.
func NewManager(repo sourcerepo.Repository) *Manager {
	log := repo.Logger().With("component", "commitmanager")
	return &Manager{
		repo:        repo,
		treeBuilder: NewTreeBuilder(repo.FS(), repo.ObjectStore(), repo.WorkingDirectory(), log),
		journal:     newJournal(repo.FS(), repo.SourceDirectory()),
		indexPath:   repo.SourceDirectory().IndexPath().String(),
		logger:      log,
	}
}

// Initialize prepares the manager for use by finishing any commit that was
// interrupted after its commit point. Call it once after opening a repository.
func (m *Manager) Initialize(ctx context.Context) error {
	return m.Recover(ctx)
}

// CreateCommit creates a new commit from the current index and returns it.
// The commit's fingerprint is c.Fingerprint().
func (m *Manager) CreateCommit(ctx context.Context, options CommitOptions) (*commit.Commit, error) {
	if e := checkContext(ctx); e != nil {
		return nil, e
	}
	if e := options.Validate(); e != nil {
		return nil, e
	}

	repoLock, e := lock.Acquire(m.repo.FS(), m.repo.SourceDirectory())
	if e != nil {
		return nil, NewCommitError("lock", e, "")
	}
	defer func() {
		if e := repoLock.Release(); e != nil {
			m.logger.Error("failed to release lock", "error", e)
		}
	}()

	if e := m.recover(); e != nil {
		return nil, NewCommitError("recover", e, "")
	}

	parent, parentTree, e := m.resolveParent()
	if e != nil {
		return nil, NewCommitError("resolve parent", e, "")
	}

	idx, e := index.Read(m.repo.FS(), m.indexPath)
	if e != nil {
		return nil, NewCommitError("read index", e, "")
	}
	if idx.IsEmpty() && !options.AllowEmpty {
		return nil, NewCommitError("validate", ErrNoChanges, "")
	}

	treeFp, e := m.treeBuilder.BuildFromIndex(ctx, idx, parentTree, options.Strict)
	if e != nil {
		return nil, NewCommitError("build tree", e, "")
	}

	c, e := m.buildCommit(options, treeFp, parent)
	if e != nil {
		return nil, NewCommitError("build commit", e, "")
	}

	fp, e := c.Write(m.repo.ObjectStore())
	if e != nil {
		return nil, NewCommitError("write commit", e, "")
	}

	rec := journalRecord{Commit: fp, Parent: parent}
	if e := m.journal.write(rec); e != nil {
		return nil, NewCommitError("write journal", e, fp.Short())
	}
	if e := m.finish(rec); e != nil {
		return nil, NewCommitError("finish", e, fp.Short())
	}

	m.logger.Info("commit created", "fingerprint", fp, "parent", parent.Short(), "tree", treeFp.Short(), "entries", idx.Count())
	return c, nil
}

func (m *Manager) resolveParent() (parent, parentTree objects.Fingerprint, e error) {
	parent, e = m.repo.Head().Read()
	if e != nil || parent.IsZero() {
		return "", "", e
	}
	c, e := commit.Read(m.repo.ObjectStore(), parent)
	if e != nil {
		return "", "", e
	}
	return parent, c.Tree, nil
}

func (m *Manager) buildCommit(options CommitOptions, treeFp, parent objects.Fingerprint) (*commit.Commit, error) {
	author := options.Author
	if author == nil {
		var e error
		author, e = m.defaultAuthor()
		if e != nil {
			return nil, e
		}
	}

	return commit.NewCommitBuilder().
		Tree(treeFp).
		Parent(parent).
		Author(author).
		Date(options.Date).
		Summary(options.Summary).
		Build()
}

// defaultAuthor takes user.name and user.email from the configuration, where
// --author and then GITPROJECT_AUTHOR_NAME and GITPROJECT_AUTHOR_EMAIL
// override the files.
func (m *Manager) defaultAuthor() (*commit.Person, error) {
	cfg := m.repo.Config()
	name := cfg.GetString(config.KeyUserName, commit.UnknownAuthor)
	// An empty email set on the command line still overrides the files.
	var email string
	if entry := cfg.Get(config.KeyUserEmail); entry != nil {
		email = entry.Value
	}
	return commit.NewPerson(name, email)
}

// finish applies the post-commit-point steps. Each one is idempotent.
func (m *Manager) finish(rec journalRecord) error {
	if !rec.Parent.IsZero() {
		if e := commit.LinkChild(m.repo.ObjectStore(), rec.Parent, rec.Commit); e != nil {
			return e
		}
	}
	if e := m.repo.Head().Update(rec.Commit); e != nil {
		return e
	}
	if e := index.NewIndex().Write(m.repo.FS(), m.indexPath); e != nil {
		return e
	}
	return m.journal.remove()
}

// Recover completes a commit interrupted after its journal was written. It is
// a no-op when no journal is present.
func (m *Manager) Recover(ctx context.Context) error {
	if e := checkContext(ctx); e != nil {
		return e
	}

	rec, e := m.journal.read()
	if e != nil || rec == nil {
		return e
	}

	fs, sourceDir := m.repo.FS(), m.repo.SourceDirectory()
	broken, e := lock.BreakStale(fs, sourceDir)
	if e != nil {
		return e
	}
	if broken {
		m.logger.Warn("removed lock left by a dead process", "commit", rec.Commit)
	}

	repoLock, e := lock.Acquire(fs, sourceDir)
	if err.IsCode(e, err.CodeLockFailed) {
		// The journal belongs to a commit that is still running.
		m.logger.Info("commit in progress elsewhere, leaving its journal", "holder", lock.Holder(fs, sourceDir))
		return nil
	}
	if e != nil {
		return e
	}
	defer func() {
		if e := repoLock.Release(); e != nil {
			m.logger.Error("failed to release lock", "error", e)
		}
	}()

	return m.recover()
}

func (m *Manager) recover() error {
	rec, e := m.journal.read()
	if e != nil || rec == nil {
		return e
	}

	ok, e := m.repo.ObjectStore().Has(rec.Commit)
	if e != nil {
		return e
	}
	if !ok {
		m.logger.Warn("journal names a missing commit, discarding it", "commit", rec.Commit)
		return m.journal.remove()
	}

	m.logger.Warn("finishing interrupted commit", "commit", rec.Commit, "parent", rec.Parent.Short())
	return m.finish(*rec)
}

// Head returns the current head commit fingerprint, or "" before the first
// commit.
func (m *Manager) Head() (objects.Fingerprint, error) {
	return m.repo.Head().Read()
}

// GetCommit retrieves a specific commit
func (m *Manager) GetCommit(ctx context.Context, fp objects.Fingerprint) (*commit.Commit, error) {
	if e := checkContext(ctx); e != nil {
		return nil, e
	}

	c, e := commit.Read(m.repo.ObjectStore(), fp)
	if e != nil {
		return nil, NewCommitError("read commit", e, fp.Short())
	}
	return c, nil
}

// History returns commits from start ("" for HEAD) following parent links,
// newest first. A limit of zero or less means no limit.
func (m *Manager) History(ctx context.Context, start objects.Fingerprint, limit int) ([]*commit.Commit, error) {
	return m.walk(ctx, start, limit, func(c *commit.Commit) objects.Fingerprint { return c.Parent })
}

// Descendants returns the commits after start following child links, oldest
// first. start itself is not included.
func (m *Manager) Descendants(ctx context.Context, start objects.Fingerprint, limit int) ([]*commit.Commit, error) {
	c, e := m.GetCommit(ctx, start)
	if e != nil {
		return nil, e
	}
	if c.Child.IsZero() {
		return []*commit.Commit{}, nil
	}
	return m.walk(ctx, c.Child, limit, func(c *commit.Commit) objects.Fingerprint { return c.Child })
}

func (m *Manager) walk(ctx context.Context, start objects.Fingerprint, limit int, next func(*commit.Commit) objects.Fingerprint) ([]*commit.Commit, error) {
	current := start
	if current.IsZero() {
		head, e := m.Head()
		if e != nil {
			return nil, e
		}
		current = head
	}

	history := make([]*commit.Commit, 0)
	visited := make(map[objects.Fingerprint]bool)

	for !current.IsZero() && (limit <= 0 || len(history) < limit) {
		if visited[current] {
			return history, err.New(pkgName, err.CodeMalformedRecord, "walk", "commit chain loops at "+current.Short(), nil)
		}
		visited[current] = true

		c, e := m.GetCommit(ctx, current)
		if e != nil {
			return history, e
		}
		history = append(history, c)
		current = next(c)
	}
	return history, nil
}

// IsNoChanges reports whether e means the index was empty.
func IsNoChanges(e error) bool {
	return errors.Is(e, ErrNoChanges)
}
