package index

import (
	"log/slog"
	"sync"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/common/logger"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects/blob"
	"github.com/utkarsh5026/gitproject/pkg/objects/tree"
	"github.com/utkarsh5026/gitproject/pkg/repository/ignore"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

// Manager stages changes from the working directory into the index. Every
// operation loads the index, applies one change and saves it again.
type Manager struct {
	fs        fsio.FS
	repoRoot  scpath.RepositoryPath
	indexPath string
	store     store.ObjectStore
	logger    *slog.Logger
	mu        sync.Mutex
}

// NewManager creates a new index manager.
func NewManager(fs fsio.FS, repoRoot scpath.RepositoryPath, objectStore store.ObjectStore) *Manager {
	return &Manager{
		fs:        fs,
		repoRoot:  repoRoot,
		indexPath: repoRoot.SourcePath().IndexPath().String(),
		store:     objectStore,
		logger:    logger.With("component", "index"),
	}
}

// AddResult represents the result of staging the whole working directory.
type AddResult struct {
	Added   []Entry  // New entries written to the index
	Skipped []string // Empty files and paths that were already staged
	Ignored []string // Paths matched by .gitprojectignore
}

// Load reads the current index.
func (m *Manager) Load() (*Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Read(m.fs, m.indexPath)
}

// Clear empties the index on disk.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return NewIndex().Write(m.fs, m.indexPath)
}

// AddFile stores path as a blob and stages it. Empty files are skipped and
// yield a nil entry.
func (m *Manager) AddFile(path string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel, abs, e := m.resolve("AddFile", path)
	if e != nil {
		return nil, e
	}
	if !m.fs.Exists(abs) {
		return nil, err.New(pkgName, err.CodeNotFound, "AddFile", "file not found: "+rel.String(), nil)
	}
	if m.fs.IsDir(abs) {
		return nil, err.New(pkgName, err.CodeInvalidInput, "AddFile", rel.String()+" is a directory", nil)
	}

	fp, e := blob.StoreFile(m.fs, m.store, abs)
	if e != nil {
		return nil, e
	}
	if fp.IsZero() {
		m.logger.Info("skipping empty file", "path", rel)
		return nil, nil
	}

	entry, e := NewAddBlob(rel.String(), fp)
	if e != nil {
		return nil, e
	}
	return &entry, m.stage(entry)
}

// AddDirectory snapshots path as a tree and stages it.
func (m *Manager) AddDirectory(path string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel, abs, e := m.resolve("AddDirectory", path)
	if e != nil {
		return nil, e
	}
	if !m.fs.IsDir(abs) {
		return nil, err.New(pkgName, err.CodeNotFound, "AddDirectory", "directory not found: "+rel.String(), nil)
	}

	patterns, e := m.ignorePatterns()
	if e != nil {
		return nil, e
	}
	fp, e := tree.BuildFromDirectory(m.fs, m.store, abs, rel.String(), patterns)
	if e != nil {
		return nil, e
	}

	entry, e := NewAddTree(rel.String(), fp)
	if e != nil {
		return nil, e
	}
	return &entry, m.stage(entry)
}

// AddAll stages every top-level file and directory of the working tree that
// is not ignored and not already staged.
func (m *Manager) AddAll() (*AddResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, e := Read(m.fs, m.indexPath)
	if e != nil {
		return nil, e
	}
	patterns, e := m.ignorePatterns()
	if e != nil {
		return nil, e
	}
	dirEntries, e := m.fs.ReadDir(m.repoRoot.String())
	if e != nil {
		return nil, err.New(pkgName, err.CodeIOFailure, "AddAll", "failed to list working directory", e)
	}

	result := &AddResult{}
	for _, de := range dirEntries {
		name := de.Name()
		if name == scpath.SourceDir {
			continue
		}
		if patterns.IsIgnored(name, de.IsDir()) {
			result.Ignored = append(result.Ignored, name)
			continue
		}
		if _, staged := idx.Get(name); staged {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		abs := m.repoRoot.Join(name)
		var entry Entry
		if de.IsDir() {
			fp, e := tree.BuildFromDirectory(m.fs, m.store, abs, name, patterns)
			if e != nil {
				return nil, e
			}
			entry, e = NewAddTree(name, fp)
			if e != nil {
				return nil, e
			}
		} else {
			fp, e := blob.StoreFile(m.fs, m.store, abs)
			if e != nil {
				return nil, e
			}
			if fp.IsZero() {
				result.Skipped = append(result.Skipped, name)
				continue
			}
			entry, e = NewAddBlob(name, fp)
			if e != nil {
				return nil, e
			}
		}

		if e := idx.Add(entry); e != nil {
			return nil, e
		}
		result.Added = append(result.Added, entry)
	}

	if e := idx.Write(m.fs, m.indexPath); e != nil {
		return nil, e
	}
	m.logger.Info("staged working directory", "added", len(result.Added), "ignored", len(result.Ignored))
	return result, nil
}

// MarkEdited stages path for re-reading from the working directory when the
// next commit resolves it against ancestor trees. path may be a file or a
// directory that an ancestor tree holds as a subtree.
func (m *Manager) MarkEdited(path string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel, abs, e := m.resolve("MarkEdited", path)
	if e != nil {
		return nil, e
	}
	if !m.fs.Exists(abs) {
		return nil, err.New(pkgName, err.CodeNotFound, "MarkEdited", "path not found: "+rel.String(), nil)
	}

	entry, e := NewEdit(rel.String())
	if e != nil {
		return nil, e
	}
	return &entry, m.stage(entry)
}

// MarkDeleted stages the removal of path from the next snapshot.
func (m *Manager) MarkDeleted(path string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel, _, e := m.resolve("MarkDeleted", path)
	if e != nil {
		return nil, e
	}
	entry, e := NewDelete(rel.String())
	if e != nil {
		return nil, e
	}
	return &entry, m.stage(entry)
}

// Unstage removes whatever is staged for path.
func (m *Manager) Unstage(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel, _, e := m.resolve("Unstage", path)
	if e != nil {
		return e
	}
	idx, e := Read(m.fs, m.indexPath)
	if e != nil {
		return e
	}
	if !idx.Remove(rel.String()) {
		return err.New(pkgName, err.CodeNotFound, "Unstage", "path not staged: "+rel.String(), nil)
	}
	m.logger.Debug("unstaged", "path", rel)
	return idx.Write(m.fs, m.indexPath)
}

func (m *Manager) stage(entry Entry) error {
	idx, e := Read(m.fs, m.indexPath)
	if e != nil {
		return e
	}
	if e := idx.Add(entry); e != nil {
		return e
	}
	if e := idx.Write(m.fs, m.indexPath); e != nil {
		return e
	}
	m.logger.Debug("staged", "op", entry.Op, "path", entry.Path)
	return nil
}

func (m *Manager) resolve(op, path string) (scpath.RelativePath, string, error) {
	rel, e := m.repoRoot.Rel(path)
	if e != nil {
		return "", "", err.New(pkgName, err.CodeInvalidInput, op, "path outside the working directory: "+path, e)
	}
	if !rel.IsValid() || rel.IsInternal() {
		return "", "", err.New(pkgName, err.CodeInvalidInput, op, "cannot stage "+path, nil)
	}
	abs, e := m.repoRoot.JoinRelative(rel)
	if e != nil {
		return "", "", err.New(pkgName, err.CodeInvalidInput, op, "cannot stage "+path, e)
	}
	return rel, abs, nil
}

func (m *Manager) ignorePatterns() (*ignore.PatternSet, error) {
	return ignore.Load(m.fs, m.repoRoot.Join(scpath.IgnoreFile))
}
