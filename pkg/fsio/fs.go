// Package fsio is the raw file-system capability the engine consumes.
//
// The object store, index, head pointer, tree builder and checkout never call
// the os package directly; they go through an FS so the same code runs against
// the real disk (OSFS) or an in-memory tree (MemoryFS) in tests.
package fsio

import (
	"errors"
	"io/fs"
	"os"
)

// FS abstracts the file-system operations used by the engine.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	// WriteFileAtomic replaces path so that readers never observe a partial write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
	// CreateExclusive creates path with data, failing with fs.ErrExist if present.
	CreateExclusive(path string, data []byte) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	RemoveAll(path string) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	Exists(path string) bool
	IsDir(path string) bool
}

// IsNotExist reports whether e denotes a missing path.
func IsNotExist(e error) bool {
	return errors.Is(e, fs.ErrNotExist)
}

// IsExist reports whether e denotes a path that already exists.
func IsExist(e error) bool {
	return errors.Is(e, fs.ErrExist)
}
