package fsio

import (
	"os"

	"github.com/utkarsh5026/gitproject/pkg/common/fileops"
)

// OSFS implements FS on top of the operating system.
type OSFS struct{}

// NewOSFS returns the production FS.
func NewOSFS() *OSFS {
	return &OSFS{}
}

func (o *OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (o *OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (o *OSFS) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return fileops.AtomicWrite(path, data, perm)
}

func (o *OSFS) CreateExclusive(path string, data []byte) error {
	return fileops.CreateExclusive(path, data)
}

func (o *OSFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (o *OSFS) Remove(path string) error                     { return os.Remove(path) }
func (o *OSFS) RemoveAll(path string) error                  { return os.RemoveAll(path) }
func (o *OSFS) Stat(path string) (os.FileInfo, error)        { return os.Stat(path) }
func (o *OSFS) ReadDir(path string) ([]os.DirEntry, error)   { return os.ReadDir(path) }

func (o *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (o *OSFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
