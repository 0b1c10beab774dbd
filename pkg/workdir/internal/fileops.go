package internal

import (
	"path/filepath"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

// FileOps performs the low-level file system work of a checkout.
type FileOps struct {
	fs      fsio.FS
	workDir scpath.RepositoryPath
}

// NewFileOps creates a new FileOps for the working directory workDir.
func NewFileOps(fs fsio.FS, workDir scpath.RepositoryPath) *FileOps {
	return &FileOps{fs: fs, workDir: workDir}
}

// Clear removes everything in the working directory except the repository
// directory. It returns the removed top-level names.
func (f *FileOps) Clear() ([]string, error) {
	entries, e := f.fs.ReadDir(f.workDir.String())
	if e != nil {
		return nil, err.New(pkgName, err.CodeIOFailure, "clear", "failed to list working directory", e)
	}

	var removed []string
	for _, de := range entries {
		if de.Name() == scpath.SourceDir {
			continue
		}
		if e := f.fs.RemoveAll(f.workDir.Join(de.Name())); e != nil {
			return removed, err.New(pkgName, err.CodeIOFailure, "clear", "failed to remove "+de.Name(), e)
		}
		removed = append(removed, de.Name())
	}
	return removed, nil
}

// ApplyOperation executes a single operation.
func (f *FileOps) ApplyOperation(op Operation) error {
	fullPath, e := f.workDir.JoinRelative(op.Path)
	if e != nil {
		return err.New(pkgName, err.CodeInvalidInput, "apply", "invalid path "+op.Path.String(), e)
	}
	if op.Path.IsInternal() {
		return err.New(pkgName, err.CodeInvalidInput, "apply", "refusing to write into the repository directory: "+op.Path.String(), nil)
	}

	switch op.Action {
	case ActionCreateDir:
		if e := f.fs.MkdirAll(fullPath, 0o755); e != nil {
			return err.New(pkgName, err.CodeIOFailure, "apply", "failed to create directory "+op.Path.String(), e)
		}
	case ActionWriteFile:
		if e := f.fs.MkdirAll(filepath.Dir(fullPath), 0o755); e != nil {
			return err.New(pkgName, err.CodeIOFailure, "apply", "failed to create parent of "+op.Path.String(), e)
		}
		if e := f.fs.WriteFileAtomic(fullPath, op.Content, 0o644); e != nil {
			return err.New(pkgName, err.CodeIOFailure, "apply", "failed to write "+op.Path.String(), e)
		}
	default:
		return err.New(pkgName, err.CodeInvalidInput, "apply", "unknown action "+op.Action.String(), nil)
	}
	return nil
}
