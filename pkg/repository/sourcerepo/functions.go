package sourcerepo

import (
	"context"
	"path/filepath"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

// Find searches for a repository by traversing up the directory tree from
// start and opens the nearest one.
//
// Returns a NotFound error when no ancestor of start holds a .gitproject
// directory.
func Find(ctx context.Context, fs fsio.FS, start string) (*SourceRepository, error) {
	startPath, e := scpath.NewRepositoryPath(start)
	if e != nil {
		return nil, err.New(pkgName, err.CodeInvalidInput, "Find", "invalid start path: "+start, e)
	}

	currentPath := startPath.String()
	for {
		repoPath := scpath.RepositoryPath(currentPath)

		exists, e := Exists(fs, repoPath)
		if e != nil {
			return nil, e
		}
		if exists {
			return open(ctx, fs, repoPath)
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			return nil, err.New(pkgName, err.CodeNotFound, "Find", "not a gitproject repository (or any parent): "+start, nil)
		}
		currentPath = parentPath
	}
}

// Exists reports whether path holds a .gitproject directory.
func Exists(fs fsio.FS, path scpath.RepositoryPath) (bool, error) {
	info, e := fs.Stat(path.SourcePath().String())
	if fsio.IsNotExist(e) {
		return false, nil
	}
	if e != nil {
		return false, err.New(pkgName, err.CodeIOFailure, "Exists", "failed to check "+path.SourcePath().String(), e)
	}
	return info.IsDir(), nil
}
