package tree

import (
	"path"
	"path/filepath"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/blob"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

// Ignorer decides whether a working-tree-relative path is skipped while
// walking a directory.
type Ignorer interface {
	IsIgnored(relPath string, isDir bool) bool
}

// BuildFromDirectory snapshots dir recursively and returns the fingerprint of
// the written top-level tree. Files become blob entries, empty files are
// skipped, and subdirectories become subtree entries built the same way.
//
// relBase is dir's path relative to the working-tree root ("" for the root);
// it is what ignore patterns and the repository-directory check see. ign may
// be nil.
func BuildFromDirectory(fs fsio.FS, s store.ObjectStore, dir, relBase string, ign Ignorer) (objects.Fingerprint, error) {
	t, e := buildTree(fs, s, dir, relBase, ign)
	if e != nil {
		return "", e
	}
	return t.Write(s)
}

func buildTree(fs fsio.FS, s store.ObjectStore, dir, relBase string, ign Ignorer) (*Tree, error) {
	entries, e := fs.ReadDir(dir)
	if e != nil {
		if fsio.IsNotExist(e) {
			return nil, err.New(pkgName, err.CodeNotFound, "BuildFromDirectory", "directory not found: "+dir, e)
		}
		return nil, err.New(pkgName, err.CodeIOFailure, "BuildFromDirectory", "failed to list "+dir, e)
	}

	t := NewTree()
	for _, de := range entries {
		name := de.Name()
		rel := path.Join(relBase, name)
		if scpath.RelativePath(rel).IsInternal() {
			continue
		}
		if ign != nil && ign.IsIgnored(rel, de.IsDir()) {
			continue
		}

		full := filepath.Join(dir, name)
		if de.IsDir() {
			fp, e := BuildFromDirectory(fs, s, full, rel, ign)
			if e != nil {
				return nil, e
			}
			if e := t.AddEntry(objects.TreeType, fp, name); e != nil {
				return nil, e
			}
			continue
		}

		fp, e := blob.StoreFile(fs, s, full)
		if e != nil {
			return nil, e
		}
		if fp.IsZero() {
			continue
		}
		if e := t.AddEntry(objects.BlobType, fp, name); e != nil {
			return nil, e
		}
	}
	return t, nil
}
