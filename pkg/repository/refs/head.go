// Package refs manages the HEAD pointer: the fingerprint of the most recently
// created commit.
package refs

import (
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

const pkgName = "refs"

// Head reads and updates .gitproject/HEAD.
//
// The file holds a single line with the head commit's fingerprint. It is
// absent (or empty) before the first commit.
type Head struct {
	fs   fsio.FS
	path scpath.SourcePath
}

// NewHead returns the HEAD pointer of the repository directory sourcePath.
func NewHead(fs fsio.FS, sourcePath scpath.SourcePath) *Head {
	return &Head{fs: fs, path: sourcePath.HeadPath()}
}

// Read returns the head commit, or "" before the first commit.
func (h *Head) Read() (objects.Fingerprint, error) {
	data, e := h.fs.ReadFile(h.path.String())
	if e != nil {
		if fsio.IsNotExist(e) {
			return "", nil
		}
		return "", err.New(pkgName, err.CodeIOFailure, "Read", "failed to read HEAD", e)
	}

	fp, e := objects.ParseOptionalFingerprint(strings.TrimSpace(string(data)))
	if e != nil {
		return "", err.New(pkgName, err.CodeMalformedRecord, "Read", "HEAD does not hold a fingerprint", e)
	}
	return fp, nil
}

// Update points HEAD at fp.
func (h *Head) Update(fp objects.Fingerprint) error {
	if e := fp.Validate(); e != nil {
		return err.New(pkgName, err.CodeInvalidInput, "Update", "invalid head fingerprint", e)
	}
	if e := h.fs.WriteFileAtomic(h.path.String(), []byte(fp.String()+"\n"), 0o644); e != nil {
		return err.New(pkgName, err.CodeIOFailure, "Update", "failed to write HEAD", e)
	}
	return nil
}
