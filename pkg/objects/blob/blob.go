// Package blob wraps a single file's content for storage under its
// fingerprint.
package blob

import (
	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

const pkgName = "blob"

// Blob is the raw content of one file.
type Blob struct {
	content     []byte
	fingerprint *objects.Fingerprint
}

// NewBlob creates a new Blob object from raw data
func NewBlob(data []byte) *Blob {
	return &Blob{content: data}
}

// Content returns the raw content of the blob
func (b *Blob) Content() []byte {
	return b.content
}

// IsEmpty reports whether the blob has no content. Empty blobs have no
// fingerprint and are never written.
func (b *Blob) IsEmpty() bool {
	return len(b.content) == 0
}

// Fingerprint returns the fingerprint of the uncompressed content, or "" for
// an empty blob.
func (b *Blob) Fingerprint() objects.Fingerprint {
	if b.IsEmpty() {
		return ""
	}
	if b.fingerprint == nil {
		fp := objects.ComputeFingerprint(b.content)
		b.fingerprint = &fp
	}
	return *b.fingerprint
}

// Write stores the blob. Empty blobs are skipped and yield "".
func (b *Blob) Write(s store.ObjectStore) (objects.Fingerprint, error) {
	if b.IsEmpty() {
		return "", nil
	}
	fp, e := s.Put(b.content)
	if e != nil {
		return "", e
	}
	b.fingerprint = &fp
	return fp, nil
}

// Store writes content as a blob and returns its fingerprint.
func Store(s store.ObjectStore, content []byte) (objects.Fingerprint, error) {
	return NewBlob(content).Write(s)
}

// StoreFile reads path and stores it as a blob. A missing file is treated
// like an empty one.
func StoreFile(fs fsio.FS, s store.ObjectStore, path string) (objects.Fingerprint, error) {
	data, e := fs.ReadFile(path)
	if e != nil {
		if fsio.IsNotExist(e) {
			return "", nil
		}
		return "", err.New(pkgName, err.CodeIOFailure, "StoreFile", "failed to read "+path, e)
	}
	return Store(s, data)
}

// Read returns the content stored under fp.
func Read(s store.ObjectStore, fp objects.Fingerprint) (*Blob, error) {
	data, e := s.Get(fp)
	if e != nil {
		return nil, e
	}
	return &Blob{content: data, fingerprint: &fp}, nil
}
