// Package store implements the content-addressable object store every other
// component writes through.
package store

import (
	"github.com/utkarsh5026/gitproject/pkg/objects"
)

// ObjectStore maps fingerprints to payloads.
//
// Objects are immutable once written, with one exception: Overwrite replaces
// the stored bytes of an existing object under the same fingerprint. It exists
// for commit child linking only, where identity is computed over a subset of
// the payload and the stored bytes therefore no longer hash to the name.
type ObjectStore interface {
	// Put stores payload under its fingerprint if absent and always returns
	// the fingerprint.
	Put(payload []byte) (objects.Fingerprint, error)

	// PutAs stores payload under a caller-computed identity if absent. Commits
	// use it because their identity excludes the child field.
	PutAs(fp objects.Fingerprint, payload []byte) error

	// Get returns the payload stored under fp, or a NotFound error.
	Get(fp objects.Fingerprint) ([]byte, error)

	// Has reports whether fp is stored.
	Has(fp objects.Fingerprint) (bool, error)

	// Overwrite replaces the payload of an existing object.
	Overwrite(fp objects.Fingerprint, payload []byte) error
}
