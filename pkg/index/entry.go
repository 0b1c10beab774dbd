package index

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

// Op is the kind of a staged change.
type Op string

const (
	OpAddBlob Op = "blob"
	OpAddTree Op = "tree"
	OpEdit    Op = "*edited*"
	OpDelete  Op = "*deleted*"
)

const fieldSeparator = " : "

// Entry is one staged change.
//
// Serialized format, one entry per line:
//
//	blob : <fingerprint> : <path>
//	tree : <fingerprint> : <path>
//	*edited* <path>
//	*deleted* <path>
type Entry struct {
	Op          Op
	Path        string
	Fingerprint objects.Fingerprint
}

// NewAddBlob stages file content already written to the store.
func NewAddBlob(path string, fp objects.Fingerprint) (Entry, error) {
	return newEntry(OpAddBlob, path, fp)
}

// NewAddTree stages a directory snapshot already written to the store.
func NewAddTree(path string, fp objects.Fingerprint) (Entry, error) {
	return newEntry(OpAddTree, path, fp)
}

// NewEdit stages an edit resolved against ancestor trees at commit time.
func NewEdit(path string) (Entry, error) {
	return newEntry(OpEdit, path, "")
}

// NewDelete stages a deletion resolved against ancestor trees at commit time.
func NewDelete(path string) (Entry, error) {
	return newEntry(OpDelete, path, "")
}

func newEntry(op Op, path string, fp objects.Fingerprint) (Entry, error) {
	rel := scpath.RelativePath(path)
	if !rel.IsValid() {
		return Entry{}, err.New(pkgName, err.CodeInvalidInput, "NewEntry", fmt.Sprintf("invalid path %q", path), nil)
	}
	rel = rel.Normalize()
	if rel.IsInternal() {
		return Entry{}, err.New(pkgName, err.CodeInvalidInput, "NewEntry", "cannot stage the repository directory: "+path, nil)
	}

	e := Entry{Op: op, Path: rel.String(), Fingerprint: fp}
	if e.IsAddition() {
		if verr := fp.Validate(); verr != nil {
			return Entry{}, err.New(pkgName, err.CodeInvalidInput, "NewEntry", "invalid fingerprint for "+path, verr)
		}
	}
	return e, nil
}

// IsAddition reports whether the entry inserts an object directly.
func (e Entry) IsAddition() bool {
	return e.Op == OpAddBlob || e.Op == OpAddTree
}

// Kind returns the tree entry kind of an addition.
func (e Entry) Kind() objects.ObjectType {
	if e.Op == OpAddTree {
		return objects.TreeType
	}
	return objects.BlobType
}

// String returns the serialized line.
func (e Entry) String() string {
	switch e.Op {
	case OpEdit, OpDelete:
		return string(e.Op) + " " + e.Path
	default:
		return string(e.Op) + fieldSeparator + e.Fingerprint.String() + fieldSeparator + e.Path
	}
}

func parseEntry(line string) (Entry, error) {
	for _, op := range []Op{OpEdit, OpDelete} {
		if rest, ok := strings.CutPrefix(line, string(op)+" "); ok {
			entry, e := newEntry(op, rest, "")
			if e != nil {
				return Entry{}, malformed(line, e)
			}
			return entry, nil
		}
	}

	parts := strings.SplitN(line, fieldSeparator, 3)
	if len(parts) != 3 {
		return Entry{}, malformed(line, nil)
	}
	op := Op(parts[0])
	if op != OpAddBlob && op != OpAddTree {
		return Entry{}, malformed(line, nil)
	}
	fp, e := objects.ParseFingerprint(parts[1])
	if e != nil {
		return Entry{}, malformed(line, e)
	}
	entry, e := newEntry(op, parts[2], fp)
	if e != nil {
		return Entry{}, malformed(line, e)
	}
	return entry, nil
}

func malformed(line string, cause error) error {
	return err.New(pkgName, err.CodeMalformedRecord, "Parse", fmt.Sprintf("invalid index record %q", line), cause)
}
