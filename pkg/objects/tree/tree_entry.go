package tree

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/objects"
)

// fieldSeparator separates the fields of one serialized entry.
const fieldSeparator = " : "

// Entry is a single line of a tree object.
//
// Serialized format, one entry per line:
//
//	blob : <fingerprint> : <name>    file content
//	tree : <fingerprint> : <name>    subdirectory
//	tree : <fingerprint>             previous-tree link (empty name)
//
// Names are working-tree-relative and may contain "/" for entries staged
// from a nested path.
type Entry struct {
	Kind        objects.ObjectType
	Fingerprint objects.Fingerprint
	Name        string
}

// NewEntry creates a validated entry.
func NewEntry(kind objects.ObjectType, fp objects.Fingerprint, name string) (Entry, error) {
	e := Entry{Kind: kind, Fingerprint: fp, Name: name}
	if verr := e.validate(); verr != nil {
		return Entry{}, verr
	}
	return e, nil
}

// IsPreviousLink reports whether the entry is the unnamed link to an
// ancestor snapshot.
func (e Entry) IsPreviousLink() bool {
	return e.Kind == objects.TreeType && e.Name == ""
}

// IsBlob reports whether the entry names file content.
func (e Entry) IsBlob() bool {
	return e.Kind == objects.BlobType
}

// IsSubtree reports whether the entry is a named subdirectory.
func (e Entry) IsSubtree() bool {
	return e.Kind == objects.TreeType && e.Name != ""
}

// String returns the serialized line.
func (e Entry) String() string {
	if e.IsPreviousLink() {
		return string(e.Kind) + fieldSeparator + e.Fingerprint.String()
	}
	return string(e.Kind) + fieldSeparator + e.Fingerprint.String() + fieldSeparator + e.Name
}

func (e Entry) validate() error {
	switch e.Kind {
	case objects.BlobType, objects.TreeType:
	default:
		return err.New(pkgName, err.CodeInvalidInput, "NewEntry", "unsupported entry kind: "+string(e.Kind), nil)
	}
	if e.Kind == objects.BlobType && e.Name == "" {
		return err.New(pkgName, err.CodeInvalidInput, "NewEntry", "blob entries require a name", nil)
	}
	if strings.ContainsAny(e.Name, "\n\r") {
		return err.New(pkgName, err.CodeInvalidInput, "NewEntry", fmt.Sprintf("entry name %q contains a line break", e.Name), nil)
	}
	if verr := e.Fingerprint.Validate(); verr != nil {
		return err.New(pkgName, err.CodeInvalidInput, "NewEntry", "invalid fingerprint for "+e.Name, verr)
	}
	return nil
}

// parseEntry parses one serialized line.
func parseEntry(line string) (Entry, error) {
	parts := strings.SplitN(line, fieldSeparator, 3)
	if len(parts) < 2 {
		return Entry{}, malformed(line, nil)
	}

	kind, perr := objects.ParseObjectType(parts[0])
	if perr != nil || kind == objects.CommitType {
		return Entry{}, malformed(line, perr)
	}
	fp, perr := objects.ParseFingerprint(parts[1])
	if perr != nil {
		return Entry{}, malformed(line, perr)
	}

	if len(parts) == 2 {
		if kind != objects.TreeType {
			return Entry{}, malformed(line, nil)
		}
		return Entry{Kind: kind, Fingerprint: fp}, nil
	}
	if parts[2] == "" {
		return Entry{}, malformed(line, nil)
	}
	return Entry{Kind: kind, Fingerprint: fp, Name: parts[2]}, nil
}

func malformed(line string, cause error) error {
	return err.New(pkgName, err.CodeMalformedRecord, "Parse", fmt.Sprintf("invalid tree entry %q", line), cause)
}
