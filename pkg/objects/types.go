package objects

import (
	"github.com/utkarsh5026/gitproject/pkg/common/err"
)

// ObjectType names the kind of a stored object or of a tree entry.
type ObjectType string

const (
	BlobType   ObjectType = "blob"
	TreeType   ObjectType = "tree"
	CommitType ObjectType = "commit"
)

// String implements the Stringer interface
func (o ObjectType) String() string {
	return string(o)
}

// ParseObjectType converts a string to ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	switch ObjectType(s) {
	case BlobType, TreeType, CommitType:
		return ObjectType(s), nil
	default:
		return "", err.New(pkgName, err.CodeMalformedRecord, "ParseObjectType", "unknown object type: "+s, nil)
	}
}
