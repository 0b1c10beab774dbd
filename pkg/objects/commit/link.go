package commit

import (
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

// LinkChild records child as the successor of the commit stored under
// parentFp by rewriting that object in place. The parent's fingerprint is
// unchanged because identity excludes the child field.
//
// Linking the same child again is a no-op, so replaying an interrupted commit
// is safe.
func LinkChild(s store.ObjectStore, parentFp, child objects.Fingerprint) error {
	parent, e := Read(s, parentFp)
	if e != nil {
		return e
	}
	if parent.Child == child {
		return nil
	}
	parent.Child = child
	return s.Overwrite(parentFp, parent.Serialize())
}
