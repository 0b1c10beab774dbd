// Package tree implements directory snapshots: named blob and subtree entries
// plus an optional link to a previous tree whose content is inherited.
package tree

import (
	"sort"
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

const pkgName = "tree"

// Tree is an in-memory directory snapshot.
//
// Entry names share one namespace across blobs and subtrees. The previous-tree
// link is kept apart from the named entries; it points at an ancestor snapshot
// whose entries are inherited into the same directory rather than nested.
//
// Canonical order, used for serialization and therefore for the fingerprint:
// blobs first, then tree entries (the link, having the empty name, first among
// them), each group sorted lexicographically by name.
type Tree struct {
	entries map[string]Entry
	link    objects.Fingerprint
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{entries: make(map[string]Entry)}
}

// AddEntry inserts an entry. An empty name with kind tree sets the
// previous-tree link.
func (t *Tree) AddEntry(kind objects.ObjectType, fp objects.Fingerprint, name string) error {
	entry, e := NewEntry(kind, fp, name)
	if e != nil {
		return e
	}
	return t.add(entry)
}

func (t *Tree) add(entry Entry) error {
	if entry.IsPreviousLink() {
		if !t.link.IsZero() {
			return err.New(pkgName, err.CodeDuplicateEntry, "AddEntry", "previous-tree link already set", nil)
		}
		t.link = entry.Fingerprint
		return nil
	}
	if _, exists := t.entries[entry.Name]; exists {
		return err.New(pkgName, err.CodeDuplicateEntry, "AddEntry", "duplicate entry name: "+entry.Name, nil)
	}
	t.entries[entry.Name] = entry
	return nil
}

// SetPreviousTreeLink replaces the link. "" clears it.
func (t *Tree) SetPreviousTreeLink(fp objects.Fingerprint) {
	t.link = fp
}

// PreviousTreeLink returns the link, or "" when there is none.
func (t *Tree) PreviousTreeLink() objects.Fingerprint {
	return t.link
}

// Lookup returns the named entry.
func (t *Tree) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Has reports whether a named entry exists.
func (t *Tree) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Remove deletes the named entry and reports whether it was present.
func (t *Tree) Remove(name string) bool {
	if _, ok := t.entries[name]; !ok {
		return false
	}
	delete(t.entries, name)
	return true
}

// Len returns the number of named entries.
func (t *Tree) Len() int {
	return len(t.entries)
}

// IsEmpty reports whether the tree has neither entries nor a link.
func (t *Tree) IsEmpty() bool {
	return len(t.entries) == 0 && t.link.IsZero()
}

// Entries returns every entry, including the link, in canonical order.
func (t *Tree) Entries() []Entry {
	out := t.Blobs()
	if !t.link.IsZero() {
		out = append(out, Entry{Kind: objects.TreeType, Fingerprint: t.link})
	}
	return append(out, t.Subtrees()...)
}

// Blobs returns the blob entries sorted by name.
func (t *Tree) Blobs() []Entry {
	return t.sorted(objects.BlobType)
}

// Subtrees returns the named subtree entries sorted by name.
func (t *Tree) Subtrees() []Entry {
	return t.sorted(objects.TreeType)
}

func (t *Tree) sorted(kind objects.ObjectType) []Entry {
	var out []Entry
	for _, e := range t.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Serialize encodes the tree, one entry per line in canonical order with no
// trailing newline. The empty tree encodes to zero bytes.
func (t *Tree) Serialize() []byte {
	entries := t.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return []byte(strings.Join(lines, "\n"))
}

// Fingerprint returns the fingerprint of the serialized tree.
func (t *Tree) Fingerprint() objects.Fingerprint {
	return objects.ComputeFingerprint(t.Serialize())
}

// Parse decodes a serialized tree. A duplicate name, including a second link,
// is a malformed record.
func Parse(data []byte) (*Tree, error) {
	t := NewTree()
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return t, nil
	}

	for _, line := range strings.Split(text, "\n") {
		entry, e := parseEntry(line)
		if e != nil {
			return nil, e
		}
		if e := t.add(entry); e != nil {
			return nil, err.New(pkgName, err.CodeMalformedRecord, "Parse", "duplicate entry in tree record", e)
		}
	}
	return t, nil
}

// Write freezes the tree into the object store.
func (t *Tree) Write(s store.ObjectStore) (objects.Fingerprint, error) {
	return s.Put(t.Serialize())
}

// Read loads and parses the tree stored under fp.
func Read(s store.ObjectStore, fp objects.Fingerprint) (*Tree, error) {
	data, e := s.Get(fp)
	if e != nil {
		return nil, e
	}
	return Parse(data)
}
