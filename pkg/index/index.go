// Package index implements the staging area: an ordered log of pending
// additions, edits and deletions consumed when a commit is built.
package index

import (
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
)

const pkgName = "index"

// Index is the in-memory staging log. Each path appears at most once.
type Index struct {
	entries []Entry
	byPath  map[string]int
}

// NewIndex creates a new empty index.
func NewIndex() *Index {
	return &Index{byPath: make(map[string]int)}
}

// Add appends entry. Staging a path twice is a DuplicateEntry error.
func (idx *Index) Add(entry Entry) error {
	if _, exists := idx.byPath[entry.Path]; exists {
		return err.New(pkgName, err.CodeDuplicateEntry, "Add", "path already staged: "+entry.Path, nil)
	}
	idx.byPath[entry.Path] = len(idx.entries)
	idx.entries = append(idx.entries, entry)
	return nil
}

// Remove drops the entry for path and reports whether it was present.
func (idx *Index) Remove(path string) bool {
	i, ok := idx.byPath[path]
	if !ok {
		return false
	}
	idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
	idx.reindex()
	return true
}

func (idx *Index) reindex() {
	idx.byPath = make(map[string]int, len(idx.entries))
	for i, e := range idx.entries {
		idx.byPath[e.Path] = i
	}
}

// Get returns the entry staged for path.
func (idx *Index) Get(path string) (Entry, bool) {
	i, ok := idx.byPath[path]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// Entries returns the staged entries in the order they were added.
func (idx *Index) Entries() []Entry {
	return append([]Entry(nil), idx.entries...)
}

// Additions returns the add-blob and add-tree entries in order.
func (idx *Index) Additions() []Entry {
	var out []Entry
	for _, e := range idx.entries {
		if e.IsAddition() {
			out = append(out, e)
		}
	}
	return out
}

// EditSet returns the staged edit paths.
func (idx *Index) EditSet() map[string]struct{} {
	return idx.pathsWith(OpEdit)
}

// DeleteSet returns the staged delete paths.
func (idx *Index) DeleteSet() map[string]struct{} {
	return idx.pathsWith(OpDelete)
}

func (idx *Index) pathsWith(op Op) map[string]struct{} {
	out := make(map[string]struct{})
	for _, e := range idx.entries {
		if e.Op == op {
			out[e.Path] = struct{}{}
		}
	}
	return out
}

// Count returns the number of staged entries.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// IsEmpty reports whether nothing is staged.
func (idx *Index) IsEmpty() bool {
	return len(idx.entries) == 0
}

// Clear drops every entry.
func (idx *Index) Clear() {
	idx.entries = nil
	idx.byPath = make(map[string]int)
}

// Serialize encodes the log one entry per line with no trailing newline.
func (idx *Index) Serialize() []byte {
	lines := make([]string, len(idx.entries))
	for i, e := range idx.entries {
		lines[i] = e.String()
	}
	return []byte(strings.Join(lines, "\n"))
}

// Parse decodes a serialized index. Blank lines are ignored; a path staged
// twice is a malformed record.
func Parse(data []byte) (*Index, error) {
	idx := NewIndex()
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, e := parseEntry(line)
		if e != nil {
			return nil, e
		}
		if e := idx.Add(entry); e != nil {
			return nil, err.New(pkgName, err.CodeMalformedRecord, "Parse", "duplicate index record", e)
		}
	}
	return idx, nil
}

// Read loads the index at path. A missing file is an empty index.
func Read(fs fsio.FS, path string) (*Index, error) {
	data, e := fs.ReadFile(path)
	if e != nil {
		if fsio.IsNotExist(e) {
			return NewIndex(), nil
		}
		return nil, err.New(pkgName, err.CodeIOFailure, "Read", "failed to read index", e)
	}
	return Parse(data)
}

// Write saves the index atomically.
func (idx *Index) Write(fs fsio.FS, path string) error {
	if e := fs.WriteFileAtomic(path, idx.Serialize(), 0o644); e != nil {
		return err.New(pkgName, err.CodeIOFailure, "Write", "failed to write index", e)
	}
	return nil
}
