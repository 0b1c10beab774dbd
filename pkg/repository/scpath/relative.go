package scpath

import (
	"path"
	"path/filepath"
	"strings"
)

// RelativePath is a normalized working-tree-relative path (forward slashes, no ..)
// Example: "src/main.go" or "docs/README.md"
type RelativePath string

// String returns the path as a string
func (rp RelativePath) String() string {
	return string(rp)
}

// IsValid checks if this is a usable relative path. Newlines are rejected
// because index and tree records are line based.
func (rp RelativePath) IsValid() bool {
	s := filepath.ToSlash(string(rp))
	if s == "" || s == "." || path.IsAbs(s) || filepath.IsAbs(string(rp)) {
		return false
	}
	if strings.ContainsAny(s, "\n\r") {
		return false
	}
	for _, c := range strings.Split(path.Clean(s), "/") {
		if c == ".." {
			return false
		}
	}
	return true
}

// Normalize converts to forward slashes and cleans the path.
func (rp RelativePath) Normalize() RelativePath {
	normalized := path.Clean(filepath.ToSlash(string(rp)))
	return RelativePath(strings.TrimPrefix(normalized, "./"))
}

// Components returns the path components
func (rp RelativePath) Components() []string {
	normalized := rp.Normalize()
	if normalized == "" || normalized == "." {
		return []string{}
	}
	return strings.Split(string(normalized), "/")
}

// Base returns the last element of the path
func (rp RelativePath) Base() string {
	c := rp.Components()
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// IsInternal reports whether the path lies inside the repository directory.
func (rp RelativePath) IsInternal() bool {
	c := rp.Components()
	return len(c) > 0 && c[0] == SourceDir
}
