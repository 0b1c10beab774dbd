// Package scpath defines typed paths for the working tree and the repository
// directory, so absolute, repository-internal and working-tree-relative paths
// cannot be mixed up by accident.
package scpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryPath is the absolute path of a working directory root.
// Example: "/home/user/myproject"
type RepositoryPath string

// NewRepositoryPath creates a new RepositoryPath from a string
func NewRepositoryPath(path string) (RepositoryPath, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return RepositoryPath(absPath), nil
}

// String returns the path as a string
func (rp RepositoryPath) String() string {
	return string(rp)
}

// IsValid checks if this is a valid absolute path
func (rp RepositoryPath) IsValid() bool {
	return filepath.IsAbs(string(rp))
}

// Join joins path elements to the repository path
func (rp RepositoryPath) Join(elem ...string) string {
	return filepath.Join(append([]string{string(rp)}, elem...)...)
}

// SourcePath returns the path to the .gitproject directory
func (rp RepositoryPath) SourcePath() SourcePath {
	return SourcePath(filepath.Join(string(rp), SourceDir))
}

// JoinRelative resolves a working-tree-relative path to an absolute one.
func (rp RepositoryPath) JoinRelative(relPath RelativePath) (string, error) {
	if !relPath.IsValid() {
		return "", fmt.Errorf("invalid relative path: %q", relPath)
	}
	return filepath.Join(string(rp), filepath.FromSlash(string(relPath.Normalize()))), nil
}

// Rel converts p (absolute, or relative to the repository root) into a
// normalized working-tree-relative path. Paths outside the working tree are
// rejected.
func (rp RepositoryPath) Rel(p string) (RelativePath, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(string(rp), p)
	}
	rel, err := filepath.Rel(string(rp), filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes repository: %s", p)
	}
	return RelativePath(rel).Normalize(), nil
}
