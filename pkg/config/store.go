package config

import (
	"path/filepath"

	"github.com/utkarsh5026/gitproject/pkg/fsio"
)

// Store reads and writes one JSON configuration file.
type Store struct {
	fs      fsio.FS
	path    string
	level   ConfigLevel
	entries map[string]string
}

// NewStore creates a new configuration store for a specific file and level
func NewStore(fs fsio.FS, path string, level ConfigLevel) *Store {
	return &Store{fs: fs, path: path, level: level, entries: make(map[string]string)}
}

// Load reads the file. A missing file is an empty configuration.
func (s *Store) Load() error {
	content, e := s.fs.ReadFile(s.path)
	if e != nil {
		if fsio.IsNotExist(e) {
			s.entries = make(map[string]string)
			return nil
		}
		return newError("Load", ioFailure, "failed to read "+s.path, e)
	}

	entries, e := Parse(content)
	if e != nil {
		return newError("Load", malformed, "invalid configuration in "+s.path, e)
	}
	s.entries = entries
	return nil
}

// Save writes the configuration atomically.
func (s *Store) Save() error {
	content, e := Serialize(s.entries)
	if e != nil {
		return e
	}
	if e := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); e != nil {
		return newError("Save", ioFailure, "failed to create directory for "+s.path, e)
	}
	if e := s.fs.WriteFileAtomic(s.path, content, 0o644); e != nil {
		return newError("Save", ioFailure, "failed to write "+s.path, e)
	}
	return nil
}

// Get returns the value stored for key.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Set stores value under key.
func (s *Store) Set(key, value string) {
	s.entries[key] = value
}

// Unset removes key.
func (s *Store) Unset(key string) {
	delete(s.entries, key)
}

// Entries returns a copy of the stored entries.
func (s *Store) Entries() map[string]string {
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}
