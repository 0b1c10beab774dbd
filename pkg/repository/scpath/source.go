package scpath

import "path/filepath"

// SourcePath is a path inside the .gitproject directory.
type SourcePath string

// String returns the path as a string
func (sp SourcePath) String() string {
	return string(sp)
}

// Join joins path elements to the source path
func (sp SourcePath) Join(elem ...string) SourcePath {
	return SourcePath(filepath.Join(append([]string{string(sp)}, elem...)...))
}

func (sp SourcePath) ObjectsPath() SourcePath { return sp.Join(ObjectsDir) }
func (sp SourcePath) HeadPath() SourcePath    { return sp.Join(HeadFile) }
func (sp SourcePath) IndexPath() SourcePath   { return sp.Join(IndexFile) }
func (sp SourcePath) ConfigPath() SourcePath  { return sp.Join(ConfigFile) }
func (sp SourcePath) JournalPath() SourcePath { return sp.Join(JournalFile) }
func (sp SourcePath) LockPath() SourcePath    { return sp.Join(LockFile) }

// ObjectFilePath returns objects/<fingerprint>. Objects are stored flat, one
// file per fingerprint.
func (sp SourcePath) ObjectFilePath(fingerprint string) SourcePath {
	return sp.ObjectsPath().Join(fingerprint)
}
