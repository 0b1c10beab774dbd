package fsio

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS is an in-memory FS for tests. Paths are cleaned and converted to
// forward slashes; "/" and "." always exist.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]memFile
	dirs  map[string]struct{}
}

type memFile struct {
	data    []byte
	perm    os.FileMode
	modTime time.Time
}

// NewMemoryFS returns an empty in-memory file system.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string]memFile),
		dirs:  map[string]struct{}{"/": {}, ".": {}},
	}
}

func clean(p string) string {
	if p == "" {
		return "."
	}
	return path.Clean(filepath.ToSlash(p))
}

func pathErr(op, p string, e error) error {
	return &fs.PathError{Op: op, Path: p, Err: e}
}

func (m *MemoryFS) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[clean(p)]
	if !ok {
		return nil, pathErr("open", p, fs.ErrNotExist)
	}
	return append([]byte(nil), f.data...), nil
}

func (m *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeLocked(p, data, perm)
}

func (m *MemoryFS) WriteFileAtomic(p string, data []byte, perm os.FileMode) error {
	return m.WriteFile(p, data, perm)
}

func (m *MemoryFS) CreateExclusive(p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := clean(p)
	if _, ok := m.files[c]; ok {
		return pathErr("open", p, fs.ErrExist)
	}
	if _, ok := m.dirs[c]; ok {
		return pathErr("open", p, fs.ErrExist)
	}
	return m.writeLocked(p, data, 0o644)
}

func (m *MemoryFS) writeLocked(p string, data []byte, perm os.FileMode) error {
	c := clean(p)
	if _, ok := m.dirs[path.Dir(c)]; !ok {
		return pathErr("open", p, fs.ErrNotExist)
	}
	if _, ok := m.dirs[c]; ok {
		return pathErr("open", p, fs.ErrInvalid)
	}
	m.files[c] = memFile{data: append([]byte(nil), data...), perm: perm, modTime: time.Now()}
	return nil
}

func (m *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for d := clean(p); d != "/" && d != "."; d = path.Dir(d) {
		if _, ok := m.files[d]; ok {
			return pathErr("mkdir", d, fs.ErrExist)
		}
		m.dirs[d] = struct{}{}
	}
	return nil
}

func (m *MemoryFS) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := clean(p)
	if _, ok := m.files[c]; ok {
		delete(m.files, c)
		return nil
	}
	if _, ok := m.dirs[c]; ok {
		if len(m.childrenLocked(c)) > 0 {
			return pathErr("remove", p, fs.ErrInvalid)
		}
		delete(m.dirs, c)
		return nil
	}
	return pathErr("remove", p, fs.ErrNotExist)
}

func (m *MemoryFS) RemoveAll(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := clean(p)
	prefix := c + "/"
	if c == "/" {
		prefix = "/"
	}
	for f := range m.files {
		if f == c || strings.HasPrefix(f, prefix) {
			delete(m.files, f)
		}
	}
	for d := range m.dirs {
		if d == "/" || d == "." {
			continue
		}
		if d == c || strings.HasPrefix(d, prefix) {
			delete(m.dirs, d)
		}
	}
	return nil
}

func (m *MemoryFS) Stat(p string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := clean(p)
	if f, ok := m.files[c]; ok {
		return &memInfo{name: path.Base(c), size: int64(len(f.data)), mode: f.perm, modTime: f.modTime}, nil
	}
	if _, ok := m.dirs[c]; ok {
		return &memInfo{name: path.Base(c), mode: fs.ModeDir | 0o755, dir: true}, nil
	}
	return nil, pathErr("stat", p, fs.ErrNotExist)
}

// ReadDir lists the direct children of p sorted by name, like os.ReadDir.
func (m *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := clean(p)
	if _, ok := m.dirs[c]; !ok {
		return nil, pathErr("open", p, fs.ErrNotExist)
	}
	out := m.childrenLocked(c)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (m *MemoryFS) childrenLocked(dir string) []os.DirEntry {
	var out []os.DirEntry
	for d := range m.dirs {
		if d != dir && d != "/" && d != "." && path.Dir(d) == dir {
			out = append(out, memDirEntry{info: &memInfo{name: path.Base(d), mode: fs.ModeDir | 0o755, dir: true}})
		}
	}
	for name, f := range m.files {
		if path.Dir(name) == dir {
			out = append(out, memDirEntry{info: &memInfo{name: path.Base(name), size: int64(len(f.data)), mode: f.perm, modTime: f.modTime}})
		}
	}
	return out
}

func (m *MemoryFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := clean(p)
	_, isFile := m.files[c]
	_, isDir := m.dirs[c]
	return isFile || isDir
}

func (m *MemoryFS) IsDir(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.dirs[clean(p)]
	return ok
}

type memInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	dir     bool
}

func (i *memInfo) Name() string       { return i.name }
func (i *memInfo) Size() int64        { return i.size }
func (i *memInfo) Mode() fs.FileMode  { return i.mode }
func (i *memInfo) ModTime() time.Time { return i.modTime }
func (i *memInfo) IsDir() bool        { return i.dir }
func (i *memInfo) Sys() any           { return nil }

type memDirEntry struct {
	info *memInfo
}

func (d memDirEntry) Name() string               { return d.info.name }
func (d memDirEntry) IsDir() bool                { return d.info.dir }
func (d memDirEntry) Type() fs.FileMode          { return d.info.mode.Type() }
func (d memDirEntry) Info() (os.FileInfo, error) { return d.info, nil }
