// Package config resolves settings from JSON files at repository, user and
// system level, environment variables, command-line overrides and builtin
// defaults.
package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"golang.org/x/sync/errgroup"
)

// Default configuration paths
const (
	WindowsProgramDataPath = `C:\ProgramData\gitproject`
	UnixSystemPath         = "/etc/gitproject"
	ConfigFileName         = "config.json"
	UserConfigFileName     = ".gitprojectconfig.json"
)

// Manager is the central configuration manager that handles the hierarchy of config files
// It is thread-safe and can be used concurrently
type Manager struct {
	mu          sync.RWMutex
	stores      map[ConfigLevel]*Store
	commandLine map[string]string
	environment map[string]string
	getenv      func(string) string
}

// NewManager creates a manager for the standard file locations. An empty
// sourcePath leaves out the repository level.
func NewManager(fs fsio.FS, sourcePath scpath.SourcePath) *Manager {
	paths := map[ConfigLevel]string{SystemLevel: SystemConfigPath()}
	if p := UserConfigPath(); p != "" {
		paths[UserLevel] = p
	}
	if sourcePath != "" {
		paths[RepositoryLevel] = sourcePath.ConfigPath().String()
	}
	return NewManagerWithPaths(fs, paths)
}

// NewManagerWithPaths creates a manager with explicit file locations per level.
func NewManagerWithPaths(fs fsio.FS, paths map[ConfigLevel]string) *Manager {
	m := &Manager{
		stores:      make(map[ConfigLevel]*Store),
		commandLine: make(map[string]string),
		environment: make(map[string]string),
		getenv:      os.Getenv,
	}
	for level, path := range paths {
		if level.CanWrite() && path != "" {
			m.stores[level] = NewStore(fs, path, level)
		}
	}
	return m
}

// SystemConfigPath returns the platform's system-wide config file.
func SystemConfigPath() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(WindowsProgramDataPath, ConfigFileName)
	}
	return filepath.Join(UnixSystemPath, ConfigFileName)
}

// UserConfigPath returns ~/.gitprojectconfig.json, or "" without a home directory.
func UserConfigPath() string {
	home, e := os.UserHomeDir()
	if e != nil {
		return ""
	}
	return filepath.Join(home, UserConfigFileName)
}

// SetEnvLookup replaces os.Getenv, mainly for tests.
func (m *Manager) SetEnvLookup(getenv func(string) string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getenv = getenv
}

// Load reads every configuration file concurrently and snapshots the
// environment overrides. The environment is captured even when a file fails
// to load.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)
	for _, store := range m.stores {
		s := store
		g.Go(func() error {
			return s.Load()
		})
	}

	m.environment = make(map[string]string)
	for env, key := range envKeys {
		if v := m.getenv(env); v != "" {
			m.environment[key] = v
		}
	}
	return g.Wait()
}

// Get retrieves a configuration value, respecting the hierarchy
// Returns the highest precedence value, or nil if not found
func (m *Manager) Get(key string) *ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUnsafe(key)
}

func (m *Manager) getUnsafe(key string) *ConfigEntry {
	if v, ok := m.commandLine[key]; ok {
		return NewEntry(key, v, CommandLineLevel, "")
	}
	if v, ok := m.environment[key]; ok {
		return NewEntry(key, v, EnvironmentLevel, "")
	}
	for _, level := range FileLevels {
		if s, ok := m.stores[level]; ok {
			if v, ok := s.Get(key); ok {
				return NewEntry(key, v, level, s.Path())
			}
		}
	}
	if v, ok := builtinDefaults[key]; ok {
		return NewEntry(key, v, BuiltinLevel, "")
	}
	return nil
}

// GetString returns the effective value of key, or fallback.
func (m *Manager) GetString(key, fallback string) string {
	if e := m.Get(key); e != nil && e.Value != "" {
		return e.Value
	}
	return fallback
}

// Set stores a value at a writable level and saves that file.
func (m *Manager) Set(key, value string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, e := m.writableStore("Set", level)
	if e != nil {
		return e
	}
	s.Set(key, value)
	return s.Save()
}

// Unset removes a key at a writable level and saves that file.
func (m *Manager) Unset(key string, level ConfigLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, e := m.writableStore("Unset", level)
	if e != nil {
		return e
	}
	s.Unset(key)
	return s.Save()
}

func (m *Manager) writableStore(op string, level ConfigLevel) (*Store, error) {
	if !level.CanWrite() {
		return nil, newError(op, invalidInput, "configuration level is read-only: "+level.String(), nil)
	}
	s, ok := m.stores[level]
	if !ok {
		return nil, newError(op, invalidInput, "no configuration file for level "+level.String(), nil)
	}
	return s, nil
}

// SetCommandLine sets a command-line configuration value
func (m *Manager) SetCommandLine(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandLine[key] = value
}

// List returns all effective configuration entries sorted by key.
func (m *Manager) List() []*ConfigEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make(map[string]struct{})
	for k := range m.commandLine {
		keys[k] = struct{}{}
	}
	for k := range m.environment {
		keys[k] = struct{}{}
	}
	for _, s := range m.stores {
		for k := range s.Entries() {
			keys[k] = struct{}{}
		}
	}
	for k := range builtinDefaults {
		keys[k] = struct{}{}
	}

	out := make([]*ConfigEntry, 0, len(keys))
	for k := range keys {
		out = append(out, m.getUnsafe(k))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
