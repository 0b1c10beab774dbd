package config

import (
	"context"
	"errors"
	"testing"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
)

const (
	repoConfig   = "/w/.gitproject/config.json"
	userConfig   = "/home/ada/.gitprojectconfig.json"
	systemConfig = "/etc/gitproject/config.json"
)

func newTestManager(t *testing.T, files map[string]string, env map[string]string) *Manager {
	t.Helper()
	mfs := fsio.NewMemoryFS()
	for _, dir := range []string{"/w/.gitproject", "/home/ada", "/etc/gitproject"} {
		if e := mfs.MkdirAll(dir, 0o755); e != nil {
			t.Fatalf("MkdirAll: %v", e)
		}
	}
	for path, content := range files {
		if e := mfs.WriteFile(path, []byte(content), 0o644); e != nil {
			t.Fatalf("WriteFile: %v", e)
		}
	}

	m := NewManagerWithPaths(mfs, map[ConfigLevel]string{
		RepositoryLevel: repoConfig,
		UserLevel:       userConfig,
		SystemLevel:     systemConfig,
	})
	m.SetEnvLookup(func(k string) string { return env[k] })
	if e := m.Load(context.Background()); e != nil {
		t.Fatalf("Load: %v", e)
	}
	return m
}

func TestManager_Hierarchy(t *testing.T) {
	m := newTestManager(t, map[string]string{
		systemConfig: `{"user": {"name": "System", "email": "root@example.com"}, "core": {"compression": "none"}}`,
		userConfig:   `{"user": {"name": "Ada"}}`,
		repoConfig:   `{"core": {"compression": "zstd"}}`,
	}, nil)

	tests := []struct {
		key   string
		value string
		level ConfigLevel
	}{
		{KeyUserName, "Ada", UserLevel},
		{KeyUserEmail, "root@example.com", SystemLevel},
		{KeyCompression, "zstd", RepositoryLevel},
		{KeyLogFormat, "text", BuiltinLevel},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			entry := m.Get(tt.key)
			if entry == nil {
				t.Fatalf("Get(%q) returned nil", tt.key)
			}
			if entry.Value != tt.value || entry.Level != tt.level {
				t.Errorf("Get(%q) = %q at %s, want %q at %s", tt.key, entry.Value, entry.Level, tt.value, tt.level)
			}
		})
	}

	m.SetCommandLine(KeyCompression, "gzip")
	if got := m.Get(KeyCompression); got.Level != CommandLineLevel || got.Value != "gzip" {
		t.Errorf("command line should win, got %+v", got)
	}
}

func TestManager_EnvironmentOverrides(t *testing.T) {
	m := newTestManager(t, map[string]string{
		repoConfig: `{"user": {"name": "Repo Author"}}`,
	}, map[string]string{
		EnvAuthorName: "Env Author",
		EnvLogLevel:   "debug",
	})

	if got := m.GetString(KeyUserName, ""); got != "Env Author" {
		t.Errorf("user.name = %q, want the environment value", got)
	}
	if got := m.Get(KeyLogLevel); got.Level != EnvironmentLevel || got.Value != "debug" {
		t.Errorf("log.level = %+v", got)
	}
	if got := m.GetString("missing.key", "fallback"); got != "fallback" {
		t.Errorf("GetString fallback = %q", got)
	}

	m.SetCommandLine(KeyLogLevel, "error")
	if got := m.Get(KeyLogLevel); got.Level != CommandLineLevel || got.Value != "error" {
		t.Errorf("a command-line log.level should beat the environment, got %+v", got)
	}
}

func TestManager_MissingFilesAreEmpty(t *testing.T) {
	m := newTestManager(t, nil, nil)
	if m.Get(KeyUserName) != nil {
		t.Error("user.name should be unset")
	}
	if got := m.GetString(KeyCompression, ""); got != "gzip" {
		t.Errorf("builtin compression = %q", got)
	}
}

func TestManager_MalformedFile(t *testing.T) {
	mfs := fsio.NewMemoryFS()
	_ = mfs.MkdirAll("/w/.gitproject", 0o755)
	_ = mfs.WriteFile(repoConfig, []byte(`{"user": `), 0o644)

	m := NewManagerWithPaths(mfs, map[ConfigLevel]string{RepositoryLevel: repoConfig})
	m.SetEnvLookup(func(k string) string {
		if k == EnvAuthorName {
			return "Env Author"
		}
		return ""
	})
	e := m.Load(context.Background())
	if !errors.Is(e, err.ErrMalformedRecord) {
		t.Fatalf("Load error = %v, want malformed record", e)
	}
	if got := m.GetString(KeyUserName, ""); got != "Env Author" {
		t.Errorf("environment should survive a bad file, user.name = %q", got)
	}
}

func TestManager_SetPersists(t *testing.T) {
	m := newTestManager(t, nil, nil)

	if e := m.Set(KeyUserEmail, "ada@example.com", RepositoryLevel); e != nil {
		t.Fatalf("Set: %v", e)
	}
	if e := m.Set(KeyUserEmail, "x", BuiltinLevel); !errors.Is(e, err.ErrInvalidInput) {
		t.Errorf("Set on builtin error = %v, want invalid input", e)
	}

	if e := m.Load(context.Background()); e != nil {
		t.Fatalf("reload: %v", e)
	}
	if got := m.Get(KeyUserEmail); got == nil || got.Value != "ada@example.com" || got.Source != repoConfig {
		t.Errorf("after reload = %+v", got)
	}

	if e := m.Unset(KeyUserEmail, RepositoryLevel); e != nil {
		t.Fatalf("Unset: %v", e)
	}
	if m.Get(KeyUserEmail) != nil {
		t.Error("Unset did not remove the key")
	}
}

func TestManager_List(t *testing.T) {
	m := newTestManager(t, map[string]string{
		userConfig: `{"user": {"name": "Ada"}}`,
	}, nil)

	entries := m.List()
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	want := []string{KeyCompression, KeyLogFormat, KeyLogLevel, KeyUserName}
	if len(keys) != len(want) {
		t.Fatalf("List keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("List keys = %v, want %v", keys, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []ConfigLevel{CommandLineLevel, EnvironmentLevel, RepositoryLevel, UserLevel, SystemLevel, BuiltinLevel} {
		got, e := ParseLevel(l.String())
		if e != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, e)
		}
	}
	if _, e := ParseLevel("global"); e == nil {
		t.Error("expected error for an unknown level")
	}
}
