package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.FirstRun {
		t.Error("expected first_run to default to true")
	}
	if cfg.Git.DefaultBranch != "main" {
		t.Errorf("expected default branch 'main', got %q", cfg.Git.DefaultBranch)
	}
	if cfg.Git.RemoteName != "origin" {
		t.Errorf("expected remote 'origin', got %q", cfg.Git.RemoteName)
	}
	if cfg.Git.LogLimit != 10 {
		t.Errorf("expected log limit 10, got %d", cfg.Git.LogLimit)
	}
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(home, ".gitonboard", "config.toml"))
	assert.True(t, cfg.FirstRun)
	assert.Equal(t, filepath.Join(home, ".gitonboard"), cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(home, ".gitonboard", "onboard.db"), GetDBPath(cfg))
	assert.Equal(t, filepath.Join(home, ".gitonboard", "onboard.log"), GetLogPath(cfg))
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg := DefaultConfig()
	cfg.FirstRun = false
	cfg.Git.DefaultBranch = "trunk"
	cfg.UI.ProtectedPaths = []string{`\secret`, `\vault`}
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.False(t, loaded.FirstRun)
	assert.Equal(t, "trunk", loaded.Git.DefaultBranch)
	assert.Equal(t, []string{`\secret`, `\vault`}, loaded.UI.ProtectedPaths)
}

func TestLoad_FillsBlankValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir := filepath.Join(home, ".gitonboard")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "first_run = false\n[git]\nbinary = \"\"\nlog_limit = 0\n[storage]\ndata_dir = \"~/onboard-data\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.Equal(t, 10, cfg.Git.LogLimit)
	assert.Equal(t, "origin", cfg.Git.RemoteName)
	assert.Equal(t, filepath.Join(home, "onboard-data"), cfg.Storage.DataDir)
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		key     string
		raw     string
		wantErr bool
		check   func(*Config) bool
	}{
		{"git.log_limit", "25", false, func(c *Config) bool { return c.Git.LogLimit == 25 }},
		{"git.log_limit", "-1", true, nil},
		{"git.log_limit", "many", true, nil},
		{"ui.plain", "true", false, func(c *Config) bool { return c.UI.Plain }},
		{"ui.plain", "sometimes", true, nil},
		{"git.remote_name", "", true, nil},
		{"ui.protected_paths", ` \a , ,\b`, false, func(c *Config) bool { return len(c.UI.ProtectedPaths) == 2 }},
		{"log.level", "debug", false, func(c *Config) bool { return c.Log.Level == "debug" }},
		{"log.level", "loud", true, nil},
		{"first_run", "true", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.raw, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply", tt.key, tt.raw)
			}
		})
	}
}

func TestConfig_Get(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.ProtectedPaths = []string{"a", "b"}

	got, err := cfg.Get("ui.protected_paths")
	require.NoError(t, err)
	assert.Equal(t, "a,b", got)

	got, err = cfg.Get("git.log_limit")
	require.NoError(t, err)
	assert.Equal(t, "10", got)

	_, err = cfg.Get("nope")
	assert.Error(t, err)

	for _, key := range EditableKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}
