package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Household")
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = "data/budget.db"
	cfg.Storage.SaveDelay = 2 * time.Second
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Home")

	assert.Equal(t, "Home", cfg.Budget.Name)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Storage.SaveDelay)
	assert.True(t, cfg.Activity.Enabled)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Havenly", cfg.Git.AuthorName)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(""), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("storage:\n  backend: nosql\n"), 0o644))
	_, err = LoadOrDefault(dir)
	assert.ErrorContains(t, err, "storage.backend")
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("git:\n  auto_commit: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "havenly@localhost", cfg.Git.AuthorEmail)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.True(t, cfg.Activity.Enabled)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("storage: [oops"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")

	require.NoError(t, os.WriteFile(path, []byte("storage:\n  save_delay: -1s\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "save_delay")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Home")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Home")
	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "save_delay: 500ms")
	assert.Contains(t, contents, "auto_commit: false")
	assert.NotContains(t, contents, "path:")
}

func TestDefaultDir(t *testing.T) {
	t.Setenv(HomeEnv, "/tmp/budget-home")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/budget-home", dir)
}
