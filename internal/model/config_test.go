package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.Path)
	assert.Equal(t, DefaultCategories(), cfg.Display.Categories)
	assert.Equal(t, "all", cfg.Display.DefaultFilter)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `storage:
  backend: memory
  keyring_dir: /tmp/tasklist-keyring
log:
  level: debug
  path: /tmp/tasklist.log
display:
  categories: [Home, Work]
  default_filter: Work
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, "/tmp/tasklist-keyring", cfg.Storage.KeyringDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/tasklist.log", cfg.Log.Path)
	assert.Equal(t, []string{"Home", "Work"}, cfg.Display.Categories)
	assert.Equal(t, "Work", cfg.Display.DefaultFilter)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: floppy\n"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "floppy")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Storage.Backend = BackendKeyring
	cfg.Storage.Path = "/tmp/keys"
	cfg.Display.DefaultFilter = CategoryQE

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendKeyring, loaded.Storage.Backend)
	assert.Equal(t, "/tmp/keys", loaded.Storage.Path)
	assert.Equal(t, CategoryQE, loaded.Display.DefaultFilter)
}
