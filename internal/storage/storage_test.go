package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasklist/internal/model"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "todoTasks")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "todoTasks", `[]`))
	got, err := s.Get(ctx, "todoTasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	require.NoError(t, s.Set(ctx, "todoTasks", `[{"id":1}]`))
	got, err = s.Get(ctx, "todoTasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)

	require.NoError(t, s.Remove(ctx, "todoTasks"))
	_, err = s.Get(ctx, "todoTasks")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing twice is harmless.
	assert.NoError(t, s.Remove(ctx, "todoTasks"))
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestSQLiteStorage(t *testing.T) {
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStorage(t, s)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")
	ctx := context.Background()

	s, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "todoTasks", `[{"id":7}]`))
	require.NoError(t, s.Close())

	// Reopening must not re-run the applied migration.
	s, err = NewSQLiteStorage(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, "todoTasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":7}]`, got)
}

func TestKeyringStorage(t *testing.T) {
	exerciseStorage(t, NewKeyringStorage(keyring.NewArrayKeyring(nil)))
}

func TestOpen(t *testing.T) {
	s, err := Open(model.StorageConfig{Backend: model.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(model.StorageConfig{Backend: model.BackendSQLite, Path: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, s)
	require.NoError(t, s.Close())

	_, err = Open(model.StorageConfig{Backend: "redis"})
	assert.Error(t, err)
}

func TestOpen_KeyringUsesKeyringDir(t *testing.T) {
	var gotDir string
	orig := openKeyring
	openKeyring = func(dir string) (Storage, error) {
		gotDir = dir
		return NewKeyringStorage(keyring.NewArrayKeyring(nil)), nil
	}
	t.Cleanup(func() { openKeyring = orig })

	s, err := Open(model.StorageConfig{
		Backend:    model.BackendKeyring,
		Path:       "/home/me/.local/share/tasklist/tasks.db",
		KeyringDir: "/home/me/.config/tasklist/keyring",
	})
	require.NoError(t, err)
	assert.IsType(t, &KeyringStorage{}, s)
	assert.Equal(t, "/home/me/.config/tasklist/keyring", gotDir)

	_, err = Open(model.StorageConfig{Backend: model.BackendKeyring, Path: "tasks.db"})
	require.NoError(t, err)
	assert.Empty(t, gotDir)
}
