package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasklist/internal/keys"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/storage"
)

func testConfig() model.AppConfig {
	return model.AppConfig{
		Storage: model.StorageConfig{Backend: model.BackendSQLite, Path: "/tmp/tasks.db", Key: model.DefaultStorageKey},
		Log:     model.LogConfig{Level: "info"},
		Display: model.DisplayConfig{Categories: model.DefaultCategories(), DefaultFilter: "all"},
	}
}

func TestSplitCategories(t *testing.T) {
	assert.Equal(t, []string{"Home", "Work"}, splitCategories(" Home, Work ,,Home"))
	assert.Nil(t, splitCategories(" , "))
	assert.Error(t, validateCategories(""))
	assert.NoError(t, validateCategories("Home"))
}

func TestEdited(t *testing.T) {
	m := New("/tmp/config.yaml", testConfig(), keys.DefaultKeyMap(), 80, 24)
	_ = m.startForm()
	assert.Equal(t, "BraveBits, HREM, QE", m.fb.categories)

	m.fb.backend = model.BackendMemory
	m.fb.categories = "Home, Work"
	m.fb.defaultFilter = " "
	m.fb.keyringDir = " /tmp/keyring "

	cfg := m.edited()
	assert.Equal(t, model.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, model.DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, "/tmp/tasks.db", cfg.Storage.Path)
	assert.Equal(t, "/tmp/keyring", cfg.Storage.KeyringDir)
	assert.Equal(t, []string{"Home", "Work"}, cfg.Display.Categories)
	assert.Equal(t, "all", cfg.Display.DefaultFilter)
}

func TestCheckAndSave_WritesConfig(t *testing.T) {
	m := New("/tmp/config.yaml", testConfig(), keys.DefaultKeyMap(), 80, 24)
	var opened model.StorageConfig
	m.openStorage = func(c model.StorageConfig) (storage.Storage, error) {
		opened = c
		return storage.NewMemoryStorage(), nil
	}
	var savedPath string
	m.save = func(path string, cfg *model.AppConfig) error {
		savedPath = path
		return nil
	}

	cfg := testConfig()
	cfg.Storage.Path = "/tmp/other.db"
	msg := m.checkAndSave(cfg)()

	assert.Equal(t, saveResultMsg{cfg: cfg}, msg)
	assert.Equal(t, "/tmp/other.db", opened.Path)
	assert.Equal(t, "/tmp/config.yaml", savedPath)
}

func TestCheckAndSave_StorageFailure(t *testing.T) {
	m := New("/tmp/config.yaml", testConfig(), keys.DefaultKeyMap(), 80, 24)
	m.openStorage = func(model.StorageConfig) (storage.Storage, error) {
		return nil, errors.New("permission denied")
	}
	m.save = func(string, *model.AppConfig) error {
		t.Fatal("config must not be written when storage fails")
		return nil
	}

	cfg := testConfig()
	cfg.Storage.Path = "/root/nope.db"
	msg, ok := m.checkAndSave(cfg)().(saveResultMsg)
	require.True(t, ok)
	assert.ErrorContains(t, msg.err, "permission denied")
}

func TestSaveResult_EmitsSaved(t *testing.T) {
	m := New("/tmp/config.yaml", testConfig(), keys.DefaultKeyMap(), 80, 24)
	m.mode = ModeSaving

	cfg := testConfig()
	cfg.Display.DefaultFilter = model.CategoryQE
	m, cmd := m.Update(saveResultMsg{cfg: cfg})

	assert.Equal(t, ModeSummary, m.mode)
	require.NotNil(t, cmd)
	assert.Equal(t, SavedMsg{Config: cfg}, cmd())
	assert.Contains(t, m.View(), "Settings saved")
}

func TestSummaryKeys(t *testing.T) {
	m := New("/tmp/config.yaml", testConfig(), keys.DefaultKeyMap(), 80, 24)
	assert.Contains(t, m.View(), "/tmp/tasks.db")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, ClosedMsg{}, cmd())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.Equal(t, ModeForm, m.mode)
}
