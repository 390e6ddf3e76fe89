package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasklist/internal/model"
)

func TestNew_NoPathIsNop(t *testing.T) {
	logger, err := New(model.LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasklist.log")

	logger, err := New(model.LogConfig{Level: "debug", Path: path})
	require.NoError(t, err)
	logger.Debug("task added")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"task added"`)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(model.LogConfig{Level: "loud", Path: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}
