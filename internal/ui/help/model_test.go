package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/tasklist/internal/keys"
)

func TestView_ListsKeysAndCommands(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 40)
	view := m.View()

	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "new task")
	assert.Contains(t, view, ":filter <category>")
	assert.Contains(t, view, ":quit")
}
