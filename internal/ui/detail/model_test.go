package detail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasklist/internal/keys"
	"github.com/nhle/tasklist/internal/model"
)

func newDetail(t *testing.T) Model {
	t.Helper()
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local) }
	return m
}

func TestView_Empty(t *testing.T) {
	m := newDetail(t)
	assert.Contains(t, m.View(), "No task selected")
}

func TestView_RendersTask(t *testing.T) {
	m := newDetail(t)
	m.SetTask(&model.Task{
		ID:       1,
		Title:    "Write report",
		Category: model.CategoryQE,
		Priority: model.PriorityHigh,
		Date:     "2024-03-11",
		Details:  "Quarterly numbers",
	})

	view := m.View()
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "🔍 QE")
	assert.Contains(t, view, "🔴 High")
	assert.Contains(t, view, "Tomorrow")
	assert.Contains(t, view, "Quarterly numbers")
}

func TestKeys_EmitActions(t *testing.T) {
	m := newDetail(t)
	m.SetTask(&model.Task{ID: 42, Title: "t", Date: "2024-03-10"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)
	assert.Equal(t, ActionMsg{Action: ActionToggle, TaskID: 42}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)
	assert.Equal(t, ActionMsg{Action: ActionDelete, TaskID: 42}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestKeys_NoTaskNoAction(t *testing.T) {
	m := newDetail(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
}
