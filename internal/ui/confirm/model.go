// Package confirm asks the user to confirm a task deletion.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/theme"
)

// DeleteConfirmedMsg is sent when the user confirms the deletion.
type DeleteConfirmedMsg struct {
	TaskID int64
}

// DeleteCancelledMsg is sent when the user declines or aborts.
type DeleteCancelledMsg struct{}

type bindings struct {
	confirmed bool
}

// Model wraps a huh confirm prompt for a single task.
type Model struct {
	form   *huh.Form
	b      *bindings
	taskID int64
	width  int
}

// New creates an idle confirmation model.
func New(width int) Model {
	return Model{b: &bindings{}, width: width}
}

// Ask starts a prompt for deleting task.
func (m *Model) Ask(task model.Task) tea.Cmd {
	m.taskID = task.ID
	m.b.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", task.Title)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.b.confirmed),
		),
	).WithWidth(max(m.width-4, 30)).WithShowHelp(false)
	return m.form.Init()
}

// Active reports whether a prompt is showing.
func (m Model) Active() bool {
	return m.form != nil
}

// Update forwards input to the prompt and reports the answer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.result()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return DeleteCancelledMsg{} }
	}
	return m, cmd
}

func (m Model) result() tea.Cmd {
	if !m.b.confirmed {
		return func() tea.Msg { return DeleteCancelledMsg{} }
	}
	id := m.taskID
	return func() tea.Msg { return DeleteConfirmedMsg{TaskID: id} }
}

// View renders the prompt.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return theme.DetailPanelStyle.
		BorderForeground(theme.ColorRed).
		Render(m.form.View())
}

// SetWidth updates the prompt width for the next Ask.
func (m *Model) SetWidth(width int) {
	m.width = width
}
