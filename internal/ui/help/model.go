package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklist/internal/keys"
	"github.com/nhle/tasklist/internal/theme"
)

// commandHelp lists the command palette commands shown under the keys.
var commandHelp = [][2]string{
	{"all", "show every task"},
	{"filter <category>", "show one category"},
	{"new", "add a task"},
	{"help", "show this screen"},
	{"quit", "exit"},
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	cmdStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(20)
	descStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	lines := []string{
		titleStyle.Render("Keyboard Shortcuts"),
		helpText,
		"",
		titleStyle.Render("Commands"),
	}
	for _, c := range commandHelp {
		lines = append(lines, cmdStyle.Render(":"+c[0])+descStyle.Render(c[1]))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
