package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklist/internal/theme"
)

// Name identifies a palette command.
type Name string

const (
	CmdAll    Name = "all"
	CmdFilter Name = "filter"
	CmdNew    Name = "new"
	CmdHelp   Name = "help"
	CmdQuit   Name = "quit"
)

var commandNames = []Name{CmdAll, CmdFilter, CmdNew, CmdHelp, CmdQuit}

// CommandMsg is emitted when the user executes a valid command.
type CommandMsg struct {
	Name Name
	Arg  string
}

// InvalidCommandMsg is emitted for input that does not parse.
type InvalidCommandMsg struct {
	Err error
}

// Parse turns palette input into a command. Names are case-insensitive;
// "q" is accepted for quit. The filter argument keeps its case because
// categories match exactly.
func Parse(input string) (CommandMsg, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return CommandMsg{}, fmt.Errorf("empty command")
	}

	name := Name(strings.ToLower(fields[0]))
	args := fields[1:]
	switch name {
	case CmdAll, CmdNew, CmdHelp:
	case CmdQuit, "q":
		name = CmdQuit
	case CmdFilter:
		if len(args) == 0 {
			return CommandMsg{}, fmt.Errorf("filter needs a category")
		}
		return CommandMsg{Name: CmdFilter, Arg: strings.Join(args, " ")}, nil
	default:
		return CommandMsg{}, fmt.Errorf("unknown command %q", fields[0])
	}
	if len(args) > 0 {
		return CommandMsg{}, fmt.Errorf("%s takes no arguments", name)
	}
	return CommandMsg{Name: name}, nil
}

// Model is the command palette view.
type Model struct {
	input      textinput.Model
	categories []string
	width      int
	height     int
}

// New creates a new command palette model. categories feed the
// suggestions for "filter".
func New(categories []string, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.Focus()
	ti.Width = width - 6

	m := Model{
		input:  ti,
		width:  width,
		height: height,
	}
	m.SetCategories(categories)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if input == "" {
			return m, nil
		}
		c, err := Parse(input)
		if err != nil {
			return m, func() tea.Msg { return InvalidCommandMsg{Err: err} }
		}
		return m, func() tea.Msg { return c }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()

	content := lipgloss.JoinVertical(lipgloss.Left, title, input)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetCategories refreshes the suggestions offered for "filter".
func (m *Model) SetCategories(categories []string) {
	m.categories = categories
	suggestions := make([]string, 0, len(commandNames)+len(categories))
	for _, n := range commandNames {
		if n != CmdFilter {
			suggestions = append(suggestions, string(n))
		}
	}
	for _, c := range categories {
		suggestions = append(suggestions, string(CmdFilter)+" "+c)
	}
	m.input.SetSuggestions(suggestions)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
