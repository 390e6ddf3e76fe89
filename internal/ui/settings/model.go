// Package settings shows the configuration file and edits it in place.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklist/internal/keys"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/storage"
	"github.com/nhle/tasklist/internal/theme"
)

// Mode represents the current state of the settings view.
type Mode int

const (
	ModeSummary Mode = iota // Show the current settings
	ModeForm                // Editing
	ModeSaving              // Checking storage and writing the file
)

// ClosedMsg signals the settings view should close.
type ClosedMsg struct{}

// SavedMsg is sent after the configuration file was written. Display
// settings apply at once; storage and log settings on the next start.
type SavedMsg struct {
	Config model.AppConfig
}

// saveResultMsg carries the outcome of checkAndSave.
type saveResultMsg struct {
	cfg model.AppConfig
	err error
}

// formBindings keeps huh Value pointers valid across model copies.
type formBindings struct {
	backend       string
	path          string
	keyringDir    string
	logLevel      string
	logPath       string
	categories    string
	defaultFilter string
}

// Model is the Bubble Tea model for the settings view.
type Model struct {
	mode    Mode
	path    string
	cfg     model.AppConfig
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model
	keys    *keys.KeyMap

	// Status message for transient feedback
	statusMsg string

	// openStorage checks that the edited storage settings work.
	openStorage func(model.StorageConfig) (storage.Storage, error)
	save        func(string, *model.AppConfig) error

	width, height int
}

// New creates a settings view editing the file at path, starting from cfg.
func New(path string, cfg model.AppConfig, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		mode:        ModeSummary,
		path:        path,
		cfg:         cfg,
		fb:          &formBindings{},
		spinner:     sp,
		keys:        k,
		openStorage: storage.Open,
		save:        model.SaveConfig,
		width:       width,
		height:      height,
	}
}

// Init resets the view to the summary.
func (m *Model) Init() tea.Cmd {
	m.mode = ModeSummary
	m.statusMsg = ""
	return nil
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveResultMsg:
		m.mode = ModeSummary
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			return m, nil
		}
		m.cfg = msg.cfg
		m.statusMsg = "Settings saved to " + m.path
		cfg := msg.cfg
		return m, func() tea.Msg { return SavedMsg{Config: cfg} }

	case spinner.TickMsg:
		if m.mode == ModeSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case ModeSummary:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m.handleSummaryKeys(msg)
		}
	case ModeForm:
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleSummaryKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return ClosedMsg{} }
	case msg.String() == "e", key.Matches(msg, m.keys.Select):
		return m, m.startForm()
	}
	return m, nil
}

func (m *Model) startForm() tea.Cmd {
	m.fb.backend = m.cfg.Storage.Backend
	m.fb.path = m.cfg.Storage.Path
	m.fb.keyringDir = m.cfg.Storage.KeyringDir
	m.fb.logLevel = m.cfg.Log.Level
	m.fb.logPath = m.cfg.Log.Path
	m.fb.categories = strings.Join(m.cfg.Display.Categories, ", ")
	m.fb.defaultFilter = m.cfg.Display.DefaultFilter
	m.statusMsg = ""
	m.form = m.buildForm()
	m.mode = ModeForm
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.form = nil
		m.mode = ModeSummary
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.mode = ModeSaving
		return m, tea.Batch(m.spinner.Tick, m.checkAndSave(m.edited()))
	case huh.StateAborted:
		m.form = nil
		m.mode = ModeSummary
		return m, nil
	}
	return m, cmd
}

// edited returns the configuration with the form values applied.
func (m Model) edited() model.AppConfig {
	cfg := m.cfg
	cfg.Storage.Backend = m.fb.backend
	cfg.Storage.Path = strings.TrimSpace(m.fb.path)
	cfg.Storage.KeyringDir = strings.TrimSpace(m.fb.keyringDir)
	cfg.Log.Level = m.fb.logLevel
	cfg.Log.Path = strings.TrimSpace(m.fb.logPath)
	cfg.Display.Categories = splitCategories(m.fb.categories)
	cfg.Display.DefaultFilter = strings.TrimSpace(m.fb.defaultFilter)
	if cfg.Display.DefaultFilter == "" {
		cfg.Display.DefaultFilter = "all"
	}
	return cfg
}

// checkAndSave opens the edited storage once to catch a bad path before
// writing the file. The memory backend needs no check.
func (m Model) checkAndSave(cfg model.AppConfig) tea.Cmd {
	open := m.openStorage
	save := m.save
	path := m.path
	return func() tea.Msg {
		if cfg.Storage.Backend != model.BackendMemory && cfg.Storage != m.cfg.Storage {
			s, err := open(cfg.Storage)
			if err != nil {
				return saveResultMsg{err: fmt.Errorf("checking storage: %w", err)}
			}
			_ = s.Close()
		}
		if err := save(path, &cfg); err != nil {
			return saveResultMsg{err: err}
		}
		return saveResultMsg{cfg: cfg}
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("SQLite file", model.BackendSQLite),
					huh.NewOption("System keyring", model.BackendKeyring),
					huh.NewOption("Memory (not saved)", model.BackendMemory),
				).
				Value(&m.fb.backend),
			huh.NewInput().
				Title("Storage path").
				Description("SQLite database file").
				Value(&m.fb.path),
			huh.NewInput().
				Title("Keyring directory").
				Description("Used by the keyring file backend").
				Placeholder("~/.config/tasklist/keyring").
				Value(&m.fb.keyringDir),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&m.fb.logLevel),
			huh.NewInput().
				Title("Log file").
				Placeholder("empty disables logging").
				Value(&m.fb.logPath),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Categories").
				Description("Comma separated").
				Value(&m.fb.categories).
				Validate(validateCategories),
			huh.NewInput().
				Title("Default tab").
				Placeholder("all").
				Value(&m.fb.defaultFilter),
		),
	).WithWidth(max(min(m.width-4, 100), 40))
}

// View renders the current mode.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var body string
	switch m.mode {
	case ModeForm:
		if m.form != nil {
			body = m.form.View()
		}
	case ModeSaving:
		body = m.spinner.View() + " Saving settings..."
	default:
		body = m.renderSummary()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("⚙️ Settings"), body)
	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

func (m Model) renderSummary() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(16)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	row := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return labelStyle.Render(label) + valStyle.Render(value)
	}

	lines := []string{
		row("Config file", m.path),
		row("Storage", m.cfg.Storage.Backend),
		row("Storage path", m.cfg.Storage.Path),
		row("Keyring directory", m.cfg.Storage.KeyringDir),
		row("Storage key", m.cfg.Storage.Key),
		row("Log level", m.cfg.Log.Level),
		row("Log file", m.cfg.Log.Path),
		row("Categories", strings.Join(m.cfg.Display.Categories, ", ")),
		row("Default tab", m.cfg.Display.DefaultFilter),
		"",
		theme.HelpStyle.Render("e edit | esc back"),
	}
	if m.statusMsg != "" {
		lines = append(lines, "", m.statusMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func splitCategories(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func validateCategories(s string) error {
	if len(splitCategories(s)) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	return nil
}
