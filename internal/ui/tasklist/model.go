package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklist/internal/keys"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/store"
	"github.com/nhle/tasklist/internal/theme"
)

// TaskSource is the read side of the task store used by the list.
type TaskSource interface {
	FilteredTasks(filter string) []model.Task
	Categories() []string
}

// TasksLoadedMsg is sent when tasks have been read from the store.
type TasksLoadedMsg struct {
	Filter string
	Tasks  []model.Task
}

// SelectedTaskMsg is sent when a user selects a task to view details.
type SelectedTaskMsg struct {
	TaskID int64
}

// Model is the main task list view: category tabs above a list.
type Model struct {
	list       list.Model
	store      TaskSource
	keys       *keys.KeyMap
	configured []string
	tabs       []string
	filter     string
	width      int
	height     int
}

// New creates a task list model. categories are the configured tabs;
// categories found in the store are appended after them.
func New(s TaskSource, k *keys.KeyMap, categories []string, width, height int) Model {
	l := list.New([]list.Item{}, TaskDelegate{Now: time.Now}, width, height-2)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("task", "tasks")
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	m := Model{
		list:       l,
		store:      s,
		keys:       k,
		configured: append([]string(nil), categories...),
		filter:     store.FilterAll,
		width:      width,
		height:     height,
	}
	m.refreshTabs()
	return m
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		// Drop results for a tab that is no longer active.
		if msg.Filter != m.filter {
			return m, nil
		}
		m.refreshTabs()
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{TaskID: item.Task.ID}
		}

	case key.Matches(msg, m.keys.NextTab):
		return m, m.SetFilter(m.tabs[(m.tabIndex()+1)%len(m.tabs)])

	case key.Matches(msg, m.keys.PrevTab):
		i := m.tabIndex() - 1
		if i < 0 {
			i = len(m.tabs) - 1
		}
		return m, m.SetFilter(m.tabs[i])

	case key.Matches(msg, m.keys.AllTab):
		return m, m.SetFilter(store.FilterAll)
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SetFilter makes filter the active tab and reloads the list.
func (m *Model) SetFilter(filter string) tea.Cmd {
	if filter == "" {
		filter = store.FilterAll
	}
	m.filter = filter
	m.refreshTabs()
	m.list.ResetSelected()
	return m.LoadTasks()
}

// SetCategories replaces the configured tabs.
func (m *Model) SetCategories(categories []string) {
	m.configured = append([]string(nil), categories...)
	m.refreshTabs()
}

// Filter returns the active filter ("all" or a category).
func (m Model) Filter() string {
	return m.filter
}

// Tabs returns the tab labels in display order, starting with "all".
func (m Model) Tabs() []string {
	return m.tabs
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

func (m Model) tabIndex() int {
	for i, t := range m.tabs {
		if t == m.filter {
			return i
		}
	}
	return 0
}

// refreshTabs rebuilds the tab list from configured and stored categories.
// An active filter with no tab of its own (set from the command palette)
// is kept visible.
func (m *Model) refreshTabs() {
	seen := map[string]bool{store.FilterAll: true}
	tabs := []string{store.FilterAll}
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			tabs = append(tabs, c)
		}
	}
	for _, c := range m.configured {
		add(c)
	}
	for _, c := range m.store.Categories() {
		add(c)
	}
	add(m.filter)
	m.tabs = tabs
}

// View renders the tabs and the list.
func (m Model) View() string {
	tabs := m.renderTabs()
	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, tabs, m.renderEmptyState())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabs, m.list.View())
}

func (m Model) renderTabs() string {
	rendered := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		label := t
		if t == store.FilterAll {
			label = "All"
		}
		if t == m.filter {
			rendered[i] = theme.ActiveTabStyle.Render(label)
		} else {
			rendered[i] = theme.TabStyle.Render(label)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return lipgloss.NewStyle().Width(m.width).MarginBottom(1).Render(row)
}

// renderEmptyState shows guidance text when the active tab has no tasks.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter != store.FilterAll {
		return style.Render(fmt.Sprintf("🤷 No %s tasks yet\n\nPress n to add one.", m.filter))
	}
	return style.Render("🤷 No tasks yet\n\nAdd your first task! Press n.")
}

// LoadTasks returns a tea.Cmd that reads the active tab from the store.
func (m Model) LoadTasks() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		return TasksLoadedMsg{Filter: filter, Tasks: s.FilteredTasks(filter)}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
