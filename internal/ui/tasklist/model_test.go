package tasklist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasklist/internal/keys"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/store"
)

type fakeSource struct {
	tasks []model.Task
}

func (f *fakeSource) FilteredTasks(filter string) []model.Task {
	var out []model.Task
	for _, t := range f.tasks {
		if filter == store.FilterAll || t.Category == filter {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeSource) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range f.tasks {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

func newTestList(tasks ...model.Task) Model {
	return New(&fakeSource{tasks: tasks}, keys.DefaultKeyMap(), []string{"BraveBits", "HREM", "QE"}, 80, 24)
}

func load(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestTabs_IncludeDiscoveredCategories(t *testing.T) {
	m := newTestList(model.Task{ID: 1, Title: "x", Category: "Marketing"})

	assert.Equal(t, []string{"all", "BraveBits", "HREM", "QE", "Marketing"}, m.Tabs())
	assert.Equal(t, store.FilterAll, m.Filter())
}

func TestSetFilter_LoadsMatchingTasks(t *testing.T) {
	m := newTestList(
		model.Task{ID: 3, Title: "q2", Category: "QE"},
		model.Task{ID: 2, Title: "h1", Category: "HREM"},
		model.Task{ID: 1, Title: "q1", Category: "QE"},
	)

	m = load(t, m, m.Init())
	assert.Len(t, m.list.Items(), 3)

	m = load(t, m, m.SetFilter("QE"))
	require.Len(t, m.list.Items(), 2)
	assert.Equal(t, "q2", m.list.Items()[0].(TaskItem).Task.Title)
	assert.Equal(t, "q1", m.list.Items()[1].(TaskItem).Task.Title)

	task, ok := m.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, int64(3), task.ID)
}

func TestSetFilter_UnknownCategoryGetsTab(t *testing.T) {
	m := newTestList()
	_ = m.SetFilter("Ops")

	assert.Equal(t, "Ops", m.Filter())
	assert.Contains(t, m.Tabs(), "Ops")
}

func TestStaleLoadIsIgnored(t *testing.T) {
	m := newTestList(model.Task{ID: 1, Title: "q", Category: "QE"})
	stale := m.LoadTasks()

	_ = m.SetFilter("HREM")
	m, _ = m.Update(stale())
	assert.Empty(t, m.list.Items())
}

func TestTabKeysCycle(t *testing.T) {
	m := newTestList()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "BraveBits", m.Filter())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "QE", m.Filter())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	assert.Equal(t, store.FilterAll, m.Filter())
}

func TestSelectEmitsSelectedTask(t *testing.T) {
	m := newTestList(model.Task{ID: 9, Title: "pick", Category: "QE"})
	m = load(t, m, m.Init())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedTaskMsg{TaskID: 9}, cmd())
}

func TestView_EmptyState(t *testing.T) {
	m := newTestList()
	m = load(t, m, m.Init())

	assert.Contains(t, m.View(), "No tasks yet")
}

func TestDelegateRender(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	d := TaskDelegate{Now: func() time.Time { return now }}

	out := d.render(model.Task{
		Title:    "Write report",
		Category: "BraveBits",
		Priority: "high",
		Date:     "2024-01-01",
	}, false)

	assert.Contains(t, out, "○ Write report")
	assert.Contains(t, out, "🚀 BraveBits")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Due: Today")

	done := d.render(model.Task{Title: "Ship", Category: "Other", Priority: "low", Date: "2024-01-02", Completed: true}, true)
	assert.True(t, strings.Contains(done, "✓"))
	assert.Contains(t, done, "📋 Other")
	assert.Contains(t, done, "Tomorrow")
}
