package display

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIcon(t *testing.T) {
	assert.Equal(t, "🚀", CategoryIcon("BraveBits"))
	assert.Equal(t, "👥", CategoryIcon("HREM"))
	assert.Equal(t, "🔍", CategoryIcon("QE"))
	assert.Equal(t, DefaultIcon, CategoryIcon("Marketing"))
	assert.Equal(t, DefaultIcon, CategoryIcon(""))
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "🔴 High", PriorityLabel("high"))
	assert.Equal(t, "🟡 Medium", PriorityLabel("medium"))
	assert.Equal(t, "🟢 Low", PriorityLabel("low"))
	assert.Equal(t, "urgent", PriorityLabel("urgent"))
}

func TestDueLabel(t *testing.T) {
	now := time.Date(2024, 1, 31, 18, 45, 0, 0, time.UTC)

	assert.Equal(t, "Today", DueLabel("2024-01-31", now))
	assert.Equal(t, "Tomorrow", DueLabel("2024-02-01", now))
	assert.Equal(t, "1/30/2024", DueLabel("2024-01-30", now))
	assert.Equal(t, "12/25/2024", DueLabel("2024-12-25", now))
	assert.Equal(t, "next week", DueLabel("next week", now))
}

func TestDueLabel_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	// 20:00 UTC on Jan 31 is already Feb 1 at UTC+7.
	now := time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC).In(loc)

	assert.Equal(t, "Today", DueLabel("2024-02-01", now))
}

func TestToday(t *testing.T) {
	assert.Equal(t, "2024-03-09", Today(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)))
}

func TestNotifications(t *testing.T) {
	a := TaskAdded()
	b := TaskAdded()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, NotifySuccess, a.Kind)

	assert.Equal(t, "🎉 Task completed!", TaskToggled(true).Message)
	assert.Equal(t, "↩️ Task marked as incomplete!", TaskToggled(false).Message)
	assert.Equal(t, NotifyError, TaskDeleted().Kind)
	assert.Contains(t, Failure(errors.New("disk full")).Message, "disk full")
}

func TestLoadFailed(t *testing.T) {
	n := LoadFailed("todoTasks.corrupt")
	assert.Equal(t, NotifyError, n.Kind)
	assert.Contains(t, n.Message, "todoTasks.corrupt")
	assert.Equal(t, LoadFailedTTL, n.TTL)
	assert.Zero(t, TaskAdded().TTL)
}
