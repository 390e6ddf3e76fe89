// Package display maps task fields to the labels the UI shows.
package display

import (
	"time"

	"github.com/nhle/tasklist/internal/model"
)

// DefaultIcon is shown for categories without an entry in categoryIcons.
const DefaultIcon = "📋"

var categoryIcons = map[string]string{
	model.CategoryBraveBits: "🚀",
	model.CategoryHREM:      "👥",
	model.CategoryQE:        "🔍",
}

var priorityLabels = map[string]string{
	model.PriorityHigh:   "🔴 High",
	model.PriorityMedium: "🟡 Medium",
	model.PriorityLow:    "🟢 Low",
}

// CategoryIcon returns the icon for category.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return DefaultIcon
}

// PriorityLabel returns the display label for priority, or priority
// itself when it is not one of the known values.
func PriorityLabel(priority string) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}
	return priority
}

// DueLabel renders an ISO due date relative to now: "Today", "Tomorrow",
// or M/D/YYYY. Dates that do not parse are returned unchanged.
func DueLabel(date string, now time.Time) string {
	due, err := time.ParseInLocation(model.DateLayout, date, now.Location())
	if err != nil {
		return date
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch {
	case due.Equal(today):
		return "Today"
	case due.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return due.Format("1/2/2006")
	}
}

// Today returns now as an ISO calendar date, the add form's default.
func Today(now time.Time) string {
	return now.Format(model.DateLayout)
}
