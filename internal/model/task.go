package model

import "time"

// Priority values offered by the add form. Other values are stored as-is.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Categories shipped in the default configuration.
const (
	CategoryBraveBits = "BraveBits"
	CategoryHREM      = "HREM"
	CategoryQE        = "QE"
)

// DefaultDetails replaces an empty details field on creation.
const DefaultDetails = "No detailed description"

// DateLayout is the ISO calendar date format used for Task.Date.
const DateLayout = "2006-01-02"

// Task is a single to-do item.
type Task struct {
	// ID is unique within the collection and increases with creation order.
	ID int64 `json:"id"`

	Title    string `json:"title"`
	Category string `json:"category"`
	Priority string `json:"priority"`

	// Date is the due date as an ISO calendar date (YYYY-MM-DD).
	Date string `json:"date"`

	Details   string    `json:"details"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskInput carries the user-entered fields for a new task.
type TaskInput struct {
	Title    string
	Category string
	Priority string
	Date     string
	Details  string
}
