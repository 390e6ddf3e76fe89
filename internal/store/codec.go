package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nhle/tasklist/internal/model"
)

// Encode serializes the collection as a single JSON array, preserving order.
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array produced by Encode. Empty input and a JSON
// null both decode to an empty collection.
//
// createdAt is informational, so a value that is not an RFC 3339 string
// (a millisecond number, a bare date, or garbage) does not reject the
// collection: numbers and known layouts are converted, anything else
// becomes the zero time.
func Decode(data []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Task{}, nil
	}

	var wire []wireTask
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	tasks := make([]model.Task, len(wire))
	for i, w := range wire {
		tasks[i] = model.Task{
			ID:        w.ID,
			Title:     w.Title,
			Category:  w.Category,
			Priority:  w.Priority,
			Date:      w.Date,
			Details:   w.Details,
			Completed: w.Completed,
			CreatedAt: parseCreatedAt(w.CreatedAt),
		}
	}
	return tasks, nil
}

// wireTask mirrors model.Task with createdAt left undecoded.
type wireTask struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Priority  string          `json:"priority"`
	Date      string          `json:"date"`
	Details   string          `json:"details"`
	Completed bool            `json:"completed"`
	CreatedAt json.RawMessage `json:"createdAt"`
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	model.DateLayout,
}

func parseCreatedAt(raw json.RawMessage) time.Time {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC()
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t
		}
	}
	return time.Time{}
}
