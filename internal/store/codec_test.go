package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/storage"
)

func TestEncode_FieldNames(t *testing.T) {
	data, err := Encode([]model.Task{{
		ID:        1704101400000,
		Title:     "Write report",
		Category:  "BraveBits",
		Priority:  "high",
		Date:      "2024-01-01",
		Details:   "No detailed description",
		CreatedAt: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)

	assert.Equal(t, float64(1704101400000), raw[0]["id"])
	assert.Equal(t, "2024-01-01", raw[0]["date"])
	assert.Equal(t, false, raw[0]["completed"])
	assert.Equal(t, "2024-01-01T09:30:00Z", raw[0]["createdAt"])
	assert.ElementsMatch(t,
		[]string{"id", "title", "category", "priority", "date", "details", "completed", "createdAt"},
		keys(raw[0]),
	)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestEncode_EmptyIsArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecode_BrowserPayload(t *testing.T) {
	payload := `[{"id":1704101400000,"title":"Write report","category":"BraveBits",
		"priority":"high","date":"2024-01-01","details":"No detailed description",
		"completed":true,"createdAt":"2024-01-01T09:30:00.000Z"}]`

	tasks, err := Decode([]byte(payload))
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, int64(1704101400000), tasks[0].ID)
	assert.True(t, tasks[0].Completed)
	assert.True(t, tasks[0].CreatedAt.Equal(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)))
}

func TestDecode_LenientCreatedAt(t *testing.T) {
	payload := `[
		{"id":1,"title":"a","createdAt":"not-a-time"},
		{"id":2,"title":"b","createdAt":1704101400000},
		{"id":3,"title":"c","createdAt":"2024-01-01"},
		{"id":4,"title":"d"},
		{"id":5,"title":"e","createdAt":null}
	]`

	tasks, err := Decode([]byte(payload))
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	assert.True(t, tasks[0].CreatedAt.IsZero())
	assert.True(t, tasks[1].CreatedAt.Equal(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)))
	assert.True(t, tasks[2].CreatedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, tasks[3].CreatedAt.IsZero())
	assert.True(t, tasks[4].CreatedAt.IsZero())
}

func TestKVPersister_CorruptPayloadIsBackedUp(t *testing.T) {
	s := storage.NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "tasks", "[{"))

	_, err := NewKVPersister(s, "tasks").Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	backup, err := s.Get(ctx, "tasks.corrupt")
	require.NoError(t, err)
	assert.Equal(t, "[{", backup)
}

func TestDecode_EmptyAndNull(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		tasks, err := Decode([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, tasks)
		assert.NotNil(t, tasks)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	for _, in := range []string{"{", `{"id":1}`, `[{"id":"x"}]`} {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, ErrCorrupt, "input %q", in)
	}
}

func TestRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 5, 12, 0, 0, 123000000, time.UTC)
	tasks := []model.Task{
		{ID: 3, Title: "C", Category: "QE", Priority: "low", Date: "2024-03-07", Details: "d", CreatedAt: created},
		{ID: 2, Title: "B", Category: "Marketing", Priority: "urgent", Date: "2024-03-06", Details: "x", Completed: true, CreatedAt: created},
		{ID: 1, Title: "A", Category: "HREM", Priority: "high", Date: "2024-03-05", Details: "y", CreatedAt: created},
	}

	p := NewKVPersister(storage.NewMemoryStorage(), "")
	ctx := context.Background()
	require.NoError(t, p.Save(ctx, tasks))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
}

func TestKVPersister_MissingKey(t *testing.T) {
	p := NewKVPersister(storage.NewMemoryStorage(), "other")
	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
