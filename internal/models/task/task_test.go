package task_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"taskcli/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 45, 123456789, time.Local)
}

// TestNew тестирует создание новой задачи
func TestNew(t *testing.T) {
	created := task.New("7", "Buy milk", fixedTime())

	assert.Equal(t, "7", created.ID)
	assert.Equal(t, "Buy milk", created.Description)
	assert.Equal(t, task.StatusOpen, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, 0, created.CreatedAt.Nanosecond(), "время хранится с точностью до секунды")
}

func TestTimestamp_JSON(t *testing.T) {
	ts := task.NewTimestamp(fixedTime())

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15 10:30:45"`, string(data))

	var decoded task.Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, ts.Equal(decoded.Time))

	t.Run("wrong layout", func(t *testing.T) {
		var bad task.Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"2024-03-15T10:30:45Z"`), &bad))
	})

	t.Run("not a string", func(t *testing.T) {
		var bad task.Timestamp
		assert.Error(t, json.Unmarshal([]byte(`12345`), &bad))
	})
}

func TestTaskOptions(t *testing.T) {
	tests := []struct {
		name            string
		options         []task.TaskOption
		wantDescription string
		wantStatus      string
	}{
		{
			name:            "description and status",
			options:         []task.TaskOption{task.WithDescription("new"), task.WithStatus("done")},
			wantDescription: "new",
			wantStatus:      "done",
		},
		{
			name:            "empty description keeps existing",
			options:         []task.TaskOption{task.WithDescription(""), task.WithStatus("done")},
			wantDescription: "old",
			wantStatus:      "done",
		},
		{
			name:            "empty status is accepted",
			options:         []task.TaskOption{task.WithStatus("")},
			wantDescription: "old",
			wantStatus:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := &task.Task{ID: "1", Description: "old", Status: task.StatusOpen}
			task.Apply(tk, tt.options...)

			assert.Equal(t, tt.wantDescription, tk.Description)
			assert.Equal(t, tt.wantStatus, tk.Status)
			assert.Equal(t, "1", tk.ID)
		})
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{name: "empty collection", ids: nil, want: "1"},
		{name: "single", ids: []string{"1"}, want: "2"},
		{name: "gaps", ids: []string{"1", "5", "3"}, want: "6"},
		{name: "numeric not lexicographic", ids: []string{"9", "10"}, want: "11"},
		{name: "after deletion of max", ids: []string{"1", "2"}, want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := task.NewCollection()
			for _, id := range tt.ids {
				c.Put(task.New(id, "x", fixedTime()))
			}

			got, err := task.NextID(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextID_NonNumericKey(t *testing.T) {
	c := task.NewCollection()
	c.Put(task.New("1", "x", fixedTime()))
	c.Put(task.New("abc", "y", fixedTime()))

	_, err := task.NextID(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrInvalidID))

	var parseErr *task.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "abc", parseErr.ID)
}

func TestParseError_IncludesCause(t *testing.T) {
	c := task.NewCollection()
	c.Put(task.New("99999999999999999999999", "huge", fixedTime()))

	_, err := task.NextID(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrInvalidID))
	assert.True(t, errors.Is(err, strconv.ErrRange))
	assert.Contains(t, err.Error(), "value out of range")
}
