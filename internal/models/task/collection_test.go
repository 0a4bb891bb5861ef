package task_test

import (
	"encoding/json"
	"testing"

	"taskcli/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_PutGetDelete(t *testing.T) {
	c := task.NewCollection()
	assert.Equal(t, 0, c.Len())

	c.Put(task.New("1", "first", fixedTime()))
	c.Put(task.New("2", "second", fixedTime()))
	c.Put(task.New("3", "third", fixedTime()))
	assert.Equal(t, []string{"1", "2", "3"}, c.IDs())

	// замена сохраняет позицию
	c.Put(&task.Task{ID: "1", Description: "replaced"})
	assert.Equal(t, []string{"1", "2", "3"}, c.IDs())
	got, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "replaced", got.Description)

	assert.True(t, c.Delete("2"))
	assert.False(t, c.Delete("2"))
	assert.Equal(t, []string{"1", "3"}, c.IDs())

	_, ok = c.Get("2")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.All())
}

func TestCollection_Clone(t *testing.T) {
	c := task.NewCollection()
	c.Put(task.New("1", "first", fixedTime()))

	cp := c.Clone()
	got, _ := cp.Get("1")
	got.Status = "done"
	cp.Put(task.New("2", "second", fixedTime()))

	orig, _ := c.Get("1")
	assert.Equal(t, task.StatusOpen, orig.Status)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_JSONKeepsOrder(t *testing.T) {
	doc := `{
		"10": {"description": "ten", "status": "open", "created_at": "2024-01-01 00:00:00", "updated_at": "2024-01-01 00:00:00"},
		"2": {"description": "two", "status": "done", "created_at": "2024-01-02 00:00:00", "updated_at": "2024-01-03 00:00:00"},
		"7": {"description": "seven", "status": "open", "created_at": "2024-01-04 00:00:00", "updated_at": "2024-01-04 00:00:00"}
	}`

	var c task.Collection
	require.NoError(t, json.Unmarshal([]byte(doc), &c))
	assert.Equal(t, []string{"10", "2", "7"}, c.IDs())

	two, ok := c.Get("2")
	require.True(t, ok)
	assert.Equal(t, "2", two.ID)
	assert.Equal(t, "two", two.Description)
	assert.Equal(t, "2024-01-03 00:00:00", two.UpdatedAt.String())

	data, err := json.Marshal(&c)
	require.NoError(t, err)

	var again task.Collection
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, c.IDs(), again.IDs())
	for _, id := range c.IDs() {
		a, _ := c.Get(id)
		b, _ := again.Get(id)
		assert.Equal(t, a.Description, b.Description)
		assert.Equal(t, a.Status, b.Status)
		assert.True(t, a.CreatedAt.Equal(b.CreatedAt.Time))
		assert.True(t, a.UpdatedAt.Equal(b.UpdatedAt.Time))
	}
}

func TestCollection_JSONEmpty(t *testing.T) {
	data, err := json.Marshal(task.NewCollection())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	var c task.Collection
	require.NoError(t, json.Unmarshal([]byte(`{}`), &c))
	assert.Equal(t, 0, c.Len())
}

func TestCollection_JSONDuplicateKey(t *testing.T) {
	doc := `{
		"1": {"description": "a", "status": "open", "created_at": "2024-01-01 00:00:00", "updated_at": "2024-01-01 00:00:00"},
		"2": {"description": "b", "status": "open", "created_at": "2024-01-01 00:00:00", "updated_at": "2024-01-01 00:00:00"},
		"1": {"description": "c", "status": "open", "created_at": "2024-01-01 00:00:00", "updated_at": "2024-01-01 00:00:00"}
	}`

	var c task.Collection
	require.NoError(t, json.Unmarshal([]byte(doc), &c))
	assert.Equal(t, []string{"1", "2"}, c.IDs())
	got, _ := c.Get("1")
	assert.Equal(t, "c", got.Description)
}

func TestCollection_JSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "array", doc: `[]`},
		{name: "string", doc: `"tasks"`},
		{name: "task is not an object", doc: `{"1": "x"}`},
		{name: "bad timestamp", doc: `{"1": {"description": "a", "status": "open", "created_at": "yesterday", "updated_at": "2024-01-01 00:00:00"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c task.Collection
			assert.Error(t, json.Unmarshal([]byte(tt.doc), &c))
		})
	}
}

func TestCollection_MarshalKeepsHTML(t *testing.T) {
	c := task.NewCollection()
	c.Put(task.New("<1>", "fish & chips <b>", fixedTime()))

	data, err := c.MarshalJSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"<1>":`)
	assert.Contains(t, string(data), `"fish & chips <b>"`)
	assert.NotContains(t, string(data), `\u003c`)
	assert.NotContains(t, string(data), `\u0026`)
	assert.NotContains(t, string(data), "\n")

	var again task.Collection
	require.NoError(t, json.Unmarshal(data, &again))
	got, ok := again.Get("<1>")
	require.True(t, ok)
	assert.Equal(t, "fish & chips <b>", got.Description)
}
