package task

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is the full set of tasks keyed by id. Iteration follows
// insertion order, which is also the order keys appear in the stored document.
type Collection struct {
	ids   []string
	tasks map[string]*Task
}

func NewCollection() *Collection {
	return &Collection{
		ids:   []string{},
		tasks: make(map[string]*Task),
	}
}

func (c *Collection) Len() int {
	return len(c.ids)
}

func (c *Collection) Get(id string) (*Task, bool) {
	t, ok := c.tasks[id]
	return t, ok
}

// Put inserts t under t.ID. An existing entry keeps its position.
func (c *Collection) Put(t *Task) {
	if _, ok := c.tasks[t.ID]; !ok {
		c.ids = append(c.ids, t.ID)
	}
	c.tasks[t.ID] = t
}

func (c *Collection) Delete(id string) bool {
	if _, ok := c.tasks[id]; !ok {
		return false
	}
	delete(c.tasks, id)
	for ind, val := range c.ids {
		if val == id {
			c.ids = append(c.ids[:ind], c.ids[ind+1:]...)
			break
		}
	}
	return true
}

func (c *Collection) Clear() {
	c.ids = []string{}
	c.tasks = make(map[string]*Task)
}

func (c *Collection) IDs() []string {
	res := make([]string, len(c.ids))
	copy(res, c.ids)
	return res
}

// All returns the tasks in stored order.
func (c *Collection) All() []*Task {
	res := make([]*Task, 0, len(c.ids))
	for _, id := range c.ids {
		res = append(res, c.tasks[id])
	}
	return res
}

func (c *Collection) Clone() *Collection {
	cp := NewCollection()
	for _, t := range c.All() {
		cp.Put(t.Clone())
	}
	return cp
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(id)
		if err != nil {
			return nil, err
		}
		value, err := marshalUnescaped(c.tasks[id])
		if err != nil {
			return nil, fmt.Errorf("кодирование задачи %s: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalUnescaped keeps <, > and & as is: json.Marshal would escape them
// before the outer encoder sees the bytes.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON reads the object key by key so the document order survives.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ожидался объект задач, получено %v", tok)
	}

	res := NewCollection()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("неверный ключ задачи %v", tok)
		}

		t := &Task{}
		if err := dec.Decode(t); err != nil {
			return fmt.Errorf("задача %s: %w", id, err)
		}
		t.ID = id
		res.Put(t)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = *res
	return nil
}
