package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the on-disk format of created_at / updated_at.
const TimeLayout = "2006-01-02 15:04:05"

type Task struct {
	ID          string    `json:"-" db:"id"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   Timestamp `json:"created_at" db:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at" db:"updated_at"`
}

const StatusOpen = "open"

const TestDescription = "Test task"

func New(id, description string, now time.Time) *Task {
	ts := NewTimestamp(now)
	return &Task{
		ID:          id,
		Description: description,
		Status:      StatusOpen,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Timestamp is a second-resolution local time.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("разбор времени %q: %w", s, err)
	}
	return Timestamp{Time: t}, nil
}

func (ts Timestamp) String() string {
	return ts.Time.Format(TimeLayout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func (t *Task) Clone() *Task {
	cp := *t
	return &cp
}
