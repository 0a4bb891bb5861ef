package task

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidID = errors.New("id задачи не является целым числом")

type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("id %q: %s", e.ID, ErrInvalidID.Error())
	}
	return fmt.Sprintf("id %q: %s: %s", e.ID, ErrInvalidID.Error(), e.Err.Error())
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidID, e.Err}
}

// NextID returns max(id)+1 over the collection, or "1" when it is empty.
// Every key must be a decimal integer; the first one that is not fails the
// whole allocation.
func NextID(c *Collection) (string, error) {
	if c.Len() == 0 {
		return "1", nil
	}

	maxID := 0
	for i, id := range c.IDs() {
		n, err := strconv.Atoi(id)
		if err != nil {
			return "", &ParseError{ID: id, Err: err}
		}
		if i == 0 || n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1), nil
}
