package dto

import (
	"taskcli/internal/models/task"
)

// TaskResponse - задача в том виде, в каком её видит пользователь.
type TaskResponse struct {
	ID          string
	Description string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.String(),
		UpdatedAt:   t.UpdatedAt.String(),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

func (r TaskResponse) Lines() []string {
	return []string{
		"Task ID: " + r.ID,
		"Description: " + r.Description,
		"Status: " + r.Status,
		"Created at: " + r.CreatedAt,
		"Updated at: " + r.UpdatedAt,
	}
}
