package handlers

import (
	"context"

	"taskcli/internal/models/task"
)

type TaskService interface {
	CreateTask(context.Context, string) (*task.Task, error)
	CreateTestTask(context.Context) (*task.Task, error)
	UpdateTask(context.Context, string, ...task.TaskOption) (*task.Task, error)
	DeleteTask(context.Context, string) error
	DeleteAllTasks(context.Context) error
	GetAllTasks(context.Context) ([]*task.Task, error)
	GetTaskByID(context.Context, string) (*task.Task, error)
	GetTasksByStatus(context.Context, string) ([]*task.Task, error)
}

// Input задаёт вопрос и возвращает одну строку ответа.
type Input interface {
	Ask(ctx context.Context, question string) (string, error)
}
