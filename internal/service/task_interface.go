package service

import (
	"context"

	"taskcli/internal/models/task"
)

type TaskRepository interface {
	EnsureInitialized(context.Context) error
	Load(context.Context) (*task.Collection, error)
	Save(context.Context, *task.Collection) error
	// Acquire держит эксклюзивный доступ до вызова release.
	Acquire(context.Context) (release func() error, err error)
}
