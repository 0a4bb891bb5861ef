package service

import (
	"context"
	"fmt"
	"time"

	"taskcli/internal/logger"
	"taskcli/internal/models/task"
	rep "taskcli/internal/repository"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

type TaskService struct {
	repo TaskRepository
	now  func() time.Time
}

type Option func(*TaskService)

func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func NewTaskService(repo TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) Init(ctx context.Context) error {
	if err := s.repo.EnsureInitialized(ctx); err != nil {
		return fmt.Errorf("инициализация хранилища: %w", err)
	}
	return nil
}

// mutate выполняет цикл load -> fn -> save под эксклюзивным захватом.
// NOT_FOUND от fn не отменяет сохранения: коллекция записывается как есть.
func (s *TaskService) mutate(ctx context.Context, operation string, fn func(*task.Collection) error) (err error) {
	start := time.Now()

	release, err := s.repo.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer func() {
		err = multierr.Append(err, release())
	}()

	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: получение задач: %w", operation, err)
	}

	opErr := fn(tasks)
	if opErr != nil && !IsNotFound(opErr) {
		return fmt.Errorf("%s: %w", operation, opErr)
	}

	if err := s.repo.Save(ctx, tasks); err != nil {
		return fmt.Errorf("%s: сохранение задач: %w", operation, err)
	}

	logger.Debug("Service: Коллекция обновлена",
		zap.String("operation", operation),
		zap.Int("tasks", tasks.Len()),
		zap.Duration("ms", time.Since(start)))

	return opErr
}

func (s *TaskService) CreateTask(ctx context.Context, description string) (*task.Task, error) {
	var created *task.Task

	err := s.mutate(ctx, "добавление задачи", func(tasks *task.Collection) error {
		id, err := task.NextID(tasks)
		if err != nil {
			return fmt.Errorf("генерация id: %w", err)
		}
		created = task.New(id, description, s.now())
		tasks.Put(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Service: Задача создана", zap.String("task_id", created.ID))
	return created.Clone(), nil
}

func (s *TaskService) CreateTestTask(ctx context.Context) (*task.Task, error) {
	return s.CreateTask(ctx, task.TestDescription)
}

// UpdateTask применяет опции к задаче и обновляет updated_at.
// Если задачи нет, коллекция всё равно сохраняется без изменений.
func (s *TaskService) UpdateTask(ctx context.Context, id string, options ...task.TaskOption) (*task.Task, error) {
	var updated *task.Task

	err := s.mutate(ctx, "обновление задачи", func(tasks *task.Collection) error {
		t, ok := tasks.Get(id)
		if !ok {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id))
			return NewNotFound("Задача", id, rep.ErrNotFound)
		}

		task.Apply(t, options...)
		t.UpdatedAt = task.NewTimestamp(s.now())
		updated = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "удаление задачи", func(tasks *task.Collection) error {
		if !tasks.Delete(id) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id))
			return NewNotFound("Задача", id, rep.ErrNotFound)
		}
		return nil
	})
}

func (s *TaskService) DeleteAllTasks(ctx context.Context) error {
	return s.mutate(ctx, "удаление всех задач", func(tasks *task.Collection) error {
		logger.Info("Service: Удаление всех задач", zap.Int("count", tasks.Len()))
		tasks.Clear()
		return nil
	})
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks.All(), nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	t, ok := tasks.Get(id)
	if !ok {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id))
		return nil, NewNotFound("Задача", id, rep.ErrNotFound)
	}
	return t, nil
}

// GetTasksByStatus возвращает задачи с точно совпадающим статусом в порядке хранения.
func (s *TaskService) GetTasksByStatus(ctx context.Context, status string) ([]*task.Task, error) {
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	res := []*task.Task{}
	for _, t := range tasks.All() {
		if t.Status != status {
			continue
		}
		res = append(res, t)
	}
	return res, nil
}
