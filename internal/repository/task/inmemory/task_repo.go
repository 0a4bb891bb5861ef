package inmemory

import (
	"context"
	"fmt"
	"sync"

	"taskcli/internal/logger"
	"taskcli/internal/models/task"
	repo "taskcli/internal/repository"

	"go.uber.org/zap"
)

// TaskStorage держит коллекцию в памяти процесса. Load и Save работают с
// копиями, поэтому вызывающий код не может изменить хранилище в обход Save.
type TaskStorage struct {
	storage *task.Collection
	mtx     *sync.RWMutex
	acquire *sync.Mutex
	saves   int
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		mtx:     &sync.RWMutex{},
		acquire: &sync.Mutex{},
	}
}

// NewInitialized возвращает хранилище, уже содержащее переданные задачи.
func NewInitialized(tasks *task.Collection) *TaskStorage {
	s := NewTaskStorage()
	if tasks == nil {
		tasks = task.NewCollection()
	}
	s.storage = tasks.Clone()
	return s
}

func (s *TaskStorage) EnsureInitialized(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.storage == nil {
		s.storage = task.NewCollection()
		logger.Info("Repository: Создано пустое хранилище в памяти")
	}
	return nil
}

func (s *TaskStorage) Load(ctx context.Context) (*task.Collection, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.storage == nil {
		return nil, fmt.Errorf("%w: память", repo.ErrMissingStore)
	}
	return s.storage.Clone(), nil
}

func (s *TaskStorage) Save(ctx context.Context, tasks *task.Collection) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if tasks == nil {
		tasks = task.NewCollection()
	}
	s.storage = tasks.Clone()
	s.saves++

	logger.Debug("Repository: Коллекция сохранена в памяти", zap.Int("tasks", tasks.Len()))
	return nil
}

func (s *TaskStorage) Acquire(ctx context.Context) (func() error, error) {
	s.acquire.Lock()
	return func() error {
		s.acquire.Unlock()
		return nil
	}, nil
}

// Saves возвращает число вызовов Save.
func (s *TaskStorage) Saves() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.saves
}
