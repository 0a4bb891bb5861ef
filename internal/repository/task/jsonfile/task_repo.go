package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"taskcli/internal/logger"
	"taskcli/internal/models/task"
	repo "taskcli/internal/repository"
	"taskcli/internal/repository/lock"

	"go.uber.org/zap"
)

const DefaultLockTimeout = 5 * time.Second

type document struct {
	Tasks *task.Collection `json:"tasks"`
}

type Storage struct {
	path        string
	locking     bool
	lockTimeout time.Duration
	lock        *lock.FileLock
}

type Option func(*Storage)

func WithLockTimeout(timeout time.Duration) Option {
	return func(s *Storage) {
		s.lockTimeout = timeout
	}
}

// WithoutLock возвращает поведение одного процесса: последний записавший побеждает.
func WithoutLock() Option {
	return func(s *Storage) {
		s.locking = false
	}
}

func New(path string, opts ...Option) *Storage {
	s := &Storage{
		path:        path,
		locking:     true,
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lock = lock.New(path+".lock", s.lockTimeout, s.locking)
	return s
}

func (s *Storage) Path() string {
	return s.path
}

// EnsureInitialized создаёт файл с пустой коллекцией, если его нет.
// Существующий файл никогда не перезаписывается.
func (s *Storage) EnsureInitialized(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("проверка хранилища %s: %w", s.path, err)
	}

	data, err := encode(task.NewCollection())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("создание каталога хранилища: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("создание хранилища %s: %w", s.path, err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("запись хранилища %s: %w", s.path, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("запись хранилища %s: %w", s.path, err)
	}

	logger.Info("Repository: Создано пустое хранилище", zap.String("path", s.path))
	return nil
}

func (s *Storage) Load(ctx context.Context) (*task.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repo.ErrMissingStore, s.path)
		}
		return nil, fmt.Errorf("чтение хранилища %s: %w", s.path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", repo.ErrCorruptStore, s.path, err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", repo.ErrCorruptStore, s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", repo.ErrCorruptStore, s.path, err)
	}
	if doc.Tasks == nil {
		return nil, fmt.Errorf("%w: %s: отсутствует ключ tasks", repo.ErrCorruptStore, s.path)
	}

	logger.Debug("Repository: Хранилище прочитано",
		zap.String("path", s.path),
		zap.Int("tasks", doc.Tasks.Len()),
		zap.Duration("ms", time.Since(start)))

	return doc.Tasks, nil
}

// Save заменяет содержимое файла целиком: запись во временный файл и rename.
func (s *Storage) Save(ctx context.Context, tasks *task.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	if tasks == nil {
		tasks = task.NewCollection()
	}

	data, err := encode(tasks)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("сохранение хранилища %s: %w", s.path, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная запись", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Acquire(ctx context.Context) (func() error, error) {
	return s.lock.Acquire(ctx)
}

func encode(tasks *task.Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(document{Tasks: tasks}); err != nil {
		return nil, fmt.Errorf("кодирование хранилища: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
