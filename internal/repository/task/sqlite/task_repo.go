package sqlite

import (
	"context"
	"database/sql"
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

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DefaultLockTimeout = 5 * time.Second

const schema = `CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER PRIMARY KEY,
	id          TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

// Storage хранит коллекцию в таблице tasks локального файла SQLite.
// Порядок задач задаётся колонкой position.
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

func (s *Storage) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("открытие базы %s: %w", s.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}
	return db, nil
}

func (s *Storage) exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("проверка хранилища %s: %w", s.path, err)
}

// EnsureInitialized создаёт файл базы и таблицу, только если файла ещё нет.
func (s *Storage) EnsureInitialized(ctx context.Context) (err error) {
	ok, err := s.exists()
	if err != nil || ok {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("создание каталога хранилища: %w", err)
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("создание таблицы: %w", err)
	}

	logger.Info("Repository: Создано пустое хранилище SQLite", zap.String("path", s.path))
	return nil
}

func (s *Storage) Load(ctx context.Context) (tasks *task.Collection, err error) {
	start := time.Now()

	ok, err := s.exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", repo.ErrMissingStore, s.path)
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrCorruptStore, err)
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	query := `SELECT
				id,
				description,
				status,
				created_at,
				updated_at
				FROM tasks
				ORDER BY position`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", repo.ErrCorruptStore, s.path, err)
	}
	defer rows.Close()

	tasks = task.NewCollection()
	for rows.Next() {
		var (
			t                    task.Task
			createdAt, updatedAt string
		)
		if err := rows.Scan(&t.ID, &t.Description, &t.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: сканирование задачи: %w", repo.ErrCorruptStore, err)
		}
		if t.CreatedAt, err = task.ParseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("%w: задача %s: %w", repo.ErrCorruptStore, t.ID, err)
		}
		if t.UpdatedAt, err = task.ParseTimestamp(updatedAt); err != nil {
			return nil, fmt.Errorf("%w: задача %s: %w", repo.ErrCorruptStore, t.ID, err)
		}
		tasks.Put(&t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: итерация по строкам: %w", repo.ErrCorruptStore, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return tasks, nil
}

// Save заменяет все строки в одной транзакции.
func (s *Storage) Save(ctx context.Context, tasks *task.Collection) (err error) {
	start := time.Now()

	if tasks == nil {
		tasks = task.NewCollection()
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("создание таблицы: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = multierr.Append(err, rbErr)
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("очистка задач: %w", err)
	}

	query := `INSERT INTO tasks
				(position, id, description, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`

	for i, t := range tasks.All() {
		_, err = tx.ExecContext(ctx, query,
			i+1,
			t.ID,
			t.Description,
			t.Status,
			t.CreatedAt.String(),
			t.UpdatedAt.String(),
		)
		if err != nil {
			return fmt.Errorf("добавление задачи %s: %w", t.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("фиксация транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Acquire(ctx context.Context) (func() error, error) {
	return s.lock.Acquire(ctx)
}
