// Package lock serializes load-mutate-save cycles of separate processes
// working on the same store file.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskcli/internal/logger"
	repo "taskcli/internal/repository"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const retryDelay = 50 * time.Millisecond

type FileLock struct {
	path    string
	timeout time.Duration
	enabled bool
}

// New returns a lock over path. A disabled lock acquires immediately.
func New(path string, timeout time.Duration, enabled bool) *FileLock {
	return &FileLock{
		path:    path,
		timeout: timeout,
		enabled: enabled,
	}
}

func (l *FileLock) Path() string {
	return l.path
}

// Acquire blocks until the lock is held, the timeout passes or ctx is done.
// The returned release must be called on every exit path.
func (l *FileLock) Acquire(ctx context.Context) (func() error, error) {
	if !l.enabled {
		return func() error { return nil }, nil
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	fl := flock.New(l.path)

	ok, err := fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("Lock: Истекло время ожидания блокировки",
				zap.String("path", l.path),
				zap.Duration("ms", time.Since(start)))
			return nil, fmt.Errorf("%w: %s", repo.ErrLockTimeout, l.path)
		}
		return nil, fmt.Errorf("захват блокировки %s: %w", l.path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", repo.ErrLockTimeout, l.path)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Lock: Долгое ожидание блокировки", zap.Duration("ms", time.Since(start)))
	}

	return func() error {
		if err := fl.Unlock(); err != nil {
			return fmt.Errorf("освобождение блокировки %s: %w", l.path, err)
		}
		return nil
	}, nil
}
