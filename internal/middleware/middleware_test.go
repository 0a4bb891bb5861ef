package middleware_test

import (
	"context"
	"errors"
	"testing"

	"taskcli/internal/logger"
	"taskcli/internal/middleware"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = prev })
	return logs
}

// TestRequestID тестирует генерацию id вызова
func TestRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID(func(ctx context.Context) error {
		seen = middleware.GetInvocationID(ctx)
		return nil
	})

	require.NoError(t, h(context.Background()))
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)

	// существующий id не перезаписывается
	ctx := context.WithValue(context.Background(), middleware.InvocationIdKey, "fixed")
	require.NoError(t, h(ctx))
	assert.Equal(t, "fixed", seen)
}

// TestLogging тестирует уровни логирования по исходу команды
func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel zapcore.Level
		status    string
	}{
		{name: "success", err: nil, wantLevel: zapcore.InfoLevel, status: "ok"},
		{name: "failure", err: errors.New("boom"), wantLevel: zapcore.ErrorLevel, status: "failed"},
		{name: "canceled", err: context.Canceled, wantLevel: zapcore.WarnLevel, status: "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observe(t)

			h := middleware.Chain(func(ctx context.Context) error {
				return tt.err
			}, middleware.RequestID, middleware.Logging)

			err := h(middleware.WithCommand(context.Background(), "list"))
			assert.Equal(t, tt.err, err)

			entries := logs.All()
			require.Len(t, entries, 2)
			assert.Equal(t, "CMD_IN: Начало команды", entries[0].Message)
			assert.Equal(t, tt.wantLevel, entries[1].Level)

			fields := entries[1].ContextMap()
			assert.Equal(t, "list", fields["command"])
			assert.Equal(t, tt.status, fields["status"])
			assert.NotEmpty(t, fields["invocation_id"])
		})
	}
}

// TestChainOrder тестирует порядок применения middleware
func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) middleware.Middleware {
		return func(next middleware.HandlerFunc) middleware.HandlerFunc {
			return func(ctx context.Context) error {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	h := middleware.Chain(func(ctx context.Context) error {
		order = append(order, "handler")
		return nil
	}, mw("first"), mw("second"))

	require.NoError(t, h(context.Background()))
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

// TestContextHelpers тестирует пустые значения контекста
func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, middleware.GetInvocationID(ctx))
	assert.Empty(t, middleware.GetCommand(ctx))
	assert.Equal(t, "show", middleware.GetCommand(middleware.WithCommand(ctx, "show")))
}
