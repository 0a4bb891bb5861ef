package middleware

import (
	"context"
	"errors"
	"time"

	"taskcli/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandlerFunc обрабатывает одну команду.
type HandlerFunc func(ctx context.Context) error

type Middleware func(HandlerFunc) HandlerFunc

type contextKey string

const (
	InvocationIdKey contextKey = "invocation_id"
	CommandKey      contextKey = "command"
)

// Chain применяет middleware так, что первое в списке выполняется первым.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func RequestID(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context) error {
		if GetInvocationID(ctx) == "" {
			ctx = context.WithValue(ctx, InvocationIdKey, uuid.New().String())
		}
		return next(ctx)
	}
}

// Logging пишет начало и завершение команды. Уровень зависит от исхода:
// ошибка отмены - warn, любая другая - error.
func Logging(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		invocationId := GetInvocationID(ctx)
		command := GetCommand(ctx)

		logger.Info(
			"CMD_IN: Начало команды",
			zap.String("invocation_id", invocationId),
			zap.String("command", command),
		)

		err := next(ctx)

		logLevel := zap.InfoLevel
		status := "ok"
		if err != nil {
			status = "failed"
			logLevel = zap.ErrorLevel
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logLevel = zap.WarnLevel
				status = "canceled"
			}
		}

		fields := []zap.Field{
			zap.String("invocation_id", invocationId),
			zap.String("command", command),
			zap.String("status", status),
			zap.Duration("ms", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Log(logLevel, "CMD_OUT: Завершение команды", fields...)

		return err
	}
}

func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

func GetInvocationID(ctx context.Context) string {
	if id, ok := ctx.Value(InvocationIdKey).(string); ok {
		return id
	}
	return ""
}

func GetCommand(ctx context.Context) string {
	if c, ok := ctx.Value(CommandKey).(string); ok {
		return c
	}
	return ""
}
