package handlers

import (
	"errors"
	"fmt"
	"io"

	"taskcli/internal/logger"
	"taskcli/internal/service"

	"go.uber.org/zap"
)

var ErrUnknownCommand = errors.New("unknown command")

const msgTaskNotFound = "Task not found."

// handleBusinessError печатает сообщение для бизнес-ошибки и сообщает,
// была ли ошибка обработана.
func handleBusinessError(w io.Writer, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	logger.Warn("CMD: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Any("details", businessErr.Details))

	switch businessErr.Code {
	case service.CodeNotFound:
		responseWithLine(w, msgTaskNotFound)
	default:
		responseWithLine(w, "%s", businessErr.Message)
	}
	return true
}

func unknownCommand(command string) error {
	return fmt.Errorf("%w %q", ErrUnknownCommand, command)
}
