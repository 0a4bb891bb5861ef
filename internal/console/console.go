package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var ErrNoInput = errors.New("ввод закончился")

// Console читает ответы построчно. Вопрос печатается целиком с переводом
// строки, ответ читается до конца строки без обрезки пробелов.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (c *Console) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := fmt.Fprintln(c.out, question); err != nil {
		return "", fmt.Errorf("вывод вопроса: %w", err)
	}

	answer, err := c.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("чтение ответа: %w", err)
		}
		// последняя строка без перевода строки всё ещё ответ
		if answer == "" {
			return "", fmt.Errorf("чтение ответа на %q: %w", question, ErrNoInput)
		}
	}

	return strings.TrimRight(answer, "\r\n"), nil
}

// Welcome печатает приветствие режима без аргументов.
func (c *Console) Welcome() {
	bold := color.New(color.FgCyan, color.Bold)
	bold.Fprintln(c.out, "Welcome to the task manager")

	dim := color.New(color.Faint)
	dim.Fprintln(c.out, "Try 'add', 'update', 'delete' or 'list'")
}
