package handlers

import (
	"fmt"
	"io"

	"taskcli/internal/handlers/dto"
)

func responseWithLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func responseWithTask(w io.Writer, t dto.TaskResponse) {
	for _, line := range t.Lines() {
		fmt.Fprintln(w, line)
	}
}

// responseWithTaskList печатает блоки, каждый с двумя пустыми строками после.
func responseWithTaskList(w io.Writer, tasks []dto.TaskResponse) {
	for _, t := range tasks {
		responseWithTask(w, t)
		fmt.Fprint(w, "\n\n")
	}
}
