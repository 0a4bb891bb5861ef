package handlers

import (
	"context"
	"fmt"
	"io"

	"taskcli/internal/handlers/dto"
	"taskcli/internal/models/task"
)

const (
	promptAdd         = "What task would you like to add?: "
	promptUpdateID    = "What task would you like to update?: "
	promptDescription = "What is the new task description?: "
	promptStatus      = "What is the new status?: "
	promptDelete      = "What task would you like to delete?: "
	promptShow        = "What task would you like to see?: "
	promptFilter      = "What status would you like to filter by?: "
)

type TaskHandler struct {
	TaskService TaskService
	In          Input
	Out         io.Writer
}

func NewTaskHandler(taskService TaskService, in Input, out io.Writer) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
		In:          in,
		Out:         out,
	}
}

func (h *TaskHandler) ask(ctx context.Context, question string) (string, error) {
	answer, err := h.In.Ask(ctx, question)
	if err != nil {
		return "", fmt.Errorf("ввод: %w", err)
	}
	return answer, nil
}

func (h *TaskHandler) Add(ctx context.Context) error {
	description, err := h.ask(ctx, promptAdd)
	if err != nil {
		return err
	}

	created, err := h.TaskService.CreateTask(ctx, description)
	if err != nil {
		return err
	}

	responseWithLine(h.Out, "Task added successfully with ID %s", created.ID)
	return nil
}

func (h *TaskHandler) Test(ctx context.Context) error {
	created, err := h.TaskService.CreateTestTask(ctx)
	if err != nil {
		return err
	}

	responseWithLine(h.Out, "Test task added successfully with ID %s", created.ID)
	return nil
}

// Update спрашивает id, описание и статус. Пустое описание оставляет старое,
// статус применяется всегда.
func (h *TaskHandler) Update(ctx context.Context) error {
	id, err := h.ask(ctx, promptUpdateID)
	if err != nil {
		return err
	}
	description, err := h.ask(ctx, promptDescription)
	if err != nil {
		return err
	}
	status, err := h.ask(ctx, promptStatus)
	if err != nil {
		return err
	}

	_, err = h.TaskService.UpdateTask(ctx, id, task.WithDescription(description), task.WithStatus(status))
	if err != nil && !handleBusinessError(h.Out, err) {
		return err
	}

	responseWithLine(h.Out, "Task with ID %s updated successfully", id)
	return nil
}

func (h *TaskHandler) Delete(ctx context.Context) error {
	id, err := h.ask(ctx, promptDelete)
	if err != nil {
		return err
	}

	err = h.TaskService.DeleteTask(ctx, id)
	if err != nil && !handleBusinessError(h.Out, err) {
		return err
	}

	responseWithLine(h.Out, "Task with ID %s deleted successfully", id)
	return nil
}

func (h *TaskHandler) DeleteAll(ctx context.Context) error {
	if err := h.TaskService.DeleteAllTasks(ctx); err != nil {
		return err
	}

	responseWithLine(h.Out, "All tasks deleted successfully")
	return nil
}

func (h *TaskHandler) List(ctx context.Context) error {
	tasks, err := h.TaskService.GetAllTasks(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		responseWithLine(h.Out, "No tasks found.")
		return nil
	}

	responseWithTaskList(h.Out, dto.FromTaskList(tasks))
	return nil
}

func (h *TaskHandler) Show(ctx context.Context) error {
	id, err := h.ask(ctx, promptShow)
	if err != nil {
		return err
	}

	t, err := h.TaskService.GetTaskByID(ctx, id)
	if err != nil {
		if handleBusinessError(h.Out, err) {
			return nil
		}
		return err
	}

	responseWithTask(h.Out, dto.FromTask(t))
	return nil
}

// Filter печатает задачи с точно совпадающим статусом. Если таких нет,
// ничего не печатается.
func (h *TaskHandler) Filter(ctx context.Context) error {
	status, err := h.ask(ctx, promptFilter)
	if err != nil {
		return err
	}

	tasks, err := h.TaskService.GetTasksByStatus(ctx, status)
	if err != nil {
		return err
	}

	responseWithTaskList(h.Out, dto.FromTaskList(tasks))
	return nil
}
