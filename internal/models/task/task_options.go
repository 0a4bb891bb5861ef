package task

type TaskOption func(*Task)

// пустое описание означает "оставить как есть"
func WithDescription(description string) TaskOption {
	if description == "" {
		return nil
	}
	return func(task *Task) {
		task.Description = description
	}
}

// статус не валидируется, пустая строка тоже допустима
func WithStatus(status string) TaskOption {
	return func(task *Task) {
		task.Status = status
	}
}

func Apply(t *Task, options ...TaskOption) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
}
