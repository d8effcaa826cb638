package task

import (
	"time"
)

type TaskOption func(*Task)

// New собирает задачу из опций, nil-опции пропускаются
func New(opts ...TaskOption) *Task {
	t := &Task{}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func WithTodo(todo string) TaskOption {
	return func(task *Task) {
		task.Todo = todo
	}
}

func WithDescription(description string) TaskOption {
	if description == "" {
		return nil
	}
	return func(task *Task) {
		task.Description = description
	}
}

func WithOwner(owner string) TaskOption {
	return func(task *Task) {
		task.Owner = owner
	}
}

func WithStatus(status Status) TaskOption {
	if status == "" {
		return nil
	}
	return func(task *Task) {
		task.Status = status
	}
}

func WithDeadline(deadline *time.Time) TaskOption {
	if deadline == nil || deadline.IsZero() {
		return nil
	}
	return func(task *Task) {
		d := *deadline
		task.Deadline = &d
	}
}
