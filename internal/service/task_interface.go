package service

import (
	"context"
	"time"

	"kanban/internal/models/task"
	"kanban/internal/models/user"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	List(context.Context) ([]*task.Task, error)
	GetByID(context.Context, string) (*task.Task, error)
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	Delete(context.Context, string) error
	GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error)
}

type UserRepository interface {
	List(context.Context) ([]*user.User, error)
	GetByID(context.Context, string) (*user.User, error)
	Create(context.Context, *user.User) error
	Update(context.Context, *user.User) error
	Delete(context.Context, string) error
}
