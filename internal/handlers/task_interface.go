package handlers

import (
	"context"
	"time"

	"kanban/internal/models/task"
	"kanban/internal/models/user"
)

type TaskService interface {
	HealthCheck(context.Context) error
	ListTasks(context.Context) ([]*task.Task, error)
	CreateTask(ctx context.Context, todo, description, owner string, deadline *time.Time) (*task.Task, error)
	UpdateTask(context.Context, string, ...task.TaskOption) (*task.Task, error)
	DeleteTask(context.Context, string) error
}

type UserService interface {
	ListUsers(context.Context) ([]*user.User, error)
	CreateUser(context.Context, string) (*user.User, error)
	UpdateUser(ctx context.Context, id, name string) (*user.User, error)
	DeleteUser(context.Context, string) error
}
