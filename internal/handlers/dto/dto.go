package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"kanban/internal/models/task"
	"kanban/internal/models/user"
)

// Deadline принимает RFC3339, дату вида 2006-01-02, пустую строку и null
type Deadline struct {
	Time *time.Time
}

func (d *Deadline) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("deadline: %w", err)
	}
	parsed, err := task.ParseDeadline(raw)
	if err != nil {
		return fmt.Errorf("deadline: %w", err)
	}
	d.Time = parsed
	return nil
}

type CreateTaskRequest struct {
	Todo        string   `json:"todo"`
	Description string   `json:"description"`
	Owner       string   `json:"owner"`
	Deadline    Deadline `json:"deadline"`
}

// UpdateTaskRequest полная замена редактируемых полей
type UpdateTaskRequest struct {
	Todo        string      `json:"todo"`
	Description string      `json:"description"`
	Owner       string      `json:"owner"`
	Status      task.Status `json:"status"`
	Deadline    Deadline    `json:"deadline"`
}

func (r UpdateTaskRequest) Options() []task.TaskOption {
	return []task.TaskOption{
		task.WithTodo(r.Todo),
		task.WithDescription(r.Description),
		task.WithOwner(r.Owner),
		task.WithStatus(r.Status),
		task.WithDeadline(r.Deadline.Time),
	}
}

type UserRequest struct {
	Name string `json:"name"`
}

type TaskResponse struct {
	ID          string     `json:"_id"`
	Todo        string     `json:"todo"`
	Description string     `json:"description"`
	Owner       string     `json:"owner"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type UserResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type ListResponse[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Todo:        t.Todo,
		Description: t.Description,
		Owner:       t.Owner,
		Status:      string(t.Status),
		Deadline:    t.Deadline,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTaskList(tasks []*task.Task) ListResponse[TaskResponse] {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return ListResponse[TaskResponse]{Count: len(result), Data: result}
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name}
}

func FromUserList(users []*user.User) ListResponse[UserResponse] {
	result := make([]UserResponse, len(users))
	for i, u := range users {
		result[i] = FromUser(u)
	}
	return ListResponse[UserResponse]{Count: len(result), Data: result}
}
