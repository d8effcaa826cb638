// Package testutil тестовые двойники для клиентских пакетов.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"kanban/internal/client"
	"kanban/internal/models/task"
	"kanban/internal/models/user"
)

// FakeRemote хранит задачи и пользователей в памяти и отвечает как API,
// ошибки возвращаются в виде *client.APIError
type FakeRemote struct {
	mu     sync.Mutex
	nextID int
	tasks  []task.Task
	users  []user.User

	// FailWith если задан, каждый изменяющий вызов возвращает эту ошибку
	FailWith error
}

func NewFakeRemote() *FakeRemote {
	return &FakeRemote{}
}

func (f *FakeRemote) AddUser(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, user.User{ID: id, Name: name})
}

func (f *FakeRemote) AddTask(t task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
}

// Tasks копия задач в порядке хранения
func (f *FakeRemote) Tasks() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]task.Task(nil), f.tasks...)
}

func (f *FakeRemote) Users() []user.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]user.User(nil), f.users...)
}

func (f *FakeRemote) ListTasks(ctx context.Context) ([]task.Task, error) {
	return f.Tasks(), nil
}

func (f *FakeRemote) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return task.Task{}, f.FailWith
	}
	if err := f.validate(t); err != nil {
		return task.Task{}, err
	}
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	t.Status = task.StatusTodo
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *FakeRemote) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return task.Task{}, f.FailWith
	}
	if err := f.validate(t); err != nil {
		return task.Task{}, err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			f.tasks[i] = t
			return t, nil
		}
	}
	return task.Task{}, notFound("Task not found")
}

func (f *FakeRemote) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return notFound("Task not found")
}

func (f *FakeRemote) ListUsers(ctx context.Context) ([]user.User, error) {
	users := f.Users()
	user.SortByName(users)
	return users, nil
}

func (f *FakeRemote) CreateUser(ctx context.Context, name string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return user.User{}, f.FailWith
	}
	if strings.TrimSpace(name) == "" {
		return user.User{}, notFound("Required all fields")
	}
	f.nextID++
	u := user.User{ID: fmt.Sprintf("user-%d", f.nextID), Name: name}
	f.users = append(f.users, u)
	return u, nil
}

func (f *FakeRemote) UpdateUser(ctx context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Name = name
			return nil
		}
	}
	return notFound("User not found")
}

func (f *FakeRemote) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return notFound("User not found")
}

func (f *FakeRemote) validate(t task.Task) error {
	if t.Todo == "" || t.Owner == "" {
		return notFound("Required all fields")
	}
	if t.Owner == task.Unassigned {
		return nil
	}
	for _, u := range f.users {
		if u.ID == t.Owner {
			return nil
		}
	}
	return notFound("User not found")
}

func notFound(msg string) error {
	return &client.APIError{Status: http.StatusNotFound, Message: msg}
}
