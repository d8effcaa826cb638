// Package board держит состояние канбан-доски на клиенте и синхронизирует его с API.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	"kanban/internal/models/user"

	"go.uber.org/zap"
)

var (
	ErrClosed        = errors.New("board: closed")
	ErrMissingFields = errors.New("board: todo and owner are required")
	ErrUnknownTask   = errors.New("board: unknown task")
	ErrUnknownUser   = errors.New("board: unknown user")
	ErrOutOfRange    = errors.New("board: index out of range")
	ErrInvalidStatus = errors.New("board: invalid status")
)

// Remote операции API доски, *client.Client удовлетворяет интерфейсу
type Remote interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]user.User, error)
	CreateUser(ctx context.Context, name string) (user.User, error)
	UpdateUser(ctx context.Context, id, name string) error
	DeleteUser(ctx context.Context, id string) error
}

// Board задачи хранятся одной упорядоченной коллекцией,
// колонки статусов вычисляются из неё
type Board struct {
	remote Remote

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	tasks  []task.Task
	users  []user.User
}

func New(remote Remote) *Board {
	ctx, cancel := context.WithCancel(context.Background())
	return &Board{
		remote: remote,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Load заменяет состояние доски данными сервера
func (b *Board) Load(ctx context.Context) error {
	if b.isClosed() {
		return ErrClosed
	}
	ctx, done := b.join(ctx)
	defer done()

	tasks, err := b.remote.ListTasks(ctx)
	if err != nil {
		logger.Error("Board: не удалось загрузить задачи", err)
		return b.closedOr(fmt.Errorf("загрузка задач: %w", err))
	}
	users, err := b.remote.ListUsers(ctx)
	if err != nil {
		logger.Error("Board: не удалось загрузить пользователей", err)
		return b.closedOr(fmt.Errorf("загрузка пользователей: %w", err))
	}
	user.SortByName(users)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.tasks = tasks
	b.users = users

	logger.Debug("Board: состояние загружено", zap.Int("tasks", len(tasks)), zap.Int("users", len(users)))
	return nil
}

// Close отменяет незавершённые вызовы, их результаты отбрасываются
func (b *Board) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cancel()
}

// join связывает ctx вызова со временем жизни доски
func (b *Board) join(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(b.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (b *Board) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Board) closedOr(err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return err
}

// positions индексы задач колонки в общей коллекции
func (b *Board) positions(status task.Status) []int {
	var res []int
	for i := range b.tasks {
		if b.tasks[i].Status == status {
			res = append(res, i)
		}
	}
	return res
}

func (b *Board) indexOf(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) userIndex(id string) int {
	for i := range b.users {
		if b.users[i].ID == id {
			return i
		}
	}
	return -1
}
