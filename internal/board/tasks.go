package board

import (
	"context"
	"reflect"
	"slices"
	"strings"
	"time"

	"kanban/internal/models/task"

	"github.com/google/uuid"
)

const tempIDPrefix = "pending-"

// IsPending true для задачи, ещё не подтверждённой сервером
func IsPending(t task.Task) bool {
	return strings.HasPrefix(t.ID, tempIDPrefix)
}

// AddTask добавляет задачу в конец колонки todo
func (b *Board) AddTask(ctx context.Context, todo, description, owner string, deadline *time.Time) (task.Task, error) {
	if strings.TrimSpace(todo) == "" || strings.TrimSpace(owner) == "" {
		return task.Task{}, ErrMissingFields
	}

	placeholder := *task.New(
		task.WithTodo(todo),
		task.WithDescription(description),
		task.WithOwner(owner),
		task.WithStatus(task.StatusTodo),
		task.WithDeadline(deadline),
	)
	placeholder.ID = tempIDPrefix + uuid.NewString()

	return optimistic(ctx, b, mutation[task.Task]{
		name: "add_task",
		apply: func() (func(), error) {
			b.tasks = append(b.tasks, placeholder)
			return func() {
				if i := b.indexOf(placeholder.ID); i >= 0 {
					b.tasks = slices.Delete(b.tasks, i, i+1)
				}
			}, nil
		},
		remote: func(ctx context.Context) (task.Task, error) {
			return b.remote.CreateTask(ctx, placeholder)
		},
		commit: func(created task.Task) {
			if i := b.indexOf(placeholder.ID); i >= 0 {
				b.tasks[i] = created
				return
			}
			b.tasks = append(b.tasks, created)
		},
	})
}

// EditTask заменяет запись целиком, на доске остаётся версия сервера
func (b *Board) EditTask(ctx context.Context, t task.Task) (task.Task, error) {
	if strings.TrimSpace(t.Todo) == "" || strings.TrimSpace(t.Owner) == "" {
		return task.Task{}, ErrMissingFields
	}
	if t.Status == "" {
		t.Status = task.StatusTodo
	}
	if !t.Status.Valid() {
		return task.Task{}, ErrInvalidStatus
	}
	edited := *t.Clone()

	return optimistic(ctx, b, mutation[task.Task]{
		name: "edit_task",
		apply: func() (func(), error) {
			i := b.indexOf(edited.ID)
			if i < 0 {
				return nil, ErrUnknownTask
			}
			previous := *b.tasks[i].Clone()
			s := b.slotOf(i)
			b.replace(i, edited)

			// откат только если запись всё ещё наша: более поздняя правка или удаление выигрывают
			return func() {
				j := b.indexOf(edited.ID)
				if j < 0 || !reflect.DeepEqual(b.tasks[j], edited) {
					return
				}
				b.tasks = slices.Delete(b.tasks, j, j+1)
				b.putBack(previous, s)
			}, nil
		},
		remote: func(ctx context.Context) (task.Task, error) {
			return b.remote.UpdateTask(ctx, edited)
		},
		commit: func(updated task.Task) {
			if i := b.indexOf(updated.ID); i >= 0 {
				b.replace(i, updated)
			}
		},
	})
}

// replace при смене статуса задача уходит в конец новой колонки
func (b *Board) replace(i int, t task.Task) {
	if b.tasks[i].Status == t.Status {
		b.tasks[i] = t
		return
	}
	b.tasks = slices.Delete(b.tasks, i, i+1)
	b.insert(t, len(b.tasks))
}

func (b *Board) RemoveTask(ctx context.Context, id string) error {
	_, err := optimistic(ctx, b, mutation[struct{}]{
		name: "remove_task",
		apply: func() (func(), error) {
			i := b.indexOf(id)
			if i < 0 {
				return nil, ErrUnknownTask
			}
			removed := *b.tasks[i].Clone()
			s := b.takeAt(i)
			return func() {
				if b.indexOf(id) < 0 {
					b.putBack(removed, s)
				}
			}, nil
		},
		remote: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, b.remote.DeleteTask(ctx, id)
		},
	})
	return err
}
