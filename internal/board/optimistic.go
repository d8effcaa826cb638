package board

import (
	"context"
	"slices"

	"kanban/internal/logger"
	"kanban/internal/models/task"

	"go.uber.org/zap"
)

// mutation локальное изменение и соответствующий ему вызов сервера.
// apply и commit выполняются под блокировкой доски. apply либо возвращает
// ошибку, ничего не изменив, либо возвращает undo, отменяющий только своё изменение
type mutation[T any] struct {
	name   string
	apply  func() (undo func(), err error)
	remote func(ctx context.Context) (T, error)
	commit func(T)
}

// optimistic применяет изменение сразу, затем вызывает сервер.
// При ошибке сервера вызывается undo, изменения других операций остаются
func optimistic[T any](ctx context.Context, b *Board, m mutation[T]) (T, error) {
	var zero T

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return zero, ErrClosed
	}
	undo, err := m.apply()
	b.mu.Unlock()
	if err != nil {
		return zero, err
	}

	callCtx, done := b.join(ctx)
	res, err := m.remote(callCtx)
	done()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return zero, ErrClosed
	}
	if err != nil {
		undo()
		logger.Error("Board: изменение отменено", err, zap.String("op", m.name))
		return zero, err
	}
	if m.commit != nil {
		m.commit(res)
	}
	return res, nil
}

// slot место задачи в колонке до её удаления
type slot struct {
	status task.Status
	index  int
	nextID string // следующая задача той же колонки
}

func (b *Board) slotOf(i int) slot {
	s := slot{status: b.tasks[i].Status}
	for j := range b.tasks {
		if b.tasks[j].Status != s.status {
			continue
		}
		if j < i {
			s.index++
		} else if j > i {
			s.nextID = b.tasks[j].ID
			break
		}
	}
	return s
}

// takeAt удаляет задачу и возвращает её место
func (b *Board) takeAt(i int) slot {
	s := b.slotOf(i)
	b.tasks = slices.Delete(b.tasks, i, i+1)
	return s
}

// putBack возвращает задачу перед прежним соседом по колонке.
// Если сосед пропал или ушёл в другую колонку, задача встаёт на прежний индекс
func (b *Board) putBack(t task.Task, s slot) {
	t.Status = s.status
	if s.nextID == "" {
		b.insert(t, len(b.tasks))
		return
	}
	if j := b.indexOf(s.nextID); j >= 0 && b.tasks[j].Status == s.status {
		b.tasks = slices.Insert(b.tasks, j, t)
		return
	}
	b.insert(t, s.index)
}
