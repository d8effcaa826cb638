package board

import (
	"context"
	"slices"

	"kanban/internal/models/task"
)

type Position struct {
	Status task.Status
	Index  int
}

// DragResult итог перетаскивания карточки, Destination nil если карточку бросили вне колонок
type DragResult struct {
	Source      Position
	Destination *Position
}

// Move переносит задачу между колонками или внутри колонки.
// Карточка убирается из исходной колонки до ответа сервера и
// вставляется в целевую позицию уже в виде записи от сервера.
// При ошибке карточка возвращается на прежнее место, целевая колонка не меняется
func (b *Board) Move(ctx context.Context, d DragResult) (task.Task, error) {
	if d.Destination == nil {
		return task.Task{}, nil
	}
	dst := *d.Destination
	if !dst.Status.Valid() {
		return task.Task{}, ErrInvalidStatus
	}

	var moved task.Task
	return optimistic(ctx, b, mutation[task.Task]{
		name: "move",
		apply: func() (func(), error) {
			pos := b.positions(d.Source.Status)
			if d.Source.Index < 0 || d.Source.Index >= len(pos) {
				return nil, ErrOutOfRange
			}
			at := pos[d.Source.Index]
			original := *b.tasks[at].Clone()
			moved = *original.Clone()
			moved.Status = dst.Status

			s := b.takeAt(at)
			return func() { b.putBack(original, s) }, nil
		},
		remote: func(ctx context.Context) (task.Task, error) {
			return b.remote.UpdateTask(ctx, moved)
		},
		commit: func(updated task.Task) {
			b.insert(updated, dst.Index)
		},
	})
}

// insert ставит задачу на позицию index её колонки, index ограничивается длиной колонки
func (b *Board) insert(t task.Task, index int) {
	pos := b.positions(t.Status)

	var at int
	switch {
	case len(pos) == 0:
		at = len(b.tasks)
	case index <= 0:
		at = pos[0]
	case index >= len(pos):
		at = pos[len(pos)-1] + 1
	default:
		at = pos[index]
	}
	b.tasks = slices.Insert(b.tasks, at, t)
}
