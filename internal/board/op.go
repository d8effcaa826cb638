package board

import (
	"context"
)

// Op асинхронная операция над доской
type Op struct {
	done   chan struct{}
	cancel context.CancelFunc
	err    error
}

// Go запускает fn в отдельной горутине под контекстом, связанным с доской
func (b *Board) Go(ctx context.Context, fn func(ctx context.Context) error) *Op {
	ctx, cancel := b.join(ctx)
	op := &Op{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer close(op.done)
		defer cancel()
		op.err = fn(ctx)
	}()
	return op
}

func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Wait ждёт завершения и возвращает ошибку fn
func (o *Op) Wait() error {
	<-o.done
	return o.err
}

func (o *Op) Cancel() {
	o.cancel()
}
