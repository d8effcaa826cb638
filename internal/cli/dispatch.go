package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"kanban/internal/board"
	"kanban/internal/logger"
)

// BoardFactory создаёт и загружает доску
type BoardFactory func(ctx context.Context) (*board.Board, error)

type Dispatcher struct {
	registry *Registry
	factory  BoardFactory
}

func NewDispatcher(registry *Registry, factory BoardFactory) *Dispatcher {
	return &Dispatcher{registry: registry, factory: factory}
}

// Run без аргументов показывает доску
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	name := "show"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return ExitUserError
	}

	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return ExitUserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var debug bool
	fs.BoolVar(&debug, "debug", false, "")
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\nusage: %s\n", err, cmd.Usage())
		return ExitUserError
	}

	if debug {
		if err := logger.Init(true); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return ExitUserError
		}
		defer logger.Sync()
	}

	var b *board.Board
	if cmd.NeedsBoard() {
		var err error
		b, err = d.factory(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return ExitBackendError
		}
		defer b.Close()
	}

	return cmd.Run(ctx, b, fs.Args(), out, errOut)
}

// fail печатает ошибку и выбирает код завершения
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %s\n", err)
	return exitCode(err)
}

func usageError(errOut io.Writer, cmd Command) int {
	fmt.Fprintf(errOut, "usage: %s\n", cmd.Usage())
	return ExitUserError
}
