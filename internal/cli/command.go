// Package cli командная строка доски: разбор аргументов и команды поверх board.Board.
package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"

	"kanban/internal/board"
	"kanban/internal/client"
)

// Коды завершения
const (
	ExitSuccess      = 0
	ExitUserError    = 1
	ExitBackendError = 3
)

// Command команда CLI
type Command interface {
	Name() string
	Synopsis() string
	Usage() string

	// NeedsBoard false для команд, которым не нужен сервер (help)
	NeedsBoard() bool

	// RegisterFlags вызывается перед каждым разбором и сбрасывает состояние команды
	RegisterFlags(fs *flag.FlagSet)

	// Run b равен nil, если NeedsBoard false
	Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int
}

// exitCode ошибки ввода и 404 сервера считаются ошибкой пользователя
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	for _, userErr := range []error{
		board.ErrMissingFields,
		board.ErrUnknownTask,
		board.ErrUnknownUser,
		board.ErrOutOfRange,
		board.ErrInvalidStatus,
	} {
		if errors.Is(err, userErr) {
			return ExitUserError
		}
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ExitUserError
	}
	return ExitBackendError
}
