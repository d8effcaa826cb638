package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"kanban/internal/board"
)

func init() {
	Register(&UsersCmd{})
	Register(&UserAddCmd{})
	Register(&UserRenameCmd{})
	Register(&UserRmCmd{})
}

type UsersCmd struct{}

func (c *UsersCmd) Name() string                   { return "users" }
func (c *UsersCmd) Synopsis() string               { return "List users by name" }
func (c *UsersCmd) Usage() string                  { return "board users" }
func (c *UsersCmd) NeedsBoard() bool               { return true }
func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UsersCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, c)
	}
	formatUsers(out, b.Users())
	return ExitSuccess
}

type UserAddCmd struct{}

func (c *UserAddCmd) Name() string                   { return "user-add" }
func (c *UserAddCmd) Synopsis() string               { return "Create a user" }
func (c *UserAddCmd) Usage() string                  { return "board user-add <name...>" }
func (c *UserAddCmd) NeedsBoard() bool               { return true }
func (c *UserAddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UserAddCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	created, err := b.AddUser(ctx, strings.Join(args, " "))
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "created %s\n", created.ID)
	return ExitSuccess
}

type UserRenameCmd struct{}

func (c *UserRenameCmd) Name() string                   { return "user-rename" }
func (c *UserRenameCmd) Synopsis() string               { return "Rename a user" }
func (c *UserRenameCmd) Usage() string                  { return "board user-rename <id> <name...>" }
func (c *UserRenameCmd) NeedsBoard() bool               { return true }
func (c *UserRenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UserRenameCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		return usageError(errOut, c)
	}
	if err := b.RenameUser(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "renamed %s\n", args[0])
	return ExitSuccess
}

// UserRmCmd задачи пользователя остаются с прежним владельцем
type UserRmCmd struct{}

func (c *UserRmCmd) Name() string                   { return "user-rm" }
func (c *UserRmCmd) Synopsis() string               { return "Delete a user" }
func (c *UserRmCmd) Usage() string                  { return "board user-rm <id>" }
func (c *UserRmCmd) NeedsBoard() bool               { return true }
func (c *UserRmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UserRmCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return usageError(errOut, c)
	}
	if err := b.RemoveUser(ctx, args[0]); err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "deleted %s\n", args[0])
	return ExitSuccess
}
