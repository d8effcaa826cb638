package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"kanban/internal/board"
	"kanban/internal/models/task"
)

func init() {
	Register(&ShowCmd{})
	Register(&AddCmd{})
	Register(&MoveCmd{})
	Register(&EditCmd{})
	Register(&RmCmd{})
}

// resolveOwner принимает id или имя пользователя
func resolveOwner(b *board.Board, s string) string {
	if s == "" || s == board.All || s == task.Unassigned {
		return s
	}
	for _, u := range b.Users() {
		if u.ID == s {
			return s
		}
	}
	for _, u := range b.Users() {
		if u.Name == s {
			return u.ID
		}
	}
	return s
}

type ShowCmd struct {
	owner string
}

func (c *ShowCmd) Name() string     { return "show" }
func (c *ShowCmd) Synopsis() string { return "Show the board" }
func (c *ShowCmd) Usage() string    { return "board show [-owner <user>]" }
func (c *ShowCmd) NeedsBoard() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.owner, "owner", board.All, "")
}

func (c *ShowCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, c)
	}
	now := time.Now()
	owner := resolveOwner(b, c.owner)
	for _, status := range task.Statuses() {
		formatColumn(out, b, status, b.View(status, owner), now)
	}

	names := make([]string, 0)
	for _, u := range b.AssignedUsers() {
		names = append(names, u.Name)
	}
	if len(names) > 0 {
		fmt.Fprintf(out, "owners: %s\n", strings.Join(names, ", "))
	}
	return ExitSuccess
}

type AddCmd struct {
	description string
	owner       string
	deadline    string
}

func (c *AddCmd) Name() string     { return "add" }
func (c *AddCmd) Synopsis() string { return "Create a task in the todo column" }
func (c *AddCmd) Usage() string {
	return "board add [-d <description>] [-owner <user>] [-deadline <YYYY-MM-DD>] <todo...>"
}
func (c *AddCmd) NeedsBoard() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.owner, "owner", task.Unassigned, "")
	fs.StringVar(&c.deadline, "deadline", "", "")
}

func (c *AddCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	deadline, err := task.ParseDeadline(c.deadline)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return ExitUserError
	}

	created, err := b.AddTask(ctx, strings.Join(args, " "), c.description, resolveOwner(b, c.owner), deadline)
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "created %s\n", created.ID)
	return ExitSuccess
}

type MoveCmd struct{}

func (c *MoveCmd) Name() string     { return "move" }
func (c *MoveCmd) Synopsis() string { return "Move a task to a column position" }
func (c *MoveCmd) Usage() string    { return "board move <id> <todo|doing|complete> [index]" }
func (c *MoveCmd) NeedsBoard() bool { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) < 2 || len(args) > 3 {
		return usageError(errOut, c)
	}

	src, ok := b.Locate(args[0])
	if !ok {
		return fail(errOut, fmt.Errorf("%w: %s", board.ErrUnknownTask, args[0]))
	}
	dst := board.Position{Status: task.Status(args[1])}
	if !dst.Status.Valid() {
		return fail(errOut, fmt.Errorf("%w: %s", board.ErrInvalidStatus, args[1]))
	}

	// по умолчанию в конец колонки
	dst.Index = len(b.Column(dst.Status))
	if len(args) == 3 {
		index, err := strconv.Atoi(args[2])
		if err != nil || index < 0 {
			fmt.Fprintf(errOut, "error: invalid index: %s\n", args[2])
			return ExitUserError
		}
		dst.Index = index
	}

	moved, err := b.Move(ctx, board.DragResult{Source: src, Destination: &dst})
	if err != nil {
		return fail(errOut, err)
	}
	pos, _ := b.Locate(moved.ID)
	fmt.Fprintf(out, "moved %s to %s[%d]\n", moved.ID, pos.Status, pos.Index)
	return ExitSuccess
}

// EditCmd меняет только переданные поля, -deadline none убирает срок
type EditCmd struct {
	todo, description, owner, status, deadline *string
}

func (c *EditCmd) Name() string     { return "edit" }
func (c *EditCmd) Synopsis() string { return "Edit task fields" }
func (c *EditCmd) Usage() string {
	return "board edit [-todo <t>] [-d <description>] [-owner <user>] [-status <s>] [-deadline <YYYY-MM-DD|none>] <id>"
}
func (c *EditCmd) NeedsBoard() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	optional := func(name string, dst **string) {
		fs.Func(name, "", func(v string) error {
			*dst = &v
			return nil
		})
	}
	optional("todo", &c.todo)
	optional("d", &c.description)
	optional("owner", &c.owner)
	optional("status", &c.status)
	optional("deadline", &c.deadline)
}

func (c *EditCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return usageError(errOut, c)
	}

	pos, ok := b.Locate(args[0])
	if !ok {
		return fail(errOut, fmt.Errorf("%w: %s", board.ErrUnknownTask, args[0]))
	}
	t := b.Column(pos.Status)[pos.Index]

	if c.todo != nil {
		t.Todo = *c.todo
	}
	if c.description != nil {
		t.Description = *c.description
	}
	if c.owner != nil {
		t.Owner = resolveOwner(b, *c.owner)
	}
	if c.status != nil {
		t.Status = task.Status(*c.status)
	}
	if c.deadline != nil {
		t.Deadline = nil
		if *c.deadline != "none" {
			deadline, err := task.ParseDeadline(*c.deadline)
			if err != nil {
				fmt.Fprintf(errOut, "error: %s\n", err)
				return ExitUserError
			}
			t.Deadline = deadline
		}
	}

	updated, err := b.EditTask(ctx, t)
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "updated %s\n", updated.ID)
	return ExitSuccess
}

type RmCmd struct{}

func (c *RmCmd) Name() string     { return "rm" }
func (c *RmCmd) Synopsis() string { return "Delete a task" }
func (c *RmCmd) Usage() string    { return "board rm <id>" }
func (c *RmCmd) NeedsBoard() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, b *board.Board, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return usageError(errOut, c)
	}
	if err := b.RemoveTask(ctx, args[0]); err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "deleted %s\n", args[0])
	return ExitSuccess
}
