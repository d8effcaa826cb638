package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"kanban/internal/board"
	"kanban/internal/models/task"
	"kanban/internal/models/user"
)

const columnSeparator = "------------"

func formatColumn(w io.Writer, b *board.Board, status task.Status, tasks []task.Task, now time.Time) {
	fmt.Fprintln(w, columnSeparator)
	fmt.Fprintf(w, "%s (%d)\n", status, len(tasks))
	fmt.Fprintln(w, columnSeparator)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i := range tasks {
		t := &tasks[i]
		fmt.Fprintf(tw, "%4d\t%s\t%s\t%s\t%s\n", i, t.ID, normalize(t.Todo), b.OwnerName(t.Owner), formatDeadline(t, now))
	}
	_ = tw.Flush()
}

func formatDeadline(t *task.Task, now time.Time) string {
	if t.Deadline == nil {
		return "-"
	}
	s := t.Deadline.Format(task.DateLayout)
	if t.Overdue(now) {
		s += " overdue"
	}
	return s
}

func formatUsers(w io.Writer, users []user.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\n", u.ID, u.Name)
	}
	_ = tw.Flush()
}

// normalize переводы строк заменяются пробелами, пустой заголовок помечается
func normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "(untitled)"
	}
	return s
}
