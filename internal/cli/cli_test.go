package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"kanban/internal/board"
	"kanban/internal/cli"
	"kanban/internal/models/task"
	"kanban/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, remote *testutil.FakeRemote, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	factory := func(ctx context.Context) (*board.Board, error) {
		b := board.New(remote)
		if err := b.Load(ctx); err != nil {
			b.Close()
			return nil, err
		}
		return b, nil
	}

	var outBuf, errBuf bytes.Buffer
	code = cli.NewDispatcher(cli.DefaultRegistry, factory).Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func seeded() *testutil.FakeRemote {
	remote := testutil.NewFakeRemote()
	remote.AddUser("u-alice", "alice")
	remote.AddUser("u-bob", "bob")
	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	remote.AddTask(task.Task{ID: "t1", Todo: "one", Owner: "u-alice", Status: task.StatusTodo})
	remote.AddTask(task.Task{ID: "t2", Todo: "two", Owner: "u-bob", Status: task.StatusTodo, Deadline: &past})
	remote.AddTask(task.Task{ID: "d1", Todo: "doing", Owner: task.Unassigned, Status: task.StatusDoing})
	return remote
}

func TestShow(t *testing.T) {
	stdout, stderr, code := run(t, seeded())

	require.Equal(t, cli.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "todo (2)")
	assert.Contains(t, stdout, "doing (1)")
	assert.Contains(t, stdout, "complete (0)")
	assert.Contains(t, stdout, "2000-01-01 overdue")
	assert.Contains(t, stdout, "Unassigned")
	assert.Contains(t, stdout, "owners: alice, bob")
}

func TestShow_OwnerFilter(t *testing.T) {
	stdout, _, code := run(t, seeded(), "show", "-owner", "bob")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "todo (1)")
	assert.Contains(t, stdout, "t2")
	assert.NotContains(t, stdout, "t1")
}

func TestAdd(t *testing.T) {
	remote := seeded()
	stdout, stderr, code := run(t, remote, "add", "-owner", "alice", "-deadline", "2030-01-02", "write", "docs")

	require.Equal(t, cli.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "created task-")

	tasks := remote.Tasks()
	last := tasks[len(tasks)-1]
	assert.Equal(t, "write docs", last.Todo)
	assert.Equal(t, "u-alice", last.Owner)
	require.NotNil(t, last.Deadline)
	assert.Equal(t, "2030-01-02", last.Deadline.Format(task.DateLayout))
}

func TestAdd_Errors(t *testing.T) {
	_, stderr, code := run(t, seeded(), "add")
	assert.Equal(t, cli.ExitUserError, code)
	assert.Contains(t, stderr, "required")

	_, _, code = run(t, seeded(), "add", "-deadline", "tomorrow", "x")
	assert.Equal(t, cli.ExitUserError, code)

	// сервер отклоняет неизвестного владельца
	_, stderr, code = run(t, seeded(), "add", "-owner", "carol", "x")
	assert.Equal(t, cli.ExitUserError, code)
	assert.Contains(t, stderr, "User not found")
}

func TestMove(t *testing.T) {
	remote := seeded()
	stdout, stderr, code := run(t, remote, "move", "t2", "doing", "0")

	require.Equal(t, cli.ExitSuccess, code, stderr)
	assert.Equal(t, "moved t2 to doing[0]\n", stdout)

	for _, tk := range remote.Tasks() {
		if tk.ID == "t2" {
			assert.Equal(t, task.StatusDoing, tk.Status)
		}
	}
}

func TestMove_DefaultsToColumnEnd(t *testing.T) {
	stdout, _, code := run(t, seeded(), "move", "t1", "doing")

	require.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "moved t1 to doing[1]\n", stdout)
}

func TestMove_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"usage", []string{"move", "t1"}, cli.ExitUserError},
		{"unknown task", []string{"move", "nope", "doing"}, cli.ExitUserError},
		{"bad status", []string{"move", "t1", "archived"}, cli.ExitUserError},
		{"bad index", []string{"move", "t1", "doing", "-1"}, cli.ExitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, code := run(t, seeded(), tt.args...)
			assert.Equal(t, tt.code, code)
		})
	}
}

// TestMove_BackendFailure тестирует код завершения при сбое сервера
func TestMove_BackendFailure(t *testing.T) {
	remote := seeded()
	remote.FailWith = errors.New("connection refused")

	_, stderr, code := run(t, remote, "move", "t1", "complete")
	assert.Equal(t, cli.ExitBackendError, code)
	assert.Contains(t, stderr, "connection refused")
	assert.Equal(t, task.StatusTodo, remote.Tasks()[0].Status)
}

func TestEdit(t *testing.T) {
	remote := seeded()
	_, stderr, code := run(t, remote, "edit", "-todo", "renamed", "-deadline", "2031-03-04", "t1")
	require.Equal(t, cli.ExitSuccess, code, stderr)

	got := remote.Tasks()[0]
	assert.Equal(t, "renamed", got.Todo)
	assert.Equal(t, "u-alice", got.Owner)
	require.NotNil(t, got.Deadline)

	_, stderr, code = run(t, remote, "edit", "-deadline", "none", "-status", "complete", "t1")
	require.Equal(t, cli.ExitSuccess, code, stderr)

	got = remote.Tasks()[0]
	assert.Nil(t, got.Deadline)
	assert.Equal(t, "renamed", got.Todo)
	assert.Equal(t, task.StatusComplete, got.Status)

	_, _, code = run(t, remote, "edit", "-status", "later", "t1")
	assert.Equal(t, cli.ExitUserError, code)
}

func TestRm(t *testing.T) {
	remote := seeded()
	stdout, _, code := run(t, remote, "rm", "t1")
	require.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "deleted t1\n", stdout)
	assert.Len(t, remote.Tasks(), 2)

	_, _, code = run(t, remote, "rm", "t1")
	assert.Equal(t, cli.ExitUserError, code)
}

func TestUsers(t *testing.T) {
	remote := seeded()

	_, stderr, code := run(t, remote, "user-add", "aaron")
	require.Equal(t, cli.ExitSuccess, code, stderr)

	stdout, _, code := run(t, remote, "users")
	require.Equal(t, cli.ExitSuccess, code)
	assert.Regexp(t, `(?s)aaron.*alice.*bob`, stdout)

	_, _, code = run(t, remote, "user-rename", "u-bob", "Robert", "Smith")
	require.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "Robert Smith", remote.Users()[1].Name)

	_, _, code = run(t, remote, "user-rm", "u-alice")
	require.Equal(t, cli.ExitSuccess, code)
	assert.Len(t, remote.Users(), 2)
	// задачи удалённого пользователя сохраняются
	assert.Equal(t, "u-alice", remote.Tasks()[0].Owner)

	_, _, code = run(t, remote, "user-rm", "u-alice")
	assert.Equal(t, cli.ExitUserError, code)
}

func TestDispatch_Errors(t *testing.T) {
	_, stderr, code := run(t, seeded(), "frobnicate")
	assert.Equal(t, cli.ExitUserError, code)
	assert.Contains(t, stderr, "unknown command")

	_, stderr, code = run(t, seeded(), "show", "-bogus")
	assert.Equal(t, cli.ExitUserError, code)
	assert.Contains(t, stderr, "usage: board show")
}

func TestHelp(t *testing.T) {
	stdout, _, code := run(t, nil, "help")
	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "board move <id>")
	assert.Contains(t, stdout, "KANBAN_API_URL")
}

func TestExport(t *testing.T) {
	stdout, stderr, code := run(t, seeded(), "export")
	require.Equal(t, cli.ExitSuccess, code, stderr)

	var doc struct {
		Todo []struct {
			ID        string `yaml:"id"`
			OwnerName string `yaml:"owner_name"`
			Deadline  string `yaml:"deadline"`
		} `yaml:"todo"`
		Doing  []map[string]string `yaml:"doing"`
		Owners []string            `yaml:"owners"`
		Users  []map[string]string `yaml:"users"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))

	require.Len(t, doc.Todo, 2)
	assert.Equal(t, "t1", doc.Todo[0].ID)
	assert.Equal(t, "alice", doc.Todo[0].OwnerName)
	assert.Equal(t, "2000-01-01", doc.Todo[1].Deadline)
	assert.Equal(t, "Unassigned", doc.Doing[0]["owner_name"])
	assert.Equal(t, []string{"u-alice", "u-bob", task.Unassigned}, doc.Owners)
	assert.Len(t, doc.Users, 2)
}
