package board_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kanban/internal/app"
	"kanban/internal/board"
	"kanban/internal/client"
	"kanban/internal/config"
	"kanban/internal/logger"
	"kanban/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *client.Client {
	t.Helper()
	a := app.New(&config.Config{
		Repository: config.RepositoryConfig{Type: config.RepositoryInMemory},
		RateLimit:  config.RateLimitConfig{RPM: 1000, Backend: config.RateLimitMemory},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"*"}},
	})
	require.NoError(t, a.Init(context.Background()))
	logger.Nop()

	srv := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		srv.Close()
		_ = a.Shutdown(context.Background())
	})
	return client.New(srv.URL, srv.Client())
}

// TestBoard_AgainstServer тестирует доску поверх настоящего API
func TestBoard_AgainstServer(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	b := board.New(c)
	defer b.Close()
	require.NoError(t, b.Load(ctx))

	alice, err := b.AddUser(ctx, "alice")
	require.NoError(t, err)
	bob, err := b.AddUser(ctx, "bob")
	require.NoError(t, err)

	for _, todo := range []string{"one", "two", "three"} {
		_, err := b.AddTask(ctx, todo, "", alice.ID, nil)
		require.NoError(t, err)
	}
	_, err = b.AddTask(ctx, "four", "", bob.ID, nil)
	require.NoError(t, err)

	// неизвестный владелец отклоняется сервером, доска откатывается
	_, err = b.AddTask(ctx, "ghost", "", "missing-user", nil)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Len(t, b.Column(task.StatusTodo), 4)

	moved, err := b.Move(ctx, board.DragResult{
		Source:      board.Position{Status: task.StatusTodo, Index: 2},
		Destination: &board.Position{Status: task.StatusDoing, Index: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, "three", moved.Todo)
	assert.Equal(t, task.StatusDoing, moved.Status)

	// свежая доска видит то же распределение по колонкам
	fresh := board.New(c)
	defer fresh.Close()
	require.NoError(t, fresh.Load(ctx))
	assert.Len(t, fresh.Column(task.StatusTodo), 3)
	require.Len(t, fresh.Column(task.StatusDoing), 1)
	assert.Equal(t, moved.ID, fresh.Column(task.StatusDoing)[0].ID)

	assert.Len(t, b.View(task.StatusTodo, bob.ID), 1)
	assert.Equal(t, "bob", b.OwnerName(bob.ID))

	require.NoError(t, b.RemoveTask(ctx, moved.ID))
	err = b.RemoveTask(ctx, moved.ID)
	assert.ErrorIs(t, err, board.ErrUnknownTask)

	require.NoError(t, b.RemoveUser(ctx, bob.ID))
	require.NoError(t, fresh.ReloadUsers(ctx))
	assert.Len(t, fresh.Users(), 1)
	assert.Equal(t, board.UnassignedName, fresh.OwnerName(bob.ID))
}
