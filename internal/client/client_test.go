package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kanban/internal/client"
	"kanban/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClient_ListTasks тестирует разбор конверта {count, data}
func TestClient_ListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"data":[{"_id":"t1","todo":"x","owner":"unassigned","status":"doing"}]}`))
	}))
	defer srv.Close()

	tasks, err := client.New(srv.URL, srv.Client()).ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.Equal(t, task.StatusDoing, tasks[0].Status)
}

// TestClient_UpdateTask тестирует тело запроса на обновление
func TestClient_UpdateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/update/t1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "complete", body["status"])
		assert.NotContains(t, body, "_id")

		_, _ = w.Write([]byte(`{"_id":"t1","todo":"x","owner":"unassigned","status":"complete"}`))
	}))
	defer srv.Close()

	got, err := client.New(srv.URL+"/", nil).UpdateTask(context.Background(),
		task.Task{ID: "t1", Todo: "x", Owner: task.Unassigned, Status: task.StatusComplete})
	require.NoError(t, err)
	assert.Equal(t, task.StatusComplete, got.Status)
}

// TestClient_APIError тестирует разбор ошибок сервера
func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/delete/t1":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Task not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil)

	err := c.DeleteTask(context.Background(), "t1")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Task not found", apiErr.Message)

	err = c.DeleteUser(context.Background(), "u1")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

// TestClient_ContextCanceled тестирует отмену запроса
func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.New(srv.URL, nil).ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
