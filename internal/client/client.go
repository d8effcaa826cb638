package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kanban/internal/models/task"
	"kanban/internal/models/user"
)

// APIError ответ сервера со статусом не 2xx
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kanban api: %d %s", e.Status, e.Message)
}

// Client типизированные вызовы REST API доски
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

type listEnvelope[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

type taskBody struct {
	Todo        string      `json:"todo"`
	Description string      `json:"description"`
	Owner       string      `json:"owner"`
	Status      task.Status `json:"status,omitempty"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
}

func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var out listEnvelope[task.Task]
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateTask статус задаёт сервер
func (c *Client) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	body := taskBody{Todo: t.Todo, Description: t.Description, Owner: t.Owner, Deadline: t.Deadline}

	var out task.Task
	err := c.do(ctx, http.MethodPost, "/create", body, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	body := taskBody{Todo: t.Todo, Description: t.Description, Owner: t.Owner, Status: t.Status, Deadline: t.Deadline}

	var out task.Task
	err := c.do(ctx, http.MethodPut, "/update/"+url.PathEscape(t.ID), body, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/delete/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var out listEnvelope[user.User]
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateUser(ctx context.Context, name string) (user.User, error) {
	var out user.User
	err := c.do(ctx, http.MethodPost, "/user/create", map[string]string{"name": name}, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodPut, "/user/update/"+url.PathEscape(id), map[string]string{"name": name}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/delete/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("кодирование запроса: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
