package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matt-steen/todo-client/pkg/model"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public service the client talks to when nothing else is configured.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Client talks to the remote todo/user service. It never retries and sets no timeouts of its own.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient creates a Client for the service rooted at baseURL. A nil httpClient means
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing base url %s: %w", baseURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %s must be absolute", baseURL)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: u, http: httpClient}, nil
}

// ListTodos returns the full remote todo collection in server order.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	todos := []model.Todo{}

	if err := c.getJSON(ctx, "list todos", "todos", &todos); err != nil {
		return nil, err
	}

	return todos, nil
}

// ListUsers returns the full remote user collection in server order.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}

	if err := c.getJSON(ctx, "list users", "users", &users); err != nil {
		return nil, err
	}

	return users, nil
}

// CreateTodo posts the draft and returns the record the server created, including its id.
func (c *Client) CreateTodo(ctx context.Context, draft model.Draft) (model.Todo, error) {
	op := "create todo"

	var todo model.Todo

	resp, err := c.send(ctx, op, http.MethodPost, c.endpoint("todos"), draft)
	if err != nil {
		return todo, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return todo, &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := decode(op, resp.Body, &todo); err != nil {
		return todo, err
	}

	log.Debug().Int("id", todo.ID).Str("title", todo.Title).Msg("created todo")

	return todo, nil
}

// SetCompleted patches only the completed field. The response body is discarded.
func (c *Client) SetCompleted(ctx context.Context, todoID int, completed bool) error {
	resp, err := c.send(
		ctx,
		"update todo",
		http.MethodPatch,
		c.endpoint("todos", strconv.Itoa(todoID)),
		model.CompletedPatch{Completed: completed},
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	log.Debug().Int("id", todoID).Bool("completed", completed).Int("status", resp.StatusCode).Msg("updated todo")

	return nil
}

// DeleteTodo deletes the todo and reports whether the server answered with a 2xx status.
// Callers must not drop local state unless ok is true.
func (c *Client) DeleteTodo(ctx context.Context, todoID int) (bool, error) {
	resp, err := c.send(ctx, "delete todo", http.MethodDelete, c.endpoint("todos", strconv.Itoa(todoID)), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	log.Debug().Int("id", todoID).Int("status", resp.StatusCode).Msg("deleted todo")

	return isSuccess(resp.StatusCode), nil
}

func (c *Client) endpoint(elem ...string) string {
	return c.baseURL.JoinPath(elem...).String()
}

func (c *Client) getJSON(ctx context.Context, op, path string, v interface{}) error {
	resp, err := c.send(ctx, op, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	return decode(op, resp.Body, v)
}

func (c *Client) send(ctx context.Context, op, method, target string, body interface{}) (*http.Response, error) {
	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: error encoding body: %w", op, err)
		}

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	return resp, nil
}

func decode(op string, r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return &DecodeError{Op: op, Err: err}
	}

	return nil
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
