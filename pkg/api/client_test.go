package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/matt-steen/todo-client/pkg/api"
	"github.com/matt-steen/todo-client/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method      string
	path        string
	contentType string
	body        string
}

func newServer(t *testing.T, routes func(r *mux.Router, seen *[]recorded)) (*api.Client, *[]recorded) {
	t.Helper()

	seen := &[]recorded{}
	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			*seen = append(*seen, recorded{
				method:      r.Method,
				path:        r.URL.Path,
				contentType: r.Header.Get("Content-Type"),
				body:        string(raw),
			})
			next.ServeHTTP(w, r)
		})
	})

	routes(router, seen)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL, server.Client())
	require.NoError(t, err)

	return client, seen
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, err := api.NewClient("/todos", nil)
	assert.Nil(client)
	assert.EqualError(err, "base url /todos must be absolute")
}

func TestListTodos(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, seen := newServer(t, func(r *mux.Router, _ *[]recorded) {
		r.Methods(http.MethodGet).Path("/todos").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":1,"userId":5,"title":"A","completed":false},` +
				`{"id":2,"userId":5,"title":"B","completed":true}]`))
		})
	})

	todos, err := client.ListTodos(context.Background())
	assert.NoError(err)
	assert.Equal([]model.Todo{
		{ID: 1, UserID: 5, Title: "A"},
		{ID: 2, UserID: 5, Title: "B", Completed: true},
	}, todos)
	assert.Equal("/todos", (*seen)[0].path)
}

func TestListUsersIgnoresExtraFields(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, _ := newServer(t, func(r *mux.Router, _ *[]recorded) {
		r.Methods(http.MethodGet).Path("/users").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":5,"name":"Eve","email":"eve@example.com","address":{"city":"x"}}]`))
		})
	})

	users, err := client.ListUsers(context.Background())
	assert.NoError(err)
	assert.Equal([]model.User{{ID: 5, Name: "Eve"}}, users)
}

func TestListTodosDecodeError(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, _ := newServer(t, func(r *mux.Router, _ *[]recorded) {
		r.Methods(http.MethodGet).Path("/todos").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		})
	})

	todos, err := client.ListTodos(context.Background())
	assert.Nil(todos)

	var decodeErr *api.DecodeError
	assert.ErrorAs(err, &decodeErr)
	assert.Equal("list todos", decodeErr.Op)
}

func TestListUsersStatusError(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, _ := newServer(t, func(r *mux.Router, _ *[]recorded) {
		r.Methods(http.MethodGet).Path("/users").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
	})

	_, err := client.ListUsers(context.Background())

	var statusErr *api.StatusError
	assert.ErrorAs(err, &statusErr)
	assert.Equal(http.StatusInternalServerError, statusErr.StatusCode)
	assert.EqualError(err, "list users: unexpected status code 500")
}

func TestNetworkError(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := httptest.NewServer(http.NotFoundHandler())
	client, err := api.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	server.Close()

	_, err = client.ListTodos(context.Background())

	var netErr *api.NetworkError
	assert.ErrorAs(err, &netErr)
	assert.Equal("list todos", netErr.Op)
	assert.NotNil(errors.Unwrap(err))
}

func TestCreateTodoReturnsServerRecord(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, seen := newServer(t, func(r *mux.Router, _ *[]recorded) {
		r.Methods(http.MethodPost).Path("/todos").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":201,"userId":5,"title":"C","completed":false}`))
		})
	})

	todo, err := client.CreateTodo(context.Background(), model.Draft{UserID: 5, Title: "C"})
	assert.NoError(err)
	assert.Equal(model.Todo{ID: 201, UserID: 5, Title: "C"}, todo)

	assert.Len(*seen, 1)
	assert.Equal(http.MethodPost, (*seen)[0].method)
	assert.Equal("application/json", (*seen)[0].contentType)

	var sent map[string]interface{}
	assert.NoError(json.Unmarshal([]byte((*seen)[0].body), &sent))
	assert.Equal(map[string]interface{}{"userId": float64(5), "title": "C", "completed": false}, sent)
}

func TestSetCompletedPatchesOnlyCompleted(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, seen := newServer(t, func(r *mux.Router, _ *[]recorded) {
		r.Methods(http.MethodPatch).Path("/todos/{id}").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":7,"completed":true}`))
		})
	})

	err := client.SetCompleted(context.Background(), 7, true)
	assert.NoError(err)
	assert.Equal(http.MethodPatch, (*seen)[0].method)
	assert.Equal("/todos/7", (*seen)[0].path)
	assert.JSONEq(`{"completed":true}`, (*seen)[0].body)
}

func TestDeleteTodo(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client, seen := newServer(t, func(r *mux.Router, _ *[]recorded) {
		r.Methods(http.MethodDelete).Path("/todos/{id}").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if mux.Vars(r)["id"] == "404" {
				w.WriteHeader(http.StatusNotFound)

				return
			}

			_, _ = w.Write([]byte(`{}`))
		})
	})

	ok, err := client.DeleteTodo(context.Background(), 3)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("/todos/3", (*seen)[0].path)

	ok, err = client.DeleteTodo(context.Background(), 404)
	assert.NoError(err)
	assert.False(ok)
}
