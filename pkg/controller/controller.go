package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/matt-steen/todo-client/pkg/model"
	"github.com/matt-steen/todo-client/pkg/store"
	"github.com/matt-steen/todo-client/pkg/view"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrAlreadyStarted is returned by Start when the controller has left the idle state.
	ErrAlreadyStarted = errors.New("controller already started")
	// ErrNotReady is returned for user actions attempted before the initial load finished.
	ErrNotReady = errors.New("todos are still loading")
	// ErrEmptyTitle is returned when a todo is submitted without a title.
	ErrEmptyTitle = errors.New("title cannot be empty")
)

// State is the global state of the controller. Once Ready it never changes again.
type State int

// These constants are the states of the controller, in the order they are entered.
const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}

	return "unknown"
}

// Service is the remote todo/user service.
type Service interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateTodo(ctx context.Context, draft model.Draft) (model.Todo, error)
	SetCompleted(ctx context.Context, todoID int, completed bool) error
	DeleteTodo(ctx context.Context, todoID int) (bool, error)
}

// Dispatcher runs f on the UI goroutine. Every change to the store or the view goes through it.
type Dispatcher interface {
	QueueUpdate(f func())
}

// Alerter shows an error message to the user.
type Alerter interface {
	Alert(message string)
}

// Controller binds user interactions to the store, the renderer and the remote service.
// Each action is an independent request; there is no ordering between actions. A toggle
// that completes after the same todo was deleted is simply ignored.
type Controller struct {
	ctx        context.Context
	service    Service
	dispatcher Dispatcher
	alerter    Alerter

	store    *store.Store
	list     *view.TodoList
	users    *view.UserSelect
	renderer *view.Renderer

	mu       sync.Mutex
	state    State
	inflight sync.WaitGroup
}

// NewController creates an idle Controller. Requests are made with ctx and are never cancelled
// by the controller itself.
func NewController(ctx context.Context, service Service, dispatcher Dispatcher, alerter Alerter) *Controller {
	c := &Controller{
		ctx:        ctx,
		service:    service,
		dispatcher: dispatcher,
		alerter:    alerter,
		store:      store.New(),
		list:       view.NewTodoList(),
		users:      view.NewUserSelect(),
	}

	c.renderer = view.NewRenderer(c.store, c.list, c.users, c)

	return c
}

// Store returns the local snapshot.
func (c *Controller) Store() *store.Store {
	return c.store
}

// List returns the rendered todo list.
func (c *Controller) List() *view.TodoList {
	return c.list
}

// Users returns the rendered user selection control.
func (c *Controller) Users() *view.UserSelect {
	return c.users
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) setState(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log.Debug().Stringer("from", c.state).Stringer("to", state).Msg("controller state change")

	c.state = state
}

// Wait blocks until all requests started so far have finished and their results were queued.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Start fetches todos and users concurrently and renders them once both have resolved.
// A failed fetch is reported and leaves its sequence empty; the rest is still rendered.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()

		return ErrAlreadyStarted
	}

	c.state = StateLoading
	c.mu.Unlock()

	log.Info().Msg("loading todos and users")

	c.async(func() {
		var (
			todos              []model.Todo
			users              []model.User
			todosErr, usersErr error
			group              errgroup.Group
		)

		group.Go(func() error {
			todos, todosErr = c.service.ListTodos(c.ctx)

			return todosErr
		})
		group.Go(func() error {
			users, usersErr = c.service.ListUsers(c.ctx)

			return usersErr
		})

		// both errors are reported separately below
		_ = group.Wait()

		c.dispatcher.QueueUpdate(func() {
			c.load(todos, todosErr, users, usersErr)
		})
	})

	return nil
}

func (c *Controller) load(todos []model.Todo, todosErr error, users []model.User, usersErr error) {
	for _, err := range []error{todosErr, usersErr} {
		if err != nil {
			c.reportError(err)
		}
	}

	if err := c.store.Initialize(todos, users); err != nil {
		c.reportError(err)

		return
	}

	for _, todo := range c.store.Todos() {
		c.renderer.RenderTodo(todo)
	}

	for _, user := range c.store.Users() {
		c.renderer.RenderUserOption(user)
	}

	log.Info().Int("todos", c.list.Len()).Int("users", len(c.users.Options())).Msg("initial render done")

	c.setState(StateReady)
}

// Submit creates a todo for the given user. The record returned by the service, not the draft,
// is added to the store and rendered at the top of the list.
func (c *Controller) Submit(userID int, title string) error {
	if c.State() != StateReady {
		return ErrNotReady
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	draft := model.Draft{UserID: userID, Title: title, Completed: false}

	log.Debug().Int("userId", userID).Str("title", title).Msg("submitting todo")

	c.async(func() {
		todo, err := c.service.CreateTodo(c.ctx, draft)

		c.dispatcher.QueueUpdate(func() {
			if err != nil {
				c.reportError(err)

				return
			}

			c.store.AddTodo(todo)
			c.renderer.RenderTodo(todo)
		})
	})

	return nil
}

// ToggleCompleted mirrors a checkbox change to the store and the service. The view has already
// been updated; a failed update is reported but not rolled back.
func (c *Controller) ToggleCompleted(todoID int, completed bool) {
	if !c.store.SetCompleted(todoID, completed) {
		log.Warn().Int("id", todoID).Msg("toggled a todo that is not in the store")
	}

	c.async(func() {
		if err := c.service.SetCompleted(c.ctx, todoID, completed); err != nil {
			c.dispatcher.QueueUpdate(func() {
				c.reportError(err)
			})
		}
	})
}

// Dismiss deletes the todo. Only a confirmed delete removes the item and the local record.
func (c *Controller) Dismiss(todoID int) {
	c.async(func() {
		ok, err := c.service.DeleteTodo(c.ctx, todoID)

		c.dispatcher.QueueUpdate(func() {
			if err != nil {
				c.reportError(err)

				return
			}

			if !ok {
				log.Warn().Int("id", todoID).Msg("delete was not confirmed; keeping todo")

				return
			}

			c.remove(todoID)
		})
	})
}

func (c *Controller) remove(todoID int) {
	// a second dismiss of the same item can be confirmed after the first one removed it
	if err := c.renderer.UnrenderTodo(todoID); err != nil {
		log.Warn().Err(err).Int("id", todoID).Msg("error removing todo from view")
	}

	if !c.store.ForgetTodo(todoID) {
		log.Debug().Int("id", todoID).Msg("todo was already gone from the store")
	}
}

// reportError is the single place failures are shown to the user.
func (c *Controller) reportError(err error) {
	log.Error().Err(err).Msg("request failed")

	c.alerter.Alert(err.Error())
}

func (c *Controller) async(f func()) {
	c.inflight.Add(1)

	go func() {
		defer c.inflight.Done()

		f()
	}()
}
