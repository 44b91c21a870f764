package view

import (
	"errors"

	"github.com/matt-steen/todo-client/pkg/model"
	"github.com/rs/zerolog/log"
)

// UnknownUserName is shown when a todo's owner is not among the loaded users.
const UnknownUserName = "unknown user"

// ErrNodeNotFound is returned when there is no rendered item for a todo id.
var ErrNodeNotFound = errors.New("no rendered item for todo")

// Handlers receives the interactions bound to rendered items.
type Handlers interface {
	ToggleCompleted(todoID int, completed bool)
	Dismiss(todoID int)
}

// NameResolver looks up user names for labels.
type NameResolver interface {
	ResolveUserName(userID int) (string, error)
}

// Renderer turns todos and users into view nodes and tears them down again.
// It must only be used from the UI goroutine.
type Renderer struct {
	names    NameResolver
	list     *TodoList
	users    *UserSelect
	handlers Handlers
}

// NewRenderer creates a Renderer drawing into list and users.
func NewRenderer(names NameResolver, list *TodoList, users *UserSelect, handlers Handlers) *Renderer {
	return &Renderer{
		names:    names,
		list:     list,
		users:    users,
		handlers: handlers,
	}
}

// RenderTodo builds the item for todo, binds its handlers and puts it at the top of the list.
func (r *Renderer) RenderTodo(todo model.Todo) *Item {
	name, err := r.names.ResolveUserName(todo.UserID)
	if err != nil {
		log.Warn().Err(err).Int("todo", todo.ID).Int("userId", todo.UserID).Msg("rendering todo with unknown owner")

		name = UnknownUserName
	}

	item := &Item{
		ID:       todo.ID,
		Checkbox: Checkbox{Checked: todo.Completed},
		Label: Label{
			Title:    todo.Title,
			UserName: name,
			Struck:   todo.Completed,
		},
	}

	id := todo.ID

	item.Checkbox.onChange = func(checked bool) {
		item.Label.Struck = checked
		r.handlers.ToggleCompleted(id, checked)
	}
	item.onDismiss = func() {
		r.handlers.Dismiss(id)
	}

	r.list.Prepend(item)

	return item
}

// RenderUserOption appends an option for user to the selection control.
func (r *Renderer) RenderUserOption(user model.User) {
	r.users.Append(Option{Value: user.ID, Text: user.Name})
}

// UnrenderTodo detaches the handlers of the item tagged with todoID and removes it.
func (r *Renderer) UnrenderTodo(todoID int) error {
	item := r.list.Remove(todoID)
	if item == nil {
		return ErrNodeNotFound
	}

	item.detach()

	return nil
}
