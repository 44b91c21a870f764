package store

import (
	"errors"
	"sync"

	"github.com/matt-steen/todo-client/pkg/model"
)

var (
	// ErrUserNotFound is returned when no loaded user has the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyInitialized is returned when Initialize is called more than once.
	ErrAlreadyInitialized = errors.New("store already initialized")
)

// Store holds the local snapshot of todos and users between startup and the next run.
// Todos is mutated on create, toggle and delete; Users is written once by Initialize.
type Store struct {
	mu          sync.RWMutex
	initialized bool
	todos       []*model.Todo
	users       []*model.User
}

// New returns an empty, uninitialized Store.
func New() *Store {
	return &Store{
		todos: []*model.Todo{},
		users: []*model.User{},
	}
}

// Initialize replaces both sequences wholesale. It may only be called once.
func (s *Store) Initialize(todos []model.Todo, users []model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return ErrAlreadyInitialized
	}

	s.todos = make([]*model.Todo, 0, len(todos))
	for i := range todos {
		todo := todos[i]
		s.todos = append(s.todos, &todo)
	}

	s.users = make([]*model.User, 0, len(users))
	for i := range users {
		user := users[i]
		s.users = append(s.users, &user)
	}

	s.initialized = true

	return nil
}

// ResolveUserName returns the name of the user with the given id.
func (s *Store) ResolveUserName(userID int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ID == userID {
			return user.Name, nil
		}
	}

	return "", ErrUserNotFound
}

// AddTodo appends a todo the server has just created.
func (s *Store) AddTodo(todo model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = append(s.todos, &todo)
}

// SetCompleted mirrors a completion toggle locally. It returns false if the todo is unknown.
func (s *Store) SetCompleted(todoID int, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.lastIndex(todoID)
	if idx < 0 {
		return false
	}

	s.todos[idx].Completed = completed

	return true
}

// ForgetTodo removes one todo with the given id, preserving the order of the rest.
// Ids can repeat when the service does not assign unique ones; the most recently added
// record goes first, the same one the list shows on top. It returns false if nothing was removed.
func (s *Store) ForgetTodo(todoID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.lastIndex(todoID)
	if idx < 0 {
		return false
	}

	copy(s.todos[idx:], s.todos[idx+1:])
	s.todos[len(s.todos)-1] = nil
	s.todos = s.todos[:len(s.todos)-1]

	return true
}

func (s *Store) lastIndex(todoID int) int {
	for idx := len(s.todos) - 1; idx >= 0; idx-- {
		if s.todos[idx].ID == todoID {
			return idx
		}
	}

	return -1
}

// Todo returns a copy of the todo with the given id. With repeated ids it is the most recent one.
func (s *Store) Todo(todoID int) (model.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.lastIndex(todoID)
	if idx < 0 {
		return model.Todo{}, false
	}

	return *s.todos[idx], true
}

// Todos returns a copy of the todo sequence.
func (s *Store) Todos() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		out = append(out, *todo)
	}

	return out
}

// Users returns a copy of the user sequence.
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}

	return out
}
