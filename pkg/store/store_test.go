package store_test

import (
	"testing"

	"github.com/matt-steen/todo-client/pkg/model"
	"github.com/matt-steen/todo-client/pkg/store"
	"github.com/stretchr/testify/assert"
)

func getStore(assert *assert.Assertions) *store.Store {
	s := store.New()

	err := s.Initialize(
		[]model.Todo{
			{ID: 1, UserID: 5, Title: "A"},
			{ID: 2, UserID: 5, Title: "B", Completed: true},
			{ID: 3, UserID: 6, Title: "C"},
		},
		[]model.User{{ID: 5, Name: "Eve"}, {ID: 6, Name: "Mallory"}},
	)
	assert.Nil(err)

	return s
}

func TestInitializeOnce(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)

	err := s.Initialize(nil, nil)
	assert.ErrorIs(err, store.ErrAlreadyInitialized)
	assert.Len(s.Todos(), 3)
	assert.Len(s.Users(), 2)
}

func TestInitializeCopiesInput(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	todos := []model.Todo{{ID: 1, UserID: 5, Title: "A"}}

	s := store.New()
	assert.Nil(s.Initialize(todos, nil))

	todos[0].Title = "changed"

	todo, ok := s.Todo(1)
	assert.True(ok)
	assert.Equal("A", todo.Title)
}

func TestResolveUserName(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)

	for _, todo := range s.Todos() {
		name, err := s.ResolveUserName(todo.UserID)
		assert.Nil(err)
		assert.NotEmpty(name)
	}

	name, err := s.ResolveUserName(6)
	assert.Nil(err)
	assert.Equal("Mallory", name)
}

func TestResolveUserNameNotFound(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)

	name, err := s.ResolveUserName(99)
	assert.ErrorIs(err, store.ErrUserNotFound)
	assert.Equal("", name)
}

func TestAddTodo(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)
	s.AddTodo(model.Todo{ID: 201, UserID: 5, Title: "D"})

	todos := s.Todos()
	assert.Len(todos, 4)
	assert.Equal(201, todos[3].ID)
}

func TestSetCompleted(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)

	assert.True(s.SetCompleted(1, true))

	todo, _ := s.Todo(1)
	assert.True(todo.Completed)

	assert.False(s.SetCompleted(42, true))
}

// ForgetTodo filters on the requested id; it must not be a self-comparison that keeps everything.
func TestForgetTodoRemovesOnlyMatching(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)

	assert.True(s.ForgetTodo(2))

	todos := s.Todos()
	assert.Len(todos, 2)
	assert.Equal(1, todos[0].ID)
	assert.Equal(3, todos[1].ID)

	_, ok := s.Todo(2)
	assert.False(ok)
}

func TestForgetTodoUnknown(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)

	assert.False(s.ForgetTodo(42))
	assert.Len(s.Todos(), 3)
}

func TestForgetTodoRepeatedID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := getStore(assert)
	s.AddTodo(model.Todo{ID: 201, UserID: 5, Title: "first"})
	s.AddTodo(model.Todo{ID: 201, UserID: 5, Title: "second"})

	assert.True(s.ForgetTodo(201))

	todo, ok := s.Todo(201)
	assert.True(ok)
	assert.Equal("first", todo.Title)
	assert.Len(s.Todos(), 4)

	assert.True(s.ForgetTodo(201))
	assert.False(s.ForgetTodo(201))
	assert.Len(s.Todos(), 3)
}
