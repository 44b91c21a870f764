package tui_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-client/pkg/model"
	"github.com/matt-steen/todo-client/pkg/store"
	"github.com/matt-steen/todo-client/pkg/tui"
	"github.com/matt-steen/todo-client/pkg/view"
	"github.com/stretchr/testify/assert"
)

type noHandlers struct{}

func (noHandlers) ToggleCompleted(int, bool) {}

func (noHandlers) Dismiss(int) {}

func getContent(assert *assert.Assertions) *tui.ListContent {
	s := store.New()
	assert.Nil(s.Initialize(nil, []model.User{{ID: 5, Name: "Eve"}}))

	list := view.NewTodoList()
	renderer := view.NewRenderer(s, list, view.NewUserSelect(), noHandlers{})

	renderer.RenderTodo(model.Todo{ID: 1, UserID: 5, Title: "A"})
	renderer.RenderTodo(model.Todo{ID: 2, UserID: 5, Title: "B [draft]", Completed: true})

	return tui.NewListContent(list)
}

func TestListContentRows(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	content := getContent(assert)

	assert.Equal(3, content.GetRowCount())
	assert.Equal(3, content.GetColumnCount())
	assert.Nil(content.Item(0))
	assert.Equal(2, content.Item(1).ID)
	assert.Equal(1, content.Item(2).ID)
	assert.Nil(content.Item(3))
	assert.Nil(content.GetCell(3, 1))
}

func TestListContentStrikeThrough(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	content := getContent(assert)

	struck := content.GetCell(1, 1)
	assert.NotZero(struck.Attributes & tcell.AttrStrikeThrough)
	assert.Equal(content.Item(1), struck.GetReference())

	plain := content.GetCell(2, 1)
	assert.Zero(plain.Attributes & tcell.AttrStrikeThrough)
	assert.Equal("A by Eve", plain.Text)
}

func TestListContentHeaderNotSelectable(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	content := getContent(assert)

	for col := 0; col < content.GetColumnCount(); col++ {
		assert.True(content.GetCell(0, col).NotSelectable)
	}
}
