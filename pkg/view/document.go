package view

import "fmt"

// Checkbox reflects a todo's completion state.
type Checkbox struct {
	Checked  bool
	onChange func(checked bool)
}

// Label is the visible text of an item.
type Label struct {
	Title    string
	UserName string
	// Struck is the strike-through state used for completed todos.
	Struck bool
}

// Item is the rendered form of a single todo, tagged with the todo's id.
type Item struct {
	ID       int
	Checkbox Checkbox
	Label    Label

	onDismiss func()
}

// Text returns the label text, e.g. "Buy milk by Eve".
func (i *Item) Text() string {
	return fmt.Sprintf("%s by %s", i.Label.Title, i.Label.UserName)
}

// Change sets the checkbox and fires its change handler, if one is attached.
func (i *Item) Change(checked bool) {
	i.Checkbox.Checked = checked

	if i.Checkbox.onChange != nil {
		i.Checkbox.onChange(checked)
	}
}

// Dismiss fires the close handler. It returns false if no handler is attached.
func (i *Item) Dismiss() bool {
	if i.onDismiss == nil {
		return false
	}

	i.onDismiss()

	return true
}

// Attached reports whether the item still has its interaction handlers.
func (i *Item) Attached() bool {
	return i.Checkbox.onChange != nil && i.onDismiss != nil
}

func (i *Item) detach() {
	i.Checkbox.onChange = nil
	i.onDismiss = nil
}

// TodoList is the visible list of items, top to bottom.
type TodoList struct {
	items []*Item
}

// NewTodoList returns an empty list.
func NewTodoList() *TodoList {
	return &TodoList{items: []*Item{}}
}

// Prepend inserts the item at the top of the list.
func (l *TodoList) Prepend(item *Item) {
	l.items = append([]*Item{item}, l.items...)
}

// Find returns the first item tagged with the given id, or nil.
func (l *TodoList) Find(id int) *Item {
	for _, item := range l.items {
		if item.ID == id {
			return item
		}
	}

	return nil
}

// Remove takes the first item tagged with the given id out of the list and returns it.
func (l *TodoList) Remove(id int) *Item {
	for idx, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:idx], l.items[idx+1:]...)

			return item
		}
	}

	return nil
}

// At returns the item at the given row, or nil if out of range.
func (l *TodoList) At(row int) *Item {
	if row < 0 || row >= len(l.items) {
		return nil
	}

	return l.items[row]
}

// Len returns the number of items.
func (l *TodoList) Len() int {
	return len(l.items)
}

// Items returns the items top to bottom.
func (l *TodoList) Items() []*Item {
	out := make([]*Item, len(l.items))
	copy(out, l.items)

	return out
}

// Option is one entry of the user selection control.
type Option struct {
	Value int
	Text  string
}

// UserSelect is the selection control listing users in load order.
type UserSelect struct {
	options []Option
}

// NewUserSelect returns an empty selection control.
func NewUserSelect() *UserSelect {
	return &UserSelect{options: []Option{}}
}

// Append adds an option at the end.
func (s *UserSelect) Append(option Option) {
	s.options = append(s.options, option)
}

// Options returns the options in order.
func (s *UserSelect) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)

	return out
}
