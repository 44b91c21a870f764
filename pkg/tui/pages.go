package tui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-client/pkg/controller"
	"github.com/matt-steen/todo-client/pkg/view"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	pageList  = "list"
	pageForm  = "form"
	pageAlert = "alert"
)

func (a *App) initPages() {
	a.pages = tview.NewPages()

	a.pages.AddPage(pageList, a.getListGrid(), true, true)
	a.pages.AddPage(pageForm, a.getFormGrid(), true, false)

	a.modal = tview.NewModal().
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			a.pages.HidePage(pageAlert)
			a.restorePage()
		})
	a.pages.AddPage(pageAlert, a.modal, false, false)

	a.currentPage = pageList
	a.app.SetInputCapture(a.keyboard(a.events))
}

func (a *App) getListGrid() *tview.Grid {
	a.header = tview.NewTextView().SetDynamicColors(true)
	a.header.SetScrollable(false)

	a.content = NewListContent(a.controller.List())

	a.table = tview.NewTable().SetBorders(false)
	a.table.SetContent(a.content)
	a.table.SetSelectable(true, false)
	a.table.SetFixed(1, 0)
	a.table.SetSelectionChangedFunc(a.setCurrentRow)

	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0)

	grid.AddItem(a.header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(a.table, 1, 0, 1, 1, 0, 0, true)

	return grid
}

// refreshHeader shows the controller state followed by the keyboard shortcuts, sorted alphabetically.
func (a *App) refreshHeader() {
	state := a.controller.State()

	title := fmt.Sprintf("[yellow]todos (%d)", a.controller.List().Len())
	if state != controller.StateReady {
		title = fmt.Sprintf("[yellow]%s...", state)
	}

	shortcuts := []string{}

	for key, event := range a.events {
		name := string(key)
		if key == KeyToggle {
			name = "space"
		}

		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%s>[white] %s", name, event.Description))
	}

	sort.Strings(shortcuts)

	text := title + "\n"
	for _, s := range shortcuts {
		text += s + "  "
	}

	a.header.SetText(text)

	// keep the selection on a real row after items were added or removed
	row, _ := a.table.GetSelection()
	if length := a.controller.List().Len(); length > 0 && (row < 1 || row > length) {
		a.table.Select(1, 0)
	}
}

func (a *App) selectedItem() *view.Item {
	row, _ := a.table.GetSelection()

	return a.content.Item(row)
}

// when the row selection changes, log the selected todo.
func (a *App) setCurrentRow(row, col int) {
	item := a.content.Item(row)

	title := "nil"
	if item != nil {
		title = item.Label.Title
	}

	log.Debug().Int("row", row).Msgf("selected todo '%s'", title)
}

func (a *App) showList() {
	a.currentPage = pageList
	a.pages.SwitchToPage(pageList)
	a.app.SetInputCapture(a.keyboard(a.events))
	a.app.SetFocus(a.table)
}

func (a *App) restorePage() {
	if a.currentPage == pageForm {
		a.app.SetInputCapture(a.handleFormKeys)
		a.app.SetFocus(a.form)

		return
	}

	a.showList()
}

func (a *App) keyName(key tcell.Key) string {
	if name, ok := tcell.KeyNames[key]; ok {
		return name
	}

	return "?"
}
