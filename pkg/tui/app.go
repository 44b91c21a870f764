package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-client/pkg/controller"
	"github.com/rivo/tview"
)

// App is the terminal front end. It draws the controller's view tree and feeds key presses
// back into it. All view changes run on the tview event loop.
type App struct {
	app        *tview.Application
	pages      *tview.Pages
	controller *controller.Controller

	header  *tview.TextView
	table   *tview.Table
	content *ListContent

	form         *tview.Form
	userDropDown *tview.DropDown
	titleField   *tview.InputField

	modal *tview.Modal

	currentPage string
	events      map[rune]KeyEvent
	formEvents  map[tcell.Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewApp creates the front end for the given service.
func NewApp(ctx context.Context, service controller.Service) *App {
	a := &App{
		app: tview.NewApplication(),
	}

	a.controller = controller.NewController(ctx, service, a, a)

	a.initEvents()
	a.initPages()

	return a
}

// Run starts loading todos and users and blocks until the user quits.
func (a *App) Run() error {
	if err := a.controller.Start(); err != nil {
		return err
	}

	a.refreshHeader()

	return a.app.SetRoot(a.pages, true).Run()
}

// QueueUpdate runs f on the event loop and redraws afterwards.
func (a *App) QueueUpdate(f func()) {
	a.app.QueueUpdateDraw(func() {
		f()
		a.refreshHeader()
	})
}

// Alert shows message in a modal until the user dismisses it.
func (a *App) Alert(message string) {
	a.modal.SetText(message)
	a.pages.ShowPage(pageAlert)
	a.app.SetInputCapture(nil)
	a.app.SetFocus(a.modal)
}

func (a *App) keyboard(events map[rune]KeyEvent) func(*tcell.EventKey) *tcell.EventKey {
	return func(evt *tcell.EventKey) *tcell.EventKey {
		if evt.Key() != tcell.KeyRune {
			return evt
		}

		if k, ok := events[evt.Rune()]; ok {
			return k.Action(evt)
		}

		return evt
	}
}

func (a *App) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if k, ok := a.formEvents[evt.Key()]; ok {
		return k.Action(evt)
	}

	return evt
}
