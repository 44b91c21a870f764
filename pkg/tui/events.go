package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

// These runes are the shortcuts on the todo list page.
const (
	KeyNew     = 'n'
	KeyToggle  = ' '
	KeyDismiss = 'x'
	KeyQuit    = 'q'
)

func (a *App) initEvents() {
	a.events = map[rune]KeyEvent{}
	a.formEvents = map[tcell.Key]KeyEvent{}

	a.initListEvents(a.events)
	a.initExitEvent(a.events)

	a.formEvents[tcell.KeyEscape] = KeyEvent{
		Description: "Back to list",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			a.showList()

			return nil
		},
	}
}

func (a *App) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		log.Info().Msg("terminating application")

		a.app.Stop()

		return nil
	}
}

func (a *App) initExitEvent(events map[rune]KeyEvent) {
	events[KeyQuit] = KeyEvent{
		Description: "Quit",
		Action:      a.getExitAction(),
	}
}

func (a *App) initListEvents(events map[rune]KeyEvent) {
	events[KeyNew] = KeyEvent{
		Description: "New todo",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			a.switchToForm()

			return nil
		},
	}

	events[KeyToggle] = KeyEvent{
		Description: "Toggle done",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			item := a.selectedItem()
			if item == nil {
				return nil
			}

			item.Change(!item.Checkbox.Checked)

			return nil
		},
	}

	events[KeyDismiss] = KeyEvent{
		Description: "Delete",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			item := a.selectedItem()
			if item == nil {
				return nil
			}

			if !item.Dismiss() {
				log.Warn().Int("id", item.ID).Msg("dismiss on an item without handlers")
			}

			return nil
		},
	}
}
