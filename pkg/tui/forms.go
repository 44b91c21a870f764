package tui

import (
	"errors"
	"fmt"

	"github.com/matt-steen/todo-client/pkg/view"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const titleMax = 200

var errNoUser = errors.New("choose a user for the todo")

func (a *App) switchToForm() {
	a.updateUserOptions()

	a.currentPage = pageForm
	a.form.SetFocus(0)
	a.pages.SwitchToPage(pageForm)

	a.app.SetInputCapture(a.handleFormKeys)
	a.app.SetFocus(a.form)
}

func (a *App) getFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0)

	a.initForm()

	grid.AddItem(a.getFormHeader(), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(a.form, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (a *App) getFormHeader() *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)
	table.SetCell(0, 0, tview.NewTableCell("[yellow]New Todo"))

	row := 1

	for key, event := range a.formEvents {
		text := fmt.Sprintf("[orange]<%s>[white] %s", a.keyName(key), event.Description)
		table.SetCell(row, 0, tview.NewTableCell(text))
		row++
	}

	return table
}

func (a *App) initForm() {
	a.form = tview.NewForm().
		AddDropDown("User", []string{}, -1, nil).
		AddInputField("Title", "", titleMax, nil, nil)

	a.userDropDown, _ = a.form.GetFormItemByLabel("User").(*tview.DropDown)
	a.titleField, _ = a.form.GetFormItemByLabel("Title").(*tview.InputField)

	a.form.AddButton("Save", a.save)
}

// updateUserOptions copies the rendered user options into the drop-down, keeping the selection.
func (a *App) updateUserOptions() {
	current, _ := a.userDropDown.GetCurrentOption()

	options := []string{}
	for _, option := range a.controller.Users().Options() {
		options = append(options, option.Text)
	}

	a.userDropDown.SetOptions(options, nil)

	if current >= 0 && current < len(options) {
		a.userDropDown.SetCurrentOption(current)
	} else {
		a.userDropDown.SetCurrentOption(-1)
	}
}

func (a *App) selectedUser() (view.Option, error) {
	idx, _ := a.userDropDown.GetCurrentOption()

	options := a.controller.Users().Options()
	if idx < 0 || idx >= len(options) {
		return view.Option{}, errNoUser
	}

	return options[idx], nil
}

func (a *App) save() {
	user, err := a.selectedUser()
	if err != nil {
		a.Alert(err.Error())

		return
	}

	log.Debug().Int("userId", user.Value).Msgf("saving todo with title '%s'", a.titleField.GetText())

	if err := a.controller.Submit(user.Value, a.titleField.GetText()); err != nil {
		log.Warn().Err(err).Msg("error submitting todo")
		a.Alert(err.Error())

		return
	}

	a.titleField.SetText("")
	a.showList()
}
