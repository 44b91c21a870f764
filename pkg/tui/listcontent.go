package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-client/pkg/view"
	"github.com/rivo/tview"
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
	closeMark    = "×"

	labelRatio = 8
)

// ListContent implements tview.TableContent over the rendered todo list.
// Row 0 is the column header; row n shows the n-th item from the top.
type ListContent struct {
	tview.TableContentReadOnly
	list *view.TodoList
}

// NewListContent returns table content backed by list.
func NewListContent(list *view.TodoList) *ListContent {
	return &ListContent{list: list}
}

// Item returns the item shown at the given table row, or nil for the header and empty rows.
func (l *ListContent) Item(row int) *view.Item {
	return l.list.At(row - 1)
}

// GetCell returns the cell at the given position or nil if no cell.
func (l *ListContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("done").SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("todo").SetExpansion(labelRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("").SetSelectable(false)
		}
	}

	item := l.Item(row)
	if item == nil {
		return nil
	}

	switch col {
	case 0:
		if item.Checkbox.Checked {
			return tview.NewTableCell(boxChecked).SetTextColor(tcell.ColorGreen)
		}

		return tview.NewTableCell(boxUnchecked)
	case 1:
		cell := tview.NewTableCell(tview.Escape(item.Text())).SetExpansion(labelRatio).SetReference(item)
		if item.Label.Struck {
			cell.SetAttributes(tcell.AttrStrikeThrough).SetTextColor(tcell.ColorGray)
		}

		return cell
	case 2:
		return tview.NewTableCell(closeMark).SetTextColor(tcell.ColorRed).SetAlign(tview.AlignRight)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (l *ListContent) GetRowCount() int {
	return l.list.Len() + 1
}

// GetColumnCount returns the number of columns in the table.
func (l *ListContent) GetColumnCount() int {
	return 3
}
