package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"colorbook/internal/catalog"
)

// NewHomeScreen lists the templates. Choosing one bumps the counter and
// calls open; the floating counter button bumps it too.
func NewHomeScreen(counter *Counter, open func(catalog.Template)) fyne.CanvasObject {
	templates := catalog.All()

	countButton := widget.NewButton("", nil)
	showCount := func(n int) { countButton.SetText(fmt.Sprintf("Taps: %d", n)) }
	showCount(counter.Value())
	countButton.OnTapped = func() { showCount(counter.Increment()) }

	list := widget.NewList(
		func() int { return len(templates) },
		func() fyne.CanvasObject {
			return container.NewVBox(
				widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel(""),
				widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Italic: true}),
			)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			t := templates[id]
			box := o.(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(t.Title)
			desc := box.Objects[1].(*widget.Label)
			desc.Wrapping = fyne.TextWrapWord
			desc.SetText(t.Description)
			box.Objects[2].(*widget.Label).SetText(t.Status)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		list.UnselectAll()
		showCount(counter.Increment())
		if open != nil {
			open(templates[id])
		}
	}

	return container.NewBorder(
		widget.NewLabelWithStyle("Pick a page to color", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		container.NewHBox(countButton),
		nil, nil,
		list,
	)
}
