package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"colorbook/internal/catalog"
	"colorbook/internal/config"
)

const appID = "io.colorbook.app"

// Navigator switches the window between the home screen and a coloring
// session, tearing the session down on the way back.
type Navigator struct {
	window fyne.Window
	cfg    config.Config
	sinks  []SnapshotSink
	home   fyne.CanvasObject
	active *ColoringScreen
}

func NewNavigator(window fyne.Window, prefs fyne.Preferences, cfg config.Config, sinks ...SnapshotSink) *Navigator {
	n := &Navigator{window: window, cfg: cfg, sinks: sinks}
	n.home = NewHomeScreen(NewCounter(prefs), n.Open)
	return n
}

// Home shows the template list, closing any open session.
func (n *Navigator) Home() {
	if n.active != nil {
		n.active.Close()
		n.active = nil
	}
	n.window.SetContent(n.home)
}

// Open starts a coloring session for tmpl.
func (n *Navigator) Open(tmpl catalog.Template) {
	if n.active != nil {
		n.active.Close()
	}
	log.Printf("[UI] opening %s", tmpl.Type)
	n.active = NewColoringScreen(tmpl, n.cfg, n.Home, n.sinks...)
	n.window.SetContent(n.active.Content())
	n.active.Start()
}

// Active returns the open coloring session, if any.
func (n *Navigator) Active() *ColoringScreen {
	return n.active
}

// RunApp opens the main window and blocks until it is closed.
func RunApp(cfg config.Config, status string, sinks ...SnapshotSink) {
	myApp := app.NewWithID(appID)
	myWindow := myApp.NewWindow("Coloring Book")
	myWindow.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))

	nav := NewNavigator(myWindow, myApp.Preferences(), cfg, sinks...)
	nav.Home()
	if status != "" {
		myWindow.SetTitle("Coloring Book - " + status)
	}
	myWindow.SetOnClosed(func() {
		if s := nav.Active(); s != nil {
			s.Close()
		}
	})
	myWindow.ShowAndRun()
}
