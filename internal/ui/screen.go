package ui

import (
	"context"
	"image"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"colorbook/internal/catalog"
	"colorbook/internal/config"
	"colorbook/internal/palette"
	"colorbook/internal/render"
	"colorbook/internal/state"
)

// SnapshotSink receives every snapshot of the drawing, e.g. the board itself
// or the network mirror.
type SnapshotSink interface {
	Publish(state.Snapshot)
}

// BackgroundSink is a SnapshotSink that also draws the session's template,
// like the mirror's frame renderer.
type BackgroundSink interface {
	SetBackground(image.Image)
}

// ColoringScreen is one drawing session over a template. It owns its engine
// and palette provider; Close ends the session.
type ColoringScreen struct {
	Template catalog.Template

	engine   *state.Engine
	provider *palette.Provider
	board    *BoardWidget
	bar      *PaletteBar
	content  fyne.CanvasObject

	ctx    context.Context
	cancel context.CancelFunc
}

// NewColoringScreen builds the screen. Snapshots go to the board and to every
// extra sink. onBack is called when the user leaves the screen.
func NewColoringScreen(tmpl catalog.Template, cfg config.Config, onBack func(), sinks ...SnapshotSink) *ColoringScreen {
	s := &ColoringScreen{
		Template: tmpl,
		engine:   state.NewEngine(),
		provider: palette.NewProvider(cfg.PaletteConfig()),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	var background string
	if tmpl.Image != "" && cfg.Canvas.TemplatesDir != "" {
		background = filepath.Join(cfg.Canvas.TemplatesDir, tmpl.Image)
	}
	s.board = NewBoardWidget(s.engine, s.provider.ActiveColor, cfg.Canvas.StrokeWidth, background)
	s.bar = NewPaletteBar(s.provider)

	all := append([]SnapshotSink{s.board}, sinks...)
	s.engine.OnChange(func(snap state.Snapshot) {
		for _, sink := range all {
			sink.Publish(snap)
		}
	})
	setBackground(background, sinks)
	for _, sink := range sinks {
		sink.Publish(s.engine.Snapshot())
	}

	header := container.NewBorder(nil, nil,
		widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
			if onBack != nil {
				onBack()
			}
		}),
		widget.NewButtonWithIcon("", theme.DeleteIcon(), s.engine.Clear),
		widget.NewLabelWithStyle(tmpl.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	s.content = container.NewBorder(header, s.bar.Content(), nil, nil, s.board)
	return s
}

// setBackground hands the template at path to every sink that renders it.
// Sinks get nil when there is no template or it fails to load, so a
// previous session's template is never left behind.
func setBackground(path string, sinks []SnapshotSink) {
	var targets []BackgroundSink
	for _, sink := range sinks {
		if bs, ok := sink.(BackgroundSink); ok {
			targets = append(targets, bs)
		}
	}
	if len(targets) == 0 {
		return
	}

	var img image.Image
	if path != "" {
		loaded, err := render.LoadBackground(path)
		if err != nil {
			log.Printf("[UI] template background unavailable: %v", err)
		} else {
			img = loaded
		}
	}
	for _, bs := range targets {
		bs.SetBackground(img)
	}
}

// Content returns the screen's canvas object.
func (s *ColoringScreen) Content() fyne.CanvasObject {
	return s.content
}

// Engine exposes the session's drawing.
func (s *ColoringScreen) Engine() *state.Engine {
	return s.engine
}

// Provider exposes the session's palette provider.
func (s *ColoringScreen) Provider() *palette.Provider {
	return s.provider
}

// Start loads the palette in the background. Drawing works meanwhile with
// the default color; the bar fills in once the load resolves.
func (s *ColoringScreen) Start() {
	s.provider.LoadAsync(s.ctx, func(pal palette.Palette, _ palette.Outcome) {
		fyne.Do(func() {
			if s.ctx.Err() != nil {
				return
			}
			s.bar.SetPalette(pal)
		})
	})
}

// Close ends the session. A palette load still in flight is dropped.
func (s *ColoringScreen) Close() {
	s.cancel()
	s.provider.Close()
	s.engine.Clear()
}
