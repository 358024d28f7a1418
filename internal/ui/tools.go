package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"colorbook/internal/colors"
	"colorbook/internal/palette"
)

// colorSwatch is a tappable color button that outlines itself when selected.
type colorSwatch struct {
	widget.BaseWidget
	Color    colors.Color
	Selected bool
	OnTapped func(colors.Color)
}

func newColorSwatch(c colors.Color, tapped func(colors.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	r := &swatchRenderer{swatch: s, dot: canvas.NewCircle(s.Color.NRGBA())}
	r.Refresh()
	return r
}

type swatchRenderer struct {
	swatch *colorSwatch
	dot    *canvas.Circle
}

func (r *swatchRenderer) Refresh() {
	r.dot.StrokeWidth = 1
	r.dot.StrokeColor = color.Gray{Y: 0xdd}
	if r.swatch.Selected {
		r.dot.StrokeWidth = 2
		r.dot.StrokeColor = color.Black
	}
	r.dot.Refresh()
}

func (r *swatchRenderer) Layout(size fyne.Size)        { r.dot.Resize(size) }
func (r *swatchRenderer) MinSize() fyne.Size           { return fyne.NewSize(32, 32) }
func (r *swatchRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.dot} }
func (r *swatchRenderer) Destroy()                     {}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// PaletteBar shows the provider's palette and writes taps back as the
// provider's active color.
type PaletteBar struct {
	provider *palette.Provider
	status   *widget.Label
	box      *fyne.Container
	swatches []*colorSwatch
	content  fyne.CanvasObject
}

// NewPaletteBar creates a bar that reads "Loading color palette..." until
// SetPalette is called.
func NewPaletteBar(provider *palette.Provider) *PaletteBar {
	p := &PaletteBar{
		provider: provider,
		status:   widget.NewLabel("Loading color palette..."),
		box:      container.NewGridWrap(fyne.NewSize(36, 36)),
	}
	p.content = container.NewVBox(widget.NewLabel("Pick a Color:"), p.status, p.box)
	return p
}

// Content returns the bar's canvas object.
func (p *PaletteBar) Content() fyne.CanvasObject {
	return p.content
}

// SetPalette replaces all swatches with pal.
func (p *PaletteBar) SetPalette(pal palette.Palette) {
	p.swatches = p.swatches[:0]
	objects := make([]fyne.CanvasObject, 0, len(pal))
	for _, c := range pal {
		s := newColorSwatch(c, p.selectColor)
		p.swatches = append(p.swatches, s)
		objects = append(objects, s)
	}
	p.box.Objects = objects
	p.status.Hide()
	p.highlight(p.provider.ActiveColor())
	p.box.Refresh()
}

func (p *PaletteBar) selectColor(c colors.Color) {
	p.provider.SelectColor(c)
	p.highlight(c)
}

func (p *PaletteBar) highlight(active colors.Color) {
	for _, s := range p.swatches {
		selected := s.Color == active
		if s.Selected != selected {
			s.Selected = selected
			s.Refresh()
		}
	}
}
