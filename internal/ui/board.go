package ui

import (
	"errors"
	"image/color"
	"log"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"colorbook/internal/colors"
	"colorbook/internal/state"
)

// BoardWidget is the drawing surface: a template image with the engine's
// strokes painted over it. Pointer input is forwarded 1:1 to the engine and
// the widget redraws from the snapshots it is handed through Publish.
type BoardWidget struct {
	widget.BaseWidget
	engine      *state.Engine
	activeColor func() colors.Color
	strokeWidth float32
	background  string

	mu      sync.RWMutex
	current state.Snapshot

	drawing bool
	mouse   bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget creates a board drawing into engine. activeColor is asked
// for the pen color each time a stroke begins. background may be empty.
func NewBoardWidget(engine *state.Engine, activeColor func() colors.Color, strokeWidth float32, background string) *BoardWidget {
	b := &BoardWidget{
		engine:      engine,
		activeColor: activeColor,
		strokeWidth: strokeWidth,
		background:  background,
		current:     engine.Snapshot(),
	}
	b.ExtendBaseWidget(b)
	return b
}

// Publish hands the board a new snapshot to draw.
func (b *BoardWidget) Publish(s state.Snapshot) {
	b.mu.Lock()
	b.current = s
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) snapshot() state.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

func (b *BoardWidget) pointerDown(pos fyne.Position) {
	b.drawing = true
	b.engine.BeginStroke(toPoint(pos), b.activeColor())
}

func (b *BoardWidget) pointerMove(pos fyne.Position) {
	if err := b.engine.ExtendActiveStroke(toPoint(pos)); err != nil {
		b.drawing = false
	}
}

func (b *BoardWidget) pointerUp() {
	if !b.drawing {
		return
	}
	b.drawing = false
	if err := b.engine.FinishStroke(); err != nil && !errors.Is(err, state.ErrInvalidState) {
		log.Printf("[UI] finish stroke: %v", err)
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mouse = true
	b.pointerDown(e.Position)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointerUp()
	}
}

// Dragged extends the stroke. Touch input has no MouseDown, so the first
// drag event of a gesture begins the stroke where the finger went down.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.drawing {
		b.pointerDown(e.Position.Subtract(e.Dragged))
	}
	b.pointerMove(e.Position)
}

func (b *BoardWidget) DragEnd() {
	b.pointerUp()
}

// Tapped draws a dot for a touch tap. Mouse clicks already produced one
// through MouseDown.
func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	if b.mouse {
		return
	}
	b.pointerDown(e.Position)
	b.pointerUp()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func toPoint(pos fyne.Position) state.Point {
	return state.Point{X: pos.X, Y: pos.Y}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.paper = canvas.NewRectangle(color.White)
	if b.background != "" {
		if _, err := os.Stat(b.background); err == nil {
			r.template = canvas.NewImageFromFile(b.background)
			r.template.FillMode = canvas.ImageFillContain
		} else {
			log.Printf("[UI] template image unavailable: %v", err)
		}
	}
	r.build()
	return r
}

type boardWidgetRenderer struct {
	board    *BoardWidget
	paper    *canvas.Rectangle
	template *canvas.Image
	objects  []fyne.CanvasObject
}

// build rebuilds draw calls from the board's snapshot: one line per segment
// in stroke order, a filled circle for single-point strokes.
func (r *boardWidgetRenderer) build() {
	objects := []fyne.CanvasObject{r.paper}
	if r.template != nil {
		objects = append(objects, r.template)
	}

	width := r.board.strokeWidth
	for _, st := range r.board.snapshot().Strokes {
		c := st.Color.NRGBA()
		if len(st.Points) == 1 {
			p := st.Points[0]
			dot := canvas.NewCircle(c)
			dot.Move(fyne.NewPos(p.X-width/2, p.Y-width/2))
			dot.Resize(fyne.NewSize(width, width))
			objects = append(objects, dot)
			continue
		}
		for _, seg := range st.Segments() {
			line := canvas.NewLine(c)
			line.StrokeWidth = width
			line.Position1 = fyne.NewPos(seg[0].X, seg[0].Y)
			line.Position2 = fyne.NewPos(seg[1].X, seg[1].Y)
			objects = append(objects, line)
		}
	}
	r.objects = objects
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.build()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.paper.Resize(size)
	if r.template != nil {
		r.template.Resize(size)
	}
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
