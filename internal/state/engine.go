package state

import (
	"errors"
	"log"
	"sync"

	"colorbook/internal/colors"
)

// ErrInvalidState is returned when a stroke operation needs an active stroke
// and there is none.
var ErrInvalidState = errors.New("no active stroke")

// Engine owns the drawing: strokes in creation order, at most one of which is
// active. Mutations are expected from a single goroutine (the UI event
// thread); Snapshot may be called from anywhere.
type Engine struct {
	mu       sync.RWMutex
	session  string
	ids      sequence
	strokes  []*Stroke
	active   *Stroke
	version  uint64
	onChange func(Snapshot)
}

// NewEngine creates an empty drawing with a fresh session ID.
func NewEngine() *Engine {
	return &Engine{
		session: newSessionID(),
	}
}

// SessionID identifies this drawing session.
func (e *Engine) SessionID() string {
	return e.session
}

// OnChange registers f to receive a snapshot after every mutation. f runs on
// the mutating goroutine, after the engine lock is released.
func (e *Engine) OnChange(f func(Snapshot)) {
	e.mu.Lock()
	e.onChange = f
	e.mu.Unlock()
}

// BeginStroke starts a new stroke at p with color c and makes it the active
// stroke. The previous active stroke, if any, is sealed.
func (e *Engine) BeginStroke(p Point, c colors.Color) StrokeID {
	e.mu.Lock()
	s := &Stroke{
		ID:     e.ids.next(),
		Color:  c,
		Points: []Point{p},
	}
	e.strokes = append(e.strokes, s)
	e.active = s
	snap, notify := e.changedLocked()
	e.mu.Unlock()

	notify(snap)
	return s.ID
}

// ExtendActiveStroke appends p to the active stroke. It returns
// ErrInvalidState and leaves the drawing untouched if no stroke is active.
func (e *Engine) ExtendActiveStroke(p Point) error {
	e.mu.Lock()
	if e.active == nil {
		e.mu.Unlock()
		log.Printf("[ENGINE] extend at (%.1f, %.1f) ignored: %v", p.X, p.Y, ErrInvalidState)
		return ErrInvalidState
	}
	e.active.Points = append(e.active.Points, p)
	snap, notify := e.changedLocked()
	e.mu.Unlock()

	notify(snap)
	return nil
}

// FinishStroke seals the active stroke (pointer up). Further extends fail
// until the next BeginStroke.
func (e *Engine) FinishStroke() error {
	e.mu.Lock()
	if e.active == nil {
		e.mu.Unlock()
		return ErrInvalidState
	}
	e.active = nil
	snap, notify := e.changedLocked()
	e.mu.Unlock()

	notify(snap)
	return nil
}

// Clear removes every stroke. Clearing an empty drawing is a no-op.
func (e *Engine) Clear() {
	e.mu.Lock()
	if len(e.strokes) == 0 && e.active == nil {
		e.mu.Unlock()
		return
	}
	e.strokes = nil
	e.active = nil
	snap, notify := e.changedLocked()
	e.mu.Unlock()

	log.Printf("[ENGINE] session %s cleared", e.session)
	notify(snap)
}

// Active returns the ID of the active stroke, if any.
func (e *Engine) Active() (StrokeID, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.active == nil {
		return 0, false
	}
	return e.active.ID, true
}

// Len returns the number of strokes in the drawing.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.strokes)
}

// Snapshot returns an immutable point-in-time view of the drawing.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Session: e.session,
		Version: e.version,
		Strokes: make([]Stroke, len(e.strokes)),
	}
	for i, s := range e.strokes {
		// Points are append-only while active and frozen after, so a
		// length-capped slice of the live array is a stable view.
		n := len(s.Points)
		snap.Strokes[i] = Stroke{ID: s.ID, Color: s.Color, Points: s.Points[:n:n]}
	}
	if e.active != nil {
		snap.Active = e.active.ID
	}
	return snap
}

// changedLocked bumps the version and returns what the caller must deliver
// once the lock is released.
func (e *Engine) changedLocked() (Snapshot, func(Snapshot)) {
	e.version++
	f := e.onChange
	if f == nil {
		return Snapshot{}, func(Snapshot) {}
	}
	return e.snapshotLocked(), f
}
