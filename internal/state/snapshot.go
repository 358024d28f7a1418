package state

// Snapshot is a versioned, read-only copy of a drawing handed to renderers.
// Strokes are in render order: later strokes paint over earlier ones.
type Snapshot struct {
	Session string   `json:"session"`
	Version uint64   `json:"version"`
	Strokes []Stroke `json:"strokes"`
	// Active is the ID of the stroke still receiving points, or 0.
	Active StrokeID `json:"active,omitempty"`
}

// Len returns the number of strokes.
func (s Snapshot) Len() int {
	return len(s.Strokes)
}

// Bounds returns the box covering every point, or false for an empty drawing.
func (s Snapshot) Bounds() (Rect, bool) {
	var (
		out   Rect
		found bool
	)
	for _, st := range s.Strokes {
		r, ok := boundsOf(st.Points)
		if !ok {
			continue
		}
		if !found {
			out, found = r, true
			continue
		}
		out = out.Union(r)
	}
	return out, found
}
