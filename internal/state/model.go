package state

import (
	"colorbook/internal/colors"
)

// Point is a canvas-space coordinate.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// StrokeID identifies a stroke within one engine. IDs start at 1 and only grow.
type StrokeID uint64

// Stroke is one pointer-down to pointer-up gesture. Color is bound when the
// stroke begins and never changes.
type Stroke struct {
	ID     StrokeID     `json:"id"`
	Color  colors.Color `json:"color"`
	Points []Point      `json:"points"`
}

// Segments returns the straight segments joining consecutive points. A
// single-point stroke yields one zero-length segment (a dot).
func (s Stroke) Segments() [][2]Point {
	switch len(s.Points) {
	case 0:
		return nil
	case 1:
		return [][2]Point{{s.Points[0], s.Points[0]}}
	}
	segs := make([][2]Point, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		segs = append(segs, [2]Point{s.Points[i-1], s.Points[i]})
	}
	return segs
}
