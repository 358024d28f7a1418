package state

// Rect is an axis-aligned bounding box in canvas space.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

func (r Rect) Width() float32  { return r.MaxX - r.MinX }
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Pad grows r by padding on every side.
func (r Rect) Pad(padding float32) Rect {
	return Rect{
		MinX: r.MinX - padding,
		MinY: r.MinY - padding,
		MaxX: r.MaxX + padding,
		MaxY: r.MaxY + padding,
	}
}

// Union returns the smallest Rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if o.MinX < r.MinX {
		r.MinX = o.MinX
	}
	if o.MinY < r.MinY {
		r.MinY = o.MinY
	}
	if o.MaxX > r.MaxX {
		r.MaxX = o.MaxX
	}
	if o.MaxY > r.MaxY {
		r.MaxY = o.MaxY
	}
	return r
}

func boundsOf(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.X > r.MaxX {
			r.MaxX = p.X
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.Y > r.MaxY {
			r.MaxY = p.Y
		}
	}
	return r, true
}
