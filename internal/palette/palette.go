package palette

import (
	"colorbook/internal/colors"
)

// Palette is the ordered list of colors offered for selection.
type Palette []colors.Color

// Outcome says where a loaded palette came from.
type Outcome int

const (
	Success Outcome = iota
	Fallback
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

var fallbackColors = [...]colors.Color{
	"#FF0000", "#FFA500", "#FFFF00", "#00FF00", "#00FFFF",
	"#0000FF", "#800080", "#000000", "#FFC0CB", "#D2691E",
	"#FFD700", "#8A2BE2", "#FF4500", "#00CED1", "#48D1CC",
	"#7FFF00", "#BA55D3", "#DC143C", "#FF8C00", "#00FA9A",
}

// FallbackPalette returns a fresh copy of the built-in palette used whenever the
// remote source cannot be used.
func FallbackPalette() Palette {
	p := make(Palette, len(fallbackColors))
	copy(p, fallbackColors[:])
	return p
}
