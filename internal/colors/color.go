package colors

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a color code is not six hex digits.
var ErrInvalidHex = errors.New("invalid hex color")

// Color is an opaque color value in "#rrggbb" form. The text is kept as
// received so a palette entry compares equal to the selection made from it.
type Color string

// Default is the active color before any selection is made.
const Default Color = "#FF0000"

// FromHex builds a Color from six hex digits without a leading '#'.
func FromHex(hex string) (Color, error) {
	if len(hex) != 6 || !isHexDigits(hex) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	c := Color("#" + hex)
	if _, err := colorful.Hex(string(c)); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return c, nil
}

// Valid reports whether c parses as a "#rrggbb" color.
func (c Color) Valid() bool {
	if len(c) != 7 || c[0] != '#' || !isHexDigits(string(c[1:])) {
		return false
	}
	_, err := colorful.Hex(string(c))
	return err == nil
}

// NRGBA converts c for drawing. Values that do not parse render as opaque black.
func (c Color) NRGBA() color.NRGBA {
	if !c.Valid() {
		return color.NRGBA{A: 0xff}
	}
	cf, err := colorful.Hex(string(c))
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// colorful.Hex stops scanning at the first non-hex byte, so digits are
// checked up front.
func isHexDigits(s string) bool {
	return strings.Trim(s, "0123456789abcdefABCDEF") == ""
}

func (c Color) String() string {
	return string(c)
}
