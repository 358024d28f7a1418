package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colorbook/internal/colors"
	"colorbook/internal/state"
)

func at(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func assertNear(t *testing.T, want, got color.NRGBA, msg string) {
	t.Helper()
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d > -40 && d < 40
	}
	assert.True(t, near(want.R, got.R) && near(want.G, got.G) && near(want.B, got.B),
		"%s: want %v, got %v", msg, want, got)
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func TestRenderStrokesInOrder(t *testing.T) {
	snap := state.Snapshot{Strokes: []state.Stroke{
		{ID: 1, Color: "#FF0000", Points: []state.Point{{X: 10, Y: 50}, {X: 90, Y: 50}}},
		{ID: 2, Color: "#0000FF", Points: []state.Point{{X: 50, Y: 10}, {X: 50, Y: 90}}},
	}}
	c := &Compositor{Width: 100, Height: 100, StrokeWidth: 6}
	img, err := c.Render(snap)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())

	assertNear(t, red, at(img, 25, 50), "first stroke")
	assertNear(t, blue, at(img, 50, 25), "second stroke")
	assertNear(t, blue, at(img, 50, 50), "later stroke on top")
	assertNear(t, white, at(img, 10, 10), "paper")
}

func TestRenderDot(t *testing.T) {
	snap := state.Snapshot{Strokes: []state.Stroke{
		{ID: 1, Color: "#0000FF", Points: []state.Point{{X: 20, Y: 30}}},
	}}
	img, err := (&Compositor{Width: 40, Height: 40, StrokeWidth: 10}).Render(snap)
	require.NoError(t, err)
	assertNear(t, blue, at(img, 20, 30), "dot center")
	assertNear(t, white, at(img, 35, 5), "away from dot")
}

func TestRenderOverBackground(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			bg.SetNRGBA(x, y, green)
		}
	}
	snap := state.Snapshot{Strokes: []state.Stroke{
		{ID: 1, Color: colors.Default, Points: []state.Point{{X: 5, Y: 25}, {X: 45, Y: 25}}},
	}}
	img, err := (&Compositor{Background: bg, StrokeWidth: 4}).Render(snap)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 50), img.Bounds())
	assertNear(t, green, at(img, 10, 5), "background")
	assertNear(t, red, at(img, 25, 25), "stroke over background")
}

func TestRenderSizing(t *testing.T) {
	c := &Compositor{StrokeWidth: 4}
	img, err := c.Render(state.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())

	snap := state.Snapshot{Strokes: []state.Stroke{
		{ID: 1, Color: colors.Default, Points: []state.Point{{X: 10, Y: 10}, {X: 60, Y: 30}}},
	}}
	img, err = c.Render(snap)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 34), img.Bounds())
}

func TestEncodePNG(t *testing.T) {
	snap := state.Snapshot{Strokes: []state.Stroke{
		{ID: 1, Color: "#FF0000", Points: []state.Point{{X: 2, Y: 8}, {X: 14, Y: 8}}},
	}}
	var buf bytes.Buffer
	require.NoError(t, (&Compositor{Width: 16, Height: 16, StrokeWidth: 4}).EncodePNG(&buf, snap))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assertNear(t, red, at(img, 8, 8), "decoded stroke")
}

func TestLoadBackground(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.png")
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := LoadBackground(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = LoadBackground(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
