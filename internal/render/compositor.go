// Package render rasterizes drawing snapshots for hosts that want pixels
// rather than draw calls.
package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/gg"

	"colorbook/internal/state"
)

// DefaultStrokeWidth matches the on-screen pen.
const DefaultStrokeWidth = 5

// Compositor draws a snapshot over a background template.
//
// Width and Height fix the canvas size. When zero, the background's size is
// used, and without a background the canvas grows to fit the strokes.
type Compositor struct {
	Width, Height int
	StrokeWidth   float64
	Background    image.Image
	Paper         color.Color
}

// Render returns a new image of s composited over the background. Strokes are
// painted in order, so later strokes cover earlier ones. A one-point stroke
// is drawn as a dot of the stroke width.
func (c *Compositor) Render(s state.Snapshot) (image.Image, error) {
	dc, err := c.draw(s)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// EncodePNG renders s and writes it to w as PNG.
func (c *Compositor) EncodePNG(w io.Writer, s state.Snapshot) error {
	dc, err := c.draw(s)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func (c *Compositor) draw(s state.Snapshot) (*gg.Context, error) {
	w, h := c.size(s)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	width := c.strokeWidth()

	dc := gg.NewContext(w, h)
	paper := gg.White
	if c.Paper != nil {
		paper = gg.FromColor(c.Paper)
	}
	dc.ClearWithColor(paper)

	if c.Background != nil {
		drawContained(dc, c.Background, w, h)
	}

	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, st := range s.Strokes {
		if len(st.Points) == 0 {
			continue
		}
		dc.SetColor(st.Color.NRGBA())
		if len(st.Points) == 1 {
			p := st.Points[0]
			dc.DrawCircle(float64(p.X), float64(p.Y), width/2)
			if err := dc.Fill(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("fill stroke %d: %w", st.ID, err)
			}
			continue
		}
		dc.MoveTo(float64(st.Points[0].X), float64(st.Points[0].Y))
		for _, p := range st.Points[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("stroke %d: %w", st.ID, err)
		}
	}
	return dc, nil
}

func (c *Compositor) strokeWidth() float64 {
	if c.StrokeWidth > 0 {
		return c.StrokeWidth
	}
	return DefaultStrokeWidth
}

func (c *Compositor) size(s state.Snapshot) (int, int) {
	if c.Width > 0 && c.Height > 0 {
		return c.Width, c.Height
	}
	if c.Background != nil {
		b := c.Background.Bounds()
		return b.Dx(), b.Dy()
	}
	r, ok := s.Bounds()
	if !ok {
		return 1, 1
	}
	r = r.Pad(float32(c.strokeWidth()))
	return max(1, int(math.Ceil(float64(r.MaxX)))), max(1, int(math.Ceil(float64(r.MaxY))))
}

// drawContained scales img to fit inside w×h keeping its aspect ratio and
// centers it.
func drawContained(dc *gg.Context, img image.Image, w, h int) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	scale := math.Min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	dw, dh := float64(b.Dx())*scale, float64(b.Dy())*scale
	dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         (float64(w) - dw) / 2,
		Y:         (float64(h) - dh) / 2,
		DstWidth:  dw,
		DstHeight: dh,
	})
}

// LoadBackground decodes a PNG or JPEG template from disk.
func LoadBackground(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open background: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode background %s: %w", path, err)
	}
	return img, nil
}
