package canvas

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

var _ Surface = &GG{}

// GG is a raster Surface backed by a gg drawing context.
type GG struct {
	dc *gg.Context
}

// NewGG creates a width x height surface cleared to background.
func NewGG(width, height int, background color.Color) *GG {
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	return &GG{dc: dc}
}

// FillRect implements Surface.
func (g *GG) FillRect(x, y, w, h float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawRectangle(x, y, w, h)
	g.dc.Fill()
}

// StrokePolyline implements Surface.
func (g *GG) StrokePolyline(points []Point, s Stroke) {
	if len(points) < 2 {
		return
	}

	g.dc.SetColor(s.Color)
	g.dc.SetLineWidth(s.Width)
	if s.Round {
		g.dc.SetLineCapRound()
		g.dc.SetLineJoinRound()
	} else {
		g.dc.SetLineCapButt()
		g.dc.SetLineJoinBevel()
	}

	g.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		g.dc.LineTo(p.X, p.Y)
	}
	g.dc.Stroke()
}

// FillCircle implements Surface.
func (g *GG) FillCircle(x, y, radius float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawCircle(x, y, radius)
	g.dc.Fill()
}

// Image returns the rendered image.
func (g *GG) Image() image.Image {
	return g.dc.Image()
}

// EncodePNG writes the rendered image as PNG.
func (g *GG) EncodePNG(w io.Writer) error {
	return g.dc.EncodePNG(w)
}

// SavePNG writes the rendered image to a PNG file.
func (g *GG) SavePNG(path string) error {
	return g.dc.SavePNG(path)
}
