// Package canvas defines the drawing surface the engines and the maze painter
// render onto, together with a raster implementation backed by fogleman/gg and
// a recording implementation used in tests.
package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Point is a position on the surface, in pixels.
type Point struct {
	X, Y float64
}

// Stroke describes how a poly-line is drawn.
type Stroke struct {
	Color color.Color
	Width float64
	Round bool // round caps and joins, butt caps otherwise
}

// Surface is the small set of primitives the renderers rely on.
type Surface interface {
	FillRect(x, y, w, h float64, c color.Color)
	StrokePolyline(points []Point, s Stroke)
	FillCircle(x, y, radius float64, c color.Color)
}

// RGBA returns a non-premultiplied colour with alpha given in [0,1].
func RGBA(r, g, b uint8, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}

// Hex parses a #RRGGBB colour. It panics on malformed input, so it is meant
// for package-level palettes.
func Hex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses a #RRGGBB colour.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("canvas: malformed colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("canvas: malformed colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
