// Package render paints a maze and, optionally, an engine's state onto a
// canvas surface and encodes the result as PNG.
package render

import (
	"image/color"
	"io"

	"github.com/beka-birhanu/vinom-pathviz/canvas"
	"github.com/beka-birhanu/vinom-pathviz/maze"
)

const (
	MinCellSize = 4
	MaxCellSize = 40
)

var (
	background = color.White
	wallColor  = canvas.Hex("#AAAAAA")
	startColor = canvas.Hex("#4CAF50")
	endColor   = canvas.Hex("#F44336")
)

const wallWidth = 2

// Drawer is anything that paints itself over a maze, such as an engine.
type Drawer interface {
	Draw(s canvas.Surface, cellSize float64)
}

// ClampCellSize bounds a requested cell size to what frames are drawn with.
func ClampCellSize(size int) int {
	switch {
	case size < MinCellSize:
		return MinCellSize
	case size > MaxCellSize:
		return MaxCellSize
	default:
		return size
	}
}

// Maze strokes every closed wall and marks the start and end cells.
func Maze(s canvas.Surface, m *maze.Maze, cellSize float64) {
	stroke := canvas.Stroke{Color: wallColor, Width: wallWidth}
	for _, c := range m.Cells {
		x, y := float64(c.X)*cellSize, float64(c.Y)*cellSize
		if c.Walls.Top {
			s.StrokePolyline([]canvas.Point{{X: x, Y: y}, {X: x + cellSize, Y: y}}, stroke)
		}
		if c.Walls.Right {
			s.StrokePolyline([]canvas.Point{{X: x + cellSize, Y: y}, {X: x + cellSize, Y: y + cellSize}}, stroke)
		}
		if c.Walls.Bottom {
			s.StrokePolyline([]canvas.Point{{X: x, Y: y + cellSize}, {X: x + cellSize, Y: y + cellSize}}, stroke)
		}
		if c.Walls.Left {
			s.StrokePolyline([]canvas.Point{{X: x, Y: y}, {X: x, Y: y + cellSize}}, stroke)
		}
	}

	square(s, m.Start, cellSize, startColor)
	square(s, m.End, cellSize, endColor)
}

func square(s canvas.Surface, p maze.Position, cellSize float64, c color.Color) {
	s.FillRect(
		float64(p.X)*cellSize+cellSize*0.2,
		float64(p.Y)*cellSize+cellSize*0.2,
		cellSize*0.6,
		cellSize*0.6,
		c,
	)
}

// Scene paints the maze and then d on top of it. d may be nil.
func Scene(s canvas.Surface, m *maze.Maze, d Drawer, cellSize float64) {
	Maze(s, m, cellSize)
	if d != nil {
		d.Draw(s, cellSize)
	}
}

// Frame renders the scene onto a new raster surface sized to the maze.
func Frame(m *maze.Maze, d Drawer, cellSize int) *canvas.GG {
	cellSize = ClampCellSize(cellSize)
	g := canvas.NewGG(m.Width*cellSize, m.Height*cellSize, background)
	Scene(g, m, d, float64(cellSize))
	return g
}

// WritePNG renders the scene and writes it to w as PNG.
func WritePNG(w io.Writer, m *maze.Maze, d Drawer, cellSize int) error {
	return Frame(m, d, cellSize).EncodePNG(w)
}
