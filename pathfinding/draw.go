package pathfinding

import (
	"image/color"

	"github.com/beka-birhanu/vinom-pathviz/canvas"
	"github.com/beka-birhanu/vinom-pathviz/maze"
)

// palette holds the colours one engine draws with.
type palette struct {
	visited  color.Color
	frontier color.Color
	current  color.Color
	final    color.Color
}

var (
	bfsPalette = palette{
		visited: canvas.RGBA(255, 235, 59, 0.3),
		current: canvas.Hex("#FF9800"),
		final:   canvas.Hex("#FFC107"),
	}
	dfsPalette = palette{
		visited: canvas.RGBA(76, 175, 80, 0.3),
		current: canvas.Hex("#2E7D32"),
		final:   canvas.Hex("#00C853"),
	}
	aStarPalette = palette{
		visited:  canvas.RGBA(244, 67, 54, 0.3),
		frontier: canvas.RGBA(0, 188, 212, 0.3),
		current:  canvas.Hex("#00796B"),
		final:    canvas.Hex("#00BCD4"),
	}
	leftPalette = palette{
		visited: canvas.RGBA(100, 149, 237, 0.3),
		current: canvas.Hex("#1976D2"),
	}
	rightPalette = palette{
		visited: canvas.RGBA(186, 104, 200, 0.3),
		current: canvas.Hex("#8E24AA"),
	}
)

func centre(p maze.Position, cellSize float64) canvas.Point {
	return canvas.Point{
		X: float64(p.X)*cellSize + cellSize/2,
		Y: float64(p.Y)*cellSize + cellSize/2,
	}
}

func fillCells(s canvas.Surface, cells []maze.Position, cellSize float64, c color.Color) {
	for _, p := range cells {
		s.FillRect(float64(p.X)*cellSize, float64(p.Y)*cellSize, cellSize, cellSize, c)
	}
}

func strokePath(s canvas.Surface, path []maze.Position, cellSize, width float64, c color.Color) {
	if len(path) < 2 {
		return
	}
	points := make([]canvas.Point, len(path))
	for i, p := range path {
		points[i] = centre(p, cellSize)
	}
	s.StrokePolyline(points, canvas.Stroke{Color: c, Width: width, Round: true})
}

func marker(s canvas.Surface, p maze.Position, cellSize float64, c color.Color) {
	at := centre(p, cellSize)
	s.FillCircle(at.X, at.Y, cellSize/4, c)
}

// drawSearch paints a frontier-based search: explored cells, the frontier,
// the path to the node expanded last, the final path and a marker at the
// head of whichever path is shown last.
func drawSearch(s canvas.Surface, cellSize float64, pal palette, visited, frontier, current, final []maze.Position) {
	fillCells(s, visited, cellSize, pal.visited)
	if pal.frontier != nil {
		fillCells(s, frontier, cellSize, pal.frontier)
	}

	strokePath(s, current, cellSize, cellSize/4, pal.current)

	switch {
	case len(final) > 1:
		strokePath(s, final, cellSize, cellSize/3, pal.final)
		marker(s, final[len(final)-1], cellSize, pal.final)
	case len(current) > 0:
		marker(s, current[len(current)-1], cellSize, pal.current)
	}
}
