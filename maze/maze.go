/*
Package maze provides the grid model that every path-finding engine runs against.

A `Maze` is a rectangular collection of `Cell` values, one per coordinate, each
carrying four wall flags. The package answers movement queries (`CanMove`), which
consult the wall of the source cell facing the destination, and it ships the
generators used to build mazes: a randomized depth-first backtracker, Wilson's
loop-erased random walk, and a random-wall fallback.

Utility functions provide validation and an ASCII rendering of the maze with an
optional path overlay.
*/
package maze

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidMaze       = errors.New("invalid maze")
)

// Maze is a rectangular grid of cells with a start and an end coordinate.
type Maze struct {
	Width  int      `json:"width" bson:"width"`   // Width of the maze (number of columns)
	Height int      `json:"height" bson:"height"` // Height of the maze (number of rows)
	Start  Position `json:"start" bson:"start"`   // Coordinate the engines start from
	End    Position `json:"end" bson:"end"`       // Goal coordinate
	Cells  []Cell   `json:"cells" bson:"cells"`   // One cell per coordinate, x-major order

	index map[Position]int // Position to offset in Cells
}

// New builds a maze of the given dimensions with every wall closed,
// start at the top-left corner and end at the bottom-right corner.
func New(width, height int) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([]Cell, 0, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			cells = append(cells, Cell{X: x, Y: y, Walls: closedWalls()})
		}
	}

	m := &Maze{
		Width:  width,
		Height: height,
		Start:  Position{X: 0, Y: 0},
		End:    Position{X: width - 1, Y: height - 1},
		Cells:  cells,
	}
	m.Reindex()
	return m, nil
}

// Reindex rebuilds the coordinate index over Cells. It must be called after
// Cells is replaced or decoded by hand. When two cells share a coordinate the
// first one wins.
func (m *Maze) Reindex() {
	m.index = make(map[Position]int, len(m.Cells))
	for i, c := range m.Cells {
		if _, seen := m.index[c.Position()]; !seen {
			m.index[c.Position()] = i
		}
	}
}

// UnmarshalJSON decodes the wire format and indexes the decoded cells.
func (m *Maze) UnmarshalJSON(data []byte) error {
	type wire Maze
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = Maze(w)
	m.Reindex()
	return nil
}

// InBound reports whether p lies inside the grid dimensions.
func (m *Maze) InBound(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// Cell returns the cell at p. ok is false when the maze has no such cell.
func (m *Maze) Cell(p Position) (Cell, bool) {
	if m.index != nil {
		i, ok := m.index[p]
		if !ok {
			return Cell{}, false
		}
		return m.Cells[i], true
	}

	// Unindexed mazes fall back to a scan.
	for _, c := range m.Cells {
		if c.X == p.X && c.Y == p.Y {
			return c, true
		}
	}
	return Cell{}, false
}

// CanMove reports whether a single step from `from` to `to` is legal: the two
// coordinates must be 4-adjacent, both must have a cell, and the wall of the
// source cell facing the destination must be open.
func (m *Maze) CanMove(from, to Position) bool {
	d, adjacent := directionBetween(from, to)
	if !adjacent {
		return false
	}

	src, ok := m.Cell(from)
	if !ok {
		return false
	}
	if _, ok := m.Cell(to); !ok {
		return false
	}

	return !src.Walls.Blocked(d)
}

// Validate checks that the maze has positive dimensions, exactly one cell per
// coordinate and in-range start and end positions.
func (m *Maze) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, m.Width, m.Height)
	}
	if len(m.Cells) != m.Width*m.Height {
		return fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidMaze, m.Width*m.Height, len(m.Cells))
	}

	seen := make(map[Position]struct{}, len(m.Cells))
	for _, c := range m.Cells {
		p := c.Position()
		if !m.InBound(p) {
			return fmt.Errorf("%w: cell (%d,%d) out of range", ErrInvalidMaze, c.X, c.Y)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: duplicate cell (%d,%d)", ErrInvalidMaze, c.X, c.Y)
		}
		seen[p] = struct{}{}
	}

	if !m.InBound(m.Start) {
		return fmt.Errorf("%w: start (%d,%d) out of range", ErrInvalidMaze, m.Start.X, m.Start.Y)
	}
	if !m.InBound(m.End) {
		return fmt.Errorf("%w: end (%d,%d) out of range", ErrInvalidMaze, m.End.X, m.End.Y)
	}
	return nil
}

// Carve opens the passage between p and its neighbour in direction d.
// Coordinates outside the maze are ignored.
func (m *Maze) Carve(p Position, d Direction) {
	m.openWall(p, d)
}

// openWall removes the wall between p and its neighbour in direction d on
// both sides.
func (m *Maze) openWall(p Position, d Direction) {
	if i, ok := m.index[p]; ok {
		m.Cells[i].Walls.set(d, false)
	}
	if i, ok := m.index[p.Move(d)]; ok {
		m.Cells[i].Walls.set(d.Reverse(), false)
	}
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return m.Trace(nil)
}

// Trace renders the maze as text, marking the start with S, the end with E
// and every other cell of path with *.
func (m *Maze) Trace(path []Position) string {
	marks := make(map[Position]byte, len(path)+2)
	for _, p := range path {
		marks[p] = '*'
	}
	marks[m.Start] = 'S'
	marks[m.End] = 'E'

	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for x := 0; x < m.Width; x++ {
		cell, ok := m.Cell(Position{X: x, Y: 0})
		if !ok || cell.Walls.Top {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for y := 0; y < m.Height; y++ {
		// Cell rows
		if cell, ok := m.Cell(Position{X: 0, Y: y}); !ok || cell.Walls.Left {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < m.Width; x++ {
			p := Position{X: x, Y: y}
			if mark, ok := marks[p]; ok {
				output.WriteString(" " + string(mark) + " ")
			} else {
				output.WriteString("   ")
			}

			// Add right wall or space
			if cell, ok := m.Cell(p); !ok || cell.Walls.Right {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for x := 0; x < m.Width; x++ {
			if cell, ok := m.Cell(Position{X: x, Y: y}); !ok || cell.Walls.Bottom {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
