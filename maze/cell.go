package maze

// Walls holds the four wall flags of a cell. A true flag blocks movement
// out of the cell on that side.
type Walls struct {
	Top    bool `json:"top" bson:"top"`       // Top indicates whether there is a wall on the top side of the cell.
	Right  bool `json:"right" bson:"right"`   // Right indicates whether there is a wall on the right side of the cell.
	Bottom bool `json:"bottom" bson:"bottom"` // Bottom indicates whether there is a wall on the bottom side of the cell.
	Left   bool `json:"left" bson:"left"`     // Left indicates whether there is a wall on the left side of the cell.
}

// Blocked reports whether the wall on the side facing d is present.
func (w Walls) Blocked(d Direction) bool {
	switch d {
	case Up:
		return w.Top
	case Right:
		return w.Right
	case Down:
		return w.Bottom
	case Left:
		return w.Left
	default:
		return true
	}
}

// set sets the wall on the side facing d.
func (w *Walls) set(d Direction, present bool) {
	switch d {
	case Up:
		w.Top = present
	case Right:
		w.Right = present
	case Down:
		w.Bottom = present
	case Left:
		w.Left = present
	}
}

// closedWalls returns a wall set with every side closed.
func closedWalls() Walls {
	return Walls{Top: true, Right: true, Bottom: true, Left: true}
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	X     int   `json:"x" bson:"x"`         // Column index of the cell
	Y     int   `json:"y" bson:"y"`         // Row index of the cell
	Walls Walls `json:"walls" bson:"walls"` // Wall flags of the cell
}

// Position returns the coordinate of the cell.
func (c Cell) Position() Position {
	return Position{X: c.X, Y: c.Y}
}

// Position represents the coordinate of a cell in the maze grid.
type Position struct {
	X int `json:"x" bson:"x"` // Column index
	Y int `json:"y" bson:"y"` // Row index
}

// Move returns the position one cell away in direction d.
func (p Position) Move(d Direction) Position {
	delta := d.Delta()
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Manhattan returns the Manhattan distance between p and q.
func (p Position) Manhattan(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
