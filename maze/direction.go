package maze

// Direction is a facing on the grid, encoded as a rotation index mod 4.
// Turning right adds one, turning left subtracts one.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the four directions in clockwise order starting from Up.
var Directions = [4]Direction{Up, Right, Down, Left}

var deltas = [4]Position{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

var directionNames = [4]string{"up", "right", "down", "left"}

// Delta returns the coordinate offset of a single step in direction d.
func (d Direction) Delta() Position {
	return deltas[d.normalize()]
}

// TurnLeft returns the direction 90° counter-clockwise from d.
func (d Direction) TurnLeft() Direction {
	return (d + 3).normalize()
}

// TurnRight returns the direction 90° clockwise from d.
func (d Direction) TurnRight() Direction {
	return (d + 1).normalize()
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return (d + 2).normalize()
}

func (d Direction) String() string {
	return directionNames[d.normalize()]
}

func (d Direction) normalize() Direction {
	return ((d % 4) + 4) % 4
}

// directionBetween returns the direction leading from a to an adjacent b.
// ok is false when the positions are not 4-adjacent.
func directionBetween(a, b Position) (d Direction, ok bool) {
	switch {
	case b.X == a.X+1 && b.Y == a.Y:
		return Right, true
	case b.X == a.X-1 && b.Y == a.Y:
		return Left, true
	case b.Y == a.Y+1 && b.X == a.X:
		return Down, true
	case b.Y == a.Y-1 && b.X == a.X:
		return Up, true
	default:
		return 0, false
	}
}
