package pathfinding

import (
	"github.com/beka-birhanu/vinom-pathviz/canvas"
	"github.com/beka-birhanu/vinom-pathviz/maze"
)

// WallFollower walks the maze keeping one hand on a wall. It has no frontier:
// its state is the walker position, its facing and the walk so far.
//
// A walker boxed in on all four sides turns around in place and never
// finishes, so callers that step until done must bound the number of steps.
type WallFollower struct {
	run
	at     maze.Position
	facing maze.Direction
	turns  [4]func(maze.Direction) maze.Direction
	pal    palette
}

func keep(d maze.Direction) maze.Direction { return d }

func reverse(d maze.Direction) maze.Direction { return d.Reverse() }

func turnLeft(d maze.Direction) maze.Direction { return d.TurnLeft() }

func turnRight(d maze.Direction) maze.Direction { return d.TurnRight() }

// NewLeftWallFollower prefers left, then straight, then right, then back.
func NewLeftWallFollower(m *maze.Maze, oracle Oracle) *WallFollower {
	return newWallFollower(LeftWallFollower, m, oracle, [4]func(maze.Direction) maze.Direction{turnLeft, keep, turnRight, reverse}, leftPalette)
}

// NewRightWallFollower prefers right, then straight, then left, then back.
func NewRightWallFollower(m *maze.Maze, oracle Oracle) *WallFollower {
	return newWallFollower(RightWallFollower, m, oracle, [4]func(maze.Direction) maze.Direction{turnRight, keep, turnLeft, reverse}, rightPalette)
}

func newWallFollower(name string, m *maze.Maze, oracle Oracle, turns [4]func(maze.Direction) maze.Direction, pal palette) *WallFollower {
	return &WallFollower{
		run:    newRun(name, m, oracle),
		at:     m.Start,
		facing: maze.Right,
		turns:  turns,
		pal:    pal,
	}
}

// Step implements Engine. The walk itself is the current path and becomes
// the final path when the walker stands on the goal.
func (w *WallFollower) Step() bool {
	if w.done {
		return true
	}
	if w.at == w.goal {
		return w.finish(clonePath(w.current))
	}

	w.steps++
	for _, turn := range w.turns {
		d := turn(w.facing)
		next := w.at.Move(d)
		if !w.oracle.CanMove(w.at, next) {
			continue
		}

		w.facing = d
		w.at = next
		w.current = append(w.current, next)
		w.visited.add(next)
		if w.at == w.goal {
			return w.finish(clonePath(w.current))
		}
		return false
	}

	w.facing = w.facing.Reverse()
	return false
}

// Position returns the walker's coordinate and facing.
func (w *WallFollower) Position() (maze.Position, maze.Direction) {
	return w.at, w.facing
}

// Draw implements Engine.
func (w *WallFollower) Draw(s canvas.Surface, cellSize float64) {
	fillCells(s, w.visited.order, cellSize, w.pal.visited)
	strokePath(s, w.current, cellSize, cellSize/3, w.pal.current)
	marker(s, w.at, cellSize, w.pal.current)
}

// State implements Engine.
func (w *WallFollower) State() State {
	st := w.state()
	at := w.at
	st.Position = &at
	st.Facing = w.facing.String()
	return st
}
