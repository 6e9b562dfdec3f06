/*
Package pathfinding implements the steppable maze-solving engines.

Every engine is built against a maze and a movement oracle and advances by
exactly one unit of work per `Step` call, so a caller can drive it by hand or
from a timer and render it between steps. Once an engine reports done, further
calls to `Step` return true without touching its state.

The five engines are:
  - A*, ordered by f = g + Manhattan distance, with decrease-key on the open set.
  - Breadth-first search, which yields a shortest path.
  - Depth-first search.
  - Left and right wall followers, which walk the maze keeping one hand on a wall.
*/
package pathfinding

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-pathviz/canvas"
	"github.com/beka-birhanu/vinom-pathviz/maze"
)

// Algorithm names accepted by New.
const (
	AStar             = "aStar"
	BreadthFirst      = "breadthFirstSearch"
	DepthFirst        = "depthFirstSearch"
	LeftWallFollower  = "leftWallFollower"
	RightWallFollower = "rightWallFollower"
)

// Algorithms lists every engine name in display order.
var Algorithms = []string{AStar, BreadthFirst, DepthFirst, LeftWallFollower, RightWallFollower}

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Oracle answers whether a single move between two coordinates is legal.
type Oracle interface {
	CanMove(from, to maze.Position) bool
}

// Engine is a resumable maze-solving run.
type Engine interface {
	// Name returns the algorithm name the engine was built for.
	Name() string
	// Step advances the run by one unit of work and reports whether it is over.
	Step() bool
	// Done reports whether the run is over.
	Done() bool
	// Draw paints the current state. It never mutates the engine.
	Draw(s canvas.Surface, cellSize float64)
	// State returns a copy of the current state.
	State() State
}

// State is a point-in-time copy of an engine's state.
type State struct {
	Algorithm   string          `json:"algorithm"`
	Steps       int             `json:"steps"`
	Done        bool            `json:"done"`
	Found       bool            `json:"found"`
	CurrentPath []maze.Position `json:"currentPath"`
	FinalPath   []maze.Position `json:"finalPath,omitempty"`
	Visited     []maze.Position `json:"visited"`
	Frontier    []maze.Position `json:"frontier,omitempty"`
	Position    *maze.Position  `json:"position,omitempty"`
	Facing      string          `json:"facing,omitempty"`
}

// New builds the engine registered under name.
func New(name string, m *maze.Maze, oracle Oracle) (Engine, error) {
	switch name {
	case AStar:
		return NewAStar(m, oracle), nil
	case BreadthFirst:
		return NewBFS(m, oracle), nil
	case DepthFirst:
		return NewDFS(m, oracle), nil
	case LeftWallFollower:
		return NewLeftWallFollower(m, oracle), nil
	case RightWallFollower:
		return NewRightWallFollower(m, oracle), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// IsAlgorithm reports whether name is a known engine name.
func IsAlgorithm(name string) bool {
	for _, a := range Algorithms {
		if a == name {
			return true
		}
	}
	return false
}

// run holds the bookkeeping every engine shares.
type run struct {
	name    string
	goal    maze.Position
	oracle  Oracle
	visited *visitedSet
	current []maze.Position
	final   []maze.Position
	steps   int
	done    bool
}

func newRun(name string, m *maze.Maze, oracle Oracle) run {
	visited := newVisitedSet()
	visited.add(m.Start)
	return run{
		name:    name,
		goal:    m.End,
		oracle:  oracle,
		visited: visited,
		current: []maze.Position{m.Start},
	}
}

func (r *run) Name() string { return r.name }

func (r *run) Done() bool { return r.done }

// finish marks the run over; path is nil when the goal was not reached.
func (r *run) finish(path []maze.Position) bool {
	r.final = path
	r.done = true
	return true
}

func (r *run) state() State {
	return State{
		Algorithm:   r.name,
		Steps:       r.steps,
		Done:        r.done,
		Found:       r.final != nil,
		CurrentPath: clonePath(r.current),
		FinalPath:   clonePath(r.final),
		Visited:     r.visited.list(),
	}
}

func clonePath(p []maze.Position) []maze.Position {
	if p == nil {
		return nil
	}
	out := make([]maze.Position, len(p))
	copy(out, p)
	return out
}

// visitedSet remembers coordinates in discovery order.
type visitedSet struct {
	seen  map[maze.Position]struct{}
	order []maze.Position
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[maze.Position]struct{})}
}

func (v *visitedSet) add(p maze.Position) {
	if _, ok := v.seen[p]; ok {
		return
	}
	v.seen[p] = struct{}{}
	v.order = append(v.order, p)
}

func (v *visitedSet) has(p maze.Position) bool {
	_, ok := v.seen[p]
	return ok
}

func (v *visitedSet) len() int { return len(v.order) }

func (v *visitedSet) list() []maze.Position {
	return clonePath(v.order)
}
