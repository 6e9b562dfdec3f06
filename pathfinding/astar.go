package pathfinding

import (
	"github.com/beka-birhanu/vinom-pathviz/canvas"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/pqueue"
)

type openNode struct {
	trail int
	g     int
}

// AStarEngine is an A* search ordered by f = g + Manhattan distance to the
// goal. Equal f values leave the open set in insertion order.
type AStarEngine struct {
	run
	trail trail
	open  *pqueue.Queue[maze.Position, openNode]
}

// NewAStar seeds an A* search at the maze start.
func NewAStar(m *maze.Maze, oracle Oracle) *AStarEngine {
	a := &AStarEngine{
		run:  newRun(AStar, m, oracle),
		open: pqueue.New[maze.Position, openNode](),
	}
	// The closed set starts empty; the start enters it when expanded.
	a.visited = newVisitedSet()
	root := a.trail.push(m.Start, -1)
	a.open.Enqueue(m.Start, openNode{trail: root}, float64(a.heuristic(m.Start)))
	return a
}

func (a *AStarEngine) heuristic(p maze.Position) int {
	return p.Manhattan(a.goal)
}

// Step implements Engine.
func (a *AStarEngine) Step() bool {
	if a.done {
		return true
	}
	item, ok := a.open.ExtractMin()
	if !ok {
		return a.finish(nil)
	}

	a.steps++
	pos, node := item.Key, item.Value
	a.current = a.trail.path(node.trail)

	if pos == a.goal {
		return a.finish(a.current)
	}
	a.visited.add(pos)

	for _, d := range bfsOrder {
		next := pos.Move(d)
		if a.visited.has(next) || !a.oracle.CanMove(pos, next) {
			continue
		}

		g := node.g + 1
		f := float64(g + a.heuristic(next))
		if queued, ok := a.open.Get(next); ok {
			if g < queued.Value.g {
				a.open.Update(next, openNode{trail: a.trail.push(next, node.trail), g: g}, f)
			}
			continue
		}
		a.open.Enqueue(next, openNode{trail: a.trail.push(next, node.trail), g: g}, f)
	}
	return false
}

func (a *AStarEngine) openCells() []maze.Position {
	cells := make([]maze.Position, 0, a.open.Len())
	a.open.Each(func(item pqueue.Item[maze.Position, openNode]) bool {
		cells = append(cells, item.Key)
		return true
	})
	return cells
}

// Draw implements Engine.
func (a *AStarEngine) Draw(s canvas.Surface, cellSize float64) {
	drawSearch(s, cellSize, aStarPalette, a.visited.order, a.openCells(), a.current, a.final)
}

// State implements Engine. Visited holds the closed set.
func (a *AStarEngine) State() State {
	st := a.state()
	st.Frontier = a.openCells()
	return st
}
