package pathfinding

import (
	"github.com/beka-birhanu/vinom-pathviz/canvas"
	"github.com/beka-birhanu/vinom-pathviz/maze"
)

// bfsOrder is the order neighbours are discovered in by breadth-first search.
var bfsOrder = [4]maze.Direction{maze.Up, maze.Right, maze.Down, maze.Left}

// dfsOrder is pushed in reverse so that the stack pops up, right, down, left.
var dfsOrder = [4]maze.Direction{maze.Left, maze.Down, maze.Right, maze.Up}

// frontierSearch is an uninformed search over a queue or a stack of trail
// nodes. Neighbours are marked visited when they enter the frontier.
type frontierSearch struct {
	run
	trail    trail
	frontier []int
	lifo     bool
	order    [4]maze.Direction
	pal      palette
}

func newFrontierSearch(name string, m *maze.Maze, oracle Oracle, lifo bool, order [4]maze.Direction, pal palette) frontierSearch {
	s := frontierSearch{
		run:   newRun(name, m, oracle),
		lifo:  lifo,
		order: order,
		pal:   pal,
	}
	s.frontier = append(s.frontier, s.trail.push(m.Start, -1))
	return s
}

func (s *frontierSearch) pop() int {
	if s.lifo {
		n := s.frontier[len(s.frontier)-1]
		s.frontier = s.frontier[:len(s.frontier)-1]
		return n
	}
	n := s.frontier[0]
	s.frontier = s.frontier[1:]
	return n
}

// Step implements Engine.
func (s *frontierSearch) Step() bool {
	if s.done {
		return true
	}
	if len(s.frontier) == 0 {
		return s.finish(nil)
	}

	s.steps++
	n := s.pop()
	pos := s.trail.pos(n)
	s.current = s.trail.path(n)

	if pos == s.goal {
		return s.finish(s.current)
	}

	for _, d := range s.order {
		next := pos.Move(d)
		if s.visited.has(next) || !s.oracle.CanMove(pos, next) {
			continue
		}
		s.visited.add(next)
		s.frontier = append(s.frontier, s.trail.push(next, n))
	}
	return false
}

func (s *frontierSearch) frontierCells() []maze.Position {
	cells := make([]maze.Position, len(s.frontier))
	for i, n := range s.frontier {
		cells[i] = s.trail.pos(n)
	}
	return cells
}

// Draw implements Engine.
func (s *frontierSearch) Draw(surface canvas.Surface, cellSize float64) {
	drawSearch(surface, cellSize, s.pal, s.visited.order, nil, s.current, s.final)
}

// State implements Engine.
func (s *frontierSearch) State() State {
	st := s.state()
	st.Frontier = s.frontierCells()
	return st
}

// BFS is a breadth-first search engine. Its final path is a shortest path.
type BFS struct {
	frontierSearch
}

// NewBFS seeds a breadth-first search at the maze start.
func NewBFS(m *maze.Maze, oracle Oracle) *BFS {
	return &BFS{newFrontierSearch(BreadthFirst, m, oracle, false, bfsOrder, bfsPalette)}
}

// DFS is a depth-first search engine.
type DFS struct {
	frontierSearch
}

// NewDFS seeds a depth-first search at the maze start.
func NewDFS(m *maze.Maze, oracle Oracle) *DFS {
	return &DFS{newFrontierSearch(DepthFirst, m, oracle, true, dfsOrder, dfsPalette)}
}
