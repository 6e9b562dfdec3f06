package pathfinding

import "github.com/beka-birhanu/vinom-pathviz/maze"

// trail is an arena of discovered nodes linked to their parents. Frontiers
// hold indexes into it and a path is rebuilt only when it is needed.
type trail struct {
	nodes []trailNode
}

type trailNode struct {
	pos    maze.Position
	parent int // -1 for the root
	depth  int
}

func (t *trail) push(pos maze.Position, parent int) int {
	depth := 0
	if parent >= 0 {
		depth = t.nodes[parent].depth + 1
	}
	t.nodes = append(t.nodes, trailNode{pos: pos, parent: parent, depth: depth})
	return len(t.nodes) - 1
}

func (t *trail) pos(i int) maze.Position { return t.nodes[i].pos }

// path returns the coordinates from the root to node i.
func (t *trail) path(i int) []maze.Position {
	out := make([]maze.Position, t.nodes[i].depth+1)
	for j := len(out) - 1; i >= 0; j-- {
		out[j] = t.nodes[i].pos
		i = t.nodes[i].parent
	}
	return out
}
