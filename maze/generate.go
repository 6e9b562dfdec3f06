package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Generator names a maze generation algorithm.
type Generator string

const (
	GeneratorBacktracker Generator = "backtracker"
	GeneratorWilson      Generator = "wilson"
	GeneratorRandom      Generator = "random"
)

var ErrUnknownGenerator = errors.New("unknown maze generator")

// ParseGenerator maps a generator name to a Generator. The empty string
// selects the backtracker.
func ParseGenerator(name string) (Generator, error) {
	switch Generator(strings.ToLower(strings.TrimSpace(name))) {
	case "", GeneratorBacktracker:
		return GeneratorBacktracker, nil
	case GeneratorWilson:
		return GeneratorWilson, nil
	case GeneratorRandom:
		return GeneratorRandom, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
}

// Generate builds a maze with generator g. The same seed yields the same maze.
func Generate(g Generator, width, height int, seed int64) (*Maze, error) {
	rng := rand.New(rand.NewSource(seed))
	switch g {
	case GeneratorBacktracker:
		return Backtracker(width, height, rng)
	case GeneratorWilson:
		return Wilson(width, height, rng)
	case GeneratorRandom:
		return RandomWalls(width, height, rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, g)
	}
}

// neighbors returns the in-bound directions around p, in clockwise order.
func (m *Maze) neighbors(p Position) []Direction {
	result := make([]Direction, 0, 4)
	for _, d := range Directions {
		if m.InBound(p.Move(d)) {
			result = append(result, d)
		}
	}
	return result
}

func (m *Maze) randomPosition(rng *rand.Rand) Position {
	return Position{X: rng.Intn(m.Width), Y: rng.Intn(m.Height)}
}

// Backtracker carves a perfect maze with a randomized depth-first search
// starting from a random cell.
func Backtracker(width, height int, rng *rand.Rand) (*Maze, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}

	visited := make(map[Position]struct{}, width*height)
	current := m.randomPosition(rng)
	visited[current] = struct{}{}
	stack := []Position{current}

	for len(stack) > 0 {
		current = stack[len(stack)-1]

		var unvisited []Direction
		for _, d := range m.neighbors(current) {
			if _, seen := visited[current.Move(d)]; !seen {
				unvisited = append(unvisited, d)
			}
		}

		if len(unvisited) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := unvisited[rng.Intn(len(unvisited))]
		m.openWall(current, d)
		next := current.Move(d)
		visited[next] = struct{}{}
		stack = append(stack, next)
	}

	return m, nil
}

// Wilson builds a uniform spanning tree maze with loop-erased random walks.
func Wilson(width, height int, rng *rand.Rand) (*Maze, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}

	visited := make(map[Position]struct{}, width*height)
	visited[m.randomPosition(rng)] = struct{}{}

	for len(visited) < width*height {
		for cell, d := range m.randomWalk(visited, rng) {
			m.openWall(cell, d)
			visited[cell] = struct{}{}
		}
	}

	return m, nil
}

// randomWalk walks from a random unvisited cell until it hits the visited
// set. Each cell keeps only its last exit, which erases the loops.
func (m *Maze) randomWalk(visited map[Position]struct{}, rng *rand.Rand) map[Position]Direction {
	cell := m.randomUnvisitedPosition(visited, rng)
	exits := make(map[Position]Direction)

	for {
		neighbors := m.neighbors(cell)
		d := neighbors[rng.Intn(len(neighbors))]
		exits[cell] = d
		next := cell.Move(d)
		if _, included := visited[next]; included {
			break
		}
		cell = next
	}

	return exits
}

// randomUnvisitedPosition selects a random position that has not been visited.
func (m *Maze) randomUnvisitedPosition(visited map[Position]struct{}, rng *rand.Rand) Position {
	for {
		pos := m.randomPosition(rng)
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// RandomWalls builds the fallback maze: boundary walls are always present,
// every interior side is walled with probability 0.3 independently, and the
// outer walls left of the start and right of the end are opened. The result
// is not guaranteed to be solvable.
func RandomWalls(width, height int, rng *rand.Rand) (*Maze, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}

	for i := range m.Cells {
		c := &m.Cells[i]
		c.Walls = Walls{
			Top:    c.Y == 0 || rng.Float64() > 0.7,
			Right:  c.X == width-1 || rng.Float64() > 0.7,
			Bottom: c.Y == height-1 || rng.Float64() > 0.7,
			Left:   c.X == 0 || rng.Float64() > 0.7,
		}
	}

	if i, ok := m.index[m.Start]; ok {
		m.Cells[i].Walls.Left = false
	}
	if i, ok := m.index[m.End]; ok {
		m.Cells[i].Walls.Right = false
	}

	return m, nil
}
