package i

import (
	"context"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/google/uuid"
)

// MazeSpec describes a requested maze. A zero Generator asks for the default
// source and a zero Seed for a fresh random maze.
type MazeSpec struct {
	Width     int
	Height    int
	Generator maze.Generator
	Seed      int64
}

// MazeProvider serves generated and saved mazes.
type MazeProvider interface {
	// Generate returns a maze together with the source it came from.
	Generate(ctx context.Context, spec MazeSpec) (m *maze.Maze, source string, err error)
	Save(ctx context.Context, m *maze.Maze) (uuid.UUID, error)
	ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error)
}
