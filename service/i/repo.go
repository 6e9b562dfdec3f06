package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/google/uuid"
)

// ErrMazeNotFound is returned when no saved maze has the requested ID.
var ErrMazeNotFound = errors.New("maze not found")

// MazeRepo defines the interface for saved maze persistence.
type MazeRepo interface {
	// Save inserts or replaces the maze stored under id.
	Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error

	// ByID retrieves a maze by its ID.
	// Returns an error wrapping ErrMazeNotFound when there is no such maze.
	ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error)
}

// MazeCache remembers generated mazes under a key.
type MazeCache interface {
	// Remember returns the maze cached under key, building and caching it on a
	// miss. hit reports whether the maze came from the cache.
	Remember(ctx context.Context, key string, build func(context.Context) (*maze.Maze, error)) (m *maze.Maze, hit bool, err error)
}

// MazeGenerator is a remote maze generation service.
type MazeGenerator interface {
	Generate(ctx context.Context, width, height int) (*maze.Maze, error)
}
