// Package mazeapi provides the request and response shapes of the maze routes.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/google/uuid"
)

// GenerateRequest asks for a new maze. Zero dimensions take the configured
// defaults and a zero seed a fresh random maze.
type GenerateRequest struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Generator string `json:"generator"`
	Seed      int64  `json:"seed"`
}

// MazeResponse is the maze wire format plus the source that produced it.
type MazeResponse struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Start  maze.Position `json:"start"`
	End    maze.Position `json:"end"`
	Cells  []maze.Cell   `json:"cells"`
	Source string        `json:"source"`
}

// SavedResponse carries the ID a saved maze is stored under.
type SavedResponse struct {
	ID uuid.UUID `json:"id"`
}

func newMazeResponse(m *maze.Maze, source string) *MazeResponse {
	return &MazeResponse{
		Width:  m.Width,
		Height: m.Height,
		Start:  m.Start,
		End:    m.End,
		Cells:  m.Cells,
		Source: source,
	}
}
