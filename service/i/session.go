package i

import (
	"context"
	"io"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/pathfinding"
	"github.com/google/uuid"
)

// SessionState is a point-in-time view of a visualizer session.
type SessionState struct {
	ID         uuid.UUID          `json:"id"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Algorithm  string             `json:"algorithm,omitempty"`
	Running    bool               `json:"running"`
	Stalled    bool               `json:"stalled"`
	IntervalMS int64              `json:"intervalMs"`
	StepLimit  int                `json:"stepLimit"`
	Engine     *pathfinding.State `json:"engine,omitempty"`
}

// Session is one maze with at most one engine and its animation.
type Session interface {
	ID() uuid.UUID
	SelectAlgorithm(name string) error
	Step() (done bool, err error)
	Reset() error
	Regenerate(ctx context.Context, width, height int) error
	Play() error
	Pause()
	Toggle() error
	SetSpeed(speed int) error
	State() SessionState
	Maze() *maze.Maze
	Frame(w io.Writer, cellSize int) error
	// Subscribe returns a stream of states published after every change and
	// a function that ends the subscription.
	Subscribe() (<-chan SessionState, func())
}

// SessionManager owns the open sessions.
type SessionManager interface {
	Create(ctx context.Context, width, height int, algorithm string) (Session, error)
	Get(id uuid.UUID) (Session, error)
	Close(id uuid.UUID) error
}
