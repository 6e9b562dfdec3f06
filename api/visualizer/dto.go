// Package visualizerapi exposes visualizer sessions over HTTP.
package visualizerapi

import (
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
)

// CreateSessionRequest opens a session. Zero dimensions take the configured
// defaults and an empty algorithm leaves the session without an engine.
type CreateSessionRequest struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Algorithm string `json:"algorithm"`
}

// CreateSessionResponse carries the control token for the new session.
type CreateSessionResponse struct {
	ID    uuid.UUID      `json:"id"`
	Token string         `json:"token"`
	State i.SessionState `json:"state"`
}

type AlgorithmRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
}

type RegenerateRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type SpeedRequest struct {
	Speed *int `json:"speed" binding:"required"`
}

// StepResponse reports whether the run is over after a manual step.
type StepResponse struct {
	Done  bool           `json:"done"`
	State i.SessionState `json:"state"`
}
