// Package mazeclient calls a remote maze generation service.
package mazeclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"resty.dev/v3"
)

const generatePath = "/generate-maze"

var ErrUnavailable = errors.New("maze service unavailable")

type generateRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client requests mazes from a service speaking the /generate-maze protocol.
type Client struct {
	http *resty.Client
}

var _ i.MazeGenerator = &Client{}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// Generate implements i.MazeGenerator. The returned maze is validated.
func (c *Client) Generate(ctx context.Context, width, height int) (*maze.Maze, error) {
	var m maze.Maze
	var failure errorResponse

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Width: width, Height: height}).
		SetResult(&m).
		SetError(&failure).
		Post(generatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, res.StatusCode(), failure.Error)
	}

	m.Reindex()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Close releases the underlying HTTP resources.
func (c *Client) Close() error {
	return c.http.Close()
}
