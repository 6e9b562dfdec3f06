package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
)

type logEntry struct {
	level   string
	message string
}

type fakeLogger struct {
	entries []logEntry
	sync.Mutex
}

func (l *fakeLogger) log(level, message string) {
	l.Lock()
	defer l.Unlock()
	l.entries = append(l.entries, logEntry{level: level, message: message})
}

func (l *fakeLogger) Info(message string)    { l.log("info", message) }
func (l *fakeLogger) Warning(message string) { l.log("warning", message) }
func (l *fakeLogger) Error(message string)   { l.log("error", message) }
func (l *fakeLogger) Debug(message string)   { l.log("debug", message) }

func (l *fakeLogger) count(level string) int {
	l.Lock()
	defer l.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

type fakeRemote struct {
	err   error
	calls int
}

func (r *fakeRemote) Generate(_ context.Context, width, height int) (*maze.Maze, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return maze.Generate(maze.GeneratorBacktracker, width, height, 42)
}

type fakeRepo struct {
	mazes map[uuid.UUID]*maze.Maze
}

func (r *fakeRepo) Save(_ context.Context, id uuid.UUID, m *maze.Maze) error {
	if r.mazes == nil {
		r.mazes = make(map[uuid.UUID]*maze.Maze)
	}
	r.mazes[id] = m
	return nil
}

func (r *fakeRepo) ByID(_ context.Context, id uuid.UUID) (*maze.Maze, error) {
	m, ok := r.mazes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", i.ErrMazeNotFound, id)
	}
	return m, nil
}
