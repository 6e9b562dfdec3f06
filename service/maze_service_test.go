package service

import (
	"context"
	"errors"
	"testing"

	"github.com/beka-birhanu/vinom-pathviz/infrastruture/mazecache"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMazeService(t *testing.T, c MazeServiceConfig) (*MazeService, *fakeLogger) {
	t.Helper()
	logger := &fakeLogger{}
	c.Logger = logger
	c.Metrics = metrics.New()
	if c.MaxDimension == 0 {
		c.MaxDimension = 50
	}
	s, err := NewMazeService(c)
	require.NoError(t, err)
	return s, logger
}

func TestMazeServiceGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("remote generator", func(t *testing.T) {
		remote := &fakeRemote{}
		s, _ := newMazeService(t, MazeServiceConfig{Remote: remote})

		m, source, err := s.Generate(ctx, i.MazeSpec{Width: 7, Height: 5})
		require.NoError(t, err)
		assert.Equal(t, metrics.SourceRemote, source)
		assert.Equal(t, 7, m.Width)
		assert.Equal(t, 1, remote.calls)
	})

	t.Run("remote failure falls back to random walls", func(t *testing.T) {
		remote := &fakeRemote{err: errors.New("connection refused")}
		s, logger := newMazeService(t, MazeServiceConfig{Remote: remote})

		m, source, err := s.Generate(ctx, i.MazeSpec{Width: 6, Height: 6})
		require.NoError(t, err)
		assert.Equal(t, metrics.SourceFallback, source)
		assert.NoError(t, m.Validate())
		assert.Equal(t, 1, logger.count("warning"))
	})

	t.Run("local generator without a remote", func(t *testing.T) {
		s, _ := newMazeService(t, MazeServiceConfig{Generator: maze.GeneratorWilson})

		m, source, err := s.Generate(ctx, i.MazeSpec{Width: 4, Height: 9})
		require.NoError(t, err)
		assert.Equal(t, metrics.SourceLocal, source)
		assert.Len(t, m.Cells, 36)
	})

	t.Run("explicit generator skips the remote", func(t *testing.T) {
		remote := &fakeRemote{}
		s, _ := newMazeService(t, MazeServiceConfig{Remote: remote})

		_, source, err := s.Generate(ctx, i.MazeSpec{Width: 4, Height: 4, Generator: "Wilson"})
		require.NoError(t, err)
		assert.Equal(t, metrics.SourceLocal, source)
		assert.Zero(t, remote.calls)
	})

	t.Run("seeded mazes are cached", func(t *testing.T) {
		s, _ := newMazeService(t, MazeServiceConfig{Cache: mazecache.NewMemoryCache(60)})
		spec := i.MazeSpec{Width: 8, Height: 8, Seed: 99}

		first, source, err := s.Generate(ctx, spec)
		require.NoError(t, err)
		assert.Equal(t, metrics.SourceLocal, source)

		second, source, err := s.Generate(ctx, spec)
		require.NoError(t, err)
		assert.Equal(t, metrics.SourceCache, source)
		assert.Equal(t, first.String(), second.String())
	})

	t.Run("seeded mazes without a cache are reproducible", func(t *testing.T) {
		s, _ := newMazeService(t, MazeServiceConfig{})
		spec := i.MazeSpec{Width: 8, Height: 5, Seed: 3, Generator: maze.GeneratorBacktracker}

		first, _, err := s.Generate(ctx, spec)
		require.NoError(t, err)
		second, _, err := s.Generate(ctx, spec)
		require.NoError(t, err)
		assert.Equal(t, first.String(), second.String())
	})

	t.Run("rejects bad requests", func(t *testing.T) {
		s, _ := newMazeService(t, MazeServiceConfig{MaxDimension: 10})

		_, _, err := s.Generate(ctx, i.MazeSpec{Width: 0, Height: 5})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		_, _, err = s.Generate(ctx, i.MazeSpec{Width: 11, Height: 5})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		_, _, err = s.Generate(ctx, i.MazeSpec{Width: 5, Height: 5, Generator: "prim"})
		assert.ErrorIs(t, err, maze.ErrUnknownGenerator)
	})
}

func TestMazeServiceSaved(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		s, _ := newMazeService(t, MazeServiceConfig{Repo: &fakeRepo{}})
		m, err := maze.Generate(maze.GeneratorWilson, 5, 5, 1)
		require.NoError(t, err)

		id, err := s.Save(ctx, m)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		got, err := s.ByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, m.String(), got.String())
	})

	t.Run("invalid maze", func(t *testing.T) {
		s, _ := newMazeService(t, MazeServiceConfig{Repo: &fakeRepo{}})
		_, err := s.Save(ctx, &maze.Maze{Width: 2, Height: 2})
		assert.ErrorIs(t, err, maze.ErrInvalidMaze)
	})

	t.Run("no storage", func(t *testing.T) {
		s, _ := newMazeService(t, MazeServiceConfig{})
		_, err := s.Save(ctx, &maze.Maze{})
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		_, err = s.ByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}
