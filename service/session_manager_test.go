package service

import (
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/beka-birhanu/vinom-pathviz/pathfinding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, idle time.Duration) (*SessionManager, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	logger := &fakeLogger{}
	mazes, err := NewMazeService(MazeServiceConfig{MaxDimension: 20, Metrics: m, Logger: logger})
	require.NoError(t, err)

	sm, err := NewSessionManager(&SessionManagerConfig{
		Mazes:           mazes,
		Metrics:         m,
		Logger:          logger,
		Interval:        time.Millisecond,
		StepLimitFactor: 4,
		IdleTimeout:     idle,
	})
	require.NoError(t, err)
	t.Cleanup(sm.StopAll)
	return sm, m
}

func activeSessions(t *testing.T, m *metrics.Metrics) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "pathviz_sessions_active" {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("pathviz_sessions_active not registered")
	return 0
}

func TestNewSessionManager(t *testing.T) {
	_, err := NewSessionManager(&SessionManagerConfig{})
	assert.Error(t, err)

	m := metrics.New()
	mazes, err := NewMazeService(MazeServiceConfig{MaxDimension: 5, Metrics: m, Logger: &fakeLogger{}})
	require.NoError(t, err)
	_, err = NewSessionManager(&SessionManagerConfig{Mazes: mazes, Metrics: m, Logger: &fakeLogger{}})
	assert.Error(t, err, "idle timeout is required")
}

func TestSessionManagerCreate(t *testing.T) {
	ctx := context.Background()
	sm, m := newTestManager(t, time.Minute)

	s, err := sm.Create(ctx, 5, 4, pathfinding.AStar)
	require.NoError(t, err)
	state := s.State()
	assert.Equal(t, 5, state.Width)
	assert.Equal(t, 4, state.Height)
	assert.Equal(t, pathfinding.AStar, state.Algorithm)
	require.NotNil(t, state.Engine)

	bare, err := sm.Create(ctx, 3, 3, "")
	require.NoError(t, err)
	assert.Nil(t, bare.State().Engine)
	assert.NotEqual(t, s.ID(), bare.ID())

	assert.Equal(t, 2, sm.Count())
	assert.Equal(t, 2.0, activeSessions(t, m))

	got, err := sm.Get(s.ID())
	require.NoError(t, err)
	assert.Equal(t, s.ID(), got.ID())
}

func TestSessionManagerCreateRejects(t *testing.T) {
	ctx := context.Background()
	sm, m := newTestManager(t, time.Minute)

	_, err := sm.Create(ctx, 5, 5, "dijkstra")
	assert.ErrorIs(t, err, pathfinding.ErrUnknownAlgorithm)

	_, err = sm.Create(ctx, 21, 5, pathfinding.BreadthFirst)
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

	assert.Zero(t, sm.Count())
	assert.Zero(t, activeSessions(t, m))
}

func TestSessionManagerClose(t *testing.T) {
	sm, m := newTestManager(t, time.Minute)
	s, err := sm.Create(context.Background(), 4, 4, pathfinding.DepthFirst)
	require.NoError(t, err)

	require.NoError(t, sm.Close(s.ID()))
	assert.ErrorIs(t, sm.Close(s.ID()), ErrSessionNotFound)
	_, err = sm.Get(s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, activeSessions(t, m))

	_, err = sm.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManagerReap(t *testing.T) {
	ctx := context.Background()
	sm, _ := newTestManager(t, time.Minute)

	idle, err := sm.Create(ctx, 3, 3, "")
	require.NoError(t, err)
	other, err := sm.Create(ctx, 3, 3, "")
	require.NoError(t, err)

	assert.Zero(t, sm.Reap(time.Now()))

	later := time.Now().Add(2 * time.Minute)
	assert.Equal(t, 2, sm.Reap(later))
	_, err = sm.Get(idle.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sm.Get(other.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManagerReaperAndStopAll(t *testing.T) {
	sm, m := newTestManager(t, time.Millisecond)
	sm.StartReaper(5 * time.Millisecond)

	_, err := sm.Create(context.Background(), 3, 3, pathfinding.BreadthFirst)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return sm.Count() == 0 }, waitFor, pollFor)

	_, err = sm.Create(context.Background(), 3, 3, "")
	require.NoError(t, err)
	sm.StopAll()
	sm.StopAll()
	assert.Zero(t, sm.Count())
	assert.Zero(t, activeSessions(t, m))
}

func TestSessionManagerReapSparesPlayingSessions(t *testing.T) {
	idle := 50 * time.Millisecond
	sm, _ := newTestManager(t, idle)

	s, err := sm.Create(context.Background(), 20, 20, pathfinding.DepthFirst)
	require.NoError(t, err)
	require.NoError(t, s.SetSpeed(MaxSpeed))
	require.NoError(t, s.Play())

	time.Sleep(3 * idle)
	require.True(t, s.State().Running)
	assert.Zero(t, sm.Reap(time.Now()))
	assert.WithinDuration(t, time.Now(), s.(*Session).LastActive(), idle)

	s.Pause()
	assert.Equal(t, 1, sm.Reap(time.Now().Add(2*idle)))
}
