package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/beka-birhanu/vinom-pathviz/pathfinding"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
)

// SessionManager owns the open visualizer sessions.
type SessionManager struct {
	sessions    map[uuid.UUID]*Session
	mazes       i.MazeProvider
	metrics     *metrics.Metrics
	logger      i.Logger
	session     SessionConfig
	idleTimeout time.Duration
	stop        chan struct{}
	wg          sync.WaitGroup
	sync.RWMutex
}

type SessionManagerConfig struct {
	Mazes           i.MazeProvider
	Metrics         *metrics.Metrics
	Logger          i.Logger
	Interval        time.Duration // initial animation interval
	StepLimitFactor int
	IdleTimeout     time.Duration
}

var _ i.SessionManager = &SessionManager{}

func NewSessionManager(c *SessionManagerConfig) (*SessionManager, error) {
	if c.Mazes == nil || c.Metrics == nil || c.Logger == nil {
		return nil, fmt.Errorf("session manager needs a maze provider, metrics and a logger")
	}
	if c.IdleTimeout <= 0 {
		return nil, fmt.Errorf("idle timeout must be positive, got %s", c.IdleTimeout)
	}

	return &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
		mazes:    c.Mazes,
		metrics:  c.Metrics,
		logger:   c.Logger,
		session: SessionConfig{
			Mazes:           c.Mazes,
			Metrics:         c.Metrics,
			Logger:          c.Logger,
			Interval:        c.Interval,
			StepLimitFactor: c.StepLimitFactor,
		},
		idleTimeout: c.IdleTimeout,
		stop:        make(chan struct{}),
	}, nil
}

// Create opens a session over a fresh width x height maze. A non-empty
// algorithm is selected right away.
func (sm *SessionManager) Create(ctx context.Context, width, height int, algorithm string) (i.Session, error) {
	if algorithm != "" && !pathfinding.IsAlgorithm(algorithm) {
		return nil, fmt.Errorf("%w: %q", pathfinding.ErrUnknownAlgorithm, algorithm)
	}

	m, source, err := sm.mazes.Generate(ctx, i.MazeSpec{Width: width, Height: height})
	if err != nil {
		return nil, err
	}

	sm.Lock()
	id := sm.newID()
	s, err := NewSession(id, m, sm.session)
	if err != nil {
		sm.Unlock()
		return nil, err
	}
	sm.sessions[id] = s
	sm.Unlock()
	sm.metrics.SessionOpened()

	if algorithm != "" {
		if err := s.SelectAlgorithm(algorithm); err != nil {
			_ = sm.Close(id)
			return nil, err
		}
	}

	sm.logger.Info(fmt.Sprintf("opened session %s with a %dx%d maze from %s", id, width, height, source))
	return s, nil
}

// newID returns an ID no open session uses. Callers hold the lock.
func (sm *SessionManager) newID() uuid.UUID {
	id := uuid.New()
	for {
		if _, ok := sm.sessions[id]; !ok {
			return id
		}
		id = uuid.New()
	}
}

// Get returns the session with the given ID.
func (sm *SessionManager) Get(id uuid.UUID) (i.Session, error) {
	sm.RLock()
	defer sm.RUnlock()

	s, ok := sm.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close stops and forgets a session.
func (sm *SessionManager) Close(id uuid.UUID) error {
	sm.Lock()
	s, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.Close()
	sm.metrics.SessionClosed()
	sm.logger.Info(fmt.Sprintf("closed session %s", id))
	return nil
}

// Count returns the number of open sessions.
func (sm *SessionManager) Count() int {
	sm.RLock()
	defer sm.RUnlock()
	return len(sm.sessions)
}

// Reap closes the sessions idle since before now minus the idle timeout and
// returns how many it closed.
func (sm *SessionManager) Reap(now time.Time) int {
	sm.RLock()
	var idle []uuid.UUID
	for id, s := range sm.sessions {
		if now.Sub(s.LastActive()) > sm.idleTimeout {
			idle = append(idle, id)
		}
	}
	sm.RUnlock()

	reaped := 0
	for _, id := range idle {
		if sm.Close(id) == nil {
			reaped++
		}
	}
	if reaped > 0 {
		sm.logger.Info(fmt.Sprintf("reaped %d idle sessions", reaped))
	}
	return reaped
}

// StartReaper reaps idle sessions every interval until StopAll.
func (sm *SessionManager) StartReaper(interval time.Duration) {
	sm.wg.Add(1)
	go func() {
		defer sm.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-sm.stop:
				return
			case now := <-ticker.C:
				sm.Reap(now)
			}
		}
	}()
}

// StopAll stops the reaper and closes every session.
func (sm *SessionManager) StopAll() {
	sm.Lock()
	select {
	case <-sm.stop:
	default:
		close(sm.stop)
	}
	ids := make([]uuid.UUID, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	sm.Unlock()

	sm.wg.Wait()
	for _, id := range ids {
		_ = sm.Close(id)
	}
}
