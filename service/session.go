package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/animation"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/beka-birhanu/vinom-pathviz/pathfinding"
	"github.com/beka-birhanu/vinom-pathviz/render"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoEngine        = errors.New("no algorithm selected")
	ErrNoMaze          = errors.New("session has no maze")
	ErrInvalidSpeed    = errors.New("speed out of range")
)

const (
	MaxSpeed      = 990 // slider maximum, the shortest interval
	minInterval   = 10 * time.Millisecond
	subscriberBuf = 16
)

// SpeedInterval maps a speed slider value to a step interval: higher is faster.
func SpeedInterval(speed int) time.Duration {
	interval := time.Duration(1000-speed) * time.Millisecond
	if interval < minInterval {
		return minInterval
	}
	return interval
}

// SessionConfig holds the settings a Session is created with.
type SessionConfig struct {
	Mazes           i.MazeProvider
	Metrics         *metrics.Metrics
	Logger          i.Logger
	Interval        time.Duration
	StepLimitFactor int
}

// Session is the server side of the visualizer control surface: one maze, at
// most one engine and the animation driving it.
//
// Control operations hold ctl for their whole duration and stop the driver
// before touching the engine. Ticks only take mu, so stopping the driver while
// holding ctl cannot deadlock with a tick in flight.
type Session struct {
	id        uuid.UUID
	mazes     i.MazeProvider
	metrics   *metrics.Metrics
	logger    i.Logger
	stepLimit int
	driver    *animation.Driver

	ctl sync.Mutex

	mu         sync.Mutex
	maze       *maze.Maze
	algorithm  string
	engine     pathfinding.Engine
	steps      int
	autoSteps  int // steps taken by the current animation
	interval   time.Duration
	playing    bool
	stalled    bool
	lastActive time.Time

	subMu       sync.Mutex
	subscribers map[int]chan i.SessionState
	nextSub     int
	closed      bool
}

var _ i.Session = &Session{}

// NewSession creates a session over m. No engine is built until an algorithm
// is selected.
func NewSession(id uuid.UUID, m *maze.Maze, c SessionConfig) (*Session, error) {
	if m == nil {
		return nil, ErrNoMaze
	}
	if c.StepLimitFactor <= 0 {
		return nil, fmt.Errorf("step limit factor must be positive, got %d", c.StepLimitFactor)
	}

	s := &Session{
		id:          id,
		mazes:       c.Mazes,
		metrics:     c.Metrics,
		logger:      c.Logger,
		stepLimit:   c.StepLimitFactor,
		maze:        m,
		interval:    c.Interval,
		lastActive:  time.Now(),
		subscribers: make(map[int]chan i.SessionState),
	}

	driver, err := animation.NewDriver(c.Interval, s.tick)
	if err != nil {
		return nil, err
	}
	s.driver = driver
	return s, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

// Maze returns the current maze.
func (s *Session) Maze() *maze.Maze {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maze
}

// LastActive returns when a control operation or an animation step last
// touched the session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// SelectAlgorithm stops the animation and replaces the engine with a new one
// for name. On an unknown name the session is left without an engine.
func (s *Session) SelectAlgorithm(name string) error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.driver.Stop()

	s.mu.Lock()
	s.algorithm = name
	err := s.rebuild()
	state := s.stateLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Error(fmt.Sprintf("session %s: %v", s.id, err))
	}
	s.publish(state)
	return err
}

// rebuild discards the engine and builds a fresh one for the selected
// algorithm. Callers hold mu and have stopped the driver.
func (s *Session) rebuild() error {
	s.engine = nil
	s.steps = 0
	s.playing = false
	s.stalled = false
	s.lastActive = time.Now()

	if s.algorithm == "" {
		return nil
	}
	engine, err := pathfinding.New(s.algorithm, s.maze, s.maze)
	if err != nil {
		s.algorithm = ""
		return err
	}
	s.engine = engine
	return nil
}

// Step advances the engine once by hand. It works while animating too.
func (s *Session) Step() (bool, error) {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	if s.engine == nil {
		s.mu.Unlock()
		return false, ErrNoEngine
	}
	s.lastActive = time.Now()
	done := s.advance()
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(state)
	return done, nil
}

// advance steps the engine and records metrics. Callers hold mu.
func (s *Session) advance() bool {
	if s.engine.Done() {
		return true
	}

	done := s.engine.Step()
	s.steps++
	s.metrics.RecordStep(s.algorithm)
	if done {
		outcome := metrics.OutcomeExhausted
		if s.engine.State().Found {
			outcome = metrics.OutcomeFound
		}
		s.metrics.RecordRun(s.algorithm, outcome)
		s.logger.Debug(fmt.Sprintf("session %s: %s finished after %d steps (%s)", s.id, s.algorithm, s.steps, outcome))
	}
	return done
}

// Reset stops the animation and restarts the selected algorithm.
func (s *Session) Reset() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.driver.Stop()

	s.mu.Lock()
	err := s.rebuild()
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(state)
	return err
}

// Regenerate stops the animation, replaces the maze and resets the engine.
// When no maze can be generated the session is left as it was, animation
// included.
func (s *Session) Regenerate(ctx context.Context, width, height int) error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	m, source, err := s.mazes.Generate(ctx, i.MazeSpec{Width: width, Height: height})
	if err != nil {
		return err
	}

	s.driver.Stop()
	s.mu.Lock()
	s.maze = m
	err = s.rebuild()
	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Info(fmt.Sprintf("session %s: new %dx%d maze from %s", s.id, width, height, source))
	s.publish(state)
	return err
}

// Play starts the animation. It is a no-op when already running or when the
// run is over.
func (s *Session) Play() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	return s.play()
}

func (s *Session) play() error {
	s.mu.Lock()
	if s.engine == nil {
		s.mu.Unlock()
		return ErrNoEngine
	}
	s.lastActive = time.Now()
	if s.playing || s.engine.Done() {
		s.mu.Unlock()
		return nil
	}
	s.playing = true
	s.stalled = false
	s.autoSteps = 0
	state := s.stateLocked()
	s.mu.Unlock()

	// A loop that just ended itself may still be winding down.
	s.driver.Stop()
	s.driver.Start()
	s.publish(state)
	return nil
}

// Pause stops the animation.
func (s *Session) Pause() {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.pause()
}

func (s *Session) pause() {
	s.driver.Stop()

	s.mu.Lock()
	s.lastActive = time.Now()
	wasPlaying := s.playing
	s.playing = false
	state := s.stateLocked()
	s.mu.Unlock()

	if wasPlaying {
		s.publish(state)
	}
}

// Toggle pauses a running animation and starts a stopped one.
func (s *Session) Toggle() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	playing := s.playing
	s.mu.Unlock()

	if playing {
		s.pause()
		return nil
	}
	return s.play()
}

// SetSpeed sets the animation speed from a slider value in [0, MaxSpeed].
// A running animation is restarted with the new interval.
func (s *Session) SetSpeed(speed int) error {
	if speed < 0 || speed > MaxSpeed {
		return fmt.Errorf("%w: %d not in 0..%d", ErrInvalidSpeed, speed, MaxSpeed)
	}

	s.ctl.Lock()
	defer s.ctl.Unlock()

	interval := SpeedInterval(speed)
	if err := s.driver.SetInterval(interval); err != nil {
		return err
	}

	s.mu.Lock()
	s.interval = interval
	s.lastActive = time.Now()
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(state)
	return nil
}

// tick is the animation step. It ends the animation when the run is over or
// when one animation has taken the step limit, which bounds wall followers
// that never reach the goal.
func (s *Session) tick() bool {
	s.mu.Lock()
	if s.engine == nil || !s.playing {
		s.playing = false
		s.mu.Unlock()
		return true
	}

	s.lastActive = time.Now()
	done := s.advance()
	s.autoSteps++
	if !done && s.autoSteps >= s.limit() {
		s.stalled = true
		done = true
		s.metrics.RecordRun(s.algorithm, metrics.OutcomeStalled)
		s.logger.Warning(fmt.Sprintf("session %s: %s stopped after %d steps without finishing", s.id, s.algorithm, s.steps))
	}
	if done {
		s.playing = false
	}
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(state)
	return done
}

func (s *Session) limit() int {
	return s.stepLimit * s.maze.Width * s.maze.Height
}

// State returns the current session state.
func (s *Session) State() i.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() i.SessionState {
	state := i.SessionState{
		ID:         s.id,
		Width:      s.maze.Width,
		Height:     s.maze.Height,
		Algorithm:  s.algorithm,
		Running:    s.playing,
		Stalled:    s.stalled,
		IntervalMS: s.interval.Milliseconds(),
		StepLimit:  s.limit(),
	}
	if s.engine != nil {
		es := s.engine.State()
		state.Engine = &es
	}
	return state
}

// Frame writes the maze and the engine state as a PNG image.
func (s *Session) Frame(w io.Writer, cellSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d render.Drawer
	if s.engine != nil {
		d = s.engine
	}
	return render.WritePNG(w, s.maze, d, cellSize)
}

// Subscribe implements i.Session. Slow subscribers miss states rather than
// block the session.
func (s *Session) Subscribe() (<-chan i.SessionState, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan i.SessionState, subscriberBuf)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if c, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(c)
			}
		})
	}
}

func (s *Session) publish(state i.SessionState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- state:
		default:
		}
	}
}

// Close stops the animation and ends every subscription.
func (s *Session) Close() {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.driver.Stop()

	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.closed = true
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}
