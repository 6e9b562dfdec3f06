package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-pathviz/infrastruture/mazecache"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/google/uuid"
)

var (
	ErrStorageUnavailable = errors.New("maze storage is not configured")
)

// MazeService serves mazes from a remote generator, a seeded cache or the
// local generators, and stores saved mazes.
type MazeService struct {
	remote       i.MazeGenerator
	cache        i.MazeCache
	repo         i.MazeRepo
	generator    maze.Generator
	maxDimension int
	metrics      *metrics.Metrics
	logger       i.Logger
	seed         func() int64
}

// MazeServiceConfig wires a MazeService. Remote, Cache and Repo are optional.
type MazeServiceConfig struct {
	Remote       i.MazeGenerator
	Cache        i.MazeCache
	Repo         i.MazeRepo
	Generator    maze.Generator
	MaxDimension int
	Metrics      *metrics.Metrics
	Logger       i.Logger
}

var _ i.MazeProvider = &MazeService{}

func NewMazeService(c MazeServiceConfig) (*MazeService, error) {
	if c.Logger == nil || c.Metrics == nil {
		return nil, errors.New("maze service needs a logger and metrics")
	}
	if c.MaxDimension <= 0 {
		return nil, fmt.Errorf("%w: max dimension %d", maze.ErrInvalidDimensions, c.MaxDimension)
	}

	g, err := maze.ParseGenerator(string(c.Generator))
	if err != nil {
		return nil, err
	}

	return &MazeService{
		remote:       c.Remote,
		cache:        c.Cache,
		repo:         c.Repo,
		generator:    g,
		maxDimension: c.MaxDimension,
		metrics:      c.Metrics,
		logger:       c.Logger,
		seed: func() int64 {
			// zero selects a random maze, so never hand it out
			for {
				if s := rand.Int63(); s != 0 {
					return s
				}
			}
		},
	}, nil
}

// Generate returns a maze for spec and the source it came from.
//
// A seed or an explicit generator selects local generation, through the cache
// when one is configured. Otherwise the remote generator is asked first and
// the random-wall generator stands in when it fails.
func (s *MazeService) Generate(ctx context.Context, spec i.MazeSpec) (*maze.Maze, string, error) {
	if spec.Width < 1 || spec.Height < 1 || spec.Width > s.maxDimension || spec.Height > s.maxDimension {
		return nil, "", fmt.Errorf("%w: %dx%d, each side must be within 1..%d",
			maze.ErrInvalidDimensions, spec.Width, spec.Height, s.maxDimension)
	}

	if spec.Generator == "" && spec.Seed == 0 && s.remote != nil {
		m, err := s.remote.Generate(ctx, spec.Width, spec.Height)
		if err == nil && (m.Width != spec.Width || m.Height != spec.Height) {
			err = fmt.Errorf("%w: asked for %dx%d, got %dx%d", maze.ErrInvalidMaze, spec.Width, spec.Height, m.Width, m.Height)
		}
		if err == nil {
			return s.served(m, metrics.SourceRemote), metrics.SourceRemote, nil
		}

		s.logger.Warning(fmt.Sprintf("remote maze generation failed, falling back to random walls: %v", err))
		m, err = maze.Generate(maze.GeneratorRandom, spec.Width, spec.Height, s.seed())
		if err != nil {
			return nil, "", err
		}
		return s.served(m, metrics.SourceFallback), metrics.SourceFallback, nil
	}

	g := s.generator
	if spec.Generator != "" {
		var err error
		if g, err = maze.ParseGenerator(string(spec.Generator)); err != nil {
			return nil, "", err
		}
	}

	if spec.Seed == 0 {
		m, err := maze.Generate(g, spec.Width, spec.Height, s.seed())
		if err != nil {
			return nil, "", err
		}
		return s.served(m, metrics.SourceLocal), metrics.SourceLocal, nil
	}

	build := func(context.Context) (*maze.Maze, error) {
		return maze.Generate(g, spec.Width, spec.Height, spec.Seed)
	}
	if s.cache != nil {
		m, hit, err := s.cache.Remember(ctx, mazecache.Key(g, spec.Width, spec.Height, spec.Seed), build)
		switch {
		case err == nil && hit:
			return s.served(m, metrics.SourceCache), metrics.SourceCache, nil
		case err == nil:
			return s.served(m, metrics.SourceLocal), metrics.SourceLocal, nil
		case m != nil:
			s.logger.Warning(fmt.Sprintf("caching maze: %v", err))
			return s.served(m, metrics.SourceLocal), metrics.SourceLocal, nil
		default:
			s.logger.Warning(fmt.Sprintf("maze cache unavailable, generating directly: %v", err))
		}
	}

	m, err := build(ctx)
	if err != nil {
		return nil, "", err
	}
	return s.served(m, metrics.SourceLocal), metrics.SourceLocal, nil
}

func (s *MazeService) served(m *maze.Maze, source string) *maze.Maze {
	s.metrics.RecordGeneration(source)
	s.logger.Debug(fmt.Sprintf("served %dx%d maze from %s", m.Width, m.Height, source))
	return m
}

// Save validates and stores m under a new ID.
func (s *MazeService) Save(ctx context.Context, m *maze.Maze) (uuid.UUID, error) {
	if s.repo == nil {
		return uuid.Nil, ErrStorageUnavailable
	}
	m.Reindex()
	if err := m.Validate(); err != nil {
		return uuid.Nil, err
	}
	if m.Width > s.maxDimension || m.Height > s.maxDimension {
		return uuid.Nil, fmt.Errorf("%w: %dx%d exceeds %d", maze.ErrInvalidDimensions, m.Width, m.Height, s.maxDimension)
	}

	id := uuid.New()
	if err := s.repo.Save(ctx, id, m); err != nil {
		return uuid.Nil, err
	}
	s.logger.Info(fmt.Sprintf("saved %dx%d maze %s", m.Width, m.Height, id))
	return id, nil
}

// ByID loads a saved maze.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	if s.repo == nil {
		return nil, ErrStorageUnavailable
	}
	return s.repo.ByID(ctx, id)
}
