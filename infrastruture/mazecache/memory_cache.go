package mazecache

import (
	"context"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
)

type memoryEntry struct {
	maze    *maze.Maze
	expires time.Time
}

// MemoryCache is an in-process MazeCache used when no Redis is configured.
type MemoryCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	sync.Mutex
}

var _ i.MazeCache = &MemoryCache{}

func NewMemoryCache(ttlSeconds int) *MemoryCache {
	return &MemoryCache{
		ttl:     time.Duration(ttlSeconds) * time.Second,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Remember implements i.MazeCache. The lock is held while building, so
// concurrent misses build once. Every miss drops the expired entries.
func (c *MemoryCache) Remember(ctx context.Context, key string, build func(context.Context) (*maze.Maze, error)) (*maze.Maze, bool, error) {
	c.Lock()
	defer c.Unlock()

	now := c.now()
	if e, ok := c.entries[key]; ok && now.Before(e.expires) {
		return e.maze, true, nil
	}
	c.evict(now)

	m, err := build(ctx)
	if err != nil {
		return nil, false, err
	}
	c.entries[key] = memoryEntry{maze: m, expires: c.now().Add(c.ttl)}
	return m, false, nil
}

// evict removes the entries that expired by now. Callers hold the lock.
func (c *MemoryCache) evict(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of entries held, expired ones included.
func (c *MemoryCache) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.entries)
}
