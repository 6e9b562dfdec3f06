package mazecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("maze not cached")

// Key names the cache entry of a seeded maze.
func Key(g maze.Generator, width, height int, seed int64) string {
	return fmt.Sprintf("maze:%s:%dx%d:%d", g, width, height, seed)
}

// RedisCache stores generated mazes in Redis with a TTL. Concurrent misses on
// the same key are serialized with a redsync lock so a maze is built once.
type RedisCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.MazeCache = &RedisCache{}

// NewRedisCache initializes a RedisCache with the provided Redis client and TTL.
func NewRedisCache(client *redis.Client, ttlSeconds int) *RedisCache {
	pool := goredis.NewPool(client)
	return &RedisCache{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Remember implements i.MazeCache.
func (c *RedisCache) Remember(ctx context.Context, key string, build func(context.Context) (*maze.Maze, error)) (*maze.Maze, bool, error) {
	m, err := c.get(ctx, key)
	if err == nil {
		return m, true, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, false, err
	}

	mutex := c.locker.NewMutex(key + ":gen_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return nil, false, err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	// Another holder of the lock may have built it meanwhile.
	if m, err := c.get(ctx, key); err == nil {
		return m, true, nil
	}

	m, err = build(ctx)
	if err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, false, err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return m, false, fmt.Errorf("caching maze %s: %w", key, err)
	}
	return m, false, nil
}

func (c *RedisCache) get(ctx context.Context, key string) (*maze.Maze, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var m maze.Maze
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding cached maze %s: %w", key, err)
	}
	return &m, nil
}
