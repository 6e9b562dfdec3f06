package mazecache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "maze:wilson:20x10:7", Key(maze.GeneratorWilson, 20, 10, 7))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	var builds atomic.Int64
	build := func(context.Context) (*maze.Maze, error) {
		builds.Add(1)
		return maze.New(3, 3)
	}

	t.Run("builds once per key", func(t *testing.T) {
		c := NewMemoryCache(60)
		builds.Store(0)

		var wg sync.WaitGroup
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := c.Remember(ctx, "k", build)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, int64(1), builds.Load())

		m, hit, err := c.Remember(ctx, "k", build)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, 3, m.Width)
	})

	t.Run("entries expire", func(t *testing.T) {
		c := NewMemoryCache(60)
		now := time.Now()
		c.now = func() time.Time { return now }
		builds.Store(0)

		_, hit, err := c.Remember(ctx, "k", build)
		require.NoError(t, err)
		assert.False(t, hit)

		now = now.Add(2 * time.Minute)
		_, hit, err = c.Remember(ctx, "k", build)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, int64(2), builds.Load())
	})

	t.Run("misses drop expired entries", func(t *testing.T) {
		c := NewMemoryCache(60)
		now := time.Now()
		c.now = func() time.Time { return now }

		for _, key := range []string{"a", "b", "c"} {
			_, _, err := c.Remember(ctx, key, build)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, c.Len())

		now = now.Add(30 * time.Second)
		_, _, err := c.Remember(ctx, "d", build)
		require.NoError(t, err)
		assert.Equal(t, 4, c.Len(), "nothing has expired yet")

		now = now.Add(45 * time.Second)
		_, hit, err := c.Remember(ctx, "e", build)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, 2, c.Len(), "only d and e are still live")

		_, hit, err = c.Remember(ctx, "d", build)
		require.NoError(t, err)
		assert.True(t, hit)
	})

	t.Run("build errors are not cached", func(t *testing.T) {
		c := NewMemoryCache(60)
		boom := errors.New("boom")
		_, _, err := c.Remember(ctx, "k", func(context.Context) (*maze.Maze, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)

		_, hit, err := c.Remember(ctx, "k", build)
		require.NoError(t, err)
		assert.False(t, hit)
	})
}
