package animation

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	_, err := NewDriver(0, func() bool { return false })
	assert.ErrorIs(t, err, ErrInvalidInterval)

	d, err := NewDriver(time.Millisecond, func() bool { return false })
	require.NoError(t, err)
	assert.False(t, d.Running())
	assert.Equal(t, time.Millisecond, d.Interval())
}

func TestDriverTicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64
	d, err := NewDriver(time.Millisecond, func() bool {
		ticks.Add(1)
		return false
	})
	require.NoError(t, err)

	require.True(t, d.Start())
	assert.False(t, d.Start(), "already running")
	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	d.Stop()
	assert.False(t, d.Running())
	stoppedAt := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stoppedAt, ticks.Load(), "no tick after Stop returns")

	d.Stop()
}

func TestDriverStopWaitsForTick(t *testing.T) {
	var inTick, finished atomic.Bool
	d, err := NewDriver(time.Millisecond, func() bool {
		inTick.Store(true)
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
		return false
	})
	require.NoError(t, err)

	require.True(t, d.Start())
	require.Eventually(t, inTick.Load, time.Second, time.Millisecond)
	d.Stop()
	assert.True(t, finished.Load())
}

func TestDriverEndsWhenRunIsOver(t *testing.T) {
	var ticks atomic.Int64
	d, err := NewDriver(time.Millisecond, func() bool {
		return ticks.Add(1) == 3
	})
	require.NoError(t, err)

	require.True(t, d.Start())
	assert.Eventually(t, func() bool { return !d.Running() }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int64(3), ticks.Load())

	d.Stop()
	assert.True(t, d.Start(), "restartable after the loop ended on its own")
	d.Stop()
}

func TestDriverSetInterval(t *testing.T) {
	var ticks atomic.Int64
	d, err := NewDriver(time.Hour, func() bool {
		ticks.Add(1)
		return false
	})
	require.NoError(t, err)

	assert.ErrorIs(t, d.SetInterval(-time.Second), ErrInvalidInterval)

	require.NoError(t, d.SetInterval(time.Minute))
	assert.False(t, d.Running(), "a stopped driver stays stopped")

	require.True(t, d.Start())
	require.NoError(t, d.SetInterval(time.Millisecond))
	assert.True(t, d.Running())
	assert.Equal(t, time.Millisecond, d.Interval())
	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	d.Stop()
}
