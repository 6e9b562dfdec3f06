// Package animation drives an engine from a cancellable periodic timer.
package animation

import (
	"errors"
	"sync"
	"time"
)

var ErrInvalidInterval = errors.New("interval must be positive")

// Tick advances the animated run by one step and reports whether it is over.
// A Tick must not call Stop on the driver running it; returning true ends the
// loop instead.
type Tick func() bool

// Driver calls a Tick at a fixed interval on its own goroutine. Stop is
// synchronous: once it returns no tick is running and none will fire.
type Driver struct {
	tick     Tick
	mu       sync.Mutex // serializes Start, Stop and SetInterval
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewDriver returns a stopped driver.
func NewDriver(interval time.Duration, tick Tick) (*Driver, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Driver{tick: tick, interval: interval}, nil
}

// Start begins ticking. It returns false if the driver is already running.
func (d *Driver) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running() {
		return false
	}
	d.start()
	return true
}

func (d *Driver) start() {
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.loop(d.interval, d.stop, d.done)
}

// Stop cancels the timer and waits for an in-flight tick to return.
// Stopping a stopped driver is a no-op.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.halt()
}

func (d *Driver) halt() {
	if d.stop == nil {
		return
	}
	close(d.stop)
	<-d.done
	d.stop, d.done = nil, nil
}

// Running reports whether the loop is active. It turns false on its own once
// a tick reports the run is over.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running()
}

func (d *Driver) running() bool {
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// Interval returns the current tick interval.
func (d *Driver) Interval() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.interval
}

// SetInterval changes the tick interval. A running driver is stopped and
// restarted with the new interval.
func (d *Driver) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	wasRunning := d.running()
	d.halt()
	d.interval = interval
	if wasRunning {
		d.start()
	}
	return nil
}

func (d *Driver) loop(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A tick and a stop can be ready together; stop wins.
			select {
			case <-stop:
				return
			default:
			}
			if d.tick() {
				return
			}
		}
	}
}
