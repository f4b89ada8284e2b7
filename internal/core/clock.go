package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock is an owned fixed-delay tick source.
//
// Every Start and Stop advances the clock's generation. The fire callback
// receives the generation it was armed with; consumers must check
// Current(gen) under their own lock before acting, which guarantees that a
// tick already in flight when Stop or a restart happened is discarded.
type Clock struct {
	interval time.Duration
	gen      atomic.Uint64

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewClock creates a stopped clock with the given cadence.
func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Clock{interval: interval}
}

// Interval returns the tick cadence.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Start arms the clock, cancelling any previous schedule first, and
// returns the new generation. fire is never called concurrently with
// itself.
func (c *Clock) Start(fire func(gen uint64)) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	gen := c.gen.Add(1)
	stop := make(chan struct{})
	c.stop = stop

	c.wg.Add(1)
	go c.loop(gen, stop, fire)
	return gen
}

func (c *Clock) loop(gen uint64, stop chan struct{}, fire func(uint64)) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			fire(gen)
		}
	}
}

// Stop cancels the pending schedule. Calling it on a stopped clock is a
// no-op. It is safe to call from inside fire.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Clock) cancelLocked() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
	c.gen.Add(1)
}

// Wait blocks until every clock goroutine has exited. It must not be
// called from inside fire.
func (c *Clock) Wait() {
	c.wg.Wait()
}

// Running reports whether a schedule is armed.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Generation returns the current generation.
func (c *Clock) Generation() uint64 {
	return c.gen.Load()
}

// Current reports whether gen is still the armed generation.
func (c *Clock) Current(gen uint64) bool {
	return c.gen.Load() == gen
}
