package core

import (
	"sync"
	"time"
)

// Latch collects asynchronous press/release events and hands the update
// loop one consistent InputFrame per tick.
//
// A press is never lost: even if the key is released again before the next
// Snapshot, that snapshot still reports the action once. Movement presses
// also fill a one-shot direction buffer which the snapshot carries and
// clears.
type Latch struct {
	mu      sync.Mutex
	held    map[Action]time.Time
	pressed map[Action]bool
	dir     Direction
	now     func() time.Time
}

// NewLatch creates an empty latch.
func NewLatch() *Latch {
	return &Latch{
		held:    make(map[Action]time.Time),
		pressed: make(map[Action]bool),
		now:     time.Now,
	}
}

// Press records that a is down. Safe for concurrent use.
func (l *Latch) Press(a Action) {
	if a == ActionNone {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[a] = l.now()
	l.pressed[a] = true
	if d := DirectionOf(a); d != DirNone {
		l.dir = d
	}
}

// Release records that a is up. A press not yet observed by a snapshot
// is still delivered.
func (l *Latch) Release(a Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, a)
}

// Request queues a one-shot heading without holding any action.
func (l *Latch) Request(d Direction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dir = d
}

// ReleaseStale releases every action whose last press is older than
// holdFor. Terminals only report key repeats, never key-up, so the
// platform calls this once per tick to emulate releases.
func (l *Latch) ReleaseStale(holdFor time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-holdFor)
	for a, t := range l.held {
		if t.Before(cutoff) {
			delete(l.held, a)
		}
	}
}

// Snapshot returns the input for one tick and consumes latched presses
// and the direction buffer.
func (l *Latch) Snapshot() InputFrame {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := NewInputFrame()
	for a := range l.held {
		f.Actions[a] = true
	}
	for a := range l.pressed {
		f.Actions[a] = true
		f.Pressed[a] = true
	}
	f.Direction = l.dir

	clear(l.pressed)
	l.dir = DirNone
	return f
}

// Reset drops all held actions and pending presses.
func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.held)
	clear(l.pressed)
	l.dir = DirNone
}
