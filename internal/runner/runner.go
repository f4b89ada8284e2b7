// Package runner drives a simulation headlessly from a core.Clock.
//
// All commands and ticks are serialized behind one mutex, so a Runner may
// be controlled from any goroutine while the clock goroutine ticks it.
// The clock is armed only while the simulation is playing.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/telemetry"
)

// ErrNotStarted is returned by Run when the simulation refused to start.
var ErrNotStarted = errors.New("runner: simulation did not start")

// Autopilot picks the actions to hold for the next tick.
type Autopilot func(v core.View) []core.Action

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder times every tick and counts events into rec.
func WithRecorder(rec *telemetry.Recorder) Option {
	return func(r *Runner) { r.rec = rec }
}

// WithLogger logs state changes and events at debug level.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithAutopilot feeds scripted input before each tick.
func WithAutopilot(a Autopilot) Option {
	return func(r *Runner) { r.pilot = a }
}

// WithAutoServe serves automatically whenever the game waits for a serve.
func WithAutoServe() Option {
	return func(r *Runner) { r.autoServe = true }
}

// WithInterval overrides the tick cadence derived from the tick rate.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) { r.interval = d }
}

// Runner owns a simulation, its input latch and its clock.
type Runner struct {
	mu    sync.Mutex
	sim   *core.Simulation
	latch *core.Latch
	clock *core.Clock

	rec       *telemetry.Recorder
	logger    *log.Logger
	pilot     Autopilot
	piloted   map[core.Action]bool
	autoServe bool
	interval  time.Duration

	limit  uint64 // stop after this many ticks, 0 for no limit
	counts map[core.EventKind]int
	done   chan struct{}
	closed bool
}

// New creates a runner ticking sim at its configured tick rate.
func New(sim *core.Simulation, opts ...Option) *Runner {
	rate := sim.Config().TickRate
	if rate <= 0 {
		rate = 60
	}
	r := &Runner{
		sim:      sim,
		latch:    core.NewLatch(),
		piloted:  make(map[core.Action]bool),
		interval: time.Second / time.Duration(rate),
		counts:   make(map[core.EventKind]int),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.clock = core.NewClock(r.interval)
	return r
}

// Press and Release forward input to the latch.
func (r *Runner) Press(a core.Action)   { r.latch.Press(a) }
func (r *Runner) Release(a core.Action) { r.latch.Release(a) }

// Start starts the simulation and arms the clock.
func (r *Runner) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.sim.Start()
	r.syncClockLocked()
	return ok
}

// Serve puts the ball in play.
func (r *Runner) Serve() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.sim.Serve()
	r.syncClockLocked()
	return ok
}

// Pause stops the clock at the next tick boundary.
func (r *Runner) Pause() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.sim.Pause()
	r.syncClockLocked()
	return ok
}

// Resume re-arms the clock.
func (r *Runner) Resume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.sim.Resume()
	r.syncClockLocked()
	return ok
}

// Reset returns the simulation to start. Ticks already in flight are
// discarded by the clock generation.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sim.Reset()
	r.latch.Reset()
	clear(r.piloted)
	clear(r.counts)
	if r.closed {
		r.closed = false
		r.done = make(chan struct{})
	}
	r.syncClockLocked()
}

// Stop disarms the clock and waits for its goroutine to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.clock.Stop()
	r.mu.Unlock()
	r.clock.Wait()
}

// Running reports whether the clock is armed.
func (r *Runner) Running() bool {
	return r.clock.Running()
}

// View returns the simulation header.
func (r *Runner) View() core.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.View()
}

// Counts returns how many events of each kind were emitted so far.
func (r *Runner) Counts() map[core.EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[core.EventKind]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Done is closed when the game ends or the tick limit is reached.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Run starts the game and blocks until it ends, limit ticks have run
// (0 for no limit) or ctx is cancelled. The clock is stopped on return.
func (r *Runner) Run(ctx context.Context, limit uint64) (core.View, error) {
	r.mu.Lock()
	r.limit = limit
	r.mu.Unlock()

	if !r.Start() {
		return r.View(), ErrNotStarted
	}
	defer r.Stop()

	select {
	case <-r.Done():
		return r.View(), nil
	case <-ctx.Done():
		return r.View(), ctx.Err()
	}
}

// syncClockLocked arms the clock while playing and disarms it otherwise.
func (r *Runner) syncClockLocked() {
	playing := r.sim.Mode() == core.ModePlaying
	switch {
	case playing && !r.clock.Running():
		r.clock.Start(r.fire)
	case !playing && r.clock.Running():
		r.clock.Stop()
	}
}

func (r *Runner) fire(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.clock.Current(gen) || r.closed {
		return
	}

	if r.pilot != nil {
		r.steer()
	}

	events := r.rec.Timed(r.sim, r.latch.Snapshot())
	for _, e := range events {
		r.counts[e.Kind]++
		if r.logger != nil {
			r.logger.Debug("event", "game", e.Game, "kind", e.Kind, "tick", e.Tick, "value", e.Value, "detail", e.Detail)
		}
		if r.rec != nil {
			r.rec.Record(e)
		}
	}

	if r.autoServe && r.sim.Mode() == core.ModeServing {
		r.sim.Serve()
	}

	v := r.sim.View()
	switch {
	case v.Mode == core.ModeGameOver:
		if r.logger != nil {
			r.logger.Info("game over", "game", v.Game, "score", v.Score, "level", v.Level, "ticks", v.Tick)
		}
		r.finishLocked()
	case r.limit > 0 && v.Tick >= r.limit:
		r.finishLocked()
	default:
		r.syncClockLocked()
	}
}

// steer holds the autopilot's actions. An action held across ticks is
// pressed once.
func (r *Runner) steer() {
	want := make(map[core.Action]bool)
	for _, a := range r.pilot(r.sim.View()) {
		want[a] = true
		if !r.piloted[a] {
			r.latch.Press(a)
		}
	}
	for a := range r.piloted {
		if !want[a] {
			r.latch.Release(a)
		}
	}
	r.piloted = want
}

func (r *Runner) finishLocked() {
	r.clock.Stop()
	if !r.closed {
		r.closed = true
		close(r.done)
	}
}
