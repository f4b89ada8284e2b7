package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/telemetry"
)

// counter awards a point per tick, two while Fire is held, and ends the
// game after endAt ticks when endAt is set.
type counter struct {
	endAt uint64

	mu    sync.Mutex
	fired int
}

func (c *counter) ID() string                     { return "counter" }
func (c *counter) Title() string                  { return "Counter" }
func (c *counter) Params() core.Params            { return core.Params{Lives: 1} }
func (c *counter) Setup(*core.Ctx)                {}
func (c *counter) Render(*core.Screen, core.View) {}

func (c *counter) Update(ctx *core.Ctx, in core.InputFrame) {
	points := 1
	if in.Has(core.ActionFire) {
		points = 2
	}
	if in.JustPressed(core.ActionFire) {
		c.mu.Lock()
		c.fired++
		c.mu.Unlock()
		ctx.Emit(core.EventShoot, 0, "")
	}
	ctx.Award(points)
	if c.endAt > 0 && ctx.Tick() >= c.endAt {
		ctx.Finish()
	}
}

func (c *counter) presses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired
}

func newRunner(t *testing.T, rules core.Rules, opts ...Option) *Runner {
	t.Helper()
	sim := core.New(rules, core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60, Seed: 1})
	t.Cleanup(sim.Close)
	r := New(sim, append([]Option{WithInterval(time.Millisecond)}, opts...)...)
	t.Cleanup(r.Stop)
	return r
}

func run(t *testing.T, r *Runner, limit uint64) core.View {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := r.Run(ctx, limit)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return v
}

func TestRunStopsAtLimit(t *testing.T) {
	r := newRunner(t, &counter{})
	v := run(t, r, 50)

	if v.Tick != 50 {
		t.Errorf("tick = %d, expected 50", v.Tick)
	}
	if v.Score != 50 {
		t.Errorf("score = %d, expected 50", v.Score)
	}
	if r.Running() {
		t.Error("clock should be stopped after Run returns")
	}
	if got := r.Counts()[core.EventScored]; got != 50 {
		t.Errorf("scored events = %d, expected 50", got)
	}
}

func TestGameOverClosesDone(t *testing.T) {
	r := newRunner(t, &counter{endAt: 20})
	v := run(t, r, 0)

	if v.Mode != core.ModeGameOver {
		t.Fatalf("mode = %v, expected game over", v.Mode)
	}
	if v.Tick != 20 {
		t.Errorf("tick = %d, expected 20", v.Tick)
	}
	select {
	case <-r.Done():
	default:
		t.Error("Done should be closed after game over")
	}
	if got := r.Counts()[core.EventGameOver]; got != 1 {
		t.Errorf("game over events = %d, expected 1", got)
	}
}

func TestRunAfterGameOver(t *testing.T) {
	r := newRunner(t, &counter{endAt: 3})
	run(t, r, 0)

	_, err := r.Run(context.Background(), 0)
	if !errors.Is(err, ErrNotStarted) {
		t.Errorf("err = %v, expected ErrNotStarted", err)
	}

	r.Reset()
	select {
	case <-r.Done():
		t.Fatal("Done should reopen after Reset")
	default:
	}
	if v := run(t, r, 0); v.Tick != 3 {
		t.Errorf("tick after reset = %d, expected 3", v.Tick)
	}
}

func TestRunCancelled(t *testing.T) {
	r := newRunner(t, &counter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, expected context.Canceled", err)
	}
	if r.Running() {
		t.Error("clock should be stopped after cancellation")
	}
}

func TestPauseDisarmsClock(t *testing.T) {
	r := newRunner(t, &counter{})
	if !r.Start() {
		t.Fatal("Start refused")
	}
	if !r.Running() {
		t.Fatal("clock should run while playing")
	}

	if !r.Pause() {
		t.Fatal("Pause refused")
	}
	if r.Running() {
		t.Fatal("clock should stop while paused")
	}
	at := r.View().Tick
	time.Sleep(20 * time.Millisecond)
	if got := r.View().Tick; got != at {
		t.Errorf("tick advanced while paused: %d -> %d", at, got)
	}

	if !r.Resume() {
		t.Fatal("Resume refused")
	}
	if !r.Running() {
		t.Error("clock should be re-armed after Resume")
	}
}

func TestPressReachesRules(t *testing.T) {
	rules := &counter{}
	r := newRunner(t, rules)
	r.Press(core.ActionFire)
	run(t, r, 5)

	if rules.presses() != 1 {
		t.Errorf("fire presses = %d, expected 1", rules.presses())
	}
	if got := r.Counts()[core.EventShoot]; got != 1 {
		t.Errorf("shoot events = %d, expected 1", got)
	}
}

func TestAutopilotHoldsActions(t *testing.T) {
	rules := &counter{}
	pilot := func(v core.View) []core.Action {
		if v.Tick < 10 {
			return []core.Action{core.ActionFire}
		}
		return nil
	}
	r := newRunner(t, rules, WithAutopilot(pilot))
	v := run(t, r, 20)

	if rules.presses() != 1 {
		t.Errorf("a held autopilot action should press once, got %d", rules.presses())
	}
	if v.Score != 30 {
		t.Errorf("score = %d, expected 30 (10 held ticks at 2, 10 at 1)", v.Score)
	}
}

func TestRecorderObservesTicks(t *testing.T) {
	rec := telemetry.New()
	r := newRunner(t, &counter{endAt: 10}, WithRecorder(rec))
	run(t, r, 0)

	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var ticks, finished float64
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetName() {
			case "arcade_ticks_total":
				ticks += m.GetCounter().GetValue()
			case "arcade_games_finished_total":
				finished += m.GetCounter().GetValue()
			}
		}
	}
	if ticks != 10 {
		t.Errorf("ticks = %v, expected 10", ticks)
	}
	if finished != 1 {
		t.Errorf("finished = %v, expected 1", finished)
	}
}
