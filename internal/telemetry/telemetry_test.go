package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// value returns the value of the counter, gauge or histogram count named
// name whose labels include all of want.
func value(t *testing.T, r *Recorder, name string, want map[string]string) float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}

func TestRecordCountsEvents(t *testing.T) {
	r := New()
	events := []core.Event{
		{Game: "snake", Kind: core.EventScored, Value: 10},
		{Game: "snake", Kind: core.EventScored, Value: 10},
		{Game: "snake", Kind: core.EventHit},
		{Game: "pong", Kind: core.EventScored, Value: 1},
		{Game: "snake", Kind: core.EventGameOver, Value: 20},
	}
	for _, e := range events {
		r.Record(e)
	}

	tests := []struct {
		name   string
		metric string
		labels map[string]string
		want   float64
	}{
		{"snake scored", "arcade_events_total", map[string]string{"game": "snake", "kind": "scored"}, 2},
		{"snake hit", "arcade_events_total", map[string]string{"game": "snake", "kind": "hit"}, 1},
		{"pong scored", "arcade_events_total", map[string]string{"game": "pong", "kind": "scored"}, 1},
		{"finished", "arcade_games_finished_total", map[string]string{"game": "snake"}, 1},
		{"final score samples", "arcade_final_score", map[string]string{"game": "snake"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := value(t, r, tc.metric, tc.labels); got != tc.want {
				t.Errorf("%s%v = %v, expected %v", tc.metric, tc.labels, got, tc.want)
			}
		})
	}
}

func TestSessionsGauge(t *testing.T) {
	r := New()
	r.SessionStarted()
	r.SessionStarted()
	r.SessionEnded()
	if got := value(t, r, "arcade_sessions_active", nil); got != 1 {
		t.Errorf("sessions = %v, expected 1", got)
	}
}

func TestObserveTick(t *testing.T) {
	r := New()
	r.ObserveTick("tetris", time.Millisecond)
	r.ObserveTick("tetris", 2*time.Millisecond)

	if got := value(t, r, "arcade_ticks_total", map[string]string{"game": "tetris"}); got != 2 {
		t.Errorf("ticks = %v, expected 2", got)
	}
	if got := value(t, r, "arcade_tick_duration_seconds", map[string]string{"game": "tetris"}); got != 2 {
		t.Errorf("duration samples = %v, expected 2", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New()
	r.Record(core.Event{Game: "galaga", Kind: core.EventShoot})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `arcade_events_total{game="galaga",kind="shoot"} 1`) {
		t.Errorf("metrics output missing the event counter:\n%s", body)
	}
}

func TestNilRecorderTimedStillTicks(t *testing.T) {
	var r *Recorder
	sim := core.New(stubRules{}, core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60, Seed: 1})
	t.Cleanup(sim.Close)
	sim.Start()
	r.Timed(sim, core.NewInputFrame())
	if sim.View().Tick != 1 {
		t.Errorf("tick = %d, expected 1", sim.View().Tick)
	}
}

type stubRules struct{}

func (stubRules) ID() string                        { return "stub" }
func (stubRules) Title() string                     { return "Stub" }
func (stubRules) Params() core.Params               { return core.Params{Lives: 1} }
func (stubRules) Setup(*core.Ctx)                   {}
func (stubRules) Update(*core.Ctx, core.InputFrame) {}
func (stubRules) Render(*core.Screen, core.View)    {}
