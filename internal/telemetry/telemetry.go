// Package telemetry exports Prometheus metrics for running simulations.
//
// Label values are bounded: game IDs come from the registry and event
// kinds from core, never from user input.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Recorder owns one metrics registry.
type Recorder struct {
	reg *prometheus.Registry

	ticks        *prometheus.CounterVec
	tickDuration *prometheus.HistogramVec
	events       *prometheus.CounterVec
	finished     *prometheus.CounterVec
	finalScore   *prometheus.HistogramVec
	sessions     prometheus.Gauge
}

// New creates a recorder with its own registry, including the Go runtime
// and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		ticks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_ticks_total",
			Help: "Simulation ticks run while playing",
		}, []string{"game"}),
		tickDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arcade_tick_duration_seconds",
			Help:    "Time spent in one simulation tick",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"game"}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_events_total",
			Help: "Events emitted by the update stage",
		}, []string{"game", "kind"}),
		finished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_games_finished_total",
			Help: "Games that reached game over",
		}, []string{"game"}),
		finalScore: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arcade_final_score",
			Help:    "Score at game over",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"game"}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "arcade_sessions_active",
			Help: "Connected interactive sessions",
		}),
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// ObserveTick records one tick of game and how long it took.
func (r *Recorder) ObserveTick(game string, d time.Duration) {
	r.ticks.WithLabelValues(game).Inc()
	r.tickDuration.WithLabelValues(game).Observe(d.Seconds())
}

// Record counts one event. It has the signature of a simulation hook.
func (r *Recorder) Record(e core.Event) {
	r.events.WithLabelValues(e.Game, e.Kind.String()).Inc()
	if e.Kind == core.EventGameOver {
		r.finished.WithLabelValues(e.Game).Inc()
		r.finalScore.WithLabelValues(e.Game).Observe(float64(e.Value))
	}
}

// Attach subscribes the recorder to sim's hooks.
func (r *Recorder) Attach(sim *core.Simulation) (detach func()) {
	return sim.Subscribe(r.Record)
}

// SessionStarted and SessionEnded track interactive sessions.
func (r *Recorder) SessionStarted() { r.sessions.Inc() }

func (r *Recorder) SessionEnded() { r.sessions.Dec() }

// Timed runs one simulation tick and records its duration when the
// simulation was playing.
func (r *Recorder) Timed(sim *core.Simulation, in core.InputFrame) []core.Event {
	if r == nil {
		return sim.Tick(in)
	}
	playing := sim.Mode() == core.ModePlaying
	start := time.Now()
	events := sim.Tick(in)
	if playing {
		r.ObserveTick(sim.ID(), time.Since(start))
	}
	return events
}
