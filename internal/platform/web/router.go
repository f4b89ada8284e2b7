// Package web serves the arcade's read-only HTTP API: registered games,
// high scores, Prometheus metrics and a live websocket event feed.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
	"github.com/vovakirdan/retro-arcade/internal/telemetry"
)

const maxScoreLimit = 100

// ScoreSource is the part of the score store the API reads.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
}

// RouterConfig holds the router's dependencies. Scores, Recorder and Hub
// are optional; their routes answer 503 when unset.
type RouterConfig struct {
	Scores   ScoreSource
	Recorder *telemetry.Recorder
	Hub      *Hub
	Logger   *log.Logger

	// RateLimiter is used as is when set, otherwise one is built from
	// RateLimitConfig or DefaultRateLimitConfig. The caller stops it.
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins defaults to localhost on any port.
	CORSOrigins []string
}

type handlers struct {
	scores ScoreSource
	logger *log.Logger
}

// NewRouter builds the router. It starts no goroutines apart from the
// limiter's cleanup loop when it has to create one.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	limiter := cfg.RateLimiter
	if limiter == nil {
		rc := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rc = *cfg.RateLimitConfig
		}
		limiter = NewIPRateLimiter(rc)
	}
	r.Use(limiter.Middleware)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handlers{scores: cfg.Scores, logger: logger}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.Recorder != nil {
		r.Handle("/metrics", cfg.Recorder.Handler())
	} else {
		r.Get("/metrics", unavailable)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.games)
		r.Get("/scores/{game}", h.topScores)
		r.Get("/stats", h.stats)
	})

	if cfg.Hub != nil {
		r.Handle("/ws/events", cfg.Hub)
	} else {
		r.Get("/ws/events", unavailable)
	}

	return r
}

func (h *handlers) games(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

func (h *handlers) topScores(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		unavailable(w, r)
		return
	}
	game := chi.URLParam(r, "game")
	if !registry.Exists(game) {
		writeError(w, http.StatusNotFound, registry.ErrUnknownGame)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(n, maxScoreLimit)
	}

	fetch := h.scores.TopScores
	switch order := r.URL.Query().Get("order"); order {
	case "", "top":
	case "recent":
		fetch = h.scores.RecentScores
	default:
		writeError(w, http.StatusBadRequest, errors.New("order must be top or recent"))
		return
	}

	entries, err := fetch(game, limit)
	if err != nil {
		h.logger.Error("load scores", "game", game, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot load scores"))
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game":   game,
		"scores": entries,
	})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		unavailable(w, r)
		return
	}
	stats, err := h.scores.GetAllGamesStats()
	if err != nil {
		h.logger.Error("game stats", "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("cannot load stats"))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusServiceUnavailable, errors.New("not enabled"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
