package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const shutdownTimeout = 5 * time.Second

// Server runs the router and the event hub together.
type Server struct {
	hub     *Hub
	limiter *IPRateLimiter
	http    *http.Server
	logger  *log.Logger
}

// NewServer builds a server listening on addr. cfg.Hub is created when
// nil so the event feed is always available.
func NewServer(addr string, cfg RouterConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Hub == nil {
		cfg.Hub = NewHub(cfg.Logger)
	}
	if cfg.RateLimiter == nil {
		rc := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rc = *cfg.RateLimitConfig
		}
		cfg.RateLimiter = NewIPRateLimiter(rc)
	}
	return &Server{
		hub:     cfg.Hub,
		limiter: cfg.RateLimiter,
		logger:  cfg.Logger,
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(cfg),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Hub returns the event hub sessions publish to.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		errc <- s.http.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}
