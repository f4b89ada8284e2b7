package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/platform/web"
	"github.com/vovakirdan/retro-arcade/internal/storage"
	"github.com/vovakirdan/retro-arcade/internal/telemetry"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagCORSOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games, and
optionally an HTTP server with the score API, Prometheus metrics and a
live websocket feed of game events.

Each SSH connection gets their own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

HTTP endpoints:
  GET /healthz              - Liveness
  GET /metrics              - Prometheus metrics
  GET /api/games            - Registered games
  GET /api/scores/{game}    - Scores (?limit=N&order=top|recent)
  GET /api/stats            - Per-game statistics
  GET /ws/events            - Live game events (websocket)

Examples:
  arcade serve                           # SSH on :23234 and HTTP on :8080
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --http ""                 # SSH only
  arcade serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address, empty to disable")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting a session")
	serveCmd.Flags().StringSliceVar(&flagCORSOrigins, "cors-origin", nil, "Allowed CORS origins for the HTTP API (default localhost)")
}

func runServe(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("could not open scores database", "path", flagDBPath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	rec := telemetry.New()
	svc := tui.Services{
		Store:    store,
		Recorder: rec,
		Logger:   logger.WithPrefix("arcade-ssh"),
	}

	var httpServer *web.Server
	if flagHTTPAddr != "" {
		httpServer = web.NewServer(flagHTTPAddr, web.RouterConfig{
			Scores:      store,
			Recorder:    rec,
			Logger:      logger.WithPrefix("arcade-http"),
			CORSOrigins: flagCORSOrigins,
		})
		svc.Sinks = append(svc.Sinks, httpServer.Hub())
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = flagIdleTimeout
	sshCfg.TickRate = flagFPS

	sshServer, err := tui.NewSSHServer(sshCfg, svc)
	if err != nil {
		logger.Error("could not create SSH server", "err", err)
		os.Exit(1)
	}

	logger.Info("arcade server starting", "ssh", flagSSHAddr, "http", flagHTTPAddr, "db", flagDBPath)

	var (
		wg     sync.WaitGroup
		failed bool
		mu     sync.Mutex
	)
	serve := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				logger.Error("server failed", "server", name, "err", err)
				mu.Lock()
				failed = true
				mu.Unlock()
				stop()
			}
		}()
	}

	serve("ssh", sshServer.ListenAndServe)
	if httpServer != nil {
		serve("http", httpServer.ListenAndServe)
	}
	wg.Wait()

	logger.Info("arcade server stopped")
	if failed {
		store.Close()
		os.Exit(1)
	}
}
