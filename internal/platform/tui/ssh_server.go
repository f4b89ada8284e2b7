package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves the arcade over SSH, one menu and simulation per
// session. All sessions share one Services value.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	svc    Services
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, svc Services) (*SSHServer, error) {
	if svc.Logger == nil {
		svc.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}
	srv := &SSHServer{config: cfg, svc: svc, logger: svc.Logger}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "retro-arcade needs an interactive terminal: ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	model := NewSessionModel(s.svc, cfg, sess.User())
	go func() {
		<-sess.Context().Done()
		model.active.close()
	}()

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionMiddleware logs sessions and counts them as active.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		if s.svc.Recorder != nil {
			s.svc.Recorder.SessionStarted()
			defer s.svc.Recorder.SessionEnded()
		}
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenDifficulty
	screenGame
	screenScores
)

// activeGame lets the SSH session release the running simulation when the
// connection drops without the model seeing a quit.
type activeGame struct {
	mu   sync.Mutex
	game *GameModel
}

func (a *activeGame) set(g *GameModel) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game != nil && a.game != g {
		a.game.Close()
	}
	a.game = g
}

func (a *activeGame) close() {
	a.set(nil)
}

// SessionModel manages the full arcade session flow:
// menu -> difficulty -> game -> menu, with the scoreboard off the menu.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	username string
	screen   sessionScreen

	menu       MenuModel
	difficulty DifficultyModel
	scores     ScoreboardModel
	game       *GameModel
	picked     MenuItem
	active     *activeGame

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		svc:      svc,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(svc.Store, cfg),
		active:   &activeGame{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen. Child screens quit their
// own programs when done; the session swallows those quits and switches
// screens instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.svc.Store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.active.close()
	m.game = nil
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.svc.Store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	case m.menu.Selected() != nil:
		m.picked = *m.menu.Selected()
		m.screen = screenDifficulty
		m.difficulty = NewDifficultyModel(m.picked.Title, m.config.ScreenW)
		return m, m.difficulty.Init()
	}
	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.difficulty.Update(msg)
	if dm, ok := next.(DifficultyModel); ok {
		m.difficulty = dm
	}

	switch {
	case m.difficulty.IsQuitting():
		return m.quit()
	case m.difficulty.WantsBack():
		return m.toMenu()
	case m.difficulty.Selected() != nil:
		return m.startGame(*m.difficulty.Selected())
	}
	return m, cmd
}

func (m SessionModel) startGame(preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	rules, err := registry.Create(m.picked.GameID, registry.Options{Preset: preset})
	if err != nil {
		m.svc.logger().Error("could not create game", "game", m.picked.GameID, "user", m.username, "err", err)
		return m.toMenu()
	}

	cfg := m.config
	cfg.Seed = 0
	gm := NewGameModel(rules, m.svc, cfg)
	m.game = &gm
	m.active.set(m.game)
	m.screen = screenGame
	m.svc.logger().Debug("game started", "game", rules.ID(), "user", m.username, "difficulty", preset)
	return m, gm.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		*m.game = gm
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		m.active.close()
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenDifficulty:
		return m.difficulty.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}
