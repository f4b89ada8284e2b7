package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/storage"
	"github.com/vovakirdan/retro-arcade/internal/telemetry"
)

// keyHold is how long a key counts as held after its last press or
// repeat. Terminals never report key-up.
const keyHold = 150 * time.Millisecond

// EventSink receives every event of a simulation. *telemetry.Recorder and
// *web.Hub satisfy it.
type EventSink interface {
	Attach(sim *core.Simulation) (detach func())
}

// Services are shared by all games of a process or SSH server. Every
// field is optional.
type Services struct {
	Store         *storage.Store
	Recorder      *telemetry.Recorder
	Sinks         []EventSink
	Logger        *log.Logger
	ScreenshotDir string // defaults to ~/.arcade/screenshots
}

func (s Services) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// GameModel runs one simulation inside a Bubble Tea program.
//
// Ticks come from a self-rescheduling tea.Tick that only runs while the
// simulation is playing. Every loop carries a generation; pausing,
// resetting or leaving the game bumps it so ticks already in flight are
// dropped.
type GameModel struct {
	rules  core.Rules
	sim    *core.Simulation
	latch  *core.Latch
	screen *core.Screen
	config core.RuntimeConfig
	svc    Services
	keys   *KeyMapper
	detach []func()

	gen     uint64
	ticking bool

	high       int
	scoreSaved bool
	status     string
	quitting   bool
	backToMenu bool
	quitOnBack bool // the program only runs this game
}

// NewGameModel creates a model running rules. A zero seed is replaced by
// the current time.
func NewGameModel(rules core.Rules, svc Services, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := GameModel{
		rules:  rules,
		latch:  core.NewLatch(),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		svc:    svc,
		keys:   NewKeyMapper(),
	}
	m.newSimulation()

	if svc.Store != nil {
		high, err := svc.Store.HighScore(rules.ID())
		if err != nil {
			svc.logger().Warn("could not load high score", "game", rules.ID(), "err", err)
		}
		m.high = high
	}
	return m
}

// newSimulation replaces the simulation and reattaches the event sinks.
func (m *GameModel) newSimulation() {
	m.release()
	m.sim = core.New(m.rules, m.config, core.WithLogger(m.svc.logger()))
	if m.svc.Recorder != nil {
		m.detach = append(m.detach, m.svc.Recorder.Attach(m.sim))
	}
	for _, sink := range m.svc.Sinks {
		m.detach = append(m.detach, sink.Attach(m.sim))
	}
}

func (m *GameModel) release() {
	for _, d := range m.detach {
		d()
	}
	m.detach = nil
	if m.sim != nil {
		m.sim.Close()
	}
}

// Close detaches the event sinks and stops the simulation's hooks.
func (m GameModel) Close() {
	m.release()
}

// Init does nothing; the game waits in the start mode for Enter.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.status = m.saveScreenshot()
		return m, nil
	}
	m.status = ""

	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.stopTicking()
		return m, tea.Quit
	}

	mode := m.sim.Mode()
	switch action {
	case core.ActionConfirm:
		switch mode {
		case core.ModeStart:
			m.sim.Start()
		case core.ModeServing:
			m.sim.Serve()
		}
	case core.ActionPause:
		m.sim.TogglePause()
	case core.ActionRestart:
		if mode == core.ModeGameOver || mode == core.ModePaused {
			m.restart()
		}
	case core.ActionBack:
		if mode == core.ModePlaying {
			m.sim.Pause()
		} else {
			m.backToMenu = true
			m.stopTicking()
			if m.quitOnBack {
				return m, tea.Quit
			}
			return m, nil
		}
	case core.ActionNone:
	default:
		m.latch.Press(action)
	}
	return m, m.arm()
}

func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.ticking {
		return m, nil
	}

	m.latch.ReleaseStale(keyHold)
	m.svc.Recorder.Timed(m.sim, m.latch.Snapshot())

	if m.sim.Mode() == core.ModeGameOver {
		m.saveScore()
	}
	if m.sim.Mode() == core.ModePlaying {
		return m, tickCmd(m.gen, m.config.TickRate)
	}
	return m, m.arm()
}

// arm starts a tick loop when the simulation entered playing and abandons
// the current one when it left.
func (m *GameModel) arm() tea.Cmd {
	playing := m.sim.Mode() == core.ModePlaying
	switch {
	case playing && !m.ticking:
		m.gen++
		m.ticking = true
		return tickCmd(m.gen, m.config.TickRate)
	case !playing && m.ticking:
		m.stopTicking()
	}
	return nil
}

func (m *GameModel) stopTicking() {
	m.gen++
	m.ticking = false
}

// restart begins a fresh game with a new seed.
func (m *GameModel) restart() {
	m.stopTicking()
	m.config.Seed = time.Now().UnixNano()
	m.newSimulation()
	m.latch.Reset()
	m.scoreSaved = false
	m.sim.Start()
}

// saveScore records a finished game once.
func (m *GameModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	v := m.sim.View()
	m.high = max(m.high, v.Score)
	if m.svc.Store == nil || v.Score <= 0 {
		return
	}
	if _, err := m.svc.Store.SaveScore(v.Game, v.Score, v.Level); err != nil {
		m.svc.logger().Warn("could not save score", "game", v.Game, "score", v.Score, "err", err)
	}
}

// saveScreenshot writes the current screen as plain text and returns a
// status line for the player.
func (m *GameModel) saveScreenshot() string {
	m.sim.Render(m.screen)

	dir := m.svc.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed"
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("could not create screenshot directory", "dir", dir, "err", err)
		return "screenshot failed"
	}

	name := fmt.Sprintf("%s_%s.txt", m.sim.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.logger().Warn("could not save screenshot", "path", path, "err", err)
		return "screenshot failed"
	}
	return "saved " + path
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.sim.Render(m.screen)
	high := max(m.high, m.sim.View().Score)
	overlayRight(m.screen, 0, fmt.Sprintf("HI %06d", high), core.ColorGray)
	if m.status != "" {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.status, core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// Simulation exposes the running simulation for reading.
func (m GameModel) Simulation() *core.Simulation {
	return m.sim
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays rules in the terminal until the user quits or goes back.
// It reports whether the user asked for the menu.
func Run(rules core.Rules, svc Services, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	if svc.Recorder != nil {
		svc.Recorder.SessionStarted()
		defer svc.Recorder.SessionEnded()
	}

	model := NewGameModel(rules, svc, cfg)
	model.quitOnBack = true
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if m, ok := final.(GameModel); ok {
		defer m.Close()
		return m.BackToMenu() && err == nil, err
	}
	model.Close()
	return false, err
}
