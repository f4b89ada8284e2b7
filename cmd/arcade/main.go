// arcade is a terminal arcade of retro games, playable locally or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH and HTTP servers for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade sim <game>        - Run a game headless and print the result
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/retro-arcade/internal/games/crossy"
	_ "github.com/vovakirdan/retro-arcade/internal/games/frogger"
	_ "github.com/vovakirdan/retro-arcade/internal/games/galaga"
	_ "github.com/vovakirdan/retro-arcade/internal/games/joust"
	_ "github.com/vovakirdan/retro-arcade/internal/games/pacman"
	_ "github.com/vovakirdan/retro-arcade/internal/games/pong"
	_ "github.com/vovakirdan/retro-arcade/internal/games/snake"
	_ "github.com/vovakirdan/retro-arcade/internal/games/spacedefender"
	_ "github.com/vovakirdan/retro-arcade/internal/games/tetris"
	_ "github.com/vovakirdan/retro-arcade/internal/games/tictactoe"
)

// interactive marks commands that own the terminal. Their logs go to a
// file unless --log-file says otherwise.
const interactive = "interactive"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Retro Arcade - Play retro games in your terminal",
	Long: `Retro Arcade is a terminal-based gaming platform that lets you play
classic-style games directly in your terminal or over SSH.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server (and HTTP API) for remote play
  scores   - View high scores
  sim      - Run a game headless

Examples:
  arcade list
  arcade play pacman
  arcade menu
  arcade serve --ssh :2222 --http :8080
  arcade scores tetris
  arcade sim snake --ticks 600`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (interactive commands default to ~/.arcade/arcade.log)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	path := flagLogFile
	if path == "" && cmd.Annotations[interactive] == "true" {
		if home, herr := os.UserHomeDir(); herr == nil {
			path = filepath.Join(home, ".arcade", "arcade.log")
		}
	}

	var out io.Writer = os.Stderr
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "arcade",
	})
	log.SetDefault(logger)
	return nil
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still run without it, so a
// failure is only logged.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
