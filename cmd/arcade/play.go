package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD - Move
  Space       - Fire / action
  X           - Alternate action
  Enter       - Start / serve
  P           - Pause
  R           - Restart (paused or after game over)
  Esc/B       - Pause, then leave
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play snake
  arcade play pacman --difficulty easy
  arcade play tetris --difficulty hard --seed 42
  arcade play pong --config ./my-pong.yaml`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{interactive: "true"},
	Run:         runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rules, err := registry.Create(gameID, registry.Options{ConfigPath: flagConfig, Preset: preset})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Continue without storage - game still works
	store := openStore()
	logger.Info("playing", "game", gameID, "difficulty", preset, "seed", flagSeed)

	_, runErr := tui.Run(rules, tui.Services{Store: store, Logger: logger}, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
