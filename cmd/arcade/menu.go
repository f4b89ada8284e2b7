package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, then pick a
difficulty. Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Annotations: map[string]string{interactive: "true"},
	Run:         runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	svc := tui.Services{Store: store, Logger: logger}
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		gameID := menuResult.GameID
		preset, quit, err := tui.RunDifficultySelector(registry.Title(gameID), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if quit {
			return
		}
		if preset == nil {
			continue
		}

		rules, err := registry.Create(gameID, registry.Options{Preset: *preset})
		if err != nil {
			logger.Error("could not create game", "game", gameID, "err", err)
			continue
		}

		logger.Info("playing", "game", gameID, "difficulty", *preset)
		back, err := tui.Run(rules, svc, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return
		}
	}
}
