package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/runner"
)

var (
	flagSimTicks    uint64
	flagSimDuration time.Duration
	flagSimInterval time.Duration
	flagSimHold     []string
	flagSimSize     []int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless and print the outcome",
	Long: `Run a game without a terminal UI on its own clock, optionally holding
actions down, then print the final frame, the score and the events seen.

Serving games are served automatically.

Examples:
  arcade sim snake --ticks 600
  arcade sim spacedefender --hold fire --duration 30s --seed 7
  arcade sim tetris --interval 1ms --ticks 5000 --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagSimTicks, "ticks", 600, "Stop after this many ticks (0 = until game over)")
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 0, "Stop after this much wall time (0 = no limit)")
	simCmd.Flags().DurationVar(&flagSimInterval, "interval", 0, "Time between ticks (default 1/fps)")
	simCmd.Flags().StringSliceVar(&flagSimHold, "hold", nil, "Actions to keep pressed: up, down, left, right, fire, alt")
	simCmd.Flags().IntSliceVar(&flagSimSize, "size", []int{80, 24}, "Screen width,height for the final frame")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the final score to the database")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func parseActions(names []string) ([]core.Action, error) {
	held := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire, core.ActionAlt}
	var out []core.Action
	for _, name := range names {
		i := slices.IndexFunc(held, func(a core.Action) bool {
			return strings.EqualFold(a.String(), strings.TrimSpace(name))
		})
		if i < 0 {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		out = append(out, held[i])
	}
	return out, nil
}

func runSim(_ *cobra.Command, args []string) {
	gameID := args[0]

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	hold, err := parseActions(flagSimHold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(flagSimSize) != 2 || flagSimSize[0] <= 0 || flagSimSize[1] <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --size takes width,height")
		os.Exit(1)
	}

	rules, err := registry.Create(gameID, registry.Options{ConfigPath: flagConfig, Preset: preset})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  flagSimSize[0],
		ScreenH:  flagSimSize[1],
		TickRate: flagFPS,
		Seed:     seed,
	}
	sim := core.New(rules, cfg, core.WithLogger(logger))
	defer sim.Close()

	opts := []runner.Option{runner.WithLogger(logger), runner.WithAutoServe()}
	if len(hold) > 0 {
		opts = append(opts, runner.WithAutopilot(func(core.View) []core.Action { return hold }))
	}
	if flagSimInterval > 0 {
		opts = append(opts, runner.WithInterval(flagSimInterval))
	}
	r := runner.New(sim, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if flagSimDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagSimDuration)
		defer cancel()
	}

	logger.Debug("simulating", "game", gameID, "seed", seed, "ticks", flagSimTicks, "hold", flagSimHold)
	v, err := r.Run(ctx, flagSimTicks)
	r.Stop()
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	sim.Render(screen)
	fmt.Println(screen.String())
	fmt.Println()
	fmt.Printf("%s  seed %d  tick %d  mode %s\n", rules.Title(), seed, v.Tick, v.Mode)
	fmt.Printf("score %d  level %d  lives %d\n", v.Score, v.Level, v.Lives)

	counts := r.Counts()
	kinds := make([]core.EventKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-10s %d\n", k, counts[k])
	}

	if flagSimSave && v.Score > 0 {
		store := openStore()
		if store == nil {
			os.Exit(1)
		}
		defer store.Close()
		if _, err := store.SaveScore(v.Game, v.Score, v.Level); err != nil {
			logger.Error("could not save score", "err", err)
		}
	}
}
