package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresClear  bool
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

Examples:
  arcade scores tetris
  arcade scores pacman --limit 25
  arcade scores pong --recent
  arcade scores snake --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest games instead of the best")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	title := registry.Title(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		logger.Info("scores cleared", "game", gameID)
		fmt.Printf("Cleared all scores for %s.\n", title)
		return
	}

	heading, fetch := "High Scores", store.TopScores
	if flagScoresRecent {
		heading, fetch = "Recent Games", store.RecentScores
	}
	scores, err := fetch(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, entry.Score, entry.Level, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	}
}
