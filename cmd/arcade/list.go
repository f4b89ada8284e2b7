package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var flagListJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Show every game in the arcade with its best score and number of
plays from the local scores database.`,
	Run: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "Print the list as JSON")
}

type listEntry struct {
	registry.GameInfo
	High  int `json:"high_score"`
	Plays int `json:"plays"`
}

func listEntries() []listEntry {
	var stats map[string]*storage.GameStats
	if store := openStore(); store != nil {
		var err error
		if stats, err = store.GetAllGamesStats(); err != nil {
			logger.Warn("could not read game stats", "err", err)
		}
		store.Close()
	}

	games := registry.List()
	out := make([]listEntry, len(games))
	for i, g := range games {
		out[i].GameInfo = g
		if st := stats[g.ID]; st != nil {
			out[i].High, out[i].Plays = st.HighScore, st.GamesCount
		}
	}
	return out
}

func runList(_ *cobra.Command, _ []string) {
	entries := listEntries()

	if flagListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(entries) == 0 {
		fmt.Println("No games available.")
		return
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "TITLE", "BEST", "PLAYS").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col >= 2 {
				return s.Align(lipgloss.Right)
			}
			return s
		})
	for _, e := range entries {
		best := "-"
		if e.Plays > 0 {
			best = strconv.Itoa(e.High)
		}
		t.Row(e.ID, e.Title, best, strconv.Itoa(e.Plays))
	}
	fmt.Println(t)

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
