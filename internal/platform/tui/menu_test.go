package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// A second game so the pickers have somewhere to move. It sorts after
// "tuitest", which stays first.
func init() {
	registry.Register("tuiturn", "TUI Turn", func(registry.Options) (core.Rules, error) {
		return tally{}, nil
	})
}

func menuSend(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	last := len(m.items) - 1

	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != last {
		t.Errorf("up from the top: cursor %d, expected %d", m.cursor, last)
	}
	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Errorf("down from the bottom: cursor %d, expected 0", m.cursor)
	}
	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	if m.cursor != last {
		t.Errorf("end: cursor %d", m.cursor)
	}
	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyHome})
	if m.cursor != 0 {
		t.Errorf("home: cursor %d", m.cursor)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := menuSend(t, m, enterKey)
	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should pick the highlighted game")
	}
	if m.Selected().GameID != "tuiturn" {
		t.Errorf("selected %q, expected tuiturn", m.Selected().GameID)
	}
}

func TestMenuShowsStats(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []struct{ score, level int }{{40, 2}, {70, 3}} {
		if _, err := store.SaveScore("tuitest", s.score, s.level); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	view := m.View()
	for _, want := range []string{"HI     70", "2 plays", "best level 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = menuSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.View(), "Not played yet.") {
		t.Error("an unplayed game should say so")
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	m, _ = menuSend(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 || cfg.TickRate != 30 {
		t.Errorf("config after resize = %+v", cfg)
	}
}

func boardSend(t *testing.T, m ScoreboardModel, msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func TestScoreboardOrders(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{50, 90, 10} {
		if _, err := store.SaveScore("tuitest", score, 1); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if got := m.table.Rows()[0][1]; got != "90" {
		t.Errorf("top order starts with %s, expected 90", got)
	}
	if !strings.Contains(m.View(), "HIGH SCORES - TUI Test") {
		t.Error("title should name the order and the game")
	}

	m, _ = boardSend(t, m, runeKey("o"))
	if got := m.table.Rows()[0][1]; got != "10" {
		t.Errorf("recent order starts with %s, expected 10", got)
	}
	if !strings.Contains(m.View(), "RECENT - TUI Test") {
		t.Error("title should follow the order")
	}
}

func TestScoreboardSwitchesGames(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("tuitest", 30, 1); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 60, 24)
	m, _ = boardSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.games[m.game].ID != "tuiturn" || len(m.scores) != 0 {
		t.Fatalf("tab: game %s with %d scores", m.games[m.game].ID, len(m.scores))
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("an empty board should say so")
	}

	m, _ = boardSend(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = boardSend(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.games[m.game].ID != "tuiturn" {
		t.Errorf("shift+tab should wrap, at %s", m.games[m.game].ID)
	}
}

func TestScoreboardExit(t *testing.T) {
	m, cmd := boardSend(t, NewScoreboardModel(nil, 80, 24), runeKey("b"))
	if !m.IsGoingBack() || m.IsQuitting() || cmd == nil {
		t.Error("b should go back")
	}
	m, cmd = boardSend(t, NewScoreboardModel(nil, 80, 24), runeKey("q"))
	if !m.IsQuitting() || m.IsGoingBack() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("a closed board renders nothing")
	}
}
