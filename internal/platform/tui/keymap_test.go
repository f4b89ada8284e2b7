package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"w", runeKey("w"), core.ActionUp, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey("s"), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, false},
		{"x", runeKey("x"), core.ActionAlt, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"z is alt too", runeKey("z"), core.ActionAlt, false},
		{"unbound", runeKey("y"), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{runeKey("b"), MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyHome}, MenuActionFirst},
		{runeKey("G"), MenuActionLast},
		{runeKey("?"), MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestBind(t *testing.T) {
	km := NewKeyMapper()
	km.Bind("f", core.ActionFire)
	km.Bind("x", core.ActionNone)

	if a, _ := km.MapKey(runeKey("f")); a != core.ActionFire {
		t.Errorf("f = %v, expected fire", a)
	}
	if a, _ := km.MapKey(runeKey("x")); a != core.ActionNone {
		t.Errorf("x = %v, expected unbound", a)
	}
	if a, _ := NewKeyMapper().MapKey(runeKey("x")); a != core.ActionAlt {
		t.Error("Bind leaked into the default bindings")
	}
}
