package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// MenuAction is what a key means on the menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
	MenuActionFirst
	MenuActionLast
)

// Keys are bubbletea key strings ("up", "ctrl+c", " ").
var defaultGameKeys = map[string]core.Action{
	"q":      core.ActionQuit,
	"ctrl+c": core.ActionQuit,
	"w":      core.ActionUp,
	"up":     core.ActionUp,
	"s":      core.ActionDown,
	"down":   core.ActionDown,
	"a":      core.ActionLeft,
	"left":   core.ActionLeft,
	"d":      core.ActionRight,
	"right":  core.ActionRight,
	" ":      core.ActionFire,
	"x":      core.ActionAlt,
	"z":      core.ActionAlt,
	"enter":  core.ActionConfirm,
	"b":      core.ActionBack,
	"esc":    core.ActionBack,
	"p":      core.ActionPause,
	"r":      core.ActionRestart,
}

var defaultMenuKeys = map[string]MenuAction{
	"q":      MenuActionQuit,
	"ctrl+c": MenuActionQuit,
	"w":      MenuActionUp,
	"up":     MenuActionUp,
	"k":      MenuActionUp,
	"s":      MenuActionDown,
	"down":   MenuActionDown,
	"j":      MenuActionDown,
	"home":   MenuActionFirst,
	"g":      MenuActionFirst,
	"end":    MenuActionLast,
	"G":      MenuActionLast,
	"enter":  MenuActionSelect,
	" ":      MenuActionSelect,
	"b":      MenuActionBack,
	"esc":    MenuActionBack,
	"tab":    MenuActionScoreboard,
}

// KeyMapper turns key messages into game and menu actions.
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper returns a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{
		game: make(map[string]core.Action, len(defaultGameKeys)),
		menu: make(map[string]MenuAction, len(defaultMenuKeys)),
	}
	for k, a := range defaultGameKeys {
		km.game[k] = a
	}
	for k, a := range defaultMenuKeys {
		km.menu[k] = a
	}
	return km
}

// Bind maps key to a game action, replacing any previous binding.
// Binding core.ActionNone removes the key.
func (km *KeyMapper) Bind(key string, action core.Action) {
	if action == core.ActionNone {
		delete(km.game, key)
		return
	}
	km.game[key] = action
}

// MapKey returns the game action for msg and whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.game[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return km.menu[msg.String()]
}
