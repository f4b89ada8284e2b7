// Package registry maps game IDs to factories. Each game package
// registers itself from init, so importing it is enough to make it
// playable.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Options carries per-instance settings into a factory.
type Options struct {
	ConfigPath string                  // explicit YAML file, empty for the search chain
	Preset     config.DifficultyPreset // empty keeps the loaded difficulty
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Factory creates a fresh, independent game instance.
type Factory func(opts Options) (core.Rules, error)

type entry struct {
	title string
	build Factory
}

var (
	mu    sync.RWMutex
	games = make(map[string]entry)
)

// Register adds a game. It panics on a duplicate ID.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := games[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{title: title, build: f}
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := games[id]
	return e, ok
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(games))
	for id, e := range games {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of game id.
func Create(id string, opts Options) (core.Rules, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	g, err := e.build(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %s: %w", id, err)
	}
	return g, nil
}

// Title is the display name of id, empty when unknown.
func Title(id string) string {
	e, _ := lookup(id)
	return e.title
}

func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}
