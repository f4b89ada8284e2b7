// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. Gen identifies the tick loop that
// scheduled it; a loop is abandoned by bumping the model's generation.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd schedules the next tick of loop gen at the given rate.
func tickCmd(gen uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
