package core

import "math"

// RuntimeConfig is passed to a simulation at construction and reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; the platform substitutes the clock when 0
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Ticks converts a duration in milliseconds to a tick count at the
// configured rate, never less than one.
func (c RuntimeConfig) Ticks(ms float64) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return max(1, int(math.Round(ms*float64(rate)/1000)))
}

// View is the read-only header the renderer and the app shell see each tick.
type View struct {
	Game  string `json:"game"`
	Title string `json:"title"`
	Mode  Mode   `json:"mode"`
	Score int    `json:"score"`
	Lives int    `json:"lives"`
	Level int    `json:"level"`
	Tick  uint64 `json:"tick"`
}
