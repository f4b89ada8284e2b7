package config

import "math"

// DifficultyManager turns a difficulty section into speed multipliers.
//
// The tier multiplier comes from the preset: normal is exactly 1 so the
// defaults play at their configured speeds, easy is slower, hard faster.
// The level factor grows linearly with the level while progression is
// enabled and stays at its level-1 value when it is not.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables per-level scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether per-level scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Tier returns the preset multiplier: 0.7 easy, 1.0 normal, 1.4 hard.
func (d *DifficultyManager) Tier() float64 {
	return 1 + d.initialLevel - InitialLevelForPreset(DifficultyNormal)
}

// LevelFactor returns 1 + level*perLevel. With scaling disabled the
// level is treated as 1.
func (d *DifficultyManager) LevelFactor(level int, perLevel float64) float64 {
	if !d.cfg.Enabled {
		level = 1
	}
	return 1 + float64(level)*perLevel
}

// Speed scales a base per-tick speed by the tier and the level factor.
func (d *DifficultyManager) Speed(base float64, level int, perLevel float64) float64 {
	return base * d.Tier() * d.LevelFactor(level, perLevel)
}

// IntervalMs returns an interval that shortens by ic.StepMs per level
// above 1 and never drops below ic.MinMs. Harder tiers shorten the base.
func (d *DifficultyManager) IntervalMs(ic IntervalConfig, level int) float64 {
	if !d.cfg.Enabled {
		level = 1
	}
	ms := ic.BaseMs/d.Tier() - float64(level-1)*ic.StepMs
	return math.Max(ic.MinMs, ms)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
