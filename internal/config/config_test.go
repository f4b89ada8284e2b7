package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	tests := []struct {
		id       string
		fallback any
	}{
		{"snake", DefaultSnakeConfig()},
		{"pong", DefaultPongConfig()},
		{"tictactoe", DefaultTicTacToeConfig()},
		{"tetris", DefaultTetrisConfig()},
		{"frogger", DefaultFroggerConfig()},
		{"pacman", DefaultPacmanConfig()},
		{"galaga", DefaultGalagaConfig()},
		{"joust", DefaultJoustConfig()},
		{"crossy", DefaultCrossyConfig()},
		{"spacedefender", DefaultSpaceDefenderConfig()},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			data, err := defaultsFS.ReadFile("defaults/" + tc.id + ".yaml")
			if err != nil {
				t.Fatalf("missing embedded default: %v", err)
			}
			// Decode into a zero value of the same type so every field
			// must come from the file.
			parsed := reflect.New(reflect.TypeOf(tc.fallback))
			if err := yaml.Unmarshal(data, parsed.Interface()); err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !reflect.DeepEqual(parsed.Elem().Interface(), tc.fallback) {
				t.Errorf("embedded yaml differs from code default\nyaml: %+v\ncode: %+v", parsed.Elem().Interface(), tc.fallback)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "pong.yaml")
	if err := os.WriteFile(path, []byte("win_score: 11\ncpu:\n  speed: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("pong", path, DefaultPongConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WinScore != 11 || cfg.CPU.Speed != 2 {
		t.Errorf("overrides not applied: win=%d cpu=%v", cfg.WinScore, cfg.CPU.Speed)
	}
	if cfg.Ball.Radius != 8 {
		t.Errorf("unset fields should keep defaults, radius = %v", cfg.Ball.Radius)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load("pong", filepath.Join(t.TempDir(), "missing.yaml"), DefaultPongConfig()); err == nil {
		t.Error("missing explicit config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("win_score: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("pong", bad, DefaultPongConfig()); err == nil {
		t.Error("malformed explicit config should fail")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "snake.yaml"), []byte("food_points: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("snake", "", DefaultSnakeConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FoodPoints != 25 {
		t.Errorf("user config not picked up, food_points = %d", cfg.FoodPoints)
	}
}

func TestLoadFallsBackForUnknownGame(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	type custom struct {
		Value int `yaml:"value"`
	}

	cfg, err := Load("nonexistent", "", custom{Value: 7})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Value != 7 {
		t.Errorf("expected fallback, got %+v", cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
	}{
		{"", true, 0.5},
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.5},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DifficultyConfig{Enabled: true, InitialLevel: 0.5}
			if err := ApplyPreset(&cfg, tc.preset); err != nil {
				t.Fatalf("ApplyPreset: %v", err)
			}
			if cfg.Enabled != tc.enabled || cfg.InitialLevel != tc.initialLevel {
				t.Errorf("got %+v, expected enabled=%v initial=%v", cfg, tc.enabled, tc.initialLevel)
			}
		})
	}

	cfg := DifficultyConfig{}
	if err := ApplyPreset(&cfg, "insane"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestDifficultyTier(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		tier   float64
	}{
		{DifficultyEasy, 0.7},
		{DifficultyNormal, 1.0},
		{DifficultyHard, 1.4},
	}
	for _, tc := range tests {
		cfg := DifficultyConfig{}
		_ = ApplyPreset(&cfg, tc.preset)
		dm := NewDifficultyManager(cfg)
		if got := dm.Tier(); math.Abs(got-tc.tier) > 1e-9 {
			t.Errorf("%s tier = %v, expected %v", tc.preset, got, tc.tier)
		}
	}
}

func TestDifficultyScaling(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{Enabled: true, InitialLevel: 0.3})

	if got := dm.Speed(1.5, 1, 0.2); math.Abs(got-1.8) > 1e-9 {
		t.Errorf("Speed(1.5, level 1) = %v, expected 1.8", got)
	}
	if got := dm.Speed(1.5, 3, 0.2); math.Abs(got-2.4) > 1e-9 {
		t.Errorf("Speed(1.5, level 3) = %v, expected 2.4", got)
	}

	fall := IntervalConfig{BaseMs: 1000, StepMs: 100, MinMs: 100}
	for level, want := range map[int]float64{1: 1000, 2: 900, 10: 100, 15: 100} {
		if got := dm.IntervalMs(fall, level); math.Abs(got-want) > 1e-9 {
			t.Errorf("IntervalMs(level %d) = %v, expected %v", level, got, want)
		}
	}

	dm.SetEnabled(false)
	if got := dm.LevelFactor(9, 0.2); math.Abs(got-1.2) > 1e-9 {
		t.Errorf("fixed difficulty should freeze at level 1, got %v", got)
	}
	if got := dm.IntervalMs(fall, 9); got != 1000 {
		t.Errorf("fixed difficulty interval = %v, expected 1000", got)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q): %v", name, err)
		}
	}
	if _, err := ParsePreset("Easy"); err == nil {
		t.Error("preset names are case-sensitive")
	}
}
