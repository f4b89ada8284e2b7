package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned for a difficulty name outside the preset list.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// Load reads the configuration for game id into a value of type T.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml ->
// ./configs/<id>.yaml -> embedded default -> fallback.
//
// Only an explicit customPath that cannot be read or parsed is an error;
// broken files further down the chain are skipped.
func Load[T any](id, customPath string, fallback T) (T, error) {
	filename := id + ".yaml"

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	if data, err := defaultsFS.ReadFile("defaults/" + filename); err == nil {
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return fallback, nil
}

func tryFile[T any](path string, fallback T) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback, false
	}
	cfg := fallback
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ParsePreset validates a difficulty name. The empty string means "keep
// the loaded configuration" and is returned unchanged.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// ApplyPreset modifies the difficulty section based on a preset.
// The empty preset leaves it untouched.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) error {
	if _, err := ParsePreset(string(preset)); err != nil {
		return err
	}
	switch preset {
	case "":
		return nil
	case DifficultyFixed:
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
	return nil
}
