package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m3 "github.com/vovakirdan/match3-arcade/internal/games/match3/core"
)

// LoadMatch3 loads match-3 configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
func LoadMatch3(customPath string) (Match3Config, error) {
	// Missing keys keep their default value
	cfg := DefaultMatch3Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "match3.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMatch3YAML, &cfg); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ToEngineConfig converts the YAML config to engine parameters.
func (c Match3Config) ToEngineConfig(seed int64) (m3.Config, error) {
	cfg := m3.Config{
		BasePieceValue:      c.Scoring.BasePieceValue,
		TileHitPoints:       c.Rules.TileHitPoints,
		RefillDelay:         seconds(c.Timing.RefillDelay),
		ShuffleDelay:        seconds(c.Timing.ShuffleDelay),
		Detonate:            c.Rules.DetonateBombs,
		MaxPlacementRetries: c.Rules.MaxPlacementRetries,
		MaxShuffleAttempts:  c.Rules.MaxShuffleAttempts,
		MaxRegenerations:    c.Rules.MaxRegenerations,
		Seed:                seed,
	}
	for _, name := range c.Pieces.Palette {
		kind, ok := m3.ParseKind(name)
		if !ok {
			return m3.Config{}, fmt.Errorf("config: unknown piece kind %q", name)
		}
		cfg.Palette = append(cfg.Palette, kind)
	}
	if c.Rules.TileHitPoints < 1 {
		return m3.Config{}, fmt.Errorf("config: tile_hit_points must be at least 1, got %d", c.Rules.TileHitPoints)
	}
	if c.Timing.RefillDelay < 0 || c.Timing.ShuffleDelay < 0 {
		return m3.Config{}, fmt.Errorf("config: timing delays must not be negative")
	}
	if err := cfg.Validate(); err != nil {
		return m3.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// PlainLayout returns a board without blank or breakable cells sized from
// the board section.
func (c Match3Config) PlainLayout() m3.Layout {
	return m3.Layout{
		Width:  c.Board.Width,
		Height: c.Board.Height,
		Offset: c.Board.Offset,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
