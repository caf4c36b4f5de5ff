package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	m3 "github.com/vovakirdan/match3-arcade/internal/games/match3/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultMatch3Config()
	var parsed Match3Config
	if err := yaml.Unmarshal(GetDefaultYAML("match3"), &parsed); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, cfg) {
		t.Errorf("embedded defaults drifted from DefaultMatch3Config:\n%+v\n%+v", parsed, cfg)
	}
	if GetDefaultYAML("unknown") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match3.yaml")
	data := []byte(`
board:
  width: 6
  height: 7
pieces:
  palette: [red, blue, orange]
rules:
  move_limit: 0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 7 {
		t.Errorf("board = %dx%d, expected 6x7", cfg.Board.Width, cfg.Board.Height)
	}
	if !reflect.DeepEqual(cfg.Pieces.Palette, []string{"red", "blue", "orange"}) {
		t.Errorf("palette = %v", cfg.Pieces.Palette)
	}
	if cfg.Rules.MoveLimit != 0 {
		t.Errorf("move limit = %d, expected 0", cfg.Rules.MoveLimit)
	}
	// Keys absent from the file keep their defaults
	if cfg.Scoring.BasePieceValue != 20 || cfg.Board.Offset != 4 {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	if _, err := LoadMatch3(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestToEngineConfig(t *testing.T) {
	cfg := DefaultMatch3Config()
	cfg.Timing.RefillDelay = 0.25

	ec, err := cfg.ToEngineConfig(7)
	if err != nil {
		t.Fatalf("ToEngineConfig() failed: %v", err)
	}
	if len(ec.Palette) != 5 || ec.Palette[0] != m3.KindRed {
		t.Errorf("palette = %v", ec.Palette)
	}
	if ec.RefillDelay != 250*time.Millisecond || ec.ShuffleDelay != time.Second {
		t.Errorf("delays = %v/%v", ec.RefillDelay, ec.ShuffleDelay)
	}
	if ec.BasePieceValue != 20 || ec.Seed != 7 || !ec.Detonate {
		t.Errorf("unexpected engine config %+v", ec)
	}
}

func TestToEngineConfigRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
	}{
		{"unknown kind", func(c *Match3Config) { c.Pieces.Palette = []string{"red", "teal"} }},
		{"empty palette", func(c *Match3Config) { c.Pieces.Palette = nil }},
		{"duplicate kind", func(c *Match3Config) { c.Pieces.Palette = []string{"red", "blue", "red"} }},
		{"single kind", func(c *Match3Config) { c.Pieces.Palette = []string{"red"} }},
		{"two kinds", func(c *Match3Config) { c.Pieces.Palette = []string{"red", "blue"} }},
		{"zero hit points", func(c *Match3Config) { c.Rules.TileHitPoints = 0 }},
		{"negative delay", func(c *Match3Config) { c.Timing.RefillDelay = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tc.mutate(&cfg)
			if _, err := cfg.ToEngineConfig(1); err == nil {
				t.Error("ToEngineConfig() should fail")
			}
		})
	}

	cfg := DefaultMatch3Config()
	cfg.Pieces.Palette = nil
	_, err := cfg.ToEngineConfig(1)
	if !errors.Is(err, m3.ErrInvalidConfig) {
		t.Errorf("engine validation error should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		kinds     int
		moveLimit int
	}{
		{DifficultyEasy, 4, 40},
		{DifficultyNormal, 5, 30},
		{DifficultyHard, 6, 20},
		{DifficultyFixed, 5, 30},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultMatch3Config()
			ApplyMatch3Preset(&cfg, tc.preset)
			if len(cfg.Pieces.Palette) != tc.kinds || cfg.Rules.MoveLimit != tc.moveLimit {
				t.Errorf("got %d kinds, %d moves; expected %d, %d",
					len(cfg.Pieces.Palette), cfg.Rules.MoveLimit, tc.kinds, tc.moveLimit)
			}
		})
	}

	// Unlimited configs stay unlimited
	cfg := DefaultMatch3Config()
	cfg.Rules.MoveLimit = 0
	ApplyMatch3Preset(&cfg, DifficultyHard)
	if cfg.Rules.MoveLimit != 0 {
		t.Errorf("preset should not add a move limit, got %d", cfg.Rules.MoveLimit)
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "normal", "hard", "fixed"} {
		if p, err := ParseDifficulty(s); err != nil || string(p) != s {
			t.Errorf("ParseDifficulty(%q) = %q, %v", s, p, err)
		}
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("unknown difficulty should fail")
	}
}
