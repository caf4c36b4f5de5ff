package config

import "fmt"

// presetRules holds what a difficulty preset changes.
type presetRules struct {
	kinds     int // palette size, drawn from the front of the full palette
	moveLimit int
}

var presets = map[DifficultyPreset]presetRules{
	DifficultyEasy:   {kinds: 4, moveLimit: 40},
	DifficultyNormal: {kinds: 5, moveLimit: 30},
	DifficultyHard:   {kinds: 6, moveLimit: 20},
}

// fullPalette lists every piece kind name in palette order.
var fullPalette = []string{"red", "green", "blue", "yellow", "purple", "orange"}

// ParseDifficulty converts a CLI flag value to a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	preset := DifficultyPreset(s)
	if _, ok := presets[preset]; ok || preset == DifficultyFixed {
		return preset, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (expected easy, normal, hard or fixed)", s)
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Fewer kinds make runs easier to line up; the move limit only applies
// when the config already has one.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	rules, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Pieces.Palette = append([]string(nil), fullPalette[:rules.kinds]...)
	if cfg.Rules.MoveLimit > 0 {
		cfg.Rules.MoveLimit = rules.moveLimit
	}
}
