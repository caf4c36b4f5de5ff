// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board   Match3Board   `yaml:"board"`
	Pieces  Match3Pieces  `yaml:"pieces"`
	Scoring Match3Scoring `yaml:"scoring"`
	Timing  Match3Timing  `yaml:"timing"`
	Rules   Match3Rules   `yaml:"rules"`
}

// Match3Board defines the board shape.
type Match3Board struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Offset int    `yaml:"offset"` // Spawn offset above the board, in rows
	Layout string `yaml:"layout"` // Bundled layout name or layout file path
}

// Match3Pieces defines which piece kinds are drawn.
type Match3Pieces struct {
	Palette []string `yaml:"palette"`
}

// Match3Scoring defines score parameters.
type Match3Scoring struct {
	BasePieceValue int `yaml:"base_piece_value"`
}

// Match3Timing defines resolve pacing, in seconds.
type Match3Timing struct {
	RefillDelay  float64 `yaml:"refill_delay"`
	ShuffleDelay float64 `yaml:"shuffle_delay"`
}

// Match3Rules defines rule parameters and retry caps.
type Match3Rules struct {
	TileHitPoints       int  `yaml:"tile_hit_points"`
	MaxPlacementRetries int  `yaml:"max_placement_retries"`
	MaxShuffleAttempts  int  `yaml:"max_shuffle_attempts"`
	MaxRegenerations    int  `yaml:"max_regenerations"`
	MoveLimit           int  `yaml:"move_limit"` // 0 means unlimited
	DetonateBombs       bool `yaml:"detonate_bombs"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset keeps the loaded config untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
