package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the hardcoded match-3 configuration.
// It mirrors defaults/match3.yaml and is used when the embedded file
// cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Width:  8,
			Height: 8,
			Offset: 4,
			Layout: "classic",
		},
		Pieces: Match3Pieces{
			Palette: []string{"red", "green", "blue", "yellow", "purple"},
		},
		Scoring: Match3Scoring{
			BasePieceValue: 20,
		},
		Timing: Match3Timing{
			RefillDelay:  0.5,
			ShuffleDelay: 1.0,
		},
		Rules: Match3Rules{
			TileHitPoints:       1,
			MaxPlacementRetries: 100,
			MaxShuffleAttempts:  100,
			MaxRegenerations:    10,
			MoveLimit:           30,
			DetonateBombs:       true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_endless":
		return defaultMatch3YAML
	default:
		return nil
	}
}
