package core

import (
	"math"
	"time"
)

// Tick rate bounds.
const (
	DefaultTickRate = 60
	MaxTickRate     = 240
)

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
	ASCII    bool  // Draw pieces and frames with plain ASCII glyphs
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// Normalized returns a copy with unset sizes and tick rate defaulted and the
// tick rate capped at MaxTickRate.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	c.TickRate = Clamp(c.TickRate, 1, MaxTickRate)
	return c
}

// Ticks converts a duration to whole ticks at the configured rate, rounding
// up so a non-zero delay always lasts at least one tick.
func (c RuntimeConfig) Ticks(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return int(math.Ceil(d.Seconds() * float64(rate)))
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Quit  bool // The game asked the platform to exit
}
