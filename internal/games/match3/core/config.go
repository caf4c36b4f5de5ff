package core

import (
	"fmt"
	"time"
)

// Config holds the engine parameters. All values are fixed at setup.
type Config struct {
	Palette        []Kind        // piece kinds drawn by every random step
	BasePieceValue int           // score per destroyed piece before the streak multiplier
	TileHitPoints  int           // default hit points of breakable tiles
	RefillDelay    time.Duration // pacing between resolve phases
	ShuffleDelay   time.Duration // pacing before a shuffle lands
	Detonate       bool          // matched bombs clear their blast area

	MaxPlacementRetries int // redraws before a matching placement is accepted
	MaxShuffleAttempts  int // reshuffles before falling back to regeneration
	MaxRegenerations    int // regenerations before a deadlocked board is accepted

	Seed int64
}

// DefaultConfig returns the engine defaults: five kinds, 20 points a piece.
func DefaultConfig() Config {
	return Config{
		Palette:             []Kind{KindRed, KindGreen, KindBlue, KindYellow, KindPurple},
		BasePieceValue:      20,
		TileHitPoints:       1,
		RefillDelay:         500 * time.Millisecond,
		ShuffleDelay:        time.Second,
		Detonate:            true,
		MaxPlacementRetries: 100,
		MaxShuffleAttempts:  100,
		MaxRegenerations:    10,
	}
}

// MinPaletteKinds is the smallest palette that lets refills avoid forced
// matches. With fewer kinds a cascade can repeat forever.
const MinPaletteKinds = 3

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	if len(c.Palette) < MinPaletteKinds {
		return fmt.Errorf("%w: palette has %d kinds, need at least %d",
			ErrInvalidConfig, len(c.Palette), MinPaletteKinds)
	}
	seen := make(map[Kind]bool, len(c.Palette))
	for _, k := range c.Palette {
		if seen[k] {
			return fmt.Errorf("%w: duplicate kind %s in palette", ErrInvalidConfig, k)
		}
		seen[k] = true
	}
	if c.BasePieceValue < 0 {
		return fmt.Errorf("%w: negative base piece value", ErrInvalidConfig)
	}
	if c.MaxPlacementRetries < 0 || c.MaxShuffleAttempts < 0 || c.MaxRegenerations < 0 {
		return fmt.Errorf("%w: negative retry cap", ErrInvalidConfig)
	}
	return nil
}

// Tile is one entry of a board layout.
type Tile struct {
	Col       int
	Row       int
	Kind      TileKind
	HitPoints int // breakable only; 0 means Config.TileHitPoints
}

// Layout describes the board shape: its size, the spawn offset forwarded to
// the rendering layer and the blank/breakable cells.
type Layout struct {
	Width  int
	Height int
	Offset int
	Tiles  []Tile
}

// Validate checks the layout dimensions and that every tile is on the board.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	for _, t := range l.Tiles {
		if t.Col < 0 || t.Col >= l.Width || t.Row < 0 || t.Row >= l.Height {
			return fmt.Errorf("%w: tile %s at %s outside %dx%d board",
				ErrInvalidLayout, t.Kind, C(t.Col, t.Row), l.Width, l.Height)
		}
		if t.HitPoints < 0 {
			return fmt.Errorf("%w: negative hit points at %s", ErrInvalidLayout, C(t.Col, t.Row))
		}
	}
	return nil
}
