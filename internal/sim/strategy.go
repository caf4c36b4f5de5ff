package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
)

// Strategy picks one of the legal swaps on a board.
type Strategy interface {
	Name() string
	Choose(g *core.Grid, moves []core.Swap, rng *rand.Rand) core.Swap
}

// Random picks a legal swap uniformly.
type Random struct{}

// Name returns the strategy name.
func (Random) Name() string { return "random" }

// Choose picks a random swap.
func (Random) Choose(_ *core.Grid, moves []core.Swap, rng *rand.Rand) core.Swap {
	return moves[rng.Intn(len(moves))]
}

// Greedy picks the swap that matches the most pieces right away, breaking
// ties at random. Cascades are not looked ahead.
type Greedy struct {
	Detonate bool // count bomb blasts like the engine does
}

// Name returns the strategy name.
func (Greedy) Name() string { return "greedy" }

// Choose evaluates every swap on a copy of the board.
func (s Greedy) Choose(g *core.Grid, moves []core.Swap, rng *rand.Rand) core.Swap {
	best := -1
	var picks []core.Swap
	for _, m := range moves {
		trial := g.Clone()
		trial.Swap(m.A, m.B)
		n := core.MarkMatches(trial, s.Detonate).Len()
		switch {
		case n > best:
			best = n
			picks = append(picks[:0], m)
		case n == best:
			picks = append(picks, m)
		}
	}
	return picks[rng.Intn(len(picks))]
}

// ParseStrategy converts a CLI flag value to a strategy.
func ParseStrategy(name string, detonate bool) (Strategy, error) {
	switch name {
	case "", "random":
		return Random{}, nil
	case "greedy":
		return Greedy{Detonate: detonate}, nil
	default:
		return nil, fmt.Errorf("sim: unknown strategy %q (expected random or greedy)", name)
	}
}
