package match3

import "github.com/vovakirdan/match3-arcade/internal/games/match3/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "moves" or "endless"
	Layout    string
	Score     int
	MovesUsed int
	MovesLeft int    // -1 without a move limit
	HintsUsed int
	Board     string // Grid.String() dump, top row first
	Phase     string
	Streak    int
	Cursor    core.Coord
	Stats     core.Stats
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.engine.Phase() != core.PhaseIdle:
		state = StateResolving
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Layout:    g.layout,
		Score:     g.score,
		MovesUsed: g.movesUsed,
		MovesLeft: g.MovesLeft(),
		HintsUsed: g.hintsUsed,
		Board:     g.engine.Grid().String(),
		Phase:     g.engine.Phase().String(),
		Streak:    g.engine.Streak(),
		Cursor:    g.cursor,
		Stats:     g.engine.Stats(),
		State:     state,
	}
}
