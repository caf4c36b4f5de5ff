package core

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is a step of move resolution. The engine never blocks between
// phases: the driver waits Delay() and then calls Advance.
type Phase uint8

const (
	PhaseIdle     Phase = iota // waiting for a player swap
	PhaseDestroy               // promote bombs, damage tiles, remove matched pieces
	PhaseCollapse              // pull pieces down into empty cells
	PhaseRefill                // spawn pieces into remaining empty cells
	PhaseCascade               // look for new matches
	PhaseSettle                // deadlock check
	PhaseShuffle               // redistribute pieces of a deadlocked board
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDestroy:
		return "destroy"
	case PhaseCollapse:
		return "collapse"
	case PhaseRefill:
		return "refill"
	case PhaseCascade:
		return "cascade"
	case PhaseSettle:
		return "settle"
	case PhaseShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Stats counts what happened over the engine's lifetime.
type Stats struct {
	Moves           int // committed swaps
	Passes          int // destroy passes, including the first of each move
	Cascades        int // passes after the first of each move
	MaxStreak       int
	PiecesDestroyed int
	TilesCleared    int
	ColorBombs      int
	AdjacentBombs   int
	Shuffles        int
	Regenerations   int
	Saturations     int // placements accepted after exhausting retries
	Deadlocks       int // settles that found no legal move
}

// Engine resolves player swaps on a Grid. Only one swap resolves at a time;
// State gates new requests. An Engine is not safe for concurrent use.
type Engine struct {
	cfg    Config
	layout Layout
	grid   *Grid
	rng    *rand.Rand
	score  ScoreSink
	logger *log.Logger

	state   GameState
	phase   Phase
	delay   time.Duration
	streak  int
	move    Move
	matches MatchSet

	events     []Event
	nextID     int
	stats      Stats
	deadlocked bool
}

type discardScore struct{}

func (discardScore) IncreaseScore(int) {}

// New builds an engine and generates the initial board from layout.
// A nil score sink or logger discards score and diagnostics.
func New(cfg Config, layout Layout, score ScoreSink, logger *log.Logger) (*Engine, error) {
	e, err := newEngine(cfg, layout, score, logger)
	if err != nil {
		return nil, err
	}
	e.applyLayout(layout)
	e.generate()
	if IsDeadlocked(e.grid) {
		e.stats.Deadlocks++
		e.shuffle()
	}
	return e, nil
}

func newEngine(cfg Config, layout Layout, score ScoreSink, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if score == nil {
		score = discardScore{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		cfg:    cfg,
		layout: layout,
		grid:   NewGrid(layout.Width, layout.Height),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		score:  score,
		logger: logger,
		state:  StateMove,
		phase:  PhaseIdle,
		streak: 1,
	}, nil
}

// Grid returns the live grid. Callers must treat it as read-only.
func (e *Engine) Grid() *Grid { return e.grid }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Layout returns the layout the board was built from.
func (e *Engine) Layout() Layout { return e.layout }

// State returns whether the player may act.
func (e *Engine) State() GameState { return e.state }

// Phase returns the phase the next Advance will run.
func (e *Engine) Phase() Phase { return e.phase }

// Delay returns how long the driver should wait before the next Advance.
func (e *Engine) Delay() time.Duration { return e.delay }

// Streak returns the current score multiplier.
func (e *Engine) Streak() int { return e.streak }

// Matches returns the current match set.
func (e *Engine) Matches() MatchSet { return e.matches }

// Stats returns the lifetime counters.
func (e *Engine) Stats() Stats { return e.stats }

// Deadlocked reports whether the last settle gave up on finding a board
// with a legal move.
func (e *Engine) Deadlocked() bool { return e.deadlocked }

// AttemptSwap exchanges the pieces at a and b if that creates a match.
// The piece at a is the one the player moved. A rejected swap returns an
// error and leaves the board unchanged.
func (e *Engine) AttemptSwap(a, b Coord) error {
	if e.state != StateMove || e.phase != PhaseIdle {
		return ErrBusy
	}
	if !e.grid.InBounds(a) || !e.grid.InBounds(b) {
		return ErrOutOfRange
	}
	if !a.Adjacent(b) {
		return ErrNotAdjacent
	}
	if e.grid.IsBlank(a) || e.grid.IsBlank(b) {
		return ErrBlankCell
	}
	moved, other := e.grid.Get(a), e.grid.Get(b)
	if moved == nil || other == nil {
		return ErrEmptyCell
	}

	e.grid.Swap(a, b)
	if !HasAnyMatch(e.grid) {
		e.grid.Swap(a, b)
		return ErrNoMatch
	}

	e.state = StateWait
	e.move = Move{Moved: moved, Other: other}
	e.stats.Moves++
	e.emit(Event{Type: EventSwapped, PieceID: moved.ID, From: a, At: b})
	e.emit(Event{Type: EventSwapped, PieceID: other.ID, From: b, At: a})

	e.matches = MarkMatches(e.grid, e.cfg.Detonate)
	e.enter(PhaseDestroy, e.cfg.RefillDelay/2)
	return nil
}

// AttemptMove swaps the piece at c with its neighbour in direction d.
func (e *Engine) AttemptMove(c Coord, d Dir) error {
	return e.AttemptSwap(c, c.Step(d))
}

// Advance runs the pending phase and returns the phase that follows.
// It is a no-op while idle.
func (e *Engine) Advance() Phase {
	switch e.phase {
	case PhaseIdle:
		return PhaseIdle

	case PhaseDestroy:
		e.destroyMatches()
		e.enter(PhaseCollapse, 0)

	case PhaseCollapse:
		e.collapse()
		e.enter(PhaseRefill, e.cfg.RefillDelay/2)

	case PhaseRefill:
		e.fill()
		e.enter(PhaseCascade, e.cfg.RefillDelay)

	case PhaseCascade:
		if HasAnyMatch(e.grid) {
			e.streak++
			e.stats.Cascades++
			e.matches = MarkMatches(e.grid, e.cfg.Detonate)
			e.enter(PhaseDestroy, 2*e.cfg.RefillDelay)
			break
		}
		ClearMatched(e.grid)
		e.matches = MatchSet{}
		e.move = Move{}
		e.enter(PhaseSettle, 0)

	case PhaseSettle:
		if IsDeadlocked(e.grid) {
			e.stats.Deadlocks++
			e.logger.Info("board deadlocked", "moves", e.stats.Moves)
			e.enter(PhaseShuffle, e.cfg.ShuffleDelay)
			break
		}
		e.finish()

	case PhaseShuffle:
		e.shuffle()
		if HasAnyMatch(e.grid) {
			e.enter(PhaseCascade, e.cfg.RefillDelay)
			break
		}
		e.finish()
	}
	return e.phase
}

// Resolve runs every pending phase without waiting.
func (e *Engine) Resolve() {
	for e.phase != PhaseIdle {
		e.Advance()
	}
}

func (e *Engine) enter(p Phase, delay time.Duration) {
	e.phase = p
	e.delay = delay
	e.emit(Event{Type: EventPhase, Phase: p})
	e.logger.Debug("phase", "phase", p, "streak", e.streak, "delay", delay)
}

func (e *Engine) finish() {
	e.state = StateMove
	e.streak = 1
	e.enter(PhaseIdle, 0)
}

// destroyMatches promotes at most one bomb, then removes every matched
// piece, damaging the tile under it and scoring it at the current streak.
func (e *Engine) destroyMatches() {
	set := collectMatched(e.grid)
	e.stats.Passes++
	if e.streak > e.stats.MaxStreak {
		e.stats.MaxStreak = e.streak
	}

	if set.Len() >= 4 {
		if p, bomb := promote(set, e.move); p != nil {
			if bomb == BombColor {
				e.stats.ColorBombs++
			} else {
				e.stats.AdjacentBombs++
			}
			at, _ := e.grid.Find(p)
			e.emit(Event{Type: EventPromoted, PieceID: p.ID, Kind: p.Kind, At: at, Bomb: bomb})
		}
	}

	// Left to right, each column top to bottom.
	for col := 0; col < e.grid.W; col++ {
		for row := e.grid.H - 1; row >= 0; row-- {
			c := C(col, row)
			p := e.grid.Get(c)
			if p == nil || !p.Matched {
				continue
			}
			if hp, hit := e.grid.DamageTile(c); hit {
				if hp == 0 {
					e.stats.TilesCleared++
					e.emit(Event{Type: EventTileRemoved, At: c})
				} else {
					e.emit(Event{Type: EventTileDamaged, At: c, HitPoints: hp})
				}
			}
			e.score.IncreaseScore(e.cfg.BasePieceValue * e.streak)
			p.Matched = false
			e.grid.Set(c, nil)
			e.stats.PiecesDestroyed++
			e.emit(Event{Type: EventDestroyed, PieceID: p.ID, Kind: p.Kind, At: c})
		}
	}
	e.matches = MatchSet{}
}

// collapse pulls, for every empty cell, the nearest piece above it in the
// same column. Blank cells are skipped and never block the pull.
func (e *Engine) collapse() {
	for col := 0; col < e.grid.W; col++ {
		for row := 0; row < e.grid.H; row++ {
			c := C(col, row)
			if e.grid.IsBlank(c) || e.grid.Get(c) != nil {
				continue
			}
			for k := row + 1; k < e.grid.H; k++ {
				from := C(col, k)
				p := e.grid.Get(from)
				if p == nil {
					continue
				}
				e.grid.Set(c, p)
				e.grid.Set(from, nil)
				e.emit(Event{Type: EventMoved, PieceID: p.ID, Kind: p.Kind, From: from, At: c})
				break
			}
		}
	}
}
