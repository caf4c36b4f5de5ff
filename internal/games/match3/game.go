// Package match3 provides the match-3 puzzle game for the arcade.
package match3

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/match3-arcade/internal/config"
	platformcore "github.com/vovakirdan/match3-arcade/internal/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3/levels"
	"github.com/vovakirdan/match3-arcade/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMoves   Mode = "moves"   // game ends when the move limit is used up
	ModeEndless Mode = "endless" // play until the board deadlocks
)

const (
	hintDuration    = 2 * time.Second
	flashDuration   = 250 * time.Millisecond
	messageDuration = 1500 * time.Millisecond

	// maxAdvancesPerTick bounds how many zero-delay phases run in one tick.
	maxAdvancesPerTick = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// layoutName stores the layout chosen via CLI or menu
var layoutName string

// logger receives game and engine diagnostics
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLayout selects a bundled layout ID or a layout file path. An empty
// name uses the layout from the config file.
func SetLayout(name string) {
	layoutName = name
}

// SetLogger sets the logger handed to every new engine. Nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the match-3 puzzle game.
type Game struct {
	mode   Mode
	engine *core.Engine
	cfg    config.Match3Config
	layout string // display name of the loaded layout

	tick    uint64
	runtime platformcore.RuntimeConfig
	wait    int // ticks before the next engine phase

	score     int
	movesUsed int
	moveLimit int
	hintsUsed int

	cursor    core.Coord
	selected  bool
	selection core.Coord
	hint      core.Swap
	hintTicks int
	flash     map[core.Coord]int
	message   string
	msgTicks  int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver bool
	stuck    bool // ended because no legal move could be found
	paused   bool
	tooSmall bool
}

// New creates a new match-3 game with a move limit.
func New() *Game {
	return &Game{mode: ModeMoves}
}

// NewEndless creates a new match-3 game without a move limit.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Swap gems to line up three or more, no move limit"
	}
	return "Swap gems to line up three or more before your moves run out"
}

// IncreaseScore receives points from the engine.
func (g *Game) IncreaseScore(n int) {
	g.score += n
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.tick = 0
	g.runtime = runtime.Normalized()
	g.screenW = g.runtime.ScreenW
	g.screenH = g.runtime.ScreenH
	g.wait = 0
	g.score = 0
	g.movesUsed = 0
	g.hintsUsed = 0
	g.selected = false
	g.hintTicks = 0
	g.flash = make(map[core.Coord]int)
	g.message = ""
	g.msgTicks = 0
	g.gameOver = false
	g.stuck = false
	g.paused = false

	g.loadConfig()
	g.engine = g.newEngine(runtime.Seed)
	// Events from board generation carry nothing to animate
	g.engine.Events()

	grid := g.engine.Grid()
	g.cursor = core.C(grid.W/2, grid.H/2)

	g.checkScreenSize()
}

// loadConfig reads the YAML config and applies CLI overrides.
func (g *Game) loadConfig() {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultMatch3Config()
	}

	if difficultyPreset != "" && !config.IsFixedPreset(difficultyPreset) {
		config.ApplyMatch3Preset(&cfg, difficultyPreset)
	}
	if layoutName != "" {
		cfg.Board.Layout = layoutName
	}

	g.cfg = cfg
	g.moveLimit = cfg.Rules.MoveLimit
	if g.mode == ModeEndless {
		g.moveLimit = 0
	}
}

// newEngine builds the engine from the loaded config. A broken config or
// layout falls back to the engine defaults on a plain board.
func (g *Game) newEngine(seed int64) *core.Engine {
	layout := g.cfg.PlainLayout()
	g.layout = "plain"
	if name := g.cfg.Board.Layout; name != "" {
		lvl, err := levels.Resolve(name)
		if err != nil {
			logger.Warn("layout not found, using plain board", "layout", name, "err", err)
		} else {
			layout = lvl.Layout
			g.layout = lvl.Name
		}
	}

	engineCfg, err := g.cfg.ToEngineConfig(seed)
	if err == nil {
		var engine *core.Engine
		engine, err = core.New(engineCfg, layout, g, logger)
		if err == nil {
			return engine
		}
	}
	logger.Warn("invalid match-3 setup, using defaults", "err", err)

	engineCfg = core.DefaultConfig()
	engineCfg.Seed = seed
	g.layout = "plain"
	engine, err := core.New(engineCfg, core.Layout{Width: 8, Height: 8, Offset: 4}, g, logger)
	if err != nil {
		// Defaults are always valid
		panic(err)
	}
	return engine
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	grid := g.engine.Grid()
	need := platformcore.NewRect(0, 0, max(grid.W*cellWidth+2, 30), grid.H+hudHeight+4)
	g.tooSmall = !need.Inside(platformcore.NewRect(0, 0, g.screenW, g.screenH))
}


// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if g.gameOver {
		// Restart is handled by the platform
		return platformcore.StepResult{State: g.State(), Quit: in.Has(platformcore.ActionBack)}
	}

	g.decay()
	g.handleInput(in)
	g.advanceEngine()
	g.drainEvents()
	g.checkGameOver()

	return platformcore.StepResult{State: g.State()}
}

// decay counts down the timed visual effects.
func (g *Game) decay() {
	if g.hintTicks > 0 {
		g.hintTicks--
	}
	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}
	for c, n := range g.flash {
		if n <= 1 {
			delete(g.flash, c)
			continue
		}
		g.flash[c] = n - 1
	}
}

// handleInput moves the cursor, picks pieces and requests swaps.
func (g *Game) handleInput(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionHint) && g.engine.State() == core.StateMove {
		if s, ok := g.engine.Hint(); ok {
			g.hint = s
			g.hintTicks = g.runtime.Ticks(hintDuration)
			g.hintsUsed++
		}
	}

	if in.Has(platformcore.ActionBack) {
		g.selected = false
	}

	if in.Has(platformcore.ActionSelect) || in.Has(platformcore.ActionConfirm) {
		switch {
		case !g.selected:
			g.selected = true
			g.selection = g.cursor
		case g.selection == g.cursor:
			g.selected = false
		}
	}

	dir, ok := inputDir(in)
	if !ok {
		return
	}
	if g.selected {
		g.trySwap(g.selection, dir)
		return
	}
	dc, dr := dir.Delta()
	grid := g.engine.Grid()
	g.cursor = core.C(
		platformcore.Clamp(g.cursor.Col+dc, 0, grid.W-1),
		platformcore.Clamp(g.cursor.Row+dr, 0, grid.H-1),
	)
}

// inputDir maps the movement actions to a swap direction.
func inputDir(in platformcore.InputFrame) (core.Dir, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return 0, false
}

// trySwap asks the engine to move the piece at c one step in dir.
func (g *Game) trySwap(c core.Coord, dir core.Dir) {
	err := g.engine.AttemptMove(c, dir)
	if err != nil {
		logger.Debug("swap rejected", "at", c, "dir", dir, "err", err)
		switch {
		case errors.Is(err, core.ErrBusy):
			return
		case errors.Is(err, core.ErrNoMatch):
			g.say("No match")
		case errors.Is(err, core.ErrOutOfRange), errors.Is(err, core.ErrBlankCell), errors.Is(err, core.ErrEmptyCell):
			g.say("Can't move there")
		}
		g.selected = false
		return
	}

	g.selected = false
	g.hintTicks = 0
	g.movesUsed++
	g.cursor = c.Step(dir)
	g.wait = g.runtime.Ticks(g.engine.Delay())
}

// advanceEngine runs engine phases whose delay has elapsed.
func (g *Game) advanceEngine() {
	if g.wait > 0 {
		g.wait--
		if g.wait > 0 {
			return
		}
	}
	for i := 0; i < maxAdvancesPerTick && g.engine.Phase() != core.PhaseIdle; i++ {
		g.engine.Advance()
		g.wait = g.runtime.Ticks(g.engine.Delay())
		if g.wait > 0 {
			return
		}
	}
}

// drainEvents turns engine events into short-lived visual effects.
func (g *Game) drainEvents() {
	for _, ev := range g.engine.Events() {
		switch ev.Type {
		case core.EventDestroyed:
			g.flash[ev.At] = g.runtime.Ticks(flashDuration)
		case core.EventPromoted:
			if ev.Bomb == core.BombColor {
				g.say("Color bomb!")
			} else {
				g.say("Bomb!")
			}
		case core.EventTileRemoved:
			g.say("Tile cleared")
		case core.EventShuffled:
			g.say("Shuffled")
		}
	}
	if g.engine.Streak() > 2 && g.engine.Phase() == core.PhaseDestroy {
		g.say(comboText(g.engine.Streak()))
	}
}

func comboText(streak int) string {
	switch {
	case streak >= 5:
		return "Incredible!"
	case streak >= 4:
		return "Amazing!"
	default:
		return "Combo!"
	}
}

// say shows a short message under the board.
func (g *Game) say(msg string) {
	g.message = msg
	g.msgTicks = g.runtime.Ticks(messageDuration)
}

// checkGameOver ends the game once the board is idle and no move remains.
func (g *Game) checkGameOver() {
	if g.engine.Phase() != core.PhaseIdle {
		return
	}
	if g.engine.Deadlocked() {
		g.gameOver = true
		g.stuck = true
		return
	}
	if g.moveLimit > 0 && g.movesUsed >= g.moveLimit {
		g.gameOver = true
	}
}

// MovesLeft returns the remaining moves, or -1 without a move limit.
func (g *Game) MovesLeft() int {
	if g.moveLimit <= 0 {
		return -1
	}
	return max(g.moveLimit-g.movesUsed, 0)
}

// Engine returns the rules engine driving the board.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}
