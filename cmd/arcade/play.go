package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3-arcade/internal/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3"
	"github.com/vovakirdan/match3-arcade/internal/platform/tui"
	"github.com/vovakirdan/match3-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLayout     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move the cursor, or swap when a piece is selected
  Space        - Select or drop a piece
  H            - Show a hint
  P            - Pause
  R            - Restart (after game over)
  ?            - Show all keys
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Four kinds of pieces, 40 moves
  normal - Five kinds of pieces, 30 moves
  hard   - Six kinds of pieces, 20 moves
  fixed  - Keep the config file untouched

Without --layout, 'play match3' opens a mode and layout picker first.

Examples:
  arcade play match3
  arcade play match3 --difficulty hard
  arcade play match3_endless --layout jelly
  arcade play match3 --layout ./boards/cross.yaml
  arcade play match3 --config ./my-match3.yaml
  arcade play match3 --ascii`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().StringVar(&flagLayout, "layout", "", "Bundled layout ID or layout file path")
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	// Diagnostics would corrupt the alt screen, so they only go to --log-file
	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	cfg := runtimeConfig()
	configureMatch3(logger)

	if gameID == "match3" && flagLayout == "" {
		selection, err := tui.RunMatch3Selector(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User pressed back or quit
		if selection == nil {
			return
		}
		gameID = applyMatch3Selection(selection)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(game, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		ASCII:    flagASCII,
	}
}

// configureMatch3 hands the CLI flags to the match-3 game before creation.
func configureMatch3(logger *log.Logger) {
	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(flagDifficulty)
	match3.SetLayout(flagLayout)
	match3.SetLogger(logger)
}

// applyMatch3Selection applies a menu selection and returns the game ID to run.
func applyMatch3Selection(sel *tui.Match3Selection) string {
	if sel.Layout != "" {
		match3.SetLayout(sel.Layout)
	}
	if sel.Mode == tui.Match3ModeEndless {
		return "match3_endless"
	}
	return "match3"
}
