package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3-arcade/internal/platform/tui"
	"github.com/vovakirdan/match3-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a mode and layout picker",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc          - Back
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --difficulty hard`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	cfg := runtimeConfig()

	// Menu loop
	for {
		// Flags again, so a layout picked last round does not stick
		configureMatch3(logger)

		selection, err := tui.RunMatch3Selector(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// User quit
		if selection == nil {
			break
		}

		game, err := registry.Create(applyMatch3Selection(selection))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh board each round unless a seed was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		logger.Info("game finished, back to menu", "game", game.ID(), "score", game.State().Score)
	}
}
