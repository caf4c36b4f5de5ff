// arcade is a terminal match-3 puzzle game.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Pick a mode and layout interactively, then play
//	arcade layouts           - List board layouts
//	arcade sim               - Autoplay many games and report statistics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write diagnostics to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/match3-arcade/internal/games/match3"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
	flagASCII    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Match-3 Arcade - swap pieces in your terminal",
	Long: `Match-3 Arcade is a terminal puzzle game: swap two neighbouring pieces
to line up three or more of a kind, and watch the board cascade.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive mode and layout picker
  layouts   - Show bundled or custom board layouts
  sim       - Autoplay games and report rule statistics

Examples:
  arcade list
  arcade play match3
  arcade play match3_endless --layout donut
  arcade menu
  arcade sim --games 1000 --strategy greedy`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().BoolVar(&flagASCII, "ascii", false, "Draw the board with plain ASCII glyphs")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the diagnostics logger. Output goes to --log-file when
// set, otherwise to fallback. The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger for commands that cannot continue without it.
func mustLogger(fallback io.Writer) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}
