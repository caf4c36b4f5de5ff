package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3-arcade/internal/config"
	m3 "github.com/vovakirdan/match3-arcade/internal/games/match3/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3/levels"
	"github.com/vovakirdan/match3-arcade/internal/sim"
)

var (
	flagSimGames    int
	flagSimMoves    int
	flagSimWorkers  int
	flagSimStrategy string
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Autoplay games and report rule statistics",
	Long: `Play many games without a terminal UI and print statistics about the
rules: score distribution, cascades per move, bombs, shuffles and deadlocks.

Game i is seeded with --seed + i, so a run is reproducible for any number
of workers.

Strategies:
  random - Pick any legal swap
  greedy - Pick the swap that matches the most pieces right away

Examples:
  arcade sim
  arcade sim --games 10000 --workers 8
  arcade sim --strategy greedy --layout donut --difficulty hard
  arcade sim --moves 100 --seed 7`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 1000, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 0, "Swaps per game (0 = config move limit)")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Games played in parallel")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "random", "Autoplayer strategy: random, greedy")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().StringVar(&flagLayout, "layout", "", "Bundled layout ID or layout file path")
}

// defaultSimMoves is used when neither --moves nor the config sets a limit.
const defaultSimMoves = 30

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(os.Stderr)
	defer closeLog()

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !config.IsFixedPreset(preset) {
			config.ApplyMatch3Preset(&cfg, preset)
		}
	}

	layout, layoutName, err := simLayout(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engineCfg, err := cfg.ToEngineConfig(seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	strategy, err := sim.ParseStrategy(flagSimStrategy, engineCfg.Detonate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	moves := flagSimMoves
	if moves <= 0 {
		moves = cfg.Rules.MoveLimit
	}
	if moves <= 0 {
		moves = defaultSimMoves
	}

	opts := sim.Options{
		Games:    flagSimGames,
		Moves:    moves,
		Workers:  flagSimWorkers,
		Seed:     seed,
		Strategy: strategy,
	}
	if !flagSimQuiet {
		opts.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "games", opts.Games, "moves", moves, "layout", layoutName,
		"strategy", strategy.Name(), "workers", opts.Workers, "seed", seed)

	report, err := sim.Run(ctx, engineCfg, layout, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := report.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// simLayout resolves --layout, then the config's layout, then the plain board.
func simLayout(cfg config.Match3Config) (m3.Layout, string, error) {
	name := flagLayout
	if name == "" {
		name = cfg.Board.Layout
	}
	if name == "" {
		return cfg.PlainLayout(), "plain", nil
	}
	lvl, err := levels.Resolve(name)
	if err != nil {
		return m3.Layout{}, "", err
	}
	return lvl.Layout, lvl.Name, nil
}
