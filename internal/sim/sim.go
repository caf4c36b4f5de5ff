// Package sim plays match-3 games headlessly and reports how the rules
// behave over many boards: scores, cascades, shuffles and deadlocks.
package sim

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
)

// Options controls a simulation run.
type Options struct {
	Games    int      // number of games to play
	Moves    int      // swaps per game
	Workers  int      // games played in parallel
	Seed     int64    // game i uses Seed+i
	Strategy Strategy // nil plays random swaps
	Progress io.Writer // progress bar output; nil hides it
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed       int64
	Score      int
	Moves      int
	Stats      core.Stats
	Deadlocked bool // ended early without a legal move
}

var errNoGames = errors.New("sim: games and moves must be positive")

// scoreCounter collects the score of one engine.
type scoreCounter struct {
	total int
}

func (s *scoreCounter) IncreaseScore(n int) { s.total += n }

// Run plays opts.Games games and returns the merged report. Results are
// ordered by game index and do not depend on the worker count.
func Run(ctx context.Context, cfg core.Config, layout core.Layout, opts Options, logger *log.Logger) (*Report, error) {
	if opts.Games < 1 || opts.Moves < 1 {
		return nil, errNoGames
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	workers := max(opts.Workers, 1)
	strategy := opts.Strategy
	if strategy == nil {
		strategy = Random{}
	}

	out := opts.Progress
	if out == nil {
		out = io.Discard
	}
	bar := pb.New(opts.Games).SetWriter(out).Start()

	results := make([]GameResult, opts.Games)
	jobs := make(chan int, workers)

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				gameCfg := cfg
				gameCfg.Seed = opts.Seed + int64(i)
				res, err := Play(gameCfg, layout, opts.Moves, strategy, logger)
				if err != nil {
					once.Do(func() { firstErr = err })
					continue
				}
				results[i] = res
				bar.Increment()
			}
		}()
	}

feed:
	for i := 0; i < opts.Games; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	report := NewReport(strategy.Name(), results)
	report.Elapsed = used
	return report, nil
}

// Play runs a single game: up to moves swaps chosen by strategy, each
// resolved to a stable board before the next.
func Play(cfg core.Config, layout core.Layout, moves int, strategy Strategy, logger *log.Logger) (GameResult, error) {
	score := &scoreCounter{}
	engine, err := core.New(cfg, layout, score, logger)
	if err != nil {
		return GameResult{}, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	res := GameResult{Seed: cfg.Seed}

	for res.Moves < moves {
		engine.Events()
		if engine.Deadlocked() {
			res.Deadlocked = true
			break
		}
		legal := engine.Moves()
		if len(legal) == 0 {
			res.Deadlocked = true
			break
		}
		s := strategy.Choose(engine.Grid(), legal, rng)
		if err := engine.AttemptSwap(s.A, s.B); err != nil {
			return res, err
		}
		engine.Resolve()
		res.Moves++
	}
	engine.Events()

	res.Score = score.total
	res.Stats = engine.Stats()
	return res, nil
}
