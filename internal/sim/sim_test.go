package sim

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
)

func testSetup() (core.Config, core.Layout) {
	return core.DefaultConfig(), core.Layout{Width: 8, Height: 8, Offset: 4}
}

func TestRunIsIndependentOfWorkers(t *testing.T) {
	cfg, layout := testSetup()
	run := func(workers int) *Report {
		t.Helper()
		r, err := Run(context.Background(), cfg, layout, Options{Games: 6, Moves: 5, Workers: workers, Seed: 10}, nil)
		if err != nil {
			t.Fatalf("Run(workers=%d) failed: %v", workers, err)
		}
		return r
	}

	serial, parallel := run(1), run(4)
	if len(serial.Results) != 6 || len(parallel.Results) != 6 {
		t.Fatalf("got %d and %d results, want 6", len(serial.Results), len(parallel.Results))
	}
	for i := range serial.Results {
		a, b := serial.Results[i], parallel.Results[i]
		if a != b {
			t.Errorf("game %d differs between worker counts: %+v vs %+v", i, a, b)
		}
		if a.Seed != int64(10+i) {
			t.Errorf("game %d seed = %d, want %d", i, a.Seed, 10+i)
		}
		if a.Moves > 5 {
			t.Errorf("game %d played %d moves, limit 5", i, a.Moves)
		}
		if a.Moves > 0 && a.Score == 0 {
			t.Errorf("game %d made %d moves without scoring", i, a.Moves)
		}
		if a.Stats.Moves != a.Moves {
			t.Errorf("game %d engine counted %d moves, player %d", i, a.Stats.Moves, a.Moves)
		}
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	cfg, layout := testSetup()

	tests := []struct {
		name   string
		cfg    core.Config
		layout core.Layout
		opts   Options
	}{
		{"no games", cfg, layout, Options{Moves: 1}},
		{"no moves", cfg, layout, Options{Games: 1}},
		{"empty palette", core.Config{}, layout, Options{Games: 1, Moves: 1}},
		{"empty layout", cfg, core.Layout{}, Options{Games: 1, Moves: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tc.cfg, tc.layout, tc.opts, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	cfg, layout := testSetup()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, cfg, layout, Options{Games: 50, Moves: 5, Workers: 2}, nil); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

// gridFromRows builds a grid from rows written top row first, 'A' being kind 0.
func gridFromRows(rows []string) *core.Grid {
	h := len(rows)
	g := core.NewGrid(len(rows[0]), h)
	id := 0
	for i, line := range rows {
		for col, ch := range line {
			id++
			g.Set(core.C(col, h-1-i), &core.Piece{ID: id, Kind: core.Kind(ch - 'A')})
		}
	}
	return g
}

func TestGreedyPicksLargestMatch(t *testing.T) {
	g := gridFromRows([]string{
		"CDCDC",
		"AABAA",
		"DCADC",
	})
	before := g.String()
	nothing := core.Swap{A: core.C(2, 1), B: core.C(2, 2)}
	five := core.Swap{A: core.C(2, 1), B: core.C(2, 0)}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		if got := (Greedy{}).Choose(g, []core.Swap{nothing, five}, rng); got != five {
			t.Fatalf("Choose() = %v, want %v", got, five)
		}
	}
	if g.String() != before {
		t.Error("Choose() must not change the board")
	}
}

func TestParseStrategy(t *testing.T) {
	tests := map[string]string{
		"":       "random",
		"random": "random",
		"greedy": "greedy",
	}
	for in, want := range tests {
		s, err := ParseStrategy(in, true)
		if err != nil {
			t.Fatalf("ParseStrategy(%q) failed: %v", in, err)
		}
		if s.Name() != want {
			t.Errorf("ParseStrategy(%q) = %s, want %s", in, s.Name(), want)
		}
	}
	if _, err := ParseStrategy("clever", false); err == nil {
		t.Error("unknown strategy should fail")
	}
}

func TestReport(t *testing.T) {
	results := []GameResult{
		{Score: 10, Moves: 2, Stats: core.Stats{Moves: 2, Cascades: 1, Shuffles: 1}},
		{Score: 20, Moves: 2, Stats: core.Stats{Moves: 2, Cascades: 0}},
		{Score: 30, Moves: 2, Stats: core.Stats{Moves: 2, Cascades: 2}, Deadlocked: true},
		{Score: 40, Moves: 2, Stats: core.Stats{Moves: 2, Cascades: 1, Shuffles: 1}},
	}
	r := NewReport("greedy", results)

	if r.Score.Mean != 25 || r.Score.Min != 10 || r.Score.Max != 40 {
		t.Errorf("score summary = %+v", r.Score)
	}
	if math.Abs(r.Score.Std-12.9099) > 0.001 {
		t.Errorf("score std = %.4f, want 12.9099", r.Score.Std)
	}
	if r.Score.P50 < r.Score.Min || r.Score.P50 > r.Score.Max {
		t.Errorf("median %.1f outside [%.1f, %.1f]", r.Score.P50, r.Score.Min, r.Score.Max)
	}
	if got := r.CascadesPerMove(); got != 0.5 {
		t.Errorf("CascadesPerMove() = %v, want 0.5", got)
	}
	if got := r.ShufflesPerGame(); got != 0.5 {
		t.Errorf("ShufflesPerGame() = %v, want 0.5", got)
	}
	if r.Deadlocked != 1 {
		t.Errorf("Deadlocked = %d, want 1", r.Deadlocked)
	}

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"match-3 / greedy", "Cascades / Move", "0.500", "Deadlocked Games", "P90"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportSingleGame(t *testing.T) {
	r := NewReport("random", []GameResult{{Score: 100}})
	if r.Score.Std != 0 || r.Score.Mean != 100 {
		t.Errorf("single game summary = %+v", r.Score)
	}
}

func TestFmtTableAligns(t *testing.T) {
	out := fmtTable("T", []string{"a", "long key"}, map[string]string{"a": "1", "long key": "22"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := len(lines[0])
	for _, l := range lines {
		if len(l) != width {
			t.Errorf("line %q has width %d, want %d", l, len(l), width)
		}
	}
}
