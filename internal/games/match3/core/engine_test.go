package core

import (
	"errors"
	"reflect"
	"testing"
)

// scenarioRows has no match; moving the red piece at (3,2) left completes
// a run of three on row 2.
var scenarioRows = []string{
	"CABCAB",
	"BCABCA",
	"ABCABC",
	"AABAAB",
	"BCABCA",
	"ABCABC",
}

func countEvents(evs []Event, typ EventType) int {
	n := 0
	for _, ev := range evs {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestAttemptSwapRejected(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Grid)
		a, b  Coord
		want  error
	}{
		{"not adjacent", nil, C(0, 0), C(2, 0), ErrNotAdjacent},
		{"diagonal", nil, C(0, 0), C(1, 1), ErrNotAdjacent},
		{"same cell", nil, C(1, 1), C(1, 1), ErrNotAdjacent},
		{"out of range", nil, C(5, 5), C(6, 5), ErrOutOfRange},
		{"negative", nil, C(0, 0), C(0, -1), ErrOutOfRange},
		{"no match", nil, C(0, 0), C(1, 0), ErrNoMatch},
		{"blank cell", func(g *Grid) { g.SetBlank(C(1, 0)) }, C(0, 0), C(1, 0), ErrBlankCell},
		{"empty cell", func(g *Grid) { g.Set(C(1, 0), nil) }, C(0, 0), C(1, 0), ErrEmptyCell},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, score := newTestEngine(t, scenarioRows, 3)
			if tc.setup != nil {
				tc.setup(e.grid)
			}
			before := e.grid.Clone()

			err := e.AttemptSwap(tc.a, tc.b)
			if !errors.Is(err, tc.want) {
				t.Fatalf("AttemptSwap() error = %v, want %v", err, tc.want)
			}
			if !e.grid.Equal(before) {
				t.Errorf("rejected swap changed the board:\n%s", e.grid)
			}
			if e.State() != StateMove || e.Phase() != PhaseIdle {
				t.Errorf("state = %v/%v, want move/idle", e.State(), e.Phase())
			}
			if score.total != 0 {
				t.Errorf("score = %d, want 0", score.total)
			}
			if n := countEvents(e.Events(), EventSwapped); n != 0 {
				t.Errorf("got %d swapped events, want 0", n)
			}
		})
	}
}

func TestAttemptSwapBusy(t *testing.T) {
	e, _ := newTestEngine(t, scenarioRows, 3)

	if err := e.AttemptSwap(C(3, 2), C(2, 2)); err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if err := e.AttemptSwap(C(0, 0), C(0, 1)); !errors.Is(err, ErrBusy) {
		t.Errorf("second swap error = %v, want ErrBusy", err)
	}

	e.Resolve()
	if e.State() != StateMove {
		t.Errorf("state after Resolve = %v, want move", e.State())
	}
}

func TestResolveThreeInARow(t *testing.T) {
	e, score := newTestEngine(t, scenarioRows, 3)
	cfg := e.Config()

	above := make([]*Piece, 3)
	for col := range above {
		above[col] = e.grid.Get(C(col, 3))
	}
	moved := e.grid.Get(C(3, 2))

	if err := e.AttemptSwap(C(3, 2), C(2, 2)); err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if e.State() != StateWait || e.Phase() != PhaseDestroy {
		t.Fatalf("state = %v/%v, want wait/destroy", e.State(), e.Phase())
	}
	if e.Delay() != cfg.RefillDelay/2 {
		t.Errorf("destroy delay = %v, want %v", e.Delay(), cfg.RefillDelay/2)
	}
	if e.Matches().Len() != 3 {
		t.Fatalf("matched %d pieces, want 3", e.Matches().Len())
	}
	if e.grid.Get(C(2, 2)) != moved {
		t.Error("moved piece should sit at the swap target")
	}
	if n := countEvents(e.Events(), EventSwapped); n != 2 {
		t.Errorf("got %d swapped events, want 2", n)
	}

	if next := e.Advance(); next != PhaseCollapse {
		t.Fatalf("after destroy phase = %v, want collapse", next)
	}
	if score.total != 3*cfg.BasePieceValue || score.calls != 3 {
		t.Errorf("score = %d over %d calls, want %d over 3", score.total, score.calls, 3*cfg.BasePieceValue)
	}
	for col := 0; col < 3; col++ {
		if e.grid.Get(C(col, 2)) != nil {
			t.Errorf("(%d,2) should be empty after destroy", col)
		}
	}
	if n := countEvents(e.Events(), EventDestroyed); n != 3 {
		t.Errorf("got %d destroyed events, want 3", n)
	}

	if next := e.Advance(); next != PhaseRefill {
		t.Fatalf("after collapse phase = %v, want refill", next)
	}
	for col := 0; col < 3; col++ {
		if got := e.grid.Get(C(col, 2)); got != above[col] {
			t.Errorf("(%d,2) should hold the piece that was above it", col)
		}
		if e.grid.Get(C(col, 5)) != nil {
			t.Errorf("(%d,5) should be empty before refill", col)
		}
	}
	if e.grid.EmptyCount() != 3 {
		t.Errorf("EmptyCount() = %d, want 3", e.grid.EmptyCount())
	}

	if next := e.Advance(); next != PhaseCascade {
		t.Fatalf("after refill phase = %v, want cascade", next)
	}
	if e.grid.EmptyCount() != 0 {
		t.Errorf("EmptyCount() after refill = %d, want 0", e.grid.EmptyCount())
	}
	spawned := 0
	for _, ev := range e.Events() {
		if ev.Type != EventSpawned {
			continue
		}
		spawned++
		if ev.At.Row != 5 || ev.SpawnRow != ev.At.Row+e.Layout().Offset {
			t.Errorf("unexpected spawn %+v", ev)
		}
	}
	if spawned != 3 {
		t.Errorf("spawned %d pieces, want 3", spawned)
	}

	e.Resolve()
	if e.State() != StateMove || e.Phase() != PhaseIdle {
		t.Errorf("state after Resolve = %v/%v, want move/idle", e.State(), e.Phase())
	}
	if HasAnyMatch(e.grid) {
		t.Errorf("board still has a match after Resolve:\n%s", e.grid)
	}
	if e.Streak() != 1 {
		t.Errorf("Streak() = %d, want 1", e.Streak())
	}
	if e.Stats().Moves != 1 {
		t.Errorf("Stats().Moves = %d, want 1", e.Stats().Moves)
	}
}

func TestResolveCascadeRaisesStreak(t *testing.T) {
	// Clearing row 0 columns 1-3 drops two reds beside the red at (0,0).
	e, score := newTestEngine(t, []string{
		"DCDBD",
		"BDCDC",
		"CAADD",
		"ABBCB",
	}, 4)
	base := e.Config().BasePieceValue

	if err := e.AttemptSwap(C(4, 0), C(3, 0)); err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if e.Matches().Len() != 3 {
		t.Fatalf("matched %d pieces, want 3", e.Matches().Len())
	}

	e.Advance() // destroy
	e.Advance() // collapse
	if !HasAnyMatch(e.grid) {
		t.Fatalf("collapse should line up a new run:\n%s", e.grid)
	}

	e.Resolve()
	stats := e.Stats()
	if stats.Cascades < 1 || stats.MaxStreak < 2 {
		t.Errorf("cascades = %d, max streak = %d, want >= 1 and >= 2", stats.Cascades, stats.MaxStreak)
	}
	if want := 3*base + 3*base*2; score.total < want {
		t.Errorf("score = %d, want at least %d", score.total, want)
	}
	if e.Streak() != 1 {
		t.Errorf("Streak() = %d after settle, want 1", e.Streak())
	}
	if HasAnyMatch(e.grid) || e.grid.EmptyCount() != 0 {
		t.Errorf("board not settled:\n%s", e.grid)
	}
}

func TestDestroyWalksColumnsTopDown(t *testing.T) {
	e, _ := newTestEngine(t, []string{
		"CDBCD",
		"DCDBC",
		"BACDB",
		"CADBC",
		"DBABD",
	}, 4)

	if err := e.AttemptSwap(C(1, 0), C(2, 0)); err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if e.Matches().Len() != 3 {
		t.Fatalf("matched %d pieces, want 3", e.Matches().Len())
	}
	e.Events()

	e.Advance()
	var got []Coord
	for _, ev := range e.Events() {
		if ev.Type == EventDestroyed {
			got = append(got, ev.At)
		}
	}
	want := []Coord{C(1, 2), C(1, 1), C(1, 0)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("destroyed order = %v, want %v", got, want)
	}
}

func TestStraightFiveMakesColorBomb(t *testing.T) {
	e, score := newTestEngine(t, []string{
		"DBCDBC",
		"CDBCDB",
		"BCABCD",
		"AABAAC",
		"CDBCDB",
		"BCDBCD",
	}, 4)
	moved := e.grid.Get(C(2, 3))

	if err := e.AttemptSwap(C(2, 3), C(2, 2)); err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if e.Matches().Len() != 5 {
		t.Fatalf("matched %d pieces, want 5", e.Matches().Len())
	}

	e.Advance()
	if !moved.IsColorBomb() {
		t.Errorf("moved piece bomb = %v, want color", moved.Bomb)
	}
	if at, ok := e.grid.Find(moved); !ok || at != C(2, 2) {
		t.Errorf("bomb at %v,%v, want (2,2)", at, ok)
	}
	if score.total != 4*e.Config().BasePieceValue {
		t.Errorf("score = %d, want %d", score.total, 4*e.Config().BasePieceValue)
	}
	if e.Stats().ColorBombs != 1 {
		t.Errorf("Stats().ColorBombs = %d, want 1", e.Stats().ColorBombs)
	}
	var promoted bool
	for _, ev := range e.Events() {
		if ev.Type == EventPromoted && ev.PieceID == moved.ID && ev.Bomb == BombColor {
			promoted = true
		}
	}
	if !promoted {
		t.Error("expected a promoted event for the moved piece")
	}
}

func TestLShapeMakesAdjacentBomb(t *testing.T) {
	e, score := newTestEngine(t, []string{
		"DBCDBC",
		"CDACDB",
		"BCABCD",
		"AADABC",
		"CDBCDB",
		"BCDBCD",
	}, 4)
	moved := e.grid.Get(C(3, 2))

	if err := e.AttemptSwap(C(3, 2), C(2, 2)); err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if e.Matches().Len() != 5 {
		t.Fatalf("matched %d pieces, want 5", e.Matches().Len())
	}

	e.Advance()
	if !moved.IsAdjacentBomb() {
		t.Errorf("moved piece bomb = %v, want adjacent", moved.Bomb)
	}
	if e.grid.Get(C(2, 2)) != moved {
		t.Error("bomb should stay at the corner of the L")
	}
	if score.total != 4*e.Config().BasePieceValue {
		t.Errorf("score = %d, want %d", score.total, 4*e.Config().BasePieceValue)
	}
	if e.Stats().AdjacentBombs != 1 {
		t.Errorf("Stats().AdjacentBombs = %d, want 1", e.Stats().AdjacentBombs)
	}
}

func TestDestroyDamagesBreakableTiles(t *testing.T) {
	e, _ := newTestEngine(t, scenarioRows, 3)
	e.grid.SetTile(C(0, 2), 1)
	e.grid.SetTile(C(1, 2), 2)
	e.grid.SetTile(C(5, 5), 1)

	if err := e.AttemptSwap(C(3, 2), C(2, 2)); err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	e.Advance()

	if hp := e.grid.Tile(C(0, 2)); hp != 0 {
		t.Errorf("tile at (0,2) hp = %d, want 0", hp)
	}
	if hp := e.grid.Tile(C(1, 2)); hp != 1 {
		t.Errorf("tile at (1,2) hp = %d, want 1", hp)
	}
	if hp := e.grid.Tile(C(5, 5)); hp != 1 {
		t.Errorf("untouched tile hp = %d, want 1", hp)
	}
	if e.Stats().TilesCleared != 1 {
		t.Errorf("Stats().TilesCleared = %d, want 1", e.Stats().TilesCleared)
	}

	var removed, damaged bool
	for _, ev := range e.Events() {
		switch {
		case ev.Type == EventTileRemoved && ev.At == C(0, 2):
			removed = true
		case ev.Type == EventTileDamaged && ev.At == C(1, 2) && ev.HitPoints == 1:
			damaged = true
		}
	}
	if !removed || !damaged {
		t.Errorf("tile events removed=%v damaged=%v, want both", removed, damaged)
	}
}

func TestCollapse(t *testing.T) {
	e, _ := newTestEngine(t, []string{
		"A.B",
		".#.",
		"B.A",
		"..C",
		"C#.",
	}, 3)
	want := gridFromRows(t, []string{
		"...",
		".#.",
		"A.B",
		"B.A",
		"C#C",
	})

	e.collapse()
	if e.grid.String() != want.String() {
		t.Fatalf("collapse:\n%s\nwant:\n%s", e.grid, want)
	}

	once := e.grid.String()
	e.collapse()
	if e.grid.String() != once {
		t.Errorf("second collapse changed the board:\n%s", e.grid)
	}
}

func TestCollapseFallsThroughBlank(t *testing.T) {
	e, _ := newTestEngine(t, []string{"A", "#", "."}, 3)
	top := e.grid.Get(C(0, 2))

	e.collapse()
	if e.grid.Get(C(0, 0)) != top {
		t.Errorf("piece should fall past the blank:\n%s", e.grid)
	}
	evs := e.Events()
	if len(evs) != 1 || evs[0].Type != EventMoved || evs[0].From != C(0, 2) || evs[0].At != C(0, 0) {
		t.Errorf("unexpected events %+v", evs)
	}
}

func TestAdvanceIdleIsNoop(t *testing.T) {
	e, _ := newTestEngine(t, scenarioRows, 3)
	before := e.grid.Clone()

	if next := e.Advance(); next != PhaseIdle {
		t.Errorf("Advance() = %v, want idle", next)
	}
	if !e.grid.Equal(before) {
		t.Error("idle Advance changed the board")
	}
}

func TestResolveLeavesStableBoard(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		cfg := testConfig(4)
		cfg.Seed = seed
		score := &scoreCounter{}
		e, err := New(cfg, Layout{Width: 7, Height: 7}, score, nil)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		for move := 0; move < 12; move++ {
			if e.Deadlocked() {
				break
			}
			hint, ok := e.Hint()
			if !ok {
				t.Fatalf("seed %d: playable board has no hint:\n%s", seed, e.Grid())
			}
			before := score.total
			if err := e.AttemptSwap(hint.A, hint.B); err != nil {
				t.Fatalf("seed %d: hinted swap %v rejected: %v", seed, hint, err)
			}
			e.Resolve()
			e.Events()

			if HasAnyMatch(e.Grid()) {
				t.Fatalf("seed %d: match left after resolve:\n%s", seed, e.Grid())
			}
			if e.State() != StateMove || e.Phase() != PhaseIdle || e.Streak() != 1 {
				t.Fatalf("seed %d: engine not idle: %v/%v streak %d", seed, e.State(), e.Phase(), e.Streak())
			}
			if e.Grid().EmptyCount() != 0 {
				t.Fatalf("seed %d: %d empty cells after resolve", seed, e.Grid().EmptyCount())
			}
			gained := score.total - before
			if gained < 3*cfg.BasePieceValue || gained%cfg.BasePieceValue != 0 {
				t.Fatalf("seed %d: move scored %d", seed, gained)
			}
		}
	}
}
