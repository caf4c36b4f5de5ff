package core

import (
	"sort"
	"testing"
)

// scoreCounter records every score increase.
type scoreCounter struct {
	total int
	calls int
}

func (s *scoreCounter) IncreaseScore(n int) {
	s.total += n
	s.calls++
}

// gridFromRows builds a grid from rows written top row first.
// 'A'..'F' are kinds 0..5, '.' is empty and '#' is blank.
func gridFromRows(t *testing.T, rows []string) *Grid {
	t.Helper()
	h := len(rows)
	if h == 0 {
		t.Fatal("gridFromRows: no rows")
	}
	w := len(rows[0])
	g := NewGrid(w, h)
	id := 0
	for i, line := range rows {
		if len(line) != w {
			t.Fatalf("gridFromRows: row %d has width %d, want %d", i, len(line), w)
		}
		row := h - 1 - i
		for col, ch := range line {
			c := C(col, row)
			switch {
			case ch == '#':
				g.SetBlank(c)
			case ch == '.':
			case ch >= 'A' && ch <= 'F':
				id++
				g.Set(c, &Piece{ID: id, Kind: Kind(ch - 'A')})
			default:
				t.Fatalf("gridFromRows: bad cell %q", ch)
			}
		}
	}
	return g
}

// testConfig returns a deterministic config over the first n kinds.
func testConfig(n int) Config {
	cfg := DefaultConfig()
	cfg.Palette = AllKinds()[:n]
	cfg.Seed = 42
	return cfg
}

// newTestEngine builds an engine around a hand-written board.
func newTestEngine(t *testing.T, rows []string, kinds int) (*Engine, *scoreCounter) {
	t.Helper()
	g := gridFromRows(t, rows)
	score := &scoreCounter{}
	e, err := newEngine(testConfig(kinds), Layout{Width: g.W, Height: g.H}, score, nil)
	if err != nil {
		t.Fatalf("newEngine failed: %v", err)
	}
	e.grid = g
	e.nextID = len(g.Pieces()) + 100
	return e, score
}

// pieceIDs returns the sorted IDs of every live piece.
func pieceIDs(g *Grid) []int {
	ids := make([]int, 0)
	for _, p := range g.Pieces() {
		ids = append(ids, p.ID)
	}
	sort.Ints(ids)
	return ids
}
