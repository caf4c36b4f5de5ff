package core

// WouldMatch reports whether placing kind at c would complete a run of three
// with the two pieces immediately to the left or the two immediately below.
// Only those neighbours are inspected: it is used while filling the board
// column by column from the bottom, where cells right and above are not final.
func WouldMatch(g *Grid, c Coord, kind Kind) bool {
	if sameKind(g, kind, c.Add(-1, 0), c.Add(-2, 0)) {
		return true
	}
	return sameKind(g, kind, c.Add(0, -1), c.Add(0, -2))
}

// sameKind reports whether every cell holds a piece of the given kind.
// Empty, blank and out-of-range cells never match.
func sameKind(g *Grid, kind Kind, cells ...Coord) bool {
	for _, c := range cells {
		k, ok := g.KindAt(c)
		if !ok || k != kind {
			return false
		}
	}
	return true
}

// runAt reports whether c starts a run of three toward (dc, dr).
func runAt(g *Grid, c Coord, dc, dr int) bool {
	k, ok := g.KindAt(c)
	if !ok {
		return false
	}
	return sameKind(g, k, c.Add(dc, dr), c.Add(2*dc, 2*dr))
}

// HasAnyMatch reports whether three or more same-kind pieces are contiguous
// anywhere on the board.
func HasAnyMatch(g *Grid) bool {
	for col := 0; col < g.W; col++ {
		for row := 0; row < g.H; row++ {
			c := C(col, row)
			if runAt(g, c, 1, 0) || runAt(g, c, 0, 1) {
				return true
			}
		}
	}
	return false
}

// MatchSet is the set of pieces flagged Matched during one resolution pass,
// in column-major order (left to right, bottom to top).
type MatchSet struct {
	Coords []Coord
}

// Len returns the number of matched pieces.
func (m MatchSet) Len() int {
	return len(m.Coords)
}

// Empty reports whether the set holds no pieces.
func (m MatchSet) Empty() bool {
	return len(m.Coords) == 0
}

// Contains reports whether c is in the set.
func (m MatchSet) Contains(c Coord) bool {
	for _, mc := range m.Coords {
		if mc == c {
			return true
		}
	}
	return false
}

// IsStraightLine reports whether exactly five matched pieces share the first
// matched piece's row or its column.
func (m MatchSet) IsStraightLine() bool {
	if m.Empty() {
		return false
	}
	first := m.Coords[0]
	horizontal, vertical := 0, 0
	for _, c := range m.Coords {
		if c.Row == first.Row {
			horizontal++
		}
		if c.Col == first.Col {
			vertical++
		}
	}
	return horizontal == 5 || vertical == 5
}

// MarkMatches flags every piece in a run of three or more as Matched and
// returns the resulting set. With detonate set, matched bombs extend the set
// with their blast area.
func MarkMatches(g *Grid, detonate bool) MatchSet {
	for col := 0; col < g.W; col++ {
		for row := 0; row < g.H; row++ {
			c := C(col, row)
			if runAt(g, c, 1, 0) {
				markCells(g, c, c.Add(1, 0), c.Add(2, 0))
			}
			if runAt(g, c, 0, 1) {
				markCells(g, c, c.Add(0, 1), c.Add(0, 2))
			}
		}
	}
	if detonate {
		detonateBombs(g)
	}
	return collectMatched(g)
}

func markCells(g *Grid, cells ...Coord) {
	for _, c := range cells {
		if p := g.Get(c); p != nil {
			p.Matched = true
		}
	}
}

// collectMatched gathers every Matched piece in column-major order.
func collectMatched(g *Grid) MatchSet {
	var set MatchSet
	for col := 0; col < g.W; col++ {
		for row := 0; row < g.H; row++ {
			c := C(col, row)
			if p := g.Get(c); p != nil && p.Matched {
				set.Coords = append(set.Coords, c)
			}
		}
	}
	return set
}

// ClearMatched resets the Matched flag on every piece.
func ClearMatched(g *Grid) {
	for _, p := range g.Pieces() {
		p.Matched = false
	}
}
