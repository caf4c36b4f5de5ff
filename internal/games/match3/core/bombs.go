package core

// detonateBombs extends the matched set with the blast of every matched bomb.
// An adjacent bomb takes its 3x3 neighbourhood, a color bomb takes every piece
// of its own kind. Bombs caught in a blast detonate in turn.
func detonateBombs(g *Grid) {
	fired := make(map[*Piece]bool)
	for {
		progressed := false
		for col := 0; col < g.W; col++ {
			for row := 0; row < g.H; row++ {
				c := C(col, row)
				p := g.Get(c)
				if p == nil || !p.Matched || p.Bomb == BombNone || fired[p] {
					continue
				}
				fired[p] = true
				progressed = true
				switch p.Bomb {
				case BombAdjacent:
					markAdjacent(g, c)
				case BombColor:
					markKind(g, p.Kind)
				}
			}
		}
		if !progressed {
			return
		}
	}
}

func markAdjacent(g *Grid, center Coord) {
	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			markCells(g, center.Add(dc, dr))
		}
	}
}

func markKind(g *Grid, kind Kind) {
	for _, p := range g.Pieces() {
		if p.Kind == kind {
			p.Matched = true
		}
	}
}

// Move identifies the pieces of the player's swap: Moved is the piece the
// player dragged, Other is the piece it was exchanged with.
type Move struct {
	Moved *Piece
	Other *Piece
}

// promotionTarget returns the moved piece if it is matched, otherwise the
// other piece if that one is matched.
func (m Move) promotionTarget() *Piece {
	if m.Moved != nil && m.Moved.Matched {
		return m.Moved
	}
	if m.Moved != nil && m.Other != nil && m.Other.Matched {
		return m.Other
	}
	return nil
}

// chooseBomb picks the bomb a match set earns, BombNone if none.
// Sets of 4 or 7 earn an adjacent bomb. Sets of 5 or 8 earn a color bomb
// when five pieces form a straight line and an adjacent bomb otherwise.
func chooseBomb(set MatchSet) Bomb {
	switch set.Len() {
	case 4, 7:
		return BombAdjacent
	case 5, 8:
		if set.IsStraightLine() {
			return BombColor
		}
		return BombAdjacent
	default:
		return BombNone
	}
}

// promote turns the move's target piece into the bomb earned by set.
// The promoted piece loses its Matched flag so it survives the destroy pass.
// Returns the promoted piece, or nil.
func promote(set MatchSet, move Move) (*Piece, Bomb) {
	bomb := chooseBomb(set)
	if bomb == BombNone {
		return nil, BombNone
	}
	target := move.promotionTarget()
	if target == nil || target.Bomb == bomb {
		return nil, BombNone
	}
	target.Matched = false
	target.Bomb = bomb
	return target, bomb
}
