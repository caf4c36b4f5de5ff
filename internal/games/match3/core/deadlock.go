package core

// FindMoves lists every adjacent swap that would create a match, testing each
// piece against its right and upper neighbour. The grid is swapped in place
// and restored after every test. A positive limit stops the search early.
func FindMoves(g *Grid, limit int) []Swap {
	var moves []Swap
	for col := 0; col < g.W; col++ {
		for row := 0; row < g.H; row++ {
			c := C(col, row)
			if g.Get(c) == nil {
				continue
			}
			for _, n := range [2]Coord{c.Add(1, 0), c.Add(0, 1)} {
				if !swapMatches(g, c, n) {
					continue
				}
				moves = append(moves, Swap{A: c, B: n})
				if limit > 0 && len(moves) >= limit {
					return moves
				}
			}
		}
	}
	return moves
}

// swapMatches speculatively swaps a and b and reports whether the board then
// has a match. The swap is always reverted.
func swapMatches(g *Grid, a, b Coord) bool {
	if g.Get(a) == nil || g.Get(b) == nil {
		return false
	}
	g.Swap(a, b)
	found := HasAnyMatch(g)
	g.Swap(a, b)
	return found
}

// IsDeadlocked reports whether no single adjacent swap would create a match.
func IsDeadlocked(g *Grid) bool {
	return len(FindMoves(g, 1)) == 0
}

// Hint returns one swap that creates a match.
func (e *Engine) Hint() (Swap, bool) {
	moves := FindMoves(e.grid, 1)
	if len(moves) == 0 {
		return Swap{}, false
	}
	return moves[0], true
}

// Moves returns every swap that creates a match.
func (e *Engine) Moves() []Swap {
	return FindMoves(e.grid, 0)
}

// shuffle redistributes the live pieces until the board has no match and at
// least one legal move. After MaxShuffleAttempts it regenerates the board from
// the palette, and after MaxRegenerations it keeps the last board and flags
// the engine as deadlocked.
func (e *Engine) shuffle() {
	e.stats.Shuffles++
	defer e.emit(Event{Type: EventShuffled})

	for attempt := 1; attempt <= e.cfg.MaxShuffleAttempts; attempt++ {
		e.redistribute()
		if e.playable() {
			e.deadlocked = false
			e.logger.Info("board shuffled", "attempts", attempt)
			return
		}
	}

	for regen := 1; regen <= e.cfg.MaxRegenerations; regen++ {
		e.stats.Regenerations++
		e.generate()
		if e.playable() {
			e.deadlocked = false
			e.logger.Info("board regenerated", "regenerations", regen)
			return
		}
	}

	e.deadlocked = true
	e.logger.Warn("no playable arrangement found",
		"shuffles", e.cfg.MaxShuffleAttempts,
		"regenerations", e.cfg.MaxRegenerations)
}

func (e *Engine) playable() bool {
	return !HasAnyMatch(e.grid) && !IsDeadlocked(e.grid)
}

// redistribute places every live piece on a random non-blank cell, rejecting
// draws that would complete a run with the cells to the left or below.
func (e *Engine) redistribute() {
	pool := e.grid.Pieces()
	cells := e.grid.Playable()
	for _, c := range cells {
		e.grid.Set(c, nil)
	}

	for _, c := range cells {
		if len(pool) == 0 {
			break
		}
		idx := e.rng.Intn(len(pool))
		retries := 0
		for WouldMatch(e.grid, c, pool[idx].Kind) && retries < e.cfg.MaxPlacementRetries {
			idx = e.rng.Intn(len(pool))
			retries++
		}
		if WouldMatch(e.grid, c, pool[idx].Kind) {
			e.stats.Saturations++
			e.logger.Debug("shuffle retries exhausted", "cell", c, "kind", pool[idx].Kind)
		}
		e.grid.Set(c, pool[idx])
		pool[idx] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
}
