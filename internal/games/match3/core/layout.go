package core

// applyLayout marks blank cells and places breakable tiles.
func (e *Engine) applyLayout(layout Layout) {
	for _, t := range layout.Tiles {
		c := C(t.Col, t.Row)
		switch t.Kind {
		case TileBlank:
			e.grid.SetBlank(c)
		case TileBreakable:
			hp := t.HitPoints
			if hp == 0 {
				hp = e.cfg.TileHitPoints
			}
			e.grid.SetTile(c, hp)
		}
	}
}

// fill places a fresh piece in every empty non-blank cell, column by column
// from the bottom, so that each placement can be checked against the pieces
// to its left and below.
func (e *Engine) fill() {
	for _, c := range e.grid.Playable() {
		if e.grid.Get(c) != nil {
			continue
		}
		kind := e.drawKind(c)
		p := e.newPiece(kind)
		e.grid.Set(c, p)
		e.emit(Event{
			Type:     EventSpawned,
			PieceID:  p.ID,
			Kind:     kind,
			At:       c,
			SpawnRow: c.Row + e.layout.Offset,
		})
	}
}

// drawKind draws a palette kind for c, redrawing while the draw would
// complete a run. After MaxPlacementRetries redraws the last draw is kept;
// the next cascade pass clears any match it leaves.
func (e *Engine) drawKind(c Coord) Kind {
	kind := e.cfg.Palette[e.rng.Intn(len(e.cfg.Palette))]
	retries := 0
	for WouldMatch(e.grid, c, kind) && retries < e.cfg.MaxPlacementRetries {
		kind = e.cfg.Palette[e.rng.Intn(len(e.cfg.Palette))]
		retries++
	}
	if WouldMatch(e.grid, c, kind) {
		e.stats.Saturations++
		e.logger.Debug("placement retries exhausted", "cell", c, "kind", kind, "retries", retries)
	}
	return kind
}

func (e *Engine) newPiece(kind Kind) *Piece {
	e.nextID++
	return &Piece{ID: e.nextID, Kind: kind}
}

// generate clears every piece and fills the board from scratch.
func (e *Engine) generate() {
	for _, c := range e.grid.Playable() {
		e.grid.Set(c, nil)
	}
	e.fill()
}
