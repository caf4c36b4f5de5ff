package core

import "strings"

// Grid is the authoritative store of pieces plus the blank mask and the
// breakable tile overlay. Cells are stored in row-major order: index = row*W + col.
//
// Grid performs no game logic. It only refuses writes that would put a piece
// into a blank or out-of-range cell.
type Grid struct {
	W int
	H int

	cells []*Piece
	blank []bool
	tiles []int // breakable tile hit points, 0 = no tile
}

// NewGrid creates an empty grid with no blanks and no tiles.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		cells: make([]*Piece, w*h),
		blank: make([]bool, w*h),
		tiles: make([]int, w*h),
	}
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.W + c.Col
}

// InBounds returns true if the coordinate is within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < g.W && c.Row >= 0 && c.Row < g.H
}

// Get returns the piece at c, or nil for empty, blank or out-of-range cells.
func (g *Grid) Get(c Coord) *Piece {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[g.index(c)]
}

// Set places p at c (nil clears the cell).
// Writes to blank or out-of-range cells are ignored.
func (g *Grid) Set(c Coord, p *Piece) {
	if !g.InBounds(c) || g.blank[g.index(c)] {
		return
	}
	g.cells[g.index(c)] = p
}

// Swap exchanges the contents of two cells. It does not check adjacency.
// Swapping with a blank or out-of-range cell is a no-op.
func (g *Grid) Swap(a, b Coord) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return
	}
	ia, ib := g.index(a), g.index(b)
	if g.blank[ia] || g.blank[ib] {
		return
	}
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// KindAt returns the kind of the piece at c and whether a piece is there.
func (g *Grid) KindAt(c Coord) (Kind, bool) {
	p := g.Get(c)
	if p == nil {
		return 0, false
	}
	return p.Kind, true
}

// IsBlank reports whether c is a permanently empty cell.
// Out-of-range cells are not blank.
func (g *Grid) IsBlank(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.blank[g.index(c)]
}

// SetBlank marks c as blank and drops any piece it held.
func (g *Grid) SetBlank(c Coord) {
	if !g.InBounds(c) {
		return
	}
	i := g.index(c)
	g.blank[i] = true
	g.cells[i] = nil
	g.tiles[i] = 0
}

// Tile returns the hit points of the breakable tile at c, 0 if none.
func (g *Grid) Tile(c Coord) int {
	if !g.InBounds(c) {
		return 0
	}
	return g.tiles[g.index(c)]
}

// SetTile places a breakable tile with hp hit points at c.
func (g *Grid) SetTile(c Coord, hp int) {
	if !g.InBounds(c) || g.blank[g.index(c)] {
		return
	}
	if hp < 0 {
		hp = 0
	}
	g.tiles[g.index(c)] = hp
}

// DamageTile removes one hit point from the tile at c.
// Returns the remaining hit points and whether a tile was present.
func (g *Grid) DamageTile(c Coord) (remaining int, hit bool) {
	if g.Tile(c) <= 0 {
		return 0, false
	}
	i := g.index(c)
	g.tiles[i]--
	if g.tiles[i] < 0 {
		g.tiles[i] = 0
	}
	return g.tiles[i], true
}

// TileCount returns the number of breakable tiles still on the board.
func (g *Grid) TileCount() int {
	count := 0
	for _, hp := range g.tiles {
		if hp > 0 {
			count++
		}
	}
	return count
}

// Playable returns every non-blank coordinate, column by column from the bottom.
func (g *Grid) Playable() []Coord {
	coords := make([]Coord, 0, g.W*g.H)
	for col := 0; col < g.W; col++ {
		for row := 0; row < g.H; row++ {
			if !g.blank[row*g.W+col] {
				coords = append(coords, C(col, row))
			}
		}
	}
	return coords
}

// Pieces returns every live piece, column by column from the bottom.
func (g *Grid) Pieces() []*Piece {
	pieces := make([]*Piece, 0, len(g.cells))
	for col := 0; col < g.W; col++ {
		for row := 0; row < g.H; row++ {
			if p := g.cells[row*g.W+col]; p != nil {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// Find returns the position of p on the grid.
func (g *Grid) Find(p *Piece) (Coord, bool) {
	if p == nil {
		return Coord{}, false
	}
	for i, q := range g.cells {
		if q == p {
			return C(i%g.W, i/g.W), true
		}
	}
	return Coord{}, false
}

// EmptyCount returns the number of non-blank cells without a piece.
func (g *Grid) EmptyCount() int {
	count := 0
	for i, p := range g.cells {
		if p == nil && !g.blank[i] {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid. Pieces are copied, not shared.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		W:     g.W,
		H:     g.H,
		cells: make([]*Piece, len(g.cells)),
		blank: make([]bool, len(g.blank)),
		tiles: make([]int, len(g.tiles)),
	}
	for i, p := range g.cells {
		if p != nil {
			cp := *p
			clone.cells[i] = &cp
		}
	}
	copy(clone.blank, g.blank)
	copy(clone.tiles, g.tiles)
	return clone
}

// Equal returns true if both grids hold the same pieces (by value) in the
// same cells with the same blanks and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.cells {
		if g.blank[i] != other.blank[i] || g.tiles[i] != other.tiles[i] {
			return false
		}
		a, b := g.cells[i], other.cells[i]
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

// String renders the grid top row first: kinds as digits, '.' for empty
// and '#' for blank cells.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for row := g.H - 1; row >= 0; row-- {
		for col := 0; col < g.W; col++ {
			i := row*g.W + col
			switch {
			case g.blank[i]:
				sb.WriteByte('#')
			case g.cells[i] == nil:
				sb.WriteByte('.')
			default:
				sb.WriteByte('0' + byte(g.cells[i].Kind))
			}
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
