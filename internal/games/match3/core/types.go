// Package core provides the rules engine for the match-3 puzzle.
// It is UI-agnostic: it owns the grid of pieces and exposes mutations,
// match results and events, leaving rendering and pacing to the caller.
//
// Coordinates use column/row with row 0 at the bottom of the board.
// Gravity pulls pieces toward row 0.
package core

import "fmt"

// Kind identifies a piece colour/tag. Kinds are compared by value only.
type Kind uint8

const (
	KindRed Kind = iota
	KindGreen
	KindBlue
	KindYellow
	KindPurple
	KindOrange
	KindCount // Sentinel value for iteration
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindRed:
		return "red"
	case KindGreen:
		return "green"
	case KindBlue:
		return "blue"
	case KindYellow:
		return "yellow"
	case KindPurple:
		return "purple"
	case KindOrange:
		return "orange"
	default:
		return fmt.Sprintf("kind%d", uint8(k))
	}
}

// ParseKind converts a palette name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "red", "r":
		return KindRed, true
	case "green", "g":
		return KindGreen, true
	case "blue", "b":
		return KindBlue, true
	case "yellow", "y":
		return KindYellow, true
	case "purple", "p":
		return KindPurple, true
	case "orange", "o":
		return KindOrange, true
	default:
		return KindRed, false
	}
}

// AllKinds returns every named kind in palette order.
func AllKinds() []Kind {
	return []Kind{KindRed, KindGreen, KindBlue, KindYellow, KindPurple, KindOrange}
}

// Bomb is the special status of a piece.
// A single field keeps color and adjacent bombs mutually exclusive.
type Bomb uint8

const (
	BombNone Bomb = iota
	BombColor
	BombAdjacent
)

// String returns the string representation of a bomb status.
func (b Bomb) String() string {
	switch b {
	case BombColor:
		return "color"
	case BombAdjacent:
		return "adjacent"
	default:
		return "none"
	}
}

// Piece is a grid-occupying puzzle element.
// The Grid owns every live piece; ID is a stable handle for the rendering layer.
type Piece struct {
	ID      int
	Kind    Kind
	Matched bool
	Bomb    Bomb
}

// IsColorBomb reports whether the piece is a color bomb.
func (p *Piece) IsColorBomb() bool {
	return p.Bomb == BombColor
}

// IsAdjacentBomb reports whether the piece is an adjacent-area bomb.
func (p *Piece) IsAdjacentBomb() bool {
	return p.Bomb == BombAdjacent
}

// Dir is a swap direction.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dcol, drow) offset for one step in this direction.
// Up increases the row.
func (d Dir) Delta() (dc, dr int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// GameState gates player interaction.
type GameState uint8

const (
	StateMove GameState = iota // player may act
	StateWait                  // a swap is resolving
)

// String returns the string representation of a game state.
func (s GameState) String() string {
	if s == StateWait {
		return "wait"
	}
	return "move"
}

// TileKind classifies a layout entry.
type TileKind uint8

const (
	TileNormal TileKind = iota
	TileBreakable
	TileBlank
)

// String returns the string representation of a tile kind.
func (k TileKind) String() string {
	switch k {
	case TileBreakable:
		return "breakable"
	case TileBlank:
		return "blank"
	default:
		return "normal"
	}
}

// ParseTileKind converts a layout name to a TileKind.
func ParseTileKind(s string) (TileKind, bool) {
	switch s {
	case "normal", "":
		return TileNormal, true
	case "breakable", "jelly":
		return TileBreakable, true
	case "blank":
		return TileBlank, true
	default:
		return TileNormal, false
	}
}

// ScoreSink receives score awarded for destroyed pieces.
type ScoreSink interface {
	IncreaseScore(n int)
}

// Swap is a pair of adjacent cells.
type Swap struct {
	A Coord
	B Coord
}

// String returns a string representation of the swap.
func (s Swap) String() string {
	return s.A.String() + "<->" + s.B.String()
}
