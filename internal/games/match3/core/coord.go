package core

import "fmt"

// Coord is a cell position. Col grows to the right, Row grows upward.
type Coord struct {
	Col int
	Row int
}

// C is a convenience constructor for Coord.
func C(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Add returns a new Coord offset by (dc, dr).
func (c Coord) Add(dc, dr int) Coord {
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

// Step returns the neighbouring Coord in the given direction.
func (c Coord) Step(d Dir) Coord {
	dc, dr := d.Delta()
	return c.Add(dc, dr)
}

// Adjacent reports whether two cells differ by exactly one in exactly one axis.
func (c Coord) Adjacent(other Coord) bool {
	dc := c.Col - other.Col
	dr := c.Row - other.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc+dr == 1
}
