package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors. ColorDefault leaves the terminal color unchanged.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// Cell is one character position of a Screen.
type Cell struct {
	Rune  rune
	Color Color
	Attr  Attr
}

// Attr is a set of text attributes of a screen cell.
type Attr uint8

// Cell attributes. They combine with |.
const (
	AttrBold Attr = 1 << iota
	AttrReverse
)

// Has reports whether every attribute in flag is set.
func (a Attr) Has(flag Attr) bool {
	return a&flag == flag
}
