package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3-arcade/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes. ColorDefault has no
// entry and keeps the terminal's foreground.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorDarkGray:      "238",
}

// cellStyle is the part of a cell that picks its escape sequence.
type cellStyle struct {
	color core.Color
	attr  core.Attr
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{color: c.Color, attr: c.Attr}
}

// style builds the lipgloss style for a color and attribute pair.
func (k cellStyle) style() lipgloss.Style {
	style := lipgloss.NewStyle()
	if code, ok := colorCodes[k.color]; ok {
		style = style.Foreground(lipgloss.Color(code))
	}
	if k.attr.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if k.attr.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color and attributes share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			key := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != key {
					break
				}
				// Zero marks the second half of a wide rune
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}

			if key == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[key]
			if !ok {
				style = key.style()
				styles[key] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
