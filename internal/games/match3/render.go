package match3

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	platformcore "github.com/vovakirdan/match3-arcade/internal/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
)

const (
	cellWidth = 3 // marker, glyph, marker
	hudHeight = 3
)

// glyphSet is the rune table the board is drawn with. Kinds get distinct
// glyphs so they stay apart without color.
type glyphSet struct {
	kinds        map[core.Kind]rune
	colorBomb    rune
	adjacentBomb rune
	flash        rune
	tile         rune
	empty        rune
	frame        platformcore.Frame
}

var unicodeGlyphs = glyphSet{
	kinds: map[core.Kind]rune{
		core.KindRed:    '●',
		core.KindGreen:  '▲',
		core.KindBlue:   '■',
		core.KindYellow: '★',
		core.KindPurple: '◆',
		core.KindOrange: '♣',
	},
	colorBomb:    '✦',
	adjacentBomb: '◎',
	flash:        '✶',
	tile:         '░',
	empty:        '·',
	frame:        platformcore.FrameLight,
}

var asciiGlyphs = glyphSet{
	kinds: map[core.Kind]rune{
		core.KindRed:    'R',
		core.KindGreen:  'G',
		core.KindBlue:   'B',
		core.KindYellow: 'Y',
		core.KindPurple: 'P',
		core.KindOrange: 'O',
	},
	colorBomb:    '*',
	adjacentBomb: '@',
	flash:        '+',
	tile:         '=',
	empty:        '.',
	frame:        platformcore.FrameASCII,
}

func (g *Game) glyphs() glyphSet {
	if g.runtime.ASCII {
		return asciiGlyphs
	}
	return unicodeGlyphs
}

var kindColors = map[core.Kind]platformcore.Color{
	core.KindRed:    platformcore.ColorBrightRed,
	core.KindGreen:  platformcore.ColorBrightGreen,
	core.KindBlue:   platformcore.ColorBrightBlue,
	core.KindYellow: platformcore.ColorBrightYellow,
	core.KindPurple: platformcore.ColorBrightMagenta,
	core.KindOrange: platformcore.ColorOrange,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	grid := g.engine.Grid()
	boardW := grid.W*cellWidth + 2
	boardH := grid.H + 2
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)

	board := platformcore.NewRect(boardX, boardY, boardW, boardH)
	dst.DrawFrame(board, platformcore.ColorGray, g.glyphs().frame)
	g.renderBoard(dst, boardX+1, boardY+1)

	if g.message != "" {
		msgX := boardX + (boardW-runewidth.StringWidth(g.message))/2
		dst.DrawTextColored(msgX, boardY+boardH, g.message, platformcore.ColorBrightYellow)
	}

	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score, moves and layout name.
func (g *Game) renderHUD(dst *platformcore.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColored(0, g.Title(), platformcore.ColorBrightWhite)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	if left := g.MovesLeft(); left >= 0 {
		info = fmt.Sprintf("Moves: %d", left)
	} else {
		info = fmt.Sprintf("Moves: %d", g.movesUsed)
	}
	infoX := max(boardX+boardW-len(info), boardX)
	infoColor := platformcore.ColorDefault
	if left := g.MovesLeft(); left >= 0 && left <= 5 {
		infoColor = platformcore.ColorBrightRed
	}
	dst.DrawTextColored(infoX, 1, info, infoColor)

	status := fmt.Sprintf("Layout: %s", g.layout)
	if streak := g.engine.Streak(); streak > 1 {
		status = fmt.Sprintf("Combo x%d", streak)
	}
	dst.DrawTextCenteredColored(2, status, platformcore.ColorGray)
}

// renderBoard draws every cell, top row first. Row 0 is the bottom.
func (g *Game) renderBoard(dst *platformcore.Screen, originX, originY int) {
	grid := g.engine.Grid()
	for row := 0; row < grid.H; row++ {
		y := originY + grid.H - 1 - row
		for col := 0; col < grid.W; col++ {
			g.renderCell(dst, originX+col*cellWidth, y, core.C(col, row))
		}
	}
}

// renderCell draws one board cell: a glyph between two markers.
func (g *Game) renderCell(dst *platformcore.Screen, x, y int, c core.Coord) {
	grid := g.engine.Grid()
	if grid.IsBlank(c) {
		return
	}
	glyphs := g.glyphs()

	left, right := ' ', ' '
	markColor := platformcore.ColorDarkGray
	if hp := grid.Tile(c); hp > 0 {
		left, right = glyphs.tile, glyphs.tile
		if hp > 1 && hp < 10 {
			right = rune('0' + hp)
		}
		markColor = platformcore.ColorCyan
	}
	if g.hintTicks > 0 && (c == g.hint.A || c == g.hint.B) {
		left, right = '(', ')'
		markColor = platformcore.ColorBrightGreen
	}
	if c == g.cursor {
		left, right = '[', ']'
		markColor = platformcore.ColorBrightWhite
	}
	if g.selected && c == g.selection {
		left, right = '<', '>'
		markColor = platformcore.ColorBrightYellow
	}
	dst.SetColored(x, y, left, markColor)
	dst.SetColored(x+2, y, right, markColor)

	p := grid.Get(c)
	if p == nil {
		if g.flash[c] > 0 {
			dst.SetColored(x+1, y, glyphs.flash, platformcore.ColorBrightWhite)
			return
		}
		dst.SetColored(x+1, y, glyphs.empty, platformcore.ColorDarkGray)
		return
	}
	glyph, color, attr := glyphs.piece(p)
	if g.selected && c == g.selection {
		attr |= platformcore.AttrReverse
	}
	dst.SetStyled(x+1, y, glyph, color, attr)
}

// piece returns the rune, color and attributes a piece is drawn with.
// Bombs are bold.
func (gs glyphSet) piece(p *core.Piece) (rune, platformcore.Color, platformcore.Attr) {
	color, ok := kindColors[p.Kind]
	if !ok {
		color = platformcore.ColorDefault
	}
	switch p.Bomb {
	case core.BombColor:
		return gs.colorBomb, color, platformcore.AttrBold
	case core.BombAdjacent:
		return gs.adjacentBomb, color, platformcore.AttrBold
	}
	glyph, ok := gs.kinds[p.Kind]
	if !ok {
		glyph = '?'
	}
	return glyph, color, 0
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, board platformcore.Rect) {
	if g.paused {
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		reason := "Out of moves"
		if g.stuck {
			reason = "No moves left on the board"
		}
		scoreStr := fmt.Sprintf("Score: %d", g.score)
		g.drawOverlay(dst, board, "GAME OVER", reason, scoreStr, "Press R to restart")
	}
}

// drawOverlay draws a text box centered on the board.
func (g *Game) drawOverlay(dst *platformcore.Screen, board platformcore.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, runewidth.StringWidth(line))
	}

	box := board.Centered(maxLen+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawFrame(box, platformcore.ColorBrightWhite, g.glyphs().frame)

	for i, line := range lines {
		x := box.X + (box.W-runewidth.StringWidth(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
