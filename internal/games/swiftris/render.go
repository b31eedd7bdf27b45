package swiftris

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-swiftris/internal/core"
	"github.com/vovakirdan/tui-swiftris/internal/games/swiftris/engine"
)

const (
	cellWidth  = 2  // Characters per grid column
	panelGap   = 2  // Space between the board and the side panel
	panelWidth = 14 // Side panel: preview box and counters
	previewW   = 4*cellWidth + 2
	previewH   = 4 + 2
)

var (
	blockRunes = []rune("██")
	ghostRunes = []rune("░░")
	flashRunes = []rune("▓▓")
)

var numbers = message.NewPrinter(language.English)

// grouped formats n with thousands separators.
func grouped(n int) string {
	return numbers.Sprintf("%d", n)
}

// cellView is a settled cell captured for phase animations.
type cellView struct {
	filled bool
	color  engine.Color
}

func (g *Game) captureBoard() [][]cellView {
	grid := g.eng.Grid()
	rows := make([][]cellView, grid.Rows())
	for r := range rows {
		rows[r] = make([]cellView, grid.Columns())
	}
	grid.Each(func(column, row int, b *engine.Block) {
		rows[row][column] = cellView{filled: true, color: b.Color}
	})
	return rows
}

func blockColor(c engine.Color) core.Color {
	switch c {
	case engine.ColorBlue:
		return core.ColorBlue
	case engine.ColorOrange:
		return core.ColorOrange
	case engine.ColorPurple:
		return core.ColorPurple
	case engine.ColorRed:
		return core.ColorRed
	case engine.ColorTeal:
		return core.ColorTeal
	case engine.ColorYellow:
		return core.ColorYellow
	default:
		return core.ColorWhite
	}
}

// layoutSize is the screen area the game needs: title row, framed board and
// side panel.
func (g *Game) layoutSize() (int, int) {
	boardW := g.cfg.Board.Columns*cellWidth + 2
	boardH := g.cfg.Board.Rows + 2
	return boardW + panelGap + panelWidth, boardH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.eng == nil {
		g.renderTooSmall(dst)
		return
	}

	totalW, totalH := g.layoutSize()
	ox := max(0, (g.screenW-totalW)/2)
	oy := max(0, (g.screenH-totalH)/2)

	board := core.NewRect(ox, oy+1, g.cfg.Board.Columns*cellWidth+2, g.cfg.Board.Rows+2)
	dst.DrawTextColored(board.X+(board.W-15)/2, oy, "S W I F T R I S", core.ColorTeal)
	dst.DrawBox(board, core.ColorGray)

	inner := board.Inset(1)
	switch g.phase {
	case phaseClearing:
		g.renderClearing(dst, inner)
	case phaseEnding:
		g.renderEnding(dst, inner)
	case phaseOver:
	default:
		g.renderBoard(dst, inner)
	}

	g.renderPanel(dst, board.Right()+panelGap, board.Y)
	g.renderOverlays(dst, board)
}

func drawCell(dst *core.Screen, area core.Rect, column, row int, runes []rune, c core.Color) {
	x := area.X + column*cellWidth
	for i, r := range runes {
		dst.SetColored(x+i, area.Y+row, r, c)
	}
}

func (g *Game) renderBoard(dst *core.Screen, area core.Rect) {
	g.eng.Grid().Each(func(column, row int, b *engine.Block) {
		drawCell(dst, area, column, row, blockRunes, blockColor(b.Color))
	})

	shape := g.eng.FallingShape()
	if shape == nil {
		return
	}
	if d := g.ghostDistance(); d > 0 {
		for _, b := range shape.Blocks() {
			drawCell(dst, area, b.Column, b.Row+d, ghostRunes, core.ColorGray)
		}
	}
	for _, b := range shape.Blocks() {
		drawCell(dst, area, b.Column, b.Row, blockRunes, blockColor(b.Color))
	}
}

// ghostDistance is how many rows the falling shape would drop.
func (g *Game) ghostDistance() int {
	shape := g.eng.FallingShape()
	grid := g.eng.Grid()
	for d := 0; ; d++ {
		for _, b := range shape.Blocks() {
			column, row := b.Column, b.Row+d+1
			if !grid.InBounds(column, row) || grid.Get(column, row) != nil {
				return d
			}
		}
	}
}

// renderClearing shows the board as it was before the clear, removed rows
// blinking.
func (g *Game) renderClearing(dst *core.Screen, area core.Rect) {
	on := (g.phaseTicks/3)%2 == 0
	for row, cells := range g.frozen {
		flash := g.flashing[row]
		for column, cell := range cells {
			switch {
			case flash && on:
				drawCell(dst, area, column, row, flashRunes, core.ColorBrightWhite)
			case flash:
			case cell.filled:
				drawCell(dst, area, column, row, blockRunes, blockColor(cell.color))
			}
		}
	}
}

// renderEnding empties the frozen board from the bottom up.
func (g *Game) renderEnding(dst *core.Screen, area core.Rect) {
	total := g.cfg.Animation.GameOverTicks
	rows := len(g.frozen)
	hidden := 0
	if total > 0 {
		hidden = rows * (total - g.phaseTicks) / total
	}
	for row := 0; row < rows-hidden; row++ {
		for column, cell := range g.frozen[row] {
			if cell.filled {
				drawCell(dst, area, column, row, blockRunes, blockColor(cell.color))
			}
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	box := core.NewRect(x, y, previewW, previewH)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColored(x+3, y, "NEXT", core.ColorWhite)

	if next := g.eng.NextShape(); next != nil && g.phase != phaseOver {
		area := box.Inset(1)
		for _, b := range next.Blocks() {
			column := b.Column - g.cfg.Preview.Column + 1
			row := b.Row - g.cfg.Preview.Row
			drawCell(dst, area, column, row, blockRunes, blockColor(b.Color))
		}
	}

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", g.score},
		{"LEVEL", g.level},
		{"LINES", g.lines},
		{"BEST", g.best},
	}
	sy := box.Bottom() + 1
	for i, s := range stats {
		dst.DrawTextColored(x, sy+i*2, s.label, core.ColorGray)
		dst.DrawTextColored(x, sy+i*2+1, grouped(s.value), core.ColorBrightWhite)
	}

	help := []string{"←→ move", "↑ rotate", "↓ soft drop", "␣ drop", "P pause"}
	hy := sy + len(stats)*2 + 1
	for i, line := range help {
		dst.DrawTextColored(x, hy+i, line, core.ColorGray)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	centered := func(y int, text string, c core.Color) {
		n := len([]rune(text))
		dst.DrawTextColored(board.X+(board.W-n)/2, y, text, c)
	}
	mid := board.Y + board.H/2

	switch {
	case g.phase == phaseOver:
		centered(mid-2, "GAME OVER", core.ColorRed)
		centered(mid, "Score "+grouped(g.score), core.ColorBrightWhite)
		if g.score > 0 && g.score >= g.best {
			centered(mid+1, "New best!", core.ColorYellow)
		}
		centered(mid+3, "R restart", core.ColorGray)
		centered(mid+4, "Q quit", core.ColorGray)
	case g.paused:
		centered(mid, "PAUSED", core.ColorYellow)
		centered(mid+2, "P resume", core.ColorGray)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, numbers.Sprintf("Need %dx%d", w, h), core.ColorGray)
}
