package swiftris

import (
	"strings"

	"github.com/vovakirdan/tui-swiftris/internal/games/swiftris/engine"
)

// StateType names the phase a snapshot was taken in.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateClearing    StateType = "clearing"
	StateEnding      StateType = "ending"
	StateGameOver    StateType = "game_over"
	StatePaused      StateType = "paused"
	StatePausedSmall StateType = "paused_small_window"
)

// ShapeView describes a shape without exposing engine pointers.
type ShapeView struct {
	Kind        string
	Orientation int
	Column      int
	Row         int
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Score   int
	Level   int
	Lines   int
	Pieces  int
	State   StateType
	Board   []string // One string per row; '.' is empty, otherwise the color initial
	Falling *ShapeView
	Next    *ShapeView
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.phase == phaseOver:
		state = StateGameOver
	case g.phase == phaseEnding:
		state = StateEnding
	case g.paused:
		state = StatePaused
	case g.phase == phaseClearing:
		state = StateClearing
	}

	grid := g.eng.Grid()
	board := make([]string, grid.Rows())
	for row := range board {
		var sb strings.Builder
		for column := 0; column < grid.Columns(); column++ {
			if b := grid.Get(column, row); b != nil {
				sb.WriteByte(b.Color.String()[0])
			} else {
				sb.WriteByte('.')
			}
		}
		board[row] = sb.String()
	}

	return Snapshot{
		Tick:    g.tick,
		Score:   g.score,
		Level:   g.level,
		Lines:   g.lines,
		Pieces:  g.pieces,
		State:   state,
		Board:   board,
		Falling: g.shapeView(g.eng.FallingShape()),
		Next:    g.shapeView(g.eng.NextShape()),
	}
}

func (g *Game) shapeView(s *engine.Shape) *ShapeView {
	if s == nil {
		return nil
	}
	return &ShapeView{
		Kind:        s.Kind().String(),
		Orientation: s.Orientation().Degrees(),
		Column:      s.Column(),
		Row:         s.Row(),
	}
}
