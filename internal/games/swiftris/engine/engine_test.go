package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *Queue) {
	t.Helper()
	e, err := New(DefaultConfig(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	q := NewQueue()
	e.SetListener(q)
	return e, q
}

// place puts a shape in play at the given anchor, bypassing the factory.
func place(e *Engine, kind Kind, column, row int, o Orientation) *Shape {
	e.started = true
	e.falling = NewShape(kind, column, row, o, ColorBlue)
	return e.falling
}

// fillRow occupies every cell of row except the listed columns.
func fillRow(g *Grid, row int, skip ...int) {
	skipped := make(map[int]bool)
	for _, c := range skip {
		skipped[c] = true
	}
	for column := 0; column < g.Columns(); column++ {
		if skipped[column] {
			continue
		}
		g.Set(column, row, &Block{Column: column, Row: row, Color: ColorRed})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"narrow", func(c *Config) { c.Columns = 2 }},
		{"short", func(c *Config) { c.Rows = 0 }},
		{"spawn outside", func(c *Config) { c.StartColumn = 10 }},
		{"spawn above", func(c *Config) { c.StartRow = -1 }},
		{"no points", func(c *Config) { c.PointsPerLine = 0 }},
		{"no threshold", func(c *Config) { c.LevelThreshold = -5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := New(cfg, rand.New(rand.NewSource(1)))
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}

	_, err := New(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBeginGame(t *testing.T) {
	e, q := newTestEngine(t)
	assert.Equal(t, PhaseIdle, e.Phase())

	e.BeginGame()

	next := e.NextShape()
	require.NotNil(t, next)
	assert.Equal(t, 12, next.Column())
	assert.Equal(t, 1, next.Row())
	assert.Nil(t, e.FallingShape())
	assert.Equal(t, PhaseSpawning, e.Phase())
	assert.Equal(t, []EventKind{EventGameBegan}, q.Kinds())

	// A second call keeps the existing preview.
	e.BeginGame()
	assert.Same(t, next, e.NextShape())
}

func TestNewShapePromotesNext(t *testing.T) {
	e, _ := newTestEngine(t)
	e.BeginGame()
	preview := e.NextShape()

	falling, next := e.NewShape()

	assert.Same(t, preview, falling)
	assert.Same(t, falling, e.FallingShape())
	assert.Same(t, next, e.NextShape())
	assert.NotSame(t, falling, next)
	assert.Equal(t, 4, falling.Column())
	assert.Equal(t, 0, falling.Row())
	assert.Equal(t, 12, next.Column())
	assert.Equal(t, 1, next.Row())
	assert.Equal(t, PhaseFalling, e.Phase())
}

func TestNewShapeBlockedEndsGame(t *testing.T) {
	e, q := newTestEngine(t)
	e.BeginGame()
	q.Drain()

	// Occupy the spawn area so that any kind in any orientation overlaps.
	for row := 0; row < 4; row++ {
		fillRow(e.Grid(), row)
	}
	e.score = 120
	e.level = 3
	preview := e.NextShape()

	falling, next := e.NewShape()

	assert.Nil(t, falling)
	assert.Nil(t, next)
	assert.Nil(t, e.FallingShape())
	assert.Same(t, preview, e.NextShape(), "blocked shape returns to the preview slot")
	assert.Equal(t, 12, preview.Column())
	assert.Equal(t, 1, preview.Row())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, PhaseOver, e.Phase())
	assert.Equal(t, []EventKind{EventGameEnded}, q.Kinds())
}

func TestNewShapeOutsideGridEndsGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartColumn = 9
	e, err := New(cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	q := NewQueue()
	e.SetListener(q)

	e.started = true
	preview := NewShape(KindT, cfg.PreviewColumn, cfg.PreviewRow, Orientation0, ColorPurple)
	e.next = preview

	falling, next := e.NewShape()

	assert.Nil(t, falling)
	assert.Nil(t, next)
	assert.Nil(t, e.FallingShape())
	assert.Same(t, preview, e.NextShape())
	assert.Equal(t, 12, preview.Column())
	assert.Equal(t, 1, preview.Row())
	assert.Equal(t, 0, e.Grid().Len())
	assert.Equal(t, PhaseOver, e.Phase())
	assert.Equal(t, []EventKind{EventGameEnded}, q.Kinds())
}

func TestDetectIllegalPlacement(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.False(t, e.DetectIllegalPlacement(), "no falling shape")

	tests := []struct {
		name    string
		column  int
		row     int
		illegal bool
	}{
		{"inside", 3, 5, false},
		{"left wall", -1, 5, true},
		{"right wall", 9, 5, true},
		{"floor", 3, 19, true},
		{"ceiling", 3, -1, true},
		{"bottom edge", 3, 18, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			place(e, KindSquare, tc.column, tc.row, Orientation0)
			assert.Equal(t, tc.illegal, e.DetectIllegalPlacement())
		})
	}

	place(e, KindSquare, 3, 5, Orientation0)
	e.Grid().Set(4, 6, &Block{Column: 4, Row: 6})
	assert.True(t, e.DetectIllegalPlacement(), "overlap with settled block")
}

func TestDetectTouch(t *testing.T) {
	e, _ := newTestEngine(t)

	place(e, KindSquare, 3, 18, Orientation0)
	assert.True(t, e.DetectTouch(), "resting on the floor")

	place(e, KindSquare, 3, 10, Orientation0)
	assert.False(t, e.DetectTouch())

	e.Grid().Set(4, 12, &Block{Column: 4, Row: 12})
	assert.True(t, e.DetectTouch(), "resting on a block")

	// At 180° the T's stem points down at column 4.
	e.Grid().Clear()
	e.Grid().Set(4, 12, &Block{Column: 4, Row: 12})
	place(e, KindT, 3, 8, Orientation180)
	assert.False(t, e.DetectTouch())
	e.falling.LowerByOneRow()
	assert.True(t, e.DetectTouch())
}

func TestSettleShapeTransfersBlocks(t *testing.T) {
	e, q := newTestEngine(t)
	shape := place(e, KindT, 3, 17, Orientation0)
	blocks := shape.Blocks()

	e.SettleShape()

	assert.Nil(t, e.FallingShape())
	assert.Empty(t, shape.Blocks(), "shape no longer owns its blocks")
	for _, b := range blocks {
		assert.Same(t, b, e.Grid().Get(b.Column, b.Row))
	}
	assert.Equal(t, 4, e.Grid().Len())
	assert.Equal(t, []EventKind{EventShapeLanded}, q.Kinds())
}

func TestDropShapeLandsOnLowestLegalRow(t *testing.T) {
	e, q := newTestEngine(t)
	e.Grid().Set(5, 15, &Block{Column: 5, Row: 15})
	shape := place(e, KindT, 4, 0, Orientation0)

	e.DropShape()

	assert.False(t, e.DetectIllegalPlacement())
	assert.Equal(t, 13, shape.Row(), "T stem rests on the block at row 15")

	shape.LowerByOneRow()
	assert.True(t, e.DetectIllegalPlacement(), "one more row must be illegal")
	shape.RaiseByOneRow()

	assert.Same(t, shape, e.FallingShape(), "dropping does not settle")
	assert.Equal(t, []EventKind{EventShapeDropped}, q.Kinds())
}

func TestDropShapeOnEmptyBoard(t *testing.T) {
	for _, kind := range Kinds() {
		for _, o := range allOrientations() {
			e, _ := newTestEngine(t)
			shape := place(e, kind, 4, 0, o)

			e.DropShape()

			lowest := 0
			for _, b := range shape.Blocks() {
				lowest = max(lowest, b.Row)
			}
			assert.Equal(t, 19, lowest, "%s at %d°", kind, o.Degrees())
		}
	}
}

func TestLetShapeFallMoves(t *testing.T) {
	e, q := newTestEngine(t)
	shape := place(e, KindSquare, 4, 5, Orientation0)

	e.LetShapeFall()

	assert.Equal(t, 6, shape.Row())
	assert.Same(t, shape, e.FallingShape())
	assert.Equal(t, []EventKind{EventShapeMoved}, q.Kinds())
}

func TestLetShapeFallLocksOnTouch(t *testing.T) {
	e, q := newTestEngine(t)
	place(e, KindSquare, 4, 17, Orientation0)

	e.LetShapeFall()

	assert.Nil(t, e.FallingShape())
	assert.NotNil(t, e.Grid().Get(4, 19))
	assert.NotNil(t, e.Grid().Get(5, 18))
	assert.Equal(t, []EventKind{EventShapeMoved, EventShapeLanded}, q.Kinds())
}

func TestLetShapeFallSettlesWhenBlocked(t *testing.T) {
	e, q := newTestEngine(t)
	place(e, KindSquare, 4, 18, Orientation0)

	e.LetShapeFall()

	assert.Nil(t, e.FallingShape())
	assert.NotNil(t, e.Grid().Get(4, 18))
	assert.Equal(t, []EventKind{EventShapeLanded}, q.Kinds())
}

func TestLetShapeFallEndsGameWhenStuck(t *testing.T) {
	e, q := newTestEngine(t)
	e.score = 50
	place(e, KindSquare, 4, 5, Orientation0)
	e.Grid().Set(4, 5, &Block{Column: 4, Row: 5})
	e.Grid().Set(4, 7, &Block{Column: 4, Row: 7})

	e.LetShapeFall()

	assert.Equal(t, PhaseOver, e.Phase())
	assert.Nil(t, e.FallingShape())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, []EventKind{EventGameEnded}, q.Kinds())
}

func TestRotateShapeRollsBack(t *testing.T) {
	e, q := newTestEngine(t)
	shape := place(e, KindLine, 0, 5, Orientation0)
	before := cells(shape)

	e.RotateShape()

	assert.Equal(t, Orientation0, shape.Orientation())
	assert.Equal(t, before, cells(shape))
	assert.Zero(t, q.Len(), "blocked rotation emits nothing")

	shape.MoveTo(4, 5)
	e.RotateShape()
	assert.Equal(t, Orientation90, shape.Orientation())
	assert.Equal(t, []EventKind{EventShapeMoved}, q.Kinds())
}

func TestRotateShapeBlockedBySettledBlock(t *testing.T) {
	e, q := newTestEngine(t)
	shape := place(e, KindT, 4, 5, Orientation0)
	// At 90° the T occupies (5,7); block it.
	e.Grid().Set(5, 7, &Block{Column: 5, Row: 7})
	before := cells(shape)

	e.RotateShape()

	assert.Equal(t, before, cells(shape))
	assert.Equal(t, Orientation0, shape.Orientation())
	assert.Zero(t, q.Len())
}

func TestMoveShapeLeftAtWall(t *testing.T) {
	e, q := newTestEngine(t)
	shape := place(e, KindSquare, 0, 5, Orientation0)
	before := cells(shape)

	e.MoveShapeLeft()

	assert.Equal(t, before, cells(shape))
	assert.Zero(t, q.Len())
}

func TestMoveShapeRight(t *testing.T) {
	e, q := newTestEngine(t)
	shape := place(e, KindSquare, 7, 5, Orientation0)

	e.MoveShapeRight()
	assert.Equal(t, 8, shape.Column())
	assert.Equal(t, []EventKind{EventShapeMoved}, q.Kinds())

	q.Drain()
	e.MoveShapeRight()
	assert.Equal(t, 8, shape.Column(), "square already touches the right wall")
	assert.Zero(t, q.Len())

	e.MoveShapeLeft()
	assert.Equal(t, 7, shape.Column())
	assert.Equal(t, []EventKind{EventShapeMoved}, q.Kinds())
}

func TestRemoveCompletedLinesNothingToClear(t *testing.T) {
	e, q := newTestEngine(t)
	fillRow(e.Grid(), 19, 3)
	fillRow(e.Grid(), 18, 0, 9)
	e.score = 70

	removed, fallen := e.RemoveCompletedLines()

	assert.Empty(t, removed)
	assert.Empty(t, fallen)
	assert.Equal(t, 70, e.Score())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 17, e.Grid().Len())
	assert.Zero(t, q.Len())
}

func TestRemoveCompletedLinesSingleRow(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.Grid()
	fillRow(g, 19)

	// Column c holds a stack of c%4 blocks resting on the full row.
	above := make(map[*Block][2]int)
	for column := 0; column < 10; column++ {
		for h := 1; h <= column%4; h++ {
			b := &Block{Column: column, Row: 19 - h}
			g.Set(column, 19-h, b)
			above[b] = [2]int{column, 19 - h}
		}
	}

	removed, fallen := e.RemoveCompletedLines()

	require.Len(t, removed, 1)
	require.Len(t, removed[0], 10)
	for _, b := range removed[0] {
		assert.Equal(t, 19, b.Row)
	}

	for b, origin := range above {
		assert.Equal(t, origin[1]+1, b.Row, "block from column %d row %d", origin[0], origin[1])
		assert.Same(t, b, g.Get(origin[0], origin[1]+1))
	}

	moved := 0
	for _, column := range fallen {
		moved += len(column)
		for i := 1; i < len(column); i++ {
			assert.Greater(t, column[i-1].Row, column[i].Row, "lowest block first")
		}
	}
	assert.Equal(t, len(above), moved)
	assert.Len(t, fallen, 7, "columns 0, 4 and 8 have nothing above the row")
	assert.Equal(t, 10, e.Score())
}

func TestRemoveCompletedLinesFourRows(t *testing.T) {
	e, _ := newTestEngine(t)
	for row := 16; row < 20; row++ {
		fillRow(e.Grid(), row)
	}
	e.Grid().Set(2, 15, &Block{Column: 2, Row: 15})

	removed, fallen := e.RemoveCompletedLines()

	require.Len(t, removed, 4)
	assert.Equal(t, []int{19, 18, 17, 16}, []int{removed[0][0].Row, removed[1][0].Row, removed[2][0].Row, removed[3][0].Row})
	assert.Equal(t, 40, e.Score(), "4 lines x 10 points x level 1")
	require.Len(t, fallen, 1)
	require.Len(t, fallen[0], 1)
	assert.Equal(t, 19, fallen[0][0].Row)
	assert.Equal(t, 1, e.Grid().Len())
}

func TestRemoveCompletedLinesSplitRows(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.Grid()
	fillRow(g, 19)
	fillRow(g, 18, 0, 1, 2, 3, 4, 5, 6, 7, 8) // only column 9
	fillRow(g, 17)
	g.Set(9, 16, &Block{Column: 9, Row: 16})

	removed, _ := e.RemoveCompletedLines()

	require.Len(t, removed, 2)
	assert.Equal(t, 19, removed[0][0].Row)
	assert.Equal(t, 17, removed[1][0].Row)
	assert.NotNil(t, g.Get(9, 19))
	assert.NotNil(t, g.Get(9, 18))
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 20, e.Score())
}

func TestRemoveCompletedLinesFallsIntoHoles(t *testing.T) {
	e, _ := newTestEngine(t)
	g := e.Grid()
	fillRow(g, 18)
	// Column 0 has a hole at row 19 beneath the cleared row.
	fillRow(g, 19, 0)
	b := &Block{Column: 0, Row: 17}
	g.Set(0, 17, b)

	removed, fallen := e.RemoveCompletedLines()

	require.Len(t, removed, 1)
	assert.Equal(t, 19, b.Row, "compaction drops to the lowest free cell")
	require.Len(t, fallen, 1)
	assert.Same(t, b, fallen[0][0])
}

func TestRemoveCompletedLinesSkipsTopRow(t *testing.T) {
	e, _ := newTestEngine(t)
	fillRow(e.Grid(), 0)

	removed, _ := e.RemoveCompletedLines()

	assert.Empty(t, removed)
	assert.Equal(t, 10, e.Grid().Len())
}

func TestRemoveCompletedLinesLevelUp(t *testing.T) {
	e, q := newTestEngine(t)
	e.score = 990
	fillRow(e.Grid(), 19)
	e.Grid().Set(0, 18, &Block{Column: 0, Row: 18})

	_, _ = e.RemoveCompletedLines()

	assert.Equal(t, 1000, e.Score())
	assert.Equal(t, 2, e.Level())
	events := q.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, Event{Kind: EventLevelUp, Score: 1000, Level: 2}, events[0])
	assert.NotNil(t, e.Grid().Get(0, 19))

	// Level 2 doubles the award; 1020 is short of 2000.
	fillRow(e.Grid(), 19, 0)
	_, _ = e.RemoveCompletedLines()
	assert.Equal(t, 1020, e.Score())
	assert.Equal(t, 2, e.Level())
	assert.Zero(t, q.Len())
}

func TestLevelUpOncePerThreshold(t *testing.T) {
	cfg := DefaultConfig()
	e, err := New(cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	q := NewQueue()
	e.SetListener(q)

	levelUps := 0
	for i := 0; i < 400; i++ {
		for row := 16; row < 20; row++ {
			fillRow(e.Grid(), row)
		}
		_, _ = e.RemoveCompletedLines()
		for _, ev := range q.Drain() {
			if ev.Kind == EventLevelUp {
				levelUps++
				assert.GreaterOrEqual(t, ev.Score, (ev.Level-1)*cfg.LevelThreshold)
			}
		}
	}

	assert.Equal(t, e.Level()-1, levelUps)
	assert.Greater(t, e.Level(), 2)
}

func TestRemoveAllBlocks(t *testing.T) {
	e, q := newTestEngine(t)
	fillRow(e.Grid(), 19, 4)
	e.Grid().Set(2, 3, &Block{Column: 2, Row: 3})
	e.score = 300
	e.level = 2

	all := e.RemoveAllBlocks()

	require.Len(t, all, 20)
	assert.Len(t, all[3], 1)
	assert.Len(t, all[19], 9)
	assert.Empty(t, all[10])
	assert.Zero(t, e.Grid().Len())
	assert.Equal(t, 300, e.Score())
	assert.Equal(t, 2, e.Level())
	assert.Zero(t, q.Len())
}

func TestEndGameResets(t *testing.T) {
	e, q := newTestEngine(t)
	e.BeginGame()
	e.NewShape()
	e.score = 4321
	e.level = 5
	e.Grid().Set(0, 19, &Block{})

	e.EndGame()

	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 1, e.Level())
	assert.Nil(t, e.FallingShape())
	assert.Equal(t, 1, e.Grid().Len(), "grid is cleared separately")
	assert.Equal(t, EventGameEnded, q.Drain()[1].Kind)

	e.BeginGame()
	assert.Equal(t, PhaseSpawning, e.Phase())
}

func TestOperationsWithoutFallingShape(t *testing.T) {
	e, q := newTestEngine(t)

	e.DropShape()
	e.LetShapeFall()
	e.RotateShape()
	e.MoveShapeLeft()
	e.MoveShapeRight()
	e.SettleShape()

	assert.False(t, e.DetectTouch())
	assert.Zero(t, q.Len())
}

// TestRandomPlayKeepsBoardConsistent drives the engine with random input and
// checks that no two blocks ever share a cell and block coordinates match
// their grid cell.
func TestRandomPlayKeepsBoardConsistent(t *testing.T) {
	e, q := newTestEngine(t)
	rng := rand.New(rand.NewSource(99))
	e.BeginGame()
	e.NewShape()

	for i := 0; i < 3000; i++ {
		switch rng.Intn(6) {
		case 0:
			e.MoveShapeLeft()
		case 1:
			e.MoveShapeRight()
		case 2:
			e.RotateShape()
		case 3:
			e.DropShape()
		default:
			e.LetShapeFall()
		}

		for q.Len() > 0 {
			for _, ev := range q.Drain() {
				switch ev.Kind {
				case EventShapeLanded:
					for {
						removed, _ := e.RemoveCompletedLines()
						if len(removed) == 0 {
							break
						}
					}
					e.NewShape()
				case EventGameEnded:
					e.RemoveAllBlocks()
					e.BeginGame()
					e.NewShape()
				}
			}
		}

		count := 0
		e.Grid().Each(func(column, row int, b *Block) {
			count++
			require.Equal(t, column, b.Column)
			require.Equal(t, row, b.Row)
		})
		require.Equal(t, e.Grid().Len(), count)
		require.False(t, e.DetectIllegalPlacement(), "step %d", i)
	}
}
