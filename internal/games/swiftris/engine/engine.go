package engine

import "fmt"

// Phase describes where a session is between engine calls.
type Phase int

const (
	PhaseIdle     Phase = iota // BeginGame not called yet
	PhaseSpawning              // Session running, no falling shape
	PhaseFalling               // A shape is falling
	PhaseOver                  // The session ended; BeginGame starts a new one
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Engine owns the grid, the falling and next shapes, score and level.
//
// Every mutating operation that can produce an illegal position applies the
// change first, checks DetectIllegalPlacement, and undoes it with the inverse
// move when needed. Listener notifications always follow the state change.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg      Config
	src      Source
	grid     *Grid
	listener Listener

	falling *Shape
	next    *Shape
	score   int
	level   int
	started bool
	over    bool
}

// New creates an engine with an empty grid.
func New(cfg Config, src Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Engine{
		cfg:   cfg,
		src:   src,
		grid:  NewGrid(cfg.Columns, cfg.Rows),
		level: 1,
	}, nil
}

// SetListener installs the event sink. A nil listener disables notifications.
func (e *Engine) SetListener(l Listener) {
	e.listener = l
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Grid returns the settled blocks.
func (e *Engine) Grid() *Grid { return e.grid }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level, starting at 1.
func (e *Engine) Level() int { return e.level }

// FallingShape returns the shape in play, or nil.
func (e *Engine) FallingShape() *Shape { return e.falling }

// NextShape returns the shape waiting in the preview, or nil before BeginGame.
func (e *Engine) NextShape() *Shape { return e.next }

// Phase reports the session state.
func (e *Engine) Phase() Phase {
	switch {
	case e.over:
		return PhaseOver
	case !e.started:
		return PhaseIdle
	case e.falling != nil:
		return PhaseFalling
	default:
		return PhaseSpawning
	}
}

// BeginGame starts a session, generating the first preview shape if needed.
func (e *Engine) BeginGame() {
	if e.next == nil {
		e.next = RandomShape(e.src, e.cfg.PreviewColumn, e.cfg.PreviewRow)
	}
	e.started = true
	e.over = false
	if e.listener != nil {
		e.listener.GameDidBegin(e)
	}
}

// NewShape promotes the next shape to falling at the spawn position and
// generates a new next shape. If the spawn position is blocked the shape goes
// back to the preview, the game ends and both results are nil.
func (e *Engine) NewShape() (falling, next *Shape) {
	e.falling = e.next
	e.next = RandomShape(e.src, e.cfg.PreviewColumn, e.cfg.PreviewRow)
	if e.falling == nil {
		// BeginGame was skipped; the fresh shape becomes the falling one.
		e.falling = e.next
		e.next = RandomShape(e.src, e.cfg.PreviewColumn, e.cfg.PreviewRow)
	}
	e.falling.MoveTo(e.cfg.StartColumn, e.cfg.StartRow)

	if e.DetectIllegalPlacement() {
		e.next = e.falling
		e.next.MoveTo(e.cfg.PreviewColumn, e.cfg.PreviewRow)
		e.falling = nil
		e.EndGame()
		return nil, nil
	}
	return e.falling, e.next
}

// DetectIllegalPlacement reports whether any block of the falling shape is
// outside the grid or on an occupied cell.
func (e *Engine) DetectIllegalPlacement() bool {
	if e.falling == nil {
		return false
	}
	for _, b := range e.falling.blocks {
		if b == nil {
			continue
		}
		if !e.grid.InBounds(b.Column, b.Row) {
			return true
		}
		if e.grid.Get(b.Column, b.Row) != nil {
			return true
		}
	}
	return false
}

// SettleShape moves the falling shape's blocks into the grid.
func (e *Engine) SettleShape() {
	if e.falling == nil {
		return
	}
	for _, b := range e.falling.detach() {
		if b != nil {
			e.grid.Set(b.Column, b.Row, b)
		}
	}
	e.falling = nil
	if e.listener != nil {
		e.listener.ShapeDidLand(e)
	}
}

// DetectTouch reports whether the falling shape rests on the floor or on a
// settled block.
func (e *Engine) DetectTouch() bool {
	if e.falling == nil {
		return false
	}
	for _, b := range e.falling.BottomBlocks() {
		if b.Row == e.cfg.Rows-1 {
			return true
		}
		if e.grid.InBounds(b.Column, b.Row+1) && e.grid.Get(b.Column, b.Row+1) != nil {
			return true
		}
	}
	return false
}

// EndGame resets score and level and reports the end of the session.
// The grid is left as is; RemoveAllBlocks clears it.
func (e *Engine) EndGame() {
	e.score = 0
	e.level = 1
	e.falling = nil
	e.over = true
	if e.listener != nil {
		e.listener.GameDidEnd(e)
	}
}

// RemoveCompletedLines clears every full row, awards points, and drops the
// remaining blocks. Rows are scanned bottom-up and row 0 is never cleared.
//
// removed holds the cleared rows in scan order. fallen holds, per column that
// changed, the blocks that moved down, lowest first.
func (e *Engine) RemoveCompletedLines() (removed, fallen [][]*Block) {
	columns, rows := e.cfg.Columns, e.cfg.Rows

	for row := rows - 1; row > 0; row-- {
		line := make([]*Block, 0, columns)
		for column := 0; column < columns; column++ {
			if b := e.grid.Get(column, row); b != nil {
				line = append(line, b)
			}
		}
		if len(line) != columns {
			continue
		}
		removed = append(removed, line)
		for _, b := range line {
			e.grid.Set(b.Column, b.Row, nil)
		}
	}

	if len(removed) == 0 {
		return nil, nil
	}

	e.score += len(removed) * e.cfg.PointsPerLine * e.level
	if e.score >= e.level*e.cfg.LevelThreshold {
		e.level++
		if e.listener != nil {
			e.listener.GameDidLevelUp(e)
		}
	}

	lowest := removed[0][0].Row
	for column := 0; column < columns; column++ {
		var moved []*Block
		for row := lowest - 1; row > 0; row-- {
			b := e.grid.Get(column, row)
			if b == nil {
				continue
			}
			newRow := row
			for newRow < rows-1 && e.grid.Get(column, newRow+1) == nil {
				newRow++
			}
			if newRow == row {
				continue
			}
			b.Row = newRow
			e.grid.Set(column, row, nil)
			e.grid.Set(column, newRow, b)
			moved = append(moved, b)
		}
		if len(moved) > 0 {
			fallen = append(fallen, moved)
		}
	}

	return removed, fallen
}

// RemoveAllBlocks empties the grid and returns its blocks, one slice per row
// from top to bottom. Score and level are unaffected.
func (e *Engine) RemoveAllBlocks() [][]*Block {
	all := make([][]*Block, 0, e.cfg.Rows)
	for row := 0; row < e.cfg.Rows; row++ {
		var line []*Block
		for column := 0; column < e.cfg.Columns; column++ {
			if b := e.grid.Get(column, row); b != nil {
				line = append(line, b)
				e.grid.Set(column, row, nil)
			}
		}
		all = append(all, line)
	}
	return all
}

// DropShape lowers the falling shape as far as it can go.
func (e *Engine) DropShape() {
	shape := e.falling
	if shape == nil {
		return
	}
	for !e.DetectIllegalPlacement() {
		shape.LowerByOneRow()
	}
	shape.RaiseByOneRow()
	if e.listener != nil {
		e.listener.ShapeDidDrop(e)
	}
}

// LetShapeFall advances gravity by one row. A shape that cannot move settles;
// a shape that cannot even stay where it is ends the game. A shape that moved
// and now rests on something settles immediately.
func (e *Engine) LetShapeFall() {
	shape := e.falling
	if shape == nil {
		return
	}

	shape.LowerByOneRow()
	if e.DetectIllegalPlacement() {
		shape.RaiseByOneRow()
		if e.DetectIllegalPlacement() {
			e.EndGame()
		} else {
			e.SettleShape()
		}
		return
	}

	if e.listener != nil {
		e.listener.ShapeDidMove(e)
	}
	if e.DetectTouch() {
		e.SettleShape()
	}
}

// RotateShape turns the falling shape clockwise unless that is illegal.
func (e *Engine) RotateShape() {
	shape := e.falling
	if shape == nil {
		return
	}
	shape.RotateClockwise()
	if e.DetectIllegalPlacement() {
		shape.RotateCounterClockwise()
		return
	}
	if e.listener != nil {
		e.listener.ShapeDidMove(e)
	}
}

// MoveShapeLeft shifts the falling shape one column left unless blocked.
func (e *Engine) MoveShapeLeft() {
	shape := e.falling
	if shape == nil {
		return
	}
	shape.ShiftLeftByOneCol()
	if e.DetectIllegalPlacement() {
		shape.ShiftRightByOneCol()
		return
	}
	if e.listener != nil {
		e.listener.ShapeDidMove(e)
	}
}

// MoveShapeRight shifts the falling shape one column right unless blocked.
func (e *Engine) MoveShapeRight() {
	shape := e.falling
	if shape == nil {
		return
	}
	shape.ShiftRightByOneCol()
	if e.DetectIllegalPlacement() {
		shape.ShiftLeftByOneCol()
		return
	}
	if e.listener != nil {
		e.listener.ShapeDidMove(e)
	}
}
