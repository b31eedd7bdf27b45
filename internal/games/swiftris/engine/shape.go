package engine

// BlocksPerShape is the number of blocks in every tetromino.
const BlocksPerShape = 4

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	KindSquare Kind = iota
	KindT
	KindLine
	KindL
	KindJ
	KindS
	KindZ

	kindCount = 7
)

// Kinds returns every kind in table order.
func Kinds() []Kind {
	return []Kind{KindSquare, KindT, KindLine, KindL, KindJ, KindS, KindZ}
}

// String returns the conventional letter of the kind.
func (k Kind) String() string {
	switch k {
	case KindSquare:
		return "O"
	case KindT:
		return "T"
	case KindLine:
		return "I"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Orientation is a quarter-turn rotation state.
type Orientation uint8

const (
	Orientation0 Orientation = iota
	Orientation90
	Orientation180
	Orientation270

	orientationCount = 4
)

// Clockwise returns the next orientation turning clockwise.
func (o Orientation) Clockwise() Orientation {
	return (o + 1) % orientationCount
}

// CounterClockwise returns the next orientation turning counter-clockwise.
func (o Orientation) CounterClockwise() Orientation {
	return (o + orientationCount - 1) % orientationCount
}

// Degrees returns the rotation angle.
func (o Orientation) Degrees() int {
	return int(o) * 90
}

// Source is the random number source used by the shape factory.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Shape is a tetromino: four blocks laid out around an anchor cell according to
// the geometry of its kind and orientation. Shapes never look at the grid;
// whether a position is legal is decided by the Engine.
type Shape struct {
	kind        Kind
	color       Color
	column      int
	row         int
	orientation Orientation
	blocks      [BlocksPerShape]*Block
}

// NewShape creates a shape of the given kind anchored at (column, row).
func NewShape(kind Kind, column, row int, orientation Orientation, color Color) *Shape {
	s := &Shape{
		kind:        kind,
		color:       color,
		column:      column,
		row:         row,
		orientation: orientation,
	}
	for i := range s.blocks {
		s.blocks[i] = &Block{Color: color}
	}
	s.layout()
	return s
}

// RandomShape creates a shape with a uniformly random kind, color and
// orientation, anchored at (column, row).
func RandomShape(src Source, column, row int) *Shape {
	kind := Kind(src.Intn(kindCount))
	color := Color(src.Intn(colorCount))
	orientation := Orientation(src.Intn(orientationCount))
	return NewShape(kind, column, row, orientation, color)
}

// layout recomputes every block position from the anchor and orientation.
func (s *Shape) layout() {
	offsets := &geometry[s.kind][s.orientation]
	for i, b := range s.blocks {
		if b == nil {
			continue
		}
		b.Column = s.column + offsets[i].column
		b.Row = s.row + offsets[i].row
	}
}

// Kind returns the tetromino kind.
func (s *Shape) Kind() Kind { return s.kind }

// Color returns the color shared by the shape's blocks.
func (s *Shape) Color() Color { return s.color }

// Column returns the anchor column.
func (s *Shape) Column() int { return s.column }

// Row returns the anchor row.
func (s *Shape) Row() int { return s.row }

// Orientation returns the current orientation.
func (s *Shape) Orientation() Orientation { return s.orientation }

// Blocks returns the shape's blocks in table order. The slice is empty once
// the shape has been settled into a grid.
func (s *Shape) Blocks() []*Block {
	out := make([]*Block, 0, BlocksPerShape)
	for _, b := range s.blocks {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// BottomBlocks returns the blocks that face down in the current orientation.
func (s *Shape) BottomBlocks() []*Block {
	idx := bottomBlocks[s.kind][s.orientation]
	out := make([]*Block, 0, len(idx))
	for _, i := range idx {
		if s.blocks[i] != nil {
			out = append(out, s.blocks[i])
		}
	}
	return out
}

// detach hands the blocks over to the caller and leaves the shape empty.
func (s *Shape) detach() [BlocksPerShape]*Block {
	blocks := s.blocks
	s.blocks = [BlocksPerShape]*Block{}
	return blocks
}

// MoveTo re-anchors the shape at (column, row).
func (s *Shape) MoveTo(column, row int) {
	s.column = column
	s.row = row
	s.layout()
}

// ShiftBy moves the shape by the given number of columns and rows.
func (s *Shape) ShiftBy(columns, rows int) {
	s.MoveTo(s.column+columns, s.row+rows)
}

// ShiftLeftByOneCol moves the shape one column left.
func (s *Shape) ShiftLeftByOneCol() { s.ShiftBy(-1, 0) }

// ShiftRightByOneCol moves the shape one column right.
func (s *Shape) ShiftRightByOneCol() { s.ShiftBy(1, 0) }

// LowerByOneRow moves the shape one row down.
func (s *Shape) LowerByOneRow() { s.ShiftBy(0, 1) }

// RaiseByOneRow moves the shape one row up.
func (s *Shape) RaiseByOneRow() { s.ShiftBy(0, -1) }

// RotateTo sets the orientation directly.
func (s *Shape) RotateTo(o Orientation) {
	s.orientation = o % orientationCount
	s.layout()
}

// RotateClockwise turns the shape a quarter clockwise.
func (s *Shape) RotateClockwise() { s.RotateTo(s.orientation.Clockwise()) }

// RotateCounterClockwise turns the shape a quarter counter-clockwise.
func (s *Shape) RotateCounterClockwise() { s.RotateTo(s.orientation.CounterClockwise()) }
