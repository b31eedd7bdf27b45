package engine

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Grid is the board of settled blocks. Occupancy is sparse: only occupied
// cells have an entry, keyed by row*columns + column.
type Grid struct {
	columns int
	rows    int
	cells   *intmap.Map[int, *Block]
}

// NewGrid allocates an empty grid.
func NewGrid(columns, rows int) *Grid {
	return &Grid{
		columns: columns,
		rows:    rows,
		cells:   intmap.New[int, *Block](columns * rows / 2),
	}
}

// Columns returns the grid width.
func (g *Grid) Columns() int { return g.columns }

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (column, row) is a cell of the grid.
func (g *Grid) InBounds(column, row int) bool {
	return column >= 0 && column < g.columns && row >= 0 && row < g.rows
}

// index converts a coordinate to its map key. Out-of-range coordinates are a
// caller bug and panic instead of aliasing another cell.
func (g *Grid) index(column, row int) int {
	if !g.InBounds(column, row) {
		panic(fmt.Sprintf("engine: grid cell (%d, %d) out of range %dx%d", column, row, g.columns, g.rows))
	}
	return row*g.columns + column
}

// Get returns the block at (column, row), or nil if the cell is empty.
func (g *Grid) Get(column, row int) *Block {
	b, ok := g.cells.Get(g.index(column, row))
	if !ok {
		return nil
	}
	return b
}

// Set stores b at (column, row). A nil block empties the cell.
func (g *Grid) Set(column, row int, b *Block) {
	idx := g.index(column, row)
	if b == nil {
		g.cells.Del(idx)
		return
	}
	g.cells.Put(idx, b)
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return g.cells.Len()
}

// Clear empties every cell.
func (g *Grid) Clear() {
	g.cells.Clear()
}

// Each calls fn for every occupied cell in row-major order.
func (g *Grid) Each(fn func(column, row int, b *Block)) {
	if g.cells.Len() == 0 {
		return
	}
	for row := 0; row < g.rows; row++ {
		for column := 0; column < g.columns; column++ {
			if b, ok := g.cells.Get(row*g.columns + column); ok {
				fn(column, row, b)
			}
		}
	}
}
