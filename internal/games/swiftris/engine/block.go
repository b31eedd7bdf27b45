// Package engine implements the Swiftris rules: a fixed grid of settled blocks,
// tetromino geometry, collision checks, gravity, line clearing and scoring.
// It has no rendering, timing or input code; callers drive it one operation at
// a time and observe it through a Listener.
package engine

// Color is the visual tag of a block. The engine never inspects it.
type Color uint8

const (
	ColorBlue Color = iota
	ColorOrange
	ColorPurple
	ColorRed
	ColorTeal
	ColorYellow

	colorCount = 6
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	case ColorTeal:
		return "teal"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Block is a single occupied cell. A block belongs either to the falling shape
// or to the grid, never to both.
type Block struct {
	Column int
	Row    int
	Color  Color
}
