package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlue
	ColorOrange
	ColorPurple
	ColorRed
	ColorTeal
	ColorYellow
	ColorGray
	ColorWhite
	ColorBrightWhite
)

func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
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
	case ColorGray:
		return "gray"
	case ColorWhite:
		return "white"
	case ColorBrightWhite:
		return "bright white"
	default:
		return "unknown"
	}
}
