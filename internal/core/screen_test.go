package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	assert.Equal(t, 12, s.Width())
	assert.Equal(t, 4, s.Height())
	for y := 0; y < s.Height(); y++ {
		assert.Equal(t, strings.Repeat(" ", 12), s.Row(y))
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '█', ColorTeal)
	assert.Equal(t, Cell{Rune: '█', Color: ColorTeal}, s.GetCell(3, 4))
	assert.Equal(t, '█', s.Get(3, 4))

	s.Set(3, 4, 'x')
	assert.Equal(t, ColorDefault, s.GetCell(3, 4).Color)
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(5, 5)

	assert.NotPanics(t, func() {
		s.Set(-1, 0, 'A')
		s.Set(5, 0, 'A')
		s.SetColored(0, -1, 'A', ColorRed)
		s.SetColored(0, 5, 'A', ColorRed)
	})
	assert.Equal(t, ' ', s.Get(-1, 0))
	assert.Equal(t, ColorDefault, s.GetCell(9, 9).Color)
	assert.Equal(t, "     ", s.Row(-1))
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)

	s.DrawTextColored(1, 0, "SCORE", ColorYellow)
	assert.Equal(t, " SCORE    ", s.Row(0))
	assert.Equal(t, ColorYellow, s.GetCell(5, 0).Color)

	s.DrawText(7, 1, "LEVEL")
	assert.Equal(t, "       LEV", s.Row(1))
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "▶ab", ColorWhite)

	assert.Equal(t, '▶', s.Get(3, 0))
	assert.Equal(t, 'b', s.Get(5, 0))
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(6, 6)
	s.FillRect(NewRect(1, 1, 2, 3), '#', ColorGray)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			inside := x >= 1 && x < 3 && y >= 1 && y < 4
			if inside {
				assert.Equal(t, Cell{Rune: '#', Color: ColorGray}, s.GetCell(x, y))
			} else {
				assert.Equal(t, ' ', s.Get(x, y), "(%d, %d)", x, y)
			}
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	assert.Equal(t, "┌────┐", s.Row(0))
	assert.Equal(t, "│    │", s.Row(1))
	assert.Equal(t, "│    │", s.Row(2))
	assert.Equal(t, "└────┘", s.Row(3))
	assert.Equal(t, ColorGray, s.GetCell(0, 0).Color)
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	assert.Equal(t, "abc\ndef", s.String())
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorRed)
	s.DrawText(0, 5, "World")

	s.Resize(4, 3)
	assert.Equal(t, 4, s.Width())
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, "Hell", s.Row(0))

	s.Resize(8, 8)
	assert.Equal(t, "Hell    ", s.Row(0))
	assert.Equal(t, ColorRed, s.GetCell(0, 0).Color)
	assert.Equal(t, strings.Repeat(" ", 8), s.Row(5))
}
