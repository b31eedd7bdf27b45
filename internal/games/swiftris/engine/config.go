package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot describe a playable board.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config holds the board dimensions, spawn coordinates and scoring constants.
type Config struct {
	Columns        int // Grid width
	Rows           int // Grid height
	StartColumn    int // Anchor column of a newly falling shape
	StartRow       int // Anchor row of a newly falling shape
	PreviewColumn  int // Anchor column of the next shape
	PreviewRow     int // Anchor row of the next shape
	PointsPerLine  int
	LevelThreshold int // Score needed per level: level N ends at N*LevelThreshold
}

// DefaultConfig returns the classic 10x20 board.
func DefaultConfig() Config {
	return Config{
		Columns:        10,
		Rows:           20,
		StartColumn:    4,
		StartRow:       0,
		PreviewColumn:  12,
		PreviewRow:     1,
		PointsPerLine:  10,
		LevelThreshold: 1000,
	}
}

// Validate reports whether the config describes a usable board.
// The preview anchor may lie outside the grid; it is only a display position.
func (c Config) Validate() error {
	switch {
	case c.Columns < 4:
		return fmt.Errorf("%w: columns must be at least 4, got %d", ErrInvalidConfig, c.Columns)
	case c.Rows < 4:
		return fmt.Errorf("%w: rows must be at least 4, got %d", ErrInvalidConfig, c.Rows)
	case c.StartColumn < 0 || c.StartColumn >= c.Columns:
		return fmt.Errorf("%w: start column %d outside [0, %d)", ErrInvalidConfig, c.StartColumn, c.Columns)
	case c.StartRow < 0 || c.StartRow >= c.Rows:
		return fmt.Errorf("%w: start row %d outside [0, %d)", ErrInvalidConfig, c.StartRow, c.Rows)
	case c.PointsPerLine <= 0:
		return fmt.Errorf("%w: points per line must be positive, got %d", ErrInvalidConfig, c.PointsPerLine)
	case c.LevelThreshold <= 0:
		return fmt.Errorf("%w: level threshold must be positive, got %d", ErrInvalidConfig, c.LevelThreshold)
	}
	return nil
}
