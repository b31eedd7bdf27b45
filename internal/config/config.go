// Package config loads the game configuration from YAML or TOML files and
// manages difficulty presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-swiftris/internal/games/swiftris/engine"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid")

// Gravity modes.
const (
	GravityStepped = "stepped" // Linear curve with a floor
	GravityFixed   = "fixed"   // Same interval at every level
	GravityLua     = "lua"     // Interval computed by a Lua script
)

// SwiftrisConfig contains all configuration for the game.
type SwiftrisConfig struct {
	Board      BoardConfig      `yaml:"board" toml:"board"`
	Spawn      PointConfig      `yaml:"spawn" toml:"spawn"`
	Preview    PointConfig      `yaml:"preview" toml:"preview"`
	Scoring    ScoringConfig    `yaml:"scoring" toml:"scoring"`
	Gravity    GravityConfig    `yaml:"gravity" toml:"gravity"`
	Animation  AnimationConfig  `yaml:"animation" toml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// BoardConfig is the grid size in cells.
type BoardConfig struct {
	Columns int `yaml:"columns" toml:"columns"`
	Rows    int `yaml:"rows" toml:"rows"`
}

// PointConfig is an anchor position in grid coordinates.
type PointConfig struct {
	Column int `yaml:"column" toml:"column"`
	Row    int `yaml:"row" toml:"row"`
}

// ScoringConfig defines points and level progression.
type ScoringConfig struct {
	PointsPerLine  int `yaml:"points_per_line" toml:"points_per_line"`
	LevelThreshold int `yaml:"level_threshold" toml:"level_threshold"` // Level N ends at N*threshold
}

// GravityConfig defines how fast shapes fall.
type GravityConfig struct {
	Mode      string `yaml:"mode" toml:"mode"`             // "stepped", "fixed" or "lua"
	InitialMs int    `yaml:"initial_ms" toml:"initial_ms"` // Interval at level 1
	StepMs    int    `yaml:"step_ms" toml:"step_ms"`       // Reduction per level
	FloorMs   int    `yaml:"floor_ms" toml:"floor_ms"`     // Fastest interval
	Script    string `yaml:"script" toml:"script"`         // Lua file, mode "lua" only
}

// AnimationConfig defines how long transient phases last, in ticks.
type AnimationConfig struct {
	ClearTicks    int `yaml:"clear_ticks" toml:"clear_ticks"`         // Completed rows flash
	GameOverTicks int `yaml:"game_over_ticks" toml:"game_over_ticks"` // Board empties before the overlay
}

// DifficultyConfig selects the preset applied on top of the file.
type DifficultyConfig struct {
	Preset string `yaml:"preset" toml:"preset"`
}

// ToEngine converts the board, spawn, preview and scoring sections.
func (c SwiftrisConfig) ToEngine() engine.Config {
	return engine.Config{
		Columns:        c.Board.Columns,
		Rows:           c.Board.Rows,
		StartColumn:    c.Spawn.Column,
		StartRow:       c.Spawn.Row,
		PreviewColumn:  c.Preview.Column,
		PreviewRow:     c.Preview.Row,
		PointsPerLine:  c.Scoring.PointsPerLine,
		LevelThreshold: c.Scoring.LevelThreshold,
	}
}

// Validate reports the first unusable setting.
func (c SwiftrisConfig) Validate() error {
	if err := c.ToEngine().Validate(); err != nil {
		return err
	}

	g := c.Gravity
	switch g.Mode {
	case GravityStepped, GravityFixed:
	case GravityLua:
		if g.Script == "" {
			return fmt.Errorf("%w: gravity mode %q needs a script", ErrInvalid, g.Mode)
		}
	default:
		return fmt.Errorf("%w: unknown gravity mode %q", ErrInvalid, g.Mode)
	}
	if g.InitialMs <= 0 || g.FloorMs <= 0 {
		return fmt.Errorf("%w: gravity intervals must be positive", ErrInvalid)
	}
	if g.StepMs < 0 {
		return fmt.Errorf("%w: gravity step_ms must not be negative", ErrInvalid)
	}

	if c.Animation.ClearTicks < 0 || c.Animation.GameOverTicks < 0 {
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalid)
	}

	if c.Difficulty.Preset != "" {
		if _, err := ParsePreset(c.Difficulty.Preset); err != nil {
			return err
		}
	}
	return nil
}
