package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-swiftris/internal/games/swiftris/engine"
)

//go:embed defaults/swiftris.yaml
var defaultSwiftrisYAML []byte

// DefaultSwiftrisConfig returns the built-in configuration.
func DefaultSwiftrisConfig() SwiftrisConfig {
	e := engine.DefaultConfig()
	return SwiftrisConfig{
		Board:   BoardConfig{Columns: e.Columns, Rows: e.Rows},
		Spawn:   PointConfig{Column: e.StartColumn, Row: e.StartRow},
		Preview: PointConfig{Column: e.PreviewColumn, Row: e.PreviewRow},
		Scoring: ScoringConfig{
			PointsPerLine:  e.PointsPerLine,
			LevelThreshold: e.LevelThreshold,
		},
		Gravity: GravityConfig{
			Mode:      GravityStepped,
			InitialMs: 600,
			StepMs:    100,
			FloorMs:   50,
		},
		Animation: AnimationConfig{
			ClearTicks:    12,
			GameOverTicks: 30,
		},
		Difficulty: DifficultyConfig{Preset: string(DifficultyNormal)},
	}
}
