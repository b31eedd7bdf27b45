package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset accepts a preset name in any case.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, s)
}

// Description is the one-line summary shown in the start menu.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slow start, gentle speed-up"
	case DifficultyNormal:
		return "Classic pace"
	case DifficultyHard:
		return "Fast start, steep curve"
	case DifficultyFixed:
		return "Constant speed at every level"
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplySwiftrisPreset adjusts the gravity section for a preset.
// A Lua gravity script keeps control of the curve; only the fallback
// values change.
func ApplySwiftrisPreset(cfg *SwiftrisConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = string(preset)

	g := &cfg.Gravity
	switch preset {
	case DifficultyEasy:
		g.InitialMs, g.StepMs, g.FloorMs = 800, 75, 100
	case DifficultyNormal:
		g.InitialMs, g.StepMs, g.FloorMs = 600, 100, 50
	case DifficultyHard:
		g.InitialMs, g.StepMs, g.FloorMs = 400, 60, 40
	case DifficultyFixed:
		g.InitialMs, g.StepMs, g.FloorMs = 500, 0, 500
	}

	if g.Mode == GravityLua {
		return
	}
	if IsFixedPreset(preset) {
		g.Mode = GravityFixed
	} else {
		g.Mode = GravityStepped
	}
}
