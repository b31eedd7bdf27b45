// Package gravity decides how long a falling shape waits between rows.
// The rules engine only knows "fall one row"; the pace lives here.
package gravity

import "time"

// Policy maps a level to the delay between two gravity steps.
type Policy interface {
	Interval(level int) time.Duration
}

// Default curve: 600 ms at level 1, 100 ms faster per level.
const (
	DefaultInitial = 600 * time.Millisecond
	DefaultStep    = 100 * time.Millisecond
	DefaultFloor   = 50 * time.Millisecond
)

// Stepped is a linear curve with a lower bound.
type Stepped struct {
	Initial time.Duration // Interval at level 1
	Step    time.Duration // Reduction per level
	Floor   time.Duration // Never faster than this
}

// DefaultStepped returns the classic curve.
func DefaultStepped() Stepped {
	return Stepped{Initial: DefaultInitial, Step: DefaultStep, Floor: DefaultFloor}
}

// Interval implements Policy. Levels below 1 are treated as 1.
func (s Stepped) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	d := s.Initial - time.Duration(level-1)*s.Step
	if d < s.Floor {
		return s.Floor
	}
	return d
}

// Fixed keeps the same interval at every level.
type Fixed time.Duration

// Interval implements Policy.
func (f Fixed) Interval(int) time.Duration { return time.Duration(f) }

// Ticks converts an interval to whole simulation ticks, at least one.
func Ticks(d time.Duration, tickRate int) int {
	if tickRate <= 0 {
		return 1
	}
	tick := time.Second / time.Duration(tickRate)
	if tick <= 0 {
		tick = 1
	}
	n := int(d / tick)
	if n < 1 {
		return 1
	}
	return n
}
