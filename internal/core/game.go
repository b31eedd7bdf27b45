package core

// Game is the contract between a game and the platform.
// Implementations hold pure logic; the platform owns timing, input and output.
type Game interface {
	// ID is a stable identifier used for score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session. Called once at start and on restart.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in InputFrame) StepResult

	// Render draws the current state. dst is cleared before the call.
	Render(dst *Screen)

	// State returns the current state without advancing.
	State() GameState
}
