package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Shift the falling shape left
	ActionRight          // Shift the falling shape right
	ActionRotate         // Rotate clockwise
	ActionDown           // Soft drop: one row of gravity
	ActionDrop           // Hard drop
	ActionPause          // Toggle pause
	ActionRestart        // Start over
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionDown:
		return "Down"
	case ActionDrop:
		return "Drop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one simulation tick.
// Actions keep their arrival order and may repeat, so two quick taps of
// the left key move the shape two columns.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty frame.
func NewInputFrame(actions ...Action) InputFrame {
	return InputFrame{actions: append([]Action(nil), actions...)}
}

// Add appends an action. ActionNone is ignored.
func (f *InputFrame) Add(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Clear empties the frame for reuse.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
