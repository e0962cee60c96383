package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionUndo           // Z, U, Backspace - undo last move
	ActionReset          // R - restart stage (undoable)
	ActionNext           // N, Enter on a cleared stage - advance
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - back to stage picker
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause simulation
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionReset:
		return "Reset"
	case ActionNext:
		return "Next"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether a is one of the four movement actions.
func (a Action) IsDirectional() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Direction returns the first directional action in the frame, checked in
// Up, Down, Left, Right order, or ActionNone.
func (f InputFrame) Direction() Action {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if f.Has(a) {
			return a
		}
	}
	return ActionNone
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
