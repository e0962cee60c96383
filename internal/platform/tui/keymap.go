package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/orbhop/internal/core"
	"github.com/vovakirdan/orbhop/internal/stage"
)

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "z", "u", "backspace":
		return core.ActionUndo, false
	case "r":
		return core.ActionReset, false
	case "n":
		return core.ActionNext, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// Heading converts a directional action to a stage direction.
func Heading(a core.Action) stage.Direction {
	switch a {
	case core.ActionRight:
		return stage.DirRight
	case core.ActionUp:
		return stage.DirUp
	case core.ActionLeft:
		return stage.DirLeft
	case core.ActionDown:
		return stage.DirDown
	}
	return stage.DirNone
}
