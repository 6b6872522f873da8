package core

// Action represents a semantic input, abstracted from physical key presses.
// Directional actions describe held state for the tick; ActionPointer is an
// edge event (one primary pointer-down).
type Action uint8

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - held
	ActionRight          // Right arrow, D - held
	ActionUp             // Up arrow, W - held (jump)
	ActionDown           // Down arrow, S - held (fast fall)
	ActionPointer        // Left mouse press, Enter - primary pointer-down
	ActionQuit           // Q, Ctrl+C - exit session

	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionPointer:
		return "Pointer"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input sample for a single simulation tick.
// It is a small bit set so frames can be copied freely and journaled compactly.
type InputFrame struct {
	bits uint16
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// FrameFromMask restores a frame previously encoded with Mask.
// Unknown bits are dropped.
func FrameFromMask(mask uint16) InputFrame {
	return InputFrame{bits: mask & (1<<actionCount - 1) &^ 1}
}

// Set marks an action as present for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has returns true if the given action is present in this frame.
func (f InputFrame) Has(a Action) bool {
	if a == ActionNone || a >= actionCount {
		return false
	}
	return f.bits&(1<<a) != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Empty reports whether no action is set.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Mask returns the frame's compact encoding.
func (f InputFrame) Mask() uint16 {
	return f.bits
}
