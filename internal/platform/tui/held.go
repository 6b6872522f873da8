package tui

import "github.com/vovakirdan/starfall/internal/core"

// HeldKeys turns key presses into held state. Terminals report presses and
// auto-repeats but no releases, so a direction counts as held for a window
// of ticks after its most recent press.
type HeldKeys struct {
	window int
	last   map[core.Action]uint64
}

// NewHeldKeys creates a tracker holding each press for window ticks.
func NewHeldKeys(window int) *HeldKeys {
	if window < 1 {
		window = 1
	}
	return &HeldKeys{window: window, last: make(map[core.Action]uint64)}
}

// opposite returns the direction a press releases.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	}
	return core.ActionNone
}

// Press records a press of a at tick. Pressing a direction releases its
// opposite at once.
func (h *HeldKeys) Press(a core.Action, tick uint64) {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		h.last[a] = tick
		delete(h.last, opposite(a))
	}
}

// Frame returns the held directions for tick. A press at tick t is held
// for ticks t through t+window-1.
func (h *HeldKeys) Frame(tick uint64) core.InputFrame {
	var f core.InputFrame
	for a, t := range h.last {
		if tick < t {
			continue
		}
		if tick-t < uint64(h.window) {
			f.Set(a)
		} else {
			delete(h.last, a)
		}
	}
	return f
}

// Reset releases every key.
func (h *HeldKeys) Reset() {
	clear(h.last)
}
