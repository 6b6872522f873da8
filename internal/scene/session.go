// Package scene runs one simulation session on top of the physics, texture
// and audio collaborators. It owns the per-session state machine, the entity
// table, spawning, input-to-motion mapping and collision dispatch; concrete
// scenes plug in through Hooks.
package scene

import (
	"fmt"
	"strconv"
)

// Lifecycle is the session's terminal state machine.
type Lifecycle int

const (
	Running Lifecycle = iota
	GameOver
)

func (l Lifecycle) String() string {
	switch l {
	case Running:
		return "running"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Lifecycle(%d)", int(l))
	}
}

// Session holds the mutable state of one scene instance: score, lifecycle
// and the pointer and jump counters. It is created by Reset and dropped by
// Destroy, and only the tick loop touches it.
type Session struct {
	reward    int
	score     int
	lifecycle Lifecycle
	clickTime int
	jumpTime  int
	tick      uint64
	text      string
}

// NewSession starts a running session with zero score.
func NewSession(reward int) *Session {
	s := &Session{reward: reward}
	s.text = scoreText(0)
	return s
}

func scoreText(n int) string {
	return "score:" + strconv.Itoa(n)
}

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// ScoreText returns the HUD text, kept in sync with every score change.
func (s *Session) ScoreText() string { return s.text }

// Collect adds one reward to the score and returns the new score.
func (s *Session) Collect() int {
	s.score += s.reward
	s.text = scoreText(s.score)
	return s.score
}

// Lifecycle returns the current lifecycle state.
func (s *Session) Lifecycle() Lifecycle { return s.lifecycle }

// Running reports whether the session has not ended.
func (s *Session) Running() bool { return s.lifecycle == Running }

// End moves the session to GameOver. It reports whether this call made the
// transition; later calls are no-ops.
func (s *Session) End() bool {
	if s.lifecycle == GameOver {
		return false
	}
	s.lifecycle = GameOver
	return true
}

// Click records one primary pointer-down and returns the new count.
func (s *Session) Click() int {
	s.clickTime++
	return s.clickTime
}

// ClickTime returns the number of pointer-downs so far.
func (s *Session) ClickTime() int { return s.clickTime }

// Jump records one successful jump and returns the new count.
func (s *Session) Jump() int {
	s.jumpTime++
	return s.jumpTime
}

// JumpTime returns the number of successful jumps so far.
func (s *Session) JumpTime() int { return s.jumpTime }

// Tick returns how many ticks the session has run.
func (s *Session) Tick() uint64 { return s.tick }

func (s *Session) advance() { s.tick++ }
