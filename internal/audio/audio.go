// Package audio plays named sound cues and maps gameplay events to them.
//
// A Backend owns cue registration and playback. The beep backend synthesizes
// cues from config and mixes them onto the system speaker; the silent backend
// keeps the same state machine without producing sound, for tests, replays
// and --mute. Controller sits on top and turns pointer, jump, collect and
// death events into playback calls.
package audio

import (
	"errors"
	"math"

	"github.com/vovakirdan/starfall/internal/config"
)

var (
	// ErrUnknownCue is returned when a cue key was never registered.
	ErrUnknownCue = errors.New("audio: unknown cue")
	// ErrLocked is returned for one-shots triggered before the first unlock.
	ErrLocked = errors.New("audio: backend locked until first user gesture")
)

// Options are per-playback parameters.
type Options struct {
	Loop   bool
	Detune float64 // Cents
	Rate   float64 // Playback rate, 0 means 1
}

// Ratio returns the resampling ratio for the options.
func (o Options) Ratio() float64 {
	return ratio(o.Rate, o.Detune)
}

func ratio(rate, detune float64) float64 {
	if rate <= 0 {
		rate = 1
	}
	return rate * math.Pow(2, detune/1200)
}

// Sound is a long-lived cue instance, such as the looping ambient track.
type Sound interface {
	Key() string
	Play()
	Pause()
	Resume()
	SetRate(rate float64)
	Rate() float64
	Paused() bool
}

// Backend is the audio collaborator consumed by the trigger controller.
type Backend interface {
	// Register makes a cue available under key.
	Register(key string, cue config.CueConfig) error
	// Add creates a cue instance without starting it.
	Add(key string, opts Options) (Sound, error)
	// Play fires a one-shot. Overlapping triggers play side by side.
	Play(key string, opts Options) error
	// Unlock opens the output device. Safe to call more than once.
	Unlock() error
	Locked() bool
	// Blur and Focus pause and resume everything while the host is unfocused.
	Blur()
	Focus()
	Close() error
}

// Factory creates a fresh backend for one scene instance.
type Factory func() Backend
