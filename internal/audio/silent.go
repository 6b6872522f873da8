package audio

import (
	"fmt"

	"github.com/vovakirdan/starfall/internal/config"
)

// SilentBackend keeps full playback bookkeeping without any output.
// Plays counts one-shots per cue, which makes it useful in tests too.
type SilentBackend struct {
	cues     map[string]config.CueConfig
	unlocked bool
	blurred  bool
	closed   bool

	Plays  map[string]int
	Last   map[string]Options
	Sounds []*SilentSound
}

// NewSilentBackend creates a silent backend.
func NewSilentBackend() *SilentBackend {
	return &SilentBackend{
		cues:  make(map[string]config.CueConfig),
		Plays: make(map[string]int),
		Last:  make(map[string]Options),
	}
}

// NewSilent is a Factory for silent backends.
func NewSilent() Backend {
	return NewSilentBackend()
}

func (b *SilentBackend) Register(key string, cue config.CueConfig) error {
	if len(cue.Notes) == 0 {
		return fmt.Errorf("audio: register %q: cue has no notes", key)
	}
	b.cues[key] = cue
	return nil
}

func (b *SilentBackend) Add(key string, opts Options) (Sound, error) {
	if _, ok := b.cues[key]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, key)
	}
	rate := opts.Rate
	if rate <= 0 {
		rate = 1
	}
	s := &SilentSound{key: key, rate: rate, paused: true, Loop: opts.Loop}
	b.Sounds = append(b.Sounds, s)
	return s, nil
}

func (b *SilentBackend) Play(key string, opts Options) error {
	if _, ok := b.cues[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCue, key)
	}
	if !b.unlocked {
		return fmt.Errorf("play %q: %w", key, ErrLocked)
	}
	b.Plays[key]++
	b.Last[key] = opts
	return nil
}

func (b *SilentBackend) Unlock() error {
	if b.closed {
		return fmt.Errorf("audio: unlock after close")
	}
	b.unlocked = true
	return nil
}

func (b *SilentBackend) Locked() bool { return !b.unlocked }

func (b *SilentBackend) Blur()  { b.blurred = true }
func (b *SilentBackend) Focus() { b.blurred = false }

// Blurred reports whether the backend is paused for lost focus.
func (b *SilentBackend) Blurred() bool { return b.blurred }

func (b *SilentBackend) Close() error {
	b.closed = true
	b.unlocked = false
	for _, s := range b.Sounds {
		s.paused = true
	}
	return nil
}

// Closed reports whether Close was called.
func (b *SilentBackend) Closed() bool { return b.closed }

// SilentSound is a Sound that only records its state.
type SilentSound struct {
	key     string
	rate    float64
	paused  bool
	Loop    bool
	Started bool
}

func (s *SilentSound) Key() string  { return s.key }
func (s *SilentSound) Play()        { s.Started, s.paused = true, false }
func (s *SilentSound) Pause()       { s.paused = true }
func (s *SilentSound) Resume()      { s.Started, s.paused = true, false }
func (s *SilentSound) Paused() bool { return s.paused }
func (s *SilentSound) Rate() float64 {
	return s.rate
}

func (s *SilentSound) SetRate(rate float64) {
	if rate <= 0 {
		rate = 1
	}
	s.rate = rate
}
