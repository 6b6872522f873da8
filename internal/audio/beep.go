package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/starfall/internal/config"
)

// resampleQuality trades CPU for fidelity when detuning or changing rate.
const resampleQuality = 4

// Sink is the output device. The speaker package satisfies it through
// SpeakerSink; tests substitute a recorder.
type Sink interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// SpeakerSink forwards to the global beep speaker.
type SpeakerSink struct{}

func (SpeakerSink) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (SpeakerSink) Play(s ...beep.Streamer)                       { speaker.Play(s...) }
func (SpeakerSink) Lock()                                         { speaker.Lock() }
func (SpeakerSink) Unlock()                                       { speaker.Unlock() }
func (SpeakerSink) Close()                                        { speaker.Close() }

type cue struct {
	buf    *beep.Buffer
	limit  int32
	active atomic.Int32
}

// BeepBackend synthesizes cues and mixes them onto a Sink.
// Every streamer mutation happens under the sink lock.
type BeepBackend struct {
	sink   Sink
	mixer  *beep.Mixer
	master *beep.Ctrl

	mu       sync.Mutex
	cues     map[string]*cue
	unlocked bool
	closed   bool
}

// NewBeepBackend creates a backend that plays through sink.
func NewBeepBackend(sink Sink) *BeepBackend {
	mixer := &beep.Mixer{}
	return &BeepBackend{
		sink:   sink,
		mixer:  mixer,
		master: &beep.Ctrl{Streamer: mixer},
		cues:   make(map[string]*cue),
	}
}

// NewSpeakerBackend creates a backend on the system speaker.
func NewSpeakerBackend() Backend {
	return NewBeepBackend(SpeakerSink{})
}

// Register synthesizes cue and stores it under key.
func (b *BeepBackend) Register(key string, c config.CueConfig) error {
	buf, err := Synthesize(c)
	if err != nil {
		return fmt.Errorf("audio: register %q: %w", key, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cues[key] = &cue{buf: buf, limit: int32(c.Instances)}
	return nil
}

func (b *BeepBackend) lookup(key string) (*cue, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cues[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, key)
	}
	return c, nil
}

// Add creates a paused-until-played instance of key.
func (b *BeepBackend) Add(key string, opts Options) (Sound, error) {
	c, err := b.lookup(key)
	if err != nil {
		return nil, err
	}
	var src beep.Streamer = c.buf.Streamer(0, c.buf.Len())
	if opts.Loop {
		src = beep.Loop(-1, c.buf.Streamer(0, c.buf.Len()))
	}
	rate := opts.Rate
	if rate <= 0 {
		rate = 1
	}
	res := beep.ResampleRatio(resampleQuality, ratio(rate, opts.Detune), src)
	return &beepSound{
		key:     key,
		backend: b,
		res:     res,
		ctrl:    &beep.Ctrl{Streamer: res, Paused: true},
		rate:    rate,
		detune:  opts.Detune,
	}, nil
}

// Play fires a one-shot of key. Triggers past the cue's instance cap are dropped.
func (b *BeepBackend) Play(key string, opts Options) error {
	c, err := b.lookup(key)
	if err != nil {
		return err
	}
	if b.Locked() {
		return fmt.Errorf("play %q: %w", key, ErrLocked)
	}
	if c.limit > 0 && c.active.Load() >= c.limit {
		return nil
	}
	c.active.Add(1)
	shot := beep.Seq(
		beep.ResampleRatio(resampleQuality, opts.Ratio(), c.buf.Streamer(0, c.buf.Len())),
		beep.Callback(func() { c.active.Add(-1) }),
	)
	b.sink.Lock()
	b.mixer.Add(shot)
	b.sink.Unlock()
	return nil
}

// Active returns the number of playing one-shots of key.
func (b *BeepBackend) Active(key string) int {
	c, err := b.lookup(key)
	if err != nil {
		return 0
	}
	return int(c.active.Load())
}

// Unlock opens the sink and starts the mix.
func (b *BeepBackend) Unlock() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unlocked {
		return nil
	}
	if b.closed {
		return fmt.Errorf("audio: unlock after close")
	}
	if err := b.sink.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	b.sink.Play(b.master)
	b.unlocked = true
	return nil
}

// Locked reports whether the sink is still closed.
func (b *BeepBackend) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.unlocked
}

// Blur pauses the whole mix.
func (b *BeepBackend) Blur() {
	b.sink.Lock()
	b.master.Paused = true
	b.sink.Unlock()
}

// Focus resumes the mix.
func (b *BeepBackend) Focus() {
	b.sink.Lock()
	b.master.Paused = false
	b.sink.Unlock()
}

// Close stops all playback and releases the sink.
func (b *BeepBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.unlocked {
		b.sink.Lock()
		b.mixer.Clear()
		b.sink.Unlock()
		b.sink.Close()
		b.unlocked = false
	}
	b.cues = make(map[string]*cue)
	return nil
}

type beepSound struct {
	key     string
	backend *BeepBackend
	res     *beep.Resampler
	ctrl    *beep.Ctrl
	rate    float64
	detune  float64
	started bool
}

func (s *beepSound) Key() string { return s.key }

// Play starts the instance on the mix; it becomes audible once unlocked.
func (s *beepSound) Play() {
	b := s.backend
	b.sink.Lock()
	defer b.sink.Unlock()
	s.ctrl.Paused = false
	if !s.started {
		s.started = true
		b.mixer.Add(s.ctrl)
	}
}

func (s *beepSound) Pause() {
	s.backend.sink.Lock()
	s.ctrl.Paused = true
	s.backend.sink.Unlock()
}

func (s *beepSound) Resume() {
	if !s.started {
		s.Play()
		return
	}
	s.backend.sink.Lock()
	s.ctrl.Paused = false
	s.backend.sink.Unlock()
}

func (s *beepSound) SetRate(rate float64) {
	if rate <= 0 {
		rate = 1
	}
	s.backend.sink.Lock()
	s.rate = rate
	s.res.SetRatio(ratio(rate, s.detune))
	s.backend.sink.Unlock()
}

func (s *beepSound) Rate() float64 {
	s.backend.sink.Lock()
	defer s.backend.sink.Unlock()
	return s.rate
}

func (s *beepSound) Paused() bool {
	s.backend.sink.Lock()
	defer s.backend.sink.Unlock()
	return s.ctrl.Paused
}
