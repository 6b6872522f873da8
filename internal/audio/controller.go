package audio

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ToggleMode selects what even-numbered interactions do to the ambient cue.
type ToggleMode int

const (
	// ToggleRate plays the ambient cue at FastRate on even interactions and
	// at normal rate on odd ones.
	ToggleRate ToggleMode = iota
	// TogglePause pauses the ambient cue on even interactions and resumes it
	// on odd ones.
	TogglePause
)

func (m ToggleMode) String() string {
	switch m {
	case ToggleRate:
		return "rate"
	case TogglePause:
		return "pause"
	default:
		return fmt.Sprintf("ToggleMode(%d)", int(m))
	}
}

// Cues names the cue keys the controller triggers. Empty keys are never played.
type Cues struct {
	Ambient string
	Jump    string
	Collect string
	Death   string
}

// ControllerConfig configures a Controller.
type ControllerConfig struct {
	Mode        ToggleMode
	Cues        Cues
	JumpDetune  float64 // Cents applied every DetuneEvery-th jump
	DetuneEvery int
	FastRate    float64
}

// Controller maps gameplay events onto a Backend. Audio failures are
// reported and never stop the caller.
type Controller struct {
	backend Backend
	cfg     ControllerConfig
	logger  *log.Logger
	ambient Sound

	// OnError, if set, receives every audio failure after it is logged.
	OnError func(error)
}

// NewController creates a controller over backend.
func NewController(backend Backend, cfg ControllerConfig, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{backend: backend, cfg: cfg, logger: logger}
}

// Ambient returns the ambient cue instance, or nil before the first interaction.
func (c *Controller) Ambient() Sound {
	return c.ambient
}

// PointerDown handles the n-th primary pointer interaction of the session.
// The first one creates the looping ambient cue, unlocks the backend and
// starts playback; later ones toggle it by parity.
func (c *Controller) PointerDown(n int) {
	if n < 1 {
		panic(fmt.Sprintf("audio: pointer interaction count must start at 1, got %d", n))
	}
	if n == 1 {
		c.start()
		if c.cfg.Mode == TogglePause {
			return
		}
	} else if c.ambient == nil {
		panic(fmt.Sprintf("audio: ambient cue %q toggled before the first interaction", c.cfg.Cues.Ambient))
	}

	odd := n%2 == 1
	switch c.cfg.Mode {
	case ToggleRate:
		rate := c.cfg.FastRate
		if odd {
			rate = 1
		}
		c.ambient.SetRate(rate)
	case TogglePause:
		if odd {
			c.ambient.Resume()
		} else {
			c.ambient.Pause()
		}
	}
}

func (c *Controller) start() {
	s, err := c.backend.Add(c.cfg.Cues.Ambient, Options{Loop: true})
	if err != nil {
		c.Report(err)
		s = &SilentSound{key: c.cfg.Cues.Ambient, rate: 1, paused: true, Loop: true}
	}
	c.ambient = s

	if c.backend.Locked() {
		if err := c.backend.Unlock(); err != nil {
			c.Report(err)
		} else {
			c.logger.Info("audio unlocked")
		}
	}
	c.ambient.Play()
}

// JumpDetune returns the detune for the n-th jump of the session.
func (c *Controller) JumpDetune(n int) float64 {
	if c.cfg.DetuneEvery > 0 && n%c.cfg.DetuneEvery == 0 {
		return c.cfg.JumpDetune
	}
	return 0
}

// Jump plays the jump cue for the n-th jump.
func (c *Controller) Jump(n int) {
	c.play(c.cfg.Cues.Jump, Options{Detune: c.JumpDetune(n)})
}

// Collect plays the collect cue.
func (c *Controller) Collect() {
	c.play(c.cfg.Cues.Collect, Options{})
}

// Death plays the death cue.
func (c *Controller) Death() {
	c.play(c.cfg.Cues.Death, Options{})
}

// Blur pauses output while the host is unfocused.
func (c *Controller) Blur() { c.backend.Blur() }

// Focus resumes output.
func (c *Controller) Focus() { c.backend.Focus() }

// Close releases the backend. The controller must not be used afterwards.
func (c *Controller) Close() {
	if err := c.backend.Close(); err != nil {
		c.Report(err)
	}
	c.ambient = nil
}

func (c *Controller) play(key string, opts Options) {
	if key == "" {
		return
	}
	err := c.backend.Play(key, opts)
	switch {
	case err == nil:
	case errors.Is(err, ErrLocked):
		// Nothing is audible before the first gesture; drop quietly.
		c.logger.Debug("one-shot dropped", "cue", key)
	default:
		c.Report(err)
	}
}

// Report logs an audio failure and forwards it to OnError.
func (c *Controller) Report(err error) {
	c.logger.Warn("audio failure", "err", err)
	if c.OnError != nil {
		c.OnError(err)
	}
}
