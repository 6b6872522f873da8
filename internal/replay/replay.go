// Package replay journals the input frames of a live session and re-runs
// journals headlessly. Scenes are deterministic for a seed and an input
// sequence, so a journal reproduces the session exactly.
package replay

import (
	"fmt"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/scene"
	"github.com/vovakirdan/starfall/internal/storage"
)

// Recorder collects one frame per tick.
type Recorder struct {
	sceneID     string
	cfg         core.RuntimeConfig
	sceneConfig []byte
	inputs      []core.InputFrame
}

// NewRecorder starts a journal for sceneID. cfg must carry the seed the
// session was actually reset with, and sceneConfig the scene config YAML it
// was built from (nil for defaults).
func NewRecorder(sceneID string, cfg core.RuntimeConfig, sceneConfig []byte) *Recorder {
	return &Recorder{sceneID: sceneID, cfg: cfg, sceneConfig: sceneConfig}
}

// Record appends the frame of one tick.
func (r *Recorder) Record(in core.InputFrame) {
	r.inputs = append(r.inputs, in)
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int { return len(r.inputs) }

// Replay returns the journal ready to be stored.
func (r *Recorder) Replay() storage.Replay {
	return storage.Replay{
		SceneID:  r.sceneID,
		Seed:     r.cfg.Seed,
		TickRate: r.cfg.TickRate,
		Inputs:   append([]core.InputFrame(nil), r.inputs...),
		Config:   r.sceneConfig,
	}
}

// Result is the outcome of a headless re-simulation.
type Result struct {
	State    core.GameState
	Snapshot scene.Snapshot
}

type snapshotter interface {
	Snapshot() scene.Snapshot
}

// Run re-simulates a journal with silent audio. A recorded scene config
// replaces any config options; unset options default the way
// registry.Create defaults them.
func Run(r storage.Replay, opts registry.Options) (Result, error) {
	opts.Audio = audio.NewSilent
	if len(r.Config) > 0 {
		opts.ConfigPath, opts.ConfigData = "", r.Config
	}
	game, err := registry.Create(r.SceneID, opts)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	defer game.Destroy()

	cfg := core.DefaultConfig()
	cfg.Seed = r.Seed
	if r.TickRate > 0 {
		cfg.TickRate = r.TickRate
	}
	if err := game.Reset(cfg); err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	for _, in := range r.Inputs {
		game.Step(in)
	}

	res := Result{State: game.State()}
	if s, ok := game.(snapshotter); ok {
		res.Snapshot = s.Snapshot()
	}
	return res, nil
}
