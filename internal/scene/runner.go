package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/texture"
)

// Setup is what a scene declares during OnInit.
type Setup struct {
	World  config.WorldConfig
	Reward int // Score per collectible
}

// Assets is what a scene declares during OnLoadAssets, once its textures
// are baked.
type Assets struct {
	Cues  map[string]config.CueConfig
	Audio audio.ControllerConfig
}

// Hooks is implemented by concrete scenes. The runner calls OnInit,
// OnLoadAssets and OnStart once per Reset, then OnTick once per tick while
// the session is running.
type Hooks interface {
	ID() string
	Title() string
	OnInit(ctx *Context) (Setup, error)
	OnLoadAssets(ctx *Context) (Assets, error)
	OnStart(ctx *Context) error
	OnTick(ctx *Context, in core.InputFrame)
}

// Overlay is optionally implemented by Hooks to draw a HUD over the world.
type Overlay interface {
	Overlay(ctx *Context, dst *core.Screen)
}

// Context is everything a scene can reach during its lifetime.
type Context struct {
	Config   core.RuntimeConfig
	Setup    Setup
	Logger   *log.Logger
	Rand     Rand
	World    *physics.World
	Textures *texture.Store
	Entities *Entities
	Builder  *Builder
	Spawner  *Spawner
	Resolver *Resolver
	Session  *Session
	Backend  audio.Backend
	Audio    *audio.Controller

	// Set by OnStart.
	Player  *Entity
	Control Control
}

// Move applies the scene's control to the player. When the player jumps it
// bumps the jump counter and returns the new count.
func (c *Context) Move(in core.InputFrame) (jumped bool, n int) {
	if c.Player == nil || c.Control == nil {
		return false, 0
	}
	if !c.Control.Apply(c.Player, in) {
		return false, 0
	}
	return true, c.Session.Jump()
}

// Runner adapts Hooks to registry.Game and owns the session lifecycle.
type Runner struct {
	hooks  Hooks
	opts   registry.Options
	logger *log.Logger
	ctx    *Context

	// NewRand builds the spawn random source for a seed. Tests may replace it.
	NewRand func(seed int64) Rand
}

// NewRunner wraps hooks.
func NewRunner(hooks Hooks, opts registry.Options) *Runner {
	opts = opts.WithDefaults()
	return &Runner{
		hooks:   hooks,
		opts:    opts,
		logger:  opts.Logger.With("scene", hooks.ID()),
		NewRand: NewRand,
	}
}

func (r *Runner) ID() string    { return r.hooks.ID() }
func (r *Runner) Title() string { return r.hooks.Title() }

// Hooks returns the wrapped scene.
func (r *Runner) Hooks() Hooks { return r.hooks }

// Options returns the options the runner was built with.
func (r *Runner) Options() registry.Options { return r.opts }

// Context returns the live context, or nil before Reset and after Destroy.
func (r *Runner) Context() *Context { return r.ctx }

// Reset destroys any running session and builds a new one.
func (r *Runner) Reset(cfg core.RuntimeConfig) error {
	r.Destroy()

	ctx := &Context{
		Config:   cfg,
		Logger:   r.logger,
		Rand:     r.NewRand(cfg.Seed),
		Textures: texture.NewStore(),
		Entities: NewEntities(),
		Backend:  r.opts.Audio(),
	}
	ctx.Builder = NewBuilder(ctx.Textures, ctx.Entities)
	ctx.Spawner = &Spawner{store: ctx.Textures, entities: ctx.Entities, rng: ctx.Rand, logger: r.logger}

	if err := r.build(ctx); err != nil {
		r.teardown(ctx)
		return fmt.Errorf("scene: %s: %w", r.hooks.ID(), err)
	}
	r.ctx = ctx
	r.logger.Info("scene started", "seed", cfg.Seed, "entities", len(ctx.Entities.All()))
	return nil
}

func (r *Runner) build(ctx *Context) error {
	setup, err := r.hooks.OnInit(ctx)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	ctx.Setup = setup
	ctx.World = physics.NewWorld(setup.World.Width, setup.World.Height, setup.World.Gravity)
	ctx.Resolver = NewResolver(ctx.World, ctx.Entities)
	ctx.Session = NewSession(setup.Reward)

	assets, err := r.hooks.OnLoadAssets(ctx)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	ctx.Audio = audio.NewController(ctx.Backend, assets.Audio, r.logger)
	ctx.Audio.OnError = r.opts.OnAudioError
	// Cue failures degrade to silence instead of failing the scene.
	keys := make([]string, 0, len(assets.Cues))
	for k := range assets.Cues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := ctx.Backend.Register(k, assets.Cues[k]); err != nil {
			ctx.Audio.Report(err)
		}
	}

	if err := r.hooks.OnStart(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if ctx.Player == nil {
		return errors.New("start: no player spawned")
	}
	return nil
}

// Step runs one tick: pointer events, input mapping, then physics with
// synchronous collision dispatch.
func (r *Runner) Step(in core.InputFrame) core.StepResult {
	ctx := r.ctx
	if ctx == nil {
		return core.StepResult{}
	}
	ctx.Session.advance()

	if in.Has(core.ActionPointer) {
		ctx.Audio.PointerDown(ctx.Session.Click())
	}
	if ctx.Session.Running() {
		r.hooks.OnTick(ctx, in)
	}

	dt := ctx.Config.DeltaSeconds()
	ctx.World.Step(dt)
	if !ctx.World.Paused() {
		for _, e := range ctx.Entities.All() {
			if e.Anim != nil {
				e.Anim.Update(dt)
			}
		}
	}
	return core.StepResult{State: r.State()}
}

// State returns the current session state.
func (r *Runner) State() core.GameState {
	if r.ctx == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    r.ctx.Session.Score(),
		GameOver: !r.ctx.Session.Running(),
		Paused:   r.ctx.World.Paused(),
	}
}

// Blur pauses audio while the host is unfocused.
func (r *Runner) Blur() {
	if r.ctx != nil {
		r.ctx.Audio.Blur()
	}
}

// Focus resumes audio.
func (r *Runner) Focus() {
	if r.ctx != nil {
		r.ctx.Audio.Focus()
	}
}

// Destroy releases the session. It is safe to call more than once.
func (r *Runner) Destroy() {
	if r.ctx == nil {
		return
	}
	r.teardown(r.ctx)
	r.ctx = nil
	r.logger.Info("scene destroyed")
}

func (r *Runner) teardown(ctx *Context) {
	if ctx.World != nil {
		ctx.World.Destroy()
	}
	if ctx.Audio != nil {
		ctx.Audio.OnError = nil
		ctx.Audio.Close()
	} else if ctx.Backend != nil {
		if err := ctx.Backend.Close(); err != nil {
			r.logger.Warn("audio close failed", "err", err)
		}
	}
	ctx.Entities.Clear()
	ctx.Textures.Clear()
	ctx.Player = nil
}

// Background returns the world's backdrop colour.
func (r *Runner) Background() core.Color {
	if r.ctx == nil {
		return core.ColorDefault
	}
	return core.RGB(r.ctx.Setup.World.Background)
}

type configEncoder interface {
	ConfigYAML() ([]byte, error)
}

// ConfigYAML returns the config the current session was built from, or nil
// when the scene has no config or no session is running.
func (r *Runner) ConfigYAML() ([]byte, error) {
	c, ok := r.hooks.(configEncoder)
	if !ok || r.ctx == nil {
		return nil, nil
	}
	return c.ConfigYAML()
}

// Snapshot summarizes a session for replays and tests.
type Snapshot struct {
	Scene              string
	Tick               uint64
	Score              int
	Lifecycle          Lifecycle
	Paused             bool
	Collectibles       int
	ActiveCollectibles int
	Hazards            int
	Obstacles          int
	ClickTime          int
	JumpTime           int
	Player             core.Vec
}

// Snapshot returns the current session summary. The zero Snapshot is returned
// when no session is running.
func (r *Runner) Snapshot() Snapshot {
	ctx := r.ctx
	if ctx == nil {
		return Snapshot{Scene: r.hooks.ID()}
	}
	total, active := ctx.Entities.Count(KindCollectible)
	hazards, _ := ctx.Entities.Count(KindHazard)
	obstacles, _ := ctx.Entities.Count(KindObstacle)
	return Snapshot{
		Scene:              r.hooks.ID(),
		Tick:               ctx.Session.Tick(),
		Score:              ctx.Session.Score(),
		Lifecycle:          ctx.Session.Lifecycle(),
		Paused:             ctx.World.Paused(),
		Collectibles:       total,
		ActiveCollectibles: active,
		Hazards:            hazards,
		Obstacles:          obstacles,
		ClickTime:          ctx.Session.ClickTime(),
		JumpTime:           ctx.Session.JumpTime(),
		Player:             ctx.Player.Body.Position,
	}
}

// String formats the snapshot on one line.
func (s Snapshot) String() string {
	return fmt.Sprintf("%s tick=%d score=%d state=%s collectibles=%d/%d hazards=%d clicks=%d jumps=%d",
		s.Scene, s.Tick, s.Score, s.Lifecycle, s.ActiveCollectibles, s.Collectibles, s.Hazards, s.ClickTime, s.JumpTime)
}
