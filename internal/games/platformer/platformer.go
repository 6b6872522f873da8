// Package platformer implements the star-collecting platformer scene.
// The player runs and jumps across fixed platforms collecting a row of
// stars; clearing the row brings every star back and drops a bomb, and
// touching a bomb ends the session.
package platformer

import (
	"sort"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/scene"
)

// ID is the registry key of this scene.
const ID = "platformer"

// Texture and cue keys.
const (
	TexGround = "ground"
	TexStar   = "star"
	TexBomb   = "bomb"
	TexDude   = "dude"

	CueAmbient = "qima"
	CueJump    = "jump"
	CueCollect = "growUp"
	CueDeath   = "death"
)

// Scene is the platformer's set of runner hooks.
type Scene struct {
	configPath string
	configData []byte
	cfg        config.PlatformerConfig

	platforms *physics.Group
	stars     *physics.Group
	bombs     *physics.Group
	starList  []*scene.Entity
}

// New creates the platformer hooks loading config from configPath,
// or from the default search path when it is empty.
func New(configPath string) *Scene {
	return &Scene{configPath: configPath}
}

// ID implements scene.Hooks.
func (s *Scene) ID() string { return ID }

// Title implements scene.Hooks.
func (s *Scene) Title() string { return "Starfall Platformer" }

// Config returns the loaded configuration.
func (s *Scene) Config() config.PlatformerConfig { return s.cfg }

// ConfigYAML returns the loaded configuration as YAML.
func (s *Scene) ConfigYAML() ([]byte, error) { return config.Encode(s.cfg) }

// OnInit loads the configuration.
func (s *Scene) OnInit(ctx *scene.Context) (scene.Setup, error) {
	var (
		cfg config.PlatformerConfig
		err error
	)
	if len(s.configData) > 0 {
		cfg, err = config.DecodePlatformer(s.configData)
	} else {
		cfg, err = config.LoadPlatformer(s.configPath)
	}
	if err != nil {
		return scene.Setup{}, err
	}
	s.cfg = cfg
	return scene.Setup{World: cfg.World, Reward: cfg.Collectibles.Reward}, nil
}

// OnLoadAssets bakes the placeholder textures and declares the cues.
func (s *Scene) OnLoadAssets(ctx *scene.Context) (scene.Assets, error) {
	keys := make([]string, 0, len(s.cfg.Textures))
	for k := range s.cfg.Textures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := ctx.Builder.Placeholder(k, s.cfg.Textures[k]); err != nil {
			return scene.Assets{}, err
		}
	}

	return scene.Assets{
		Cues: s.cfg.Cues,
		Audio: audio.ControllerConfig{
			Mode:        audio.ToggleRate,
			Cues:        audio.Cues{Ambient: CueAmbient, Jump: CueJump, Collect: CueCollect, Death: CueDeath},
			JumpDetune:  s.cfg.Audio.JumpDetune,
			DetuneEvery: s.cfg.Audio.DetuneEvery,
			FastRate:    s.cfg.Audio.FastRate,
		},
	}, nil
}

// OnStart builds the level, spawns the player and stars, and registers
// the collision rules.
func (s *Scene) OnStart(ctx *scene.Context) error {
	w, h := s.cfg.World.Width, s.cfg.World.Height

	// Bombs spawn mid-session; fail now rather than inside a callback.
	if _, err := ctx.Textures.Get(TexBomb); err != nil {
		return err
	}

	s.platforms = ctx.World.NewStaticGroup("platforms")
	for _, p := range s.cfg.Platforms {
		if _, err := ctx.Builder.Ground(s.platforms, TexGround, p.X*w, p.Y*h+p.YOffset, p.Width*w, p.Height); err != nil {
			return err
		}
	}

	pc := s.cfg.Player
	player, err := ctx.Spawner.Player(ctx.World.NewGroup("player"), scene.PlayerSpec{
		X:       pc.X,
		Y:       pc.Y * h,
		Width:   pc.Width,
		Height:  pc.Height,
		Texture: TexDude,
		Bounce:  pc.Bounce,
	})
	if err != nil {
		return err
	}
	ctx.Player = player
	ctx.Control = scene.DirectControl{Speed: pc.Speed, FallSpeed: pc.FallSpeed, JumpVelocity: pc.JumpVelocity}

	cc := s.cfg.Collectibles
	s.stars = ctx.World.NewGroup("stars")
	s.starList, err = ctx.Spawner.Row(s.stars, scene.RowSpec{
		Kind:    scene.KindCollectible,
		Count:   cc.Count,
		StartX:  cc.StartX,
		StepX:   w / float64(cc.Count),
		Y:       cc.Y,
		Width:   cc.Width,
		Height:  cc.Height,
		Texture: TexStar,
		Bounce:  cc.Bounce,
		Bounded: true,
	})
	if err != nil {
		return err
	}

	s.bombs = ctx.World.NewGroup("bombs")

	r := ctx.Resolver
	r.Collide(s.platforms, player.Body)
	r.Collide(s.platforms, s.stars)
	r.Overlap(player.Body, s.stars)
	r.Collide(s.bombs, s.platforms)
	r.Collide(player.Body, s.bombs)

	r.On(scene.KindPlayer, scene.KindCollectible, func(p, star *scene.Entity) { s.collect(ctx, p, star) })
	r.On(scene.KindPlayer, scene.KindHazard, func(p, bomb *scene.Entity) { s.hit(ctx, p) })
	return nil
}

// collect consumes one star. Clearing the row restores every star at the
// top of the world and drops one bomb on the far side from the player.
func (s *Scene) collect(ctx *scene.Context, player, star *scene.Entity) {
	star.Deactivate()
	ctx.Audio.Collect()
	ctx.Session.Collect()

	if s.stars.CountActive() > 0 {
		return
	}
	for _, e := range s.starList {
		e.Reactivate(e.Body.Position.X, 0)
	}
	if _, err := ctx.Spawner.Hazard(s.bombs, TexBomb, player.Body.Position.X, s.cfg.World.Width, s.cfg.Hazards); err != nil {
		ctx.Logger.Error("hazard spawn failed", "err", err)
	}
}

// hit ends the session. Only the first contact has any effect.
func (s *Scene) hit(ctx *scene.Context, player *scene.Entity) {
	if !ctx.Session.Running() {
		return
	}
	ctx.World.Pause()
	player.Tint = core.RGB(s.cfg.Player.HitTint)
	player.Anim.Play(scene.AnimIdle)
	ctx.Audio.Death()
	ctx.Session.End()
	ctx.Logger.Info("game over", "score", ctx.Session.Score())
}

// OnTick maps held directions onto the player and plays the jump cue.
func (s *Scene) OnTick(ctx *scene.Context, in core.InputFrame) {
	if jumped, n := ctx.Move(in); jumped {
		ctx.Audio.Jump(n)
	}
}

// Overlay draws the score and the game over banner.
func (s *Scene) Overlay(ctx *scene.Context, dst *core.Screen) {
	dst.SetInk(core.ColorYellow)
	dst.DrawText(1, 0, ctx.Session.ScoreText())
	dst.SetInk(core.ColorDefault)

	if !ctx.Session.Running() {
		scene.DrawMessage(dst, "GAME OVER", ctx.Session.ScoreText())
	}
}

func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		s := New(opts.ConfigPath)
		s.configData = opts.ConfigData
		return scene.NewRunner(s, opts)
	})
}
