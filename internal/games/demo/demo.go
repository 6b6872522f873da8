// Package demo implements the physics playground scene: a circular player
// with momentum-based control among bouncing rectangles on a ground strip.
// Every texture is baked from primitives at startup.
package demo

import (
	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/scene"
)

// ID is the registry key of this scene.
const ID = "demo"

// Texture and cue keys.
const (
	TexGround = "ground"
	TexRect   = "rect"
	TexPlayer = "player"

	CueAmbient = "qima"
)

// Scene is the demo's set of runner hooks.
type Scene struct {
	configPath string
	configData []byte
	cfg        config.DemoConfig

	ground *physics.Group
	rects  *physics.Group
}

// New creates the demo hooks.
func New(configPath string) *Scene {
	return &Scene{configPath: configPath}
}

func (s *Scene) ID() string    { return ID }
func (s *Scene) Title() string { return "Physics Demo" }

// ConfigYAML returns the loaded configuration as YAML.
func (s *Scene) ConfigYAML() ([]byte, error) { return config.Encode(s.cfg) }

// OnInit loads the configuration.
func (s *Scene) OnInit(ctx *scene.Context) (scene.Setup, error) {
	var (
		cfg config.DemoConfig
		err error
	)
	if len(s.configData) > 0 {
		cfg, err = config.DecodeDemo(s.configData)
	} else {
		cfg, err = config.LoadDemo(s.configPath)
	}
	if err != nil {
		return scene.Setup{}, err
	}
	s.cfg = cfg
	return scene.Setup{World: cfg.World}, nil
}

// OnLoadAssets rasterizes the ground strip, the bordered rectangle and the
// player disc. Each is baked once and shared by every instance.
func (s *Scene) OnLoadAssets(ctx *scene.Context) (scene.Assets, error) {
	g, o, p := s.cfg.Ground, s.cfg.Obstacles, s.cfg.Player
	b := ctx.Builder

	if _, err := b.GroundStrip(TexGround, int(s.cfg.World.Width), int(g.Thickness), core.RGB(g.Color)); err != nil {
		return scene.Assets{}, err
	}
	if _, err := b.Rectangle(TexRect, o.Width, o.Height, o.Border, core.RGB(o.BorderColor), core.RGB(o.FillColor)); err != nil {
		return scene.Assets{}, err
	}
	if _, err := b.Circle(TexPlayer, p.Radius, core.RGB(p.Color)); err != nil {
		return scene.Assets{}, err
	}

	return scene.Assets{
		Cues: s.cfg.Cues,
		Audio: audio.ControllerConfig{
			Mode: audio.TogglePause,
			Cues: audio.Cues{Ambient: CueAmbient},
		},
	}, nil
}

// OnStart places the ground, the rectangle row and the player, then wires
// the colliders.
func (s *Scene) OnStart(ctx *scene.Context) error {
	w, h := s.cfg.World.Width, s.cfg.World.Height
	g, o, pc := s.cfg.Ground, s.cfg.Obstacles, s.cfg.Player

	s.ground = ctx.World.NewStaticGroup("ground")
	if _, err := ctx.Builder.Ground(s.ground, TexGround, w/2, h-g.Thickness/2, w, g.Thickness); err != nil {
		return err
	}

	tw := float64(o.Width + 2*o.Border)
	th := float64(o.Height + 2*o.Border)
	s.rects = ctx.World.NewGroup("rects")
	if _, err := ctx.Spawner.Row(s.rects, scene.RowSpec{
		Kind:      scene.KindObstacle,
		Count:     o.Count,
		StartX:    tw/2 + o.Margin,
		StepX:     w / float64(o.Count),
		Y:         th/2 + o.Margin,
		Texture:   TexRect,
		Bounce:    o.Bounce,
		BounceXY:  true,
		Gravity:   &o.Gravity,
		VelocityX: &o.VelocityX,
		Bounded:   true,
	}); err != nil {
		return err
	}

	r := float64(pc.Radius)
	player, err := ctx.Spawner.Player(ctx.World.NewGroup("player"), scene.PlayerSpec{
		X:            r + pc.Margin,
		Y:            h / 2,
		Texture:      TexPlayer,
		Bounce:       pc.Bounce,
		MaxVelocityX: pc.MaxVelocityX,
		Circle:       true,
	})
	if err != nil {
		return err
	}
	ctx.Player = player
	ctx.Control = scene.AccelControl{Acceleration: pc.Acceleration, Drag: pc.Drag, JumpVelocity: pc.JumpVelocity}

	res := ctx.Resolver
	res.Collide(s.rects, s.ground)
	res.Collide(player.Body, s.ground)
	res.Collide(s.rects, s.rects)
	res.Collide(s.rects, player.Body)

	tint := core.RGB(s.cfg.CollideColor)
	res.On(scene.KindObstacle, scene.KindPlayer, func(rect, p *scene.Entity) {
		p.Tint = tint
		rect.Tint = tint
	})
	return nil
}

// OnTick maps held directions onto the player. Jumps count but make no sound.
func (s *Scene) OnTick(ctx *scene.Context, in core.InputFrame) {
	ctx.Move(in)
}

// Overlay draws the controls hint.
func (s *Scene) Overlay(ctx *scene.Context, dst *core.Screen) {
	dst.SetInk(core.ColorGray)
	dst.DrawText(1, 0, "arrows: move  up: jump  click: music")
	dst.SetInk(core.ColorDefault)
}

func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		s := New(opts.ConfigPath)
		s.configData = opts.ConfigData
		return scene.NewRunner(s, opts)
	})
}
