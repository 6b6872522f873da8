// Package config provides YAML-based scene configuration loading for starfall.
// Every gameplay constant lives here so scenes stay free of magic numbers.
package config

import (
	"errors"
	"fmt"
)

// WorldConfig defines the world rectangle and global physics.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Gravity    float64 `yaml:"gravity"` // Downward acceleration, px/s^2
	Background uint32  `yaml:"background"`
}

// CueConfig describes a synthesized sound cue.
type CueConfig struct {
	Wave      string    `yaml:"wave"`    // "sine", "square", "saw" or "noise"
	Notes     []float64 `yaml:"notes"`   // Frequencies in Hz, played in sequence
	NoteMS    int       `yaml:"note_ms"` // Duration of each note
	AttackMS  int       `yaml:"attack_ms"`
	ReleaseMS int       `yaml:"release_ms"`
	Volume    float64   `yaml:"volume"`    // Linear gain, 0..1
	Instances int       `yaml:"instances"` // Max concurrent one-shots, 0 = unlimited
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %v greater than max %v", name, r.Min, r.Max)
	}
	return nil
}

// PlatformerConfig contains all configuration for the platformer scene.
type PlatformerConfig struct {
	World        WorldConfig           `yaml:"world"`
	Platforms    []PlatformSpec        `yaml:"platforms"`
	Player       PlatformerPlayer      `yaml:"player"`
	Collectibles CollectibleConfig     `yaml:"collectibles"`
	Hazards      HazardConfig          `yaml:"hazards"`
	Audio        PlatformerAudio       `yaml:"audio"`
	Cues         map[string]CueConfig  `yaml:"cues"`
	Textures     map[string]TextureDef `yaml:"textures"`
}

// PlatformSpec places one static platform using world fractions.
// The platform center is (X*width, Y*height + YOffset).
type PlatformSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	YOffset float64 `yaml:"y_offset"`
	Width   float64 `yaml:"width"` // Fraction of world width
	Height  float64 `yaml:"height"`
}

// PlatformerPlayer defines the controllable character.
type PlatformerPlayer struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"` // Fraction of world height
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Bounce       float64 `yaml:"bounce"`
	Speed        float64 `yaml:"speed"`
	FallSpeed    float64 `yaml:"fall_speed"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	HitTint      uint32  `yaml:"hit_tint"`
}

// CollectibleConfig defines the collectible row.
type CollectibleConfig struct {
	Count  int     `yaml:"count"`
	StartX float64 `yaml:"start_x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Bounce Range   `yaml:"bounce"`
	Reward int     `yaml:"reward"`
}

// HazardConfig defines the hazards spawned on depletion.
type HazardConfig struct {
	Y         float64 `yaml:"y"`
	Size      float64 `yaml:"size"`
	Bounce    float64 `yaml:"bounce"`
	VelocityX Range   `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
}

// PlatformerAudio defines the platformer's audio trigger parameters.
type PlatformerAudio struct {
	JumpDetune  float64 `yaml:"jump_detune"`  // Cents
	DetuneEvery int     `yaml:"detune_every"` // Every Nth jump is detuned
	FastRate    float64 `yaml:"fast_rate"`    // Ambient rate on even interactions
}

// TextureDef describes a procedurally baked placeholder texture.
type TextureDef struct {
	Shape  string  `yaml:"shape"` // "rect", "circle" or "bordered"
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Fill   uint32  `yaml:"fill"`
	Border uint32  `yaml:"border"`
	Line   float64 `yaml:"line"`
}

// Validate checks the invariants the scene relies on.
func (c PlatformerConfig) Validate() error {
	var errs []error
	if err := c.World.validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Collectibles.Count <= 0 {
		errs = append(errs, fmt.Errorf("collectibles.count must be positive, got %d", c.Collectibles.Count))
	}
	if c.Collectibles.Reward <= 0 {
		errs = append(errs, fmt.Errorf("collectibles.reward must be positive, got %d", c.Collectibles.Reward))
	}
	if err := c.Collectibles.Bounce.validate("collectibles.bounce"); err != nil {
		errs = append(errs, err)
	}
	if err := c.Hazards.VelocityX.validate("hazards.velocity_x"); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.DetuneEvery <= 0 {
		errs = append(errs, fmt.Errorf("audio.detune_every must be positive, got %d", c.Audio.DetuneEvery))
	}
	if len(c.Platforms) == 0 {
		errs = append(errs, errors.New("platforms: at least one platform is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: platformer: %w", err)
	}
	return nil
}

// DemoConfig contains all configuration for the physics demo scene.
type DemoConfig struct {
	World        WorldConfig          `yaml:"world"`
	Ground       DemoGround           `yaml:"ground"`
	Obstacles    DemoObstacles        `yaml:"obstacles"`
	Player       DemoPlayer           `yaml:"player"`
	CollideColor uint32               `yaml:"collide_color"`
	Cues         map[string]CueConfig `yaml:"cues"`
}

// DemoGround defines the ground strip.
type DemoGround struct {
	Thickness float64 `yaml:"thickness"`
	Color     uint32  `yaml:"color"`
}

// DemoObstacles defines the bouncing rectangles.
type DemoObstacles struct {
	Count       int     `yaml:"count"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Border      int     `yaml:"border"`
	BorderColor uint32  `yaml:"border_color"`
	FillColor   uint32  `yaml:"fill_color"`
	Margin      float64 `yaml:"margin"`
	Bounce      Range   `yaml:"bounce"`
	Gravity     Range   `yaml:"gravity"`
	VelocityX   Range   `yaml:"velocity_x"`
}

// DemoPlayer defines the circular player body.
type DemoPlayer struct {
	Radius       int     `yaml:"radius"`
	Color        uint32  `yaml:"color"`
	Margin       float64 `yaml:"margin"`
	Bounce       float64 `yaml:"bounce"`
	MaxVelocityX float64 `yaml:"max_velocity_x"`
	Acceleration float64 `yaml:"acceleration"`
	Drag         float64 `yaml:"drag"`
	JumpVelocity float64 `yaml:"jump_velocity"`
}

// Validate checks the invariants the scene relies on.
func (c DemoConfig) Validate() error {
	var errs []error
	if err := c.World.validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Obstacles.Count <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.count must be positive, got %d", c.Obstacles.Count))
	}
	for name, r := range map[string]Range{
		"obstacles.bounce":     c.Obstacles.Bounce,
		"obstacles.gravity":    c.Obstacles.Gravity,
		"obstacles.velocity_x": c.Obstacles.VelocityX,
	} {
		if err := r.validate(name); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %d", c.Player.Radius))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: demo: %w", err)
	}
	return nil
}

func (w WorldConfig) validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %vx%v", w.Width, w.Height)
	}
	return nil
}
