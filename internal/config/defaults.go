package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

//go:embed defaults/demo.yaml
var defaultDemoYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: WorldConfig{
			Width:      800,
			Height:     600,
			Gravity:    200,
			Background: 0x1d2b53,
		},
		Platforms: []PlatformSpec{
			{X: 0.5, Y: 1.0, YOffset: -32, Width: 1.0, Height: 40}, // Ground
			{X: 0.25, Y: 0.7, Width: 1.0 / 3, Height: 20},
			{X: 1.0 / 3, Y: 0.5, Width: 0.25, Height: 20},
			{X: 0.5, Y: 0.3, Width: 0.25, Height: 20},
			{X: 0.75, Y: 0.5, Width: 0.25, Height: 20},
			{X: 0.75, Y: 0.1, Width: 0.2, Height: 20},
		},
		Player: PlatformerPlayer{
			X:            50,
			Y:            0.8,
			Width:        32,
			Height:       48,
			Bounce:       0.2,
			Speed:        160,
			FallSpeed:    500,
			JumpVelocity: -350,
			HitTint:      0xff0000,
		},
		Collectibles: CollectibleConfig{
			Count:  30,
			StartX: 12,
			Y:      0,
			Width:  24,
			Height: 22,
			Bounce: Range{Min: 0.4, Max: 0.8},
			Reward: 10,
		},
		Hazards: HazardConfig{
			Y:         16,
			Size:      14,
			Bounce:    1,
			VelocityX: Range{Min: -500, Max: 500},
			VelocityY: 200,
		},
		Audio: PlatformerAudio{
			JumpDetune:  -1200,
			DetuneEvery: 3,
			FastRate:    5,
		},
		Cues: map[string]CueConfig{
			"qima":   {Wave: "sine", Notes: []float64{392, 440, 523.25, 440}, NoteMS: 400, AttackMS: 20, ReleaseMS: 120, Volume: 0.25},
			"jump":   {Wave: "square", Notes: []float64{440, 660}, NoteMS: 60, AttackMS: 5, ReleaseMS: 30, Volume: 0.2, Instances: 5},
			"growUp": {Wave: "sine", Notes: []float64{987.77, 1318.51}, NoteMS: 80, AttackMS: 2, ReleaseMS: 60, Volume: 0.3, Instances: 100},
			"death":  {Wave: "saw", Notes: []float64{220, 146.83, 98}, NoteMS: 180, AttackMS: 5, ReleaseMS: 150, Volume: 0.35},
		},
		Textures: map[string]TextureDef{
			"sky":    {Shape: "rect", Width: 800, Height: 600, Fill: 0x1d2b53},
			"ground": {Shape: "bordered", Width: 400, Height: 32, Fill: 0x3c9d3c, Border: 0x1e5a1e, Line: 2},
			"star":   {Shape: "circle", Width: 24, Height: 22, Fill: 0xffd700},
			"bomb":   {Shape: "circle", Width: 14, Height: 14, Fill: 0x444444},
			"dude":   {Shape: "bordered", Width: 32, Height: 48, Fill: 0x9b59b6, Border: 0x5b2c6f, Line: 2},
		},
	}
}

// DefaultDemoConfig returns the default physics demo configuration.
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		World: WorldConfig{
			Width:      800,
			Height:     600,
			Gravity:    200,
			Background: 0x00ffff,
		},
		Ground: DemoGround{
			Thickness: 30,
			Color:     0xffff00,
		},
		Obstacles: DemoObstacles{
			Count:       10,
			Width:       20,
			Height:      100,
			Border:      2,
			BorderColor: 0xff0000,
			FillColor:   0x00ff00,
			Margin:      10,
			Bounce:      Range{Min: 0.4, Max: 0.8},
			Gravity:     Range{Min: 100, Max: 200},
			VelocityX:   Range{Min: -160, Max: 160},
		},
		Player: DemoPlayer{
			Radius:       30,
			Color:        0xffffff,
			Margin:       10,
			Bounce:       0.3,
			MaxVelocityX: 300,
			Acceleration: 260,
			Drag:         200,
			JumpVelocity: -360,
		},
		CollideColor: 0xff0000,
		Cues: map[string]CueConfig{
			"qima": {Wave: "sine", Notes: []float64{392, 440, 523.25, 440}, NoteMS: 400, AttackMS: 20, ReleaseMS: 120, Volume: 0.25},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a scene.
func GetDefaultYAML(sceneID string) []byte {
	switch sceneID {
	case "platformer":
		return defaultPlatformerYAML
	case "demo":
		return defaultDemoYAML
	default:
		return nil
	}
}
