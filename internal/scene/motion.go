package scene

import "github.com/vovakirdan/starfall/internal/core"

// Control maps one tick of held directions onto the player body.
// It reports whether the player jumped this tick.
type Control interface {
	Apply(p *Entity, in core.InputFrame) bool
}

// DirectControl sets velocity directly for snappy platforming.
type DirectControl struct {
	Speed        float64
	FallSpeed    float64
	JumpVelocity float64
}

// Apply implements Control. Left, right and down are mutually exclusive in
// that priority; with none held the player stops and faces the camera.
func (c DirectControl) Apply(p *Entity, in core.InputFrame) bool {
	b := p.Body
	switch {
	case in.Has(core.ActionLeft):
		b.Velocity.X = -c.Speed
		p.Anim.Play(AnimLeft)
	case in.Has(core.ActionRight):
		b.Velocity.X = c.Speed
		p.Anim.Play(AnimRight)
	case in.Has(core.ActionDown):
		b.Velocity.Y = c.FallSpeed
	default:
		b.Velocity.X = 0
		p.Anim.Play(AnimIdle)
	}
	return jump(p, in, c.JumpVelocity)
}

// AccelControl drives the player through acceleration so it carries momentum.
type AccelControl struct {
	Acceleration float64
	Drag         float64
	JumpVelocity float64
}

// Apply implements Control. Releasing both directions engages drag.
func (c AccelControl) Apply(p *Entity, in core.InputFrame) bool {
	b := p.Body
	switch {
	case in.Has(core.ActionLeft):
		b.Acceleration.X = -c.Acceleration
		p.Anim.Play(AnimLeft)
	case in.Has(core.ActionRight):
		b.Acceleration.X = c.Acceleration
		p.Anim.Play(AnimRight)
	default:
		b.Acceleration.X = 0
		b.Drag.X = c.Drag
		p.Anim.Play(AnimIdle)
	}
	return jump(p, in, c.JumpVelocity)
}

func jump(p *Entity, in core.InputFrame, velocity float64) bool {
	if !in.Has(core.ActionUp) || !p.Body.Touching.Down {
		return false
	}
	p.Body.Velocity.Y = velocity
	return true
}
