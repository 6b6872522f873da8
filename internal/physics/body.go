// Package physics is a small arcade physics world: axis-aligned bodies with
// optional circular hit shapes, per-body gravity, drag, bounce and world-bound
// clamping, plus solid colliders and overlap triggers between groups.
package physics

import (
	"math"

	"github.com/vovakirdan/starfall/internal/core"
)

// Sides records contact on each edge of a body during the last step.
type Sides struct {
	Up, Down, Left, Right bool
}

// Any reports whether any edge is in contact.
func (s Sides) Any() bool {
	return s.Up || s.Down || s.Left || s.Right
}

// Body is a single simulated object. Position is the body center.
type Body struct {
	ID       int
	Position core.Vec
	Width    float64
	Height   float64

	Velocity     core.Vec
	Acceleration core.Vec
	Bounce       core.Vec
	Gravity      core.Vec // Added to world gravity when AllowGravity is set
	Drag         core.Vec // Linear deceleration applied while acceleration is zero
	MaxVelocity  core.Vec // Zero component means unlimited

	AllowGravity       bool
	CollideWorldBounds bool
	Circle             bool
	Immovable          bool
	Enabled            bool

	// Touching is set by solid colliders, Blocked by the world bounds.
	Touching Sides
	Blocked  Sides

	group *Group
}

// Box returns the body's bounding box.
func (b *Body) Box() core.Box {
	return core.BoxAround(b.Position, b.Width, b.Height)
}

// Radius returns the radius of the circular hit shape.
func (b *Body) Radius() float64 {
	return math.Min(b.Width, b.Height) / 2
}

// Group returns the group owning this body.
func (b *Body) Group() *Group {
	return b.group
}

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(x, y float64) {
	b.Velocity = core.Vec{X: x, Y: y}
}

// SetBounce sets the same restitution on both axes.
func (b *Body) SetBounce(v float64) {
	b.Bounce = core.Vec{X: v, Y: v}
}

// SetSize changes the body size, keeping its center.
func (b *Body) SetSize(w, h float64) {
	b.Width = w
	b.Height = h
}

// Disable removes the body from integration and collision.
func (b *Body) Disable() {
	b.Enabled = false
	b.Touching = Sides{}
	b.Blocked = Sides{}
}

// Enable re-enables the body at (x, y) and stops all motion.
func (b *Body) Enable(x, y float64) {
	b.Position = core.Vec{X: x, Y: y}
	b.Velocity = core.Vec{}
	b.Acceleration = core.Vec{}
	b.Touching = Sides{}
	b.Blocked = Sides{}
	b.Enabled = true
}

// Members lets a single body be used wherever a Collidable is expected.
func (b *Body) Members() []*Body {
	return []*Body{b}
}

// integrate advances the body by dt seconds.
func (b *Body) integrate(gravity core.Vec, dt float64) {
	if b.AllowGravity {
		b.Velocity.X += (gravity.X + b.Gravity.X) * dt
		b.Velocity.Y += (gravity.Y + b.Gravity.Y) * dt
	}

	b.Velocity.X = accelerate(b.Velocity.X, b.Acceleration.X, b.Drag.X, dt)
	b.Velocity.Y = accelerate(b.Velocity.Y, b.Acceleration.Y, b.Drag.Y, dt)

	if b.MaxVelocity.X > 0 {
		b.Velocity.X = core.ClampF(b.Velocity.X, -b.MaxVelocity.X, b.MaxVelocity.X)
	}
	if b.MaxVelocity.Y > 0 {
		b.Velocity.Y = core.ClampF(b.Velocity.Y, -b.MaxVelocity.Y, b.MaxVelocity.Y)
	}

	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// accelerate applies acceleration, or drag toward zero when there is none.
func accelerate(v, accel, drag, dt float64) float64 {
	if accel != 0 {
		return v + accel*dt
	}
	if drag <= 0 || v == 0 {
		return v
	}
	d := drag * dt
	if math.Abs(v) <= d {
		return 0
	}
	if v > 0 {
		return v - d
	}
	return v + d
}

// clampToBounds keeps the body inside the world, reflecting velocity.
func (b *Body) clampToBounds(bounds core.Box) {
	box := b.Box()
	if box.MinX < bounds.MinX {
		b.Position.X = bounds.MinX + b.Width/2
		b.Velocity.X = -b.Velocity.X * b.Bounce.X
		b.Blocked.Left = true
	} else if box.MaxX > bounds.MaxX {
		b.Position.X = bounds.MaxX - b.Width/2
		b.Velocity.X = -b.Velocity.X * b.Bounce.X
		b.Blocked.Right = true
	}
	if box.MinY < bounds.MinY {
		b.Position.Y = bounds.MinY + b.Height/2
		b.Velocity.Y = -b.Velocity.Y * b.Bounce.Y
		b.Blocked.Up = true
	} else if box.MaxY > bounds.MaxY {
		b.Position.Y = bounds.MaxY - b.Height/2
		b.Velocity.Y = -b.Velocity.Y * b.Bounce.Y
		b.Blocked.Down = true
	}
}
