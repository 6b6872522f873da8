package physics

import (
	"math"

	"github.com/vovakirdan/starfall/internal/core"
)

// Callback is invoked once per colliding or overlapping pair.
// a always comes from the collider's first Collidable.
type Callback func(a, b *Body)

// Collider is a registered pairwise rule between two Collidables.
type Collider struct {
	a, b    Collidable
	solid   bool
	cb      Callback
	enabled bool
}

// Disable stops the collider from being processed.
func (c *Collider) Disable() {
	c.enabled = false
}

// World advances bodies and resolves registered colliders.
type World struct {
	Bounds  core.Box
	Gravity core.Vec

	groups    []*Group
	colliders []*Collider
	paused    bool
	destroyed bool
	nextID    int
	steps     uint64
}

// NewWorld creates a world of the given size with downward gravity in px/s^2.
func NewWorld(width, height, gravityY float64) *World {
	return &World{
		Bounds:  core.Box{MaxX: width, MaxY: height},
		Gravity: core.Vec{Y: gravityY},
	}
}

// NewGroup creates a group of dynamic bodies.
func (w *World) NewGroup(name string) *Group {
	g := &Group{Name: name, world: w}
	w.groups = append(w.groups, g)
	return g
}

// NewStaticGroup creates a group of immovable bodies.
func (w *World) NewStaticGroup(name string) *Group {
	g := &Group{Name: name, static: true, world: w}
	w.groups = append(w.groups, g)
	return g
}

// AddCollider registers a solid collision rule. Overlapping pairs are
// separated and cb, if non-nil, is called after separation.
func (w *World) AddCollider(a, b Collidable, cb Callback) *Collider {
	return w.add(a, b, true, cb)
}

// AddOverlap registers a non-solid rule: cb fires for every overlapping pair.
func (w *World) AddOverlap(a, b Collidable, cb Callback) *Collider {
	return w.add(a, b, false, cb)
}

func (w *World) add(a, b Collidable, solid bool, cb Callback) *Collider {
	c := &Collider{a: a, b: b, solid: solid, cb: cb, enabled: true}
	if !w.destroyed {
		w.colliders = append(w.colliders, c)
	}
	return c
}

// Pause stops all further advancement. Callbacks of the current step still run.
func (w *World) Pause() {
	w.paused = true
}

// Resume re-enables advancement.
func (w *World) Resume() {
	w.paused = false
}

// Paused reports whether the world is paused.
func (w *World) Paused() bool {
	return w.paused
}

// Steps returns how many steps actually advanced the world.
func (w *World) Steps() uint64 {
	return w.steps
}

// Destroy releases every group and collider. A destroyed world never steps again.
func (w *World) Destroy() {
	w.destroyed = true
	for _, g := range w.groups {
		g.clear()
	}
	w.groups = nil
	w.colliders = nil
}

// Destroyed reports whether Destroy has been called.
func (w *World) Destroyed() bool {
	return w.destroyed
}

// Step integrates all dynamic bodies by dt seconds, then processes colliders
// in registration order. Each callback runs to completion before the next
// pair is examined.
func (w *World) Step(dt float64) {
	if w.paused || w.destroyed {
		return
	}
	w.steps++

	for _, g := range w.groups {
		if g.static {
			continue
		}
		for _, b := range g.bodies {
			if !b.Enabled {
				continue
			}
			b.Touching = Sides{}
			b.Blocked = Sides{}
			b.integrate(w.Gravity, dt)
			if b.CollideWorldBounds {
				b.clampToBounds(w.Bounds)
			}
		}
	}

	// Snapshot: colliders registered by callbacks take effect next step.
	colliders := append([]*Collider(nil), w.colliders...)
	for _, c := range colliders {
		if !c.enabled || w.destroyed {
			continue
		}
		w.process(c)
	}
}

// process checks every pair of a collider. Member slices are snapshotted so
// bodies created by a callback join from the next step on.
func (w *World) process(c *Collider) {
	as := append([]*Body(nil), c.a.Members()...)
	bs := as
	self := sameCollidable(c.a, c.b)
	if !self {
		bs = append([]*Body(nil), c.b.Members()...)
	}

	for i, a := range as {
		start := 0
		if self {
			start = i + 1
		}
		for j := start; j < len(bs); j++ {
			if !a.Enabled {
				break
			}
			b := bs[j]
			if a == b || !b.Enabled {
				continue
			}
			if !Overlaps(a, b) {
				continue
			}
			if c.solid {
				separate(a, b)
			}
			if c.cb != nil {
				c.cb(a, b)
			}
		}
	}
}

func sameCollidable(a, b Collidable) bool {
	ga, okA := a.(*Group)
	gb, okB := b.(*Group)
	return okA && okB && ga == gb
}

// Overlaps reports whether two bodies' hit shapes intersect.
func Overlaps(a, b *Body) bool {
	switch {
	case a.Circle && b.Circle:
		d := core.Vec{X: a.Position.X - b.Position.X, Y: a.Position.Y - b.Position.Y}
		return d.Len() < a.Radius()+b.Radius()
	case a.Circle:
		return circleBox(a, b.Box())
	case b.Circle:
		return circleBox(b, a.Box())
	default:
		return a.Box().Intersects(b.Box())
	}
}

func circleBox(c *Body, box core.Box) bool {
	nx := core.ClampF(c.Position.X, box.MinX, box.MaxX)
	ny := core.ClampF(c.Position.Y, box.MinY, box.MaxY)
	d := core.Vec{X: c.Position.X - nx, Y: c.Position.Y - ny}
	return d.Len() < c.Radius()
}

// separate pushes two overlapping bodies apart along the axis of least
// penetration and exchanges velocity along that axis.
func separate(a, b *Body) {
	if a.Immovable && b.Immovable {
		return
	}
	ba, bb := a.Box(), b.Box()
	ox := math.Min(ba.MaxX, bb.MaxX) - math.Max(ba.MinX, bb.MinX)
	oy := math.Min(ba.MaxY, bb.MaxY) - math.Max(ba.MinY, bb.MinY)
	if ox <= 0 || oy <= 0 {
		// Edges only touch.
		return
	}

	if oy <= ox {
		// a above b when its center is higher; screen Y grows downward.
		dir := 1.0
		if a.Position.Y < b.Position.Y {
			a.Touching.Down, b.Touching.Up = true, true
			dir = -1
		} else {
			a.Touching.Up, b.Touching.Down = true, true
		}
		pa, pb := shares(a, b)
		a.Position.Y += dir * oy * pa
		b.Position.Y -= dir * oy * pb
		a.Velocity.Y, b.Velocity.Y = exchange(a.Velocity.Y, b.Velocity.Y, a.Bounce.Y, b.Bounce.Y, dir, a.Immovable, b.Immovable)
		return
	}

	dir := 1.0
	if a.Position.X < b.Position.X {
		a.Touching.Right, b.Touching.Left = true, true
		dir = -1
	} else {
		a.Touching.Left, b.Touching.Right = true, true
	}
	pa, pb := shares(a, b)
	a.Position.X += dir * ox * pa
	b.Position.X -= dir * ox * pb
	a.Velocity.X, b.Velocity.X = exchange(a.Velocity.X, b.Velocity.X, a.Bounce.X, b.Bounce.X, dir, a.Immovable, b.Immovable)
}

// shares returns how much of the penetration each body absorbs.
func shares(a, b *Body) (float64, float64) {
	switch {
	case a.Immovable:
		return 0, 1
	case b.Immovable:
		return 1, 0
	default:
		return 0.5, 0.5
	}
}

// exchange resolves velocities along one axis. dir is the direction a was
// pushed (-1 or +1). Bodies already moving apart keep their velocity.
func exchange(va, vb, bounceA, bounceB, dir float64, immA, immB bool) (float64, float64) {
	// Relative closing speed of a toward b, positive when approaching.
	closing := (va - vb) * -dir
	if closing <= 0 {
		return va, vb
	}
	switch {
	case immB:
		return vb - (va-vb)*bounceA, vb
	case immA:
		return va, va - (vb-va)*bounceB
	}
	// Equal-mass exchange around the shared average.
	avg := (va + vb) / 2
	return avg + (vb-avg)*bounceA, avg + (va-avg)*bounceB
}
