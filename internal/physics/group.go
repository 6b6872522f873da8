package physics

// Collidable is anything a collider can be registered against:
// a single *Body or a *Group.
type Collidable interface {
	Members() []*Body
}

// Group owns a set of bodies. Static groups are never integrated and their
// bodies are always immovable.
type Group struct {
	Name   string
	static bool
	bodies []*Body
	world  *World
}

// Static reports whether the group holds immovable bodies.
func (g *Group) Static() bool {
	return g.static
}

// Create adds a new enabled body of size (w, h) centered at (x, y).
func (g *Group) Create(x, y, w, h float64) *Body {
	g.world.nextID++
	b := &Body{
		ID:           g.world.nextID,
		Width:        w,
		Height:       h,
		AllowGravity: !g.static,
		Immovable:    g.static,
		Enabled:      true,
		group:        g,
	}
	b.Position.X = x
	b.Position.Y = y
	g.bodies = append(g.bodies, b)
	return b
}

// Members returns the group's bodies in creation order.
func (g *Group) Members() []*Body {
	return g.bodies
}

// Len returns the number of bodies, enabled or not.
func (g *Group) Len() int {
	return len(g.bodies)
}

// CountActive returns the number of enabled bodies.
func (g *Group) CountActive() int {
	n := 0
	for _, b := range g.bodies {
		if b.Enabled {
			n++
		}
	}
	return n
}

// Each calls fn for every body in creation order.
func (g *Group) Each(fn func(*Body)) {
	for _, b := range g.bodies {
		fn(b)
	}
}

// clear drops all bodies.
func (g *Group) clear() {
	for _, b := range g.bodies {
		b.Enabled = false
		b.group = nil
	}
	g.bodies = nil
}
