package scene

import (
	"fmt"

	"github.com/vovakirdan/starfall/internal/physics"
)

// Reaction handles one colliding pair. Arguments arrive in the order the
// rule was declared, whatever order physics reported them in.
type Reaction func(a, b *Entity)

type pair struct{ a, b Kind }

// Resolver registers collision rules with the physics world and dispatches
// each reported pair to the reaction for its (Kind, Kind) tag.
type Resolver struct {
	world     *physics.World
	entities  *Entities
	reactions map[pair]Reaction
}

// NewResolver creates a resolver dispatching over entities.
func NewResolver(world *physics.World, entities *Entities) *Resolver {
	return &Resolver{world: world, entities: entities, reactions: make(map[pair]Reaction)}
}

// On sets the reaction for kinds a and b.
func (r *Resolver) On(a, b Kind, fn Reaction) {
	r.reactions[pair{a, b}] = fn
}

// Collide registers a solid rule between a and b.
func (r *Resolver) Collide(a, b physics.Collidable) *physics.Collider {
	return r.world.AddCollider(a, b, r.dispatch)
}

// Overlap registers a non-solid rule between a and b.
func (r *Resolver) Overlap(a, b physics.Collidable) *physics.Collider {
	return r.world.AddOverlap(a, b, r.dispatch)
}

func (r *Resolver) dispatch(ba, bb *physics.Body) {
	ea, eb := r.entities.Lookup(ba), r.entities.Lookup(bb)
	if ea == nil || eb == nil {
		panic(fmt.Sprintf("scene: collision between bodies %d and %d without entities", ba.ID, bb.ID))
	}
	if fn, ok := r.reactions[pair{ea.Kind, eb.Kind}]; ok {
		fn(ea, eb)
		return
	}
	if fn, ok := r.reactions[pair{eb.Kind, ea.Kind}]; ok {
		fn(eb, ea)
	}
}
