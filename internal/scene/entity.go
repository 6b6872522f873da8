package scene

import (
	"fmt"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/texture"
)

// Kind tags an entity's variant. Collision reactions are looked up by kind.
type Kind int

const (
	KindPlayer Kind = iota
	KindCollectible
	KindHazard
	KindPlatform
	KindObstacle
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindCollectible:
		return "collectible"
	case KindHazard:
		return "hazard"
	case KindPlatform:
		return "platform"
	case KindObstacle:
		return "obstacle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entity is a physics body plus its visual state.
type Entity struct {
	Kind    Kind
	Body    *physics.Body
	Texture *texture.Texture
	Tint    core.Color
	Visible bool
	Anim    *Animator // Player only
}

// Active reports whether the entity takes part in the simulation.
func (e *Entity) Active() bool {
	return e.Body.Enabled
}

// Deactivate hides the entity and disables its body.
func (e *Entity) Deactivate() {
	e.Body.Disable()
	e.Visible = false
}

// Reactivate shows the entity again at (x, y).
func (e *Entity) Reactivate(x, y float64) {
	e.Body.Enable(x, y)
	e.Visible = true
}

// Color returns the colour the entity is drawn with.
func (e *Entity) Color() core.Color {
	base := core.ColorWhite
	if e.Texture != nil {
		base = e.Texture.Average
	}
	return texture.Tint(base, e.Tint)
}

// Entities maps bodies back to their entities and keeps creation order.
type Entities struct {
	byBody map[*physics.Body]*Entity
	order  []*Entity
}

// NewEntities creates an empty table.
func NewEntities() *Entities {
	return &Entities{byBody: make(map[*physics.Body]*Entity)}
}

// Add records a new entity for body.
func (t *Entities) Add(kind Kind, body *physics.Body, tex *texture.Texture) *Entity {
	e := &Entity{Kind: kind, Body: body, Texture: tex, Visible: true}
	t.byBody[body] = e
	t.order = append(t.order, e)
	return e
}

// Lookup returns the entity owning body, or nil.
func (t *Entities) Lookup(body *physics.Body) *Entity {
	return t.byBody[body]
}

// All returns every entity in creation order.
func (t *Entities) All() []*Entity {
	return t.order
}

// Count returns how many entities of kind exist and how many are active.
func (t *Entities) Count(kind Kind) (total, active int) {
	for _, e := range t.order {
		if e.Kind != kind {
			continue
		}
		total++
		if e.Active() {
			active++
		}
	}
	return total, active
}

// Clear forgets every entity.
func (t *Entities) Clear() {
	t.byBody = make(map[*physics.Body]*Entity)
	t.order = nil
}
