package scene

import (
	"fmt"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/texture"
)

// Builder creates static geometry and bakes the textures shapes are drawn with.
type Builder struct {
	store    *texture.Store
	gfx      *texture.Graphics
	entities *Entities
}

// NewBuilder creates a builder baking into store.
func NewBuilder(store *texture.Store, entities *Entities) *Builder {
	return &Builder{store: store, gfx: texture.NewGraphics(store), entities: entities}
}

// Ground creates one static platform centered at (x, y) with the given
// display size. The body is sized to the display size, not the texture.
func (b *Builder) Ground(group *physics.Group, key string, x, y, w, h float64) (*Entity, error) {
	tex, err := b.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("scene: ground: %w", err)
	}
	body := group.Create(x, y, w, h)
	return b.entities.Add(KindPlatform, body, tex), nil
}

// GroundStrip bakes a solid w x h strip.
func (b *Builder) GroundStrip(key string, w, h int, fill core.Color) (*texture.Texture, error) {
	b.gfx.Clear().FillStyle(fill).FillRect(0, 0, w, h)
	return b.bake(key, w, h)
}

// Rectangle bakes a body of w x h inside a border of the given thickness,
// giving a (w+2*border) x (h+2*border) texture.
func (b *Builder) Rectangle(key string, w, h, border int, borderColor, fill core.Color) (*texture.Texture, error) {
	tw, th := w+2*border, h+2*border
	b.gfx.Clear().
		FillStyle(fill).FillRect(0, 0, tw, th).
		LineStyle(border, borderColor).StrokeRect(0, 0, tw, th)
	return b.bake(key, tw, th)
}

// Circle bakes a filled disc of radius r.
func (b *Builder) Circle(key string, r int, fill core.Color) (*texture.Texture, error) {
	b.gfx.Clear().FillStyle(fill).FillCircle(float64(r), float64(r), float64(r))
	return b.bake(key, 2*r, 2*r)
}

// Placeholder bakes a texture described in config.
func (b *Builder) Placeholder(key string, def config.TextureDef) (*texture.Texture, error) {
	fill := core.RGB(def.Fill)
	switch def.Shape {
	case "", "rect":
		return b.GroundStrip(key, def.Width, def.Height, fill)
	case "bordered":
		line := int(def.Line)
		b.gfx.Clear().
			FillStyle(fill).FillRect(0, 0, def.Width, def.Height).
			LineStyle(line, core.RGB(def.Border)).StrokeRect(0, 0, def.Width, def.Height)
		return b.bake(key, def.Width, def.Height)
	case "circle":
		// Ellipse-free placeholder: the disc fits the shorter side.
		r := float64(min(def.Width, def.Height)) / 2
		b.gfx.Clear().FillStyle(fill).FillCircle(float64(def.Width)/2, float64(def.Height)/2, r)
		return b.bake(key, def.Width, def.Height)
	default:
		return nil, fmt.Errorf("scene: texture %q: unknown shape %q", key, def.Shape)
	}
}

func (b *Builder) bake(key string, w, h int) (*texture.Texture, error) {
	tex, err := b.gfx.GenerateTexture(key, w, h)
	if err != nil {
		return nil, fmt.Errorf("scene: bake: %w", err)
	}
	return tex, nil
}
