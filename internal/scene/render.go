package scene

import (
	"math"

	"github.com/vovakirdan/starfall/internal/core"
)

// Glyphs used for each kind of entity.
const (
	GlyphPlatform    = '▀'
	GlyphObstacle    = '█'
	GlyphCollectible = '*'
	GlyphHazard      = '●'
	GlyphCircle      = 'O'
)

// playerGlyph picks a glyph for the player's animation frame.
func playerGlyph(frame int) rune {
	switch {
	case frame < 4:
		if frame%2 == 0 {
			return '◀'
		}
		return '◁'
	case frame > 4:
		if frame%2 == 1 {
			return '▶'
		}
		return '▷'
	default:
		return '■'
	}
}

// drawOrder lists kinds back to front.
var drawOrder = []Kind{KindPlatform, KindObstacle, KindCollectible, KindHazard, KindPlayer}

// Render draws the world scaled to dst, then the scene overlay if any.
func (r *Runner) Render(dst *core.Screen) {
	ctx := r.ctx
	if ctx == nil {
		return
	}
	drawWorld(ctx, dst)
	if o, ok := r.hooks.(Overlay); ok {
		o.Overlay(ctx, dst)
	}
}

func drawWorld(ctx *Context, dst *core.Screen) {
	w, h := ctx.Setup.World.Width, ctx.Setup.World.Height
	if w <= 0 || h <= 0 || dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	sx := float64(dst.Width()) / w
	sy := float64(dst.Height()) / h

	for _, kind := range drawOrder {
		for _, e := range ctx.Entities.All() {
			if e.Kind != kind || !e.Visible {
				continue
			}
			dst.SetInk(e.Color())
			drawEntity(dst, e, glyphFor(e), sx, sy)
		}
	}
	dst.SetInk(core.ColorDefault)
}

func glyphFor(e *Entity) rune {
	switch e.Kind {
	case KindPlatform:
		return GlyphPlatform
	case KindObstacle:
		return GlyphObstacle
	case KindCollectible:
		return GlyphCollectible
	case KindHazard:
		return GlyphHazard
	case KindPlayer:
		if e.Body.Circle {
			return GlyphCircle
		}
		if e.Anim != nil {
			return playerGlyph(e.Anim.Frame())
		}
	}
	return '?'
}

// drawEntity fills the cells covered by the body; circles keep only cells
// whose centers fall inside the disc. Every visible entity gets at least its
// center cell.
func drawEntity(dst *core.Screen, e *Entity, glyph rune, sx, sy float64) {
	box := e.Body.Box()
	x0 := int(math.Floor(box.MinX * sx))
	x1 := int(math.Ceil(box.MaxX*sx)) - 1
	y0 := int(math.Floor(box.MinY * sy))
	y1 := int(math.Ceil(box.MaxY*sy)) - 1

	c := e.Body.Position
	rad := e.Body.Radius()
	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if e.Body.Circle {
				dx := (float64(x)+0.5)/sx - c.X
				dy := (float64(y)+0.5)/sy - c.Y
				if math.Hypot(dx, dy) > rad {
					continue
				}
			}
			dst.Set(x, y, glyph)
			drawn = true
		}
	}
	if !drawn {
		dst.Set(int(c.X*sx), int(c.Y*sy), glyph)
	}
}

// DrawCentered writes text centered on row y.
func DrawCentered(dst *core.Screen, y int, text string) {
	n := len([]rune(text))
	dst.DrawText((dst.Width()-n)/2, y, text)
}

// DrawMessage draws a boxed two-line message in the middle of dst.
func DrawMessage(dst *core.Screen, title, subtitle string) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawText(boxX+(boxW-tw)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
