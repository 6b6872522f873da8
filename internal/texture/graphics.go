package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/vovakirdan/starfall/internal/core"
)

// circleSegments is the polygon resolution used for filled circles.
const circleSegments = 64

// Graphics records drawing commands on an unbounded canvas and bakes them into
// a texture of a chosen size. Commands are replayed on every bake, so one
// Graphics can produce several textures between calls to Clear.
type Graphics struct {
	store     *Store
	fill      color.RGBA
	line      color.RGBA
	lineWidth int
	ops       []func(dst *image.RGBA)
}

// NewGraphics returns a drawing tool that bakes into store.
func NewGraphics(store *Store) *Graphics {
	return &Graphics{store: store, fill: toRGBA(core.ColorWhite), line: toRGBA(core.ColorWhite), lineWidth: 1}
}

// FillStyle sets the colour used by FillRect and FillCircle.
func (g *Graphics) FillStyle(c core.Color) *Graphics {
	g.fill = toRGBA(c)
	return g
}

// LineStyle sets the stroke width and colour used by StrokeRect.
func (g *Graphics) LineStyle(width int, c core.Color) *Graphics {
	g.lineWidth = width
	g.line = toRGBA(c)
	return g
}

// FillRect fills the rectangle with its top-left corner at (x, y).
func (g *Graphics) FillRect(x, y, w, h int) *Graphics {
	src := image.NewUniform(g.fill)
	r := image.Rect(x, y, x+w, y+h)
	g.ops = append(g.ops, func(dst *image.RGBA) {
		draw.Draw(dst, r, src, image.Point{}, draw.Over)
	})
	return g
}

// StrokeRect draws a border of the current line width inside the rectangle.
func (g *Graphics) StrokeRect(x, y, w, h int) *Graphics {
	lw := g.lineWidth
	if lw <= 0 {
		return g
	}
	src := image.NewUniform(g.line)
	edges := []image.Rectangle{
		image.Rect(x, y, x+w, y+lw),
		image.Rect(x, y+h-lw, x+w, y+h),
		image.Rect(x, y+lw, x+lw, y+h-lw),
		image.Rect(x+w-lw, y+lw, x+w, y+h-lw),
	}
	g.ops = append(g.ops, func(dst *image.RGBA) {
		for _, e := range edges {
			draw.Draw(dst, e, src, image.Point{}, draw.Over)
		}
	})
	return g
}

// FillCircle fills a disc centered at (cx, cy).
func (g *Graphics) FillCircle(cx, cy, radius float64) *Graphics {
	src := image.NewUniform(g.fill)
	g.ops = append(g.ops, func(dst *image.RGBA) {
		b := dst.Bounds()
		z := vector.NewRasterizer(b.Dx(), b.Dy())
		for i := 0; i < circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			px := float32(cx + radius*math.Cos(a))
			py := float32(cy + radius*math.Sin(a))
			if i == 0 {
				z.MoveTo(px, py)
			} else {
				z.LineTo(px, py)
			}
		}
		z.ClosePath()
		z.Draw(dst, b, src, image.Point{})
	})
	return g
}

// Clear discards every recorded command.
func (g *Graphics) Clear() *Graphics {
	g.ops = nil
	return g
}

// GenerateTexture bakes the recorded commands, cropped to w x h, under key.
func (g *Graphics) GenerateTexture(key string, w, h int) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("texture: %q: invalid size %dx%d", key, w, h)
	}
	if g.store == nil {
		return nil, errors.New("texture: graphics has no store")
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, op := range g.ops {
		op(img)
	}
	return g.store.Add(key, img)
}
