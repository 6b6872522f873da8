package texture

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/starfall/internal/core"
)

// toRGBA converts a cell colour to an opaque image colour.
// The terminal default maps to transparent.
func toRGBA(c core.Color) color.RGBA {
	if c.IsDefault() {
		return color.RGBA{}
	}
	r, g, b := c.RGBA()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func fromColorful(c colorful.Color) core.Color {
	r, g, b := c.Clamped().RGB255()
	return core.RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func toColorful(c core.Color) colorful.Color {
	r, g, b := c.RGBA()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Tint multiplies base by tint per channel, the way sprite tinting works.
// A default tint leaves base untouched.
func Tint(base, tint core.Color) core.Color {
	if tint.IsDefault() {
		return base
	}
	if base.IsDefault() {
		return tint
	}
	b, t := toColorful(base), toColorful(tint)
	return fromColorful(colorful.Color{R: b.R * t.R, G: b.G * t.G, B: b.B * t.B})
}

// Average returns the alpha-weighted mean colour of all visible pixels,
// averaged in linear RGB. Fully transparent images average to the default colour.
func Average(img *image.RGBA) core.Color {
	var r, g, b, total float64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.RGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			n := color.NRGBAModel.Convert(px).(color.NRGBA)
			c, _ := colorful.MakeColor(color.NRGBA{R: n.R, G: n.G, B: n.B, A: 0xff})
			lr, lg, lb := c.LinearRgb()
			w := float64(px.A)
			r += lr * w
			g += lg * w
			b += lb * w
			total += w
		}
	}
	if total == 0 {
		return core.ColorDefault
	}
	return fromColorful(colorful.LinearRgb(r/total, g/total, b/total))
}
