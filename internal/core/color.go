package core

import "fmt"

// Color is a cell foreground colour.
// The zero value is the terminal default; everything else carries a 24-bit RGB value.
type Color uint32

const rgbFlag Color = 1 << 24

// RGB builds a Color from a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return rgbFlag | Color(hex&0xffffff)
}

// Predefined colors for scene elements.
var (
	ColorDefault Color
	ColorRed     = RGB(0xff0000)
	ColorGreen   = RGB(0x00ff00)
	ColorYellow  = RGB(0xffff00)
	ColorCyan    = RGB(0x00ffff)
	ColorWhite   = RGB(0xffffff)
	ColorOrange  = RGB(0xff8800)
	ColorGray    = RGB(0x8a8a8a)
)

// IsDefault reports whether c is the terminal default colour.
func (c Color) IsDefault() bool {
	return c&rgbFlag == 0
}

// Hex returns the 0xRRGGBB payload.
func (c Color) Hex() uint32 {
	return uint32(c & 0xffffff)
}

// RGBA returns the channel values, useful for blending.
func (c Color) RGBA() (r, g, b uint8) {
	h := c.Hex()
	return uint8(h >> 16), uint8(h >> 8), uint8(h)
}

// String returns the colour as "#rrggbb", or "" for the default colour.
func (c Color) String() string {
	if c.IsDefault() {
		return ""
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
