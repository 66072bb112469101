package moss

import "image/color"

// Color is an RGBA tint with float32 channels in [0,1].
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	Transparent = Color{0, 0, 0, 0}
)

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// FromColor converts a stdlib color. Channels stay alpha-premultiplied, which
// is exact for the opaque palette colors tints usually come from.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}
