package core

import (
	"fmt"
	"image/color"
)

// Color is a linear RGBA color with channels nominally in [0,1].
// The alpha channel doubles as opacity for materials.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a color from float channels
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewColor8 creates a color from 8-bit channels
func NewColor8(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
	Cyan        = Color{0, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
)

// Add returns the channel-wise sum
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale multiplies every channel by s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mul returns the channel-wise product
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// WithAlpha returns c with its alpha channel replaced
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Overlay composites c over under using c's alpha.
// The result keeps under's alpha.
func (c Color) Overlay(under Color) Color {
	return Color{
		R: c.R*c.A + under.R*(1-c.A),
		G: c.G*c.A + under.G*(1-c.A),
		B: c.B*c.A + under.B*(1-c.A),
		A: under.A,
	}
}

// Average blends c and o with weight w on c, all four channels
func (c Color) Average(o Color, w float64) Color {
	return c.Scale(w).Add(o.Scale(1 - w))
}

// Luma returns 0.299*R + 0.587*G + 0.114*B
func (c Color) Luma() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Gray returns the luma replicated into RGB, keeping alpha
func (c Color) Gray() Color {
	l := c.Luma()
	return Color{l, l, l, c.A}
}

// Clamp limits every channel to [0,1]
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// RGBA8 converts to 8-bit non-premultiplied color after clamping
func (c Color) RGBA8() color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// ToHex formats the RGB channels as #rrggbb
func (c Color) ToHex() string {
	n := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Clamp01 limits v to [0,1]
func Clamp01(v float64) float64 {
	return clamp01(v)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
