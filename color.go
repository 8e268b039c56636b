package arplane

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA represents a straight-alpha color with float32 components in [0, 1],
// the per-vertex color format of plane meshes.
type RGBA struct {
	R, G, B, A float32
}

// Common colors.
var (
	// Clear is fully transparent black, the color of the outer (feathered) ring.
	Clear = RGBA{}

	// White is opaque white, the color of the inner ring.
	White = RGBA{R: 1, G: 1, B: 1, A: 1}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Hex creates an opaque color from a "#RRGGBB" or "#RGB" string.
// Invalid strings yield opaque black.
func Hex(hex string) RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGBA{A: 1}
	}
	return RGB(float32(c.R), float32(c.G), float32(c.B))
}

// RGBA implements color.Color with premultiplied 16-bit components.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts the color to 8-bit non-premultiplied form.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// Linear converts the sRGB-encoded color channels to linear light,
// which is what a GPU shader expects in a uniform. Alpha is unchanged.
func (c RGBA) Linear() RGBA {
	r, g, b := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.LinearRgb()
	return RGBA{R: float32(r), G: float32(g), B: float32(b), A: c.A}
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c RGBA) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// Array returns the components in vertex buffer order.
func (c RGBA) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v + 0.5
}
