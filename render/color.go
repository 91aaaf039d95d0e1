package render

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Pastel averages each channel with white
func (c RGB) Pastel() RGB {
	return RGB{
		R: uint8((int(c.R) + 255) / 2),
		G: uint8((int(c.G) + 255) / 2),
		B: uint8((int(c.B) + 255) / 2),
	}
}

// Color is a tagged color value: either the terminal default or an RGB
// triple. The zero value is Default. Comparison with == is total, which
// keeps the render diff side-effect free.
type Color struct {
	rgb RGB
	set bool
}

// Default is the uncolored terminal foreground
var Default = Color{}

// Rgb wraps channel values into a set Color
func Rgb(r, g, b uint8) Color {
	return Color{rgb: RGB{R: r, G: g, B: b}, set: true}
}

// FromRGB wraps an RGB triple into a set Color
func FromRGB(c RGB) Color {
	return Color{rgb: c, set: true}
}

// IsDefault reports whether the color is the terminal default
func (c Color) IsDefault() bool {
	return !c.set
}

// RGB returns the channel values; ok is false for Default
func (c Color) RGB() (RGB, bool) {
	return c.rgb, c.set
}
