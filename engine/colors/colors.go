package colors

// Color is RGBA with components in [0, 1], not premultiplied.
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Orange   = Color{1, 0.6, 0.1, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
	SkyBlue  = Color{0.4, 0.7, 1, 1}
)

// RGB8 builds an opaque color from 0–255 components.
func RGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Lerp interpolates toward other by t in [0, 1].
func (c Color) Lerp(other Color, t float32) Color {
	for i := range c {
		c[i] += (other[i] - c[i]) * t
	}
	return c
}
