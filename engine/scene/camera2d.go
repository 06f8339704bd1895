package scene

import "github.com/chewxy/math32"

// Camera2D maps world space to view space from position, rotation, and zoom.
// The zero value is usable: Zoom 0 is treated as 1 (no magnification).
type Camera2D struct {
	X, Y        float32
	RotationRad float32
	Zoom        float32
}

// ViewMatrix derives the view transform on demand:
// scale(zoom) · rotate(-rot) · translate(-pos), column-vector convention.
// Zoom > 1 magnifies.
func (c Camera2D) ViewMatrix() [16]float32 {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return Mul(
		ScaleXY(z, z),
		Mul(RotateZ(-c.RotationRad), Translate(-c.X, -c.Y)),
	)
}

// ---- mat4 helpers (column-major, GLSL-style) ----

func Identity() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translate(x, y float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, 0, 1,
	}
}

func RotateZ(a float32) [16]float32 {
	s, c := math32.Sincos(a)
	return [16]float32{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func ScaleXY(sx, sy float32) [16]float32 {
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho maps logical pixel space (origin top-left, Y down) onto normalized
// device coordinates for a w×h surface.
func Ortho(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

func Mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}
