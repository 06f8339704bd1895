package renderer2d

import (
	"github.com/chewxy/math32"

	"github.com/ember2d/ember/engine/colors"
	"github.com/ember2d/ember/engine/core"
)

// Rect is an axis-aligned rectangle in logical pixels. (X, Y) is the
// top-left corner; the coordinate system has Y increasing downward.
type Rect struct {
	X, Y, W, H float32
}

// Vertex layout shared by both pipelines: pos2 + uv2 + rgba4, interleaved.
// Untextured geometry carries zeroed UVs; the color pipeline ignores them.
const vertexStride = 8

var vertexLayout = core.VertexLayout{
	Stride: vertexStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 2, Type: core.AttribFloat32, Offset: 2 * 4}, // uv
		{Location: 2, Size: 4, Type: core.AttribFloat32, Offset: 4 * 4}, // color
	},
}

// Tessellation happens at record time: every emitted position is already
// multiplied by the transform that was current when the draw call was made,
// so later stack mutations never touch recorded geometry.
//
// The append helpers write into caller-owned scratch slices and emit local
// (0-based) indices; the batcher re-bases them against the frame buffer.

func appendVertex(verts []float32, m Affine, x, y, u, v float32, c colors.Color) []float32 {
	px, py := m.Apply(x, y)
	return append(verts, px, py, u, v, c[0], c[1], c[2], c[3])
}

// appendQuad emits 4 corners (TL, TR, BR, BL) and two triangles.
func appendQuad(verts []float32, inds []uint32, m Affine, x0, y0, x1, y1, u0, v0, u1, v1 float32, c colors.Color) ([]float32, []uint32) {
	verts = appendVertex(verts, m, x0, y0, u0, v0, c)
	verts = appendVertex(verts, m, x1, y0, u1, v0, c)
	verts = appendVertex(verts, m, x1, y1, u1, v1, c)
	verts = appendVertex(verts, m, x0, y1, u0, v1, c)
	inds = append(inds, 0, 1, 2, 0, 2, 3)
	return verts, inds
}

// appendCircle emits an indexed triangle fan: one center vertex plus
// `segments` ring vertices. Ring point i sits at angle 2π·i/segments; the
// closing triangle reuses ring point 0 via its index, so the loop is exact.
func appendCircle(verts []float32, inds []uint32, m Affine, cx, cy, radius float32, segments int, c colors.Color) ([]float32, []uint32, error) {
	if segments < 3 {
		return verts, inds, ErrInvalidParameter
	}

	verts = appendVertex(verts, m, cx, cy, 0, 0, c)
	step := 2 * math32.Pi / float32(segments)
	for i := 0; i < segments; i++ {
		s, cos := math32.Sincos(float32(i) * step)
		verts = appendVertex(verts, m, cx+cos*radius, cy+s*radius, 0, 0, c)
	}
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		inds = append(inds, 0, uint32(1+i), uint32(1+next))
	}
	return verts, inds, nil
}

// appendLine extrudes the segment into a quad: half the thickness on each
// side, perpendicular to the direction vector.
func appendLine(verts []float32, inds []uint32, m Affine, x0, y0, x1, y1, thickness float32, c colors.Color) ([]float32, []uint32, error) {
	dx := x1 - x0
	dy := y1 - y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return verts, inds, ErrInvalidParameter
	}
	inv := 1 / math32.Sqrt(lenSq)

	// perpendicular offset, scaled to half thickness
	ox := -dy * inv * thickness * 0.5
	oy := dx * inv * thickness * 0.5

	verts = appendVertex(verts, m, x0+ox, y0+oy, 0, 0, c)
	verts = appendVertex(verts, m, x1+ox, y1+oy, 0, 0, c)
	verts = appendVertex(verts, m, x1-ox, y1-oy, 0, 0, c)
	verts = appendVertex(verts, m, x0-ox, y0-oy, 0, 0, c)
	inds = append(inds, 0, 1, 2, 0, 2, 3)
	return verts, inds, nil
}

// subtexUV converts a pixel-space source rectangle into normalized UVs
// against the texture's dimensions. Out-of-range rectangles clamp to the
// texture bounds rather than failing.
func subtexUV(tex *Texture, src Rect) (u0, v0, u1, v1 float32) {
	w := float32(tex.Width)
	h := float32(tex.Height)
	u0 = clamp(src.X/w, 0, 1)
	v0 = clamp(src.Y/h, 0, 1)
	u1 = clamp((src.X+src.W)/w, 0, 1)
	v1 = clamp((src.Y+src.H)/h, 0, 1)
	return
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
