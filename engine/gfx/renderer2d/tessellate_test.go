package renderer2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember2d/ember/engine/colors"
)

func TestAppendQuadGeometry(t *testing.T) {
	verts, inds := appendQuad(nil, nil, Identity(), 10, 20, 30, 60, 0, 0, 1, 1, colors.Red)

	require.Len(t, verts, 4*vertexStride)
	require.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, inds)

	// Corners in TL, TR, BR, BL order.
	wantPos := [][2]float32{{10, 20}, {30, 20}, {30, 60}, {10, 60}}
	for i, want := range wantPos {
		assert.Equal(t, want[0], verts[i*vertexStride+0], "vertex %d x", i)
		assert.Equal(t, want[1], verts[i*vertexStride+1], "vertex %d y", i)
	}

	// Color is replicated to every vertex.
	for i := 0; i < 4; i++ {
		assert.Equal(t, colors.Red[0], verts[i*vertexStride+4])
		assert.Equal(t, colors.Red[3], verts[i*vertexStride+7])
	}
}

func TestAppendQuadPremultipliesTransform(t *testing.T) {
	m := translation(100, 50)
	verts, _ := appendQuad(nil, nil, m, 0, 0, 10, 10, 0, 0, 0, 0, colors.White)

	assert.Equal(t, float32(100), verts[0])
	assert.Equal(t, float32(50), verts[1])
	assert.Equal(t, float32(110), verts[2*vertexStride+0])
	assert.Equal(t, float32(60), verts[2*vertexStride+1])
}

func TestAppendCircle(t *testing.T) {
	const segments = 16
	verts, inds, err := appendCircle(nil, nil, Identity(), 5, 5, 2, segments, colors.Green)
	require.NoError(t, err)

	assert.Len(t, verts, (segments+1)*vertexStride, "center plus one vertex per segment")
	assert.Len(t, inds, segments*3, "one triangle per segment")

	// Center first, ring point 0 at angle 0 = (cx+r, cy).
	assert.InDelta(t, 5, verts[0], 1e-5)
	assert.InDelta(t, 5, verts[1], 1e-5)
	assert.InDelta(t, 7, verts[vertexStride+0], 1e-5)
	assert.InDelta(t, 5, verts[vertexStride+1], 1e-5)

	// The last triangle closes the fan by reusing ring vertex 1, not by
	// emitting a duplicate point.
	last := inds[len(inds)-3:]
	assert.Equal(t, []uint32{0, segments, 1}, last)
	for _, i := range inds {
		assert.Less(t, int(i), segments+1, "indices must stay within the emitted vertices")
	}
}

func TestAppendCircleTooFewSegments(t *testing.T) {
	for _, segments := range []int{-1, 0, 1, 2} {
		_, _, err := appendCircle(nil, nil, Identity(), 0, 0, 1, segments, colors.White)
		assert.ErrorIs(t, err, ErrInvalidParameter, "segments=%d", segments)
	}

	_, _, err := appendCircle(nil, nil, Identity(), 0, 0, 1, 3, colors.White)
	assert.NoError(t, err, "3 segments is the smallest valid fan")
}

func TestAppendLine(t *testing.T) {
	// Horizontal line, thickness 2: extrusion is ±1 vertically.
	verts, inds, err := appendLine(nil, nil, Identity(), 0, 0, 10, 0, 2, colors.White)
	require.NoError(t, err)
	require.Len(t, verts, 4*vertexStride)
	require.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, inds)

	wantPos := [][2]float32{{0, -1}, {10, -1}, {10, 1}, {0, 1}}
	for i, want := range wantPos {
		assert.InDelta(t, want[0], verts[i*vertexStride+0], 1e-5, "vertex %d x", i)
		assert.InDelta(t, want[1], verts[i*vertexStride+1], 1e-5, "vertex %d y", i)
	}
}

func TestAppendLineZeroLength(t *testing.T) {
	_, _, err := appendLine(nil, nil, Identity(), 5, 5, 5, 5, 1, colors.White)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSubtexUV(t *testing.T) {
	tex := &Texture{Width: 100, Height: 200}

	tests := []struct {
		name           string
		src            Rect
		u0, v0, u1, v1 float32
	}{
		{"full", Rect{0, 0, 100, 200}, 0, 0, 1, 1},
		{"quarter", Rect{50, 100, 50, 100}, 0.5, 0.5, 1, 1},
		{"clamped overflow", Rect{50, 100, 500, 500}, 0.5, 0.5, 1, 1},
		{"clamped negative", Rect{-10, -10, 60, 110}, 0, 0, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u0, v0, u1, v1 := subtexUV(tex, tt.src)
			assert.InDelta(t, tt.u0, u0, 1e-5)
			assert.InDelta(t, tt.v0, v0, 1e-5)
			assert.InDelta(t, tt.u1, u1, 1e-5)
			assert.InDelta(t, tt.v1, v1, 1e-5)
		})
	}
}

func TestSubTextureHelpers(t *testing.T) {
	tex := &Texture{Width: 128, Height: 64}

	sub := FromPixels(tex, 32, 0, 32, 32)
	assert.InDelta(t, 0.25, sub.U0, 1e-5)
	assert.InDelta(t, 0.0, sub.V0, 1e-5)
	assert.InDelta(t, 0.5, sub.U1, 1e-5)
	assert.InDelta(t, 0.5, sub.V1, 1e-5)

	// Grid cell (1,1) of 32×32 cells = pixels (32,32)..(64,64).
	cell := FromGrid(tex, 1, 1, 32, 32)
	assert.InDelta(t, 0.25, cell.U0, 1e-5)
	assert.InDelta(t, 0.5, cell.V0, 1e-5)
	assert.InDelta(t, 0.5, cell.U1, 1e-5)
	assert.InDelta(t, 1.0, cell.V1, 1e-5)
}
