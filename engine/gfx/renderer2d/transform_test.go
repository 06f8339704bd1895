package renderer2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixStackPushPop(t *testing.T) {
	ms := NewMatrixStack()
	ms.Translate(100, 50)
	saved := ms.Current()

	ms.Push()
	ms.Translate(7, 7)
	ms.RotateZ(0.5)
	assert.NotEqual(t, saved, ms.Current())

	require.NoError(t, ms.Pop())
	assert.Equal(t, saved, ms.Current(), "pop must restore the pushed transform bit-for-bit")
}

func TestMatrixStackUnderflow(t *testing.T) {
	ms := NewMatrixStack()
	err := ms.Pop()
	require.ErrorIs(t, err, ErrStackUnderflow)
	assert.Equal(t, Identity(), ms.Current(), "failed pop must leave the base frame in place")

	ms.Translate(3, 4)
	ms.Push()
	require.NoError(t, ms.Pop())
	require.ErrorIs(t, ms.Pop(), ErrStackUnderflow, "base frame is never popped")
}

func TestMatrixStackCompose(t *testing.T) {
	// Translate then rotate: the rotation applies in the translated frame, so
	// the local origin lands exactly at the translation.
	ms := NewMatrixStack()
	ms.Translate(10, 20)
	ms.RotateZ(math.Pi / 2)

	x, y := ms.Current().Apply(0, 0)
	assert.InDelta(t, 10, x, 1e-4)
	assert.InDelta(t, 20, y, 1e-4)

	// (1,0) rotates 90° to (0,1) before translating.
	x, y = ms.Current().Apply(1, 0)
	assert.InDelta(t, 10, x, 1e-4)
	assert.InDelta(t, 21, y, 1e-4)
}

func TestMatrixStackScale(t *testing.T) {
	ms := NewMatrixStack()
	ms.Scale(2, 3)
	x, y := ms.Current().Apply(5, 5)
	assert.InDelta(t, 10, x, 1e-5)
	assert.InDelta(t, 15, y, 1e-5)
}

func TestMatrixStackLoadIdentity(t *testing.T) {
	ms := NewMatrixStack()
	ms.Push()
	ms.Translate(1, 2)
	ms.LoadIdentity()
	assert.Equal(t, Identity(), ms.Current())

	// LoadIdentity only resets the top frame; the saved frame survives Pop.
	require.NoError(t, ms.Pop())
	assert.Equal(t, Identity(), ms.Current())
}

func TestAffineMulOrder(t *testing.T) {
	// m.Mul(n) applies n first. translation∘rotation differs from the reverse.
	tr := translation(10, 0)
	rot := rotation(math.Pi / 2)

	x, y := tr.Mul(rot).Apply(1, 0)
	assert.InDelta(t, 10, x, 1e-4)
	assert.InDelta(t, 1, y, 1e-4)

	x, y = rot.Mul(tr).Apply(1, 0)
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 11, y, 1e-4)
}
