package renderer2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember2d/ember/engine/scene"
)

// quadGeometry returns a throwaway quad's local geometry for batcher tests.
func quadGeometry() ([]float32, []uint32) {
	verts := make([]float32, 4*vertexStride)
	inds := []uint32{0, 1, 2, 0, 2, 3}
	return verts, inds
}

func TestBatcherMergesAdjacentSameState(t *testing.T) {
	var b batcher
	view := scene.Identity()
	verts, inds := quadGeometry()

	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)
	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)
	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)

	_, _, batches := b.flush()
	require.Len(t, batches, 1)
	assert.Equal(t, 12, batches[0].VertexCount)
	assert.Equal(t, 18, batches[0].IndexCount)
	assert.Equal(t, 0, batches[0].FirstVertex)
	assert.Equal(t, 0, batches[0].FirstIndex)
}

func TestBatcherNeverReorders(t *testing.T) {
	// Interleaved states A, B, A must produce three batches in call order,
	// never two. Reordering would change how overlapping translucent shapes
	// composite.
	var b batcher
	view := scene.Identity()
	verts, inds := quadGeometry()
	texA := new(int)

	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)
	b.append(renderStateKey{kind: PipelineTexture, tex: texA}, view, verts, inds)
	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)

	_, _, batches := b.flush()
	require.Len(t, batches, 3)
	assert.Equal(t, PipelineColor, batches[0].Kind)
	assert.Equal(t, PipelineTexture, batches[1].Kind)
	assert.Equal(t, PipelineColor, batches[2].Kind)
}

func TestBatcherSplitsOnTexture(t *testing.T) {
	var b batcher
	view := scene.Identity()
	verts, inds := quadGeometry()
	texA, texB := new(int), new(int)

	b.append(renderStateKey{kind: PipelineTexture, tex: texA}, view, verts, inds)
	b.append(renderStateKey{kind: PipelineTexture, tex: texA}, view, verts, inds)
	b.append(renderStateKey{kind: PipelineTexture, tex: texB}, view, verts, inds)

	_, _, batches := b.flush()
	require.Len(t, batches, 2)
	assert.Equal(t, 8, batches[0].VertexCount)
	assert.Equal(t, 4, batches[1].VertexCount)
}

func TestBatcherRebasesIndices(t *testing.T) {
	var b batcher
	view := scene.Identity()
	verts, inds := quadGeometry()

	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)
	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)

	_, allInds, _ := b.flush()
	require.Len(t, allInds, 12)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, allInds[:6])
	assert.Equal(t, []uint32{4, 5, 6, 4, 6, 7}, allInds[6:], "second quad's indices shifted by its vertex base")
}

func TestBatcherInterrupt(t *testing.T) {
	// An interrupt closes the active batch even when the next draw carries an
	// identical key and view. Camera transitions rely on this.
	var b batcher
	view := scene.Identity()
	verts, inds := quadGeometry()

	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)
	b.interrupt()
	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)

	_, _, batches := b.flush()
	require.Len(t, batches, 2)
}

func TestBatcherSplitsOnView(t *testing.T) {
	var b batcher
	verts, inds := quadGeometry()

	b.append(renderStateKey{kind: PipelineColor}, scene.Identity(), verts, inds)
	b.append(renderStateKey{kind: PipelineColor}, scene.Translate(5, 0), verts, inds)

	_, _, batches := b.flush()
	require.Len(t, batches, 2)
	assert.NotEqual(t, batches[0].View, batches[1].View)
}

func TestBatcherStagingGrowsNeverShrinks(t *testing.T) {
	var b batcher
	verts, inds := quadGeometry()
	view := scene.Identity()

	for i := 0; i < 100; i++ {
		b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)
	}
	b.flush()
	grown := cap(b.verts)
	require.GreaterOrEqual(t, grown, 100*4*vertexStride)

	// A small next frame reuses the grown backing array.
	b.append(renderStateKey{kind: PipelineColor}, view, verts, inds)
	flushedVerts, _, _ := b.flush()
	assert.Equal(t, grown, cap(b.verts))
	assert.Len(t, flushedVerts, 4*vertexStride)
}

func TestBatcherReserve(t *testing.T) {
	var b batcher
	b.reserve(100*4*vertexStride, 100*6)
	require.GreaterOrEqual(t, cap(b.verts), 100*4*vertexStride)
	require.GreaterOrEqual(t, cap(b.inds), 100*6)
	assert.Empty(t, b.verts, "reserve grows capacity, not length")

	verts, inds := quadGeometry()
	backing := &b.verts[:1][0]
	for i := 0; i < 100; i++ {
		b.append(renderStateKey{kind: PipelineColor}, scene.Identity(), verts, inds)
	}
	assert.Same(t, backing, &b.verts[0], "reserved capacity absorbs the whole frame")
}

func TestBatcherFlushResets(t *testing.T) {
	var b batcher
	verts, inds := quadGeometry()

	b.append(renderStateKey{kind: PipelineColor}, scene.Identity(), verts, inds)
	v1, i1, b1 := b.flush()
	assert.NotEmpty(t, v1)
	assert.NotEmpty(t, i1)
	assert.Len(t, b1, 1)

	v2, i2, b2 := b.flush()
	assert.Empty(t, v2)
	assert.Empty(t, i2)
	assert.Empty(t, b2)
}
