package renderer2d

import (
	"slices"

	"github.com/ember2d/ember/engine/core"
)

// PipelineKind selects which shader pipeline a batch renders with.
type PipelineKind uint8

const (
	PipelineColor PipelineKind = iota
	PipelineTexture
)

// renderStateKey determines whether two draws can share a GPU draw call.
type renderStateKey struct {
	kind PipelineKind
	tex  core.Texture // nil for untextured batches
}

// Batch is a maximal run of geometry sharing one render-state key and one
// view matrix, submitted as a single indexed draw. Offsets refer to the
// frame-wide staging arrays returned by flush.
type Batch struct {
	Kind    PipelineKind
	Texture core.Texture
	View    [16]float32 // camera view active when the batch was opened

	FirstVertex int
	VertexCount int
	FirstIndex  int
	IndexCount  int
}

// batcher accumulates tessellated geometry into the frame's staging arrays,
// greedily extending the active batch while the render state is unchanged.
// It never reorders: a key change closes the active batch for good, because
// reordering can visibly alter overlapping translucent shapes.
//
// The backing arrays persist across frames and only ever grow, so steady-state
// recording performs no allocation.
type batcher struct {
	verts   []float32
	inds    []uint32
	batches []Batch
	open    bool
}

// append adds one shape's geometry. inds must be local (0-based for this
// shape); they are re-based against the running vertex offset here.
func (b *batcher) append(key renderStateKey, view [16]float32, verts []float32, inds []uint32) {
	base := uint32(len(b.verts) / vertexStride)
	b.verts = append(b.verts, verts...)
	for _, i := range inds {
		b.inds = append(b.inds, base+i)
	}

	nVerts := len(verts) / vertexStride
	if b.open {
		last := &b.batches[len(b.batches)-1]
		if last.Kind == key.kind && last.Texture == key.tex && last.View == view {
			last.VertexCount += nVerts
			last.IndexCount += len(inds)
			return
		}
	}
	b.batches = append(b.batches, Batch{
		Kind:        key.kind,
		Texture:     key.tex,
		View:        view,
		FirstVertex: int(base),
		VertexCount: nVerts,
		FirstIndex:  len(b.inds) - len(inds),
		IndexCount:  len(inds),
	})
	b.open = true
}

// reserve pre-grows the staging arrays so recording up to the given sizes
// performs no allocation.
func (b *batcher) reserve(nFloats, nInds int) {
	b.verts = slices.Grow(b.verts, nFloats)
	b.inds = slices.Grow(b.inds, nInds)
}

// interrupt closes the active batch without starting a new one. Used at
// camera-mode boundaries so the next draw snapshots the new view.
func (b *batcher) interrupt() { b.open = false }

// flush returns the frame's staging arrays and ordered batch list, then
// resets for the next frame. The returned slices alias the internal arrays
// and are valid until the next append.
func (b *batcher) flush() (verts []float32, inds []uint32, batches []Batch) {
	verts, inds, batches = b.verts, b.inds, b.batches
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.batches = b.batches[:0]
	b.open = false
	return
}
