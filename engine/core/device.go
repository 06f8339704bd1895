package core

import "errors"

// Backend failure conditions surfaced during frame submission. The caller is
// expected to recreate the surface/device and continue; the frame that hit
// the error is discarded, never retried.
var (
	ErrSurfaceLost = errors.New("surface lost")
	ErrDeviceLost  = errors.New("device lost")
)

// Opaque backend handles. Identity comparisons (==) are meaningful: two
// handles are equal iff they refer to the same GPU object.
type (
	Pipeline any
	Texture  any
	Mesh     any
)

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int // bytes per vertex
	Attributes []VertexAttrib
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // tightly packed, row-major, top-left origin
	MinFilter     string // "nearest" | "linear"
	MagFilter     string
	WrapU         string // "clamp" | "repeat"
	WrapV         string
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// Device is the GPU backend consumed by the drawing layer. Implementations
// own the underlying graphics objects; all calls must come from the thread
// that owns the graphics context.
//
// A frame is bracketed by BeginPass/EndPass. BeginPass acquires the surface
// image and clears it; EndPass submits and presents. Both may report
// ErrSurfaceLost or ErrDeviceLost.
type Device interface {
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	DestroyTexture(tex Texture)
	CreateMesh(desc MeshDesc) (Mesh, error)

	// UpdateMesh replaces the mesh's vertex/index data, growing the GPU
	// buffers if needed. Capacity is never shrunk.
	UpdateMesh(mesh Mesh, vertices []float32, indices []uint32) error

	BeginPass(clear [4]float32) error
	BindPipeline(p Pipeline)
	BindTexture(tex Texture)
	SetTransform(m [16]float32)
	DrawIndexed(mesh Mesh, firstIndex, indexCount int)
	EndPass() error

	Resize(w, h int)
	Shutdown()
}

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}
