package renderer2d

import (
	"fmt"
	"time"

	"github.com/ember2d/ember/engine/assets"
	"github.com/ember2d/ember/engine/colors"
	"github.com/ember2d/ember/engine/core"
	"github.com/ember2d/ember/engine/scene"
)

type frameState uint8

const (
	stateIdle frameState = iota
	stateRecording
	stateSubmitting
)

// Texture is a GPU texture registered in the context's cache, keyed by the
// logical name it was loaded under.
type Texture struct {
	Name          string
	Width, Height int

	handle core.Texture
}

// Statistics captures the counts generated during one frame.
type Statistics struct {
	DrawCalls int // GPU draws issued (== batches submitted)
	Batches   int
	Vertices  int
	Indices   int
}

// Context is the frame controller: it owns the begin/draw/end lifecycle and
// the public draw API. Draw calls are cheap and CPU-only; EndFrame is the
// single point where GPU upload, submission, and presentation happen.
//
// A Context is single-threaded by contract. All calls must come from the one
// frame-loop goroutine that owns the GPU device.
type Context struct {
	dev   core.Device
	input *core.Input

	state   frameState
	batch   batcher
	xform   *MatrixStack
	cameras []scene.Camera2D

	width, height int
	proj          [16]float32

	clearColor   [4]float32
	defaultClear [4]float32

	textures map[string]*Texture

	colorPipe core.Pipeline
	texPipe   core.Pipeline
	mesh      core.Mesh

	// per-draw scratch, reused to keep the record path allocation-free
	scratchVerts []float32
	scratchInds  []uint32

	lastFrame time.Time
	frameDt   float64
	stats     Statistics
}

// New creates the context and compiles the built-in pipelines. Backend
// failure here aborts construction; no partially initialized context is
// ever returned.
func New(dev core.Device, width, height int) (*Context, error) {
	colorPipe, err := dev.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertexShaderSource,
		FragmentSource: colorFragmentSource,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create color pipeline: %w", err)
	}
	texPipe, err := dev.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertexShaderSource,
		FragmentSource: textureFragmentSource,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture pipeline: %w", err)
	}

	mesh, err := dev.CreateMesh(core.MeshDesc{Layout: vertexLayout})
	if err != nil {
		return nil, fmt.Errorf("create staging mesh: %w", err)
	}

	return &Context{
		dev:          dev,
		input:        core.NewInput(),
		xform:        NewMatrixStack(),
		proj:         scene.Ortho(float32(width), float32(height)),
		width:        width,
		height:       height,
		clearColor:   [4]float32{0.1, 0.1, 0.1, 1},
		defaultClear: [4]float32{0.1, 0.1, 0.1, 1},
		textures:     map[string]*Texture{},
		colorPipe:    colorPipe,
		texPipe:      texPipe,
		mesh:         mesh,
		lastFrame:    time.Now(),
	}, nil
}

// Shutdown releases every cached texture. The device itself is owned by the
// caller and shut down separately.
func (c *Context) Shutdown() {
	for _, t := range c.textures {
		c.dev.DestroyTexture(t.handle)
	}
	clear(c.textures)
}

// --- frame lifecycle ---

// BeginFrame transitions Idle→Recording: rolls the input snapshot (enabling
// this frame's edge queries), zeroes the scroll delta, and resets the frame
// clock used by FrameTime/FPS.
func (c *Context) BeginFrame() error {
	if c.state == stateRecording {
		return ErrAlreadyRecording
	}

	now := time.Now()
	c.frameDt = now.Sub(c.lastFrame).Seconds()
	c.lastFrame = now

	c.input.BeginFrame()
	c.batch.flush() // discard anything a previously failed frame left behind
	c.clearColor = c.defaultClear
	c.stats = Statistics{}
	c.state = stateRecording
	return nil
}

// SetDefaultClearColor sets the color frames clear to when ClearBackground
// is not called; Config.ClearColor is typically fed here at setup.
func (c *Context) SetDefaultClearColor(col colors.Color) {
	c.defaultClear = [4]float32(col)
}

// ClearBackground records the frame's clear color.
func (c *Context) ClearBackground(col colors.Color) error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	c.clearColor = [4]float32(col)
	return nil
}

// EndFrame transitions Recording→Submitting→Idle: flushes the batcher,
// uploads the frame's geometry in one mesh update, and issues one GPU draw
// per batch in recorded order, binding pipeline/texture/uniform only when
// they differ from the previous batch. The transform is re-sent after every
// pipeline switch regardless: uniforms live in per-program storage, so a
// value uploaded while another program was bound never reached this one.
// Backend loss (core.ErrSurfaceLost, core.ErrDeviceLost) is returned to the
// caller; the frame's batches are discarded either way, never retried.
func (c *Context) EndFrame() error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	if len(c.cameras) != 0 {
		// Unbalanced BeginMode2D. Report and discard the frame.
		c.cameras = c.cameras[:0]
		c.batch.flush()
		c.state = stateIdle
		return fmt.Errorf("end frame: %w: BeginMode2D without matching EndMode2D", ErrCameraMode)
	}
	c.state = stateSubmitting
	defer func() { c.state = stateIdle }()

	verts, inds, batches := c.batch.flush()

	if len(verts) > 0 {
		if err := c.dev.UpdateMesh(c.mesh, verts, inds); err != nil {
			return fmt.Errorf("upload frame geometry: %w", err)
		}
	}

	if err := c.dev.BeginPass(c.clearColor); err != nil {
		return fmt.Errorf("begin pass: %w", err)
	}

	var (
		boundPipe core.Pipeline
		boundTex  core.Texture
		boundXf   [16]float32
		first     = true
	)
	for _, b := range batches {
		pipe := c.colorPipe
		if b.Kind == PipelineTexture {
			pipe = c.texPipe
		}
		pipeSwitched := first || pipe != boundPipe
		if pipeSwitched {
			c.dev.BindPipeline(pipe)
			boundPipe = pipe
		}
		if b.Texture != nil && (first || b.Texture != boundTex) {
			c.dev.BindTexture(b.Texture)
			boundTex = b.Texture
		}
		xf := scene.Mul(c.proj, b.View)
		if pipeSwitched || xf != boundXf {
			c.dev.SetTransform(xf)
			boundXf = xf
		}
		first = false

		c.dev.DrawIndexed(c.mesh, b.FirstIndex, b.IndexCount)

		c.stats.DrawCalls++
		c.stats.Vertices += b.VertexCount
		c.stats.Indices += b.IndexCount
	}
	c.stats.Batches = len(batches)

	if err := c.dev.EndPass(); err != nil {
		return fmt.Errorf("end pass: %w", err)
	}
	return nil
}

// Resize recomputes the projection for the new surface size. Valid in any
// state; an active camera keeps its view and is recombined with the new
// projection at the next submission.
func (c *Context) Resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	c.width, c.height = w, h
	c.proj = scene.Ortho(float32(w), float32(h))
	c.dev.Resize(w, h)
}

// Reserve pre-grows the staging arrays to hold the given number of quads
// without reallocating. A capacity hint, typically fed from Config.MaxQuads;
// recording past it still works and grows as needed.
func (c *Context) Reserve(quads int) {
	if quads > 0 {
		c.batch.reserve(quads*4*vertexStride, quads*6)
	}
}

// Stats returns the counts submitted by the most recent EndFrame. They are
// zeroed at BeginFrame, so reads mid-recording see zeros.
func (c *Context) Stats() Statistics { return c.stats }

// FrameTime returns seconds elapsed between the last two BeginFrame calls.
func (c *Context) FrameTime() float64 { return c.frameDt }

func (c *Context) FPS() float64 {
	if c.frameDt > 0 {
		return 1 / c.frameDt
	}
	return 0
}

// --- draw API (valid only while Recording) ---

// DrawRect records a filled rectangle in logical pixels.
func (c *Context) DrawRect(r Rect, col colors.Color) error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	m := c.xform.Current()
	verts, inds := appendQuad(c.scratchVerts[:0], c.scratchInds[:0], m,
		r.X, r.Y, r.X+r.W, r.Y+r.H, 0, 0, 0, 0, col)
	c.record(renderStateKey{kind: PipelineColor}, verts, inds)
	return nil
}

// DrawCircle records a filled circle as a triangle fan. segments must be at
// least 3; higher values give smoother circles (~32 is typical).
func (c *Context) DrawCircle(x, y, radius float32, segments int, col colors.Color) error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	m := c.xform.Current()
	verts, inds, err := appendCircle(c.scratchVerts[:0], c.scratchInds[:0], m, x, y, radius, segments, col)
	if err != nil {
		return fmt.Errorf("draw circle with %d segments: %w", segments, err)
	}
	c.record(renderStateKey{kind: PipelineColor}, verts, inds)
	return nil
}

// DrawLine records a line segment rendered as a thickness-extruded quad.
func (c *Context) DrawLine(x0, y0, x1, y1, thickness float32, col colors.Color) error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	m := c.xform.Current()
	verts, inds, err := appendLine(c.scratchVerts[:0], c.scratchInds[:0], m, x0, y0, x1, y1, thickness, col)
	if err != nil {
		return fmt.Errorf("draw zero-length line: %w", err)
	}
	c.record(renderStateKey{kind: PipelineColor}, verts, inds)
	return nil
}

// DrawTexture records the whole texture scaled into dst, tinted by
// multiplying with tint (colors.White for none).
func (c *Context) DrawTexture(tex *Texture, dst Rect, tint colors.Color) error {
	return c.drawTexturedQuad(tex, dst, 0, 0, 1, 1, tint)
}

// DrawSubTexture records the src region of the texture (pixel coordinates)
// into dst. Out-of-range source rectangles are clamped to the texture.
func (c *Context) DrawSubTexture(tex *Texture, src, dst Rect, tint colors.Color) error {
	if tex == nil {
		return fmt.Errorf("draw subtexture: %w: nil texture", ErrInvalidParameter)
	}
	u0, v0, u1, v1 := subtexUV(tex, src)
	return c.drawTexturedQuad(tex, dst, u0, v0, u1, v1, tint)
}

// DrawSprite records an atlas sprite described by a SubTexture.
func (c *Context) DrawSprite(sub SubTexture, dst Rect, tint colors.Color) error {
	return c.drawTexturedQuad(sub.Tex, dst, sub.U0, sub.V0, sub.U1, sub.V1, tint)
}

func (c *Context) drawTexturedQuad(tex *Texture, dst Rect, u0, v0, u1, v1 float32, tint colors.Color) error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	if tex == nil {
		return fmt.Errorf("draw texture: %w: nil texture", ErrInvalidParameter)
	}
	m := c.xform.Current()
	verts, inds := appendQuad(c.scratchVerts[:0], c.scratchInds[:0], m,
		dst.X, dst.Y, dst.X+dst.W, dst.Y+dst.H, u0, v0, u1, v1, tint)
	c.record(renderStateKey{kind: PipelineTexture, tex: tex.handle}, verts, inds)
	return nil
}

func (c *Context) record(key renderStateKey, verts []float32, inds []uint32) {
	c.batch.append(key, c.currentView(), verts, inds)
	c.scratchVerts = verts[:0]
	c.scratchInds = inds[:0]
}

// --- transform stack ---

func (c *Context) PushMatrix()              { c.xform.Push() }
func (c *Context) PopMatrix() error         { return c.xform.Pop() }
func (c *Context) LoadIdentity()            { c.xform.LoadIdentity() }
func (c *Context) Translate(tx, ty float32) { c.xform.Translate(tx, ty) }
func (c *Context) RotateZ(radians float32)  { c.xform.RotateZ(radians) }
func (c *Context) Scale(sx, sy float32)     { c.xform.Scale(sx, sy) }

// --- camera mode ---

// BeginMode2D enters world-space drawing: until the matching EndMode2D, the
// GPU uniform is projection × camera view instead of projection alone.
// Modes nest; the innermost camera wins.
func (c *Context) BeginMode2D(cam scene.Camera2D) error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	c.cameras = append(c.cameras, cam)
	c.batch.interrupt()
	return nil
}

// EndMode2D returns to screen-space drawing.
func (c *Context) EndMode2D() error {
	if c.state != stateRecording {
		return ErrNotRecording
	}
	if len(c.cameras) == 0 {
		return fmt.Errorf("end mode 2d: %w: no active camera mode", ErrCameraMode)
	}
	c.cameras = c.cameras[:len(c.cameras)-1]
	c.batch.interrupt()
	return nil
}

func (c *Context) currentView() [16]float32 {
	if len(c.cameras) == 0 {
		return scene.Identity()
	}
	return c.cameras[len(c.cameras)-1].ViewMatrix()
}

// --- textures ---

// LoadTexture decodes encoded image bytes (PNG, JPEG, WebP, BMP) and uploads
// them to the GPU. Textures are deduplicated by name: loading a name that is
// already cached returns the existing handle without touching the GPU.
// May be called in any state; it is synchronous and typically used at setup.
func (c *Context) LoadTexture(name string, data []byte) (*Texture, error) {
	if t, ok := c.textures[name]; ok {
		return t, nil
	}

	w, h, pixels, err := assets.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w: %v", name, ErrResource, err)
	}

	handle, err := c.dev.CreateTexture(core.TextureDesc{
		Width: w, Height: h,
		Format:    core.TextureRGBA8,
		Pixels:    pixels,
		MinFilter: "linear", MagFilter: "linear",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w: %v", name, ErrResource, err)
	}

	t := &Texture{Name: name, Width: w, Height: h, handle: handle}
	c.textures[name] = t
	return t, nil
}

// ReleaseTexture destroys the named texture's GPU memory and drops it from
// the cache. Releasing an unknown name is a no-op.
func (c *Context) ReleaseTexture(name string) {
	t, ok := c.textures[name]
	if !ok {
		return
	}
	c.dev.DestroyTexture(t.handle)
	delete(c.textures, name)
}

// --- input ---

// HandleEvent feeds a window event into the input tracker. Resize events
// additionally recompute the projection.
func (c *Context) HandleEvent(ev core.Event) {
	if e, ok := ev.(core.EventResize); ok {
		c.Resize(e.W, e.H)
		return
	}
	c.input.Handle(ev)
}

func (c *Context) IsKeyDown(k core.Key) bool    { return c.input.IsKeyDown(k) }
func (c *Context) IsKeyPressed(k core.Key) bool { return c.input.IsKeyPressed(k) }

func (c *Context) IsMouseButtonDown(b core.MouseButton) bool {
	return c.input.IsMouseButtonDown(b)
}

func (c *Context) IsMouseButtonPressed(b core.MouseButton) bool {
	return c.input.IsMouseButtonPressed(b)
}

func (c *Context) MousePosition() (float64, float64) { return c.input.MousePosition() }
func (c *Context) MouseWheel() (float64, float64)    { return c.input.MouseWheel() }

// Input exposes the underlying tracker, e.g. for camera controllers.
func (c *Context) Input() *core.Input { return c.input }
