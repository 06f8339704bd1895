package glbackend

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/ember2d/ember/engine/core"
)

// Device implements core.Device on OpenGL 3.3 core. The window must have
// made its GL context current (the platform package does this) before New
// is called, and all calls must stay on that thread.
type Device struct {
	win core.Window

	pipelines []*pipeline
	meshes    []*mesh

	bound *pipeline
}

type pipeline struct {
	program      uint32
	blend        bool
	transformLoc int32
	samplerLoc   int32
}

type texture struct {
	id            uint32
	width, height int
}

type mesh struct {
	vao, vbo, ebo uint32
	vertCap       int // capacity in float32s
	indCap        int // capacity in uint32s
}

func New(win core.Window, _ core.Config) (*Device, error) {
	d := &Device{win: win}
	gl.Disable(gl.DEPTH_TEST)
	slog.Info("gl device ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return d, nil
}

func (d *Device) Shutdown() {
	for _, p := range d.pipelines {
		gl.DeleteProgram(p.program)
	}
	for _, m := range d.meshes {
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	d.pipelines = nil
	d.meshes = nil
}

func (d *Device) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

// --- pipelines ---

func (d *Device) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	p := &pipeline{
		program:      prog,
		blend:        desc.Blend,
		transformLoc: gl.GetUniformLocation(prog, gl.Str("uTransform\x00")),
		samplerLoc:   gl.GetUniformLocation(prog, gl.Str("uTex\x00")),
	}
	d.pipelines = append(d.pipelines, p)
	return p, nil
}

func (d *Device) BindPipeline(cp core.Pipeline) {
	p := cp.(*pipeline)
	gl.UseProgram(p.program)
	if p.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	d.bound = p
}

func (d *Device) SetTransform(m [16]float32) {
	if d.bound == nil {
		return
	}
	gl.UniformMatrix4fv(d.bound.transformLoc, 1, false, &m[0])
}

// --- textures ---

func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("unsupported texture format %d", desc.Format)
	}
	if len(desc.Pixels) != 0 && len(desc.Pixels) < desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("texture pixel buffer too small: %d for %dx%d",
			len(desc.Pixels), desc.Width, desc.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterEnum(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterEnum(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapEnum(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapEnum(desc.WrapV))

	var pixels unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pixels = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &texture{id: id, width: desc.Width, height: desc.Height}, nil
}

func (d *Device) DestroyTexture(ct core.Texture) {
	if t, ok := ct.(*texture); ok && t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func (d *Device) BindTexture(ct core.Texture) {
	t := ct.(*texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	if d.bound != nil && d.bound.samplerLoc >= 0 {
		gl.Uniform1i(d.bound.samplerLoc, 0)
	}
}

// --- meshes ---

func (d *Device) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(desc.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), gl.DYNAMIC_DRAW)
		m.vertCap = len(desc.Vertices)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(desc.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.DYNAMIC_DRAW)
		m.indCap = len(desc.Indices)
	}

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointer(uint32(a.Location), int32(a.Size), gl.FLOAT, false,
			int32(desc.Layout.Stride), unsafe.Pointer(uintptr(a.Offset)))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	d.meshes = append(d.meshes, m)
	return m, nil
}

// UpdateMesh streams this frame's geometry. Buffers grow when the data
// outgrows them and are otherwise updated in place; capacity never shrinks.
func (d *Device) UpdateMesh(cm core.Mesh, vertices []float32, indices []uint32) error {
	m := cm.(*mesh)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > m.vertCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
		m.vertCap = len(vertices)
	} else if len(vertices) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(indices) > m.indCap {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.DYNAMIC_DRAW)
		m.indCap = len(indices)
	} else if len(indices) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return nil
}

// --- pass ---

func (d *Device) BeginPass(clear [4]float32) error {
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

func (d *Device) DrawIndexed(cm core.Mesh, firstIndex, indexCount int) {
	m := cm.(*mesh)
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, uintptr(firstIndex*4))
	gl.BindVertexArray(0)
}

func (d *Device) EndPass() error {
	d.win.SwapBuffers()
	d.bound = nil
	return nil
}

func filterEnum(name string) int32 {
	if name == "nearest" {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrapEnum(name string) int32 {
	if name == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}
