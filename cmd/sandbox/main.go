package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math/rand"
	"os"

	"github.com/ember2d/ember/engine/colors"
	"github.com/ember2d/ember/engine/core"
	glbackend "github.com/ember2d/ember/engine/gfx/gl"
	"github.com/ember2d/ember/engine/gfx/renderer2d"
	"github.com/ember2d/ember/engine/platform"
	"github.com/ember2d/ember/engine/scene"
)

const (
	shapeRect = iota
	shapeCircle
)

type shape struct {
	kind   int
	x, y   float32
	vx, vy float32
	size   float32
	col    colors.Color
}

type sandbox struct {
	ctx  *renderer2d.Context
	cam  scene.Camera2D
	ctrl *scene.Controller2D

	checker *renderer2d.Texture
	sprite  renderer2d.SubTexture

	shapes []shape
	spin   float32
}

func (s *sandbox) OnStart(e *core.Engine) error {
	w, h := e.Window.FramebufferSize()
	ctx, err := renderer2d.New(e.Device, w, h)
	if err != nil {
		return err
	}
	s.ctx = ctx
	ctx.Reserve(e.Config.MaxQuads)
	ctx.SetDefaultClearColor(colors.Color(e.Config.ClearColor))

	s.cam = scene.Camera2D{Zoom: 1}
	s.ctrl = scene.NewController2D(&s.cam)

	s.checker, err = ctx.LoadTexture("checker", checkerPNG(64, 8))
	if err != nil {
		return err
	}
	s.sprite = renderer2d.FromGrid(s.checker, 0, 0, 32, 32)

	palette := []colors.Color{colors.Red, colors.Green, colors.SkyBlue, colors.Yellow, colors.Orange}
	for i := 0; i < 40; i++ {
		s.shapes = append(s.shapes, shape{
			kind: i % 2,
			x:    rand.Float32() * float32(w),
			y:    rand.Float32() * float32(h),
			vx:   (rand.Float32() - 0.5) * 400,
			vy:   (rand.Float32() - 0.5) * 400,
			size: 10 + rand.Float32()*30,
			col:  palette[i%len(palette)].WithAlpha(0.85),
		})
	}
	return nil
}

func (s *sandbox) OnFrame(e *core.Engine, dt float64) error {
	ctx := s.ctx
	s.ctrl.Update(ctx.Input(), float32(dt))
	s.spin += float32(dt)

	w, h := e.Window.FramebufferSize()
	for i := range s.shapes {
		sh := &s.shapes[i]
		sh.x += sh.vx * float32(dt)
		sh.y += sh.vy * float32(dt)
		if sh.x < 0 || sh.x > float32(w) {
			sh.vx = -sh.vx
		}
		if sh.y < 0 || sh.y > float32(h) {
			sh.vy = -sh.vy
		}
	}

	if err := ctx.BeginFrame(); err != nil {
		return err
	}

	// World space: grid plus a textured sprite under camera control.
	ctx.BeginMode2D(s.cam)
	for i := -10; i <= 10; i++ {
		f := float32(i) * 50
		ctx.DrawLine(f, -500, f, 500, 1, colors.Gray.WithAlpha(0.3))
		ctx.DrawLine(-500, f, 500, f, 1, colors.Gray.WithAlpha(0.3))
	}
	ctx.DrawTexture(s.checker, renderer2d.Rect{X: -64, Y: -64, W: 128, H: 128}, colors.White)

	ctx.PushMatrix()
	ctx.Translate(200, 0)
	ctx.RotateZ(s.spin)
	ctx.DrawSprite(s.sprite, renderer2d.Rect{X: -32, Y: -32, W: 64, H: 64}, colors.SkyBlue)
	if err := ctx.PopMatrix(); err != nil {
		return err
	}
	ctx.EndMode2D()

	// Screen space: bouncing shapes.
	for _, sh := range s.shapes {
		switch sh.kind {
		case shapeRect:
			ctx.DrawRect(renderer2d.Rect{X: sh.x - sh.size/2, Y: sh.y - sh.size/2, W: sh.size, H: sh.size}, sh.col)
		case shapeCircle:
			ctx.DrawCircle(sh.x, sh.y, sh.size/2, 32, sh.col)
		}
	}

	if err := ctx.EndFrame(); err != nil {
		if errors.Is(err, core.ErrSurfaceLost) {
			slog.Warn("surface lost, skipping frame", "err", err)
			return nil
		}
		return err
	}

	if ctx.IsKeyPressed(core.KeySpace) {
		st := ctx.Stats()
		slog.Info("frame", "fps", int(ctx.FPS()), "batches", st.Batches, "vertices", st.Vertices)
	}
	return nil
}

func (s *sandbox) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyEscape {
		e.Window.RequestClose()
		return
	}
	s.ctx.HandleEvent(ev)
}

func (s *sandbox) OnShutdown(e *core.Engine) {
	if s.ctx != nil {
		s.ctx.Shutdown()
	}
}

// checkerPNG renders a size×size checkerboard with the given cell size and
// encodes it as PNG, standing in for an asset file.
func checkerPNG(size, cell int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{40, 40, 48, 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{220, 220, 230, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err) // in-memory encode of a valid image cannot fail
	}
	return buf.Bytes()
}

func main() {
	cfg := core.DefaultConfig()
	cfg.Title = "ember sandbox"
	if _, err := os.Stat("sandbox.toml"); err == nil {
		loaded, err := core.LoadConfig("sandbox.toml")
		if err != nil {
			slog.Error("config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	app := &sandbox{}
	err := core.Run(app, cfg,
		func(cfg core.Config) (core.Window, error) { return platform.NewGLFWWindow(cfg) },
		func(win core.Window, cfg core.Config) (core.Device, error) { return glbackend.New(win, cfg) },
	)
	if err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}
