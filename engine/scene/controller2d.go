package scene

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/ember2d/ember/engine/core"
)

// Controller2D: WASD pan, Q/E rotate, mouse wheel zoom with eased smoothing.
type Controller2D struct {
	Camera    *Camera2D
	MoveSpeed float32 // world units per second at zoom 1
	RotSpeed  float32 // radians per second
	ZoomStep  float32 // zoom multiplier per wheel notch

	targetZoom float32
	zoomTween  *gween.Tween
}

func NewController2D(cam *Camera2D) *Controller2D {
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
	return &Controller2D{
		Camera:     cam,
		MoveSpeed:  300,
		RotSpeed:   1.5,
		ZoomStep:   1.1,
		targetZoom: cam.Zoom,
	}
}

func (cc *Controller2D) Update(in *core.Input, dt float32) {
	cam := cc.Camera

	// Pan is scaled inversely by zoom so on-screen speed stays constant.
	speed := cc.MoveSpeed * dt / cam.Zoom
	if in.IsKeyDown(core.KeyW) || in.IsKeyDown(core.KeyUp) {
		cam.Y -= speed
	}
	if in.IsKeyDown(core.KeyS) || in.IsKeyDown(core.KeyDown) {
		cam.Y += speed
	}
	if in.IsKeyDown(core.KeyA) || in.IsKeyDown(core.KeyLeft) {
		cam.X -= speed
	}
	if in.IsKeyDown(core.KeyD) || in.IsKeyDown(core.KeyRight) {
		cam.X += speed
	}

	if in.IsKeyDown(core.KeyQ) {
		cam.RotationRad += cc.RotSpeed * dt
	}
	if in.IsKeyDown(core.KeyE) {
		cam.RotationRad -= cc.RotSpeed * dt
	}

	if _, wy := in.MouseWheel(); wy != 0 {
		cc.targetZoom *= math32.Pow(cc.ZoomStep, float32(wy))
		cc.targetZoom = math32.Max(0.05, math32.Min(cc.targetZoom, 50))
		cc.zoomTween = gween.New(cam.Zoom, cc.targetZoom, 0.15, ease.OutQuad)
	}
	if cc.zoomTween != nil {
		z, done := cc.zoomTween.Update(dt)
		cam.Zoom = z
		if done {
			cc.zoomTween = nil
		}
	}
}
