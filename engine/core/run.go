package core

import (
	"log/slog"
	"runtime"
	"time"
)

// App defines the application hooks driven by Run.
type App interface {
	OnStart(e *Engine) error
	OnFrame(e *Engine, dt float64) error // called once per displayed frame
	OnEvent(e *Engine, ev Event)
	OnShutdown(e *Engine)
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	Device Device
	Config Config
	start  time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Run wires the platform window + GPU device and executes the main loop.
// Construction failure of either aborts the run; no partially initialized
// engine is ever handed to the app.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newDevice func(Window, Config) (Device, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	dev, err := newDevice(win, cfg)
	if err != nil {
		return err
	}
	defer dev.Shutdown()

	w, h := win.FramebufferSize()
	dev.Resize(w, h)

	eng := &Engine{Window: win, Device: dev, Config: cfg, start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		app.OnEvent(eng, ev)
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			dev.Resize(fw, fh)
		}
	})

	if err := app.OnStart(eng); err != nil {
		return err
	}

	prev := time.Now()
	for !win.ShouldClose() {
		now := time.Now()
		dt := now.Sub(prev).Seconds()
		prev = now

		// Poll OS events (platform will emit via callbacks).
		win.PollEvents()

		if err := app.OnFrame(eng, dt); err != nil {
			app.OnShutdown(eng)
			return err
		}
	}

	app.OnShutdown(eng)
	slog.Info("engine exit", "uptime", eng.Uptime())
	return nil
}
