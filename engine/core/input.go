package core

// Input tracks keyboard, mouse button, cursor, and scroll state across two
// per-frame snapshots. BeginFrame rolls the current snapshot into the
// previous one, which is what makes the *Pressed edge queries work: a key is
// "pressed" only on the frame it transitions from up to down.
//
// Event feeding and queries happen on the single frame-loop thread; there is
// no internal locking.
type Input struct {
	keys     map[Key]bool
	prevKeys map[Key]bool

	buttons     map[MouseButton]bool
	prevButtons map[MouseButton]bool

	mouseX, mouseY float64
	wheelX, wheelY float64
}

func NewInput() *Input {
	return &Input{
		keys:        map[Key]bool{},
		prevKeys:    map[Key]bool{},
		buttons:     map[MouseButton]bool{},
		prevButtons: map[MouseButton]bool{},
	}
}

// BeginFrame snapshots the current state for edge detection and resets the
// per-frame scroll delta. Call once at the top of each frame, before any new
// events are fed in.
func (in *Input) BeginFrame() {
	clear(in.prevKeys)
	for k, down := range in.keys {
		if down {
			in.prevKeys[k] = true
		}
	}
	clear(in.prevButtons)
	for b, down := range in.buttons {
		if down {
			in.prevButtons[b] = true
		}
	}
	in.wheelX, in.wheelY = 0, 0
}

// Handle consumes a window event, updating only the current snapshot.
func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down {
			in.keys[e.Key] = true
		} else {
			delete(in.keys, e.Key)
		}
	case EventMouseButton:
		if e.Down {
			in.buttons[e.Button] = true
		} else {
			delete(in.buttons, e.Button)
		}
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventScroll:
		in.wheelX += e.Dx
		in.wheelY += e.Dy
	}
}

func (in *Input) IsKeyDown(k Key) bool { return in.keys[k] }

// IsKeyPressed reports true only on the frame the key went down.
func (in *Input) IsKeyPressed(k Key) bool { return in.keys[k] && !in.prevKeys[k] }

func (in *Input) IsMouseButtonDown(b MouseButton) bool { return in.buttons[b] }

func (in *Input) IsMouseButtonPressed(b MouseButton) bool {
	return in.buttons[b] && !in.prevButtons[b]
}

// MousePosition returns the cursor position in screen pixels, (0,0) top-left.
func (in *Input) MousePosition() (float64, float64) { return in.mouseX, in.mouseY }

// MouseWheel returns the scroll delta accumulated since BeginFrame.
func (in *Input) MouseWheel() (float64, float64) { return in.wheelX, in.wheelY }
