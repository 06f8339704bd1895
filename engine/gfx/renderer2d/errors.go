package renderer2d

import "errors"

// All of these are recoverable: they are returned to the caller with no
// partial effect on recorded geometry or registered resources. Backend
// submission failures surface as core.ErrSurfaceLost / core.ErrDeviceLost
// from EndFrame.
var (
	// ErrInvalidParameter reports bad shape arguments (circle with fewer
	// than 3 segments, zero-length line, nil texture).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrStackUnderflow reports a PopMatrix that would remove the base
	// transform frame. The stack is left at its last valid state.
	ErrStackUnderflow = errors.New("matrix stack underflow")

	// ErrNotRecording reports a draw call issued outside BeginFrame/EndFrame.
	ErrNotRecording = errors.New("no frame being recorded")

	// ErrAlreadyRecording reports BeginFrame while a frame is open.
	ErrAlreadyRecording = errors.New("frame already being recorded")

	// ErrResource reports texture decode or upload failure; nothing is
	// registered in the texture cache when it is returned.
	ErrResource = errors.New("resource error")

	// ErrCameraMode reports unbalanced BeginMode2D/EndMode2D usage.
	ErrCameraMode = errors.New("unbalanced camera mode")
)
