package renderer2d

import "github.com/chewxy/math32"

// Affine is a 2D affine matrix in column-vector convention:
//
//	x' = A*x + C*y + Tx
//	y' = B*x + D*y + Ty
type Affine struct {
	A, B, C, D, Tx, Ty float32
}

func Identity() Affine { return Affine{A: 1, D: 1} }

// Mul returns m∘n: the transform that applies n first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A:  m.A*n.A + m.C*n.B,
		B:  m.B*n.A + m.D*n.B,
		C:  m.A*n.C + m.C*n.D,
		D:  m.B*n.C + m.D*n.D,
		Tx: m.A*n.Tx + m.C*n.Ty + m.Tx,
		Ty: m.B*n.Tx + m.D*n.Ty + m.Ty,
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

func translation(tx, ty float32) Affine {
	return Affine{A: 1, D: 1, Tx: tx, Ty: ty}
}

func rotation(rad float32) Affine {
	s, c := math32.Sincos(rad)
	return Affine{A: c, B: s, C: -s, D: c}
}

func scaling(sx, sy float32) Affine {
	return Affine{A: sx, D: sy}
}

// MatrixStack holds the per-draw model transforms. The base identity frame
// always exists; Pop never removes it. Mutators post-multiply the top frame,
// so the newest operation applies to vertices first (local space).
type MatrixStack struct {
	stack []Affine
}

func NewMatrixStack() *MatrixStack {
	return &MatrixStack{stack: []Affine{Identity()}}
}

// Push duplicates the current top, saving the state for a later Pop.
func (ms *MatrixStack) Push() {
	ms.stack = append(ms.stack, ms.stack[len(ms.stack)-1])
}

// Pop restores the previously pushed transform. Popping the base frame is an
// error and leaves the stack untouched.
func (ms *MatrixStack) Pop() error {
	if len(ms.stack) <= 1 {
		return ErrStackUnderflow
	}
	ms.stack = ms.stack[:len(ms.stack)-1]
	return nil
}

// Current returns the effective transform applied to recorded vertices.
func (ms *MatrixStack) Current() Affine {
	return ms.stack[len(ms.stack)-1]
}

// LoadIdentity resets the top frame.
func (ms *MatrixStack) LoadIdentity() {
	ms.stack[len(ms.stack)-1] = Identity()
}

func (ms *MatrixStack) Translate(tx, ty float32) { ms.apply(translation(tx, ty)) }
func (ms *MatrixStack) RotateZ(rad float32)      { ms.apply(rotation(rad)) }
func (ms *MatrixStack) Scale(sx, sy float32)     { ms.apply(scaling(sx, sy)) }

func (ms *MatrixStack) apply(op Affine) {
	top := len(ms.stack) - 1
	ms.stack[top] = ms.stack[top].Mul(op)
}
