package renderer2d

// SubTexture describes a normalized UV sub-rect of a loaded texture,
// typically one sprite within an atlas.
type SubTexture struct {
	Tex    *Texture
	U0, V0 float32 // top-left
	U1, V1 float32 // bottom-right
}

// FromPixels builds a subtexture from pixel coordinates within the atlas.
func FromPixels(tex *Texture, x, y, w, h int) SubTexture {
	return SubTexture{
		Tex: tex,
		U0:  float32(x) / float32(tex.Width),
		V0:  float32(y) / float32(tex.Height),
		U1:  float32(x+w) / float32(tex.Width),
		V1:  float32(y+h) / float32(tex.Height),
	}
}

// FromGrid builds a subtexture from tile grid coordinates (cx, cy) of cell
// size (cw, ch).
func FromGrid(tex *Texture, cx, cy, cw, ch int) SubTexture {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch)
}
