package lux

// Sprite is a rectangular region of a texture.
//
// Sprites are values over a shared texture: SubSprite and OriginalSprite
// return new sprites over the same texture without copying pixels.
type Sprite struct {
	texture TextureID

	// Pixel sizes of the whole texture and of this region.
	origW, origH int
	x, y         int
	w, h         int
}

// NewSprite returns a sprite covering the whole width x height texture.
func NewSprite(tex TextureID, width, height int) *Sprite {
	return &Sprite{texture: tex, origW: width, origH: height, w: width, h: height}
}

// Texture returns the backing texture.
func (s *Sprite) Texture() TextureID { return s.texture }

// Size returns the size of the region in pixels, which is also the size
// the sprite is drawn at by default.
func (s *Sprite) Size() (w, h float32) { return float32(s.w), float32(s.h) }

// Width returns the region width in pixels.
func (s *Sprite) Width() int { return s.w }

// Height returns the region height in pixels.
func (s *Sprite) Height() int { return s.h }

// Pos returns the top-left corner of the region in texture pixels.
func (s *Sprite) Pos() (x, y int) { return s.x, s.y }

// OriginalSize returns the size of the whole texture.
func (s *Sprite) OriginalSize() (w, h int) { return s.origW, s.origH }

// SubSprite returns the w x h region at (x, y) relative to s, or nil when
// it does not fit inside s.
func (s *Sprite) SubSprite(x, y, w, h int) *Sprite {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > s.w || y+h > s.h {
		return nil
	}
	return &Sprite{
		texture: s.texture,
		origW:   s.origW,
		origH:   s.origH,
		x:       s.x + x,
		y:       s.y + y,
		w:       w,
		h:       h,
	}
}

// OriginalSprite returns a sprite covering the whole texture.
func (s *Sprite) OriginalSprite() *Sprite {
	return NewSprite(s.texture, s.origW, s.origH)
}

// Bounds returns the normalized texture coordinates of the corners in the
// order top-left, top-right, bottom-left, bottom-right.
func (s *Sprite) Bounds() [4][2]float32 {
	if s.origW == 0 || s.origH == 0 {
		return [4][2]float32{}
	}
	u0 := float32(s.x) / float32(s.origW)
	v0 := float32(s.y) / float32(s.origH)
	u1 := float32(s.x+s.w) / float32(s.origW)
	v1 := float32(s.y+s.h) / float32(s.origH)
	return [4][2]float32{{u0, v0}, {u1, v0}, {u0, v1}, {u1, v1}}
}

// SpriteShape is a sprite drawing builder. Without Color the texture is
// drawn with its own colors.
type SpriteShape struct {
	style[*SpriteShape]
	sprite *Sprite
}

// Sprite starts drawing s with its top-left corner at (x, y), at the
// sprite's own size.
func (c *Canvas) Sprite(s *Sprite, x, y float32) *SpriteShape {
	d := &SpriteShape{sprite: s}
	w, h := s.Size()
	d.init(d, c, x, y, w, h)
	return d
}

// Draw draws the sprite. The texture color is multiplied by the shape
// color, or drawn as is without one.
func (d *SpriteShape) Draw() {
	b := d.sprite.Bounds()
	// Corner order matches quadCorners.
	verts := [4]TexVertex{
		{Pos: quadCorners[0], TexCoords: b[1]},
		{Pos: quadCorners[1], TexCoords: b[0]},
		{Pos: quadCorners[2], TexCoords: b[2]},
		{Pos: quadCorners[3], TexCoords: b[3]},
	}
	m := d.placement().Mul(Scaling(d.w, d.h))
	d.canvas.DrawTextured(TrianglesList, verts[:], quadIndices, &m, d.sprite.texture, d.color)
}
