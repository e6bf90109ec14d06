package text

import (
	"image"

	"golang.org/x/image/draw"
)

const (
	atlasWidth     = 512
	atlasMinHeight = 64
	glyphPadding   = 1
)

// Glyph locates one rasterized rune.
type Glyph struct {
	Rune rune

	// Bounds is the glyph rectangle in the atlas image. Blank glyphs such
	// as space have empty bounds.
	Bounds image.Rectangle

	// OffsetX, OffsetY go from the pen position on the baseline to the
	// top-left corner of the glyph.
	OffsetX, OffsetY float32

	// Advance is the horizontal pen movement after the glyph.
	Advance float32
}

// Atlas packs glyph images into rows of one RGBA image.
// Pixels are premultiplied white with the glyph coverage as alpha.
type Atlas struct {
	img     *image.RGBA
	glyphs  map[rune]Glyph
	x, y    int
	rowH    int
	version uint64
}

func newAtlas() *Atlas {
	return &Atlas{
		img:    image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasMinHeight)),
		glyphs: make(map[rune]Glyph),
	}
}

// Image returns the atlas image. It is replaced, not modified in place,
// when the atlas grows, and modified in place when glyphs are added.
func (a *Atlas) Image() *image.RGBA { return a.img }

// Version changes every time a glyph is added.
func (a *Atlas) Version() uint64 { return a.version }

// Len returns the number of glyphs in the atlas.
func (a *Atlas) Len() int { return len(a.glyphs) }

func (a *Atlas) lookup(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// insert copies mask into a free spot and records g there.
func (a *Atlas) insert(g Glyph, mask image.Image, maskp image.Point, w, h int) Glyph {
	if w > 0 && h > 0 {
		dst := a.allocate(w, h)
		draw.DrawMask(a.img, dst, image.White, image.Point{}, mask, maskp, draw.Over)
		g.Bounds = dst
	}
	a.glyphs[g.Rune] = g
	a.version++
	return g
}

// allocate reserves a w x h rectangle using shelf packing.
func (a *Atlas) allocate(w, h int) image.Rectangle {
	if a.x+w+glyphPadding > atlasWidth {
		a.x = 0
		a.y += a.rowH + glyphPadding
		a.rowH = 0
	}
	for a.y+h > a.img.Rect.Dy() {
		a.grow()
	}
	r := image.Rect(a.x, a.y, a.x+w, a.y+h)
	a.x += w + glyphPadding
	a.rowH = max(a.rowH, h)
	return r
}

// grow doubles the atlas height, keeping its contents.
func (a *Atlas) grow() {
	bigger := image.NewRGBA(image.Rect(0, 0, atlasWidth, 2*a.img.Rect.Dy()))
	draw.Draw(bigger, a.img.Rect, a.img, image.Point{}, draw.Src)
	a.img = bigger
}
