package lux

import "github.com/gogpu/lux/text"

// Text is a text drawing builder. Glyphs come from the font atlas of the
// selected font and are drawn as one textured batch.
type Text struct {
	style[*Text]
	s        string
	fontName string
	fontSize float64
}

// Text starts drawing s with the top-left corner of its first line at
// (x, y), in the current font and color.
func (c *Canvas) Text(s string, x, y float32) *Text {
	t := &Text{s: s}
	t.init(t, c, x, y, 0, 0)
	return t
}

// Font selects the font by name and size instead of the current font.
func (t *Text) Font(name string, size float64) *Text {
	t.fontName, t.fontSize = name, size
	return t
}

// FontSize keeps the font name and changes its size.
func (t *Text) FontSize(size float64) *Text {
	t.fontSize = size
	return t
}

// font resolves the selected font.
func (t *Text) font() (*fontEntry, error) {
	fc := t.canvas.fonts
	if t.fontName == "" && t.fontSize == 0 {
		return fc.currentEntry()
	}
	name, size := t.fontName, t.fontSize
	if name == "" || size == 0 {
		cur, err := fc.currentEntry()
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = cur.font.Name()
		}
		if size == 0 {
			size = cur.font.Size()
		}
	}
	return fc.entry(name, size)
}

// Draw draws the text. It returns a *FontNotLoadedError when the selected
// font was never loaded, and an error when the atlas cannot be uploaded.
func (t *Text) Draw() error {
	e, err := t.font()
	if err != nil {
		return err
	}
	placed := e.font.Layout(t.s)
	if len(placed) == 0 {
		return nil
	}
	// Layout may add glyphs, so the atlas is uploaded afterwards.
	tex, err := t.canvas.atlasTexture(e)
	if err != nil {
		return err
	}
	verts, indices := glyphQuads(placed, e.font.Atlas())
	m := t.placement()
	col := t.fill()
	t.canvas.DrawTextured(TrianglesList, verts, indices, &m, tex, &col)
	return nil
}

// glyphQuads builds one textured quad per placed glyph.
func glyphQuads(placed []text.Placed, atlas *text.Atlas) ([]TexVertex, []uint32) {
	size := atlas.Image().Bounds().Size()
	aw, ah := float32(size.X), float32(size.Y)
	verts := make([]TexVertex, 0, 4*len(placed))
	indices := make([]uint32, 0, 6*len(placed))
	for _, p := range placed {
		r := p.Bounds
		x0, y0 := p.X, p.Y
		x1, y1 := x0+float32(r.Dx()), y0+float32(r.Dy())
		u0, v0 := float32(r.Min.X)/aw, float32(r.Min.Y)/ah
		u1, v1 := float32(r.Max.X)/aw, float32(r.Max.Y)/ah
		base := uint32(len(verts)) // #nosec G115 -- vertex counts fit in uint32
		verts = append(verts,
			TexVertex{Pos: [2]float32{x1, y0}, TexCoords: [2]float32{u1, v0}},
			TexVertex{Pos: [2]float32{x0, y0}, TexCoords: [2]float32{u0, v0}},
			TexVertex{Pos: [2]float32{x0, y1}, TexCoords: [2]float32{u0, v1}},
			TexVertex{Pos: [2]float32{x1, y1}, TexCoords: [2]float32{u1, v1}},
		)
		for _, i := range quadIndices {
			indices = append(indices, base+i)
		}
	}
	return verts, indices
}

// DrawText draws s at (x, y) in the current font and color.
func (c *Canvas) DrawText(s string, x, y float32) error {
	return c.Text(s, x, y).Draw()
}

// MeasureText returns the size of the box s occupies in the current font.
func (c *Canvas) MeasureText(s string) (w, h float32, err error) {
	f, err := c.fonts.Current()
	if err != nil {
		return 0, 0, err
	}
	w, h = f.BoundingBox(s)
	return w, h, nil
}
