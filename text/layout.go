package text

// Placed is a glyph at its destination. X and Y are the top-left corner of
// the glyph bounds relative to the top-left corner of the text.
type Placed struct {
	Glyph
	X, Y float32
}

// Layout positions the glyphs of s. Blank glyphs are skipped.
func (f *Font) Layout(s string) []Placed {
	s = normalize(s)
	out := make([]Placed, 0, len(s))
	var penX float32
	baseline := f.metrics.Ascent
	for _, r := range s {
		if r == '\n' {
			penX = 0
			baseline += f.LineHeight()
			continue
		}
		g := f.Glyph(r)
		if !g.Bounds.Empty() {
			out = append(out, Placed{Glyph: g, X: penX + g.OffsetX, Y: baseline + g.OffsetY})
		}
		penX += g.Advance
	}
	return out
}

// Positions returns the pen x position before each rune of s, after
// normalization. Newlines reset the position to zero.
func (f *Font) Positions(s string) []float32 {
	s = normalize(s)
	out := make([]float32, 0, len(s))
	var penX float32
	for _, r := range s {
		out = append(out, penX)
		if r == '\n' {
			penX = 0
			continue
		}
		penX += f.Glyph(r).Advance
	}
	return out
}

// Length returns the advance width of the widest line of s.
func (f *Font) Length(s string) float32 {
	w, _ := f.BoundingBox(s)
	return w
}

// BoundingBox returns the size of the box s occupies: the widest line
// advance and one line height per line.
func (f *Font) BoundingBox(s string) (width, height float32) {
	s = normalize(s)
	if s == "" {
		return 0, 0
	}
	var penX float32
	lines := 1
	for _, r := range s {
		if r == '\n' {
			width = max(width, penX)
			penX = 0
			lines++
			continue
		}
		penX += f.Glyph(r).Advance
	}
	width = max(width, penX)
	return width, float32(lines) * f.LineHeight()
}
