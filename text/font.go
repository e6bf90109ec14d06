package text

import (
	"bytes"
	"fmt"
	"image"
	"unicode"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Font is one font face at one pixel size together with its glyph atlas.
type Font struct {
	name    string
	family  string
	size    float64
	face    font.Face
	metrics Metrics
	atlas   *Atlas
	maxAdv  float32
}

// Parse loads TTF/OTF data as a face of size pixels. The font is
// registered under name; Family reports the family stored in the file.
func Parse(name string, ttf []byte, size float64) (*Font, error) {
	if len(ttf) == 0 {
		return nil, ErrEmptyFontData
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	desc, err := gotext.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("text: parse %q: %w", name, err)
	}
	otf, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse %q: %w", name, err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: face %q at %v: %w", name, size, err)
	}

	m := face.Metrics()
	f := &Font{
		name:   name,
		family: desc.Describe().Family,
		size:   size,
		face:   face,
		metrics: Metrics{
			Ascent:  fixedToFloat32(m.Ascent),
			Descent: fixedToFloat32(m.Descent),
			Height:  fixedToFloat32(m.Height),
		},
		atlas: newAtlas(),
	}
	for r := rune(' '); r <= '~'; r++ {
		f.Glyph(r)
	}
	return f, nil
}

// Name returns the name the font was parsed under.
func (f *Font) Name() string { return f.name }

// Family returns the family name stored in the font file.
func (f *Font) Family() string { return f.family }

// Size returns the pixel size.
func (f *Font) Size() float64 { return f.size }

// Metrics returns the vertical metrics.
func (f *Font) Metrics() Metrics { return f.metrics }

// Atlas returns the glyph atlas.
func (f *Font) Atlas() *Atlas { return f.atlas }

// LineHeight returns the distance between consecutive lines.
func (f *Font) LineHeight() float32 { return f.metrics.LineHeight() }

// MaxAdvance returns the largest advance among the rasterized glyphs.
func (f *Font) MaxAdvance() float32 { return f.maxAdv }

// Glyph returns the glyph for r, rasterizing it on first use.
// Runes the font cannot map fall back to its replacement glyph.
func (f *Font) Glyph(r rune) Glyph {
	if g, ok := f.atlas.lookup(r); ok {
		return g
	}
	dr, mask, maskp, adv, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		if r != unicode.ReplacementChar {
			g := f.Glyph(unicode.ReplacementChar)
			g.Rune = r
			f.atlas.glyphs[r] = g
			return g
		}
		// Not even a replacement glyph: a blank advance.
		a, _ := f.face.GlyphAdvance(' ')
		return f.atlas.insert(Glyph{Rune: r, Advance: fixedToFloat32(a)}, nil, image.Point{}, 0, 0)
	}
	g := Glyph{
		Rune:    r,
		OffsetX: float32(dr.Min.X),
		OffsetY: float32(dr.Min.Y),
		Advance: fixedToFloat32(adv),
	}
	f.maxAdv = max(f.maxAdv, g.Advance)
	return f.atlas.insert(g, mask, maskp, dr.Dx(), dr.Dy())
}

// Close releases the face.
func (f *Font) Close() error {
	return f.face.Close()
}

func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64
}

// normalize returns s in NFC so combining sequences map to single glyphs.
func normalize(s string) string {
	return norm.NFC.String(s)
}
