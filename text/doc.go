// Package text rasterizes fonts into glyph atlases for lux.
//
// A Font is one TrueType/OpenType face at one pixel size. Its glyphs are
// rasterized with golang.org/x/image/font/opentype into an Atlas image as
// white coverage, so the glyph color comes from the color multiplier of the
// textured draw that samples it.
//
// Printable ASCII is rasterized when a Font is parsed; other runes are added
// on first use and bump the atlas version so callers know to re-upload it.
//
// Layout is deliberately simple: glyphs advance by their horizontal advance,
// '\n' starts a new line and input is NFC-normalized first. There is no
// shaping, kerning or bidi.
//
// # Example usage
//
//	f, err := text.Parse("mono", text.MustBuiltin(text.MonoName), 20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, g := range f.Layout("Hello") {
//	    // draw f.Atlas().Image() sub-rectangle g.Bounds at (g.X, g.Y)
//	}
package text
