package lux

import (
	"fmt"

	"github.com/gogpu/lux/render"
	"github.com/gogpu/lux/text"
)

// DefaultFontSize is the pixel size of the font used when nothing else was
// selected.
const DefaultFontSize = 20

type fontKey struct {
	name string
	size float64
}

// retiredAtlas is an atlas texture replaced by a newer upload. Canvases of
// the same backend may still have batches drawing with it.
type retiredAtlas struct {
	backend render.Backend
	texture TextureID
}

type fontEntry struct {
	font *text.Font

	// Atlas texture uploaded to backend, as of atlas version.
	backend render.Backend
	texture TextureID
	version uint64
}

// FontCache holds parsed fonts keyed by name and size, and tracks the
// current font used by Text.
//
// Sizes of an already loaded name are created on first use. When no font
// was loaded, the built-in Go Mono font at DefaultFontSize is used.
//
// A FontCache may be shared by several windows; each font atlas is
// uploaded to the backend that draws with it. Replaced atlas textures are
// destroyed when the frame or window using the backend closes. It is not
// safe for concurrent use.
type FontCache struct {
	data    map[string][]byte
	fonts   map[fontKey]*fontEntry
	retired []retiredAtlas
	current fontKey
}

// NewFontCache returns an empty cache.
func NewFontCache() *FontCache {
	return &FontCache{
		data:  make(map[string][]byte),
		fonts: make(map[fontKey]*fontEntry),
	}
}

// Load parses ttf as font name at size pixels. The first font loaded
// becomes the current font.
func (fc *FontCache) Load(name string, size float64, ttf []byte) error {
	f, err := text.Parse(name, ttf, size)
	if err != nil {
		return err
	}
	fc.data[name] = ttf
	key := fontKey{name, size}
	if old, ok := fc.fonts[key]; ok {
		fc.retire(old)
	}
	fc.fonts[key] = &fontEntry{font: f}
	if fc.current.name == "" {
		fc.current = key
	}
	return nil
}

// LoadBuiltin loads one of the fonts shipped with the text package, such
// as text.MonoName.
func (fc *FontCache) LoadBuiltin(name string, size float64) error {
	ttf, err := text.Builtin(name)
	if err != nil {
		return err
	}
	return fc.Load(name, size, ttf)
}

// Use makes the font name at size the current font. It returns a
// *FontNotLoadedError when name was never loaded.
func (fc *FontCache) Use(name string, size float64) error {
	if _, err := fc.entry(name, size); err != nil {
		return err
	}
	fc.current = fontKey{name, size}
	return nil
}

// Current returns the current font, loading the default font when no font
// was loaded yet.
func (fc *FontCache) Current() (*text.Font, error) {
	e, err := fc.currentEntry()
	if err != nil {
		return nil, err
	}
	return e.font, nil
}

// CurrentName returns the name and size of the current font.
func (fc *FontCache) CurrentName() (string, float64) {
	return fc.current.name, fc.current.size
}

// Font returns the font name at size.
func (fc *FontCache) Font(name string, size float64) (*text.Font, error) {
	e, err := fc.entry(name, size)
	if err != nil {
		return nil, err
	}
	return e.font, nil
}

// Clear drops the font name at size. Its atlas texture is destroyed with
// the other retired atlases.
func (fc *FontCache) Clear(name string, size float64) {
	key := fontKey{name, size}
	if e, ok := fc.fonts[key]; ok {
		fc.retire(e)
		delete(fc.fonts, key)
	}
}

// Close releases every atlas texture, retired or not.
func (fc *FontCache) Close() {
	for _, e := range fc.fonts {
		e.destroy()
	}
	for _, r := range fc.retired {
		r.backend.DestroyTexture(r.texture)
	}
	fc.retired = nil
}

// retire detaches the atlas texture of e without destroying it.
func (fc *FontCache) retire(e *fontEntry) {
	if e.texture != 0 && e.backend != nil {
		fc.retired = append(fc.retired, retiredAtlas{e.backend, e.texture})
	}
	e.texture = 0
	e.backend = nil
}

// sweep destroys the retired atlas textures of b. Nothing drawing on b may
// have a batch pending.
func (fc *FontCache) sweep(b render.Backend) {
	kept := fc.retired[:0]
	for _, r := range fc.retired {
		if r.backend == b {
			b.DestroyTexture(r.texture)
			continue
		}
		kept = append(kept, r)
	}
	clear(fc.retired[len(kept):])
	fc.retired = kept
}

// release drops the atlas textures uploaded to b.
func (fc *FontCache) release(b render.Backend) {
	fc.sweep(b)
	for _, e := range fc.fonts {
		if e.backend == b {
			e.destroy()
		}
	}
}

func (fc *FontCache) currentEntry() (*fontEntry, error) {
	key := fc.current
	if key.name == "" {
		if err := fc.LoadBuiltin(text.MonoName, DefaultFontSize); err != nil {
			return nil, err
		}
		key = fontKey{text.MonoName, DefaultFontSize}
	}
	return fc.entry(key.name, key.size)
}

// entry returns the cached font, parsing a new size of a known name.
func (fc *FontCache) entry(name string, size float64) (*fontEntry, error) {
	key := fontKey{name, size}
	if e, ok := fc.fonts[key]; ok {
		return e, nil
	}
	ttf, ok := fc.data[name]
	if !ok {
		return nil, &FontNotLoadedError{Name: name, Size: size}
	}
	f, err := text.Parse(name, ttf, size)
	if err != nil {
		return nil, err
	}
	e := &fontEntry{font: f}
	fc.fonts[key] = e
	return e, nil
}

// atlasTexture returns the texture holding the font atlas on the canvas
// backend, uploading the atlas again when glyphs were added since the last
// upload. The stale texture is retired, since batches of other canvases may
// still sample it.
func (c *Canvas) atlasTexture(e *fontEntry) (TextureID, error) {
	atlas := e.font.Atlas()
	if e.texture != 0 && e.backend == c.backend && e.version == atlas.Version() {
		return e.texture, nil
	}
	c.fonts.retire(e)
	id, err := c.backend.NewTexture(atlas.Image())
	if err != nil {
		return 0, fmt.Errorf("upload font atlas %q: %w", e.font.Name(), err)
	}
	e.backend = c.backend
	e.texture = id
	e.version = atlas.Version()
	Logger().Debug("font atlas uploaded",
		"font", e.font.Name(), "size", e.font.Size(), "glyphs", atlas.Len(), "texture", id)
	return id, nil
}

func (e *fontEntry) destroy() {
	if e.texture != 0 && e.backend != nil {
		e.backend.DestroyTexture(e.texture)
	}
	e.texture = 0
	e.backend = nil
}
