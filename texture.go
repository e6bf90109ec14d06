package lux

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding for LoadTextureFile
	_ "image/jpeg" // register JPEG decoding for LoadTextureFile
	_ "image/png"  // register PNG decoding for LoadTextureFile
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoding for LoadTextureFile
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoding for LoadTextureFile
)

// LoadTexture uploads img as a texture and returns a sprite covering it.
// Textures are immutable once created.
func (w *Window) LoadTexture(img image.Image) (*Sprite, error) {
	if w.closed {
		return nil, ErrClosed
	}
	rgba := toRGBA(img)
	size := rgba.Rect.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("lux: texture %dx%d: %w", size.X, size.Y, ErrInvalidSize)
	}
	id, err := w.backend.NewTexture(rgba)
	if err != nil {
		return nil, fmt.Errorf("lux: create texture: %w", err)
	}
	w.textures[id] = struct{}{}
	Logger().Debug("texture created", "id", id, "width", size.X, "height", size.Y)
	return NewSprite(id, size.X, size.Y), nil
}

// LoadTextureFile decodes an image file and uploads it as a texture.
// PNG, JPEG, GIF, BMP and WebP files are supported.
func (w *Window) LoadTextureFile(path string) (*Sprite, error) {
	f, err := os.Open(path) // #nosec G304 -- caller chooses the texture path
	if err != nil {
		return nil, fmt.Errorf("lux: load texture: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("lux: decode %s: %w", path, err)
	}
	Logger().Debug("texture decoded", "path", path, "format", format)
	return w.LoadTexture(img)
}

// DestroyTexture releases the texture behind s. Sprites over the same
// texture must not be drawn afterwards.
func (w *Window) DestroyTexture(s *Sprite) {
	if w.closed || s == nil {
		return
	}
	if _, ok := w.textures[s.texture]; !ok {
		return
	}
	delete(w.textures, s.texture)
	w.backend.DestroyTexture(s.texture)
}

// toRGBA returns img as an *image.RGBA with a zero origin, converting
// when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// DrawableTexture is a texture that can be drawn into like a frame and
// then drawn onto other targets through its sprite.
type DrawableTexture struct {
	*Canvas
	sprite *Sprite
}

// NewDrawableTexture creates a transparent width x height texture to draw
// into. It shares the pools and fonts of the window.
func (w *Window) NewDrawableTexture(width, height int) (*DrawableTexture, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("lux: drawable texture %dx%d: %w", width, height, ErrInvalidSize)
	}
	id, err := w.backend.NewRenderTexture(width, height)
	if err != nil {
		return nil, fmt.Errorf("lux: create render texture: %w", err)
	}
	w.textures[id] = struct{}{}
	Logger().Debug("render texture created", "id", id, "width", width, "height", height)
	return &DrawableTexture{
		Canvas: NewCanvas(w.backend, id, width, height, w.pools, w.fonts),
		sprite: NewSprite(id, width, height),
	}, nil
}

// Sprite returns a sprite covering the texture. Flush the drawable
// texture before drawing the sprite elsewhere. It hides Canvas.Sprite;
// use d.Canvas.Sprite to draw a sprite into the texture.
func (d *DrawableTexture) Sprite() *Sprite { return d.sprite }

// Close flushes pending drawing into the texture and returns the first
// error seen. The texture stays valid.
func (d *DrawableTexture) Close() error {
	return d.Flush()
}
