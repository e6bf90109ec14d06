//go:build !(js && wasm)

package software

import (
	"fmt"
	"image"

	"github.com/gogpu/lux/backend"
	"github.com/gogpu/lux/render"
)

// NewTexture stores a copy of img.
func (b *Backend) NewTexture(img *image.RGBA) (render.TextureID, error) {
	if b.closed {
		return 0, render.ErrClosed
	}
	r := img.Bounds()
	if r.Empty() {
		return 0, fmt.Errorf("software: texture %dx%d: %w", r.Dx(), r.Dy(), render.ErrInvalidSize)
	}
	cp := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		row := img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):]
		copy(cp.Pix[y*cp.Stride:(y+1)*cp.Stride], row[:4*r.Dx()])
	}
	return b.add(&texture{img: cp}), nil
}

// NewRenderTexture creates a transparent drawable texture.
func (b *Backend) NewRenderTexture(width, height int) (render.TextureID, error) {
	if b.closed {
		return 0, render.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("software: render texture %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	rt := newTarget(width, height)
	rt.pipe.Clear(0, 0, 0, 0)
	return b.add(&texture{rt: rt}), nil
}

func (b *Backend) add(t *texture) render.TextureID {
	b.nextID++
	b.textures[b.nextID] = t
	backend.Logger().Debug("software: texture created", "id", b.nextID, "target", t.rt != nil)
	return b.nextID
}

// TextureSize returns the size of a texture.
func (b *Backend) TextureSize(id render.TextureID) (int, int, error) {
	tex, ok := b.textures[id]
	if !ok || b.closed {
		return 0, 0, fmt.Errorf("software: texture %d: %w", id, render.ErrUnknownTexture)
	}
	if tex.rt != nil {
		w, h := tex.rt.size()
		return w, h, nil
	}
	return tex.img.Rect.Dx(), tex.img.Rect.Dy(), nil
}

// DestroyTexture forgets a texture.
func (b *Backend) DestroyTexture(id render.TextureID) {
	tex, ok := b.textures[id]
	if !ok {
		return
	}
	if tex.rt != nil {
		tex.rt.pipe.Close()
	}
	delete(b.textures, id)
}

// sample returns the pixels a textured draw samples from. Render textures
// are snapshotted so a draw may read the target it renders into.
func (b *Backend) sample(id render.TextureID) (*image.RGBA, error) {
	tex, ok := b.textures[id]
	if !ok {
		return nil, fmt.Errorf("software: texture %d: %w", id, render.ErrUnknownTexture)
	}
	if tex.img != nil {
		return tex.img, nil
	}
	w, h := tex.rt.size()
	return &image.RGBA{Pix: tex.rt.pipe.GetColorBuffer(), Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}, nil
}

// nearest samples img at normalized coordinates with clamp-to-edge.
func nearest(img *image.RGBA, u, v float32) [4]float32 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x := min(max(int(u*float32(w)), 0), w-1)
	y := min(max(int(v*float32(h)), 0), h-1)
	i := y*img.Stride + 4*x
	p := img.Pix[i : i+4 : i+4]
	return [4]float32{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
}
