//go:build !nogpu

package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/lux/render"
	"github.com/gogpu/wgpu/hal"
)

// NewTexture uploads img as a sampled texture.
func (r *Renderer) NewTexture(img *image.RGBA) (render.TextureID, error) {
	if r.closed {
		return 0, render.ErrClosed
	}
	size := img.Rect.Size()
	if size.X <= 0 || size.Y <= 0 {
		return 0, fmt.Errorf("gpu: texture %dx%d: %w", size.X, size.Y, render.ErrInvalidSize)
	}
	tex, view, err := createColorTexture(r.dev.Device, "lux_texture", size.X, size.Y,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return 0, fmt.Errorf("gpu: %w", err)
	}

	rowBytes := size.X * 4
	pix := img.Pix
	if img.Stride != rowBytes {
		pix = make([]byte, rowBytes*size.Y)
		for y := 0; y < size.Y; y++ {
			copy(pix[y*rowBytes:(y+1)*rowBytes], img.Pix[y*img.Stride:])
		}
	}
	w, h := uint32(size.X), uint32(size.Y) // #nosec G115 -- positive size
	err = r.dev.Queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		r.dev.Device.DestroyTextureView(view)
		r.dev.Device.DestroyTexture(tex)
		return 0, fmt.Errorf("gpu: upload texture: %w", err)
	}
	return r.add(&texture{tex: tex, view: view, width: size.X, height: size.Y}), nil
}

// NewRenderTexture creates a transparent texture that can be drawn into
// and sampled.
func (r *Renderer) NewRenderTexture(width, height int) (render.TextureID, error) {
	if r.closed {
		return 0, render.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("gpu: render texture %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	usage := gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding |
		gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst
	tex, view, err := createColorTexture(r.dev.Device, "lux_render_texture", width, height, usage)
	if err != nil {
		return 0, fmt.Errorf("gpu: %w", err)
	}
	rt, err := newTarget(r.dev.Device, "lux_render_texture", width, height, tex, view)
	if err != nil {
		r.dev.Device.DestroyTextureView(view)
		r.dev.Device.DestroyTexture(tex)
		return 0, fmt.Errorf("gpu: %w", err)
	}
	t := &texture{tex: tex, view: view, width: width, height: height, rt: rt}

	transparent := [4]float32{}
	var zero uint8
	pass, err := r.pass(rt, &transparent, &zero)
	if err != nil {
		t.destroy(r.dev.Device)
		return 0, err
	}
	pass.End()
	return r.add(t), nil
}

func (r *Renderer) add(t *texture) render.TextureID {
	r.nextID++
	r.textures[r.nextID] = t
	return r.nextID
}

// TextureSize returns the size of a texture.
func (r *Renderer) TextureSize(id render.TextureID) (int, int, error) {
	if r.closed {
		return 0, 0, render.ErrClosed
	}
	t, ok := r.textures[id]
	if !ok {
		return 0, 0, fmt.Errorf("gpu: texture %d: %w", id, render.ErrUnknownTexture)
	}
	return t.width, t.height, nil
}

// DestroyTexture releases a texture after the pending frame is presented.
func (r *Renderer) DestroyTexture(id render.TextureID) {
	if r.closed {
		return
	}
	t, ok := r.textures[id]
	if !ok {
		return
	}
	delete(r.textures, id)
	r.doomed = append(r.doomed, t)
}
