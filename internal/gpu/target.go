//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// texture is a GPU texture and its sampled view. Render textures also
// carry a target.
type texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	rt     *target
}

// target is a color attachment with its stencil buffer.
type target struct {
	color       hal.Texture
	colorView   hal.TextureView
	stencil     hal.Texture
	stencilView hal.TextureView
	width       int
	height      int

	// owned is false when color belongs to a texture.
	owned bool
}

func createColorTexture(device hal.Device, label string, width, height int, usage gputypes.TextureUsage) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}, // #nosec G115 -- validated positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        colorFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

// newTarget creates a target. When color is nil a color texture is
// created and owned by the target.
func newTarget(device hal.Device, label string, width, height int, color hal.Texture, colorView hal.TextureView) (*target, error) {
	t := &target{color: color, colorView: colorView, width: width, height: height}
	if color == nil {
		usage := gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc | gputypes.TextureUsageTextureBinding
		var err error
		if t.color, t.colorView, err = createColorTexture(device, label, width, height, usage); err != nil {
			return nil, err
		}
		t.owned = true
	}
	stencil, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label + "_stencil",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}, // #nosec G115 -- validated positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        stencilFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("create %s stencil: %w", label, err)
	}
	t.stencil = stencil
	t.stencilView, err = device.CreateTextureView(stencil, &hal.TextureViewDescriptor{
		Label:         label + "_stencil_view",
		Format:        stencilFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("create %s stencil view: %w", label, err)
	}
	return t, nil
}

func (t *target) destroy(device hal.Device) {
	if t.stencilView != nil {
		device.DestroyTextureView(t.stencilView)
	}
	if t.stencil != nil {
		device.DestroyTexture(t.stencil)
	}
	if t.owned {
		if t.colorView != nil {
			device.DestroyTextureView(t.colorView)
		}
		if t.color != nil {
			device.DestroyTexture(t.color)
		}
	}
	*t = target{}
}

func (t *texture) destroy(device hal.Device) {
	if t.rt != nil {
		t.rt.destroy(device)
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
	}
	*t = texture{}
}
