package recording

import (
	"image"
)

// ResourcePool stores resources referenced by recording commands.
// Each Add operation copies the image to ensure immutability.
//
// ResourcePool is not safe for concurrent use. If concurrent access is needed,
// external synchronization must be provided.
type ResourcePool struct {
	images []*image.RGBA
}

// NewResourcePool creates an empty resource pool with pre-allocated capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		images: make([]*image.RGBA, 0, 8),
	}
}

// AddImage adds a copy of img to the pool and returns its reference.
func (p *ResourcePool) AddImage(img *image.RGBA) ImageRef {
	var cp *image.RGBA
	if img != nil {
		r := img.Bounds()
		cp = image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		for y := 0; y < r.Dy(); y++ {
			copy(cp.Pix[y*cp.Stride:(y+1)*cp.Stride], img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):])
		}
	}
	p.images = append(p.images, cp)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// GetImage returns the image for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetImage(ref ImageRef) *image.RGBA {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of images in the pool.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}

// Clear removes all resources from the pool.
func (p *ResourcePool) Clear() {
	clear(p.images)
	p.images = p.images[:0]
}

// Clone returns a shallow copy of the pool. Pooled images are never
// modified, so they are shared.
func (p *ResourcePool) Clone() *ResourcePool {
	return &ResourcePool{images: append([]*image.RGBA(nil), p.images...)}
}
