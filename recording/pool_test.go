package recording

import (
	"image"
	"image/color"
	"testing"
)

func TestResourcePoolImages(t *testing.T) {
	pool := NewResourcePool()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(1, 1, color.RGBA{1, 2, 3, 4})

	ref := pool.AddImage(img)
	if pool.ImageCount() != 1 {
		t.Fatalf("ImageCount() = %d, want 1", pool.ImageCount())
	}

	// The pool holds a copy.
	img.SetRGBA(1, 1, color.RGBA{})
	if got := pool.GetImage(ref).RGBAAt(1, 1); got != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("pooled pixel = %v, want {1 2 3 4}", got)
	}

	if pool.GetImage(ImageRef(5)) != nil {
		t.Error("GetImage with out-of-range ref should return nil")
	}
}

func TestResourcePoolSubImage(t *testing.T) {
	pool := NewResourcePool()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(2, 2, color.RGBA{9, 9, 9, 9})
	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)

	got := pool.GetImage(pool.AddImage(sub))
	if got.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, want (0,0)-(2,2)", got.Bounds())
	}
	if px := got.RGBAAt(0, 0); px != (color.RGBA{9, 9, 9, 9}) {
		t.Errorf("origin pixel = %v, want {9 9 9 9}", px)
	}
}

func TestResourcePoolClearAndClone(t *testing.T) {
	pool := NewResourcePool()
	pool.AddImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	clone := pool.Clone()
	pool.Clear()

	if pool.ImageCount() != 0 {
		t.Errorf("ImageCount() after Clear = %d, want 0", pool.ImageCount())
	}
	if clone.ImageCount() != 1 {
		t.Errorf("clone ImageCount() = %d, want 1", clone.ImageCount())
	}
}
