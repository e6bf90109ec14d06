package lux

import (
	"errors"
	"fmt"

	"github.com/gogpu/lux/backend"
	"github.com/gogpu/lux/render"
)

// Sentinel errors.
var (
	// ErrNoBackend is returned by NewWindow when no backend could be opened.
	ErrNoBackend = backend.ErrNoBackend

	// ErrClosed is returned when using a closed window, frame or texture.
	ErrClosed = errors.New("lux: closed")

	// ErrInvalidSize is returned for non-positive window or texture sizes.
	ErrInvalidSize = render.ErrInvalidSize

	// ErrTextureNotFound is returned when a texture ID is unknown to the backend.
	ErrTextureNotFound = render.ErrUnknownTexture

	// ErrNoDevice is returned when the gpu backend is requested without a
	// usable GPU device.
	ErrNoDevice = render.ErrNoDevice

	// ErrNoReadback is returned by ReadPixels when the backend cannot copy
	// pixels back to memory.
	ErrNoReadback = errors.New("lux: backend does not support reading pixels")

	// ErrFrameOpen is returned by Window.Frame while the previous frame is
	// not closed.
	ErrFrameOpen = errors.New("lux: previous frame not closed")
)

// FontNotLoadedError is returned when a font is used before it is loaded.
type FontNotLoadedError struct {
	Name string
	Size float64
}

func (e *FontNotLoadedError) Error() string {
	return fmt.Sprintf("lux: font %q at size %v is not loaded", e.Name, e.Size)
}
