package lux

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/lux/render"
)

// Window defaults.
const (
	DefaultWidth   = 800
	DefaultHeight  = 500
	DefaultTitle   = "Lux"
	DefaultSamples = 1
)

// WindowOption configures a Window during creation.
//
// Example:
//
//	w, err := lux.NewWindow(
//	    lux.WithSize(640, 480),
//	    lux.WithBackend("software"),
//	)
type WindowOption func(*windowConfig)

type windowConfig struct {
	width, height int
	title         string
	samples       int
	clearColor    Color
	backendName   string
	backend       render.Backend
	poolCapacity  int
	device        gpucontext.DeviceProvider
	fonts         *FontCache
}

func defaultConfig() windowConfig {
	return windowConfig{
		width:        DefaultWidth,
		height:       DefaultHeight,
		title:        DefaultTitle,
		samples:      DefaultSamples,
		clearColor:   Black,
		poolCapacity: DefaultPoolCapacity,
	}
}

// WithSize sets the window size in pixels.
func WithSize(width, height int) WindowOption {
	return func(c *windowConfig) {
		c.width, c.height = width, height
	}
}

// WithTitle sets the window title.
func WithTitle(title string) WindowOption {
	return func(c *windowConfig) {
		c.title = title
	}
}

// WithSamples sets the number of samples per pixel requested from the
// backend.
func WithSamples(n int) WindowOption {
	return func(c *windowConfig) {
		c.samples = n
	}
}

// WithClearColor sets the color Frame clears to.
func WithClearColor(col Color) WindowOption {
	return func(c *windowConfig) {
		c.clearColor = col
	}
}

// WithBackend selects a registered backend by name instead of the best
// available one.
func WithBackend(name string) WindowOption {
	return func(c *windowConfig) {
		c.backendName = name
	}
}

// WithBackendInstance makes the window draw with b, which the caller
// created. The window closes b when it is closed.
func WithBackendInstance(b render.Backend) WindowOption {
	return func(c *windowConfig) {
		c.backend = b
	}
}

// WithPoolCapacity sets the number of pooled geometry buffers per kind.
// Zero disables pooling: every batch allocates.
func WithPoolCapacity(n int) WindowOption {
	return func(c *windowConfig) {
		c.poolCapacity = n
	}
}

// WithDeviceProvider shares the GPU device of the host application with
// the gpu backend.
//
// Example:
//
//	w, err := lux.NewWindow(lux.WithDeviceProvider(app.DeviceProvider()))
func WithDeviceProvider(p gpucontext.DeviceProvider) WindowOption {
	return func(c *windowConfig) {
		c.device = p
	}
}

// WithFontCache shares a font cache between windows.
func WithFontCache(fc *FontCache) WindowOption {
	return func(c *windowConfig) {
		c.fonts = fc
	}
}
