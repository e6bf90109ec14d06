package lux

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/lux/backend"
	"github.com/gogpu/lux/render"
)

// Window is a drawing surface backed by a render.Backend. It owns the
// geometry pools shared by its frames and the textures it loads.
//
// A Window is used from one goroutine.
type Window struct {
	cfg      windowConfig
	backend  render.Backend
	pools    *Pools
	fonts    *FontCache
	frame    *Frame
	textures map[TextureID]struct{}
	closed   bool
}

// NewWindow opens a backend and returns a window drawing with it.
//
// Without WithBackend or WithBackendInstance the best registered backend
// that opens is used. Import backend packages for their side effects to
// register them:
//
//	import _ "github.com/gogpu/lux/backend/software"
func NewWindow(opts ...WindowOption) (*Window, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := cfg.backend
	if b != nil {
		cfg.width, cfg.height = b.Size()
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return nil, fmt.Errorf("lux: window %dx%d: %w", cfg.width, cfg.height, ErrInvalidSize)
	}
	if b == nil {
		bc := backend.Config{
			Width:   cfg.width,
			Height:  cfg.height,
			Title:   cfg.title,
			Samples: cfg.samples,
			Device:  cfg.device,
		}
		var err error
		if cfg.backendName != "" {
			b, err = backend.Open(cfg.backendName, bc)
		} else {
			b, err = backend.OpenBest(bc)
		}
		if err != nil {
			return nil, fmt.Errorf("lux: open backend: %w", err)
		}
	}

	if cfg.poolCapacity <= 0 {
		cfg.poolCapacity = 0
		Logger().Warn("geometry pool disabled, every batch allocates")
	}
	fonts := cfg.fonts
	if fonts == nil {
		fonts = NewFontCache()
	}

	Logger().Info("window opened",
		"title", cfg.title, "backend", b.Name(), "width", cfg.width, "height", cfg.height)
	return &Window{
		cfg:      cfg,
		backend:  b,
		pools:    NewPools(cfg.poolCapacity),
		fonts:    fonts,
		textures: make(map[TextureID]struct{}),
	}, nil
}

// Title returns the window title.
func (w *Window) Title() string { return w.cfg.title }

// Size returns the window size in pixels.
func (w *Window) Size() (width, height int) { return w.cfg.width, w.cfg.height }

// Width returns the window width in pixels.
func (w *Window) Width() int { return w.cfg.width }

// Height returns the window height in pixels.
func (w *Window) Height() int { return w.cfg.height }

// Backend returns the backend the window draws with.
func (w *Window) Backend() render.Backend { return w.backend }

// Fonts returns the font cache of the window.
func (w *Window) Fonts() *FontCache { return w.fonts }

// Pools returns the geometry pools shared by the frames of the window.
func (w *Window) Pools() *Pools { return w.pools }

// ClearColor returns the color Frame clears to.
func (w *Window) ClearColor() Color { return w.cfg.clearColor }

// SetClearColor changes the color Frame clears to.
func (w *Window) SetClearColor(c Color) { w.cfg.clearColor = c }

// Frame starts a frame cleared to the clear color.
func (w *Window) Frame() (*Frame, error) {
	return w.ClearedFrame(w.cfg.clearColor)
}

// ClearedFrame starts a frame cleared to c. Only one frame can be open at
// a time.
func (w *Window) ClearedFrame(c Color) (*Frame, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if w.frame != nil {
		return nil, ErrFrameOpen
	}
	f := &Frame{
		Canvas: NewCanvas(w.backend, render.Screen, w.cfg.width, w.cfg.height, w.pools, w.fonts),
		window: w,
	}
	f.Clear(c)
	w.frame = f
	return f, nil
}

// Resize changes the window size. Frames started afterwards use the new
// size and screen basis. It returns ErrFrameOpen while a frame is open.
func (w *Window) Resize(width, height int) error {
	if w.closed {
		return ErrClosed
	}
	if w.frame != nil {
		return ErrFrameOpen
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("lux: resize to %dx%d: %w", width, height, ErrInvalidSize)
	}
	if err := w.backend.Resize(width, height); err != nil {
		return fmt.Errorf("lux: resize: %w", err)
	}
	w.cfg.width, w.cfg.height = width, height
	Logger().Debug("window resized", "width", width, "height", height)
	return nil
}

// ReadPixels copies the window contents into an image. It returns
// ErrNoReadback when the backend cannot read pixels back.
func (w *Window) ReadPixels() (*image.RGBA, error) {
	if w.closed {
		return nil, ErrClosed
	}
	r, ok := w.backend.(render.Reader)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoReadback, w.backend.Name())
	}
	img, err := r.ReadPixels(render.Screen)
	if err != nil {
		return nil, fmt.Errorf("lux: read pixels: %w", err)
	}
	return img, nil
}

// SavePNG writes the window contents to a PNG file.
func (w *Window) SavePNG(path string) (err error) {
	img, err := w.ReadPixels()
	if err != nil {
		return err
	}
	f, err := os.Create(path) // #nosec G304 -- caller chooses the output path
	if err != nil {
		return fmt.Errorf("lux: save png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("lux: save png: %w", cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("lux: save png: %w", err)
	}
	return nil
}

// Close closes the open frame, if any, releases the textures of the window
// and closes its backend. It returns the error of the open frame joined
// with the backend error. Closing twice is a no-op.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	var frameErr error
	if w.frame != nil {
		if err := w.frame.Close(); err != nil {
			frameErr = fmt.Errorf("lux: close frame: %w", err)
		}
	}
	w.closed = true
	w.fonts.release(w.backend)
	for id := range w.textures {
		w.backend.DestroyTexture(id)
	}
	clear(w.textures)
	Logger().Info("window closed", "title", w.cfg.title)
	if err := w.backend.Close(); err != nil {
		return errors.Join(frameErr, fmt.Errorf("lux: close backend: %w", err))
	}
	return frameErr
}
