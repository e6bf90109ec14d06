package lux

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/lux/backend"
	_ "github.com/gogpu/lux/backend/software"
	"github.com/gogpu/lux/recording"
	"github.com/gogpu/lux/render"
)

func newRecordingWindow(t *testing.T, opts ...WindowOption) (*Window, *recording.Recorder) {
	t.Helper()
	rec := recording.NewRecorder(100, 100)
	w, err := NewWindow(append([]WindowOption{WithBackendInstance(rec)}, opts...)...)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w, rec
}

func newSoftwareWindow(t *testing.T, width, height int) *Window {
	t.Helper()
	w, err := NewWindow(WithSize(width, height), WithBackend(backend.NameSoftware))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWindowDefaults(t *testing.T) {
	w, _ := newRecordingWindow(t)
	if w.Title() != DefaultTitle {
		t.Errorf("Title() = %q", w.Title())
	}
	// The size of a given backend wins over WithSize.
	if width, height := w.Size(); width != 100 || height != 100 || w.Width() != 100 || w.Height() != 100 {
		t.Errorf("Size() = %dx%d", width, height)
	}
	if w.ClearColor() != Black {
		t.Errorf("ClearColor() = %v", w.ClearColor())
	}
	if w.Backend().Name() != backend.NameRecording {
		t.Errorf("Backend() = %q", w.Backend().Name())
	}
	if w.Pools().ColorVertices.Cap() != DefaultPoolCapacity {
		t.Errorf("pool capacity = %d", w.Pools().ColorVertices.Cap())
	}
}

func TestWindowOptions(t *testing.T) {
	fonts := NewFontCache()
	w, _ := newRecordingWindow(t,
		WithTitle("demo"),
		WithClearColor(Blue),
		WithPoolCapacity(2),
		WithSamples(4),
		WithFontCache(fonts),
	)
	if w.Title() != "demo" || w.ClearColor() != Blue || w.Pools().Indices.Cap() != 2 || w.Fonts() != fonts {
		t.Errorf("options not applied: title %q, clear %v, pool %d", w.Title(), w.ClearColor(), w.Pools().Indices.Cap())
	}
	w.SetClearColor(Red)
	if w.ClearColor() != Red {
		t.Errorf("SetClearColor not applied")
	}
}

func TestNewWindowErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []WindowOption
		want error
	}{
		{"zero size", []WindowOption{WithSize(0, 10)}, ErrInvalidSize},
		{"negative size", []WindowOption{WithSize(10, -1)}, ErrInvalidSize},
		{"unknown backend", []WindowOption{WithBackend("vector-plotter")}, backend.ErrBackendNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWindow(tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewWindow error = %v, want %v", err, tt.want)
			}
			if w != nil {
				t.Error("NewWindow returned a window with an error")
			}
		})
	}
}

func TestFrameLifecycle(t *testing.T) {
	w, rec := newRecordingWindow(t, WithClearColor(Green))

	f, err := w.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if f.Window() != w || f.Width() != 100 || f.Height() != 100 {
		t.Errorf("frame does not match its window")
	}
	if _, err := w.Frame(); !errors.Is(err, ErrFrameOpen) {
		t.Errorf("second Frame error = %v, want ErrFrameOpen", err)
	}
	f.Rect(0, 0, 10, 10).Fill()
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}

	want := []recording.CommandType{recording.CmdClear, recording.CmdDrawColored, recording.CmdPresent}
	cmds := rec.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("commands = %d, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		if c.Type() != want[i] {
			t.Errorf("command %d = %v, want %v", i, c.Type(), want[i])
		}
	}
	if cl := cmds[0].(recording.ClearCommand); cl.Color != Green.Array() {
		t.Errorf("frame cleared to %v, want green", cl.Color)
	}
	if rec.Presents() != 1 {
		t.Errorf("Presents() = %d", rec.Presents())
	}

	f, err = w.ClearedFrame(Red)
	if err != nil {
		t.Fatalf("frame after Close: %v", err)
	}
	_ = f.Close()
}

func TestFrameCloseReturnsDrawError(t *testing.T) {
	w, rec := newRecordingWindow(t)
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("out of memory")
	rec.Fail(boom)
	f.Rect(0, 0, 10, 10).Fill()
	if err := f.Close(); !errors.Is(err, boom) {
		t.Errorf("Close() = %v, want %v", err, boom)
	}
	if rec.Presents() != 0 {
		t.Error("a failed frame was presented")
	}
	if err := f.Close(); !errors.Is(err, boom) {
		t.Errorf("second Close() = %v, want the same error", err)
	}
	// The window can start a new frame.
	rec.Fail(nil)
	f, err = w.Frame()
	if err != nil {
		t.Fatalf("Frame after a failed frame: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestPoolsSharedAcrossFrames(t *testing.T) {
	w, _ := newRecordingWindow(t)
	for range 3 {
		f, err := w.Frame()
		if err != nil {
			t.Fatal(err)
		}
		f.Rect(0, 0, 10, 10).Fill()
		f.Circle(0, 0, 10).Fill()
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}
		if got := w.Pools().ColorVertices.Available(); got != DefaultPoolCapacity {
			t.Errorf("available buffers after frame = %d, want %d", got, DefaultPoolCapacity)
		}
	}
}

func TestWindowResize(t *testing.T) {
	w, rec := newRecordingWindow(t)
	if err := w.Resize(200, 50); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if width, height := rec.Size(); width != 200 || height != 50 {
		t.Errorf("backend size = %dx%d", width, height)
	}
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if f.Width() != 200 || f.Height() != 50 {
		t.Errorf("frame size = %dx%d", f.Width(), f.Height())
	}
	if x, y := f.Current().Apply(200, 50); !near(x, 1) || !near(y, -1) {
		t.Errorf("bottom-right corner maps to (%v, %v)", x, y)
	}

	// The open frame would keep the old screen basis.
	if err := w.Resize(300, 300); !errors.Is(err, ErrFrameOpen) {
		t.Errorf("Resize with an open frame = %v, want ErrFrameOpen", err)
	}
	if width, height := rec.Size(); width != 200 || height != 50 {
		t.Errorf("backend resized under an open frame: %dx%d", width, height)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if err := w.Resize(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 5) = %v", err)
	}
	if err := w.Resize(300, 300); err != nil {
		t.Errorf("Resize after the frame closed: %v", err)
	}
}

func TestWindowClose(t *testing.T) {
	w, rec := newRecordingWindow(t)
	s, err := w.LoadTexture(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatal(err)
	}
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if err := f.DrawText("hello", 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if !rec.Closed() {
		t.Error("backend not closed")
	}
	destroyed := 0
	for _, c := range rec.Commands() {
		if c.Type() == recording.CmdDestroyTexture {
			destroyed++
		}
	}
	if destroyed != 2 {
		t.Errorf("destroyed textures = %d, want 2 (sprite and font atlas)", destroyed)
	}

	if _, err := w.Frame(); !errors.Is(err, ErrClosed) {
		t.Errorf("Frame after Close = %v", err)
	}
	if _, err := w.LoadTexture(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadTexture after Close = %v", err)
	}
	if _, err := w.NewDrawableTexture(4, 4); !errors.Is(err, ErrClosed) {
		t.Errorf("NewDrawableTexture after Close = %v", err)
	}
	if err := w.Resize(10, 10); !errors.Is(err, ErrClosed) {
		t.Errorf("Resize after Close = %v", err)
	}
	w.DestroyTexture(s) // no-op after Close
}

func TestWindowCloseSubmitsOpenFrame(t *testing.T) {
	w, rec := newRecordingWindow(t)
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	f.Rect(0, 0, 10, 10).Fill()

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := len(rec.ColorDraws()); got != 1 {
		t.Errorf("draws after Close = %d, want 1", got)
	}
	if rec.Presents() != 1 {
		t.Errorf("presents = %d, want 1", rec.Presents())
	}
	if err := f.Close(); err != nil {
		t.Errorf("Frame.Close after Window.Close = %v", err)
	}
}

func TestWindowCloseReturnsFrameError(t *testing.T) {
	w, rec := newRecordingWindow(t)
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	lost := errors.New("device lost")
	rec.Fail(lost)
	f.Rect(0, 0, 10, 10).Fill()

	if err := w.Close(); !errors.Is(err, lost) {
		t.Errorf("Close = %v, want the frame error", err)
	}
	if !rec.Closed() {
		t.Error("backend not closed after a frame error")
	}
}

func TestLoadTexture(t *testing.T) {
	w, rec := newRecordingWindow(t)

	// Non-RGBA images with an offset origin are converted.
	src := image.NewNRGBA(image.Rect(10, 10, 16, 13))
	s, err := w.LoadTexture(src)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if s.Width() != 6 || s.Height() != 3 {
		t.Errorf("sprite size = %dx%d", s.Width(), s.Height())
	}
	if width, height, err := rec.TextureSize(s.Texture()); err != nil || width != 6 || height != 3 {
		t.Errorf("backend texture = %dx%d, %v", width, height, err)
	}

	if _, err := w.LoadTexture(image.NewRGBA(image.Rect(0, 0, 0, 5))); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("empty image error = %v", err)
	}

	w.DestroyTexture(s)
	if _, _, err := rec.TextureSize(s.Texture()); !errors.Is(err, ErrTextureNotFound) {
		t.Errorf("texture still alive after DestroyTexture: %v", err)
	}
	w.DestroyTexture(s) // unknown textures are ignored
	w.DestroyTexture(nil)
}

func TestLoadTextureFile(t *testing.T) {
	w, _ := newRecordingWindow(t)
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 5, 7))
	path := filepath.Join(dir, "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s, err := w.LoadTextureFile(path)
	if err != nil {
		t.Fatalf("LoadTextureFile: %v", err)
	}
	if s.Width() != 5 || s.Height() != 7 {
		t.Errorf("sprite size = %dx%d", s.Width(), s.Height())
	}

	if _, err := w.LoadTextureFile(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := w.LoadTextureFile(bad); !errors.Is(err, image.ErrFormat) {
		t.Errorf("undecodable file error = %v", err)
	}
}

func TestDrawableTexture(t *testing.T) {
	w, rec := newRecordingWindow(t)
	dt, err := w.NewDrawableTexture(32, 16)
	if err != nil {
		t.Fatalf("NewDrawableTexture: %v", err)
	}
	if dt.Width() != 32 || dt.Height() != 16 {
		t.Errorf("canvas size = %dx%d", dt.Width(), dt.Height())
	}
	if s := dt.Sprite(); s.Width() != 32 || s.Height() != 16 || s.Texture() != dt.Target() {
		t.Errorf("Sprite() = %+v", s)
	}

	dt.Rect(0, 0, 8, 8).Fill()
	if err := dt.Close(); err != nil {
		t.Fatal(err)
	}
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	f.Sprite(dt.Sprite(), 10, 10).Draw()
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	cd := rec.ColorDraws()
	if len(cd) != 1 || cd[0].Params.Target != dt.Target() {
		t.Errorf("texture draws = %+v", cd)
	}
	td := rec.TexDraws()
	if len(td) != 1 || td[0].Texture != dt.Target() || td[0].Params.Target != render.Screen {
		t.Errorf("sprite draws = %+v", td)
	}

	if _, err := w.NewDrawableTexture(0, 4); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewDrawableTexture(0, 4) = %v", err)
	}
}

func TestReadPixelsUnsupported(t *testing.T) {
	w, _ := newRecordingWindow(t)
	if _, err := w.ReadPixels(); !errors.Is(err, ErrNoReadback) {
		t.Errorf("ReadPixels on a recorder = %v, want ErrNoReadback", err)
	}
	if err := w.SavePNG(filepath.Join(t.TempDir(), "out.png")); !errors.Is(err, ErrNoReadback) {
		t.Errorf("SavePNG on a recorder = %v", err)
	}
}

func TestSoftwareRendering(t *testing.T) {
	w := newSoftwareWindow(t, 40, 40)
	f, err := w.ClearedFrame(Black)
	if err != nil {
		t.Fatal(err)
	}
	f.Rect(0, 0, 20, 20).Color(Red).Fill()
	f.WithScissor(20, 0, 20, 40, func() {
		// Only the right half survives the scissor.
		f.Rect(0, 20, 40, 20).Color(Blue).Fill()
	})
	f.DrawStencil(StencilAllow, func() {
		f.Rect(20, 0, 20, 20).Fill()
	})
	f.DrawWithStencil(func() {
		f.Rect(0, 0, 40, 40).Color(Green).Fill()
	})
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	img, err := w.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"filled", 5, 5, color.RGBA{255, 0, 0, 255}},
		{"stencilled", 30, 5, color.RGBA{0, 255, 0, 255}},
		{"scissored out", 5, 30, color.RGBA{0, 0, 0, 255}},
		{"scissored in", 30, 30, color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel (%d, %d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSavePNG(t *testing.T) {
	w := newSoftwareWindow(t, 8, 8)
	f, err := w.ClearedFrame(Red)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := w.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(3, 3)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("saved pixel = %v, want red", got)
	}
}
