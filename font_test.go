package lux

import (
	"errors"
	"testing"

	"github.com/gogpu/lux/recording"
	"github.com/gogpu/lux/text"
)

func TestFontCacheDefault(t *testing.T) {
	fc := NewFontCache()
	f, err := fc.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if f.Name() != text.MonoName || f.Size() != DefaultFontSize {
		t.Errorf("default font = %q at %v, want %q at %v", f.Name(), f.Size(), text.MonoName, DefaultFontSize)
	}
	if name, size := fc.CurrentName(); name != text.MonoName || size != DefaultFontSize {
		t.Errorf("CurrentName() = %q, %v", name, size)
	}
}

func TestFontCacheUse(t *testing.T) {
	fc := NewFontCache()
	if err := fc.LoadBuiltin(text.RegularName, 12); err != nil {
		t.Fatal(err)
	}
	if err := fc.LoadBuiltin(text.MonoName, 16); err != nil {
		t.Fatal(err)
	}
	// The first loaded font becomes current.
	if name, size := fc.CurrentName(); name != text.RegularName || size != 12 {
		t.Errorf("CurrentName() = %q, %v", name, size)
	}

	if err := fc.Use(text.MonoName, 16); err != nil {
		t.Fatalf("Use: %v", err)
	}
	// Other sizes of a loaded font are created on demand.
	if err := fc.Use(text.RegularName, 30); err != nil {
		t.Fatalf("Use of a new size: %v", err)
	}
	f, err := fc.Current()
	if err != nil || f.Size() != 30 {
		t.Errorf("Current() = %v, %v", f, err)
	}

	err = fc.Use("Comic Sans", 12)
	var notLoaded *FontNotLoadedError
	if !errors.As(err, &notLoaded) {
		t.Fatalf("Use of an unknown font error = %v, want *FontNotLoadedError", err)
	}
	if notLoaded.Name != "Comic Sans" || notLoaded.Size != 12 {
		t.Errorf("error = %+v", notLoaded)
	}
	if name, _ := fc.CurrentName(); name != text.RegularName {
		t.Errorf("failed Use changed the current font to %q", name)
	}
}

func TestFontCacheLoadErrors(t *testing.T) {
	fc := NewFontCache()
	tests := []struct {
		name string
		load func() error
		want error
	}{
		{"empty data", func() error { return fc.Load("x", 12, nil) }, text.ErrEmptyFontData},
		{"bad size", func() error { return fc.LoadBuiltin(text.MonoName, 0) }, text.ErrInvalidSize},
		{"unknown builtin", func() error { return fc.LoadBuiltin("nope", 12) }, text.ErrUnknownBuiltin},
	}
	for _, tt := range tests {
		if err := tt.load(); !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
	if err := fc.Load("garbage", 12, []byte("not a font")); err == nil {
		t.Error("loading garbage succeeded")
	}
}

func TestFontCacheClear(t *testing.T) {
	fc := NewFontCache()
	if err := fc.LoadBuiltin(text.MonoName, 10); err != nil {
		t.Fatal(err)
	}
	a, _ := fc.Font(text.MonoName, 10)
	fc.Clear(text.MonoName, 10)
	b, err := fc.Font(text.MonoName, 10)
	if err != nil {
		t.Fatalf("Font after Clear: %v", err)
	}
	if a == b {
		t.Error("Clear kept the cached font")
	}
}

func textCommands(rec *recording.Recorder) (uploads, destroys, draws int) {
	for _, cmd := range rec.Commands() {
		switch cmd.Type() {
		case recording.CmdNewTexture:
			uploads++
		case recording.CmdDestroyTexture:
			destroys++
		case recording.CmdDrawTextured:
			draws++
		}
	}
	return uploads, destroys, draws
}

func TestTextDraw(t *testing.T) {
	c, rec := newTestCanvas(t)
	c.SetColor(Red)
	if err := c.DrawText("hi", 10, 10); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	if err := c.Text("ok", 10, 40).Color(Blue).Draw(); err != nil {
		t.Fatal(err)
	}
	flush(t, c)

	uploads, _, _ := textCommands(rec)
	if uploads != 1 {
		t.Errorf("atlas uploads = %d, want 1", uploads)
	}
	draws := rec.TexDraws()
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2 (colors differ)", len(draws))
	}
	if len(draws[0].Vertices) != 8 || len(draws[0].Indices) != 12 {
		t.Errorf("\"hi\" has %d vertices, %d indices; want 8, 12", len(draws[0].Vertices), len(draws[0].Indices))
	}
	if draws[0].ColorMult != Red.Array() || draws[1].ColorMult != Blue.Array() {
		t.Errorf("text colors = %v, %v", draws[0].ColorMult, draws[1].ColorMult)
	}
	if draws[0].Texture != draws[1].Texture {
		t.Error("both strings should sample the same atlas")
	}
}

func TestTextNewGlyphReuploadsAtlas(t *testing.T) {
	w, rec := newRecordingWindow(t)
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if err := f.DrawText("ab", 0, 0); err != nil {
		t.Fatal(err)
	}
	// Not among the preloaded ASCII glyphs.
	if err := f.DrawText("é", 0, 30); err != nil {
		t.Fatal(err)
	}
	if uploads, destroys, _ := textCommands(rec); uploads != 2 || destroys != 0 {
		t.Errorf("before Close: uploads, destroys = %d, %d; want 2, 0", uploads, destroys)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	uploads, destroys, draws := textCommands(rec)
	if uploads != 2 || destroys != 1 || draws != 2 {
		t.Errorf("uploads, destroys, draws = %d, %d, %d; want 2, 1, 2", uploads, destroys, draws)
	}
	// The stale atlas is destroyed after every draw that samples it.
	td := rec.TexDraws()
	cmds := rec.Commands()
	last := cmds[len(cmds)-1]
	if d, ok := last.(recording.DestroyTextureCommand); !ok || d.ID != td[0].Texture {
		t.Errorf("last command = %+v, want destroy of texture %d", last, td[0].Texture)
	}
}

func TestTextAtlasSharedWithDrawableTexture(t *testing.T) {
	w, rec := newRecordingWindow(t)
	f, err := w.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if err := f.DrawText("a", 0, 0); err != nil {
		t.Fatal(err)
	}

	dt, err := w.NewDrawableTexture(64, 32)
	if err != nil {
		t.Fatal(err)
	}
	// New glyphs replace the atlas texture the frame is still batching with.
	if err := dt.DrawText("Ωλ", 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := dt.Close(); err != nil {
		t.Fatalf("DrawableTexture.Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Frame.Close: %v", err)
	}

	td := rec.TexDraws()
	if len(td) != 2 {
		t.Fatalf("text draws = %d, want 2", len(td))
	}
	if td[0].Texture == td[1].Texture {
		t.Error("new glyphs drawn with the stale atlas")
	}
	_, destroys, _ := textCommands(rec)
	if destroys != 1 {
		t.Errorf("destroyed atlases = %d, want 1", destroys)
	}
}

func TestFontCacheCloseDestroysRetired(t *testing.T) {
	c, rec := newTestCanvas(t)
	if err := c.DrawText("a", 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.DrawText("é", 0, 0); err != nil {
		t.Fatal(err)
	}
	flush(t, c)
	if _, destroys, _ := textCommands(rec); destroys != 0 {
		t.Errorf("destroys before Close = %d, want 0", destroys)
	}
	c.Fonts().Close()
	if _, destroys, _ := textCommands(rec); destroys != 2 {
		t.Errorf("destroys after Close = %d, want 2 (stale and current atlas)", destroys)
	}
}

func TestTextErrors(t *testing.T) {
	c, rec := newTestCanvas(t)
	err := c.Text("x", 0, 0).Font("Missing", 10).Draw()
	var notLoaded *FontNotLoadedError
	if !errors.As(err, &notLoaded) {
		t.Errorf("Draw with an unknown font error = %v", err)
	}
	if err := c.DrawText("", 0, 0); err != nil {
		t.Errorf("empty text: %v", err)
	}
	if err := c.DrawText("   ", 0, 0); err != nil {
		t.Errorf("blank text: %v", err)
	}
	flush(t, c)
	if got := rec.DrawCount(); got != 0 {
		t.Errorf("draws = %d, want 0", got)
	}
}

func TestTextFontSize(t *testing.T) {
	c, _ := newTestCanvas(t)
	if err := c.Text("A", 0, 0).FontSize(40).Draw(); err != nil {
		t.Fatalf("FontSize: %v", err)
	}
	if _, err := c.Fonts().Font(text.MonoName, 40); err != nil {
		t.Errorf("size 40 not cached: %v", err)
	}
}

func TestMeasureText(t *testing.T) {
	c, _ := newTestCanvas(t)
	w1, h1, err := c.MeasureText("abc")
	if err != nil {
		t.Fatal(err)
	}
	w2, h2, _ := c.MeasureText("abc\nabcdef")
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("MeasureText = %v, %v", w1, h1)
	}
	// Go Mono is monospaced.
	if !near(w2, 2*w1) || !near(h2, 2*h1) {
		t.Errorf("two lines = %v x %v, want %v x %v", w2, h2, 2*w1, 2*h1)
	}
}
