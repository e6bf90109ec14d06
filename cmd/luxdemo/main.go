// Command luxdemo draws a demonstration frame with lux and saves it as a
// PNG image.
//
// Usage:
//
//	luxdemo -width 800 -height 500 -output demo.png -backend software
//
// Without -backend the best available backend is used.
package main

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/gogpu/lux"
	"github.com/gogpu/lux/backend"
	_ "github.com/gogpu/lux/backend/software"
	"github.com/gogpu/lux/recording"
	"github.com/gogpu/lux/text"
)

func main() {
	var (
		width   = flag.Int("width", lux.DefaultWidth, "image width")
		height  = flag.Int("height", lux.DefaultHeight, "image height")
		output  = flag.String("output", "demo.png", "output file")
		name    = flag.String("backend", "", "backend: "+strings.Join(backend.Available(), ", "))
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		lux.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts := []lux.WindowOption{
		lux.WithSize(*width, *height),
		lux.WithTitle("luxdemo"),
		lux.WithClearColor(lux.Hex(0x1d2330)),
	}
	if *name != "" {
		opts = append(opts, lux.WithBackend(*name))
	}
	w, err := lux.NewWindow(opts...)
	if err != nil {
		log.Fatalf("Failed to open window: %v", err)
	}
	defer w.Close()

	if err := run(w); err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}

	if rec, ok := w.Backend().(*recording.Recorder); ok {
		log.Printf("Recorded %d commands, %d draw calls\n", len(rec.Commands()), rec.DrawCount())
		return
	}
	if err := w.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %s backend)\n", *output, *width, *height, w.Backend().Name())
}

func run(w *lux.Window) error {
	if err := w.Fonts().LoadBuiltin(text.RegularName, 18); err != nil {
		return err
	}
	if err := w.Fonts().LoadBuiltin(text.MonoName, 32); err != nil {
		return err
	}
	tiles, err := w.LoadTexture(checkerboard(64, 32, 16))
	if err != nil {
		return err
	}
	badge, err := drawBadge(w)
	if err != nil {
		return err
	}

	f, err := w.Frame()
	if err != nil {
		return err
	}
	drawShapes(f)
	drawTransforms(f)
	drawSprites(f, tiles, badge)
	drawMasks(f)
	if err := drawText(f); err != nil {
		return errors.Join(err, f.Close())
	}
	return f.Close()
}

// checkerboard returns a w x h image of cell x cell squares in four colors.
func checkerboard(w, h, cell int) *image.RGBA {
	colors := []color.RGBA{
		{0xe0, 0x6c, 0x75, 0xff},
		{0x98, 0xc3, 0x79, 0xff},
		{0x61, 0xaf, 0xef, 0xff},
		{0xe5, 0xc0, 0x7b, 0xff},
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			i := (x/cell + y/cell*(w/cell)) % len(colors)
			img.SetRGBA(x, y, colors[i])
		}
	}
	return img
}

// drawBadge renders a small picture into a drawable texture.
func drawBadge(w *lux.Window) (*lux.Sprite, error) {
	dt, err := w.NewDrawableTexture(64, 64)
	if err != nil {
		return nil, err
	}
	dt.Circle(0, 0, 64).Color(lux.Orange).Fill()
	dt.Circle(0, 0, 64).Pad(12).Color(lux.White).Fill()
	dt.Line(16, 16, 48, 48).Thickness(6).Color(lux.Purple).Draw()
	if err := dt.Close(); err != nil {
		return nil, err
	}
	return dt.Sprite(), nil
}

func drawShapes(f *lux.Frame) {
	f.Rect(20, 20, 160, 100).Color(lux.Hex(0x3b4252)).Border(4, lux.Hex(0x88c0d0)).FillAndStroke()
	f.Rect(20, 20, 160, 100).Pad(20).Color(lux.MustNamed("cornflower blue")).Fill()

	f.Circle(200, 20, 100).Color(lux.Red.WithAlpha(0.8)).Fill()
	f.Circle(250, 20, 100).Color(lux.Green.WithAlpha(0.8)).Fill()
	f.Ellipse(200, 80, 150, 50).Segments(48).Color(lux.Blue.WithAlpha(0.8)).Fill()

	f.DrawLines([][2]float32{{380, 110}, {420, 30}, {460, 110}, {500, 30}}, 3)

	pixels := make([]lux.ColorVertex, 0, 64)
	for i := range 64 {
		x := float32(520 + i*4)
		y := float32(70 + 30*math.Sin(float64(i)/6))
		pixels = append(pixels, lux.ColorVertex{Pos: [2]float32{x, y}, Color: lux.Yellow.Array()})
	}
	f.DrawPixels(pixels)
}

func drawTransforms(f *lux.Frame) {
	for i := range 8 {
		theta := float32(i) * math.Pi / 8
		f.WithRotateAround(110, 260, theta, func() {
			f.WithColor(lux.HSVA(float32(i)*45, 0.7, 0.9, 0.6), func() {
				f.Rect(60, 250, 100, 20).Fill()
			})
		})
	}
	f.WithTranslate(240, 200, func() {
		f.WithShear(0.4, 0, func() {
			f.Square(0, 0, 100).Color(lux.Cyan).Border(3, lux.White).FillAndStroke()
		})
	})
}

func drawSprites(f *lux.Frame, tiles, badge *lux.Sprite) {
	sheet := lux.NewUniformSheet(tiles, 16, 16)
	cols, rows := sheet.Divisions()
	for y := range rows {
		for x := range cols {
			f.Sprite(sheet.Get(x, y), float32(400+x*40), float32(180+y*40)).Size(32, 32).Draw()
		}
	}

	named := lux.NewSpriteSheet[string](tiles)
	named.Associate("left", 0, 0, 32, 32)
	named.Associate("right", 32, 0, 32, 32)
	f.Sprite(named.Get("left"), 580, 180).Draw()
	f.Sprite(named.Get("right"), 620, 180).Color(lux.Gray).Draw()

	f.Sprite(badge, 680, 180).Draw()
	f.Sprite(badge, 680, 260).Size(48, 48).Rotate(0.3).Draw()
}

func drawMasks(f *lux.Frame) {
	f.WithScissor(20, 360, 200, 60, func() {
		for i := range 10 {
			f.Circle(float32(i*30), 340, 60).Color(lux.HSV(float32(i)*36, 0.6, 1)).Fill()
		}
	})

	f.DrawStencil(lux.StencilAllow, func() {
		f.Circle(260, 340, 100).Fill()
	})
	f.DrawWithStencil(func() {
		for i := range 10 {
			f.Rect(240, float32(330+i*12), 140, 6).Color(lux.Magenta).Fill()
		}
	})
}

func drawText(f *lux.Frame) error {
	if err := f.Text("lux", 20, 140).Font(text.MonoName, 32).Color(lux.White).Draw(); err != nil {
		return err
	}
	w, _, err := f.MeasureText("immediate-mode 2D")
	if err != nil {
		return err
	}
	f.Rect(20, 460, w, 2).Color(lux.Orange).Fill()
	return f.DrawText("immediate-mode 2D", 20, 435)
}
