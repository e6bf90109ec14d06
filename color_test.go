package lux

import (
	"image/color"
	"slices"
	"testing"
)

func nearColor(a, b Color) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestRGBNormalization(t *testing.T) {
	tests := []struct {
		name string
		got  Color
		want Color
	}{
		{"uint8", RGB[uint8](255, 0, 51), Color{1, 0, 0.2, 1}},
		{"uint16", RGB[uint16](65535, 0, 0), Color{1, 0, 0, 1}},
		{"int", RGB(255, 128, 0), Color{1, 128.0 / 255, 0, 1}},
		{"int clamps", RGB(300, -20, 0), Color{1, 0, 0, 1}},
		{"float32", RGB[float32](1, 0.5, 0.25), Color{1, 0.5, 0.25, 1}},
		{"float64", RGBA(0.1, 0.2, 0.3, 0.4), Color{0.1, 0.2, 0.3, 0.4}},
		{"uint32", RGBA[uint32](0, 0, 0, 0xFFFFFFFF), Color{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !nearColor(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got, want := Hex(0xFF8000), RGB(255, 128, 0); !nearColor(got, want) {
		t.Errorf("Hex(0xFF8000) = %v, want %v", got, want)
	}
	if got, want := HexRGBA(0x00FF0080), RGBA(0, 255, 0, 128); !nearColor(got, want) {
		t.Errorf("HexRGBA(0x00FF0080) = %v, want %v", got, want)
	}
}

func TestHSV(t *testing.T) {
	tests := []struct {
		h, s, v float32
		want    Color
	}{
		{0, 1, 1, Red},
		{120, 1, 1, Green},
		{240, 1, 1, Blue},
		{60, 1, 1, Yellow},
		{360, 1, 1, Red},
		{-120, 1, 1, Blue},
		{200, 0, 0.5, Color{0.5, 0.5, 0.5, 1}},
	}
	for _, tt := range tests {
		if got := HSV(tt.h, tt.s, tt.v); !nearColor(got, tt.want) {
			t.Errorf("HSV(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
	if got := HSVA(0, 1, 1, 0.25); !near(got.A, 0.25) {
		t.Errorf("HSVA alpha = %v", got.A)
	}
}

func TestNamed(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"red", Red, true},
		{"Cornflower Blue", RGB(100, 149, 237), true},
		{"CORNFLOWERBLUE", RGB(100, 149, 237), true},
		{"not a color", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := Named(tt.name)
		if ok != tt.ok || !nearColor(got, tt.want) {
			t.Errorf("Named(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("MustNamed of an unknown name did not panic")
		}
	}()
	MustNamed("nope")
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	if !slices.IsSorted(names) {
		t.Error("ColorNames() is not sorted")
	}
	for _, name := range names {
		if _, ok := Named(name); !ok {
			t.Errorf("Named(%q) failed for a listed name", name)
		}
	}
}

func TestColorInterface(t *testing.T) {
	c := RGBA[uint8](255, 0, 0, 128)
	r, g, b, a := c.RGBA()
	want := color.NRGBA{R: 255, A: 128}
	wr, wg, wb, wa := want.RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Errorf("RGBA() = %d %d %d %d, want %d %d %d %d", r, g, b, a, wr, wg, wb, wa)
	}
	if got := FromColor(want); !nearColor(got, c) {
		t.Errorf("FromColor = %v, want %v", got, c)
	}
}

func TestLerpAndAlpha(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if !nearColor(got, Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("Lerp = %v", got)
	}
	if a := Red.WithAlpha(0.3); a.A != 0.3 || a.R != 1 {
		t.Errorf("WithAlpha = %v", a)
	}
	if Red.Array() != [4]float32{1, 0, 0, 1} {
		t.Errorf("Array = %v", Red.Array())
	}
}
