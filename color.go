package lux

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Component is a numeric type accepted by RGB and RGBA.
//
// Floats are taken as-is. Unsigned integers are normalized by the maximum
// of their type, so uint8 255 and uint16 65535 are both 1. Signed integers
// are 8-bit channel values: clamped to [0, 255] and divided by 255.
type Component interface {
	uint8 | uint16 | uint32 | uint64 | uint |
		int8 | int16 | int32 | int64 | int |
		float32 | float64
}

func normalize[T Component](v T) float32 {
	switch x := any(v).(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	case uint8:
		return float32(x) / math.MaxUint8
	case uint16:
		return float32(x) / math.MaxUint16
	case uint32:
		return float32(float64(x) / math.MaxUint32)
	case uint64:
		return float32(float64(x) / math.MaxUint64)
	case uint:
		return float32(float64(x) / math.MaxUint)
	}
	// Signed integers: 8-bit channels.
	i := min(max(int64(v), 0), 255)
	return float32(i) / 255
}

// RGB creates an opaque color.
//
//	RGB(255, 128, 0)    // ints, 0..255
//	RGB(1.0, 0.5, 0.0)  // floats, 0..1
func RGB[T Component](r, g, b T) Color {
	return Color{normalize(r), normalize(g), normalize(b), 1}
}

// RGBA creates a color with alpha. See RGB for the accepted scales.
func RGBA[T Component](r, g, b, a T) Color {
	return Color{normalize(r), normalize(g), normalize(b), normalize(a)}
}

// Hex creates an opaque color from a packed 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return RGB(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
}

// HexRGBA creates a color from a packed 0xRRGGBBAA value.
func HexRGBA(rgba uint32) Color {
	return RGBA(uint8(rgba>>24), uint8(rgba>>16), uint8(rgba>>8), uint8(rgba))
}

// HSV creates an opaque color from hue in degrees, saturation and value
// in [0, 1]. Hue wraps around 360.
func HSV(h, s, v float32) Color {
	return HSVA(h, s, v, 1)
}

// HSVA is HSV with alpha.
func HSVA(h, s, v, a float32) Color {
	chroma := v * s
	h = float32(math.Mod(float64(h), 360))
	if h < 0 {
		h += 360
	}
	h /= 60
	// Second largest component.
	x := chroma * (1 - float32(math.Abs(math.Mod(float64(h), 2)-1)))

	var r, g, b float32
	switch {
	case h < 1:
		r, g, b = chroma, x, 0
	case h < 2:
		r, g, b = x, chroma, 0
	case h < 3:
		r, g, b = 0, chroma, x
	case h < 4:
		r, g, b = 0, x, chroma
	case h < 5:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	m := v - chroma
	return Color{r + m, g + m, b + m, a}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// RGBA implements color.Color with premultiplied 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: toByte(c.A),
	}.RGBA()
}

// Array returns the components as [r, g, b, a].
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Lerp linearly interpolates between c and other by t in [0, 1].
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

func toByte(x float32) uint8 {
	return uint8(min(max(x, 0), 1)*255 + 0.5)
}

var _ color.Color = Color{}
