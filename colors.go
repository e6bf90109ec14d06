package lux

import (
	"strings"

	"golang.org/x/image/colornames"
)

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Cyan        = RGB(0, 255, 255)
	Magenta     = RGB(255, 0, 255)
	Gray        = Hex(0x808080)
	Orange      = Hex(0xFFA500)
	Purple      = Hex(0x800080)
	Transparent = RGBA(0, 0, 0, 0)
)

// Named returns the SVG 1.1 color with the given name, ignoring case and
// spaces ("Cornflower Blue" and "cornflowerblue" are the same color).
func Named(name string) (Color, bool) {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	c, ok := colornames.Map[key]
	if !ok {
		return Color{}, false
	}
	return RGBA(c.R, c.G, c.B, c.A), true
}

// MustNamed is like Named but panics for unknown names.
func MustNamed(name string) Color {
	c, ok := Named(name)
	if !ok {
		panic("lux: unknown color name " + name)
	}
	return c
}

// ColorNames returns every name Named accepts, in alphabetical order.
func ColorNames() []string {
	return colornames.Names
}
