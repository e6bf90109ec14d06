package text

import (
	"fmt"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in font names.
const (
	MonoName    = "Go Mono"
	RegularName = "Go Regular"
)

var builtins = map[string][]byte{
	MonoName:    gomono.TTF,
	RegularName: goregular.TTF,
}

// Builtin returns the TTF data of a built-in font.
func Builtin(name string) ([]byte, error) {
	ttf, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, name)
	}
	return ttf, nil
}

// MustBuiltin is like Builtin but panics for unknown names.
func MustBuiltin(name string) []byte {
	ttf, err := Builtin(name)
	if err != nil {
		panic(err)
	}
	return ttf
}

// BuiltinNames returns the names accepted by Builtin.
func BuiltinNames() []string {
	return []string{MonoName, RegularName}
}
