package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("text: font size must be positive")

	// ErrUnknownBuiltin is returned for names that are not built-in fonts.
	ErrUnknownBuiltin = errors.New("text: unknown built-in font")
)
