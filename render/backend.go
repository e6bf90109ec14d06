// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
)

// ColorVertex is a vertex carrying its own RGBA color.
type ColorVertex struct {
	Pos   [2]float32
	Color [4]float32
}

// TexVertex is a vertex sampling a texture at normalized coordinates.
type TexVertex struct {
	Pos       [2]float32
	TexCoords [2]float32
}

// TextureID identifies a texture owned by a Backend. Zero is never a valid
// texture; as a render target it means the backend's main surface.
type TextureID uint64

// Screen is the TextureID of the backend's main surface.
const Screen TextureID = 0

// Rect is a pixel rectangle with a top-left origin.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Clamp intersects r with a width x height surface.
func (r Rect) Clamp(width, height int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.Width, width), min(r.Y+r.Height, height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// StencilMode tells the backend how a draw interacts with the stencil buffer.
type StencilMode uint8

const (
	// StencilOff ignores the stencil buffer.
	StencilOff StencilMode = iota

	// StencilWrite writes Value into the stencil buffer for every covered
	// pixel and leaves the color buffer untouched.
	StencilWrite

	// StencilTest draws only where the stencil buffer equals 1.
	StencilTest
)

// Stencil is the stencil part of DrawParams.
type Stencil struct {
	Mode StencilMode

	// Value is the reference written by StencilWrite.
	Value uint8
}

// DrawParams carries the fixed-function state of one draw call.
type DrawParams struct {
	// Target is the render target; Screen for the main surface.
	Target TextureID

	// Scissor limits drawing to a rectangle when non-nil.
	Scissor *Rect

	Stencil Stencil
}

// ColorDraw is one colored draw call.
// A nil Indices draws the vertices in order.
type ColorDraw struct {
	Primitive PrimitiveType
	Vertices  []ColorVertex
	Indices   []uint32
	Matrix    Matrix
	Params    DrawParams
}

// TexDraw is one textured draw call. The sampled color is multiplied by
// ColorMult.
type TexDraw struct {
	Primitive PrimitiveType
	Vertices  []TexVertex
	Indices   []uint32
	Matrix    Matrix
	Texture   TextureID
	ColorMult [4]float32
	Params    DrawParams
}

// Backend executes draw calls. Backends are used from one goroutine.
//
// Draw calls may be queued; Present makes every queued call visible in the
// targets. Vertex and index slices are only read during the call and may be
// reused by the caller afterwards.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// Size returns the main surface size in pixels.
	Size() (width, height int)

	// Resize changes the main surface size. Contents are undefined after.
	Resize(width, height int) error

	// Clear fills a target with a color.
	Clear(target TextureID, color [4]float32) error

	// ClearStencil fills a target's stencil buffer with value.
	ClearStencil(target TextureID, value uint8) error

	DrawColored(d *ColorDraw) error
	DrawTextured(d *TexDraw) error

	// NewTexture uploads img as a sampled texture.
	NewTexture(img *image.RGBA) (TextureID, error)

	// NewRenderTexture creates a texture that can be both a render target
	// and sampled. It starts transparent.
	NewRenderTexture(width, height int) (TextureID, error)

	// TextureSize returns the size of a texture created by this backend.
	TextureSize(id TextureID) (width, height int, err error)

	// DestroyTexture releases a texture. Unknown IDs are ignored.
	DestroyTexture(id TextureID)

	// Present finishes the queued work of a frame.
	Present() error

	// Close releases every resource. The backend is unusable afterwards.
	Close() error
}

// Reader is implemented by backends that can copy a target back to memory.
type Reader interface {
	ReadPixels(target TextureID) (*image.RGBA, error)
}

// Common backend errors.
var (
	// ErrUnknownTexture is returned for IDs the backend never issued.
	ErrUnknownTexture = errors.New("render: unknown texture")

	// ErrNotRenderTarget is returned when drawing into a sampled-only texture.
	ErrNotRenderTarget = errors.New("render: texture is not a render target")

	// ErrClosed is returned by a backend after Close.
	ErrClosed = errors.New("render: backend closed")

	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("render: invalid size")

	// ErrNoDevice is returned when no GPU device can be opened or adopted.
	ErrNoDevice = errors.New("render: no usable GPU device")
)
