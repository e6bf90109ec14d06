package lux

import (
	"fmt"

	"github.com/gogpu/lux/render"
)

// Canvas is the immediate-mode drawing state of one render target: the
// current transform and color, the pending batch, and the scissor and
// stencil state. Frames and drawable textures are canvases.
//
// Drawing methods do not return errors. The first backend error is kept
// and returned by Flush and Err; later submissions are dropped.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	Transform

	backend render.Backend
	target  TextureID
	width   int
	height  int
	color   Color
	pools   *Pools
	fonts   *FontCache

	colorBatch *colorBatch
	texBatch   *texBatch

	scissor *render.Rect
	stencil render.Stencil

	err         error
	submissions int
}

// NewCanvas creates a canvas drawing into target of b, which is width x
// height pixels. pools and fonts may be nil.
//
// Most programs get canvases from Window.Frame and
// Window.NewDrawableTexture instead.
func NewCanvas(b render.Backend, target TextureID, width, height int, pools *Pools, fonts *FontCache) *Canvas {
	if pools == nil {
		pools = NewPools(DefaultPoolCapacity)
	}
	if fonts == nil {
		fonts = NewFontCache()
	}
	c := &Canvas{
		backend: b,
		target:  target,
		width:   width,
		height:  height,
		color:   White,
		pools:   pools,
		fonts:   fonts,
	}
	c.ResetTransform()
	return c
}

// Width returns the width of the target in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the target in pixels.
func (c *Canvas) Height() int { return c.height }

// Backend returns the backend the canvas draws with.
func (c *Canvas) Backend() render.Backend { return c.backend }

// Target returns the render target of the canvas.
func (c *Canvas) Target() TextureID { return c.target }

// Fonts returns the font cache used by Text.
func (c *Canvas) Fonts() *FontCache { return c.fonts }

// Err returns the first submission error, or nil.
func (c *Canvas) Err() error { return c.err }

// Submissions returns the number of draw calls sent to the backend.
func (c *Canvas) Submissions() int { return c.submissions }

// ResetTransform replaces the current matrix with the screen basis, which
// maps pixels with a top-left origin onto the target.
func (c *Canvas) ResetTransform() {
	c.SetMatrix(render.ScreenBasis(float32(c.width), float32(c.height)))
}

// Color returns the current color.
func (c *Canvas) Color() Color { return c.color }

// SetColor sets the color used by shapes without a color of their own.
func (c *Canvas) SetColor(col Color) { c.color = col }

// WithColor runs f with col as the current color and restores the previous
// color afterwards.
func (c *Canvas) WithColor(col Color, f func()) {
	saved := c.color
	defer func() { c.color = saved }()
	c.color = col
	f()
}

// Clear flushes the pending batch and fills the target with col.
func (c *Canvas) Clear(col Color) {
	c.flush()
	if c.err != nil {
		return
	}
	if err := c.backend.Clear(c.target, col.Array()); err != nil {
		c.fail(fmt.Errorf("clear: %w", err))
	}
}

// ClearStencil flushes the pending batch and fills the stencil buffer
// with v.
func (c *Canvas) ClearStencil(v uint8) {
	c.flush()
	if c.err != nil {
		return
	}
	if err := c.backend.ClearStencil(c.target, v); err != nil {
		c.fail(fmt.Errorf("clear stencil: %w", err))
	}
}

// Scissor returns the current scissor rectangle, if any.
func (c *Canvas) Scissor() (render.Rect, bool) {
	if c.scissor == nil {
		return render.Rect{}, false
	}
	return *c.scissor, true
}

// WithScissor runs f with drawing limited to the w x h pixel rectangle at
// (x, y), measured from the top-left corner of the target. The pending
// batch is flushed before and after f. The rectangle replaces any
// enclosing scissor rather than intersecting with it.
func (c *Canvas) WithScissor(x, y, w, h int, f func()) {
	c.flush()
	saved := c.scissor
	defer func() {
		c.flush()
		c.scissor = saved
	}()
	c.scissor = &render.Rect{X: x, Y: y, Width: w, Height: h}
	f()
}
