package lux

import "github.com/gogpu/lux/render"

// StencilType selects what DrawStencil marks.
type StencilType uint8

const (
	// StencilDeny marks the drawn area as forbidden: DrawWithStencil will
	// draw everywhere except there.
	StencilDeny StencilType = iota

	// StencilAllow marks the drawn area as the only place DrawWithStencil
	// will draw.
	StencilAllow
)

// Inverse returns the opposite stencil type.
func (t StencilType) Inverse() StencilType {
	if t == StencilAllow {
		return StencilDeny
	}
	return StencilAllow
}

func (t StencilType) String() string {
	if t == StencilAllow {
		return "Allow"
	}
	return "Deny"
}

// DrawStencil draws f into the stencil buffer only.
//
// The stencil is first cleared to 0 for StencilAllow and 1 for
// StencilDeny, then every pixel f covers is set to 1 for StencilAllow and
// 0 for StencilDeny. The color buffer is not touched.
func (c *Canvas) DrawStencil(typ StencilType, f func()) {
	reset, value := uint8(1), uint8(0)
	if typ == StencilAllow {
		reset, value = 0, 1
	}
	c.ClearStencil(reset)
	c.withStencil(render.Stencil{Mode: render.StencilWrite, Value: value}, f)
}

// DrawWithStencil runs f drawing only where the stencil buffer is 1.
func (c *Canvas) DrawWithStencil(f func()) {
	c.withStencil(render.Stencil{Mode: render.StencilTest}, f)
}

func (c *Canvas) withStencil(s render.Stencil, f func()) {
	c.flush()
	saved := c.stencil
	defer func() {
		c.flush()
		c.stencil = saved
	}()
	c.stencil = s
	f()
}
