//go:build !(js && wasm)

package software

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/lux/backend"
	"github.com/gogpu/lux/render"
	"github.com/gogpu/wgpu/hal/software/raster"
)

func init() {
	backend.Register(backend.NameSoftware, func(cfg backend.Config) (render.Backend, error) {
		return New(cfg.Width, cfg.Height)
	})
}

// target is one drawable surface: the screen or a render texture.
type target struct {
	pipe    *raster.Pipeline
	stencil *raster.StencilBuffer
}

func newTarget(width, height int) *target {
	t := &target{
		pipe:    raster.NewPipeline(width, height),
		stencil: raster.NewStencilBuffer(width, height),
	}
	t.pipe.SetStencilBuffer(t.stencil)
	return t
}

func (t *target) size() (int, int) {
	return t.pipe.Width(), t.pipe.Height()
}

// texture is either an uploaded image or a render target.
type texture struct {
	img *image.RGBA
	rt  *target
}

// Backend is the software render.Backend.
type Backend struct {
	screen   *target
	textures map[render.TextureID]*texture
	nextID   render.TextureID
	closed   bool

	// scratch is reused between draws.
	tris []raster.Triangle
}

var (
	_ render.Backend = (*Backend)(nil)
	_ render.Reader  = (*Backend)(nil)
)

// New creates a software backend with a width x height screen.
func New(width, height int) (*Backend, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	return &Backend{
		screen:   newTarget(width, height),
		textures: make(map[render.TextureID]*texture),
	}, nil
}

// Name returns "software".
func (b *Backend) Name() string { return backend.NameSoftware }

// Size returns the screen size.
func (b *Backend) Size() (int, int) { return b.screen.size() }

// Resize reallocates the screen. Its contents are cleared.
func (b *Backend) Resize(width, height int) error {
	if b.closed {
		return render.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("software: resize %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	b.screen.pipe.Resize(width, height)
	b.screen.stencil.Resize(width, height)
	backend.Logger().Debug("software: resized", "width", width, "height", height)
	return nil
}

func (b *Backend) target(id render.TextureID) (*target, error) {
	if b.closed {
		return nil, render.ErrClosed
	}
	if id == render.Screen {
		return b.screen, nil
	}
	tex, ok := b.textures[id]
	if !ok {
		return nil, fmt.Errorf("software: target %d: %w", id, render.ErrUnknownTexture)
	}
	if tex.rt == nil {
		return nil, fmt.Errorf("software: target %d: %w", id, render.ErrNotRenderTarget)
	}
	return tex.rt, nil
}

// Clear fills a target with color.
func (b *Backend) Clear(id render.TextureID, color [4]float32) error {
	t, err := b.target(id)
	if err != nil {
		return err
	}
	t.pipe.Clear(color[0], color[1], color[2], color[3])
	return nil
}

// ClearStencil fills a target's stencil buffer with value.
func (b *Backend) ClearStencil(id render.TextureID, value uint8) error {
	t, err := b.target(id)
	if err != nil {
		return err
	}
	t.pipe.ClearStencil(value)
	return nil
}

// DrawColored rasterizes a colored draw with interpolated vertex colors.
func (b *Backend) DrawColored(d *render.ColorDraw) error {
	t, err := b.target(d.Params.Target)
	if err != nil {
		return err
	}
	w, h := t.size()
	pos := make([][2]float32, len(d.Vertices))
	attrs := make([][]float32, len(d.Vertices))
	for i, v := range d.Vertices {
		pos[i] = toPixels(d.Matrix, v.Pos, w, h)
		attrs[i] = []float32{v.Color[0], v.Color[1], v.Color[2], v.Color[3]}
	}
	b.tris = assemble(b.tris[:0], d.Primitive, d.Indices, pos, attrs)
	if len(b.tris) == 0 {
		return nil
	}
	b.apply(t, d.Params, raster.BlendSourceOver)
	t.pipe.DrawTrianglesInterpolated(b.tris)
	return nil
}

// DrawTextured rasterizes a textured draw, sampling the nearest texel.
func (b *Backend) DrawTextured(d *render.TexDraw) error {
	t, err := b.target(d.Params.Target)
	if err != nil {
		return err
	}
	src, err := b.sample(d.Texture)
	if err != nil {
		return err
	}
	w, h := t.size()
	pos := make([][2]float32, len(d.Vertices))
	attrs := make([][]float32, len(d.Vertices))
	for i, v := range d.Vertices {
		pos[i] = toPixels(d.Matrix, v.Pos, w, h)
		attrs[i] = []float32{v.TexCoords[0], v.TexCoords[1]}
	}
	b.tris = assemble(b.tris[:0], d.Primitive, d.Indices, pos, attrs)
	if len(b.tris) == 0 {
		return nil
	}
	// Texels are premultiplied, so the multiplier is too.
	m := d.ColorMult
	mult := [4]float32{m[0] * m[3], m[1] * m[3], m[2] * m[3], m[3]}
	b.apply(t, d.Params, raster.BlendPremultiplied)
	t.pipe.DrawTrianglesWithFragmentShader(b.tris, func(a []float32) [4]float32 {
		c := nearest(src, a[0], a[1])
		return [4]float32{c[0] * mult[0], c[1] * mult[1], c[2] * mult[2], c[3] * mult[3]}
	})
	return nil
}

// apply sets the fixed-function state of a draw on t.
func (b *Backend) apply(t *target, p render.DrawParams, blend raster.BlendState) {
	t.pipe.SetBlendState(blend)
	if p.Scissor != nil {
		w, h := t.size()
		r := p.Scissor.Clamp(w, h)
		t.pipe.SetScissor(&raster.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
	} else {
		t.pipe.SetScissor(nil)
	}
	t.pipe.SetStencilState(stencilState(p.Stencil))
}

// stencilState maps a render.Stencil onto the rasterizer's stencil state.
func stencilState(s render.Stencil) raster.StencilState {
	st := raster.DefaultStencilState()
	switch s.Mode {
	case render.StencilWrite:
		// Every fragment fails, so color is never written and FailOp
		// stores the reference.
		st.Enabled = true
		st.Compare = raster.CompareNever
		st.FailOp = raster.StencilOpReplace
		st.Reference = s.Value
	case render.StencilTest:
		st.Enabled = true
		st.Compare = raster.CompareEqual
		st.Reference = 1
	}
	return st
}

// toPixels maps a vertex through m into target pixel coordinates.
func toPixels(m render.Matrix, p [2]float32, w, h int) [2]float32 {
	cx, cy := m.Apply(p[0], p[1])
	return [2]float32{(cx + 1) / 2 * float32(w), (1 - cy) / 2 * float32(h)}
}

func vertex(p [2]float32, attrs []float32) raster.ScreenVertex {
	return raster.ScreenVertex{X: p[0], Y: p[1], W: 1, Attributes: attrs}
}

// assemble converts a draw into screen-space triangles.
func assemble(dst []raster.Triangle, prim render.PrimitiveType, indices []uint32,
	pos [][2]float32, attrs [][]float32) []raster.Triangle {
	if indices == nil {
		indices = render.Sequence(len(pos))
	}
	indices = render.ListIndices(prim, indices)
	valid := func(i uint32) bool { return int(i) < len(pos) }

	switch prim {
	case render.Points:
		for _, i := range indices {
			if valid(i) {
				dst = quad(dst, pos[i], [2]float32{1, 0}, [2]float32{0, 1}, attrs[i], attrs[i])
			}
		}
	case render.LinesList, render.LineStrip:
		for k := 0; k+1 < len(indices); k += 2 {
			i, j := indices[k], indices[k+1]
			if !valid(i) || !valid(j) {
				continue
			}
			dx, dy := pos[j][0]-pos[i][0], pos[j][1]-pos[i][1]
			l := float32(math.Hypot(float64(dx), float64(dy)))
			if l == 0 {
				continue
			}
			// Half-pixel normal on each side of the segment.
			n := [2]float32{-dy / l, dx / l}
			dst = segment(dst, pos[i], pos[j], n, attrs[i], attrs[j])
		}
	default:
		for k := 0; k+2 < len(indices); k += 3 {
			i0, i1, i2 := indices[k], indices[k+1], indices[k+2]
			if !valid(i0) || !valid(i1) || !valid(i2) {
				continue
			}
			dst = append(dst, raster.Triangle{
				V0: vertex(pos[i0], attrs[i0]),
				V1: vertex(pos[i1], attrs[i1]),
				V2: vertex(pos[i2], attrs[i2]),
			})
		}
	}
	return dst
}

// quad appends a one-pixel square centered on p.
func quad(dst []raster.Triangle, p, ux, uy [2]float32, a0, a1 []float32) []raster.Triangle {
	corner := func(sx, sy float32) [2]float32 {
		return [2]float32{p[0] + 0.5*(sx*ux[0]+sy*uy[0]), p[1] + 0.5*(sx*ux[1]+sy*uy[1])}
	}
	tl, tr, br, bl := corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)
	return append(dst,
		raster.Triangle{V0: vertex(tl, a0), V1: vertex(tr, a0), V2: vertex(br, a1)},
		raster.Triangle{V0: vertex(tl, a0), V1: vertex(br, a1), V2: vertex(bl, a1)},
	)
}

// segment appends a one-pixel-wide quad from p to q.
func segment(dst []raster.Triangle, p, q, n [2]float32, ap, aq []float32) []raster.Triangle {
	off := [2]float32{n[0] * 0.5, n[1] * 0.5}
	p0 := [2]float32{p[0] + off[0], p[1] + off[1]}
	p1 := [2]float32{p[0] - off[0], p[1] - off[1]}
	q0 := [2]float32{q[0] + off[0], q[1] + off[1]}
	q1 := [2]float32{q[0] - off[0], q[1] - off[1]}
	return append(dst,
		raster.Triangle{V0: vertex(p0, ap), V1: vertex(q0, aq), V2: vertex(q1, aq)},
		raster.Triangle{V0: vertex(p0, ap), V1: vertex(q1, aq), V2: vertex(p1, ap)},
	)
}

// Present is a no-op: software draws land in the targets immediately.
func (b *Backend) Present() error {
	if b.closed {
		return render.ErrClosed
	}
	return nil
}

// ReadPixels copies a target into an image.
func (b *Backend) ReadPixels(id render.TextureID) (*image.RGBA, error) {
	if !b.closed && id != render.Screen {
		if tex, ok := b.textures[id]; ok && tex.img != nil {
			out := image.NewRGBA(tex.img.Rect)
			copy(out.Pix, tex.img.Pix)
			return out, nil
		}
	}
	t, err := b.target(id)
	if err != nil {
		return nil, err
	}
	w, h := t.size()
	return &image.RGBA{Pix: t.pipe.GetColorBuffer(), Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}, nil
}

// Close releases every target.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	for id := range b.textures {
		b.DestroyTexture(id)
	}
	b.screen.pipe.Close()
	b.closed = true
	return nil
}
