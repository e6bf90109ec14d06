package lux

import (
	"fmt"

	"github.com/gogpu/lux/pool"
	"github.com/gogpu/lux/render"
)

// Vertex and primitive types shared with the backends.
type (
	ColorVertex   = render.ColorVertex
	TexVertex     = render.TexVertex
	PrimitiveType = render.PrimitiveType
	TextureID     = render.TextureID
)

// Primitive types.
const (
	Points        = render.Points
	LinesList     = render.LinesList
	LineStrip     = render.LineStrip
	TrianglesList = render.TrianglesList
	TriangleStrip = render.TriangleStrip
	TriangleFan   = render.TriangleFan
)

// DefaultPoolCapacity is the number of pooled buffers per buffer kind.
const DefaultPoolCapacity = 4

// initialBatchCap is the vertex capacity of a freshly allocated buffer.
const initialBatchCap = 64

// Pools holds the geometry buffers that batches are built in. A window
// owns one Pools and shares it with every frame, so buffers that grew
// during one frame keep their capacity for the next.
type Pools struct {
	ColorVertices *pool.Pool[[]ColorVertex]
	TexVertices   *pool.Pool[[]TexVertex]
	Indices       *pool.Pool[[]uint32]
}

// NewPools creates pools with capacity buffers of each kind.
func NewPools(capacity int) *Pools {
	return &Pools{
		ColorVertices: pool.New(capacity, newColorVertices),
		TexVertices:   pool.New(capacity, newTexVertices),
		Indices:       pool.New(capacity, newIndices),
	}
}

func newColorVertices() []ColorVertex { return make([]ColorVertex, 0, initialBatchCap) }
func newTexVertices() []TexVertex     { return make([]TexVertex, 0, initialBatchCap) }
func newIndices() []uint32            { return make([]uint32, 0, initialBatchCap*3/2) }

type colorBatch struct {
	prim    PrimitiveType
	verts   *pool.Handle[[]ColorVertex]
	indices *pool.Handle[[]uint32]
}

func (b *colorBatch) release() {
	b.verts.Value = b.verts.Value[:0]
	b.indices.Value = b.indices.Value[:0]
	b.verts.Release()
	b.indices.Release()
}

type texBatch struct {
	prim    PrimitiveType
	texture TextureID
	mult    [4]float32
	verts   *pool.Handle[[]TexVertex]
	indices *pool.Handle[[]uint32]
}

func (b *texBatch) release() {
	b.verts.Value = b.verts.Value[:0]
	b.indices.Value = b.indices.Value[:0]
	b.verts.Release()
	b.indices.Release()
}

// extends reports whether a draw of prim can be appended to b.
func (b *colorBatch) extends(prim PrimitiveType) bool {
	return b.prim == prim && prim.Coherent()
}

func (b *texBatch) extends(prim PrimitiveType, tex TextureID, mult [4]float32) bool {
	return b.prim == prim && prim.Coherent() && b.texture == tex && b.mult == mult
}

// checkIndices panics when a triangle list is given a partial triangle.
func checkIndices(prim PrimitiveType, indices []uint32) {
	if prim == TrianglesList && indices != nil && len(indices)%3 != 0 {
		panic(fmt.Sprintf("lux: %d indices do not form whole triangles", len(indices)))
	}
}

// appendIndices appends indices rebased by base, or base..base+n-1 when
// indices is nil.
func appendIndices(dst []uint32, base uint32, indices []uint32, n int) []uint32 {
	if indices == nil {
		for i := range n {
			dst = append(dst, base+uint32(i)) // #nosec G115 -- vertex counts fit in uint32
		}
		return dst
	}
	for _, idx := range indices {
		dst = append(dst, base+idx)
	}
	return dst
}

// model returns current * transform.
func (c *Canvas) model(transform *Matrix4) Matrix4 {
	m := c.Current()
	if transform != nil {
		m = m.Mul(*transform)
	}
	return m
}

// DrawColored adds colored geometry to the pending batch. Positions are
// transformed by the current matrix times transform (when non-nil) before
// they are stored, so the batch is submitted with the identity matrix.
//
// A pending textured batch is flushed first. A pending colored batch is
// extended when it has the same primitive type and that type is a list;
// otherwise it is flushed and a new batch starts.
//
// DrawColored panics when a TrianglesList is given a number of indices
// that is not a multiple of three.
func (c *Canvas) DrawColored(prim PrimitiveType, verts []ColorVertex, indices []uint32, transform *Matrix4) {
	c.flushTextured()
	if c.colorBatch != nil && !c.colorBatch.extends(prim) {
		c.flushColored()
	}
	checkIndices(prim, indices)
	b := c.colorBatch
	if b == nil {
		b = &colorBatch{
			prim:    prim,
			verts:   c.pools.ColorVertices.CheckoutOrElse(newColorVertices),
			indices: c.pools.Indices.CheckoutOrElse(newIndices),
		}
		c.colorBatch = b
	}

	m := c.model(transform)
	base := uint32(len(b.verts.Value)) // #nosec G115 -- vertex counts fit in uint32
	b.indices.Value = appendIndices(b.indices.Value, base, indices, len(verts))
	for _, v := range verts {
		v.Pos[0], v.Pos[1] = m.Apply(v.Pos[0], v.Pos[1])
		b.verts.Value = append(b.verts.Value, v)
	}
}

// DrawTextured adds textured geometry to the pending batch. The sampled
// texture color is multiplied by colorMult, or white when colorMult is nil.
// Batching follows DrawColored; a textured batch additionally requires the
// same texture and color multiplier.
func (c *Canvas) DrawTextured(prim PrimitiveType, verts []TexVertex, indices []uint32, transform *Matrix4,
	tex TextureID, colorMult *Color) {
	mult := multiplier(colorMult)
	c.flushColored()
	if c.texBatch != nil && !c.texBatch.extends(prim, tex, mult) {
		c.flushTextured()
	}
	checkIndices(prim, indices)
	b := c.texBatch
	if b == nil {
		b = &texBatch{
			prim:    prim,
			texture: tex,
			mult:    mult,
			verts:   c.pools.TexVertices.CheckoutOrElse(newTexVertices),
			indices: c.pools.Indices.CheckoutOrElse(newIndices),
		}
		c.texBatch = b
	}

	m := c.model(transform)
	base := uint32(len(b.verts.Value)) // #nosec G115 -- vertex counts fit in uint32
	b.indices.Value = appendIndices(b.indices.Value, base, indices, len(verts))
	for _, v := range verts {
		v.Pos[0], v.Pos[1] = m.Apply(v.Pos[0], v.Pos[1])
		b.verts.Value = append(b.verts.Value, v)
	}
}

func multiplier(c *Color) [4]float32 {
	if c == nil {
		return White.Array()
	}
	return c.Array()
}

// DrawColoredNow flushes the pending batch and submits the geometry on its
// own with matrix m, or the identity matrix when m is nil. The current
// transform is not applied.
func (c *Canvas) DrawColoredNow(prim PrimitiveType, verts []ColorVertex, indices []uint32, m *Matrix4) {
	checkIndices(prim, indices)
	c.flush()
	mat := Identity()
	if m != nil {
		mat = *m
	}
	c.submitColored(prim, verts, indices, mat)
}

// DrawTexturedNow is DrawColoredNow for textured geometry.
func (c *Canvas) DrawTexturedNow(prim PrimitiveType, verts []TexVertex, indices []uint32, m *Matrix4,
	tex TextureID, colorMult *Color) {
	checkIndices(prim, indices)
	c.flush()
	mat := Identity()
	if m != nil {
		mat = *m
	}
	c.submitTextured(prim, verts, indices, mat, tex, multiplier(colorMult))
}

// DrawColoredNoBatch flushes the pending batch and submits the geometry on
// its own with the current matrix times transform.
func (c *Canvas) DrawColoredNoBatch(prim PrimitiveType, verts []ColorVertex, indices []uint32, transform *Matrix4) {
	m := c.model(transform)
	c.DrawColoredNow(prim, verts, indices, &m)
}

// DrawTexturedNoBatch is DrawColoredNoBatch for textured geometry.
func (c *Canvas) DrawTexturedNoBatch(prim PrimitiveType, verts []TexVertex, indices []uint32, transform *Matrix4,
	tex TextureID, colorMult *Color) {
	m := c.model(transform)
	c.DrawTexturedNow(prim, verts, indices, &m, tex, colorMult)
}

// Flush submits the pending batch, if any, and returns the first error the
// canvas has seen. Flushing with nothing pending only returns the error.
func (c *Canvas) Flush() error {
	c.flush()
	return c.err
}

func (c *Canvas) flush() {
	c.flushColored()
	c.flushTextured()
}

func (c *Canvas) flushColored() {
	b := c.colorBatch
	if b == nil {
		return
	}
	c.colorBatch = nil
	defer b.release()
	if len(b.verts.Value) == 0 {
		return
	}
	Logger().Debug("flush colored batch",
		"primitive", b.prim, "vertices", len(b.verts.Value), "indices", len(b.indices.Value))
	c.submitColored(b.prim, b.verts.Value, b.indices.Value, Identity())
}

func (c *Canvas) flushTextured() {
	b := c.texBatch
	if b == nil {
		return
	}
	c.texBatch = nil
	defer b.release()
	if len(b.verts.Value) == 0 {
		return
	}
	Logger().Debug("flush textured batch",
		"primitive", b.prim, "texture", b.texture, "vertices", len(b.verts.Value))
	c.submitTextured(b.prim, b.verts.Value, b.indices.Value, Identity(), b.texture, b.mult)
}

// submitColored sends one draw call to the backend. Nothing is submitted
// once the canvas holds an error.
func (c *Canvas) submitColored(prim PrimitiveType, verts []ColorVertex, indices []uint32, m Matrix4) {
	if c.err != nil {
		return
	}
	d := render.ColorDraw{
		Primitive: prim,
		Vertices:  verts,
		Indices:   indices,
		Matrix:    m,
		Params:    c.params(),
	}
	c.submissions++
	if err := c.backend.DrawColored(&d); err != nil {
		c.fail(fmt.Errorf("draw colored: %w", err))
	}
}

func (c *Canvas) submitTextured(prim PrimitiveType, verts []TexVertex, indices []uint32, m Matrix4,
	tex TextureID, mult [4]float32) {
	if c.err != nil {
		return
	}
	d := render.TexDraw{
		Primitive: prim,
		Vertices:  verts,
		Indices:   indices,
		Matrix:    m,
		Texture:   tex,
		ColorMult: mult,
		Params:    c.params(),
	}
	c.submissions++
	if err := c.backend.DrawTextured(&d); err != nil {
		c.fail(fmt.Errorf("draw textured: %w", err))
	}
}

// params returns the fixed-function state for the next submission.
func (c *Canvas) params() render.DrawParams {
	p := render.DrawParams{Target: c.target, Stencil: c.stencil}
	if c.scissor != nil {
		r := *c.scissor
		p.Scissor = &r
	}
	return p
}

// fail records the first error of the canvas.
func (c *Canvas) fail(err error) {
	if c.err != nil {
		return
	}
	c.err = err
	Logger().Error("lux: submission failed", "target", c.target, "err", err)
}
