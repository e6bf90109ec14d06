package lux

// Unit square corners and the two triangles covering them.
var (
	quadCorners = [4][2]float32{{1, 0}, {0, 0}, {0, 1}, {1, 1}}
	quadIndices = []uint32{0, 1, 2, 0, 2, 3}
)

// Rect is a rectangle builder. Nothing is drawn until Fill, Stroke or
// FillAndStroke.
type Rect struct {
	box[*Rect]
}

// Rect starts a w x h rectangle with its top-left corner at (x, y).
func (c *Canvas) Rect(x, y, w, h float32) *Rect {
	r := &Rect{}
	r.init(r, c, x, y, w, h)
	return r
}

// Square starts a size x size square with its top-left corner at (x, y).
func (c *Canvas) Square(x, y, size float32) *Rect {
	return c.Rect(x, y, size, size)
}

// Fill draws the inside of the rectangle, inset by padding and border.
func (r *Rect) Fill() {
	col := r.fill().Array()
	var verts [4]ColorVertex
	for i, p := range quadCorners {
		verts[i] = ColorVertex{Pos: p, Color: col}
	}
	m := r.matrix()
	r.canvas.DrawColored(TrianglesList, verts[:], quadIndices, &m)
}

// Stroke draws the border as four rectangles along the inside of the
// padded area. It draws nothing when the border size is zero.
func (r *Rect) Stroke() {
	b := r.border
	if b <= 0 {
		return
	}
	x, y, w, h := r.inner()
	c := r.canvas
	c.WithMatrix(r.placement(), func() {
		c.WithColor(r.strokeColor(), func() {
			c.Rect(x, y, w, b).Fill()
			c.Rect(x, y+h-b, w, b).Fill()
			c.Rect(x, y+b, b, h-2*b).Fill()
			c.Rect(x+w-b, y+b, b, h-2*b).Fill()
		})
	})
}

// FillAndStroke fills the rectangle, then draws its border.
func (r *Rect) FillAndStroke() {
	r.Fill()
	r.Stroke()
}
