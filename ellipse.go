package lux

import "math"

// Ellipse is an ellipse builder. The ellipse fills the shape rectangle
// after padding and border are taken off.
type Ellipse struct {
	box[*Ellipse]
	segments int
}

// Ellipse starts an ellipse inscribed in the w x h rectangle at (x, y).
func (c *Canvas) Ellipse(x, y, w, h float32) *Ellipse {
	e := &Ellipse{}
	e.init(e, c, x, y, w, h)
	return e
}

// Circle starts a circle of diameter size inscribed in the square at
// (x, y).
func (c *Canvas) Circle(x, y, size float32) *Ellipse {
	return c.Ellipse(x, y, size, size)
}

// Segments sets the number of outline segments. Zero picks a count from
// the size.
func (e *Ellipse) Segments(n int) *Ellipse {
	e.segments = n
	return e
}

// DefaultSegments returns the outline segment count used for a radius:
// one segment per 15 pixels of circumference, at least 3.
func DefaultSegments(radius float32) int {
	n := int(math.Ceil(2 * math.Pi * float64(radius) / 15))
	return max(n, 3)
}

// Fill draws the ellipse as a triangle fan.
func (e *Ellipse) Fill() {
	n := e.segments
	if n <= 0 {
		n = DefaultSegments(max(e.w, e.h) / 2)
	}
	col := e.fill().Array()
	verts := make([]ColorVertex, n+1)
	for i := range verts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		verts[i] = ColorVertex{Pos: [2]float32{float32(s), float32(c)}, Color: col}
	}
	// The outline spans -1..1; move it into the unit square.
	m := e.matrix().Mul(Translation(0.5, 0.5)).Mul(Scaling(0.5, 0.5))
	e.canvas.DrawColored(TriangleFan, verts, nil, &m)
}
