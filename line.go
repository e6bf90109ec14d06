package lux

import "math"

// Line is a line segment builder. A line is drawn as a rectangle as long
// as the segment and as high as the thickness, rotated onto the segment.
type Line struct {
	canvas         *Canvas
	x1, y1, x2, y2 float32
	thickness      float32
	color          *Color
}

// Line starts a 1 pixel thick line from (x1, y1) to (x2, y2).
func (c *Canvas) Line(x1, y1, x2, y2 float32) *Line {
	return &Line{canvas: c, x1: x1, y1: y1, x2: x2, y2: y2, thickness: 1}
}

// Thickness sets the line thickness in pixels.
func (l *Line) Thickness(t float32) *Line {
	l.thickness = t
	return l
}

// Color sets the line color, overriding the canvas color.
func (l *Line) Color(c Color) *Line {
	l.color = &c
	return l
}

// Draw draws the line.
func (l *Line) Draw() {
	dx, dy := float64(l.x2-l.x1), float64(l.y2-l.y1)
	length := float32(math.Hypot(dx, dy))
	angle := float32(math.Atan2(dy, dx))
	c := l.canvas
	col := c.color
	if l.color != nil {
		col = *l.color
	}
	c.WithMatrix(Translation(l.x1, l.y1).Mul(Rotation(angle)), func() {
		c.Rect(0, -l.thickness/2, length, l.thickness).Color(col).Fill()
	})
}

// DrawLine draws a line from (x1, y1) to (x2, y2) in the current color.
func (c *Canvas) DrawLine(x1, y1, x2, y2, thickness float32) {
	c.Line(x1, y1, x2, y2).Thickness(thickness).Draw()
}

// DrawLines draws a line from each point to the next.
func (c *Canvas) DrawLines(points [][2]float32, thickness float32) {
	for i := 1; i < len(points); i++ {
		p, q := points[i-1], points[i]
		c.DrawLine(p[0], p[1], q[0], q[1], thickness)
	}
}
