package lux

// style holds the state every drawable builder shares: position, size,
// a local transform and an optional color. S is the builder type, so the
// chainable setters return the concrete builder.
type style[S any] struct {
	self      S
	canvas    *Canvas
	x, y      float32
	w, h      float32
	transform Matrix4
	color     *Color
}

func (s *style[S]) init(self S, c *Canvas, x, y, w, h float32) {
	s.self = self
	s.canvas = c
	s.x, s.y = x, y
	s.w, s.h = w, h
	s.transform = Identity()
}

// Color sets the color of the shape, overriding the canvas color.
func (s *style[S]) Color(c Color) S {
	s.color = &c
	return s.self
}

// Size changes the size of the shape.
func (s *style[S]) Size(w, h float32) S {
	s.w, s.h = w, h
	return s.self
}

// Apply right-multiplies m into the shape's transform. Shape transforms
// act in the shape's own space, after it has been moved to its position.
func (s *style[S]) Apply(m Matrix4) S {
	s.transform = s.transform.Mul(m)
	return s.self
}

// Translate moves the shape by (dx, dy).
func (s *style[S]) Translate(dx, dy float32) S { return s.Apply(Translation(dx, dy)) }

// Scale scales the shape around its position.
func (s *style[S]) Scale(sx, sy float32) S { return s.Apply(Scaling(sx, sy)) }

// Shear shears the shape around its position.
func (s *style[S]) Shear(sx, sy float32) S { return s.Apply(Shearing(sx, sy)) }

// Rotate rotates the shape by theta radians around its position.
func (s *style[S]) Rotate(theta float32) S { return s.Apply(Rotation(theta)) }

// RotateAround rotates the shape by theta radians around (x, y), relative
// to its position.
func (s *style[S]) RotateAround(x, y, theta float32) S {
	return s.Apply(RotationAround(x, y, theta))
}

// fill returns the shape color, falling back to the canvas color at the
// time of the call.
func (s *style[S]) fill() Color {
	if s.color != nil {
		return *s.color
	}
	return s.canvas.color
}

// placement returns translate(x, y) * transform.
func (s *style[S]) placement() Matrix4 {
	return Translation(s.x, s.y).Mul(s.transform)
}

// box adds padding and a border to style. The filled area is the shape
// rectangle shrunk by the padding and then by the border.
type box[S any] struct {
	style[S]
	pad    [4]float32 // left, top, right, bottom
	border float32
	stroke *Color
}

// Pad insets the shape by p on every side.
func (b *box[S]) Pad(p float32) S { return b.PadEach(p, p, p, p) }

// PadXY insets the shape by x on the left and right and y on the top and
// bottom.
func (b *box[S]) PadXY(x, y float32) S { return b.PadEach(x, y, x, y) }

// PadEach insets each side separately.
func (b *box[S]) PadEach(left, top, right, bottom float32) S {
	b.pad = [4]float32{left, top, right, bottom}
	return b.self
}

// Border sets the border size and its stroke color.
func (b *box[S]) Border(size float32, c Color) S {
	b.border = size
	b.stroke = &c
	return b.self
}

// BorderSize sets the border size, keeping the stroke color.
func (b *box[S]) BorderSize(size float32) S {
	b.border = size
	return b.self
}

// StrokeColor sets the color of the border.
func (b *box[S]) StrokeColor(c Color) S {
	b.stroke = &c
	return b.self
}

func (b *box[S]) strokeColor() Color {
	if b.stroke != nil {
		return *b.stroke
	}
	return b.fill()
}

// inner returns the padded rectangle relative to the shape position.
func (b *box[S]) inner() (x, y, w, h float32) {
	return b.pad[0], b.pad[1], b.w - b.pad[0] - b.pad[2], b.h - b.pad[1] - b.pad[3]
}

// matrix maps the unit square onto the filled area:
// translate(x, y) * transform * translate(inset) * scale(size).
func (b *box[S]) matrix() Matrix4 {
	x, y, w, h := b.inner()
	bw := max(w-2*b.border, 0)
	bh := max(h-2*b.border, 0)
	return b.placement().
		Mul(Translation(x+b.border, y+b.border)).
		Mul(Scaling(bw, bh))
}
