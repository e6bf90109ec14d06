package lux

// Transform holds the current transform of a canvas. Every operation
// right-multiplies: current = current * op, so later operations apply to
// geometry first.
//
// The With* variants snapshot the matrix, apply the operation, run f and
// restore the snapshot, whatever f did to the transform.
type Transform struct {
	m Matrix4
}

// Current returns the current matrix.
func (t *Transform) Current() Matrix4 { return t.m }

// SetMatrix replaces the current matrix.
func (t *Transform) SetMatrix(m Matrix4) { t.m = m }

// Apply right-multiplies m into the current matrix.
func (t *Transform) Apply(m Matrix4) { t.m = t.m.Mul(m) }

// Translate applies a translation.
func (t *Transform) Translate(dx, dy float32) { t.Apply(Translation(dx, dy)) }

// Scale applies a scale.
func (t *Transform) Scale(sx, sy float32) { t.Apply(Scaling(sx, sy)) }

// Shear applies a shear.
func (t *Transform) Shear(sx, sy float32) { t.Apply(Shearing(sx, sy)) }

// Rotate applies a rotation of theta radians.
func (t *Transform) Rotate(theta float32) { t.Apply(Rotation(theta)) }

// RotateAround applies a rotation of theta radians around (x, y).
func (t *Transform) RotateAround(x, y, theta float32) { t.Apply(RotationAround(x, y, theta)) }

// WithMatrix runs f with m applied.
func (t *Transform) WithMatrix(m Matrix4, f func()) {
	saved := t.m
	defer func() { t.m = saved }()
	t.Apply(m)
	f()
}

// WithTranslate runs f translated by (dx, dy).
func (t *Transform) WithTranslate(dx, dy float32, f func()) {
	t.WithMatrix(Translation(dx, dy), f)
}

// WithScale runs f scaled by (sx, sy).
func (t *Transform) WithScale(sx, sy float32, f func()) {
	t.WithMatrix(Scaling(sx, sy), f)
}

// WithShear runs f sheared by (sx, sy).
func (t *Transform) WithShear(sx, sy float32, f func()) {
	t.WithMatrix(Shearing(sx, sy), f)
}

// WithRotation runs f rotated by theta radians.
func (t *Transform) WithRotation(theta float32, f func()) {
	t.WithMatrix(Rotation(theta), f)
}

// WithRotateAround runs f rotated by theta radians around (x, y).
func (t *Transform) WithRotateAround(x, y, theta float32, f func()) {
	t.WithMatrix(RotationAround(x, y, theta), f)
}
