package lux

import "github.com/gogpu/lux/render"

// Matrix4 is a column-major 4x4 transform. See render.Matrix.
type Matrix4 = render.Matrix

// Identity returns the identity matrix.
func Identity() Matrix4 { return render.Identity() }

// Translation returns a matrix translating by (x, y).
func Translation(x, y float32) Matrix4 { return render.Translation(x, y) }

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float32) Matrix4 { return render.Scaling(sx, sy) }

// Shearing returns a matrix shearing x by sx*y and y by sy*x.
func Shearing(sx, sy float32) Matrix4 { return render.Shearing(sx, sy) }

// Rotation returns a matrix rotating by theta radians.
func Rotation(theta float32) Matrix4 { return render.Rotation(theta) }

// RotationAround returns a matrix rotating by theta radians around (x, y).
func RotationAround(x, y, theta float32) Matrix4 {
	return render.Translation(x, y).Mul(render.Rotation(theta)).Mul(render.Translation(-x, -y))
}
