// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "math"

// Matrix is a 4x4 float32 transformation stored column-major:
// element (row r, column c) lives at index c*4+r, which is the layout
// WGSL expects for a mat4x4<f32> uniform.
//
// Only the 2D affine part is used for drawing:
//
//	| m[0]  m[4]  .  m[12] |     x' = m[0]*x + m[4]*y + m[12]
//	| m[1]  m[5]  .  m[13] |     y' = m[1]*x + m[5]*y + m[13]
type Matrix [16]float32

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a matrix that moves by (x, y).
func Translation(x, y float32) Matrix {
	m := Identity()
	m[12] = x
	m[13] = y
	return m
}

// Scaling returns a matrix that scales by (x, y).
func Scaling(x, y float32) Matrix {
	m := Identity()
	m[0] = x
	m[5] = y
	return m
}

// Shearing returns a matrix that shears x by sx*y and y by sy*x.
func Shearing(sx, sy float32) Matrix {
	m := Identity()
	m[4] = sx
	m[1] = sy
	return m
}

// Rotation returns a rotation by theta radians.
// With the y axis pointing down, positive angles turn clockwise on screen.
func Rotation(theta float32) Matrix {
	s, c := math.Sincos(float64(theta))
	m := Identity()
	m[0] = float32(c)
	m[1] = float32(s)
	m[4] = float32(-s)
	m[5] = float32(c)
	return m
}

// Mul returns m * n. Applying the result to a point applies n first.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Apply transforms the point (x, y, 0, 1) and returns its x and y.
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// ScreenBasis maps pixel coordinates with a top-left origin to clip space:
// (0,0) goes to (-1,1) and (width,height) to (1,-1).
func ScreenBasis(width, height float32) Matrix {
	if width == 0 || height == 0 {
		return Identity()
	}
	return Translation(-1, 1).Mul(Scaling(2/width, -2/height))
}
