// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestMatrixMulOrder(t *testing.T) {
	// Translation * Scaling scales first, then translates.
	m := Translation(10, 20).Mul(Scaling(2, 3))
	x, y := m.Apply(1, 1)
	if !near(x, 12) || !near(y, 23) {
		t.Errorf("Apply = (%v, %v), want (12, 23)", x, y)
	}

	m = Scaling(2, 3).Mul(Translation(10, 20))
	x, y = m.Apply(1, 1)
	if !near(x, 22) || !near(y, 63) {
		t.Errorf("Apply = (%v, %v), want (22, 63)", x, y)
	}
}

func TestMatrixIdentity(t *testing.T) {
	m := Rotation(0.7).Mul(Translation(3, 4))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
}

func TestRotation(t *testing.T) {
	x, y := Rotation(math.Pi/2).Apply(1, 0)
	if !near(x, 0) || !near(y, 1) {
		t.Errorf("rotate (1,0) by 90deg = (%v, %v), want (0, 1)", x, y)
	}
}

func TestShearing(t *testing.T) {
	x, y := Shearing(2, 0).Apply(1, 1)
	if !near(x, 3) || !near(y, 1) {
		t.Errorf("Apply = (%v, %v), want (3, 1)", x, y)
	}
}

func TestScreenBasis(t *testing.T) {
	m := ScreenBasis(800, 500)
	tests := []struct {
		px, py float32
		cx, cy float32
	}{
		{0, 0, -1, 1},
		{800, 500, 1, -1},
		{400, 250, 0, 0},
	}
	for _, tt := range tests {
		x, y := m.Apply(tt.px, tt.py)
		if !near(x, tt.cx) || !near(y, tt.cy) {
			t.Errorf("basis(%v,%v) = (%v,%v), want (%v,%v)", tt.px, tt.py, x, y, tt.cx, tt.cy)
		}
	}
	if ScreenBasis(0, 10) != Identity() {
		t.Error("zero-sized basis should be identity")
	}
}

func TestPrimitiveTypeGroups(t *testing.T) {
	tests := []struct {
		p         PrimitiveType
		coherent  bool
		triangles bool
		topology  gputypes.PrimitiveTopology
	}{
		{Points, true, false, gputypes.PrimitiveTopologyPointList},
		{LinesList, true, false, gputypes.PrimitiveTopologyLineList},
		{LineStrip, false, false, gputypes.PrimitiveTopologyLineList},
		{TrianglesList, true, true, gputypes.PrimitiveTopologyTriangleList},
		{TriangleStrip, false, true, gputypes.PrimitiveTopologyTriangleList},
		{TriangleFan, false, true, gputypes.PrimitiveTopologyTriangleList},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if got := tt.p.Coherent(); got != tt.coherent {
				t.Errorf("Coherent = %v, want %v", got, tt.coherent)
			}
			if got := tt.p.Triangles(); got != tt.triangles {
				t.Errorf("Triangles = %v, want %v", got, tt.triangles)
			}
			if got := tt.p.ListTopology(); got != tt.topology {
				t.Errorf("ListTopology = %v, want %v", got, tt.topology)
			}
		})
	}
	if PrimitiveType(42).String() != "Unknown" {
		t.Error("out of range primitive should be Unknown")
	}
}

func TestListIndices(t *testing.T) {
	tests := []struct {
		name string
		p    PrimitiveType
		in   []uint32
		want []uint32
	}{
		{"fan", TriangleFan, []uint32{0, 1, 2, 3, 4}, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}},
		{"strip", TriangleStrip, []uint32{0, 1, 2, 3}, []uint32{0, 1, 2, 2, 1, 3}},
		{"line strip", LineStrip, []uint32{0, 1, 2}, []uint32{0, 1, 1, 2}},
		{"list unchanged", TrianglesList, []uint32{0, 1, 2}, []uint32{0, 1, 2}},
		{"short fan", TriangleFan, []uint32{0, 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ListIndices(tt.p, tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("ListIndices = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	if got := Sequence(4); !slices.Equal(got, []uint32{0, 1, 2, 3}) {
		t.Errorf("Sequence(4) = %v", got)
	}
}

func TestRectClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside", Rect{10, 10, 20, 20}, Rect{10, 10, 20, 20}},
		{"overflow", Rect{90, 90, 20, 20}, Rect{90, 90, 10, 10}},
		{"negative", Rect{-5, -5, 10, 10}, Rect{0, 0, 5, 5}},
		{"outside", Rect{200, 200, 5, 5}, Rect{200, 200, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp(100, 100)
			if got != tt.want {
				t.Errorf("Clamp = %+v, want %+v", got, tt.want)
			}
		})
	}
	if !(Rect{Width: 0, Height: 4}).Empty() {
		t.Error("zero width rect should be empty")
	}
}
