// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// PrimitiveType selects how a vertex/index list is assembled.
type PrimitiveType uint8

const (
	Points PrimitiveType = iota
	LinesList
	LineStrip
	TrianglesList
	TriangleStrip
	TriangleFan
)

var primitiveNames = [...]string{
	Points:        "Points",
	LinesList:     "LinesList",
	LineStrip:     "LineStrip",
	TrianglesList: "TrianglesList",
	TriangleStrip: "TriangleStrip",
	TriangleFan:   "TriangleFan",
}

// String returns the primitive name.
func (p PrimitiveType) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "Unknown"
}

// Coherent reports whether two draws of this type can be concatenated into
// one draw. Strips and fans share vertices between neighbours, so appending
// another strip would stitch unrelated geometry together.
func (p PrimitiveType) Coherent() bool {
	switch p {
	case Points, LinesList, TrianglesList:
		return true
	default:
		return false
	}
}

// Triangles reports whether the type produces filled triangles.
func (p PrimitiveType) Triangles() bool {
	switch p {
	case TrianglesList, TriangleStrip, TriangleFan:
		return true
	default:
		return false
	}
}

// ListTopology returns the WebGPU list topology that draws this type once
// its indices have gone through ListIndices. WebGPU has no fan topology.
func (p PrimitiveType) ListTopology() gputypes.PrimitiveTopology {
	switch p {
	case Points:
		return gputypes.PrimitiveTopologyPointList
	case LinesList, LineStrip:
		return gputypes.PrimitiveTopologyLineList
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

// Sequence returns the indices 0..n-1.
func Sequence(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i) // #nosec G115 -- vertex counts fit in uint32
	}
	return out
}

// ExpandFan converts fan indices into triangle-list indices.
func ExpandFan(indices []uint32) []uint32 {
	if len(indices) < 3 {
		return nil
	}
	out := make([]uint32, 0, (len(indices)-2)*3)
	for i := 1; i+1 < len(indices); i++ {
		out = append(out, indices[0], indices[i], indices[i+1])
	}
	return out
}

// ExpandStrip converts strip indices into triangle-list indices, keeping
// the winding of every second triangle consistent.
func ExpandStrip(indices []uint32) []uint32 {
	if len(indices) < 3 {
		return nil
	}
	out := make([]uint32, 0, (len(indices)-2)*3)
	for i := 0; i+2 < len(indices); i++ {
		if i%2 == 0 {
			out = append(out, indices[i], indices[i+1], indices[i+2])
		} else {
			out = append(out, indices[i+1], indices[i], indices[i+2])
		}
	}
	return out
}

// ExpandLineStrip converts line-strip indices into line-list indices.
func ExpandLineStrip(indices []uint32) []uint32 {
	if len(indices) < 2 {
		return nil
	}
	out := make([]uint32, 0, (len(indices)-1)*2)
	for i := 0; i+1 < len(indices); i++ {
		out = append(out, indices[i], indices[i+1])
	}
	return out
}

// ListIndices rewrites indices into list form: fans and strips become
// triangle lists, line strips become line lists. List types are returned
// unchanged.
func ListIndices(p PrimitiveType, indices []uint32) []uint32 {
	switch p {
	case TriangleFan:
		return ExpandFan(indices)
	case TriangleStrip:
		return ExpandStrip(indices)
	case LineStrip:
		return ExpandLineStrip(indices)
	default:
		return indices
	}
}
