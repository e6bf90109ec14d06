// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the contract between lux and its GPU backends.
//
// lux batches geometry and hands finished batches to a Backend as ColorDraw
// and TexDraw values. A backend only has to draw what it is given; it never
// sees shapes, colors state or transform stacks.
//
// # Core Types
//
//   - Backend: clears, draws, owns textures, presents a frame
//   - ColorDraw, TexDraw: one draw call with vertices, optional indices,
//     a column-major Matrix uniform and DrawParams
//   - DrawParams: target, scissor rectangle and stencil mode
//   - TextureID: opaque texture handle; Screen (0) is the main surface
//   - DeviceHandle: a host-provided GPU device (gpucontext.DeviceProvider)
//
// # Primitive Types
//
// Points, LinesList and TrianglesList are coherent: two draws of the same
// coherent type can be concatenated. LineStrip, TriangleStrip and
// TriangleFan are not; ListIndices rewrites them into list form for
// backends that only draw lists.
//
// # Coordinates
//
// Vertex positions arrive in clip space after Matrix is applied. Scissor
// rectangles are in pixels with the origin at the top-left corner.
package render
