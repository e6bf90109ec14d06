// Package software is a CPU render.Backend built on the wgpu software
// rasterizer (hal/software/raster).
//
// It needs no GPU and no window, which makes it the fallback when no
// device can be opened and the backend of choice for golden-image tests.
// Importing the package registers it under the name "software":
//
//	import _ "github.com/gogpu/lux/backend/software"
//
// Every render target owns a raster.Pipeline and a stencil buffer.
// Points are drawn as one-pixel quads and lines as one-pixel-wide quads,
// since the rasterizer only fills triangles.
package software
