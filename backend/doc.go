// Package backend selects and opens the render.Backend a lux window draws
// with.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime:
//
//	import _ "github.com/gogpu/lux/backend/software"
//	import _ "github.com/gogpu/lux/gpu"
//
// # Backend Selection
//
// Use OpenBest to get the best backend that opens, or Open to request
// a specific backend by name:
//
//	b, err := backend.OpenBest(backend.Config{Width: 800, Height: 500})
//
//	b, err := backend.Open("software", backend.Config{Width: 800, Height: 500})
//
// # Available Backends
//
//   - "gpu": WebGPU HAL device, registered by package gpu
//   - "software": CPU triangle rasterizer, registered by package backend/software
//   - "recording": records draw calls for tests and replay, registered by
//     package recording
package backend
