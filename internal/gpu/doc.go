//go:build !nogpu

// Package gpu is the hardware backend of lux, built on the pure Go
// gogpu/wgpu hal (zero CGO).
//
// # Architecture
//
// A Renderer owns a screen texture and any number of sampled or render
// textures, each render target paired with a Depth24PlusStencil8 buffer.
// Draw calls from the lux batcher become render passes:
//
//	ColorDraw / TexDraw -> list indices -> vertex, index, uniform buffers -> pass
//
// All passes of a frame are recorded into one command encoder. Present
// submits it and waits for the device, then frees the per-frame buffers.
//
// # Pipelines
//
// Two WGSL shaders are embedded: colored (per-vertex color, straight alpha
// blending) and textured (sampled color times a multiplier, premultiplied
// blending). Pipelines are created lazily per shader, topology and stencil
// mode. Fans and strips are rewritten to lists, since WebGPU has no fan
// topology.
//
// # Devices
//
// OpenDevice opens a Vulkan device. FromProvider adopts a device owned by
// a host application through gpucontext.DeviceProvider.
//
// Build with -tags nogpu to leave this package out.
package gpu
