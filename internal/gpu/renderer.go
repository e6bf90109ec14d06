//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/lux/backend"
	"github.com/gogpu/lux/render"
	"github.com/gogpu/wgpu/hal"
)

// Renderer is the GPU render.Backend. Every operation records a render
// pass into one command encoder per frame; Present submits the encoder
// and waits for the device to go idle.
//
// Per-draw vertex, index and uniform buffers live until the next Present.
// Textures destroyed mid-frame are released after it too, since queued
// passes may still sample them.
type Renderer struct {
	dev     *Device
	screen  *target
	pipes   *pipelines
	sampler hal.Sampler

	textures map[render.TextureID]*texture
	nextID   render.TextureID

	enc     hal.CommandEncoder
	buffers []hal.Buffer
	groups  []hal.BindGroup
	doomed  []*texture

	closed bool
}

var (
	_ render.Backend = (*Renderer)(nil)
	_ render.Reader  = (*Renderer)(nil)
)

// Options tune a Renderer.
type Options struct {
	// PrecompileShaders hands SPIR-V compiled by naga to the device
	// instead of WGSL source.
	PrecompileShaders bool
}

// New creates a renderer drawing into a width x height screen texture on
// dev. The renderer releases dev when closed.
func New(dev *Device, width, height int, opts Options) (*Renderer, error) {
	if dev == nil || dev.Device == nil || dev.Queue == nil {
		return nil, ErrNoDevice
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gpu: %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	pipes, err := newPipelines(dev.Device, opts.PrecompileShaders)
	if err != nil {
		return nil, fmt.Errorf("gpu: %w", err)
	}
	sampler, err := dev.Device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "lux_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		pipes.destroy()
		return nil, fmt.Errorf("gpu: create sampler: %w", err)
	}
	screen, err := newTarget(dev.Device, "lux_screen", width, height, nil, nil)
	if err != nil {
		dev.Device.DestroySampler(sampler)
		pipes.destroy()
		return nil, fmt.Errorf("gpu: %w", err)
	}
	slogger().Debug("gpu: renderer created", "adapter", dev.Name(), "width", width, "height", height)
	return &Renderer{
		dev:      dev,
		screen:   screen,
		pipes:    pipes,
		sampler:  sampler,
		textures: make(map[render.TextureID]*texture),
	}, nil
}

// Name returns "gpu".
func (r *Renderer) Name() string { return backend.NameGPU }

// Size returns the screen size.
func (r *Renderer) Size() (int, int) { return r.screen.width, r.screen.height }

// Resize submits pending work and reallocates the screen texture.
func (r *Renderer) Resize(width, height int) error {
	if r.closed {
		return render.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("gpu: resize %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	if err := r.submit(); err != nil {
		return err
	}
	screen, err := newTarget(r.dev.Device, "lux_screen", width, height, nil, nil)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	r.screen.destroy(r.dev.Device)
	r.screen = screen
	slogger().Debug("gpu: resized", "width", width, "height", height)
	return nil
}

func (r *Renderer) target(id render.TextureID) (*target, error) {
	if r.closed {
		return nil, render.ErrClosed
	}
	if id == render.Screen {
		return r.screen, nil
	}
	tex, ok := r.textures[id]
	if !ok {
		return nil, fmt.Errorf("gpu: target %d: %w", id, render.ErrUnknownTexture)
	}
	if tex.rt == nil {
		return nil, fmt.Errorf("gpu: target %d: %w", id, render.ErrNotRenderTarget)
	}
	return tex.rt, nil
}

// Clear fills a target with color.
func (r *Renderer) Clear(id render.TextureID, color [4]float32) error {
	t, err := r.target(id)
	if err != nil {
		return err
	}
	pass, err := r.pass(t, &color, nil)
	if err != nil {
		return err
	}
	pass.End()
	return nil
}

// ClearStencil fills a target's stencil buffer with value.
func (r *Renderer) ClearStencil(id render.TextureID, value uint8) error {
	t, err := r.target(id)
	if err != nil {
		return err
	}
	pass, err := r.pass(t, nil, &value)
	if err != nil {
		return err
	}
	pass.End()
	return nil
}

// DrawColored draws vertices with their own colors.
func (r *Renderer) DrawColored(d *render.ColorDraw) error {
	if len(d.Vertices) == 0 {
		return nil
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&d.Vertices[0])), len(d.Vertices)*colorVertexStride) //nolint:gosec // packed vertex struct
	return r.draw(drawCall{
		params:    d.Params,
		prim:      d.Primitive,
		vertices:  data,
		count:     len(d.Vertices),
		indices:   d.Indices,
		matrix:    d.Matrix,
		colorMult: [4]float32{1, 1, 1, 1},
	})
}

// DrawTextured draws vertices sampling d.Texture.
func (r *Renderer) DrawTextured(d *render.TexDraw) error {
	if len(d.Vertices) == 0 {
		return nil
	}
	if r.closed {
		return render.ErrClosed
	}
	tex, ok := r.textures[d.Texture]
	if !ok {
		return fmt.Errorf("gpu: texture %d: %w", d.Texture, render.ErrUnknownTexture)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&d.Vertices[0])), len(d.Vertices)*texVertexStride) //nolint:gosec // packed vertex struct
	return r.draw(drawCall{
		params:    d.Params,
		prim:      d.Primitive,
		vertices:  data,
		count:     len(d.Vertices),
		indices:   d.Indices,
		matrix:    d.Matrix,
		colorMult: d.ColorMult,
		texture:   tex,
	})
}

// drawCall is a draw with its vertices already serialized.
type drawCall struct {
	params    render.DrawParams
	prim      render.PrimitiveType
	vertices  []byte
	count     int
	indices   []uint32
	matrix    render.Matrix
	colorMult [4]float32
	texture   *texture
}

func (r *Renderer) draw(dc drawCall) error {
	t, err := r.target(dc.params.Target)
	if err != nil {
		return err
	}
	indices := dc.indices
	if indices == nil {
		indices = render.Sequence(dc.count)
	}
	indices = render.ListIndices(dc.prim, indices)
	if len(indices) == 0 {
		return nil
	}
	scissor := render.Rect{Width: t.width, Height: t.height}
	if dc.params.Scissor != nil {
		scissor = dc.params.Scissor.Clamp(t.width, t.height)
		if scissor.Empty() {
			return nil
		}
	}

	textured := dc.texture != nil
	pipeline, err := r.pipes.get(pipelineKey{
		textured: textured,
		topology: dc.prim.ListTopology(),
		stencil:  dc.params.Stencil.Mode,
	})
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}

	vb, err := r.buffer("lux_vertices", gputypes.BufferUsageVertex, dc.vertices)
	if err != nil {
		return err
	}
	ib, err := r.buffer("lux_indices", gputypes.BufferUsageIndex,
		unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*4)) //nolint:gosec // uint32 slice
	if err != nil {
		return err
	}
	u := uniforms{transform: dc.matrix, colorMult: dc.colorMult}
	ub, err := r.buffer("lux_uniforms", gputypes.BufferUsageUniform,
		unsafe.Slice((*byte)(unsafe.Pointer(&u)), uniformSize)) //nolint:gosec // packed uniform struct
	if err != nil {
		return err
	}
	group, err := r.bindGroup(ub, dc.texture)
	if err != nil {
		return err
	}

	pass, err := r.pass(t, nil, nil)
	if err != nil {
		return err
	}
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, group, nil)
	pass.SetVertexBuffer(0, vb, 0)
	pass.SetIndexBuffer(ib, gputypes.IndexFormatUint32, 0)
	pass.SetScissorRect(uint32(scissor.X), uint32(scissor.Y), uint32(scissor.Width), uint32(scissor.Height)) // #nosec G115 -- clamped to the target
	switch dc.params.Stencil.Mode {
	case render.StencilWrite:
		pass.SetStencilReference(uint32(dc.params.Stencil.Value))
	case render.StencilTest:
		pass.SetStencilReference(1)
	}
	pass.DrawIndexed(uint32(len(indices)), 1, 0, 0, 0) // #nosec G115 -- index counts fit in uint32
	pass.End()
	return nil
}

// uniforms mirrors the WGSL Uniforms struct.
type uniforms struct {
	transform render.Matrix
	colorMult [4]float32
}

// buffer creates a transient GPU buffer holding data.
func (r *Renderer) buffer(label string, usage gputypes.BufferUsage, data []byte) (hal.Buffer, error) {
	buf, err := r.dev.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	r.buffers = append(r.buffers, buf)
	if err := r.dev.Queue.WriteBuffer(buf, 0, data); err != nil {
		return nil, fmt.Errorf("gpu: write %s: %w", label, err)
	}
	return buf, nil
}

func (r *Renderer) bindGroup(ub hal.Buffer, tex *texture) (hal.BindGroup, error) {
	layout := r.pipes.coloredLayout
	entries := []gputypes.BindGroupEntry{{
		Binding:  0,
		Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: uniformSize},
	}}
	if tex != nil {
		layout = r.pipes.texturedLayout
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()}},
			gputypes.BindGroupEntry{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		)
	}
	group, err := r.dev.Device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "lux_bind_group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create bind group: %w", err)
	}
	r.groups = append(r.groups, group)
	return group, nil
}

// pass begins a render pass on t that keeps existing contents, or clears
// color and stencil when clearColor or clearStencil is set.
func (r *Renderer) pass(t *target, clearColor *[4]float32, clearStencil *uint8) (hal.RenderPassEncoder, error) {
	enc, err := r.encoder()
	if err != nil {
		return nil, err
	}
	color := hal.RenderPassColorAttachment{
		View:    t.colorView,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if clearColor != nil {
		color.LoadOp = gputypes.LoadOpClear
		color.ClearValue = gputypes.Color{
			R: float64(clearColor[0]), G: float64(clearColor[1]),
			B: float64(clearColor[2]), A: float64(clearColor[3]),
		}
	}
	stencil := &hal.RenderPassDepthStencilAttachment{
		View:           t.stencilView,
		DepthLoadOp:    gputypes.LoadOpLoad,
		DepthStoreOp:   gputypes.StoreOpStore,
		StencilLoadOp:  gputypes.LoadOpLoad,
		StencilStoreOp: gputypes.StoreOpStore,
	}
	if clearStencil != nil {
		stencil.StencilLoadOp = gputypes.LoadOpClear
		stencil.StencilClearValue = uint32(*clearStencil)
	}
	return enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:                  "lux_pass",
		ColorAttachments:       []hal.RenderPassColorAttachment{color},
		DepthStencilAttachment: stencil,
	}), nil
}

// encoder returns the command encoder of the current frame.
func (r *Renderer) encoder() (hal.CommandEncoder, error) {
	if r.enc != nil {
		return r.enc, nil
	}
	enc, err := r.dev.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "lux_frame"})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding("lux_frame"); err != nil {
		enc.Destroy()
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}
	r.enc = enc
	return enc, nil
}

// Present submits the frame and waits for it to finish.
func (r *Renderer) Present() error {
	if r.closed {
		return render.ErrClosed
	}
	return r.submit()
}

// submit runs the recorded passes and releases the per-frame resources.
func (r *Renderer) submit() error {
	defer r.release()
	if r.enc == nil {
		return nil
	}
	enc := r.enc
	r.enc = nil
	defer enc.Destroy()
	cmd, err := enc.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer r.dev.Device.FreeCommandBuffer(cmd)
	if _, err := r.dev.Queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	if err := r.dev.Device.WaitIdle(); err != nil {
		return fmt.Errorf("gpu: wait idle: %w", err)
	}
	return nil
}

func (r *Renderer) release() {
	for _, g := range r.groups {
		r.dev.Device.DestroyBindGroup(g)
	}
	for _, b := range r.buffers {
		r.dev.Device.DestroyBuffer(b)
	}
	for _, t := range r.doomed {
		t.destroy(r.dev.Device)
	}
	clear(r.groups)
	clear(r.buffers)
	clear(r.doomed)
	r.groups, r.buffers, r.doomed = r.groups[:0], r.buffers[:0], r.doomed[:0]
}

// ReadPixels submits pending work and copies a target into an image.
func (r *Renderer) ReadPixels(id render.TextureID) (*image.RGBA, error) {
	t, err := r.target(id)
	if err != nil {
		return nil, err
	}
	if err := r.submit(); err != nil {
		return nil, err
	}

	w, h := uint32(t.width), uint32(t.height) // #nosec G115 -- positive target size
	bytesPerRow := w * 4
	// Texture-to-buffer copies need 256-byte aligned rows.
	aligned := (bytesPerRow + 255) &^ 255
	size := uint64(aligned) * uint64(h)
	staging, err := r.dev.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: "lux_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create readback buffer: %w", err)
	}
	defer r.dev.Device.DestroyBuffer(staging)

	enc, err := r.encoder()
	if err != nil {
		return nil, err
	}
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.color,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	enc.CopyTextureToBuffer(t.color, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: aligned, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: t.color, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.color,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	if err := r.submit(); err != nil {
		return nil, err
	}

	mapping, err := r.dev.Device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("gpu: map readback buffer: %w", err)
	}
	src := unsafe.Slice((*byte)(mapping.Ptr), size) //nolint:gosec // mapped staging buffer
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+int(bytesPerRow)], src[y*int(aligned):])
	}
	if err := r.dev.Device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("gpu: unmap readback buffer: %w", err)
	}
	return img, nil
}

// Close releases every resource and the device.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	err := r.submit()
	r.closed = true
	device := r.dev.Device
	for id, t := range r.textures {
		t.destroy(device)
		delete(r.textures, id)
	}
	r.screen.destroy(device)
	device.DestroySampler(r.sampler)
	r.pipes.destroy()
	r.dev.Release()
	slogger().Debug("gpu: renderer closed")
	return err
}
