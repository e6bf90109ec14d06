//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/lux/render"
	"github.com/gogpu/wgpu/hal"
)

// uniformSize is the byte size of the draw uniforms.
// Layout: transform (mat4x4<f32>) + color_mult (vec4<f32>) = 80 bytes.
const uniformSize = 80

// Vertex strides: position + RGBA color, and position + texture coordinates.
const (
	colorVertexStride = 24
	texVertexStride   = 16
)

const (
	colorFormat   = gputypes.TextureFormatRGBA8Unorm
	stencilFormat = gputypes.TextureFormatDepth24PlusStencil8
)

// pipelineKey selects one render pipeline variant.
type pipelineKey struct {
	textured bool
	topology gputypes.PrimitiveTopology
	stencil  render.StencilMode
}

// pipelines creates render pipeline variants on first use. Both shaders
// share a pipeline layout per kind; the stencil mode and topology are
// baked into each pipeline.
type pipelines struct {
	device     hal.Device
	precompile bool

	coloredShader  hal.ShaderModule
	texturedShader hal.ShaderModule

	coloredLayout      hal.BindGroupLayout
	texturedLayout     hal.BindGroupLayout
	coloredPipeLayout  hal.PipelineLayout
	texturedPipeLayout hal.PipelineLayout

	cache map[pipelineKey]hal.RenderPipeline
}

func newPipelines(device hal.Device, precompile bool) (*pipelines, error) {
	p := &pipelines{
		device:     device,
		precompile: precompile,
		cache:      make(map[pipelineKey]hal.RenderPipeline),
	}
	if err := p.init(); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *pipelines) init() error {
	var err error
	if p.coloredShader, err = p.shader("lux_colored", coloredShaderSource); err != nil {
		return err
	}
	if p.texturedShader, err = p.shader("lux_textured", texturedShaderSource); err != nil {
		return err
	}

	uniform := gputypes.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer: &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: uniformSize,
		},
	}
	p.coloredLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "lux_colored_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{uniform},
	})
	if err != nil {
		return fmt.Errorf("create colored bind group layout: %w", err)
	}
	p.texturedLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "lux_textured_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			uniform,
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create textured bind group layout: %w", err)
	}

	p.coloredPipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "lux_colored_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.coloredLayout},
	})
	if err != nil {
		return fmt.Errorf("create colored pipeline layout: %w", err)
	}
	p.texturedPipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "lux_textured_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.texturedLayout},
	})
	if err != nil {
		return fmt.Errorf("create textured pipeline layout: %w", err)
	}
	return nil
}

func (p *pipelines) shader(label, wgsl string) (hal.ShaderModule, error) {
	src, err := shaderSource(wgsl, p.precompile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	m, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{Label: label, Source: src})
	if err != nil {
		return nil, fmt.Errorf("create shader %s: %w", label, err)
	}
	return m, nil
}

// get returns the pipeline for key, creating it when missing.
func (p *pipelines) get(key pipelineKey) (hal.RenderPipeline, error) {
	if rp, ok := p.cache[key]; ok {
		return rp, nil
	}
	rp, err := p.create(key)
	if err != nil {
		return nil, err
	}
	p.cache[key] = rp
	slogger().Debug("gpu: pipeline created",
		"textured", key.textured, "topology", key.topology, "stencil", key.stencil)
	return rp, nil
}

func (p *pipelines) create(key pipelineKey) (hal.RenderPipeline, error) {
	module, layout := p.coloredShader, p.coloredPipeLayout
	blend := gputypes.BlendStateAlpha()
	vertexLayout := gputypes.VertexBufferLayout{
		ArrayStride: colorVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
		},
	}
	label := "lux_colored"
	if key.textured {
		module, layout = p.texturedShader, p.texturedPipeLayout
		blend = gputypes.BlendStatePremultiplied()
		vertexLayout = gputypes.VertexBufferLayout{
			ArrayStride: texVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		}
		label = "lux_textured"
	}

	writeMask := gputypes.ColorWriteMaskAll
	if key.stencil == render.StencilWrite {
		writeMask = gputypes.ColorWriteMaskNone
	}

	rp, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{vertexLayout},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  key.topology,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		DepthStencil: depthStencil(key.stencil),
		Multisample:  gputypes.DefaultMultisampleState(),
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    colorFormat,
				Blend:     &blend,
				WriteMask: writeMask,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}
	return rp, nil
}

// depthStencil returns the stencil state of a mode. Writes always fail the
// test so the fail op stores the reference and color is left untouched.
// Tests pass where the buffer equals the reference.
func depthStencil(mode render.StencilMode) *hal.DepthStencilState {
	face := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	var writeMask uint32
	switch mode {
	case render.StencilWrite:
		face.Compare = gputypes.CompareFunctionNever
		face.FailOp = hal.StencilOperationReplace
		writeMask = 0xFF
	case render.StencilTest:
		face.Compare = gputypes.CompareFunctionEqual
	}
	return &hal.DepthStencilState{
		Format:            stencilFormat,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      face,
		StencilBack:       face,
		StencilReadMask:   0xFF,
		StencilWriteMask:  writeMask,
	}
}

func (p *pipelines) destroy() {
	for k, rp := range p.cache {
		p.device.DestroyRenderPipeline(rp)
		delete(p.cache, k)
	}
	if p.coloredPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.coloredPipeLayout)
	}
	if p.texturedPipeLayout != nil {
		p.device.DestroyPipelineLayout(p.texturedPipeLayout)
	}
	if p.coloredLayout != nil {
		p.device.DestroyBindGroupLayout(p.coloredLayout)
	}
	if p.texturedLayout != nil {
		p.device.DestroyBindGroupLayout(p.texturedLayout)
	}
	if p.coloredShader != nil {
		p.device.DestroyShaderModule(p.coloredShader)
	}
	if p.texturedShader != nil {
		p.device.DestroyShaderModule(p.texturedShader)
	}
	p.coloredShader, p.texturedShader = nil, nil
	p.coloredLayout, p.texturedLayout = nil, nil
	p.coloredPipeLayout, p.texturedPipeLayout = nil, nil
}
