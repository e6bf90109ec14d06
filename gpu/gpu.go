//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu registers the GPU backend of lux.
//
// Import it for its side effect to make the "gpu" backend available to
// lux.NewWindow. It is tried before the software backend:
//
//	import _ "github.com/gogpu/lux/gpu"
//
// When the backend config carries a host device (lux.WithDeviceProvider)
// that device is adopted; otherwise a Vulkan device is opened. If no
// device is available, opening fails and the next backend is tried.
package gpu

import (
	"github.com/gogpu/lux/backend"
	gpuimpl "github.com/gogpu/lux/internal/gpu"
	"github.com/gogpu/lux/render"
)

func init() {
	backend.Register(backend.NameGPU, Open)
}

// Open opens a GPU renderer for cfg.
func Open(cfg backend.Config) (render.Backend, error) {
	var (
		dev *gpuimpl.Device
		err error
	)
	if render.HasDevice(cfg.Device) {
		dev, err = gpuimpl.FromProvider(cfg.Device)
	} else {
		dev, err = gpuimpl.OpenDevice()
	}
	if err != nil {
		return nil, err
	}
	r, err := gpuimpl.New(dev, cfg.Width, cfg.Height, gpuimpl.Options{})
	if err != nil {
		dev.Release()
		return nil, err
	}
	if cfg.Samples > 1 {
		backend.Logger().Warn("gpu: multisampling not supported, drawing with one sample", "samples", cfg.Samples)
	}
	return r, nil
}
