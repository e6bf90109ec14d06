// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (a window toolkit that already owns a device) passes it to the
// gpu backend so both draw with the same device and queue. The backend
// expects Device and Queue to hold a wgpu hal.Device and hal.Queue.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle without a device.
// Backends given one fall back to opening their own device.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns the undefined format.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "none", Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceHandle = NullDeviceHandle{}

// HasDevice reports whether h carries a usable device and queue.
func HasDevice(h DeviceHandle) bool {
	return h != nil && h.Device() != nil && h.Queue() != nil
}
