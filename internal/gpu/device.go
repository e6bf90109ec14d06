//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/lux/render"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoDevice is returned when no GPU device can be opened or adopted.
var ErrNoDevice = render.ErrNoDevice

// Device is a hal device and its queue. A device opened by OpenDevice is
// owned and destroyed by Release; an adopted one belongs to the host.
type Device struct {
	Device hal.Device
	Queue  hal.Queue

	name     string
	instance hal.Instance
	owned    bool
}

// Name returns the adapter name.
func (d *Device) Name() string { return d.name }

// OpenDevice opens a device on the Vulkan hal backend.
func OpenDevice() (*Device, error) {
	return OpenBackendDevice(gputypes.BackendVulkan)
}

// OpenBackendDevice opens a device on a registered hal backend, preferring
// discrete and integrated GPUs over other adapters.
func OpenBackendDevice(variant gputypes.Backend) (*Device, error) {
	api, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %s backend not available", ErrNoDevice, variant)
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters found", ErrNoDevice)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	open, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	slogger().Info("gpu: device opened", "adapter", selected.Info.Name, "type", selected.Info.DeviceType)
	return &Device{
		Device:   open.Device,
		Queue:    open.Queue,
		name:     selected.Info.Name,
		instance: instance,
		owned:    true,
	}, nil
}

// FromProvider adopts the device of a host application. The provider
// either exposes hal objects through HalDevice and HalQueue, or returns
// them directly from Device and Queue.
func FromProvider(p gpucontext.DeviceProvider) (*Device, error) {
	if p == nil {
		return nil, ErrNoDevice
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	var dev, queue any
	if hp, ok := p.(halProvider); ok {
		dev, queue = hp.HalDevice(), hp.HalQueue()
	} else {
		dev, queue = p.Device(), p.Queue()
	}
	hd, ok := dev.(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: provider device is %T", ErrNoDevice, dev)
	}
	hq, ok := queue.(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: provider queue is %T", ErrNoDevice, queue)
	}
	name := p.AdapterInfo().Name
	slogger().Info("gpu: using host device", "adapter", name)
	return &Device{Device: hd, Queue: hq, name: name}, nil
}

// Release destroys an owned device. Adopted devices are left alone.
func (d *Device) Release() {
	if !d.owned {
		return
	}
	if d.Device != nil {
		d.Device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
	}
	d.Device, d.Queue, d.instance = nil, nil, nil
}
