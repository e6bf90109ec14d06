package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/lux/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoBackend is returned by OpenBest when every registered backend failed.
	ErrNoBackend = errors.New("backend: no backend could be opened")
)

// Config describes the surface a backend is opened for.
type Config struct {
	Width, Height int

	// Title is informational; headless backends ignore it.
	Title string

	// Samples is the MSAA sample count. Backends clamp it to what they support.
	Samples int

	// Device is an optional host-provided GPU device.
	Device render.DeviceHandle
}

// Validate checks that cfg describes a drawable surface.
func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("backend: %dx%d: %w", cfg.Width, cfg.Height, render.ErrInvalidSize)
	}
	return nil
}

// Factory opens a backend for a configuration.
type Factory func(cfg Config) (render.Backend, error)
