package backend

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/lux/render"
)

// Well-known backend names.
const (
	NameGPU       = "gpu"
	NameSoftware  = "software"
	NameRecording = "recording"
)

// Priority order for backend selection (first that opens wins).
// GPU > Software > Recording.
var priority = []string{NameGPU, NameSoftware, NameRecording}

var registry = gpucontext.NewRegistry[Factory](gpucontext.WithPriority(priority...))

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// A factory registered under an existing name replaces it.
func Register(name string, f Factory) {
	registry.Register(name, func() Factory { return f })
	Logger().Debug("backend registered", "name", name)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registry.Unregister(name)
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Available returns the registered backend names in selection order.
func Available() []string {
	return order(registry.Available())
}

// Best returns the highest-priority registered backend name, or "" when
// none is registered. It does not check that the backend opens.
func Best() string {
	names := Available()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Open opens the named backend.
func Open(name string, cfg Config) (render.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := registry.Get(name)
	if f == nil {
		return nil, fmt.Errorf("backend %q: %w", name, ErrBackendNotAvailable)
	}
	b, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", name, err)
	}
	Logger().Info("backend opened", "name", name, "width", cfg.Width, "height", cfg.Height)
	return b, nil
}

// OpenBest opens the first backend, in priority order, that opens without
// error. Failures are logged and joined into the returned error when no
// backend opens.
func OpenBest(cfg Config) (render.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var errs []error
	for _, name := range Available() {
		b, err := Open(name, cfg)
		if err == nil {
			return b, nil
		}
		Logger().Warn("backend unavailable, trying next", "name", name, "err", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(append([]error{ErrNoBackend}, errs...)...)
}

// order sorts names by priority; unknown names follow alphabetically.
func order(names []string) []string {
	rank := func(n string) int {
		if i := slices.Index(priority, n); i >= 0 {
			return i
		}
		return len(priority)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := rank(a) - rank(b); d != 0 {
			return d
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	return names
}
