//go:build !nogpu

package gpu

import (
	"log/slog"

	"github.com/gogpu/lux/backend"
)

// slogger returns the logger shared with the backend registry, which
// lux.SetLogger configures.
func slogger() *slog.Logger { return backend.Logger() }
