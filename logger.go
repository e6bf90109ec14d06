package lux

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/lux/backend"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for lux and its backends.
// By default lux produces no log output. Pass nil to silence it again.
//
// Log levels used by lux:
//   - [slog.LevelDebug]: batch flushes, texture uploads, pipeline creation
//   - [slog.LevelInfo]: window and backend lifecycle, selected GPU adapter
//   - [slog.LevelWarn]: pool fallbacks, resources released twice
//   - [slog.LevelError]: draw submissions that failed
//
// Example:
//
//	lux.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	backend.SetLogger(l)
}

// Logger returns the current logger used by lux.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
