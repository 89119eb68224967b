package torch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/MrGo2008/torch/accel"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for torch and all its sub-packages.
// By default, torch produces no log output. Call SetLogger to enable it.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically
// and propagates it to the accelerator layer and the active backend.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by torch:
//   - [slog.LevelDebug]: internal diagnostics (device opens, cache state)
//   - [slog.LevelInfo]: important lifecycle events (backend selected)
//   - [slog.LevelWarn]: non-fatal issues (compute probe failure)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	torch.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		loggerPtr.Store(newNopLogger())
	} else {
		loggerPtr.Store(l)
	}

	// accel handles its own nil default and backend propagation.
	accel.SetLogger(l)
}

// Logger returns the current logger used by torch.
// Sub-packages call this to share the same logger configuration without
// introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
