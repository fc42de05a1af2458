package pixelshader

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so callers skip
// building attributes when logging is off.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

// logger is swapped atomically so SetLogger may race with shading.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silent)
}

// SetLogger routes pixelshader diagnostics, including those of the recipe
// package, to l. Nil restores the default, which logs nothing.
//
// Levels:
//   - [slog.LevelDebug]: kernel appends, curve rebuilds, whole-image passes
//   - [slog.LevelWarn]: rejected presets and overlays
//   - [slog.LevelError]: a kernel failed on a scanline
//
// Example:
//
//	pixelshader.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Load()
}
