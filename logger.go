package swrast

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/swrast/internal/raster"
)

// nopHandler drops every record. Enabled reports false, so attributes of
// disabled log calls are never evaluated.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the device-wide logger shared by every Device.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger used by devices and the rasterizer. swrast is
// silent until SetLogger is called; nil makes it silent again. It may be
// called while draws are running on other goroutines.
//
// Levels:
//   - [slog.LevelDebug]: one record per draw with vertex, triangle and pixel counts
//   - [slog.LevelInfo]: device creation and destruction
//   - [slog.LevelWarn]: varying heap exhaustion, release of a resource the device does not own
//
// Example:
//
//	swrast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	raster.SetLogger(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
