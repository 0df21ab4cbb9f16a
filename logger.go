package blit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Hosts log from their own goroutines
// (decoders, terminal event loop), so access is atomic.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for blit and its sub-packages
// (input, mixer, font and the hosts). By default nothing is logged.
// Pass nil to restore the silent default.
//
// Log levels used by blit:
//   - [slog.LevelDebug]: skipped blits of images still decoding, absent on-screen controls
//   - [slog.LevelInfo]: lifecycle events (surface attached to a window, audio backend started)
//   - [slog.LevelWarn]: decode failures, audio tracks that could not be opened
//
// Example:
//
//	blit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by blit.
// Sub-packages call this instead of holding their own copy so that a
// later SetLogger takes effect everywhere.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
