// Package neogl implements the core of a retained-mode GPU command queue
// and 2D scene-graph renderer: a render job walks a tree of render-nodes,
// recording draw/clear batches into a command queue that merges adjacent
// compatible batches, reorders them by framebuffer, and executes them
// against an OpenGL 3.2 / OpenGL ES 2.0+ context.
package neogl

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
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

// SetLogger configures the logger used by neogl and its sub-packages
// (gpucmd, uniform, driver, renderjob, glyph, icon). By default neogl
// produces no log output.
//
// Log levels:
//   - [slog.LevelDebug], [slog.LevelInfo]: no package emits records at
//     these levels.
//   - [slog.LevelWarn]: the non-fatal conditions the core logs and
//     continues past: batch-limit exceeded, texture-size clamp,
//     render-target creation failure, shader compile/link failure.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently in use. Sub-packages call this
// instead of holding their own reference so a single SetLogger call
// retargets every package at once.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
