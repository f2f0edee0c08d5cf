// Package slogobs provides an observability.Provider implementation backed by
// Go's standard library log/slog package.
// It routes span events and levelled log records through a configurable
// slog.Logger, making it suitable for lightweight observability without
// external dependencies. The main entry point is [New]; pass [WithLogger],
// [WithLevel], or [WithOutput] to tune the destination and verbosity.
package slogobs
