// Package logging assembles the structured slog loggers used across the
// conversion pipeline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so stage code tags log lines with the
// release, particle kind, and pipeline stage in a consistent shape. A no-op
// logger is provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing.
package logging
