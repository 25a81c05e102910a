// Package logging assembles the structured slog loggers used across ffui.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes small attribute helpers so command and session code
// emit log lines with a consistent shape. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
