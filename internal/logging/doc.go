// Package logging assembles the structured slog loggers used by the readorder
// command and batch runner.
//
// It owns the console and JSON handlers and the level and output plumbing.
// Console output is colorized only when it goes to a terminal. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// The library packages never log; only the command layer and the batch
// runner take a *slog.Logger.
package logging
