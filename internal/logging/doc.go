// Package logging assembles structured slog loggers and formatting helpers used
// across personmatch.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so resolver stages tag log lines with the
// run identifier and stage name. A no-op logger is provided for tests and for
// wiring code that runs before configuration is available.
package logging
