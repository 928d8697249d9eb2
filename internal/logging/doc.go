// Package logging builds slog loggers for the pidlock CLI and supervisor.
//
// It maps config values to handler options (console or JSON output, level
// parsing, multi-destination writers) and exposes small attribute helpers so
// call sites stay terse and field names stay consistent.
package logging
