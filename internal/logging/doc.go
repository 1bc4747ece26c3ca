// Package logging builds the slog loggers used across trec.
//
// It maps config values to handler construction (console text or JSON, level
// parsing, multi-writer output including the on-disk log file) and provides
// small attr helpers so call sites stay tidy.
package logging
