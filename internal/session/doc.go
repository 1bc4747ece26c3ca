// Package session defines the canonical recording model shared by every part
// of the engine: timestamped frames, the Session value that owns them, and the
// versioned JSON document format used on disk.
//
// Sessions are values. Capture finalization produces one, and every edit
// (trim, resize, dead-time compression) returns a new Session rather than
// mutating its input, so an original recording always stays recoverable while
// derived views exist.
//
// Loading rejects documents whose major format version differs from
// FormatVersion and reports structural problems with the offending field;
// everything else in this package is total and never fails.
package session
