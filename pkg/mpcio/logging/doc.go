// Package logging defines the small structured-logging surface used across
// the I/O layer.
//
// The Logger interface is a thin subset of log/slog so applications can plug
// in their own implementation or redaction policy. Share contents and host
// plaintext must never reach a log line; use Redacted when a record needs to
// mention that a value exists.
package logging
