// Package logging provides structured logging for the AC Infinity client.
//
// Logging is built on zap and is silent by default so CLI output stays
// clean. Set the ACINFINITY_LOG_LEVEL environment variable ("debug", "info",
// "warn", "error") to enable console logging, or call Initialize with an
// explicit level.
//
// The package exposes a process-wide logger through thin level helpers
// (Info, Debug, Warn, Error) plus a couple of domain helpers for the common
// events worth a consistent field set: API round trips and refresh passes.
package logging
