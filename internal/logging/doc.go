// Package logging assembles structured slog loggers and formatting helpers used
// across romhash.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so hashing code can tag log lines
// with platform slugs, ROM identifiers, and correlation IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail, plus
// pruning of old daily log files.
package logging
