// Package logging assembles the structured slog loggers used across nexafs.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so commands tag log lines with
// the same molecule/edge/run fields everywhere. Log output is routed to
// stderr (and optionally a log file) so scan results on stdout stay clean.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
