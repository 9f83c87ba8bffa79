// Package report renders scan results for humans: the per-measurement
// loading lines, summary tables, and colorized status lines shared by the
// CLI commands.
package report
