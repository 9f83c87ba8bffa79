// Package testsupport provides shared fixtures for nexafs tests: canned
// configurations and on-disk archive trees.
package testsupport

import (
	"path/filepath"
	"testing"

	"nexafs/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithAllEdges enables full edge traversal on the test config.
func WithAllEdges() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.AllEdges = true
	}
}

// WithoutLogDir clears the log directory so runs stay side-effect free.
func WithoutLogDir() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.LogDir = ""
	}
}
