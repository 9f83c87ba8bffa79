package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.DataDir = strings.TrimSpace(c.Paths.DataDir)
	if c.Paths.DataDir == "" {
		if value, ok := os.LookupEnv("NEXAFS_DATA_DIR"); ok {
			c.Paths.DataDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.DataDir != "" {
		if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
			return fmt.Errorf("paths.data_dir: %w", err)
		}
	}
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeScan() {
	// Extension case is preserved: suffix matching is exact-case.
	c.Scan.Extension = strings.TrimSpace(c.Scan.Extension)
	if c.Scan.Extension == "" {
		c.Scan.Extension = defaultExtension
	}
	if !strings.HasPrefix(c.Scan.Extension, ".") {
		c.Scan.Extension = "." + c.Scan.Extension
	}
	c.Scan.CalibrationDir = strings.TrimSpace(c.Scan.CalibrationDir)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
