package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Extension == "." {
		return errors.New("scan.extension must name a file suffix (e.g. \".txt\")")
	}
	if strings.ContainsAny(c.Scan.CalibrationDir, "/\\") {
		return fmt.Errorf("scan.calibration_dir must be a bare directory name, got %q", c.Scan.CalibrationDir)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
