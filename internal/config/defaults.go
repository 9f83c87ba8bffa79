package config

const (
	defaultExtension      = ".txt"
	defaultCalibrationDir = "Energy Calibration"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Extension:      defaultExtension,
			CalibrationDir: defaultCalibrationDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
