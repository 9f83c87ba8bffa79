// Package config loads, normalizes, and validates nexafs configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NEXAFS_DATA_DIR. The Config type centralizes every knob the CLI needs so
// the data root, scan policy, and log routing are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
