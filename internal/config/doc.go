// Package config loads, normalizes, and validates chaptersplit configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_TOKEN for the pyannote voice activity detector. Always obtain settings
// through this package so downstream code receives absolute paths and
// canonical log formats.
package config
