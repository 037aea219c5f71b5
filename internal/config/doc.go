// Package config loads, normalizes, and validates catalog browser settings.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the MUSICPLAYER_SOURCE
// environment fallback for the metadata location. The Config type centralizes
// every knob the CLI and the HTTP browser API need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
