// Package config loads, normalizes, and validates romhash configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ROMHASH_RAHASHER_BINARY
// environment override. The Config type centralizes every knob the CLI and
// batch scanner need so the catalog location and RAHasher invocation settings
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
