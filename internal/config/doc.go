// Package config loads, normalizes, and validates personmatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the PERSONMATCH_DEFAULT_MODE
// environment fallback. The Config type centralizes every knob the CLI and the
// resolver need: where output and state live, the default matching mode, how
// input tables are parsed, and how logs are written.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
