// Package config loads, normalizes, and validates fendlconv configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates every knob against the release
// catalog before the pipeline sees it. The Config type centralizes the
// settings the CLI needs, so downstream code receives sanitized paths and
// canonical particle and libver values in one pass.
package config
