// Package config loads, validates, and normalizes scribe's TOML
// configuration.
//
// A Config is constructed once at process start and passed by pointer into
// every component constructor; no component reads ambient global state. Path
// fields are tilde-expanded and made absolute during Load.
package config
