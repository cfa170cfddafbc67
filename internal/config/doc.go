// Package config loads, validates, and normalizes the cartkeep TOML
// configuration. Paths are tilde-expanded and made absolute at load time so
// the rest of the program never deals with relative or user-style paths.
package config
