// Package testsupport provides fixtures shared by package tests: temp-dir
// backed configs and pre-populated library stores.
package testsupport

import (
	"path/filepath"
	"testing"

	"cartkeep/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AssetCacheDir = filepath.Join(base, "assets")
	cfg.Paths.BiosDir = filepath.Join(base, "bios")
	cfg.Paths.HashDBPath = filepath.Join(base, "hashes.db")
	cfg.Catalog.APIKey = "test"
	cfg.Logging.Format = "json"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithCatalogURL points the test config at a stub catalog server.
func WithCatalogURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.Catalog.BaseURL = url
	}
}

// WithCartridgeName overrides the default cartridge name.
func WithCartridgeName(name string) ConfigOption {
	return func(c *config.Config) {
		c.Device.CartridgeName = name
	}
}
