package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cartkeep/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Catalog.PageSize != 20 {
		t.Fatalf("default page size = %d", cfg.Catalog.PageSize)
	}
	if !filepath.IsAbs(cfg.Paths.LibraryDir) {
		t.Fatalf("library dir not normalized: %q", cfg.Paths.LibraryDir)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`library_dir = "` + filepath.Join(dir, "games") + `"`,
		"[catalog]",
		`base_url = "https://catalog.example/v1/"`,
		`api_key = "k"`,
		"[device]",
		`cartridge_name = " My Cart "`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolution mismatch: %q exists=%v", resolved, exists)
	}
	if cfg.Catalog.BaseURL != "https://catalog.example/v1" {
		t.Fatalf("base url not trimmed: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Device.CartridgeName != "My Cart" {
		t.Fatalf("cartridge name not trimmed: %q", cfg.Device.CartridgeName)
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for logging format")
	}
}

func TestSampleConfigNotEmpty(t *testing.T) {
	t.Parallel()

	if !strings.Contains(config.SampleConfig(), "[catalog]") {
		t.Fatal("sample config missing catalog section")
	}
}
