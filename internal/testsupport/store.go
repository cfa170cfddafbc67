package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cartkeep/internal/library"
)

// NewStore opens a library store over a fresh temp directory and closes it
// when the test ends.
func NewStore(t testing.TB) *library.Store {
	t.Helper()

	store, err := library.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open library store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedTitle inserts a minimal title with a backing rom file. Fields not set
// on the template get sensible defaults.
func SeedTitle(t testing.TB, store *library.Store, title *library.Title) *library.Title {
	t.Helper()

	if title.DisplayTitle == "" {
		title.DisplayTitle = title.ID
	}
	if title.SyncTitle == "" {
		title.SyncTitle = title.DisplayTitle
	}
	if title.PlatformID == "" {
		title.PlatformID = "nes"
	}
	if title.RomFileName == "" {
		title.RomFileName = title.ID + ".nes"
	}
	if title.OriginalRomFileName == "" {
		title.OriginalRomFileName = title.RomFileName
	}

	if err := store.MaterializeDirs(title.ID); err != nil {
		t.Fatalf("materialize dirs: %v", err)
	}
	romPath := filepath.Join(store.Paths(title.ID).RomDir(), title.RomFileName)
	if err := os.WriteFile(romPath, []byte(title.CRC32+title.ID), 0o644); err != nil {
		t.Fatalf("write rom: %v", err)
	}
	if err := store.Insert(title); err != nil {
		t.Fatalf("insert title: %v", err)
	}
	return title
}
