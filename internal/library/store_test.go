package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"cartkeep/internal/library"
)

func newStore(t *testing.T) *library.Store {
	t.Helper()
	store, err := library.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func insertTitle(t *testing.T, store *library.Store, id, crc string) *library.Title {
	t.Helper()
	title := &library.Title{
		ID:           id,
		DisplayTitle: id,
		SyncTitle:    id,
		PlatformID:   "nes",
		CRC32:        crc,
		RomFileName:  id + ".nes",
	}
	if err := store.MaterializeDirs(id); err != nil {
		t.Fatalf("materialize dirs: %v", err)
	}
	romPath := filepath.Join(store.Paths(id).RomDir(), title.RomFileName)
	if err := os.WriteFile(romPath, []byte(crc), 0o644); err != nil {
		t.Fatalf("write rom: %v", err)
	}
	if err := store.Insert(title); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return title
}

func TestInsertRejectsDuplicateContent(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	insertTitle(t, store, "zelda", "aabbccdd")

	dup := &library.Title{ID: "zelda_2", CRC32: "aabbccdd", RomFileName: "zelda_2.nes"}
	err := store.Insert(dup)
	if err == nil {
		t.Fatal("expected duplicate content error")
	}
}

func TestReloadSkipsCorruptRecords(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := library.Open(root, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	title := &library.Title{ID: "metroid", CRC32: "11223344", RomFileName: "metroid.nes"}
	if err := store.MaterializeDirs("metroid"); err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if err := os.WriteFile(filepath.Join(store.Paths("metroid").RomDir(), "metroid.nes"), []byte("rom"), 0o644); err != nil {
		t.Fatalf("write rom: %v", err)
	}
	if err := store.Insert(title); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// A record whose id does not match its directory is skipped on load.
	badDir := filepath.Join(root, "impostor")
	if err := os.MkdirAll(badDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "impostor.json"), []byte(`{"id":"other"}`), 0o644); err != nil {
		t.Fatalf("write bad record: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := library.Open(root, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if _, ok := reopened.Get("metroid"); !ok {
		t.Fatal("valid title lost on reload")
	}
	if _, ok := reopened.Get("impostor"); ok {
		t.Fatal("mismatched record loaded")
	}
	if len(reopened.IDs()) != 1 {
		t.Fatalf("expected one title, got %v", reopened.IDs())
	}
}

func TestOpenRefusesSecondLock(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := library.Open(root, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := library.Open(root, nil); err == nil {
		t.Fatal("expected lock contention error")
	}
}

func TestDeleteRemovesAssetsAndIndexEntries(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	insertTitle(t, store, "contra", "99887766")

	if err := store.Delete("contra"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.Get("contra"); ok {
		t.Fatal("title still indexed after delete")
	}
	if store.HasCRC("99887766") {
		t.Fatal("crc still indexed after delete")
	}
	if _, err := os.Stat(store.Paths("contra").Dir()); !os.IsNotExist(err) {
		t.Fatalf("title directory still present: %v", err)
	}
}

func TestSelectedPreservesLibraryOrder(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	a := insertTitle(t, store, "alpha", "00000001")
	insertTitle(t, store, "beta", "00000002")
	c := insertTitle(t, store, "gamma", "00000003")

	a.Selected = true
	c.Selected = true
	if err := store.Save(a); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(c); err != nil {
		t.Fatalf("save: %v", err)
	}

	selected := store.Selected()
	if len(selected) != 2 || selected[0].ID != "alpha" || selected[1].ID != "gamma" {
		t.Fatalf("unexpected selection order: %+v", selected)
	}
}
