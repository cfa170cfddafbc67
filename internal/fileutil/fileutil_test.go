package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cartkeep/internal/fileutil"
)

func TestCopyIfNewerSkipsNewerTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("source"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := os.WriteFile(dst, []byte("target"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, past, past); err != nil {
		t.Fatalf("age source: %v", err)
	}

	copied, err := fileutil.CopyIfNewer(src, dst)
	if err != nil {
		t.Fatalf("copy if newer: %v", err)
	}
	if copied {
		t.Fatal("expected copy to be skipped for newer target")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(data) != "target" {
		t.Fatalf("target overwritten: %q", data)
	}
}

func TestCopyIfNewerOverwritesOlderTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "nested", "dst.bin")

	if err := os.WriteFile(src, []byte("fresh"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	copied, err := fileutil.CopyIfNewer(src, dst)
	if err != nil {
		t.Fatalf("copy if newer: %v", err)
	}
	if !copied {
		t.Fatal("expected copy for absent target")
	}

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(dst, past, past); err != nil {
		t.Fatalf("age target: %v", err)
	}
	copied, err = fileutil.CopyIfNewer(src, dst)
	if err != nil {
		t.Fatalf("second copy: %v", err)
	}
	if !copied {
		t.Fatal("expected copy for older target")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(data) != "fresh" {
		t.Fatalf("unexpected target contents: %q", data)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "record.json")
	if err := fileutil.WriteFileAtomic(path, []byte(`{"id":"x"}`), 0o644); err != nil {
		t.Fatalf("atomic write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"id":"x"}` {
		t.Fatalf("unexpected contents: %q", data)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %d entries", len(entries))
	}
}
