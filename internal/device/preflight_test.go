package device_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"cartkeep/internal/device"
)

func TestCheckTargetWritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if res := device.CheckTargetWritable(dir); !res.Passed {
		t.Fatalf("writable temp dir failed: %s", res.Detail)
	}

	if res := device.CheckTargetWritable(filepath.Join(dir, "missing")); res.Passed {
		t.Fatal("nonexistent path passed")
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if res := device.CheckTargetWritable(file); res.Passed {
		t.Fatal("regular file passed directory check")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if res := device.CheckFreeSpace(dir, 1); !res.Passed {
		t.Fatalf("one byte requirement failed: %s", res.Detail)
	}
	if res := device.CheckFreeSpace(dir, math.MaxUint64); res.Passed {
		t.Fatal("impossible space requirement passed")
	}
}

func TestRunAllStopsAfterUnwritableTarget(t *testing.T) {
	t.Parallel()

	results := device.RunAll(filepath.Join(t.TempDir(), "missing"), 0)
	if len(results) != 1 {
		t.Fatalf("expected a single failed check, got %d", len(results))
	}
	if results[0].Passed {
		t.Fatal("missing target passed")
	}
	if device.Passed(results) {
		t.Fatal("result set reported as passed")
	}

	results = device.RunAll(t.TempDir(), 0)
	if !device.Passed(results) {
		t.Fatalf("healthy target failed: %+v", results)
	}
}
