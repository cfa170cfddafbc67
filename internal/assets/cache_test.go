package assets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"cartkeep/internal/assets"
)

func TestGetLocalPathDownloadsOnce(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("core-bytes"))
	}))
	defer server.Close()

	cache, err := assets.NewCache(t.TempDir(), server.Client(), nil)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	ctx := context.Background()
	first, err := cache.GetLocalPath(ctx, server.URL+"/cores/mgba_libretro.so", "")
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(data) != "core-bytes" {
		t.Fatalf("unexpected cached contents: %q", data)
	}

	second, err := cache.GetLocalPath(ctx, server.URL+"/cores/mgba_libretro.so", "")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if second != first {
		t.Fatalf("cache path changed: %q vs %q", second, first)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one download, got %d", hits.Load())
	}
}

func TestGetLocalPathUsesHint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer server.Close()

	cache, err := assets.NewCache(t.TempDir(), server.Client(), nil)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	path, err := cache.GetLocalPath(context.Background(), server.URL, "boxart/front/42-1.jpg")
	if err != nil {
		t.Fatalf("fetch with hint: %v", err)
	}
	if !strings.Contains(path, "boxart_front_42-1.jpg") {
		t.Fatalf("hint not applied to cache name: %q", path)
	}
}

func TestGetLocalPathNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	cache, err := assets.NewCache(t.TempDir(), server.Client(), nil)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	if _, err := cache.GetLocalPath(context.Background(), server.URL+"/missing.bin", ""); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
