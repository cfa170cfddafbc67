// Package assets provides the local download cache for auxiliary binary
// files: emulator cores, BIOS images, and artwork sources. The cache
// guarantees a file is present locally before returning its path.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cartkeep/internal/fileutil"
	"cartkeep/internal/logging"
)

const defaultHTTPTimeout = 60 * time.Second

// Cache downloads remote assets into a local directory exactly once.
type Cache struct {
	root   string
	http   *http.Client
	logger *slog.Logger
}

// NewCache creates a cache rooted at dir. A nil client falls back to a
// default with a request timeout.
func NewCache(dir string, client *http.Client, logger *slog.Logger) (*Cache, error) {
	root := strings.TrimSpace(dir)
	if root == "" {
		return nil, errors.New("assets: cache directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create cache dir: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Cache{
		root:   root,
		http:   client,
		logger: logging.NewComponentLogger(logger, "assets"),
	}, nil
}

// GetLocalPath returns a local path holding the contents of sourceURL,
// downloading it on first use. The hint names the cached file; when empty
// the URL's final path segment is used.
func (c *Cache) GetLocalPath(ctx context.Context, sourceURL, hint string) (string, error) {
	name := cacheFileName(sourceURL, hint)
	if name == "" {
		return "", fmt.Errorf("assets: cannot derive cache name for %q", sourceURL)
	}
	local := filepath.Join(c.root, name)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("assets: stat cached file: %w", err)
	}

	if err := c.download(ctx, sourceURL, local); err != nil {
		return "", err
	}
	c.logger.Debug("asset cached",
		logging.String("url", sourceURL),
		logging.String("path", local))
	return local, nil
}

func (c *Cache) download(ctx context.Context, sourceURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("assets: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("assets: fetch %q: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assets: fetch %q: unexpected status %s", sourceURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("assets: read %q: %w", sourceURL, err)
	}
	return fileutil.WriteFileAtomic(dst, data, 0o644)
}

func cacheFileName(sourceURL, hint string) string {
	hint = strings.TrimSpace(hint)
	if hint != "" {
		// Hints may carry path separators from the catalog's image paths.
		return sanitizeRelative(hint)
	}
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	return sanitizeRelative(path.Base(parsed.Path))
}

func sanitizeRelative(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.ReplaceAll(p, "..", "")
	p = strings.Trim(p, "/")
	return strings.ReplaceAll(p, "/", "_")
}
