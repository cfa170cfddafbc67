// Package hashdb persists the mapping from rom content hashes to external
// catalog identifiers. Enrichment uses it to partition titles into exact
// matches and fuzzy candidates.
package hashdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; mismatched databases must be re-imported.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("hashdb schema version mismatch")

// DB wraps the SQLite hash database.
type DB struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the hash database at path and verifies
// the schema.
func Open(path string) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("hashdb: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("hashdb: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("hashdb: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("hashdb: apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &DB{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Path returns the on-disk database location.
func (d *DB) Path() string { return d.path }

func (d *DB) initSchema(ctx context.Context) error {
	var tableExists int
	err := d.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("hashdb: check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return d.createSchema(ctx)
	}

	var version int
	err = d.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("hashdb: read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete the database and re-import)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (d *DB) createSchema(ctx context.Context) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("hashdb: begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("hashdb: create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("hashdb: record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("hashdb: commit schema: %w", err)
	}
	return nil
}

// Lookup returns the catalog id mapped to a crc32 hex string, or false when
// unmapped.
func (d *DB) Lookup(ctx context.Context, crc string) (int64, bool, error) {
	crc = normalizeCRC(crc)
	if crc == "" {
		return 0, false, nil
	}
	var catalogID int64
	err := d.db.QueryRowContext(ctx,
		"SELECT catalog_id FROM rom_hashes WHERE crc32 = ?", crc,
	).Scan(&catalogID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("hashdb: lookup %q: %w", crc, err)
	}
	return catalogID, true, nil
}

// Put inserts or replaces one hash mapping.
func (d *DB) Put(ctx context.Context, crc string, catalogID int64, name string) error {
	crc = normalizeCRC(crc)
	if crc == "" {
		return errors.New("hashdb: crc is required")
	}
	_, err := d.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO rom_hashes (crc32, catalog_id, name) VALUES (?, ?, ?)",
		crc, catalogID, name)
	if err != nil {
		return fmt.Errorf("hashdb: put %q: %w", crc, err)
	}
	return nil
}

// Count returns the number of stored mappings.
func (d *DB) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM rom_hashes").Scan(&count); err != nil {
		return 0, fmt.Errorf("hashdb: count: %w", err)
	}
	return count, nil
}

func normalizeCRC(crc string) string {
	return strings.ToLower(strings.TrimSpace(crc))
}
