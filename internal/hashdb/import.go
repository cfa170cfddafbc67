package hashdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// importEntry is one record of the JSON import format: either a bare
// catalog id, or an object with the id and an optional rom name.
type importEntry struct {
	CatalogID int64  `json:"catalog_id"`
	Name      string `json:"name"`
}

func (e *importEntry) UnmarshalJSON(data []byte) error {
	var bare int64
	if err := json.Unmarshal(data, &bare); err == nil {
		e.CatalogID = bare
		e.Name = ""
		return nil
	}
	type alias importEntry
	var full alias
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*e = importEntry(full)
	return nil
}

// Import loads a JSON mapping file of the form {"<crc32 hex>": <catalog id>}
// or {"<crc32 hex>": {"catalog_id": N, "name": "..."}} into the database,
// replacing existing entries for the same hash. Returns the number of
// mappings imported.
func (d *DB) Import(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("hashdb: read import file: %w", err)
	}
	var mapping map[string]importEntry
	if err := json.Unmarshal(data, &mapping); err != nil {
		return 0, fmt.Errorf("hashdb: parse import file: %w", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("hashdb: begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR REPLACE INTO rom_hashes (crc32, catalog_id, name) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("hashdb: prepare import: %w", err)
	}
	defer stmt.Close()

	imported := 0
	for crc, entry := range mapping {
		normalized := normalizeCRC(crc)
		if normalized == "" || entry.CatalogID == 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, normalized, entry.CatalogID, entry.Name); err != nil {
			return 0, fmt.Errorf("hashdb: import %q: %w", crc, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("hashdb: commit import: %w", err)
	}
	return imported, nil
}
