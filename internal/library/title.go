// Package library maintains the authoritative in-memory index of all known
// titles, backed by one persisted JSON record per title. The index is not
// safe for concurrent mutation; callers serialize operations, and the store
// holds a file lock on the library root for its lifetime to enforce that
// across processes.
package library

import "path/filepath"

// Metadata holds catalog-sourced descriptive fields. Absent until
// enrichment.
type Metadata struct {
	Description string `json:"description,omitempty"`
	Players     int    `json:"players,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	Genre       string `json:"genre,omitempty"`
}

// Artwork references the four canonical image slots by filename within the
// title's images directory. Empty entries mean the slot is unfilled.
type Artwork struct {
	Small  string `json:"small,omitempty"`
	Medium string `json:"medium,omitempty"`
	Large  string `json:"large,omitempty"`
	Banner string `json:"banner,omitempty"`
}

// Title is one library entry.
type Title struct {
	ID                  string    `json:"id"`
	DisplayTitle        string    `json:"display_title"`
	SyncTitle           string    `json:"sync_title"`
	PlatformID          string    `json:"platform_id"`
	CRC32               string    `json:"crc32"`
	MD5                 string    `json:"md5"`
	RomFileName         string    `json:"rom_file_name"`
	OriginalRomFileName string    `json:"original_rom_file_name"`
	Selected            bool      `json:"selected"`
	MultiDisc           bool      `json:"multi_disc"`
	CatalogID           int64     `json:"catalog_id,omitempty"`
	Metadata            *Metadata `json:"metadata,omitempty"`
	Artwork             *Artwork  `json:"artwork,omitempty"`
	CoreRef             string    `json:"core,omitempty"`
}

// Matched reports whether the title has been linked to a catalog entry.
func (t *Title) Matched() bool { return t.CatalogID != 0 }

// Paths locates a title's on-disk asset directories under a library root.
type Paths struct {
	root string
	id   string
}

// PathsFor returns the asset locations for a title id under root.
func PathsFor(root, id string) Paths {
	return Paths{root: root, id: id}
}

// Dir is the title's directory.
func (p Paths) Dir() string { return filepath.Join(p.root, p.id) }

// RecordFile is the persisted JSON record.
func (p Paths) RecordFile() string { return filepath.Join(p.Dir(), p.id+".json") }

// ImagesDir holds the canonical slot images.
func (p Paths) ImagesDir() string { return filepath.Join(p.Dir(), "images") }

// ImageSourceDir holds unscaled artwork sources.
func (p Paths) ImageSourceDir() string { return filepath.Join(p.ImagesDir(), "source") }

// RomDir holds the rom file(s); multi-disc titles keep every disc here.
func (p Paths) RomDir() string { return filepath.Join(p.Dir(), "rom") }
