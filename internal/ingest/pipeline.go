// Package ingest turns batches of source rom files into library entries:
// content-hash dedup, identifier assignment, multi-disc grouping, platform
// resolution, and asset materialization.
package ingest

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cartkeep/internal/fileutil"
	"cartkeep/internal/hashutil"
	"cartkeep/internal/identifier"
	"cartkeep/internal/library"
	"cartkeep/internal/logging"
	"cartkeep/internal/platform"
	"cartkeep/internal/progress"
	"cartkeep/internal/textutil"
)

// Pipeline ingests rom files into a library store.
type Pipeline struct {
	store  *library.Store
	hash   hashutil.Provider
	logger *slog.Logger

	group discGroup
}

// discGroup remembers the in-flight multi-disc group between files of one
// batch.
type discGroup struct {
	id      string
	baseKey string
}

func (g discGroup) active() bool { return g.id != "" }

// New creates a Pipeline over store. A nil hash provider falls back to the
// default CRC32+MD5 implementation.
func New(store *library.Store, hash hashutil.Provider, logger *slog.Logger) *Pipeline {
	if hash == nil {
		hash = hashutil.HashFile
	}
	return &Pipeline{
		store:  store,
		hash:   hash,
		logger: logging.NewComponentLogger(logger, "ingest"),
	}
}

// Ingest processes romPaths in order and returns the newly created title
// records. Duplicate content and unmapped extensions are skipped, not
// errored; filesystem and persistence failures abort the batch.
func (p *Pipeline) Ingest(romPaths []string, report progress.Sink) ([]*library.Title, error) {
	report = progress.OrNop(report)
	p.group = discGroup{}

	var created []*library.Title
	total := len(romPaths)
	for i, romPath := range romPaths {
		base := filepath.Base(romPath)
		report(base, i+1, total)

		title, err := p.ingestOne(romPath)
		if err != nil {
			return created, fmt.Errorf("ingest %q: %w", base, err)
		}
		if title != nil {
			created = append(created, title)
		}
	}
	return created, nil
}

func (p *Pipeline) ingestOne(romPath string) (*library.Title, error) {
	crc, md5sum, err := p.hash(romPath)
	if err != nil {
		return nil, err
	}
	if p.store.HasCRC(crc) {
		p.logger.Debug("skipping already-owned duplicate",
			logging.String("file", filepath.Base(romPath)),
			logging.String("crc32", crc))
		return nil, nil
	}

	fileName := filepath.Base(romPath)
	ext := strings.ToLower(filepath.Ext(fileName))
	rawTitle := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	multiDiscID := ""
	if marker, ok := parseDiscMarker(rawTitle); ok {
		switch {
		case marker.number == 1:
			id := identifier.Assign(textutil.CleanTitle(marker.baseTitle), p.store.ExistingIDs())
			p.group = discGroup{id: id, baseKey: textutil.CompareKey(marker.baseTitle)}
			multiDiscID = id
			rawTitle = marker.baseTitle
		case p.group.active() && textutil.CompareKey(marker.baseTitle) == p.group.baseKey:
			// Later disc of the current group: add the file to the
			// existing record's rom directory, no new record.
			romDir := p.store.Paths(p.group.id).RomDir()
			if err := fileutil.CopyFile(romPath, filepath.Join(romDir, fileName)); err != nil {
				return nil, fmt.Errorf("copy disc into group: %w", err)
			}
			return nil, nil
		default:
			p.group = discGroup{}
		}
	}

	plat, ok := platform.ResolveExtension(ext)
	if !ok {
		// Should not happen with a curated import set; reported, not fatal.
		p.logger.Warn("no platform accepts extension, skipping file",
			logging.String("file", fileName),
			logging.String("ext", ext))
		return nil, nil
	}

	id := multiDiscID
	if id == "" {
		id = identifier.Assign(textutil.CleanTitle(rawTitle), p.store.ExistingIDs())
	}

	displayTitle := displayTitleFor(rawTitle)
	romFileName := id + ext
	if plat.ArchiveRoms {
		// Archive romsets must keep their original name for the emulator
		// to find its set.
		romFileName = fileName
	}

	title := &library.Title{
		ID:                  id,
		DisplayTitle:        displayTitle,
		SyncTitle:           textutil.SanitizeFileName(displayTitle),
		PlatformID:          plat.ID,
		CRC32:               crc,
		MD5:                 md5sum,
		RomFileName:         romFileName,
		OriginalRomFileName: fileName,
		MultiDisc:           id == p.group.id && p.group.active(),
	}

	if _, hasBuiltIn := plat.DefaultCore(); !hasBuiltIn && len(plat.Cores) > 0 {
		title.CoreRef = plat.Cores[0].ID
	}

	if err := p.store.MaterializeDirs(id); err != nil {
		return nil, err
	}
	target := filepath.Join(p.store.Paths(id).RomDir(), romFileName)
	if err := fileutil.CopyFile(romPath, target); err != nil {
		return nil, fmt.Errorf("copy rom: %w", err)
	}

	if err := p.store.Insert(title); err != nil {
		return nil, err
	}
	p.logger.Info("title ingested",
		logging.String("id", id),
		logging.String("platform", plat.ID),
		logging.Bool("multi_disc", title.MultiDisc))
	return title, nil
}

var titleCaser = cases.Title(language.Und)

// displayTitleFor cleans the filename-derived title and title-cases it when
// the source was all lowercase.
func displayTitleFor(rawTitle string) string {
	cleaned := textutil.CleanTitle(rawTitle)
	if cleaned == "" {
		cleaned = strings.TrimSpace(rawTitle)
	}
	if !strings.ContainsFunc(cleaned, unicode.IsUpper) {
		return titleCaser.String(cleaned)
	}
	return cleaned
}
