// Package enrich matches library titles against the external metadata
// catalog and writes metadata and artwork back onto the records. Matching
// runs in two phases: exact content-hash lookup through the hash database,
// then fuzzy title search for the remainder. A third phase fills banner
// images for everything matched.
package enrich

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"cartkeep/internal/artwork"
	"cartkeep/internal/catalog"
	"cartkeep/internal/hashdb"
	"cartkeep/internal/library"
	"cartkeep/internal/logging"
	"cartkeep/internal/platform"
	"cartkeep/internal/progress"
	"cartkeep/internal/textutil"
)

// catalogBatchSize bounds how many catalog ids one ByGameID query carries.
const catalogBatchSize = 20

// bannerTypes lists banner candidates in preference order.
var bannerTypes = []string{"screenshot", "titlescreen", "fanart"}

// Engine enriches titles from the external catalog.
type Engine struct {
	store    *library.Store
	client   *catalog.Client
	hashes   *hashdb.DB
	resizer  artwork.Resizer
	pageSize int
	logger   *slog.Logger
}

// New creates an enrichment engine.
func New(store *library.Store, client *catalog.Client, hashes *hashdb.DB, resizer artwork.Resizer, pageSize int, logger *slog.Logger) *Engine {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Engine{
		store:    store,
		client:   client,
		hashes:   hashes,
		resizer:  resizer,
		pageSize: pageSize,
		logger:   logging.NewComponentLogger(logger, "enrich"),
	}
}

// Enrich runs all matching phases over titles and persists every mutated
// record. Failed catalog calls abort only their own sub-step; everything
// already applied is kept.
func (e *Engine) Enrich(ctx context.Context, titles []*library.Title, report progress.Sink) error {
	report = progress.OrNop(report)

	mapped, unmapped, err := e.partition(ctx, titles)
	if err != nil {
		return err
	}

	mutated := make(map[string]*library.Title)

	e.matchByHash(ctx, mapped, mutated, report)
	e.matchByName(ctx, unmapped, mutated, report)
	e.fillBanners(ctx, titles, mutated, report)

	persisted := 0
	for _, title := range mutated {
		if err := e.store.Save(title); err != nil {
			return err
		}
		persisted++
		report("saving metadata", persisted, len(mutated))
	}
	return nil
}

// partition splits titles into hash-mapped groups (catalog id -> titles)
// and the fuzzy-match remainder.
func (e *Engine) partition(ctx context.Context, titles []*library.Title) (map[int64][]*library.Title, []*library.Title, error) {
	mapped := make(map[int64][]*library.Title)
	var unmapped []*library.Title
	for _, title := range titles {
		catalogID, found, err := e.hashes.Lookup(ctx, title.CRC32)
		if err != nil {
			return nil, nil, err
		}
		if found {
			// One catalog entry may map several locally retained
			// duplicates kept under different ids.
			mapped[catalogID] = append(mapped[catalogID], title)
			continue
		}
		unmapped = append(unmapped, title)
	}
	return mapped, unmapped, nil
}

// matchByHash queries the catalog for all hash-mapped ids in batches and
// applies full metadata, including the catalog title.
func (e *Engine) matchByHash(ctx context.Context, mapped map[int64][]*library.Title, mutated map[string]*library.Title, report progress.Sink) {
	ids := make([]int64, 0, len(mapped))
	total := 0
	for id, group := range mapped {
		ids = append(ids, id)
		total += len(group)
	}

	processed := 0
	for start := 0; start < len(ids); start += catalogBatchSize {
		end := min(start+catalogBatchSize, len(ids))
		batch := ids[start:end]

		page, err := e.client.ByGameIDs(ctx, batch, true)
		for err == nil && page != nil {
			for _, game := range page.Games {
				for _, title := range mapped[game.ID] {
					title.CatalogID = game.ID
					e.applyMetadata(title, game, true)
					e.applyBoxArt(ctx, title, game.ID, page)
					mutated[title.ID] = title
					processed++
					report("matching checksums", processed, total)
				}
			}
			if !page.HasNext() {
				break
			}
			page, _, err = page.NextPage(ctx)
		}
		if err != nil {
			// A failed page aborts this batch only; prior pages stand.
			e.logger.Warn("hash-match catalog query failed",
				logging.Int("batch_size", len(batch)),
				logging.Error(err))
		}
	}
}

// matchByName runs the fuzzy phase: one result page per title, restricted
// to the platforms implied by the rom extension. The local title is never
// overwritten here so a false positive cannot corrupt a correct name.
func (e *Engine) matchByName(ctx context.Context, titles []*library.Title, mutated map[string]*library.Title, report progress.Sink) {
	for i, title := range titles {
		report("matching names", i+1, len(titles))

		cleaned := textutil.CleanTitle(title.DisplayTitle)
		if cleaned == "" {
			continue
		}
		ext := filepath.Ext(title.OriginalRomFileName)
		filterIDs := platform.CatalogFilterIDs(ext)

		page, err := e.client.ByName(ctx, cleaned, e.pageSize, filterIDs, true)
		if err != nil {
			e.logger.Warn("name-match catalog query failed",
				logging.String("id", title.ID),
				logging.Error(err))
			continue
		}

		game, ok := acceptNameMatch(title, page.Games)
		if !ok {
			continue
		}
		title.CatalogID = game.ID
		e.applyMetadata(title, game, false)
		e.applyBoxArt(ctx, title, game.ID, page)
		mutated[title.ID] = title
	}
}

// acceptNameMatch applies the fuzzy acceptance rule: at least one candidate
// whose comparison key equals the local title's, and all such candidates on
// the same catalog platform. Ambiguity across platforms voids the match.
func acceptNameMatch(title *library.Title, games []catalog.Game) (catalog.Game, bool) {
	localKey := textutil.CompareKey(title.DisplayTitle)
	if localKey == "" {
		return catalog.Game{}, false
	}
	var candidates []catalog.Game
	for _, game := range games {
		if textutil.CompareKey(game.Title) == localKey {
			candidates = append(candidates, game)
		}
	}
	if len(candidates) == 0 {
		return catalog.Game{}, false
	}
	for _, candidate := range candidates[1:] {
		if candidate.Platform != candidates[0].Platform {
			return catalog.Game{}, false
		}
	}
	return candidates[0], true
}

// fillBanners requests extra image candidates for every matched title and
// stores the first by type preference into the banner slot.
func (e *Engine) fillBanners(ctx context.Context, titles []*library.Title, mutated map[string]*library.Title, report progress.Sink) {
	byCatalog := make(map[int64][]*library.Title)
	var ids []int64
	for _, title := range titles {
		if !title.Matched() {
			continue
		}
		if _, seen := byCatalog[title.CatalogID]; !seen {
			ids = append(ids, title.CatalogID)
		}
		byCatalog[title.CatalogID] = append(byCatalog[title.CatalogID], title)
	}
	if len(ids) == 0 {
		return
	}

	result, err := e.client.ImagesByIDs(ctx, ids, bannerTypes...)
	if err != nil {
		e.logger.Warn("banner image query failed", logging.Error(err))
		return
	}

	total := 0
	for _, group := range byCatalog {
		total += len(group)
	}
	processed := 0
	for _, catalogID := range ids {
		image, ok := pickBanner(result.Images[catalogID])
		for _, title := range byCatalog[catalogID] {
			processed++
			report("fetching banners", processed, total)
			if !ok {
				continue
			}
			if err := e.storeImage(ctx, title, result.BaseURL+image.FileName, []artwork.Slot{artwork.SlotBanner}); err != nil {
				e.logger.Warn("banner fetch failed",
					logging.String("id", title.ID),
					logging.Error(err))
				continue
			}
			e.ensureArtwork(title).Banner = artwork.SlotBanner.FileName(title.ID)
			mutated[title.ID] = title
		}
	}
}

func pickBanner(images []catalog.Image) (catalog.Image, bool) {
	for _, wanted := range bannerTypes {
		for _, image := range images {
			if image.Type == wanted {
				return image, true
			}
		}
	}
	return catalog.Image{}, false
}

// applyMetadata writes catalog fields onto the title. The display title is
// only replaced when overwriteTitle is set (exact hash matches).
func (e *Engine) applyMetadata(title *library.Title, game catalog.Game, overwriteTitle bool) {
	meta := &library.Metadata{
		Description: game.Overview,
		Players:     game.Players,
		ReleaseDate: normalizeReleaseDate(game.ReleaseDate),
		Genre:       game.Genre,
	}
	if meta.Players == 0 {
		meta.Players = 1
	}
	title.Metadata = meta

	if plat, ok := platform.ByCatalogPlatformID(game.Platform); ok {
		title.PlatformID = plat.ID
	}

	if overwriteTitle && strings.TrimSpace(game.Title) != "" {
		title.DisplayTitle = game.Title
		title.SyncTitle = textutil.SanitizeFileName(game.Title)
	}
}

// applyBoxArt selects the box art for a game from a page's includes,
// preferring the front side, and stores it into the three box slots.
func (e *Engine) applyBoxArt(ctx context.Context, title *library.Title, gameID int64, page *catalog.Page) {
	images := page.BoxArt[gameID]
	if len(images) == 0 {
		return
	}
	selected := images[0]
	for _, image := range images {
		if image.Side == "front" {
			selected = image
			break
		}
	}

	if err := e.storeImage(ctx, title, page.BoxArtBase+selected.FileName, artwork.BoxSlots); err != nil {
		e.logger.Warn("box art fetch failed",
			logging.String("id", title.ID),
			logging.Error(err))
		return
	}
	art := e.ensureArtwork(title)
	art.Small = artwork.SlotSmall.FileName(title.ID)
	art.Medium = artwork.SlotMedium.FileName(title.ID)
	art.Large = artwork.SlotLarge.FileName(title.ID)
}

func (e *Engine) storeImage(ctx context.Context, title *library.Title, sourceURL string, slots []artwork.Slot) error {
	imagesDir := e.store.Paths(title.ID).ImagesDir()
	targets := make([]artwork.Target, 0, len(slots))
	for _, slot := range slots {
		targets = append(targets, artwork.Target{
			Slot: slot,
			Path: filepath.Join(imagesDir, slot.FileName(title.ID)),
		})
	}
	return e.resizer.Resize(ctx, sourceURL, title.DisplayTitle, targets)
}

func (e *Engine) ensureArtwork(title *library.Title) *library.Artwork {
	if title.Artwork == nil {
		title.Artwork = &library.Artwork{}
	}
	return title.Artwork
}

// normalizeReleaseDate keeps ISO yyyy-MM-dd dates and drops everything
// else.
func normalizeReleaseDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if len(raw) > 10 {
		raw = raw[:10]
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return ""
	}
	return raw
}
