package enrich_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cartkeep/internal/artwork"
	"cartkeep/internal/catalog"
	"cartkeep/internal/enrich"
	"cartkeep/internal/hashdb"
	"cartkeep/internal/library"
	"cartkeep/internal/testsupport"
)

// fileResizer writes placeholder bytes to every slot path so tests can
// verify slot wiring without real image handling.
type fileResizer struct {
	sources []string
}

func (r *fileResizer) Resize(_ context.Context, sourceURL, _ string, targets []artwork.Target) error {
	r.sources = append(r.sources, sourceURL)
	for _, target := range targets {
		if err := os.MkdirAll(filepath.Dir(target.Path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target.Path, []byte("img"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func insertTitle(t *testing.T, store *library.Store, id, display, crc, platformID, romName string) *library.Title {
	t.Helper()
	return testsupport.SeedTitle(t, store, &library.Title{
		ID:           id,
		DisplayTitle: display,
		SyncTitle:    display,
		PlatformID:   platformID,
		CRC32:        crc,
		RomFileName:  romName,
	})
}

func newHashDB(t *testing.T) *hashdb.DB {
	t.Helper()
	db, err := hashdb.Open(filepath.Join(t.TempDir(), "hashdb.sqlite"))
	if err != nil {
		t.Fatalf("open hashdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func gamesPayload(games []map[string]any, boxart map[string]any) map[string]any {
	payload := map[string]any{
		"code": 200,
		"data": map[string]any{"count": len(games), "games": games},
		"pages": map[string]any{"next": ""},
	}
	if boxart != nil {
		payload["include"] = map[string]any{"boxart": boxart}
	}
	return payload
}

func TestEnrichHashMatchOverwritesTitle(t *testing.T) {
	t.Parallel()

	store := testsupport.NewStore(t)
	title := insertTitle(t, store, "sonic3", "sonic 3", "cafebabe", "genesis", "sonic3.md")

	db := newHashDB(t)
	ctx := context.Background()
	if err := db.Put(ctx, "cafebabe", 777, "Sonic 3"); err != nil {
		t.Fatalf("seed hashdb: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/Games/ByGameID", func(w http.ResponseWriter, r *http.Request) {
		payload := gamesPayload([]map[string]any{{
			"id":           777,
			"game_title":   "Sonic the Hedgehog 3",
			"platform":     18,
			"overview":     "Blast processing.",
			"release_date": "1994-02-02",
			"genres":       []string{"Platformer"},
		}}, map[string]any{
			"base_url": map[string]any{"original": "https://img.example/"},
			"data": map[string]any{
				"777": []map[string]any{
					{"type": "boxart", "side": "back", "filename": "back.png"},
					{"type": "boxart", "side": "front", "filename": "front.png"},
				},
			},
		})
		_ = json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/Games/Images", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"data": map[string]any{
				"base_url": map[string]any{"original": "https://img.example/"},
				"images": map[string]any{
					"777": []map[string]any{
						{"type": "fanart", "filename": "fan.png"},
						{"type": "screenshot", "filename": "shot.png"},
					},
				},
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := catalog.New(catalog.Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}

	resizer := &fileResizer{}
	engine := enrich.New(store, client, db, resizer, 20, nil)
	if err := engine.Enrich(ctx, store.All(), nil); err != nil {
		t.Fatalf("enrich: %v", err)
	}

	if title.CatalogID != 777 {
		t.Fatalf("catalog id = %d", title.CatalogID)
	}
	// Phase 1 overwrites the local title with the catalog title.
	if title.DisplayTitle != "Sonic the Hedgehog 3" {
		t.Fatalf("display title = %q", title.DisplayTitle)
	}
	if title.Metadata == nil || title.Metadata.Players != 1 {
		t.Fatalf("players default not applied: %+v", title.Metadata)
	}
	if title.Metadata.ReleaseDate != "1994-02-02" {
		t.Fatalf("release date = %q", title.Metadata.ReleaseDate)
	}
	if title.Artwork == nil || title.Artwork.Small == "" || title.Artwork.Banner == "" {
		t.Fatalf("artwork slots not filled: %+v", title.Artwork)
	}
	// Front side preferred; banner prefers screenshots over fanart.
	if resizer.sources[0] != "https://img.example/front.png" {
		t.Fatalf("box art source = %q", resizer.sources[0])
	}
	if resizer.sources[len(resizer.sources)-1] != "https://img.example/shot.png" {
		t.Fatalf("banner source = %q", resizer.sources[len(resizer.sources)-1])
	}

	// Mutations were persisted.
	data, err := os.ReadFile(store.Paths("sonic3").RecordFile())
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	var persisted library.Title
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if persisted.CatalogID != 777 {
		t.Fatalf("persisted catalog id = %d", persisted.CatalogID)
	}
}

func TestEnrichNameMatchKeepsLocalTitle(t *testing.T) {
	t.Parallel()

	store := testsupport.NewStore(t)
	title := insertTitle(t, store, "metroid", "Metroid", "00000000", "nes", "metroid.nes")

	db := newHashDB(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/Games/ByGameName", func(w http.ResponseWriter, r *http.Request) {
		payload := gamesPayload([]map[string]any{
			{"id": 42, "game_title": "Metroid", "platform": 7, "players": 1},
			{"id": 43, "game_title": "Metroid II", "platform": 7},
		}, nil)
		_ = json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/Games/Images", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": map[string]any{"images": map[string]any{}}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := catalog.New(catalog.Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}

	engine := enrich.New(store, client, db, &fileResizer{}, 20, nil)
	if err := engine.Enrich(context.Background(), store.All(), nil); err != nil {
		t.Fatalf("enrich: %v", err)
	}

	if title.CatalogID != 42 {
		t.Fatalf("catalog id = %d", title.CatalogID)
	}
	// Fuzzy matches never replace the local title.
	if title.DisplayTitle != "Metroid" {
		t.Fatalf("display title changed: %q", title.DisplayTitle)
	}
	if title.Metadata == nil {
		t.Fatal("metadata not applied")
	}
}

func TestEnrichAmbiguousPlatformVoidsMatch(t *testing.T) {
	t.Parallel()

	store := testsupport.NewStore(t)
	title := insertTitle(t, store, "tetris", "Tetris", "00000000", "gb", "tetris.gb")

	db := newHashDB(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/Games/ByGameName", func(w http.ResponseWriter, r *http.Request) {
		payload := gamesPayload([]map[string]any{
			{"id": 1, "game_title": "Tetris", "platform": 4},
			{"id": 2, "game_title": "Tetris", "platform": 7},
		}, nil)
		_ = json.NewEncoder(w).Encode(payload)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := catalog.New(catalog.Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}

	engine := enrich.New(store, client, db, &fileResizer{}, 20, nil)
	if err := engine.Enrich(context.Background(), store.All(), nil); err != nil {
		t.Fatalf("enrich: %v", err)
	}

	if title.Matched() {
		t.Fatalf("ambiguous match accepted: catalog id %d", title.CatalogID)
	}
}

func TestEnrichCatalogFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	store := testsupport.NewStore(t)
	title := insertTitle(t, store, "doom", "Doom", "11112222", "gba", "doom.gba")

	db := newHashDB(t)
	ctx := context.Background()
	if err := db.Put(ctx, "11112222", 500, ""); err != nil {
		t.Fatalf("seed hashdb: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := catalog.New(catalog.Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}

	engine := enrich.New(store, client, db, &fileResizer{}, 20, nil)
	if err := engine.Enrich(ctx, store.All(), nil); err != nil {
		t.Fatalf("enrich should tolerate catalog failures: %v", err)
	}
	if title.Matched() {
		t.Fatal("title unexpectedly matched")
	}
}
