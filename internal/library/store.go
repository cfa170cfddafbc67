package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"cartkeep/internal/fileutil"
	"cartkeep/internal/logging"
)

// ErrLocked indicates another cartkeep process holds the library lock.
var ErrLocked = errors.New("library is locked by another process")

// ErrDuplicateContent indicates a title with the same content hash already
// exists.
var ErrDuplicateContent = errors.New("duplicate content hash")

// Store is the single mutable source of truth for the library. All
// mutation goes through it and is written through to the per-title record
// immediately.
type Store struct {
	root   string
	lock   *flock.Flock
	logger *slog.Logger

	byID    map[string]*Title
	byCRC   map[string]string
	ordered []string
}

// Open loads every valid title record under root and acquires the library
// lock. Creating the root is fatal when it fails; corrupt or mismatched
// records are skipped with a warning and loading continues.
func Open(root string, logger *slog.Logger) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("library root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create library root %q: %w", root, err)
	}

	lock := flock.New(filepath.Join(root, "library.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	store := &Store{
		root:   root,
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "library"),
		byID:   make(map[string]*Title),
		byCRC:  make(map[string]string),
	}
	if err := store.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the library lock.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Root returns the library root directory.
func (s *Store) Root() string { return s.root }

// Paths returns the asset locations for a title id.
func (s *Store) Paths(id string) Paths { return PathsFor(s.root, id) }

func (s *Store) load() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("read library root: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		title, err := s.readRecord(id)
		if err != nil {
			s.logger.Warn("skipping unreadable title record",
				logging.String("id", id),
				logging.Error(err))
			continue
		}
		if title.ID != id {
			s.logger.Warn("skipping title record with mismatched id",
				logging.String("dir", id),
				logging.String("record_id", title.ID))
			continue
		}
		romPath := filepath.Join(s.Paths(id).RomDir(), title.RomFileName)
		if _, err := os.Stat(romPath); err != nil {
			s.logger.Warn("skipping title with missing rom asset",
				logging.String("id", id),
				logging.String("rom", title.RomFileName))
			continue
		}
		s.byID[id] = title
		if title.CRC32 != "" {
			s.byCRC[title.CRC32] = id
		}
		ids = append(ids, id)
	}

	sort.Strings(ids)
	s.ordered = ids
	return nil
}

func (s *Store) readRecord(id string) (*Title, error) {
	data, err := os.ReadFile(s.Paths(id).RecordFile())
	if err != nil {
		return nil, err
	}
	var title Title
	if err := json.Unmarshal(data, &title); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &title, nil
}

// Get returns the title for id.
func (s *Store) Get(id string) (*Title, bool) {
	title, ok := s.byID[id]
	return title, ok
}

// ByCRC returns the title owning a content hash.
func (s *Store) ByCRC(crc string) (*Title, bool) {
	id, ok := s.byCRC[crc]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}

// HasCRC reports whether any title owns the content hash.
func (s *Store) HasCRC(crc string) bool {
	_, ok := s.byCRC[crc]
	return ok
}

// IDs returns every title id in library order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// ExistingIDs returns the id set for collision checks during assignment.
func (s *Store) ExistingIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(s.byID))
	for id := range s.byID {
		out[id] = struct{}{}
	}
	return out
}

// All returns every title in library order.
func (s *Store) All() []*Title {
	out := make([]*Title, 0, len(s.ordered))
	for _, id := range s.ordered {
		out = append(out, s.byID[id])
	}
	return out
}

// Selected returns the titles marked for sync, in library order.
func (s *Store) Selected() []*Title {
	var out []*Title
	for _, id := range s.ordered {
		if title := s.byID[id]; title.Selected {
			out = append(out, title)
		}
	}
	return out
}

// Insert adds a new title to the index and persists its record. The id must
// be unassigned and the content hash unique across the library.
func (s *Store) Insert(title *Title) error {
	if title == nil || title.ID == "" {
		return errors.New("title id is required")
	}
	if _, exists := s.byID[title.ID]; exists {
		return fmt.Errorf("title id %q already assigned", title.ID)
	}
	if title.CRC32 != "" {
		if _, exists := s.byCRC[title.CRC32]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateContent, title.CRC32)
		}
	}
	if err := s.persist(title); err != nil {
		return err
	}
	s.byID[title.ID] = title
	if title.CRC32 != "" {
		s.byCRC[title.CRC32] = title.ID
	}
	s.ordered = append(s.ordered, title.ID)
	return nil
}

// Save writes a mutated title record through to disk.
func (s *Store) Save(title *Title) error {
	if title == nil || title.ID == "" {
		return errors.New("title id is required")
	}
	if _, exists := s.byID[title.ID]; !exists {
		return fmt.Errorf("title %q not in library", title.ID)
	}
	return s.persist(title)
}

// Delete removes a title from the index and deletes its on-disk assets.
func (s *Store) Delete(id string) error {
	title, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("title %q not in library", id)
	}
	if err := os.RemoveAll(s.Paths(id).Dir()); err != nil {
		return fmt.Errorf("remove title assets: %w", err)
	}
	delete(s.byID, id)
	if title.CRC32 != "" {
		delete(s.byCRC, title.CRC32)
	}
	for i, ordered := range s.ordered {
		if ordered == id {
			s.ordered = append(s.ordered[:i], s.ordered[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) persist(title *Title) error {
	data, err := json.MarshalIndent(title, "", "  ")
	if err != nil {
		return fmt.Errorf("encode title %q: %w", title.ID, err)
	}
	return fileutil.WriteFileAtomic(s.Paths(title.ID).RecordFile(), data, 0o644)
}

// MaterializeDirs creates the per-title asset directories.
func (s *Store) MaterializeDirs(id string) error {
	paths := s.Paths(id)
	for _, dir := range []string{paths.ImagesDir(), paths.ImageSourceDir(), paths.RomDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create title directory %q: %w", dir, err)
		}
	}
	return nil
}
