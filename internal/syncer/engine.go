package syncer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"cartkeep/internal/fileutil"
	"cartkeep/internal/library"
	"cartkeep/internal/logging"
	"cartkeep/internal/platform"
	"cartkeep/internal/progress"
)

// manifest is the cartridge record written to the device root, regenerated
// in full on every sync.
type manifest struct {
	Name string `json:"name"`
}

// descriptor is the device-facing per-title record in the game directory.
// Rom carries the reference the device launches, which may point at a cue
// marker or playlist rather than the rom file itself.
type descriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	Rom         string `json:"rom"`
	Players     int    `json:"players,omitempty"`
	Description string `json:"description,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	Genre       string `json:"genre,omitempty"`
	MultiDisc   bool   `json:"multi_disc,omitempty"`
}

// Options configures an Engine.
type Options struct {
	// CoreDir holds locally cached core asset files.
	CoreDir string
	// BiosDir holds locally cached BIOS files.
	BiosDir string
}

// Engine synchronizes selected titles onto a device. It reads the library
// but never mutates it.
type Engine struct {
	store  *library.Store
	opts   Options
	logger *slog.Logger
}

// New creates a sync engine over store.
func New(store *library.Store, opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "sync"),
	}
}

// SyncToDevice projects the current selection onto targetRoot. Already
// synced titles that are no longer selected are removed first; titles on
// the device with no local record are left untouched.
func (e *Engine) SyncToDevice(targetRoot, cartridgeName string, report progress.Sink) error {
	report = progress.OrNop(report)
	logger := e.logger.With(logging.String(logging.FieldSession, uuid.NewString()))
	dev := layout{root: targetRoot}

	if err := writeManifest(dev, cartridgeName); err != nil {
		return err
	}
	if err := os.MkdirAll(dev.gameDir(), 0o755); err != nil {
		return fmt.Errorf("create device game directory: %w", err)
	}

	if err := e.reconcile(dev, logger); err != nil {
		return err
	}

	selected := e.store.Selected()
	for i, title := range selected {
		report(title.DisplayTitle, i+1, len(selected))
		if err := e.syncTitle(dev, title, logger); err != nil {
			return fmt.Errorf("sync title %q: %w", title.ID, err)
		}
	}
	logger.Info("device sync complete",
		logging.Int("titles", len(selected)),
		logging.String("target", targetRoot))
	return nil
}

func writeManifest(dev layout, cartridgeName string) error {
	data, err := json.MarshalIndent(manifest{Name: cartridgeName}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.MkdirAll(dev.root, 0o755); err != nil {
		return fmt.Errorf("create device root: %w", err)
	}
	if err := os.WriteFile(dev.manifest(), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// reconcile removes device-side titles whose local record exists but is no
// longer selected. Device ids with no local record are out of scope and
// stay untouched.
func (e *Engine) reconcile(dev layout, logger *slog.Logger) error {
	entries, err := os.ReadDir(dev.gameDir())
	if err != nil {
		return fmt.Errorf("read device game directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		title, known := e.store.Get(id)
		if !known || title.Selected {
			continue
		}
		logger.Info("removing deselected title from device", logging.String("id", id))
		if err := e.RemoveFromDevice(id, dev.root); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) syncTitle(dev layout, title *library.Title, logger *slog.Logger) error {
	plat, ok := platform.ByID(title.PlatformID)
	if !ok {
		logger.Warn("title references unknown platform, skipping",
			logging.String("id", title.ID),
			logging.String("platform", title.PlatformID))
		return nil
	}
	core, hasCore := plat.EffectiveCore(title.CoreRef)

	if hasCore {
		if err := e.stageCoreAssets(dev, plat, core, logger); err != nil {
			return err
		}
	}
	if err := e.copyArtwork(dev, title); err != nil {
		return err
	}

	romRef, err := e.placeRoms(dev, title, plat, core, hasCore)
	if err != nil {
		return err
	}

	if hasCore && !core.Autolaunch {
		romRef, err = e.writeLaunchAssets(dev, title, plat, core, romRef)
		if err != nil {
			return err
		}
	}

	return writeDescriptor(dev, title, romRef)
}

// stageCoreAssets copies the core's files and the platform BIOS set onto
// the device. Built-in cores ship with the firmware and need only their
// BIOS files; installable cores also get their asset files staged.
func (e *Engine) stageCoreAssets(dev layout, plat *platform.Platform, core platform.Core, logger *slog.Logger) error {
	if !core.BuiltIn {
		files := core.AssetFiles
		if core.FileName != "" {
			files = append([]string{core.FileName}, files...)
		}
		for _, name := range files {
			src := filepath.Join(e.opts.CoreDir, name)
			if _, err := os.Stat(src); err != nil {
				logger.Warn("core asset missing from local cache",
					logging.String("core", core.ID),
					logging.String("file", name))
				continue
			}
			if _, err := fileutil.CopyIfNewer(src, filepath.Join(dev.retroCores(), name)); err != nil {
				return fmt.Errorf("stage core asset %q: %w", name, err)
			}
		}
	}

	biosTarget := dev.biosDir()
	if !core.BuiltIn {
		biosTarget = dev.retroSystem()
	}
	for _, name := range plat.BiosFiles {
		src := filepath.Join(e.opts.BiosDir, name)
		if _, err := os.Stat(src); err != nil {
			logger.Warn("bios file missing from local cache",
				logging.String("platform", plat.ID),
				logging.String("file", name))
			continue
		}
		if _, err := fileutil.CopyIfNewer(src, filepath.Join(biosTarget, name)); err != nil {
			return fmt.Errorf("stage bios %q: %w", name, err)
		}
	}
	return nil
}

func (e *Engine) copyArtwork(dev layout, title *library.Title) error {
	if title.Artwork == nil {
		return nil
	}
	imagesDir := e.store.Paths(title.ID).ImagesDir()
	for _, name := range []string{title.Artwork.Small, title.Artwork.Medium, title.Artwork.Large, title.Artwork.Banner} {
		if name == "" {
			continue
		}
		src := filepath.Join(imagesDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if _, err := fileutil.CopyIfNewer(src, filepath.Join(dev.gameDir(), name)); err != nil {
			return fmt.Errorf("copy artwork %q: %w", name, err)
		}
	}
	return nil
}

// placeRoms copies the title's rom files to the right device directory and
// returns the device-facing rom reference: the canonical rom filename, or
// the playlist name for multi-disc titles.
func (e *Engine) placeRoms(dev layout, title *library.Title, plat *platform.Platform, core platform.Core, hasCore bool) (string, error) {
	targetDir := dev.gameDir()
	switch {
	case title.MultiDisc || (hasCore && !core.BuiltIn):
		targetDir = dev.romsDir()
	case plat.ArcadeSpecial:
		targetDir = dev.mameDir()
	}

	romDir := e.store.Paths(title.ID).RomDir()
	entries, err := os.ReadDir(romDir)
	if err != nil {
		return "", fmt.Errorf("read local rom directory: %w", err)
	}

	var copied []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		dstName := title.RomFileName
		if title.MultiDisc {
			// Discs keep their original names so the playlist resolves.
			// Disc 1 was renamed to the canonical rom filename at
			// ingestion; restore its original name here.
			dstName = entry.Name()
			if dstName == title.RomFileName && title.OriginalRomFileName != "" {
				dstName = title.OriginalRomFileName
			}
		}
		if _, err := fileutil.CopyIfNewer(filepath.Join(romDir, entry.Name()), filepath.Join(targetDir, dstName)); err != nil {
			return "", fmt.Errorf("copy rom %q: %w", entry.Name(), err)
		}
		copied = append(copied, dstName)
	}

	if !title.MultiDisc {
		return title.RomFileName, nil
	}

	sort.Strings(copied)
	playlistName := title.SyncTitle + ".m3u"
	playlist := strings.Join(copied, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(targetDir, playlistName), []byte(playlist), 0o644); err != nil {
		return "", fmt.Errorf("write playlist: %w", err)
	}
	return playlistName, nil
}

// writeLaunchAssets emits the extra files a non-autolaunch core needs and
// returns the rewritten rom reference.
func (e *Engine) writeLaunchAssets(dev layout, title *library.Title, plat *platform.Platform, core platform.Core, romRef string) (string, error) {
	if err := os.MkdirAll(dev.specialDir(), 0o755); err != nil {
		return "", fmt.Errorf("create special directory: %w", err)
	}

	if core.BuiltIn && plat.ArcadeSpecial {
		// The firmware arcade core launches through a cue marker naming
		// the romset.
		if err := os.WriteFile(dev.cueMarker(title.ID), []byte(title.RomFileName), 0o644); err != nil {
			return "", fmt.Errorf("write cue marker: %w", err)
		}
		return title.ID + ".cue", nil
	}

	if err := os.WriteFile(dev.marker(title.ID), nil, 0o644); err != nil {
		return "", fmt.Errorf("write launch marker: %w", err)
	}
	script := renderLaunchScript(core.FileName, romRef)
	if err := os.WriteFile(dev.launchScript(title.ID), []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("write launch script: %w", err)
	}
	return romRef, nil
}

func writeDescriptor(dev layout, title *library.Title, romRef string) error {
	desc := descriptor{
		ID:        title.ID,
		Title:     title.DisplayTitle,
		Platform:  title.PlatformID,
		Rom:       romRef,
		MultiDisc: title.MultiDisc,
	}
	if title.Metadata != nil {
		desc.Players = title.Metadata.Players
		desc.Description = title.Metadata.Description
		desc.ReleaseDate = title.Metadata.ReleaseDate
		desc.Genre = title.Metadata.Genre
	}
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}
	if err := os.WriteFile(dev.descriptor(title.ID), data, 0o644); err != nil {
		return fmt.Errorf("write descriptor: %w", err)
	}
	return nil
}
