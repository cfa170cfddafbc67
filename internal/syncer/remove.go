package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RemoveFromDevice deletes a title's device-side files: descriptor,
// numbered artwork variants, banner, launch marker and script, and the
// mame romset referenced by a cue marker. Rom files in the generic roms
// directory are not cleaned up; that gap is a documented limitation. No-op
// when the title's descriptor is absent.
func (e *Engine) RemoveFromDevice(id, targetRoot string) error {
	dev := layout{root: targetRoot}

	if _, err := os.Stat(dev.descriptor(id)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat descriptor: %w", err)
	}

	if data, err := os.ReadFile(dev.cueMarker(id)); err == nil {
		romName := strings.TrimSpace(string(data))
		if romName != "" {
			if err := removeIfPresent(filepath.Join(dev.mameDir(), romName)); err != nil {
				return err
			}
		}
		if err := removeIfPresent(dev.cueMarker(id)); err != nil {
			return err
		}
	}

	if err := removeIfPresent(dev.launchScript(id)); err != nil {
		return err
	}
	if err := removeIfPresent(dev.marker(id)); err != nil {
		return err
	}

	for _, pattern := range []string{id + "0*.png", id + "1*.png", id + "2*.png"} {
		matches, err := filepath.Glob(filepath.Join(dev.gameDir(), pattern))
		if err != nil {
			return fmt.Errorf("glob artwork variants: %w", err)
		}
		for _, match := range matches {
			if err := removeIfPresent(match); err != nil {
				return err
			}
		}
	}
	if err := removeIfPresent(filepath.Join(dev.gameDir(), id+"_banner.png")); err != nil {
		return err
	}

	return removeIfPresent(dev.descriptor(id))
}

func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", path, err)
	}
	return nil
}
