// Package syncer projects the selected subset of the library onto a target
// device filesystem: manifest, core and BIOS assets, artwork, rom
// placement, multi-disc playlists, launch scripts, and removal of
// deselected titles. Every copy is newer-wins and every manifest or
// descriptor write is a full overwrite, so re-running a sync is safe.
package syncer

import "path/filepath"

const (
	manifestFileName = "cartridge.json"
	gameDirName      = "game"
	romsDirName      = "roms"
	mameDirName      = "mame"
	biosDirName      = "bios"
	specialDirName   = "special"
)

// layout locates the fixed device-side directory structure under a target
// root.
type layout struct {
	root string
}

func (l layout) manifest() string    { return filepath.Join(l.root, manifestFileName) }
func (l layout) gameDir() string     { return filepath.Join(l.root, gameDirName) }
func (l layout) romsDir() string     { return filepath.Join(l.root, romsDirName) }
func (l layout) mameDir() string     { return filepath.Join(l.root, mameDirName) }
func (l layout) biosDir() string     { return filepath.Join(l.root, biosDirName) }
func (l layout) specialDir() string  { return filepath.Join(l.root, specialDirName) }
func (l layout) retroSystem() string { return filepath.Join(l.root, "retroarch", "system") }
func (l layout) retroCores() string  { return filepath.Join(l.root, "retroarch", "cores") }

func (l layout) descriptor(id string) string {
	return filepath.Join(l.gameDir(), id+".json")
}

func (l layout) marker(id string) string {
	return filepath.Join(l.gameDir(), id)
}

func (l layout) cueMarker(id string) string {
	return filepath.Join(l.specialDir(), id+".cue")
}

func (l layout) launchScript(id string) string {
	return filepath.Join(l.specialDir(), id+".sh")
}
