// Package platform holds the closed table of supported game platforms:
// accepted rom extensions, available emulation cores, BIOS requirements,
// and the mapping to external-catalog platform identifiers.
package platform

import "strings"

// Core describes one emulation core available to a platform.
type Core struct {
	// ID is the stable reference stored on title records.
	ID string
	// FileName is the core binary staged onto the device. Empty for the
	// device's built-in cores.
	FileName string
	// AssetFiles are additional files the core needs on the device.
	AssetFiles []string
	// Autolaunch reports whether the device can start a rom through this
	// core without a generated launch script.
	Autolaunch bool
	// BuiltIn marks the device-firmware core a platform uses by default.
	BuiltIn bool
}

// Platform describes one supported game system.
type Platform struct {
	ID    string
	Alias string
	// Extensions accepted at ingestion, lowercase with leading dot.
	Extensions []string
	// BuiltInCore is the firmware core, if the device has one for this
	// platform.
	BuiltInCore *Core
	// Cores are installable cores, in preference order.
	Cores []Core
	// BiosFiles required on the device for this platform.
	BiosFiles []string
	// CatalogPlatformIDs are the external catalog's platform identifiers.
	CatalogPlatformIDs []int64
	// ArchiveRoms marks platforms whose roms are archives that keep their
	// original filename at ingestion (arcade romsets).
	ArchiveRoms bool
	// ArcadeSpecial routes default-core roms to the dedicated mame
	// directory and switches non-autolaunch handling to cue markers.
	ArcadeSpecial bool
}

// DefaultCore returns the platform's built-in core when present.
func (p *Platform) DefaultCore() (Core, bool) {
	if p.BuiltInCore == nil {
		return Core{}, false
	}
	return *p.BuiltInCore, true
}

// CoreByID finds a core (built-in or installable) by its reference id.
func (p *Platform) CoreByID(id string) (Core, bool) {
	if id == "" {
		return Core{}, false
	}
	if p.BuiltInCore != nil && p.BuiltInCore.ID == id {
		return *p.BuiltInCore, true
	}
	for _, core := range p.Cores {
		if core.ID == id {
			return core, true
		}
	}
	return Core{}, false
}

// EffectiveCore resolves the core a title runs with: the explicit reference
// when set, otherwise the built-in core.
func (p *Platform) EffectiveCore(ref string) (Core, bool) {
	if ref != "" {
		if core, ok := p.CoreByID(ref); ok {
			return core, true
		}
	}
	return p.DefaultCore()
}

// Accepts reports whether the platform ingests files with the given
// extension (leading dot, any case).
func (p *Platform) Accepts(ext string) bool {
	ext = strings.ToLower(ext)
	for _, accepted := range p.Extensions {
		if accepted == ext {
			return true
		}
	}
	return false
}

// hasAutolaunchBuiltIn reports whether the platform's firmware core can
// launch roms directly. Used to order candidates during extension
// resolution.
func (p *Platform) hasAutolaunchBuiltIn() bool {
	return p.BuiltInCore != nil && p.BuiltInCore.Autolaunch
}
