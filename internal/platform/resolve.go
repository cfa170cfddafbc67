package platform

import "strings"

// ResolveExtension picks the platform for a rom file extension. When several
// platforms accept the same extension, platforms whose firmware core can
// autolaunch are deprioritized (their roms more likely belong to the system
// that needs an installable core); remaining ties go to declaration order.
// Returns false when no platform accepts the extension.
func ResolveExtension(ext string) (*Platform, bool) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return nil, false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var fallback *Platform
	for i := range platforms {
		if !platforms[i].Accepts(ext) {
			continue
		}
		if !platforms[i].hasAutolaunchBuiltIn() {
			return &platforms[i], true
		}
		if fallback == nil {
			fallback = &platforms[i]
		}
	}
	if fallback != nil {
		return fallback, true
	}
	return nil, false
}

// CatalogFilterIDs returns the catalog platform ids of every platform
// accepting the extension. Fuzzy catalog searches are restricted to these.
func CatalogFilterIDs(ext string) []int64 {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	var ids []int64
	for i := range platforms {
		if platforms[i].Accepts(ext) {
			ids = append(ids, platforms[i].CatalogPlatformIDs...)
		}
	}
	return ids
}
