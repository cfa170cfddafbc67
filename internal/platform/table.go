package platform

// builtin returns a pointer to a firmware core value for the table below.
func builtin(id string, autolaunch bool) *Core {
	return &Core{ID: id, Autolaunch: autolaunch, BuiltIn: true}
}

// platforms is the closed set of supported systems, in declaration order.
// Declaration order is the tie-breaker during extension resolution.
var platforms = []Platform{
	{
		ID:                 "nes",
		Alias:              "Nintendo Entertainment System",
		Extensions:         []string{".nes"},
		BuiltInCore:        builtin("nes-internal", true),
		CatalogPlatformIDs: []int64{7},
	},
	{
		ID:                 "snes",
		Alias:              "Super Nintendo",
		Extensions:         []string{".sfc", ".smc"},
		BuiltInCore:        builtin("snes-internal", true),
		CatalogPlatformIDs: []int64{6},
	},
	{
		ID:                 "genesis",
		Alias:              "Sega Genesis",
		Extensions:         []string{".md", ".gen", ".bin"},
		BuiltInCore:        builtin("genesis-internal", true),
		CatalogPlatformIDs: []int64{18},
	},
	{
		ID:                 "gb",
		Alias:              "Game Boy",
		Extensions:         []string{".gb"},
		BuiltInCore:        builtin("gb-internal", true),
		CatalogPlatformIDs: []int64{4},
	},
	{
		ID:                 "gbc",
		Alias:              "Game Boy Color",
		Extensions:         []string{".gbc"},
		BuiltInCore:        builtin("gbc-internal", true),
		CatalogPlatformIDs: []int64{41},
	},
	{
		ID:                 "gba",
		Alias:              "Game Boy Advance",
		Extensions:         []string{".gba"},
		BuiltInCore:        builtin("gba-internal", true),
		Cores: []Core{
			{ID: "mgba", FileName: "mgba_libretro.so", Autolaunch: true},
		},
		CatalogPlatformIDs: []int64{5},
	},
	{
		ID:                 "atari2600",
		Alias:              "Atari 2600",
		Extensions:         []string{".a26"},
		BuiltInCore:        builtin("atari2600-internal", true),
		CatalogPlatformIDs: []int64{22},
	},
	{
		ID:                 "lynx",
		Alias:              "Atari Lynx",
		Extensions:         []string{".lnx"},
		BuiltInCore:        builtin("lynx-internal", true),
		BiosFiles:          []string{"lynxboot.img"},
		CatalogPlatformIDs: []int64{4924},
	},
	{
		ID:         "arcade",
		Alias:      "Arcade",
		Extensions: []string{".zip"},
		// The firmware arcade core cannot start a romset directly; sync
		// emits a cue marker naming the preferred rom instead.
		BuiltInCore:        builtin("arcade-internal", false),
		ArchiveRoms:        true,
		ArcadeSpecial:      true,
		CatalogPlatformIDs: []int64{23},
	},
	{
		ID:         "neogeo",
		Alias:      "Neo Geo",
		Extensions: []string{".zip"},
		Cores: []Core{
			{ID: "fbneo", FileName: "fbneo_libretro.so", Autolaunch: true},
		},
		BiosFiles:          []string{"neogeo.zip"},
		ArchiveRoms:        true,
		CatalogPlatformIDs: []int64{24},
	},
	{
		ID:         "psx",
		Alias:      "PlayStation",
		Extensions: []string{".cue", ".chd", ".pbp", ".bin"},
		Cores: []Core{
			{ID: "pcsx-rearmed", FileName: "pcsx_rearmed_libretro.so", Autolaunch: false},
		},
		BiosFiles:          []string{"scph1001.bin"},
		CatalogPlatformIDs: []int64{10},
	},
}

// All returns every supported platform in declaration order.
func All() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// ByID looks a platform up by its identifier.
func ByID(id string) (*Platform, bool) {
	for i := range platforms {
		if platforms[i].ID == id {
			return &platforms[i], true
		}
	}
	return nil, false
}

// ByCatalogPlatformID maps an external-catalog platform identifier back to a
// platform. Used when enrichment corrects a title's platform.
func ByCatalogPlatformID(catalogID int64) (*Platform, bool) {
	for i := range platforms {
		for _, id := range platforms[i].CatalogPlatformIDs {
			if id == catalogID {
				return &platforms[i], true
			}
		}
	}
	return nil, false
}
