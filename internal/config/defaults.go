package config

const (
	defaultLibraryDir    = "~/.local/share/cartkeep/games"
	defaultLogDir        = "~/.local/share/cartkeep/logs"
	defaultAssetCacheDir = "~/.local/share/cartkeep/cache"
	defaultBiosDir       = "~/.local/share/cartkeep/bios"
	defaultHashDBPath    = "~/.local/share/cartkeep/hashdb.sqlite"

	defaultCatalogBaseURL  = "https://api.thegamesdb.net/v1"
	defaultCatalogPageSize = 20

	defaultCartridgeName = "cartkeep"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:    defaultLibraryDir,
			LogDir:        defaultLogDir,
			AssetCacheDir: defaultAssetCacheDir,
			BiosDir:       defaultBiosDir,
			HashDBPath:    defaultHashDBPath,
		},
		Catalog: Catalog{
			BaseURL:  defaultCatalogBaseURL,
			PageSize: defaultCatalogPageSize,
		},
		Device: Device{
			CartridgeName: defaultCartridgeName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
