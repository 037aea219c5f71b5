package config

const (
	defaultManifestPath         = "IDs/manifest.json"
	defaultIDDir                = "IDs"
	defaultDataIndexPath        = "data/data.json"
	defaultDataDir              = "data"
	defaultPersonnelPath        = "personnel.json"
	defaultRequestTimeout       = 30
	defaultMaxConcurrentFetches = 8
	defaultIDCollisionPolicy    = CollisionLastWins
	defaultPlayerURLTemplate    = "https://music.163.com/outchain/player?type=2&id=%s&auto=1&height=66"
	defaultPlayerHeight         = 86
	defaultServerBind           = "127.0.0.1:7488"
	defaultStateDir             = "~/.local/share/musicplayer"
	defaultLogDir               = "~/.local/share/musicplayer/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultSortLocale           = "zh-Hans-CN"
	defaultSuggestionLimit      = 5
)

// Collision policies for the title -> player id map.
const (
	CollisionLastWins  = "last_wins"
	CollisionFirstWins = "first_wins"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Source: Source{
			ManifestPath:         defaultManifestPath,
			IDDir:                defaultIDDir,
			DataIndexPath:        defaultDataIndexPath,
			DataDir:              defaultDataDir,
			PersonnelPath:        defaultPersonnelPath,
			RequestTimeout:       defaultRequestTimeout,
			MaxConcurrentFetches: defaultMaxConcurrentFetches,
			IDCollisionPolicy:    defaultIDCollisionPolicy,
		},
		Player: Player{
			URLTemplate: defaultPlayerURLTemplate,
			Height:      defaultPlayerHeight,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Search: Search{
			SortLocale:      defaultSortLocale,
			SuggestionLimit: defaultSuggestionLimit,
		},
	}
}
