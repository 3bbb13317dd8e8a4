package config

const (
	defaultDataDir      = "~/.local/share/raaz"
	defaultMusicDir     = "~/Music"
	defaultRecentLimit  = 50
	defaultSampleRate   = 44100
	defaultBufferMillis = 100
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			Paths:           []string{defaultMusicDir},
			ExcludeContains: []string{"/.", "/Android/"},
			RecentLimit:     defaultRecentLimit,
		},
		Storage: Storage{
			DataDir: defaultDataDir,
		},
		Audio: Audio{
			SampleRate:   defaultSampleRate,
			BufferMillis: defaultBufferMillis,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
