// Package config loads and validates the player configuration from a TOML
// file, applying repository defaults for everything the file omits.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Library contains music library scanning configuration.
type Library struct {
	// Paths are the directory roots scanned for audio files.
	Paths []string `toml:"paths"`

	// ExcludeContains skips any file whose path contains one of these
	// substrings.
	ExcludeContains []string `toml:"exclude_contains"`

	// RecentLimit caps the recently-played view.
	RecentLimit int `toml:"recent_limit"`
}

// Storage contains catalog database configuration.
type Storage struct {
	// DataDir holds the catalog database file.
	DataDir string `toml:"data_dir"`
}

// Audio contains playback engine configuration.
type Audio struct {
	// SampleRate is the output sample rate in Hz.
	SampleRate int `toml:"sample_rate"`

	// BufferMillis is the output buffer length in milliseconds.
	BufferMillis int `toml:"buffer_millis"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json
}

// Config is the root configuration document.
type Config struct {
	Library Library `toml:"library"`
	Storage Storage `toml:"storage"`
	Audio   Audio   `toml:"audio"`
	Logging Logging `toml:"logging"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join("~", ".config", "raaz", "config.toml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	path = ExpandHome(path)

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.normalize()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the annotated sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// normalize expands home-relative paths and fills zero values.
func (c *Config) normalize() {
	for i, p := range c.Library.Paths {
		c.Library.Paths[i] = ExpandHome(p)
	}
	c.Storage.DataDir = ExpandHome(c.Storage.DataDir)

	if c.Library.RecentLimit <= 0 {
		c.Library.RecentLimit = defaultRecentLimit
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.BufferMillis <= 0 {
		c.Audio.BufferMillis = defaultBufferMillis
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}

	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate %d out of range", c.Audio.SampleRate)
	}

	for _, p := range c.Library.Paths {
		if strings.TrimSpace(p) == "" {
			return errors.New("library.paths contains an empty entry")
		}
	}

	return nil
}

// EnsureDirectories creates the data directory if needed.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// DatabaseFile returns the full path of the catalog database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.Storage.DataDir, "catalog.db")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
