package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, defaultRecentLimit, cfg.Library.RecentLimit)
	assert.Equal(t, defaultSampleRate, cfg.Audio.SampleRate)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[library]
paths = ["/srv/music", "/mnt/usb"]
exclude_contains = ["/tmp/"]
recent_limit = 10

[audio]
sample_rate = 48000

[logging]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/music", "/mnt/usb"}, cfg.Library.Paths)
	assert.Equal(t, []string{"/tmp/"}, cfg.Library.ExcludeContains)
	assert.Equal(t, 10, cfg.Library.RecentLimit)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Unset sections keep their defaults
	assert.Equal(t, defaultBufferMillis, cfg.Audio.BufferMillis)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
		{"bad format", "[logging]\nformat = \"xml\"\n"},
		{"bad sample rate", "[audio]\nsample_rate = 100\n"},
		{"empty library path", "[library]\npaths = [\"\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Music"), ExpandHome("~/Music"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/srv/music", ExpandHome("/srv/music"))
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteSample(path))
	assert.Error(t, WriteSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[library]")
}

func TestDatabaseFile(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = "/var/lib/raaz"
	assert.Equal(t, "/var/lib/raaz/catalog.db", cfg.DatabaseFile())
}
