package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testOptions returns options wired for testing: mock audio, an in-memory
// Fyne app and a config whose data directory lives under a temp dir.
func testOptions(t *testing.T) Options {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[storage]\ndata_dir = %q\n", filepath.Join(dir, "data"))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	opts := DefaultOptions()
	opts.ConfigPath = configPath
	opts.UseMockAudio = true
	opts.TestFyneApp = test.NewApp()
	return opts
}

func TestNewApplication(t *testing.T) {
	app, err := NewApplication(testOptions(t))
	require.NoError(t, err)
	require.NotNil(t, app)

	// Verify all services were created
	playback, queue, library, catalog, preference := app.GetServices()
	assert.NotNil(t, playback)
	assert.NotNil(t, queue)
	assert.NotNil(t, library)
	assert.NotNil(t, catalog)
	assert.NotNil(t, preference)

	// Verify event bus was created
	assert.NotNil(t, app.GetEventBus())

	// Verify Fyne app was created
	assert.NotNil(t, app.GetFyneApp())

	// Cleanup
	app.Shutdown()
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, "com.raaz.player", opts.AppID)
	assert.Empty(t, opts.ConfigPath)
	assert.False(t, opts.UseMockAudio)
}

func TestApplicationLifecycle(t *testing.T) {
	// Create
	app, err := NewApplication(testOptions(t))
	require.NoError(t, err)

	// Run would normally block, but we're not calling it in test

	// Shutdown
	app.Shutdown()

	// Shutdown again should not panic
	app.Shutdown()
}

func TestApplicationCreatesDatabase(t *testing.T) {
	app, err := NewApplication(testOptions(t))
	require.NoError(t, err)
	defer app.Shutdown()

	// The catalog database file exists under the configured data dir
	_, err = os.Stat(app.Config().DatabaseFile())
	assert.NoError(t, err)
}

func TestApplicationWithServices(t *testing.T) {
	app, err := NewApplication(testOptions(t))
	require.NoError(t, err)
	defer app.Shutdown()

	playback, _, library, catalog, preference := app.GetServices()

	// Test that services work together
	volume := preference.GetVolume()
	assert.InDelta(t, 0.8, volume, 0.01)

	// Set volume via service
	err = playback.SetVolume(0.6)
	assert.NoError(t, err)

	// Library service knows its supported formats
	formats := library.SupportedFormats()
	assert.Contains(t, formats, ".mp3")
	assert.Contains(t, formats, ".flac")

	// Catalog starts empty
	count, err := catalog.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
