package fyneprefs

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a test preferences repository
func newTestPreferencesRepository() *PreferencesRepository {
	app := test.NewApp()
	return NewPreferencesRepository(app.Preferences())
}

func TestPreferencesRepository_SaveAndLoadVolume(t *testing.T) {
	repo := newTestPreferencesRepository()

	require.NoError(t, repo.SaveVolume(0.75))

	volume, err := repo.LoadVolume()
	require.NoError(t, err)
	assert.Equal(t, 0.75, volume)
}

func TestPreferencesRepository_LoadVolume_Default(t *testing.T) {
	repo := newTestPreferencesRepository()

	volume, err := repo.LoadVolume()
	require.NoError(t, err)
	assert.Equal(t, 0.8, volume)
}

func TestPreferencesRepository_SaveAndLoadLoopMode(t *testing.T) {
	repo := newTestPreferencesRepository()

	loop, err := repo.LoadLoopMode()
	require.NoError(t, err)
	assert.False(t, loop)

	require.NoError(t, repo.SaveLoopMode(true))

	loop, err = repo.LoadLoopMode()
	require.NoError(t, err)
	assert.True(t, loop)
}

func TestPreferencesRepository_SaveAndLoadLastFolder(t *testing.T) {
	repo := newTestPreferencesRepository()

	folder, err := repo.LoadLastFolder()
	require.NoError(t, err)
	assert.Empty(t, folder)

	require.NoError(t, repo.SaveLastFolder("/music/albums"))

	folder, err = repo.LoadLastFolder()
	require.NoError(t, err)
	assert.Equal(t, "/music/albums", folder)
}

func TestPreferencesRepository_Clear(t *testing.T) {
	repo := newTestPreferencesRepository()

	require.NoError(t, repo.SaveVolume(0.25))
	require.NoError(t, repo.SaveLoopMode(true))
	require.NoError(t, repo.SaveLastFolder("/music"))

	require.NoError(t, repo.Clear())

	volume, err := repo.LoadVolume()
	require.NoError(t, err)
	assert.Equal(t, 0.8, volume, "cleared volume falls back to default")

	loop, err := repo.LoadLoopMode()
	require.NoError(t, err)
	assert.False(t, loop)

	folder, err := repo.LoadLastFolder()
	require.NoError(t, err)
	assert.Empty(t, folder)
}
