package fyneprefs

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryRepository() *HistoryRepository {
	app := test.NewApp()
	return NewHistoryRepository(app.Preferences())
}

func TestHistoryRepository_SaveAndLoadQueue(t *testing.T) {
	repo := newTestHistoryRepository()

	paths := []string{"/music/one.mp3", "/music/two.flac"}
	require.NoError(t, repo.SaveQueue(paths))

	loaded, err := repo.LoadQueue()
	require.NoError(t, err)
	assert.Equal(t, paths, loaded)
}

func TestHistoryRepository_LoadQueue_Empty(t *testing.T) {
	repo := newTestHistoryRepository()

	loaded, err := repo.LoadQueue()
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestHistoryRepository_SaveAndLoadCurrentIndex(t *testing.T) {
	repo := newTestHistoryRepository()

	// Nothing saved yet
	index, err := repo.LoadCurrentIndex()
	require.NoError(t, err)
	assert.Equal(t, -1, index)

	// Index zero must round-trip, not read back as "unset".
	require.NoError(t, repo.SaveCurrentIndex(0))
	index, err = repo.LoadCurrentIndex()
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	require.NoError(t, repo.SaveCurrentIndex(7))
	index, err = repo.LoadCurrentIndex()
	require.NoError(t, err)
	assert.Equal(t, 7, index)
}

func TestHistoryRepository_Clear(t *testing.T) {
	repo := newTestHistoryRepository()

	require.NoError(t, repo.SaveQueue([]string{"/music/one.mp3"}))
	require.NoError(t, repo.SaveCurrentIndex(0))

	require.NoError(t, repo.Clear())

	loaded, err := repo.LoadQueue()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	index, err := repo.LoadCurrentIndex()
	require.NoError(t, err)
	assert.Equal(t, -1, index)
}
