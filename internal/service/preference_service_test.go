package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/logger"
)

func newTestPreferenceService() (*PreferenceService, *memoryPreferencesRepository) {
	repo := newMemoryPreferencesRepository()
	return NewPreferenceService(logger.NewTestLogger(), repo), repo
}

func TestPreferenceService_Defaults(t *testing.T) {
	service, _ := newTestPreferenceService()

	assert.Equal(t, 0.8, service.GetVolume())
	assert.False(t, service.GetLoopMode())
	assert.Empty(t, service.GetLastFolder())
}

func TestPreferenceService_Volume(t *testing.T) {
	service, repo := newTestPreferenceService()

	require.NoError(t, service.SetVolume(0.4))
	assert.Equal(t, 0.4, service.GetVolume())

	saved, err := repo.LoadVolume()
	require.NoError(t, err)
	assert.Equal(t, 0.4, saved)

	assert.ErrorIs(t, service.SetVolume(1.2), domain.ErrInvalidVolume)
	assert.Equal(t, 0.4, service.GetVolume(), "invalid value must not change the cache")
}

func TestPreferenceService_LoopMode(t *testing.T) {
	service, repo := newTestPreferenceService()

	require.NoError(t, service.SetLoopMode(true))
	assert.True(t, service.GetLoopMode())

	saved, err := repo.LoadLoopMode()
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestPreferenceService_LastFolder(t *testing.T) {
	service, _ := newTestPreferenceService()

	require.NoError(t, service.SetLastFolder("/music/albums"))
	assert.Equal(t, "/music/albums", service.GetLastFolder())
}

func TestPreferenceService_LoadsPersistedValues(t *testing.T) {
	repo := newMemoryPreferencesRepository()
	require.NoError(t, repo.SaveVolume(0.3))
	require.NoError(t, repo.SaveLoopMode(true))
	require.NoError(t, repo.SaveLastFolder("/music"))

	service := NewPreferenceService(logger.NewTestLogger(), repo)

	assert.Equal(t, 0.3, service.GetVolume())
	assert.True(t, service.GetLoopMode())
	assert.Equal(t, "/music", service.GetLastFolder())
}

func TestPreferenceService_ResetToDefaults(t *testing.T) {
	service, _ := newTestPreferenceService()

	require.NoError(t, service.SetVolume(0.2))
	require.NoError(t, service.SetLoopMode(true))
	require.NoError(t, service.SetLastFolder("/music"))

	require.NoError(t, service.ResetToDefaults())

	assert.Equal(t, 0.8, service.GetVolume())
	assert.False(t, service.GetLoopMode())
	assert.Empty(t, service.GetLastFolder())
}
