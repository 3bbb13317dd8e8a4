// Package fyneprefs implements the preferences and history repositories on
// top of Fyne's preferences store.
//
// Fyne preferences automatically use OS-specific app data directories:
//   - macOS: ~/Library/Preferences/com.raaz.player.plist
//   - Linux: ~/.config/raaz/
//   - Windows: %APPDATA%\raaz\
package fyneprefs

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// PreferencesRepository implements ports.PreferencesRepository using Fyne
// preferences.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewPreferencesRepository creates a new preferences repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewPreferencesRepository(prefs fyne.Preferences) *PreferencesRepository {
	return &PreferencesRepository{
		prefs: prefs,
	}
}

// SaveVolume persists the volume level.
func (r *PreferencesRepository) SaveVolume(volume float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetFloat("preferences.volume", volume)
	return nil
}

// LoadVolume retrieves the saved volume level, 0.8 when none was saved.
func (r *PreferencesRepository) LoadVolume() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.FloatWithFallback("preferences.volume", 0.8), nil
}

// SaveLoopMode persists the loop mode state.
func (r *PreferencesRepository) SaveLoopMode(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetBool("preferences.loop", enabled)
	return nil
}

// LoadLoopMode retrieves the saved loop mode state.
func (r *PreferencesRepository) LoadLoopMode() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.BoolWithFallback("preferences.loop", false), nil
}

// SaveLastFolder persists the most recently opened folder.
func (r *PreferencesRepository) SaveLastFolder(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString("preferences.last_folder", path)
	return nil
}

// LoadLastFolder retrieves the saved folder, empty when none was saved.
func (r *PreferencesRepository) LoadLastFolder() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.String("preferences.last_folder"), nil
}

// Clear removes all saved preferences.
func (r *PreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue("preferences.volume")
	r.prefs.RemoveValue("preferences.loop")
	r.prefs.RemoveValue("preferences.last_folder")

	return nil
}

// Verify interface implementation
var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)
