package service

import (
	"log/slog"
	"sync"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// PreferenceService manages user preferences: volume, loop mode and the
// last opened folder.
// All operations are thread-safe via sync.RWMutex.
type PreferenceService struct {
	logger     *slog.Logger
	repository ports.PreferencesRepository

	// Cached preferences
	volume      float64
	loopEnabled bool
	lastFolder  string

	mu sync.RWMutex
}

// NewPreferenceService creates a new preference service and loads the
// persisted values.
func NewPreferenceService(
	logger *slog.Logger,
	repository ports.PreferencesRepository,
) *PreferenceService {
	service := &PreferenceService{
		logger:     logger,
		repository: repository,
		volume:     0.8,
	}

	service.loadPreferences()

	return service
}

// loadPreferences fills the cache from the repository.
func (s *PreferenceService) loadPreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vol, err := s.repository.LoadVolume(); err == nil {
		s.volume = vol
	}

	if loop, err := s.repository.LoadLoopMode(); err == nil {
		s.loopEnabled = loop
	}

	if folder, err := s.repository.LoadLastFolder(); err == nil {
		s.lastFolder = folder
	}
}

// GetVolume returns the saved volume preference (0.0 to 1.0).
func (s *PreferenceService) GetVolume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.volume
}

// SetVolume saves the volume preference (0.0 to 1.0).
func (s *PreferenceService) SetVolume(volume float64) error {
	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	s.mu.Lock()
	s.volume = volume
	s.mu.Unlock()

	return s.repository.SaveVolume(volume)
}

// GetLoopMode returns the saved loop mode preference.
func (s *PreferenceService) GetLoopMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loopEnabled
}

// SetLoopMode saves the loop mode preference.
func (s *PreferenceService) SetLoopMode(enabled bool) error {
	s.mu.Lock()
	s.loopEnabled = enabled
	s.mu.Unlock()

	return s.repository.SaveLoopMode(enabled)
}

// GetLastFolder returns the last opened folder path.
func (s *PreferenceService) GetLastFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastFolder
}

// SetLastFolder saves the last opened folder path.
func (s *PreferenceService) SetLastFolder(path string) error {
	s.mu.Lock()
	s.lastFolder = path
	s.mu.Unlock()

	return s.repository.SaveLastFolder(path)
}

// ResetToDefaults resets all preferences to default values.
func (s *PreferenceService) ResetToDefaults() error {
	s.mu.Lock()
	s.volume = 0.8
	s.loopEnabled = false
	s.lastFolder = ""
	s.mu.Unlock()

	if err := s.repository.Clear(); err != nil {
		return err
	}

	return s.repository.SaveVolume(0.8)
}

// Shutdown cleans up resources.
func (s *PreferenceService) Shutdown() error {
	return nil
}

// Verify that PreferenceService implements the expected interface patterns
var _ interface {
	GetVolume() float64
	SetVolume(float64) error
	GetLoopMode() bool
	SetLoopMode(bool) error
	GetLastFolder() string
	SetLastFolder(string) error
	ResetToDefaults() error
	Shutdown() error
} = (*PreferenceService)(nil)
