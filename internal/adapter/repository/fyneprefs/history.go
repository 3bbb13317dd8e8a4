package fyneprefs

import (
	"encoding/json"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// HistoryRepository implements ports.HistoryRepository using Fyne
// preferences. The queue is stored as file paths; full song records live in
// the catalog and are re-resolved on load.
//
// Thread-safe: All operations protected by sync.RWMutex.
type HistoryRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewHistoryRepository creates a new history repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewHistoryRepository(prefs fyne.Preferences) *HistoryRepository {
	return &HistoryRepository{
		prefs: prefs,
	}
}

// SaveQueue persists the queued file paths.
func (r *HistoryRepository) SaveQueue(paths []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(paths)
	if err != nil {
		return domain.NewRepositoryError("SaveQueue", "fyneprefs", "failed to marshal paths", err)
	}

	r.prefs.SetString("history.queue", string(data))

	return nil
}

// LoadQueue retrieves the last saved playback queue.
func (r *HistoryRepository) LoadQueue() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := r.prefs.String("history.queue")
	if data == "" {
		return []string{}, nil
	}

	var paths []string
	if err := json.Unmarshal([]byte(data), &paths); err != nil {
		return nil, domain.NewRepositoryError("LoadQueue", "fyneprefs", "failed to unmarshal paths", err)
	}

	return paths, nil
}

// SaveCurrentIndex persists the current queue position.
func (r *HistoryRepository) SaveCurrentIndex(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store index+1 to distinguish between "not set" (0) and "saved 0" (1).
	// Fyne returns 0 when the key doesn't exist.
	r.prefs.SetInt("history.current_index", index+1)
	return nil
}

// LoadCurrentIndex retrieves the last saved queue position.
func (r *HistoryRepository) LoadCurrentIndex() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	storedValue := r.prefs.Int("history.current_index")
	if storedValue == 0 {
		// Key doesn't exist, nothing was selected
		return -1, nil
	}

	return storedValue - 1, nil
}

// Clear removes all saved history data.
func (r *HistoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue("history.queue")
	r.prefs.RemoveValue("history.current_index")

	return nil
}

// Verify interface implementation
var _ ports.HistoryRepository = (*HistoryRepository)(nil)
