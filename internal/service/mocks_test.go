package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// memorySongRepository is an in-memory SongRepository for service tests.
type memorySongRepository struct {
	mu    sync.RWMutex
	songs map[string]domain.Song

	failAll bool
}

func newMemorySongRepository() *memorySongRepository {
	return &memorySongRepository{songs: make(map[string]domain.Song)}
}

func (r *memorySongRepository) Upsert(_ context.Context, song *domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.songs[song.FilePath]; ok {
		song.ID = existing.ID
		song.Favorite = existing.Favorite
		song.LastPlayedAt = existing.LastPlayedAt
		song.CreatedAt = existing.CreatedAt
	} else {
		if song.ID == "" {
			song.ID = uuid.NewString()
		}
		song.CreatedAt = now
	}
	song.UpdatedAt = now
	r.songs[song.FilePath] = *song
	return nil
}

func (r *memorySongRepository) GetByPath(_ context.Context, filePath string) (*domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	song, ok := r.songs[filePath]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	return &song, nil
}

func (r *memorySongRepository) All(_ context.Context) ([]domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failAll {
		return nil, domain.NewRepositoryError("all", "memory", "forced failure", nil)
	}

	songs := make([]domain.Song, 0, len(r.songs))
	for _, song := range r.songs {
		songs = append(songs, song)
	}
	sort.Slice(songs, func(i, j int) bool {
		return strings.ToLower(songs[i].Title) < strings.ToLower(songs[j].Title)
	})
	return songs, nil
}

func (r *memorySongRepository) Favorites(ctx context.Context) ([]domain.Song, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	favorites := make([]domain.Song, 0)
	for _, song := range all {
		if song.Favorite {
			favorites = append(favorites, song)
		}
	}
	return favorites, nil
}

func (r *memorySongRepository) RecentlyPlayed(_ context.Context, limit int) ([]domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	played := make([]domain.Song, 0)
	for _, song := range r.songs {
		if song.WasPlayed() {
			played = append(played, song)
		}
	}
	sort.Slice(played, func(i, j int) bool {
		return played[i].LastPlayedAt.After(played[j].LastPlayedAt)
	})
	if limit > 0 && len(played) > limit {
		played = played[:limit]
	}
	return played, nil
}

func (r *memorySongRepository) SetFavorite(_ context.Context, filePath string, favorite bool) (*domain.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	song, ok := r.songs[filePath]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	song.Favorite = favorite
	song.UpdatedAt = time.Now().UTC()
	r.songs[filePath] = song
	return &song, nil
}

func (r *memorySongRepository) RecordPlayed(_ context.Context, filePath string, playedAt time.Time) (*domain.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	song, ok := r.songs[filePath]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	song.LastPlayedAt = playedAt
	song.UpdatedAt = time.Now().UTC()
	r.songs[filePath] = song
	return &song, nil
}

func (r *memorySongRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.songs), nil
}

func (r *memorySongRepository) Close() error { return nil }

// memoryHistoryRepository is an in-memory HistoryRepository for tests.
type memoryHistoryRepository struct {
	mu    sync.Mutex
	paths []string
	index int
}

func newMemoryHistoryRepository() *memoryHistoryRepository {
	return &memoryHistoryRepository{index: -1}
}

func (r *memoryHistoryRepository) SaveQueue(paths []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append([]string(nil), paths...)
	return nil
}

func (r *memoryHistoryRepository) LoadQueue() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...), nil
}

func (r *memoryHistoryRepository) SaveCurrentIndex(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = index
	return nil
}

func (r *memoryHistoryRepository) LoadCurrentIndex() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index, nil
}

func (r *memoryHistoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = nil
	r.index = -1
	return nil
}

// memoryPreferencesRepository is an in-memory PreferencesRepository for tests.
type memoryPreferencesRepository struct {
	mu         sync.Mutex
	volume     float64
	hasVolume  bool
	loop       bool
	lastFolder string
}

func newMemoryPreferencesRepository() *memoryPreferencesRepository {
	return &memoryPreferencesRepository{}
}

func (r *memoryPreferencesRepository) SaveVolume(volume float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = volume
	r.hasVolume = true
	return nil
}

func (r *memoryPreferencesRepository) LoadVolume() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasVolume {
		return 0.8, nil
	}
	return r.volume, nil
}

func (r *memoryPreferencesRepository) SaveLoopMode(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loop = enabled
	return nil
}

func (r *memoryPreferencesRepository) LoadLoopMode() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loop, nil
}

func (r *memoryPreferencesRepository) SaveLastFolder(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFolder = path
	return nil
}

func (r *memoryPreferencesRepository) LoadLastFolder() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastFolder, nil
}

func (r *memoryPreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = 0
	r.hasVolume = false
	r.loop = false
	r.lastFolder = ""
	return nil
}

// failingExtractor always fails, for scanner degradation tests.
type failingExtractor struct{}

func (failingExtractor) Extract(string) (*domain.Song, error) {
	return nil, domain.NewAudioEngineError("extract", "", "forced failure", nil)
}

var (
	_ ports.SongRepository        = (*memorySongRepository)(nil)
	_ ports.HistoryRepository     = (*memoryHistoryRepository)(nil)
	_ ports.PreferencesRepository = (*memoryPreferencesRepository)(nil)
	_ ports.MetadataExtractor     = (failingExtractor{})
)
