package ports

import (
	"context"
	"time"

	"github.com/naddyballia/Raaz-Music/internal/domain"
)

// SongRepository is the persistent song catalog. One record per audio file,
// keyed by file path. Records are never deleted.
//
// Implementations must be safe for concurrent use.
type SongRepository interface {
	// Upsert inserts the song or replaces the record with the same
	// FilePath. On replace, the existing Favorite flag, LastPlayedAt
	// timestamp, ID and CreatedAt are preserved.
	Upsert(ctx context.Context, song *domain.Song) error

	// GetByPath returns the song with the given file path, or
	// domain.ErrSongNotFound.
	GetByPath(ctx context.Context, filePath string) (*domain.Song, error)

	// All returns every catalogued song ordered by title.
	All(ctx context.Context) ([]domain.Song, error)

	// Favorites returns all songs with the favorite flag set, ordered by
	// title.
	Favorites(ctx context.Context) ([]domain.Song, error)

	// RecentlyPlayed returns songs that have been played, most recent
	// first, at most limit entries.
	RecentlyPlayed(ctx context.Context, limit int) ([]domain.Song, error)

	// SetFavorite sets the favorite flag and returns the updated song.
	SetFavorite(ctx context.Context, filePath string, favorite bool) (*domain.Song, error)

	// RecordPlayed stamps the last-played timestamp and returns the
	// updated song.
	RecordPlayed(ctx context.Context, filePath string, playedAt time.Time) (*domain.Song, error)

	// Count returns the number of catalogued songs.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying storage.
	Close() error
}

// HistoryRepository persists the playback queue across restarts.
//
// Implementations must be safe for concurrent use.
type HistoryRepository interface {
	// SaveQueue persists the queued file paths.
	SaveQueue(paths []string) error

	// LoadQueue returns the saved file paths, empty when none were saved.
	LoadQueue() ([]string, error)

	// SaveCurrentIndex persists the current queue position.
	SaveCurrentIndex(index int) error

	// LoadCurrentIndex returns the saved position, -1 when none was saved.
	LoadCurrentIndex() (int, error)

	// Clear removes all saved history.
	Clear() error
}

// PreferencesRepository persists user preferences.
//
// Implementations must be safe for concurrent use.
type PreferencesRepository interface {
	// SaveVolume persists the volume (0.0 to 1.0).
	SaveVolume(volume float64) error

	// LoadVolume returns the saved volume, 0.8 when none was saved.
	LoadVolume() (float64, error)

	// SaveLoopMode persists the loop mode.
	SaveLoopMode(enabled bool) error

	// LoadLoopMode returns the saved loop mode, false when none was saved.
	LoadLoopMode() (bool, error)

	// SaveLastFolder persists the most recently opened folder.
	SaveLastFolder(path string) error

	// LoadLastFolder returns the saved folder, empty when none was saved.
	LoadLastFolder() (string, error)

	// Clear removes all saved preferences.
	Clear() error
}
