package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// CatalogService exposes the persistent song catalog: listing views,
// favorite toggling and play tracking.
type CatalogService struct {
	logger *slog.Logger
	songs  ports.SongRepository
	bus    ports.EventBus

	// recentLimit caps the recently-played view.
	recentLimit int
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	logger *slog.Logger,
	songs ports.SongRepository,
	bus ports.EventBus,
	recentLimit int,
) *CatalogService {
	if recentLimit <= 0 {
		recentLimit = 50
	}
	return &CatalogService{
		logger:      logger,
		songs:       songs,
		bus:         bus,
		recentLimit: recentLimit,
	}
}

// AllSongs returns every catalogued song ordered by title. Failures degrade
// to an empty list so a broken catalog never takes out the UI.
func (s *CatalogService) AllSongs(ctx context.Context) []domain.Song {
	songs, err := s.songs.All(ctx)
	if err != nil {
		s.logger.Error("failed to list songs", slog.Any("error", err))
		return []domain.Song{}
	}
	return songs
}

// FavoriteSongs returns all favorites ordered by title, empty on failure.
func (s *CatalogService) FavoriteSongs(ctx context.Context) []domain.Song {
	songs, err := s.songs.Favorites(ctx)
	if err != nil {
		s.logger.Error("failed to list favorites", slog.Any("error", err))
		return []domain.Song{}
	}
	return songs
}

// RecentlyPlayed returns played songs, most recent first, empty on failure.
func (s *CatalogService) RecentlyPlayed(ctx context.Context) []domain.Song {
	songs, err := s.songs.RecentlyPlayed(ctx, s.recentLimit)
	if err != nil {
		s.logger.Error("failed to list recently played", slog.Any("error", err))
		return []domain.Song{}
	}
	return songs
}

// Song returns one catalog record by file path.
func (s *CatalogService) Song(ctx context.Context, filePath string) (*domain.Song, error) {
	return s.songs.GetByPath(ctx, filePath)
}

// Count returns the catalog size.
func (s *CatalogService) Count(ctx context.Context) (int, error) {
	return s.songs.Count(ctx)
}

// ToggleFavorite flips the favorite flag of the song and returns the
// updated record.
func (s *CatalogService) ToggleFavorite(ctx context.Context, filePath string) (*domain.Song, error) {
	song, err := s.songs.GetByPath(ctx, filePath)
	if err != nil {
		return nil, err
	}

	updated, err := s.songs.SetFavorite(ctx, filePath, !song.Favorite)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(domain.NewFavoriteToggledEvent(*updated, updated.Favorite))

	return updated, nil
}

// RecordPlayed stamps the last-played timestamp of the song.
func (s *CatalogService) RecordPlayed(ctx context.Context, filePath string, playedAt time.Time) (*domain.Song, error) {
	updated, err := s.songs.RecordPlayed(ctx, filePath, playedAt)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(domain.NewSongPlayedEvent(*updated, playedAt))

	return updated, nil
}

// Verify that CatalogService implements the expected interface patterns
var _ interface {
	AllSongs(context.Context) []domain.Song
	FavoriteSongs(context.Context) []domain.Song
	RecentlyPlayed(context.Context) []domain.Song
	Song(context.Context, string) (*domain.Song, error)
	Count(context.Context) (int, error)
	ToggleFavorite(context.Context, string) (*domain.Song, error)
	RecordPlayed(context.Context, string, time.Time) (*domain.Song, error)
} = (*CatalogService)(nil)
