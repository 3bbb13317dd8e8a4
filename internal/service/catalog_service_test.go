package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naddyballia/Raaz-Music/internal/adapter/eventbus"
	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/logger"
)

func newTestCatalogService(t *testing.T) (*CatalogService, *memorySongRepository, *eventbus.SyncEventBus) {
	t.Helper()

	bus := eventbus.NewSyncEventBus()
	songs := newMemorySongRepository()
	service := NewCatalogService(logger.NewTestLogger(), songs, bus, 3)

	return service, songs, bus
}

func seedSongs(t *testing.T, songs *memorySongRepository, titles ...string) {
	t.Helper()
	for _, title := range titles {
		song := createTestSong(title, "/music/"+title+".mp3")
		require.NoError(t, songs.Upsert(context.Background(), &song))
	}
}

func TestCatalogService_AllSongs(t *testing.T) {
	service, songs, _ := newTestCatalogService(t)
	seedSongs(t, songs, "Bravo", "Alpha")

	all := service.AllSongs(context.Background())
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha", all[0].Title)
	assert.Equal(t, "Bravo", all[1].Title)
}

func TestCatalogService_AllSongsDegradesToEmpty(t *testing.T) {
	service, songs, _ := newTestCatalogService(t)
	songs.failAll = true

	all := service.AllSongs(context.Background())
	assert.Empty(t, all)
	assert.NotNil(t, all, "broken storage yields an empty list, not nil")
}

func TestCatalogService_FavoriteSongs(t *testing.T) {
	service, songs, _ := newTestCatalogService(t)
	ctx := context.Background()
	seedSongs(t, songs, "Alpha", "Bravo")

	assert.Empty(t, service.FavoriteSongs(ctx))

	_, err := service.ToggleFavorite(ctx, "/music/Bravo.mp3")
	require.NoError(t, err)

	favorites := service.FavoriteSongs(ctx)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Bravo", favorites[0].Title)
}

func TestCatalogService_ToggleFavorite(t *testing.T) {
	service, songs, bus := newTestCatalogService(t)
	ctx := context.Background()
	seedSongs(t, songs, "Alpha")

	var toggledEvent domain.FavoriteToggledEvent
	bus.Subscribe(domain.EventFavoriteToggled, func(e domain.Event) {
		toggledEvent = e.(domain.FavoriteToggledEvent)
	})

	song, err := service.ToggleFavorite(ctx, "/music/Alpha.mp3")
	require.NoError(t, err)
	assert.True(t, song.Favorite)
	assert.True(t, toggledEvent.Favorite)

	// Toggling again flips it back.
	song, err = service.ToggleFavorite(ctx, "/music/Alpha.mp3")
	require.NoError(t, err)
	assert.False(t, song.Favorite)
	assert.False(t, toggledEvent.Favorite)
}

func TestCatalogService_ToggleFavoriteNotFound(t *testing.T) {
	service, _, _ := newTestCatalogService(t)

	_, err := service.ToggleFavorite(context.Background(), "/music/missing.mp3")
	assert.ErrorIs(t, err, domain.ErrSongNotFound)
}

func TestCatalogService_RecentlyPlayed(t *testing.T) {
	service, songs, _ := newTestCatalogService(t)
	ctx := context.Background()
	seedSongs(t, songs, "Alpha", "Bravo", "Charlie", "Delta", "Echo")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"Alpha", "Bravo", "Charlie", "Delta"} {
		_, err := service.RecordPlayed(ctx, "/music/"+title+".mp3", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	recent := service.RecentlyPlayed(ctx)
	require.Len(t, recent, 3, "recent view is capped at the configured limit")
	assert.Equal(t, "Delta", recent[0].Title)
	assert.Equal(t, "Charlie", recent[1].Title)
	assert.Equal(t, "Bravo", recent[2].Title)
}

func TestCatalogService_RecordPlayedPublishesEvent(t *testing.T) {
	service, songs, bus := newTestCatalogService(t)
	ctx := context.Background()
	seedSongs(t, songs, "Alpha")

	var playedEvent domain.SongPlayedEvent
	bus.Subscribe(domain.EventSongPlayed, func(e domain.Event) {
		playedEvent = e.(domain.SongPlayedEvent)
	})

	playedAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	song, err := service.RecordPlayed(ctx, "/music/Alpha.mp3", playedAt)
	require.NoError(t, err)

	assert.True(t, song.WasPlayed())
	assert.Equal(t, playedAt, playedEvent.PlayedAt)
	assert.Equal(t, "Alpha", playedEvent.Song.Title)
}

func TestCatalogService_Count(t *testing.T) {
	service, songs, _ := newTestCatalogService(t)
	seedSongs(t, songs, "Alpha", "Bravo")

	count, err := service.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
