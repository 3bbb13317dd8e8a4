package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naddyballia/Raaz-Music/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSong(path string) *domain.Song {
	return &domain.Song{
		FilePath: path,
		Title:    "Test Song",
		Artist:   "Test Artist",
		Album:    "Test Album",
		Duration: 3 * time.Minute,
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "catalog.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, path, store.Path())

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOpenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, testSong("/music/a.mp3")))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpsertInsert(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	song := testSong("/music/a.mp3")
	require.NoError(t, store.Upsert(ctx, song))

	assert.NotEmpty(t, song.ID)
	assert.False(t, song.Favorite)
	assert.True(t, song.LastPlayedAt.IsZero())
	assert.False(t, song.CreatedAt.IsZero())

	got, err := store.GetByPath(ctx, "/music/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, song.ID, got.ID)
	assert.Equal(t, "Test Song", got.Title)
	assert.Equal(t, 3*time.Minute, got.Duration)
}

func TestUpsertPreservesUserState(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	song := testSong("/music/a.mp3")
	require.NoError(t, store.Upsert(ctx, song))
	originalID := song.ID

	_, err := store.SetFavorite(ctx, song.FilePath, true)
	require.NoError(t, err)
	playedAt := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	_, err = store.RecordPlayed(ctx, song.FilePath, playedAt)
	require.NoError(t, err)

	// Rescan produces a fresh song value for the same file.
	rescanned := testSong("/music/a.mp3")
	rescanned.Title = "Retagged Title"
	require.NoError(t, store.Upsert(ctx, rescanned))

	assert.Equal(t, originalID, rescanned.ID)
	assert.Equal(t, "Retagged Title", rescanned.Title)
	assert.True(t, rescanned.Favorite)
	assert.True(t, playedAt.Equal(rescanned.LastPlayedAt))
}

func TestUpsertRejectsEmptyPath(t *testing.T) {
	store := openTestStore(t)

	err := store.Upsert(context.Background(), &domain.Song{Title: "No Path"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilePath)
}

func TestGetByPathNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByPath(context.Background(), "/missing.mp3")
	assert.ErrorIs(t, err, domain.ErrSongNotFound)
}

func TestAllOrderedByTitle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, entry := range []struct{ path, title string }{
		{"/music/c.mp3", "charlie"},
		{"/music/a.mp3", "Alpha"},
		{"/music/b.mp3", "Bravo"},
	} {
		song := testSong(entry.path)
		song.Title = entry.title
		require.NoError(t, store.Upsert(ctx, song))
	}

	songs, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 3)
	assert.Equal(t, "Alpha", songs[0].Title)
	assert.Equal(t, "Bravo", songs[1].Title)
	assert.Equal(t, "charlie", songs[2].Title)
}

func TestFavorites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testSong("/music/a.mp3")))
	require.NoError(t, store.Upsert(ctx, testSong("/music/b.mp3")))

	updated, err := store.SetFavorite(ctx, "/music/b.mp3", true)
	require.NoError(t, err)
	assert.True(t, updated.Favorite)

	favorites, err := store.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "/music/b.mp3", favorites[0].FilePath)

	// Unset removes it from the list again.
	_, err = store.SetFavorite(ctx, "/music/b.mp3", false)
	require.NoError(t, err)

	favorites, err = store.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestSetFavoriteNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SetFavorite(context.Background(), "/missing.mp3", true)
	assert.ErrorIs(t, err, domain.ErrSongNotFound)
}

func TestRecentlyPlayed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i, path := range []string{"/music/a.mp3", "/music/b.mp3", "/music/c.mp3"} {
		require.NoError(t, store.Upsert(ctx, testSong(path)))
		_, err := store.RecordPlayed(ctx, path, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}
	// Never played, must not appear.
	require.NoError(t, store.Upsert(ctx, testSong("/music/d.mp3")))

	recent, err := store.RecentlyPlayed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "/music/c.mp3", recent[0].FilePath)
	assert.Equal(t, "/music/a.mp3", recent[2].FilePath)

	limited, err := store.RecentlyPlayed(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRecentlyPlayedSubSecondOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Timestamps in the same second with different fraction lengths; a
	// trimmed-fraction encoding would sort these lexicographically wrong.
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	plays := []struct {
		path string
		at   time.Time
	}{
		{"/music/whole.mp3", base},
		{"/music/half.mp3", base.Add(500 * time.Millisecond)},
		{"/music/tenth.mp3", base.Add(100 * time.Millisecond)},
		{"/music/fine.mp3", base.Add(150 * time.Millisecond)},
	}
	for _, play := range plays {
		require.NoError(t, store.Upsert(ctx, testSong(play.path)))
		_, err := store.RecordPlayed(ctx, play.path, play.at)
		require.NoError(t, err)
	}

	recent, err := store.RecentlyPlayed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, "/music/half.mp3", recent[0].FilePath)
	assert.Equal(t, "/music/fine.mp3", recent[1].FilePath)
	assert.Equal(t, "/music/tenth.mp3", recent[2].FilePath)
	assert.Equal(t, "/music/whole.mp3", recent[3].FilePath)
}

func TestRecordPlayedNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RecordPlayed(context.Background(), "/missing.mp3", time.Now())
	assert.ErrorIs(t, err, domain.ErrSongNotFound)
}

func TestCount(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testSong("/music/a.mp3")))
	require.NoError(t, store.Upsert(ctx, testSong("/music/b.mp3")))
	// Same path twice does not grow the catalog.
	require.NoError(t, store.Upsert(ctx, testSong("/music/a.mp3")))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
