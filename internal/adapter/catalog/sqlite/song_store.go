package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

const songColumns = `id, file_path, title, artist, album, album_artist, genre,
	duration_ms, track_number, year, album_art, last_played_at, favorite,
	created_at, updated_at`

// timeLayout is RFC 3339 with a fixed-width fraction. Timestamps are stored
// as TEXT and ordered lexicographically, so the fraction must not be
// trimmed: RFC3339Nano drops trailing zeros, which mis-orders values within
// the same second ('Z' sorts after any digit and after '.').
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Upsert inserts the song or, when a record with the same file path exists,
// replaces its metadata while preserving ID, Favorite, LastPlayedAt and
// CreatedAt. The write-back updates the passed song with the stored record.
func (s *Store) Upsert(ctx context.Context, song *domain.Song) error {
	if song == nil {
		return errors.New("song is nil")
	}
	if song.FilePath == "" {
		return domain.ErrInvalidFilePath
	}

	now := time.Now().UTC()
	timestamp := now.Format(timeLayout)
	if song.ID == "" {
		song.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO songs (
            id, file_path, title, artist, album, album_artist, genre,
            duration_ms, track_number, year, album_art,
            last_played_at, favorite, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, 0, ?, ?)
        ON CONFLICT(file_path) DO UPDATE SET
            title        = excluded.title,
            artist       = excluded.artist,
            album        = excluded.album,
            album_artist = excluded.album_artist,
            genre        = excluded.genre,
            duration_ms  = excluded.duration_ms,
            track_number = excluded.track_number,
            year         = excluded.year,
            album_art    = excluded.album_art,
            updated_at   = excluded.updated_at`,
		song.ID,
		song.FilePath,
		song.Title,
		song.Artist,
		song.Album,
		song.AlbumArtist,
		song.Genre,
		song.Duration.Milliseconds(),
		song.TrackNumber,
		song.Year,
		song.AlbumArt,
		timestamp,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("upsert song: %w", err)
	}

	stored, err := s.GetByPath(ctx, song.FilePath)
	if err != nil {
		return err
	}
	*song = *stored
	return nil
}

// GetByPath returns the song with the given file path.
func (s *Store) GetByPath(ctx context.Context, filePath string) (*domain.Song, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE file_path = ?`, filePath)
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// All returns every catalogued song ordered by title.
func (s *Store) All(ctx context.Context) ([]domain.Song, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs ORDER BY title COLLATE NOCASE, file_path`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	return collectSongs(rows)
}

// Favorites returns all favorite songs ordered by title.
func (s *Store) Favorites(ctx context.Context) ([]domain.Song, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE favorite = 1
         ORDER BY title COLLATE NOCASE, file_path`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	return collectSongs(rows)
}

// RecentlyPlayed returns played songs, most recent first.
func (s *Store) RecentlyPlayed(ctx context.Context, limit int) ([]domain.Song, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE last_played_at IS NOT NULL
         ORDER BY last_played_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recently played: %w", err)
	}
	defer rows.Close()

	return collectSongs(rows)
}

// SetFavorite sets the favorite flag and returns the updated song.
func (s *Store) SetFavorite(ctx context.Context, filePath string, favorite bool) (*domain.Song, error) {
	timestamp := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`UPDATE songs SET favorite = ?, updated_at = ? WHERE file_path = ?`,
		boolToInt(favorite), timestamp, filePath)
	if err != nil {
		return nil, fmt.Errorf("set favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("set favorite rows: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrSongNotFound
	}

	return s.GetByPath(ctx, filePath)
}

// RecordPlayed stamps the last-played timestamp and returns the updated song.
func (s *Store) RecordPlayed(ctx context.Context, filePath string, playedAt time.Time) (*domain.Song, error) {
	timestamp := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`UPDATE songs SET last_played_at = ?, updated_at = ? WHERE file_path = ?`,
		playedAt.UTC().Format(timeLayout), timestamp, filePath)
	if err != nil {
		return nil, fmt.Errorf("record played: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("record played rows: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrSongNotFound
	}

	return s.GetByPath(ctx, filePath)
}

// Count returns the number of catalogued songs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM songs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	return count, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*domain.Song, error) {
	var (
		song       domain.Song
		durationMS int64
		albumArt   []byte
		lastPlayed sql.NullString
		favorite   int
		createdAt  string
		updatedAt  string
	)

	err := row.Scan(
		&song.ID,
		&song.FilePath,
		&song.Title,
		&song.Artist,
		&song.Album,
		&song.AlbumArtist,
		&song.Genre,
		&durationMS,
		&song.TrackNumber,
		&song.Year,
		&albumArt,
		&lastPlayed,
		&favorite,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	song.Duration = time.Duration(durationMS) * time.Millisecond
	song.AlbumArt = albumArt
	song.Favorite = favorite != 0

	if lastPlayed.Valid {
		t, parseErr := time.Parse(time.RFC3339Nano, lastPlayed.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse last_played_at: %w", parseErr)
		}
		song.LastPlayedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		song.CreatedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
		song.UpdatedAt = t
	}

	return &song, nil
}

func collectSongs(rows *sql.Rows) ([]domain.Song, error) {
	songs := make([]domain.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, *song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Verify that Store implements the SongRepository interface
var _ ports.SongRepository = (*Store)(nil)
