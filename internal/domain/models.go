// Package domain contains the core business models of the Raaz music player.
// It has no dependencies outside the standard library.
package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Song is a catalog record for one audio file and its metadata.
// Songs are keyed by FilePath: a re-scan replaces the metadata fields but
// preserves Favorite and LastPlayedAt.
type Song struct {
	// ID is a stable unique identifier assigned when the record is first
	// inserted into the catalog (UUID).
	ID string

	// FilePath is the absolute path to the audio file. It is the unique
	// key of the catalog.
	FilePath string

	// Title is the song title, falling back to the file name when
	// metadata extraction fails or carries no title.
	Title string

	// Artist is the performing artist.
	Artist string

	// Album is the album name.
	Album string

	// AlbumArtist is the album-level artist, when tagged.
	AlbumArtist string

	// Genre is the music genre.
	Genre string

	// Duration is the total track length, zero when unknown.
	Duration time.Duration

	// TrackNumber is the position on the album, zero when untagged.
	TrackNumber int

	// Year is the release year, zero when untagged.
	Year int

	// AlbumArt holds embedded artwork bytes, nil when none.
	AlbumArt []byte

	// LastPlayedAt is when playback of this song last started.
	// The zero value means the song was never played.
	LastPlayedAt time.Time

	// Favorite marks the song as a user favorite.
	Favorite bool

	// CreatedAt and UpdatedAt track catalog record lifecycle.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayTitle returns the title, or the base file name when no title is set.
func (s Song) DisplayTitle() string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	return filepath.Base(s.FilePath)
}

// WasPlayed reports whether the song has ever been played.
func (s Song) WasPlayed() bool {
	return !s.LastPlayedAt.IsZero()
}

// SongHandle is an opaque identifier the audio engine uses to reference a
// loaded song.
type SongHandle int64

// InvalidSongHandle represents an unloaded or released handle.
const InvalidSongHandle SongHandle = 0

// PlaybackStatus is the transport state of the player.
type PlaybackStatus int

const (
	// StatusStopped indicates no active playback.
	StatusStopped PlaybackStatus = iota

	// StatusPlaying indicates playback is running.
	StatusPlaying

	// StatusPaused indicates playback is paused and resumable.
	StatusPaused
)

// String returns a human-readable playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// PlaybackState is a snapshot of the player transport.
type PlaybackState struct {
	// CurrentSong is the loaded song, nil when none.
	CurrentSong *Song

	// QueueIndex is the position of the loaded song in the queue,
	// -1 when nothing is loaded.
	QueueIndex int

	// Status is the transport state.
	Status PlaybackStatus

	// Position is the playback position within the current song.
	Position time.Duration

	// Duration is the length of the current song as reported by the engine.
	Duration time.Duration

	// Volume is the playback volume (0.0 to 1.0).
	Volume float64

	// IsMuted reports whether output is muted.
	IsMuted bool

	// IsLooping reports whether the current song repeats on completion.
	IsLooping bool
}

// ScanProgress describes one step of a library scan.
type ScanProgress struct {
	// CurrentFile is the file being processed.
	CurrentFile string

	// FilesScanned is the number of candidate files processed so far.
	FilesScanned int

	// TotalFiles is the number of candidate files, -1 when unknown.
	TotalFiles int

	// SongsFound is the number of songs catalogued so far.
	SongsFound int
}

// Percentage returns completion as 0-100, or -1 when the total is unknown.
func (p ScanProgress) Percentage() float64 {
	if p.TotalFiles <= 0 {
		return -1
	}
	return float64(p.FilesScanned) / float64(p.TotalFiles) * 100.0
}

// ScanReport summarizes a completed scan pass.
type ScanReport struct {
	// Paths are the roots that were walked.
	Paths []string

	// FilesSeen is the number of files matching the extension allow-list.
	FilesSeen int

	// SongsUpserted is the number of records written to the catalog.
	SongsUpserted int

	// Skipped is the number of files skipped because they could not be
	// read at all.
	Skipped int

	// Elapsed is the wall-clock scan duration.
	Elapsed time.Duration
}
