package beep

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// Extractor reads tag metadata from audio files using dhowden/tag.
// Extraction is best-effort: files with unreadable or missing tags still
// yield a song titled after the file name.
type Extractor struct{}

// NewExtractor creates a tag-based metadata extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns a song populated from the file's tags.
func (x *Extractor) Extract(filePath string) (*domain.Song, error) {
	if filePath == "" {
		return nil, domain.ErrInvalidFilePath
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, domain.ErrFileNotFound
	}

	base := filepath.Base(filePath)
	song := &domain.Song{
		FilePath: filePath,
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
	}

	file, err := os.Open(filePath)
	if err != nil {
		// Fall back to file-name metadata.
		return song, nil
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		return song, nil
	}

	if title := strings.TrimSpace(metadata.Title()); title != "" {
		song.Title = title
	}
	if artist := strings.TrimSpace(metadata.Artist()); artist != "" {
		song.Artist = artist
	}
	if album := strings.TrimSpace(metadata.Album()); album != "" {
		song.Album = album
	}
	if albumArtist := strings.TrimSpace(metadata.AlbumArtist()); albumArtist != "" {
		song.AlbumArtist = albumArtist
	}
	song.Genre = strings.TrimSpace(metadata.Genre())

	if year := metadata.Year(); year > 0 {
		song.Year = year
	}

	trackNum, _ := metadata.Track()
	song.TrackNumber = trackNum

	if picture := metadata.Picture(); picture != nil {
		song.AlbumArt = picture.Data
	}

	song.Duration = streamDuration(filePath)

	return song, nil
}

// streamDuration decodes the stream header to get the exact length. Tags do
// not carry duration, so this is the only reliable source. Returns zero on
// any failure; a zero duration is acceptable in the catalog.
func streamDuration(filePath string) time.Duration {
	file, err := os.Open(filePath)
	if err != nil {
		return 0
	}
	defer func() { _ = file.Close() }()

	streamer, format, err := decode(filePath, file)
	if err != nil {
		return 0
	}
	defer func() { _ = streamer.Close() }()

	return format.SampleRate.D(streamer.Len())
}

// Verify that Extractor implements the MetadataExtractor interface
var _ ports.MetadataExtractor = (*Extractor)(nil)
