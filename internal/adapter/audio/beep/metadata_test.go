package beep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naddyballia/Raaz-Music/internal/domain"
)

func TestExtractEmptyPath(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.Extract("")
	assert.ErrorIs(t, err, domain.ErrInvalidFilePath)
}

func TestExtractMissingFile(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.Extract("/nonexistent/song.mp3")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestExtractUntaggedFileFallsBackToFileName(t *testing.T) {
	// A file with no parseable tags should still come back as a song
	// titled after the file name.
	path := filepath.Join(t.TempDir(), "My Great Song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	extractor := NewExtractor()
	song, err := extractor.Extract(path)
	require.NoError(t, err)

	assert.Equal(t, path, song.FilePath)
	assert.Equal(t, "My Great Song", song.Title)
	assert.Empty(t, song.Artist)
	assert.Zero(t, song.Duration)
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	_, _, err = decode(path, file)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestGainFor(t *testing.T) {
	assert.Equal(t, 0.0, gainFor(1.0), "full level is unity gain")
	assert.Equal(t, -1.0, gainFor(0.5), "half level is one base-2 step down")
	assert.Equal(t, 0.0, gainFor(0))
}
