package beep

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wavBytes builds a minimal 16-bit mono PCM WAV file with the given number
// of silent samples.
func wavBytes(sampleRate, samples int) []byte {
	dataLen := samples * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))

	return buf.Bytes()
}

func writeWavFile(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, os.WriteFile(path, wavBytes(44100, samples), 0o644))
	return path
}

func TestDecodeWav(t *testing.T) {
	path := writeWavFile(t, 4410)

	file, err := os.Open(path)
	require.NoError(t, err)

	streamer, format, err := decode(path, file)
	require.NoError(t, err)
	defer streamer.Close()

	assert.Equal(t, 44100, int(format.SampleRate))
	assert.Equal(t, 4410, streamer.Len())
}

func TestCloseSongLogsNoWarnings(t *testing.T) {
	path := writeWavFile(t, 441)

	file, err := os.Open(path)
	require.NoError(t, err)

	streamer, format, err := decode(path, file)
	require.NoError(t, err)

	var logs bytes.Buffer
	engine := NewEngine(slog.New(slog.NewTextHandler(&logs, nil)))

	// The decoder owns the reader, so its Close also closes the file.
	// Unloading must not warn about the resulting double close.
	engine.closeSong(&loadedSong{
		filePath: path,
		file:     file,
		streamer: streamer,
		format:   format,
	})

	assert.Empty(t, logs.String())
}
