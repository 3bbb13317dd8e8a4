// Package ports defines the interfaces that decouple the core services from
// concrete adapters (audio engine, persistence, event bus).
package ports

import (
	"time"

	"github.com/naddyballia/Raaz-Music/internal/domain"
)

// AudioEngine abstracts the underlying audio playback library so services
// can be tested against a mock.
//
// Implementations must be safe for concurrent use.
type AudioEngine interface {
	// Initialize prepares the audio output with the given sample rate (Hz)
	// and buffer length. Must be called once before Load.
	Initialize(sampleRate int, bufferSize time.Duration) error

	// Shutdown releases all engine resources.
	Shutdown() error

	// IsInitialized reports whether Initialize succeeded.
	IsInitialized() bool

	// Load decodes an audio file and returns a handle to it. Any
	// previously loaded song keeps playing until Stop or a new Play.
	Load(filePath string) (domain.SongHandle, error)

	// Unload releases the resources of a loaded song.
	Unload(handle domain.SongHandle) error

	// Play starts playback from the beginning, or resumes a paused song.
	Play(handle domain.SongHandle) error

	// Pause pauses playback, preserving the position.
	Pause(handle domain.SongHandle) error

	// Stop halts playback and unloads the song.
	Stop(handle domain.SongHandle) error

	// Status returns the transport state of the handle.
	Status(handle domain.SongHandle) (domain.PlaybackStatus, error)

	// Position returns the current playback position.
	Position(handle domain.SongHandle) (time.Duration, error)

	// Duration returns the total length of the loaded song.
	Duration(handle domain.SongHandle) (time.Duration, error)

	// Seek moves the playback position. The position must be within
	// [0, Duration].
	Seek(handle domain.SongHandle, position time.Duration) error

	// SetVolume sets the output volume, 0.0 (silent) to 1.0 (full).
	SetVolume(handle domain.SongHandle, volume float64) error

	// GetVolume returns the output volume for the handle.
	GetVolume(handle domain.SongHandle) (float64, error)
}

// MetadataExtractor reads tag metadata from an audio file without loading it
// for playback. Extraction is best-effort: a file whose tags cannot be read
// still yields a Song with the file name as its title.
type MetadataExtractor interface {
	// Extract returns a Song populated from the file's tags.
	Extract(filePath string) (*domain.Song, error)
}
