// Package mock provides an in-memory implementation of the AudioEngine
// interface, used for testing services without opening an audio device.
package mock

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// Engine simulates audio playback in memory.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	initialized bool
	sampleRate  int
	bufferSize  time.Duration

	songs      map[domain.SongHandle]*mockSong
	nextHandle domain.SongHandle
	mu         sync.RWMutex

	// Behavior configuration (for testing error scenarios)
	failInitialize bool
	failLoad       bool
	failPlay       bool
}

// mockSong represents a loaded song in the mock engine.
type mockSong struct {
	filePath string
	duration time.Duration
	position time.Duration
	volume   float64
	status   domain.PlaybackStatus
}

// NewEngine creates a new mock audio engine.
func NewEngine() *Engine {
	return &Engine{
		songs:      make(map[domain.SongHandle]*mockSong),
		nextHandle: 1,
	}
}

// SetFailInitialize configures the mock to fail initialization (for testing).
func (m *Engine) SetFailInitialize(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInitialize = fail
}

// SetFailLoad configures the mock to fail loading songs (for testing).
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail playback (for testing).
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// Initialize initializes the mock audio engine.
func (m *Engine) Initialize(sampleRate int, bufferSize time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInitialize {
		return domain.NewAudioEngineError("initialize", "", "mock initialization failed", nil)
	}

	if m.initialized {
		return domain.ErrAlreadyInitialized
	}

	m.initialized = true
	m.sampleRate = sampleRate
	m.bufferSize = bufferSize

	return nil
}

// Shutdown shuts down the mock audio engine.
func (m *Engine) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	m.initialized = false
	m.songs = make(map[domain.SongHandle]*mockSong)

	return nil
}

// IsInitialized returns true if the engine is initialized.
func (m *Engine) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Load loads an audio file and returns a handle.
func (m *Engine) Load(filePath string) (domain.SongHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.InvalidSongHandle, domain.ErrNotInitialized
	}

	if m.failLoad {
		return domain.InvalidSongHandle, domain.NewAudioEngineError("load", filePath, "mock load failed", nil)
	}

	if filePath == "" {
		return domain.InvalidSongHandle, domain.ErrInvalidFilePath
	}

	handle := m.nextHandle
	m.nextHandle++

	// Simulated 3-minute song.
	m.songs[handle] = &mockSong{
		filePath: filePath,
		duration: 3 * time.Minute,
		volume:   1.0,
		status:   domain.StatusStopped,
	}

	return handle, nil
}

// Unload unloads a previously loaded song.
func (m *Engine) Unload(handle domain.SongHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	if _, exists := m.songs[handle]; !exists {
		return domain.ErrInvalidSongHandle
	}

	delete(m.songs, handle)
	return nil
}

// Play starts or resumes playback.
func (m *Engine) Play(handle domain.SongHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	if m.failPlay {
		return domain.NewAudioEngineError("play", "", "mock play failed", nil)
	}

	song, exists := m.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	// If stopped, restart from the beginning
	if song.status == domain.StatusStopped {
		song.position = 0
	}

	song.status = domain.StatusPlaying
	return nil
}

// Pause pauses playback.
func (m *Engine) Pause(handle domain.SongHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if song.status == domain.StatusPlaying {
		song.status = domain.StatusPaused
	}

	return nil
}

// Stop stops playback and unloads the song.
func (m *Engine) Stop(handle domain.SongHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	song.status = domain.StatusStopped
	song.position = 0

	delete(m.songs, handle)

	return nil
}

// Status returns the playback status.
func (m *Engine) Status(handle domain.SongHandle) (domain.PlaybackStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return domain.StatusStopped, domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return domain.StatusStopped, domain.ErrInvalidSongHandle
	}

	return song.status, nil
}

// Position returns the current playback position.
func (m *Engine) Position(handle domain.SongHandle) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return 0, domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return 0, domain.ErrInvalidSongHandle
	}

	return song.position, nil
}

// Duration returns the total song duration.
func (m *Engine) Duration(handle domain.SongHandle) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return 0, domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return 0, domain.ErrInvalidSongHandle
	}

	return song.duration, nil
}

// Seek sets the playback position.
func (m *Engine) Seek(handle domain.SongHandle, position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if position < 0 || position > song.duration {
		return domain.ErrInvalidPosition
	}

	song.position = position
	return nil
}

// SetVolume sets the playback volume.
func (m *Engine) SetVolume(handle domain.SongHandle, volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	song.volume = volume
	return nil
}

// GetVolume returns the current volume.
func (m *Engine) GetVolume(handle domain.SongHandle) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return 0, domain.ErrNotInitialized
	}

	song, exists := m.songs[handle]
	if !exists {
		return 0, domain.ErrInvalidSongHandle
	}

	return song.volume, nil
}

// LoadedSongs returns the number of currently loaded songs (for testing).
func (m *Engine) LoadedSongs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.songs)
}

// SimulateProgress advances the playback position by delta (for testing).
// When the position reaches the duration the song stops, mirroring how a
// real engine reports a finished stream.
func (m *Engine) SimulateProgress(handle domain.SongHandle, delta time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	song, exists := m.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if song.status != domain.StatusPlaying {
		return domain.NewAudioEngineError("simulate", song.filePath, "song is not playing", nil)
	}

	song.position += delta
	if song.position >= song.duration {
		song.position = song.duration
		song.status = domain.StatusStopped
	}

	return nil
}

// Extractor produces metadata derived from the file name, for testing the
// scanner without real audio files.
type Extractor struct{}

// NewExtractor creates a mock metadata extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns a song populated from the file path alone.
func (e *Extractor) Extract(filePath string) (*domain.Song, error) {
	if filePath == "" {
		return nil, domain.ErrInvalidFilePath
	}

	base := filepath.Base(filePath)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	return &domain.Song{
		FilePath: filePath,
		Title:    title,
		Artist:   "Mock Artist",
		Album:    "Mock Album",
		Genre:    "Mock Genre",
		Duration: 3 * time.Minute,
		Year:     2024,
	}, nil
}

// Verify interface compliance
var (
	_ ports.AudioEngine       = (*Engine)(nil)
	_ ports.MetadataExtractor = (*Extractor)(nil)
)
