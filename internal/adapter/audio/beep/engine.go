// Package beep implements the AudioEngine interface on top of the gopxl/beep
// playback library with an oto-backed speaker.
package beep

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// resampleQuality trades CPU for resampling accuracy. 4 is beep's
// recommended middle ground.
const resampleQuality = 4

// loadedSong bundles the decoder resources for one loaded file.
type loadedSong struct {
	filePath string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format

	ctrl   *beep.Ctrl
	volume *effects.Volume

	// finished is set by the speaker callback when the stream drains
	// naturally. It is read without the engine lock because the callback
	// runs on the speaker goroutine.
	finished atomic.Bool

	status      domain.PlaybackStatus
	volumeLevel float64
}

// Engine plays audio through the process-global beep speaker. One song is
// audible at a time: starting playback on a handle silences any other.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger *slog.Logger

	mu          sync.RWMutex
	initialized bool
	sampleRate  beep.SampleRate

	songs      map[domain.SongHandle]*loadedSong
	nextHandle domain.SongHandle
	active     domain.SongHandle
}

// NewEngine creates a beep-backed audio engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:     logger,
		songs:      make(map[domain.SongHandle]*loadedSong),
		nextHandle: 1,
	}
}

// Initialize opens the speaker. The speaker is process-global in beep, so
// Initialize must be called exactly once for the process lifetime.
func (e *Engine) Initialize(sampleRate int, bufferSize time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return domain.ErrAlreadyInitialized
	}

	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(bufferSize)); err != nil {
		return domain.NewAudioEngineError("initialize", "", "speaker init failed", err)
	}

	e.sampleRate = rate
	e.initialized = true
	e.logger.Info("audio engine initialized",
		slog.Int("sample_rate", sampleRate),
		slog.Duration("buffer", bufferSize))

	return nil
}

// Shutdown silences the speaker and releases every loaded song. The speaker
// device itself stays open; beep does not support closing it.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	speaker.Clear()
	for handle, song := range e.songs {
		e.closeSong(song)
		delete(e.songs, handle)
	}
	e.active = domain.InvalidSongHandle
	e.initialized = false

	return nil
}

// IsInitialized reports whether the speaker is open.
func (e *Engine) IsInitialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// Load decodes the file header and prepares a seekable stream.
func (e *Engine) Load(filePath string) (domain.SongHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.InvalidSongHandle, domain.ErrNotInitialized
	}
	if filePath == "" {
		return domain.InvalidSongHandle, domain.ErrInvalidFilePath
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.InvalidSongHandle, domain.ErrFileNotFound
		}
		return domain.InvalidSongHandle, domain.NewAudioEngineError("load", filePath, "open file", err)
	}

	streamer, format, err := decode(filePath, file)
	if err != nil {
		_ = file.Close()
		return domain.InvalidSongHandle, err
	}

	handle := e.nextHandle
	e.nextHandle++

	e.songs[handle] = &loadedSong{
		filePath:    filePath,
		file:        file,
		streamer:    streamer,
		format:      format,
		status:      domain.StatusStopped,
		volumeLevel: 1.0,
	}

	e.logger.Debug("song loaded",
		slog.String("path", filePath),
		slog.Int("sample_rate", int(format.SampleRate)))

	return handle, nil
}

// decode picks the decoder by file extension.
func decode(filePath string, file *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".mp3":
		s, f, err := mp3.Decode(file)
		return s, f, wrapDecode(filePath, err)
	case ".flac":
		s, f, err := flac.Decode(file)
		return s, f, wrapDecode(filePath, err)
	case ".ogg", ".oga":
		s, f, err := vorbis.Decode(file)
		return s, f, wrapDecode(filePath, err)
	case ".wav":
		s, f, err := wav.Decode(file)
		return s, f, wrapDecode(filePath, err)
	default:
		return nil, beep.Format{}, domain.ErrUnsupportedFormat
	}
}

func wrapDecode(filePath string, err error) error {
	if err == nil {
		return nil
	}
	return domain.NewAudioEngineError("decode", filePath, "decode stream", err)
}

// Unload releases the decoder resources of a handle.
func (e *Engine) Unload(handle domain.SongHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if handle == e.active {
		speaker.Clear()
		e.active = domain.InvalidSongHandle
	}

	e.closeSong(song)
	delete(e.songs, handle)
	return nil
}

// Play starts the handle from its current stream position, or resumes it
// when paused. Any other playing handle is silenced first.
func (e *Engine) Play(handle domain.SongHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	// Resume is cheap: just unpause the ctrl.
	if handle == e.active && song.status == domain.StatusPaused && !song.finished.Load() {
		speaker.Lock()
		song.ctrl.Paused = false
		speaker.Unlock()
		song.status = domain.StatusPlaying
		return nil
	}

	speaker.Clear()
	if e.active != domain.InvalidSongHandle && e.active != handle {
		if prev, ok := e.songs[e.active]; ok {
			prev.status = domain.StatusStopped
		}
	}

	var stream beep.Streamer = song.streamer
	if song.format.SampleRate != e.sampleRate {
		stream = beep.Resample(resampleQuality, song.format.SampleRate, e.sampleRate, song.streamer)
	}

	song.ctrl = &beep.Ctrl{Streamer: stream}
	song.volume = &effects.Volume{
		Streamer: song.ctrl,
		Base:     2,
		Volume:   gainFor(song.volumeLevel),
		Silent:   song.volumeLevel == 0,
	}
	song.finished.Store(false)

	speaker.Play(beep.Seq(song.volume, beep.Callback(func() {
		song.finished.Store(true)
	})))

	e.active = handle
	song.status = domain.StatusPlaying
	return nil
}

// Pause pauses the active handle, preserving the position.
func (e *Engine) Pause(handle domain.SongHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if handle == e.active && song.status == domain.StatusPlaying {
		speaker.Lock()
		song.ctrl.Paused = true
		speaker.Unlock()
		song.status = domain.StatusPaused
	}

	return nil
}

// Stop silences the handle and releases its resources.
func (e *Engine) Stop(handle domain.SongHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if handle == e.active {
		speaker.Clear()
		e.active = domain.InvalidSongHandle
	}

	e.closeSong(song)
	delete(e.songs, handle)
	return nil
}

// Status returns the transport state. A stream that drained on its own
// reports stopped even though the handle is still loaded.
func (e *Engine) Status(handle domain.SongHandle) (domain.PlaybackStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.initialized {
		return domain.StatusStopped, domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return domain.StatusStopped, domain.ErrInvalidSongHandle
	}

	if song.finished.Load() {
		return domain.StatusStopped, nil
	}
	return song.status, nil
}

// Position returns the current stream position.
func (e *Engine) Position(handle domain.SongHandle) (time.Duration, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.initialized {
		return 0, domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return 0, domain.ErrInvalidSongHandle
	}

	speaker.Lock()
	position := song.streamer.Position()
	speaker.Unlock()

	return song.format.SampleRate.D(position), nil
}

// Duration returns the total stream length.
func (e *Engine) Duration(handle domain.SongHandle) (time.Duration, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.initialized {
		return 0, domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return 0, domain.ErrInvalidSongHandle
	}

	return song.format.SampleRate.D(song.streamer.Len()), nil
}

// Seek moves the stream position.
func (e *Engine) Seek(handle domain.SongHandle, position time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	sample := song.format.SampleRate.N(position)
	if position < 0 || sample > song.streamer.Len() {
		return domain.ErrInvalidPosition
	}

	speaker.Lock()
	err := song.streamer.Seek(sample)
	speaker.Unlock()
	if err != nil {
		return domain.NewAudioEngineError("seek", song.filePath, "seek stream", err)
	}

	return nil
}

// SetVolume sets the handle volume, 0.0 (silent) to 1.0 (full).
func (e *Engine) SetVolume(handle domain.SongHandle, volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return domain.ErrInvalidSongHandle
	}

	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	song.volumeLevel = volume
	if song.volume != nil {
		speaker.Lock()
		song.volume.Volume = gainFor(volume)
		song.volume.Silent = volume == 0
		speaker.Unlock()
	}

	return nil
}

// GetVolume returns the handle volume.
func (e *Engine) GetVolume(handle domain.SongHandle) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.initialized {
		return 0, domain.ErrNotInitialized
	}

	song, exists := e.songs[handle]
	if !exists {
		return 0, domain.ErrInvalidSongHandle
	}

	return song.volumeLevel, nil
}

// gainFor maps a linear 0..1 level onto the logarithmic scale used by
// effects.Volume with Base 2. Level 1.0 is unity gain.
func gainFor(level float64) float64 {
	if level <= 0 {
		return 0
	}
	return math.Log2(level)
}

func (e *Engine) closeSong(song *loadedSong) {
	if err := song.streamer.Close(); err != nil {
		e.logger.Warn("close stream", slog.String("path", song.filePath), slog.Any("error", err))
	}
	// The decoders close the underlying reader; this is a no-op for the
	// file handle itself and the double close is not worth a warning.
	_ = song.file.Close()
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
