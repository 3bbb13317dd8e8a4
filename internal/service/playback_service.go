// Package service provides the business logic of the Raaz music player.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// PlaybackService orchestrates the player transport. It owns the currently
// loaded song, volume, mute state and loop mode, and stamps the catalog's
// last-played timestamp when playback of a loaded song first starts.
// All operations are thread-safe via sync.RWMutex.
type PlaybackService struct {
	logger *slog.Logger
	engine ports.AudioEngine
	bus    ports.EventBus
	songs  ports.SongRepository

	currentSong    *domain.Song
	currentHandle  domain.SongHandle
	currentIndex   int // Index in the queue (managed by QueueService)
	volume         float64
	savedVolume    float64 // Volume before mute
	isMuted        bool
	isLooping      bool
	updateInterval time.Duration

	mu            sync.RWMutex
	stopUpdate    chan struct{}
	updateRunning bool
	updateWg      sync.WaitGroup
	manualStop    bool // True if the user explicitly stopped playback
	hasPlayed     bool // True once the loaded song has started playing
}

// NewPlaybackService creates a new playback service.
func NewPlaybackService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	bus ports.EventBus,
	songs ports.SongRepository,
) *PlaybackService {
	service := &PlaybackService{
		logger:         logger,
		engine:         engine,
		bus:            bus,
		songs:          songs,
		currentHandle:  domain.InvalidSongHandle,
		currentIndex:   -1,
		volume:         0.8,
		updateInterval: 333 * time.Millisecond, // 3 times per second
		stopUpdate:     make(chan struct{}),
	}

	logger.Debug("playback service initialized")

	service.startUpdateRoutine()

	return service
}

// LoadSong loads a song for playback.
// This stops any currently playing song and loads the new one.
func (s *PlaybackService) LoadSong(song domain.Song, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("loading song", slog.String("file_path", song.FilePath))

	if s.currentHandle != domain.InvalidSongHandle {
		if err := s.stopInternal(); err != nil {
			s.logger.Warn("failed to stop current song", slog.Any("error", err))
		}
	}

	handle, err := s.engine.Load(song.FilePath)
	if err != nil {
		s.bus.Publish(domain.NewSongErrorEvent(song, err))
		return err
	}

	// Set volume on the new song
	targetVolume := s.volume
	if s.isMuted {
		targetVolume = 0.0
	}
	if err := s.engine.SetVolume(handle, targetVolume); err != nil {
		if unloadErr := s.engine.Unload(handle); unloadErr != nil {
			s.logger.Warn("failed to unload song after volume error", slog.Any("error", unloadErr))
		}
		return err
	}

	duration, err := s.engine.Duration(handle)
	if err != nil {
		if unloadErr := s.engine.Unload(handle); unloadErr != nil {
			s.logger.Warn("failed to unload song after duration error", slog.Any("error", unloadErr))
		}
		return err
	}

	s.currentSong = &song
	s.currentHandle = handle
	s.currentIndex = index
	s.manualStop = false
	s.hasPlayed = false

	s.bus.Publish(domain.NewSongLoadedEvent(song, handle, duration, index))

	return nil
}

// Play starts or resumes playback of the current song. The first start of
// each loaded song stamps the catalog's last-played timestamp.
func (s *PlaybackService) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentHandle == domain.InvalidSongHandle {
		return domain.ErrInvalidSongHandle
	}

	status, err := s.engine.Status(s.currentHandle)
	if err != nil {
		return err
	}

	// Already playing
	if status == domain.StatusPlaying {
		return nil
	}

	firstStart := !s.hasPlayed
	s.manualStop = false
	s.hasPlayed = true
	if err := s.engine.Play(s.currentHandle); err != nil {
		s.hasPlayed = false
		return err
	}

	if s.currentSong != nil {
		s.bus.Publish(domain.NewSongStartedEvent(*s.currentSong))

		if firstStart {
			s.recordPlayed(*s.currentSong)
		}
	}

	return nil
}

// recordPlayed stamps the last-played timestamp. Failure to write the
// catalog never interrupts playback; it is logged and skipped.
// Caller must hold the lock.
func (s *PlaybackService) recordPlayed(song domain.Song) {
	if s.songs == nil {
		return
	}

	playedAt := time.Now().UTC()
	updated, err := s.songs.RecordPlayed(context.Background(), song.FilePath, playedAt)
	if err != nil {
		// An unscanned file played directly is not in the catalog yet.
		if !errors.Is(err, domain.ErrSongNotFound) {
			s.logger.Warn("failed to record play",
				slog.String("file_path", song.FilePath), slog.Any("error", err))
		}
		return
	}

	if s.currentSong != nil && s.currentSong.FilePath == updated.FilePath {
		s.currentSong.LastPlayedAt = updated.LastPlayedAt
	}
	s.bus.Publish(domain.NewSongPlayedEvent(*updated, playedAt))
}

// Pause pauses playback of the current song.
func (s *PlaybackService) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentHandle == domain.InvalidSongHandle {
		return domain.ErrInvalidSongHandle
	}

	position, err := s.engine.Position(s.currentHandle)
	if err != nil {
		position = 0
	}

	if err := s.engine.Pause(s.currentHandle); err != nil {
		return err
	}

	if s.currentSong != nil {
		s.bus.Publish(domain.NewSongPausedEvent(*s.currentSong, position))
	}

	return nil
}

// Stop stops playback and unloads the current song.
func (s *PlaybackService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopInternal()
}

// stopInternal stops playback without locking (caller must hold lock).
func (s *PlaybackService) stopInternal() error {
	if s.currentHandle == domain.InvalidSongHandle {
		return nil
	}

	s.manualStop = true
	s.hasPlayed = false

	if err := s.engine.Stop(s.currentHandle); err != nil {
		// Even if stop fails, clear our state
		s.currentHandle = domain.InvalidSongHandle
		s.currentSong = nil
		return err
	}

	if s.currentSong != nil {
		s.bus.Publish(domain.NewSongStoppedEvent(*s.currentSong))
	}

	s.currentHandle = domain.InvalidSongHandle
	s.currentSong = nil

	return nil
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (s *PlaybackService) SetVolume(volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	s.volume = volume

	// If muted, save the volume but don't apply it
	if s.isMuted {
		s.savedVolume = volume
		s.bus.Publish(domain.NewVolumeChangedEvent(volume))
		return nil
	}

	if s.currentHandle != domain.InvalidSongHandle {
		if err := s.engine.SetVolume(s.currentHandle, volume); err != nil {
			return err
		}
	}

	s.bus.Publish(domain.NewVolumeChangedEvent(volume))

	return nil
}

// GetVolume returns the current volume (0.0 to 1.0).
func (s *PlaybackService) GetVolume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.volume
}

// Mute mutes or unmutes playback.
func (s *PlaybackService) Mute(mute bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isMuted == mute {
		return nil
	}

	s.isMuted = mute

	if s.currentHandle != domain.InvalidSongHandle {
		targetVolume := s.volume
		if mute {
			s.savedVolume = s.volume
			targetVolume = 0.0
		}

		if err := s.engine.SetVolume(s.currentHandle, targetVolume); err != nil {
			return err
		}
	}

	s.bus.Publish(domain.NewMuteToggledEvent(s.isMuted))

	return nil
}

// IsMuted returns true if playback is muted.
func (s *PlaybackService) IsMuted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isMuted
}

// SetLoop enables or disables loop mode.
// When enabled, the current song restarts when it finishes.
func (s *PlaybackService) SetLoop(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isLooping == loop {
		return
	}

	s.isLooping = loop

	s.bus.Publish(domain.NewLoopToggledEvent(loop))
}

// IsLooping returns true if loop mode is enabled.
func (s *PlaybackService) IsLooping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isLooping
}

// Seek sets the playback position.
func (s *PlaybackService) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentHandle == domain.InvalidSongHandle {
		return domain.ErrInvalidSongHandle
	}

	if err := s.engine.Seek(s.currentHandle, position); err != nil {
		return err
	}

	if s.currentSong != nil {
		duration, err := s.engine.Duration(s.currentHandle)
		if err != nil {
			duration = 0
		}
		s.bus.Publish(domain.NewSongProgressEvent(position, duration))
	}

	return nil
}

// GetState returns a snapshot of the current playback state.
func (s *PlaybackService) GetState() domain.PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := domain.PlaybackState{
		QueueIndex: s.currentIndex,
		Volume:     s.volume,
		IsMuted:    s.isMuted,
		IsLooping:  s.isLooping,
	}

	if s.currentSong != nil {
		state.CurrentSong = s.currentSong
	}

	if s.currentHandle != domain.InvalidSongHandle {
		if status, err := s.engine.Status(s.currentHandle); err == nil {
			state.Status = status
		}

		if position, err := s.engine.Position(s.currentHandle); err == nil {
			state.Position = position
		}

		if duration, err := s.engine.Duration(s.currentHandle); err == nil {
			state.Duration = duration
		}
	} else {
		state.Status = domain.StatusStopped
	}

	return state
}

// Shutdown stops playback and cleans up resources.
func (s *PlaybackService) Shutdown() error {
	s.mu.Lock()

	if s.updateRunning {
		close(s.stopUpdate)
		s.updateRunning = false
	}

	// Release lock before waiting for goroutine to exit (to avoid deadlock)
	s.mu.Unlock()

	s.updateWg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopInternal()
}

// startUpdateRoutine starts a goroutine that periodically publishes progress events.
func (s *PlaybackService) startUpdateRoutine() {
	s.mu.Lock()
	if s.updateRunning {
		s.mu.Unlock()
		return
	}
	s.updateRunning = true
	s.updateWg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.updateWg.Done()
		ticker := time.NewTicker(s.updateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopUpdate:
				return

			case <-ticker.C:
				s.publishProgressUpdate()
			}
		}
	}()
}

// publishProgressUpdate publishes a progress event if a song is playing.
func (s *PlaybackService) publishProgressUpdate() {
	s.mu.RLock()

	if s.currentHandle == domain.InvalidSongHandle || s.currentSong == nil {
		s.mu.RUnlock()
		return
	}

	status, err := s.engine.Status(s.currentHandle)
	if err != nil {
		s.mu.RUnlock()
		return
	}

	position, err := s.engine.Position(s.currentHandle)
	if err != nil {
		s.mu.RUnlock()
		return
	}

	duration, err := s.engine.Duration(s.currentHandle)
	if err != nil {
		s.mu.RUnlock()
		return
	}

	// Determine if the song finished while holding the read lock
	shouldFinish := status == domain.StatusStopped && !s.manualStop && s.hasPlayed
	song := s.currentSong

	// Release read lock BEFORE any further processing
	s.mu.RUnlock()

	s.bus.Publish(domain.NewSongProgressEvent(position, duration))

	// Handle song finished with NO lock held
	if shouldFinish && song != nil {
		s.mu.Lock()
		s.handleSongFinishedWithLock() // Expects write lock, releases it before returning
	}
}

// handleSongFinishedWithLock is called when a song finishes playing
// naturally. Expects write lock held on entry. ALWAYS releases the lock
// before returning.
func (s *PlaybackService) handleSongFinishedWithLock() {
	if s.currentSong == nil {
		s.mu.Unlock()
		return
	}

	song := *s.currentSong
	shouldLoop := s.isLooping
	index := s.currentIndex

	s.hasPlayed = false

	s.bus.Publish(domain.NewSongCompletedEvent(song))

	if shouldLoop {
		if err := s.stopInternal(); err != nil {
			s.logger.Warn("failed to stop song in loop", slog.Any("error", err))
		}

		// Release lock before calling public methods
		s.mu.Unlock()

		if err := s.LoadSong(song, index); err != nil {
			s.logger.Warn("failed to reload song in loop", slog.Any("error", err))
			return
		}
		if err := s.Play(); err != nil {
			s.logger.Warn("failed to play song in loop", slog.Any("error", err))
		}
	} else {
		s.mu.Unlock()

		// Queue advancement happens in the queue service
		s.bus.Publish(domain.NewAutoNextEvent(song, index))
	}
}

// Verify that PlaybackService implements the expected interface patterns
var _ interface {
	LoadSong(domain.Song, int) error
	Play() error
	Pause() error
	Stop() error
	SetVolume(float64) error
	GetVolume() float64
	Mute(bool) error
	IsMuted() bool
	SetLoop(bool)
	IsLooping() bool
	Seek(time.Duration) error
	GetState() domain.PlaybackState
	Shutdown() error
} = (*PlaybackService)(nil)
