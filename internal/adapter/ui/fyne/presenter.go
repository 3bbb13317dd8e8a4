// Package fyne implements the UI layer of the player using the Fyne toolkit.
package fyne

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
	"github.com/naddyballia/Raaz-Music/internal/service"
)

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
type UIView interface {
	// Playback state updates
	SetPlayState(playing bool)
	SetMuteState(muted bool)
	SetLoopState(enabled bool)
	SetVolume(volume float64)

	// Song information updates
	SetSongInfo(title, artist, album string)
	SetAlbumArt(imageData []byte)
	ClearAlbumArt()

	// Progress updates
	SetCurrentTime(seconds float64)
	SetTotalTime(seconds float64)
	SetProgress(position, duration float64)

	// Library window management
	ShowLibraryWindow()
	RefreshLibrary()

	// Notifications
	ShowNotification(title, message string)
}

// Presenter coordinates between the services and the UI (MVP pattern).
//
// Responsibilities:
// - Subscribe to events from the event bus
// - Map domain events to UI updates
// - Translate UI commands to service method calls
//
// Thread-safety: All operations are thread-safe via sync.RWMutex.
type Presenter struct {
	logger *slog.Logger

	playbackService   *service.PlaybackService
	queueService      *service.QueueService
	libraryService    *service.LibraryService
	catalogService    *service.CatalogService
	preferenceService *service.PreferenceService

	// EventBus is exported for the library window's subscriptions.
	EventBus ports.EventBus

	view UIView

	// scanPaths are the configured library roots for rescans.
	scanPaths []string

	currentSong      *domain.Song
	isPlaying        bool
	progressTicker   *time.Ticker
	stopProgressChan chan bool

	mu           sync.RWMutex
	shutdownOnce sync.Once
}

// NewPresenter creates a new presenter and wires it to the view.
func NewPresenter(
	logger *slog.Logger,
	playbackService *service.PlaybackService,
	queueService *service.QueueService,
	libraryService *service.LibraryService,
	catalogService *service.CatalogService,
	preferenceService *service.PreferenceService,
	eventBus ports.EventBus,
	view UIView,
	scanPaths []string,
) *Presenter {
	p := &Presenter{
		logger:            logger,
		playbackService:   playbackService,
		queueService:      queueService,
		libraryService:    libraryService,
		catalogService:    catalogService,
		preferenceService: preferenceService,
		EventBus:          eventBus,
		view:              view,
		scanPaths:         scanPaths,
		stopProgressChan:  make(chan bool, 1),
	}

	p.subscribeToEvents()
	p.syncInitialState()
	p.startProgressUpdates()

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		// Playback events
		domain.EventSongLoaded:    p.onSongLoaded,
		domain.EventSongStarted:   p.onSongStarted,
		domain.EventSongPaused:    p.onSongPaused,
		domain.EventSongStopped:   p.onSongStopped,
		domain.EventSongCompleted: p.onSongCompleted,

		// Volume and mode events
		domain.EventVolumeChanged: p.onVolumeChanged,
		domain.EventMuteToggled:   p.onMuteToggled,
		domain.EventLoopToggled:   p.onLoopToggled,

		// Catalog events
		domain.EventFavoriteToggled: p.onCatalogChanged,
		domain.EventCatalogUpdated:  p.onCatalogChanged,

		// Scan events
		domain.EventScanStarted:   p.onScanStarted,
		domain.EventScanCompleted: p.onScanCompleted,
		domain.EventScanCancelled: p.onScanCancelled,
	}

	for eventType, handler := range subscriptions {
		p.EventBus.Subscribe(eventType, handler)
	}
}

// syncInitialState synchronizes the UI with the current service state
// (volume, loop mode, loaded song).
func (p *Presenter) syncInitialState() {
	state := p.playbackService.GetState()

	p.view.SetVolume(state.Volume * 100.0) // Convert from 0.0-1.0 to 0-100
	p.view.SetLoopState(state.IsLooping)
	p.view.SetMuteState(state.IsMuted)

	if state.CurrentSong != nil {
		p.view.SetSongInfo(
			state.CurrentSong.DisplayTitle(),
			state.CurrentSong.Artist,
			state.CurrentSong.Album,
		)

		if state.Duration > 0 {
			p.view.SetTotalTime(state.Duration.Seconds())
		}

		if len(state.CurrentSong.AlbumArt) > 0 {
			p.view.SetAlbumArt(state.CurrentSong.AlbumArt)
		} else {
			p.view.ClearAlbumArt()
		}
	}

	p.view.SetPlayState(state.Status == domain.StatusPlaying)

	if state.Duration > 0 {
		p.view.SetProgress(state.Position.Seconds(), state.Duration.Seconds())
		p.view.SetCurrentTime(state.Position.Seconds())
	}
}

// Event handlers

func (p *Presenter) onSongLoaded(event domain.Event) {
	e, ok := event.(domain.SongLoadedEvent)
	if !ok {
		return
	}

	p.mu.Lock()
	p.currentSong = &e.Song
	p.mu.Unlock()

	p.view.SetSongInfo(e.Song.DisplayTitle(), e.Song.Artist, e.Song.Album)

	if e.Duration > 0 {
		p.view.SetTotalTime(e.Duration.Seconds())
	}

	if len(e.Song.AlbumArt) > 0 {
		p.view.SetAlbumArt(e.Song.AlbumArt)
	} else {
		p.view.ClearAlbumArt()
	}
}

func (p *Presenter) onSongStarted(domain.Event) {
	p.mu.Lock()
	p.isPlaying = true
	p.mu.Unlock()

	p.view.SetPlayState(true)
}

func (p *Presenter) onSongPaused(domain.Event) {
	p.mu.Lock()
	p.isPlaying = false
	p.mu.Unlock()

	p.view.SetPlayState(false)
}

func (p *Presenter) onSongStopped(domain.Event) {
	p.mu.Lock()
	p.isPlaying = false
	p.mu.Unlock()

	p.view.SetPlayState(false)
	p.view.SetCurrentTime(0)
	p.view.SetProgress(0, 1)
}

func (p *Presenter) onSongCompleted(domain.Event) {
	// The queue service advances automatically; just reflect the state.
	p.mu.Lock()
	p.isPlaying = false
	p.mu.Unlock()

	p.view.SetPlayState(false)
}

func (p *Presenter) onVolumeChanged(event domain.Event) {
	e, ok := event.(domain.VolumeChangedEvent)
	if !ok {
		return
	}

	p.view.SetVolume(e.Volume * 100.0)
}

func (p *Presenter) onMuteToggled(event domain.Event) {
	e, ok := event.(domain.MuteToggledEvent)
	if !ok {
		return
	}

	p.view.SetMuteState(e.Muted)
}

func (p *Presenter) onLoopToggled(event domain.Event) {
	e, ok := event.(domain.LoopToggledEvent)
	if !ok {
		return
	}

	p.view.SetLoopState(e.Enabled)
}

func (p *Presenter) onCatalogChanged(domain.Event) {
	p.view.RefreshLibrary()
}

func (p *Presenter) onScanStarted(event domain.Event) {
	e, ok := event.(domain.ScanStartedEvent)
	if !ok {
		return
	}

	p.view.ShowNotification("Scan Started", fmt.Sprintf("Scanning %d folders", len(e.Paths)))
}

func (p *Presenter) onScanCompleted(event domain.Event) {
	e, ok := event.(domain.ScanCompletedEvent)
	if !ok {
		return
	}

	message := fmt.Sprintf("Catalogued %d songs", e.Report.SongsUpserted)
	if e.Report.Skipped > 0 {
		message = fmt.Sprintf("%s (%d skipped)", message, e.Report.Skipped)
	}
	p.view.ShowNotification("Scan Complete", message)
}

func (p *Presenter) onScanCancelled(domain.Event) {
	p.view.ShowNotification("Scan Cancelled", "Library scan was cancelled")
}

func (p *Presenter) startProgressUpdates() {
	p.progressTicker = time.NewTicker(250 * time.Millisecond)

	go func() {
		for {
			select {
			case <-p.progressTicker.C:
				p.updateProgress()
			case <-p.stopProgressChan:
				return
			}
		}
	}()
}

func (p *Presenter) updateProgress() {
	p.mu.RLock()
	currentSong := p.currentSong
	p.mu.RUnlock()

	if currentSong == nil {
		return
	}

	state := p.playbackService.GetState()
	if state.Duration <= 0 {
		return
	}

	p.view.SetCurrentTime(state.Position.Seconds())
	p.view.SetProgress(state.Position.Seconds(), state.Duration.Seconds())
}

// UI Command handlers (called by UI)

// OnPlayClicked handles the play/pause button click.
func (p *Presenter) OnPlayClicked() {
	state := p.playbackService.GetState()

	var err error
	if state.Status == domain.StatusPlaying {
		err = p.playbackService.Pause()
	} else {
		err = p.playbackService.Play()
	}

	if err != nil {
		p.logger.Error("play/pause failed", slog.Any("error", err))
		p.view.ShowNotification("Playback Error",
			fmt.Sprintf("Failed to start playback: %v", err))
	}
}

// OnStopClicked handles the stop button click.
func (p *Presenter) OnStopClicked() {
	if err := p.playbackService.Stop(); err != nil {
		p.logger.Error("stop failed", slog.Any("error", err))
		p.view.ShowNotification("Playback Error",
			fmt.Sprintf("Failed to stop playback: %v", err))
	}
}

// OnNextClicked handles the next button click.
func (p *Presenter) OnNextClicked() {
	if err := p.queueService.PlayNext(); err != nil {
		if errors.Is(err, domain.ErrEndOfQueue) || errors.Is(err, domain.ErrQueueEmpty) {
			return
		}
		p.logger.Error("next song failed", slog.Any("error", err))
		p.view.ShowNotification("Queue Error",
			fmt.Sprintf("Failed to play next song: %v", err))
	}
}

// OnPreviousClicked handles the previous button click.
func (p *Presenter) OnPreviousClicked() {
	if err := p.queueService.PlayPrevious(); err != nil {
		if errors.Is(err, domain.ErrStartOfQueue) || errors.Is(err, domain.ErrQueueEmpty) {
			return
		}
		p.logger.Error("previous song failed", slog.Any("error", err))
		p.view.ShowNotification("Queue Error",
			fmt.Sprintf("Failed to play previous song: %v", err))
	}
}

// OnVolumeChanged handles volume slider changes (0-100 range).
func (p *Presenter) OnVolumeChanged(volume float64) {
	normalized := volume / 100.0
	if err := p.playbackService.SetVolume(normalized); err != nil {
		p.logger.Error("volume change failed", slog.Any("error", err))
		return
	}
	if err := p.preferenceService.SetVolume(normalized); err != nil {
		p.logger.Warn("failed to save volume preference", slog.Any("error", err))
	}
}

// OnMuteClicked handles the mute button click.
func (p *Presenter) OnMuteClicked() {
	state := p.playbackService.GetState()
	if err := p.playbackService.Mute(!state.IsMuted); err != nil {
		p.logger.Error("mute toggle failed", slog.Any("error", err))
	}
}

// OnLoopClicked handles the loop button click.
func (p *Presenter) OnLoopClicked() {
	state := p.playbackService.GetState()
	newLoopState := !state.IsLooping
	p.playbackService.SetLoop(newLoopState)
	if err := p.preferenceService.SetLoopMode(newLoopState); err != nil {
		p.logger.Warn("failed to save loop preference", slog.Any("error", err))
	}
}

// OnSeekRequested handles seek requests from the progress slider (seconds).
func (p *Presenter) OnSeekRequested(position float64) {
	positionDuration := time.Duration(position * float64(time.Second))
	if err := p.playbackService.Seek(positionDuration); err != nil {
		p.logger.Error("seek failed", slog.Any("error", err))
	}
}

// OnFileOpened handles file open requests: the file is catalogued, queued
// and played.
func (p *Presenter) OnFileOpened(filePath string) error {
	song, err := p.libraryService.ExtractMetadata(filePath)
	if err != nil {
		return err
	}

	return p.queueService.Add(*song, true)
}

// OnFolderOpened scans a folder into the catalog and queues its songs.
func (p *Presenter) OnFolderOpened(folderPath string) error {
	go func() {
		if _, err := p.libraryService.Scan(context.Background(), []string{folderPath}); err != nil {
			p.logger.Error("folder scan failed", slog.Any("error", err))
			p.view.ShowNotification("Scan Error",
				fmt.Sprintf("Failed to scan folder: %v", err))
		}
	}()

	if err := p.preferenceService.SetLastFolder(folderPath); err != nil {
		p.logger.Warn("failed to save last folder", slog.Any("error", err))
	}

	return nil
}

// OnRescanClicked rescans the configured library roots in the background.
func (p *Presenter) OnRescanClicked() {
	if len(p.scanPaths) == 0 {
		p.view.ShowNotification("Scan Error", "No library folders configured")
		return
	}

	go func() {
		if _, err := p.libraryService.Scan(context.Background(), p.scanPaths); err != nil {
			if errors.Is(err, domain.ErrScanInProgress) {
				p.view.ShowNotification("Scan", "A scan is already running")
				return
			}
			p.logger.Error("library rescan failed", slog.Any("error", err))
			p.view.ShowNotification("Scan Error",
				fmt.Sprintf("Failed to rescan library: %v", err))
		}
	}()
}

// OnSongActivated plays a song from a library view, queuing it if needed.
func (p *Presenter) OnSongActivated(song domain.Song) {
	// Prefer the queued copy when the song is already in the queue.
	if _, err := p.queueService.PlayByPath(song.FilePath); err == nil {
		return
	}

	if err := p.queueService.Add(song, true); err != nil {
		p.logger.Error("failed to play song", slog.Any("error", err))
		p.view.ShowNotification("Playback Error",
			fmt.Sprintf("Failed to play %s: %v", song.DisplayTitle(), err))
	}
}

// OnFavoriteToggled flips the favorite flag of a song.
func (p *Presenter) OnFavoriteToggled(song domain.Song) {
	if _, err := p.catalogService.ToggleFavorite(context.Background(), song.FilePath); err != nil {
		p.logger.Error("favorite toggle failed", slog.Any("error", err))
		p.view.ShowNotification("Catalog Error",
			fmt.Sprintf("Failed to update favorite: %v", err))
	}
}

// OnLibraryMenuClicked handles the "View Library" menu action.
func (p *Presenter) OnLibraryMenuClicked() {
	p.view.ShowLibraryWindow()
}

// AllSongs returns the full catalog for library views.
func (p *Presenter) AllSongs() []domain.Song {
	return p.catalogService.AllSongs(context.Background())
}

// FavoriteSongs returns the favorites view.
func (p *Presenter) FavoriteSongs() []domain.Song {
	return p.catalogService.FavoriteSongs(context.Background())
}

// RecentlyPlayed returns the recently-played view.
func (p *Presenter) RecentlyPlayed() []domain.Song {
	return p.catalogService.RecentlyPlayed(context.Background())
}

// LastFolder returns the most recently opened folder for dialog defaults.
func (p *Presenter) LastFolder() string {
	return p.preferenceService.GetLastFolder()
}

// Logger returns the presenter's logger for UI helpers.
func (p *Presenter) Logger() *slog.Logger {
	return p.logger
}

// Shutdown cleans up resources. Safe to call multiple times.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		if p.progressTicker != nil {
			p.progressTicker.Stop()
		}

		close(p.stopProgressChan)
	})
}
