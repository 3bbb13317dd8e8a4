package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// QueueService manages the playback queue: adding songs, navigation
// (next/previous), and persistence across restarts.
// All operations are thread-safe via sync.RWMutex.
type QueueService struct {
	logger   *slog.Logger
	playback *PlaybackService
	songs    ports.SongRepository
	history  ports.HistoryRepository
	bus      ports.EventBus

	queue        []domain.Song
	currentIndex int

	mu sync.RWMutex

	autoNextSub domain.SubscriptionID
}

// NewQueueService creates a new queue service.
func NewQueueService(
	logger *slog.Logger,
	playback *PlaybackService,
	songs ports.SongRepository,
	history ports.HistoryRepository,
	bus ports.EventBus,
) *QueueService {
	service := &QueueService{
		logger:       logger,
		playback:     playback,
		songs:        songs,
		history:      history,
		bus:          bus,
		queue:        make([]domain.Song, 0),
		currentIndex: -1,
	}

	// Advance the queue when the playback service reports a finished song
	service.autoNextSub = bus.Subscribe(domain.EventAutoNext, service.handleAutoNext)

	return service
}

// Add appends a song to the end of the queue.
func (s *QueueService) Add(song domain.Song, playImmediately bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, song)
	newIndex := len(s.queue) - 1

	s.bus.Publish(domain.NewSongQueuedEvent(song, newIndex))
	s.bus.Publish(domain.NewQueueChangedEvent(s.snapshot(), s.currentIndex))

	if playImmediately {
		s.currentIndex = newIndex
		if err := s.playback.LoadSong(song, newIndex); err != nil {
			return err
		}
		return s.playback.Play()
	}

	return nil
}

// AddAll appends multiple songs to the queue.
func (s *QueueService) AddAll(songs []domain.Song, playFirst bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(songs) == 0 {
		return nil
	}

	startIndex := len(s.queue)
	s.queue = append(s.queue, songs...)

	for i, song := range songs {
		s.bus.Publish(domain.NewSongQueuedEvent(song, startIndex+i))
	}
	s.bus.Publish(domain.NewQueueChangedEvent(s.snapshot(), s.currentIndex))

	if playFirst {
		s.currentIndex = startIndex
		if err := s.playback.LoadSong(songs[0], startIndex); err != nil {
			return err
		}
		return s.playback.Play()
	}

	return nil
}

// Remove removes the song at the specified index.
func (s *QueueService) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.queue) {
		return domain.ErrInvalidIndex
	}

	s.queue = append(s.queue[:index], s.queue[index+1:]...)

	if s.currentIndex == index {
		// Removed the playing song
		if err := s.playback.Stop(); err != nil {
			s.logger.Warn("failed to stop removed song", slog.Any("error", err))
		}
		s.currentIndex = -1
	} else if s.currentIndex > index {
		s.currentIndex--
	}

	s.bus.Publish(domain.NewQueueChangedEvent(s.snapshot(), s.currentIndex))

	return nil
}

// Clear removes all songs from the queue.
func (s *QueueService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playback.Stop(); err != nil {
		s.logger.Warn("failed to stop playback on clear", slog.Any("error", err))
	}

	s.queue = make([]domain.Song, 0)
	s.currentIndex = -1

	s.bus.Publish(domain.NewQueueChangedEvent(s.snapshot(), s.currentIndex))

	return nil
}

// PlayAt plays the song at the specified index.
func (s *QueueService) PlayAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.queue) {
		return domain.ErrInvalidIndex
	}

	s.currentIndex = index
	song := s.queue[index]

	if err := s.playback.LoadSong(song, index); err != nil {
		return err
	}

	return s.playback.Play()
}

// PlayByPath plays a queued song by its file path.
// Returns the index of the song, or -1 if not queued.
func (s *QueueService) PlayByPath(filePath string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, song := range s.queue {
		if song.FilePath == filePath {
			index = i
			break
		}
	}

	if index == -1 {
		return -1, domain.ErrSongNotFound
	}

	s.currentIndex = index
	song := s.queue[index]

	if err := s.playback.LoadSong(song, index); err != nil {
		return index, err
	}

	if err := s.playback.Play(); err != nil {
		return index, err
	}

	return index, nil
}

// PlayNext plays the next song in the queue.
func (s *QueueService) PlayNext() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return domain.ErrQueueEmpty
	}

	if s.currentIndex >= len(s.queue)-1 {
		return domain.ErrEndOfQueue
	}

	s.currentIndex++
	song := s.queue[s.currentIndex]

	if err := s.playback.LoadSong(song, s.currentIndex); err != nil {
		return err
	}

	return s.playback.Play()
}

// PlayPrevious plays the previous song in the queue.
func (s *QueueService) PlayPrevious() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return domain.ErrQueueEmpty
	}

	if s.currentIndex <= 0 {
		return domain.ErrStartOfQueue
	}

	s.currentIndex--
	song := s.queue[s.currentIndex]

	if err := s.playback.LoadSong(song, s.currentIndex); err != nil {
		return err
	}

	return s.playback.Play()
}

// Queue returns a copy of the current queue.
func (s *QueueService) Queue() []domain.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

// snapshot returns a defensive copy. Caller must hold the lock.
func (s *QueueService) snapshot() []domain.Song {
	queue := make([]domain.Song, len(s.queue))
	copy(queue, s.queue)
	return queue
}

// CurrentIndex returns the index of the currently playing song.
func (s *QueueService) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.currentIndex
}

// Length returns the number of queued songs.
func (s *QueueService) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.queue)
}

// Move moves a song from one index to another.
func (s *QueueService) Move(fromIndex, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromIndex < 0 || fromIndex >= len(s.queue) {
		return domain.ErrInvalidIndex
	}
	if toIndex < 0 || toIndex >= len(s.queue) {
		return domain.ErrInvalidIndex
	}
	if fromIndex == toIndex {
		return nil
	}

	song := s.queue[fromIndex]
	s.queue = append(s.queue[:fromIndex], s.queue[fromIndex+1:]...)
	s.queue = append(s.queue[:toIndex], append([]domain.Song{song}, s.queue[toIndex:]...)...)

	if s.currentIndex == fromIndex {
		s.currentIndex = toIndex
	} else if fromIndex < s.currentIndex && toIndex >= s.currentIndex {
		s.currentIndex--
	} else if fromIndex > s.currentIndex && toIndex <= s.currentIndex {
		s.currentIndex++
	}

	s.bus.Publish(domain.NewQueueChangedEvent(s.snapshot(), s.currentIndex))

	return nil
}

// SaveQueue persists the queue paths and position.
func (s *QueueService) SaveQueue() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saveInternal()
}

// saveInternal persists without locking (caller must hold lock).
func (s *QueueService) saveInternal() error {
	paths := make([]string, len(s.queue))
	for i, song := range s.queue {
		paths[i] = song.FilePath
	}

	if err := s.history.SaveQueue(paths); err != nil {
		return err
	}

	return s.history.SaveCurrentIndex(s.currentIndex)
}

// LoadQueue restores the persisted queue. Paths are resolved through the
// catalog; files that were never scanned come back with file-name metadata
// only. Paths whose records vanished are dropped silently.
func (s *QueueService) LoadQueue(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := s.history.LoadQueue()
	if err != nil {
		return err
	}

	index, err := s.history.LoadCurrentIndex()
	if err != nil {
		index = -1
	}

	queue := make([]domain.Song, 0, len(paths))
	for _, path := range paths {
		song, lookupErr := s.songs.GetByPath(ctx, path)
		if lookupErr != nil {
			if errors.Is(lookupErr, domain.ErrSongNotFound) {
				queue = append(queue, domain.Song{FilePath: path})
				continue
			}
			return lookupErr
		}
		queue = append(queue, *song)
	}

	if index >= len(queue) {
		index = -1
	}

	s.queue = queue
	s.currentIndex = index

	s.bus.Publish(domain.NewQueueChangedEvent(s.snapshot(), s.currentIndex))

	return nil
}

// handleAutoNext advances to the next song when the current one finishes.
func (s *QueueService) handleAutoNext(event domain.Event) {
	autoNextEvent, ok := event.(domain.AutoNextEvent)
	if !ok {
		return
	}

	s.mu.Lock()

	// Verify the event is for the current song
	if autoNextEvent.Index != s.currentIndex {
		s.mu.Unlock()
		return
	}

	if s.currentIndex >= len(s.queue)-1 {
		// End of queue, stop playback to clean up state
		s.mu.Unlock()
		if err := s.playback.Stop(); err != nil {
			s.logger.Warn("failed to stop at end of queue", slog.Any("error", err))
		}
		return
	}

	s.currentIndex++
	song := s.queue[s.currentIndex]
	index := s.currentIndex

	// Unlock before calling playback to avoid deadlock
	s.mu.Unlock()

	if err := s.playback.LoadSong(song, index); err != nil {
		s.logger.Warn("auto-next load failed", slog.String("file_path", song.FilePath), slog.Any("error", err))
		return
	}
	if err := s.playback.Play(); err != nil {
		s.logger.Warn("auto-next play failed", slog.Any("error", err))
	}
}

// Shutdown saves the queue and releases the event subscription.
func (s *QueueService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bus.Unsubscribe(s.autoNextSub)

	return s.saveInternal()
}

// Verify that QueueService implements the expected interface patterns
var _ interface {
	Add(domain.Song, bool) error
	AddAll([]domain.Song, bool) error
	Remove(int) error
	Clear() error
	PlayAt(int) error
	PlayByPath(string) (int, error)
	PlayNext() error
	PlayPrevious() error
	Queue() []domain.Song
	CurrentIndex() int
	Length() int
	Move(int, int) error
	SaveQueue() error
	LoadQueue(context.Context) error
	Shutdown() error
} = (*QueueService)(nil)
