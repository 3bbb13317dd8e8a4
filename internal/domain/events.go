// Package domain defines the events services publish on the event bus.
package domain

import (
	"time"
)

// Event is the interface all published events implement.
type Event interface {
	// Type returns the event type identifier.
	Type() EventType

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// EventType identifies a kind of event.
type EventType string

// All event types published in the system.
const (
	// Transport events
	EventSongLoaded    EventType = "song.loaded"
	EventSongStarted   EventType = "song.started"
	EventSongPaused    EventType = "song.paused"
	EventSongStopped   EventType = "song.stopped"
	EventSongCompleted EventType = "song.completed"
	EventSongProgress  EventType = "song.progress"
	EventSongError     EventType = "song.error"
	EventAutoNext      EventType = "song.auto_next"

	// Volume and mode events
	EventVolumeChanged EventType = "volume.changed"
	EventMuteToggled   EventType = "mute.toggled"
	EventLoopToggled   EventType = "loop.toggled"

	// Queue events
	EventQueueChanged EventType = "queue.changed"
	EventSongQueued   EventType = "queue.song_added"

	// Catalog events
	EventFavoriteToggled EventType = "catalog.favorite_toggled"
	EventSongPlayed      EventType = "catalog.song_played"
	EventCatalogUpdated  EventType = "catalog.updated"

	// Scan events
	EventScanStarted   EventType = "scan.started"
	EventScanProgress  EventType = "scan.progress"
	EventScanCompleted EventType = "scan.completed"
	EventScanCancelled EventType = "scan.cancelled"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent carries the common timestamp. Concrete events embed it.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SongLoadedEvent is published when a song is loaded into the engine.
type SongLoadedEvent struct {
	baseEvent
	Song     Song
	Handle   SongHandle
	Duration time.Duration
	Index    int // queue index
}

// Type returns the event type.
func (e SongLoadedEvent) Type() EventType { return EventSongLoaded }

// NewSongLoadedEvent creates a new SongLoadedEvent.
func NewSongLoadedEvent(song Song, handle SongHandle, duration time.Duration, index int) SongLoadedEvent {
	return SongLoadedEvent{baseEvent: newBaseEvent(), Song: song, Handle: handle, Duration: duration, Index: index}
}

// SongStartedEvent is published when playback starts or resumes.
type SongStartedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e SongStartedEvent) Type() EventType { return EventSongStarted }

// NewSongStartedEvent creates a new SongStartedEvent.
func NewSongStartedEvent(song Song) SongStartedEvent {
	return SongStartedEvent{baseEvent: newBaseEvent(), Song: song}
}

// SongPausedEvent is published when playback pauses.
type SongPausedEvent struct {
	baseEvent
	Song     Song
	Position time.Duration
}

// Type returns the event type.
func (e SongPausedEvent) Type() EventType { return EventSongPaused }

// NewSongPausedEvent creates a new SongPausedEvent.
func NewSongPausedEvent(song Song, position time.Duration) SongPausedEvent {
	return SongPausedEvent{baseEvent: newBaseEvent(), Song: song, Position: position}
}

// SongStoppedEvent is published when playback stops.
type SongStoppedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e SongStoppedEvent) Type() EventType { return EventSongStopped }

// NewSongStoppedEvent creates a new SongStoppedEvent.
func NewSongStoppedEvent(song Song) SongStoppedEvent {
	return SongStoppedEvent{baseEvent: newBaseEvent(), Song: song}
}

// SongCompletedEvent is published when a song finishes naturally.
type SongCompletedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e SongCompletedEvent) Type() EventType { return EventSongCompleted }

// NewSongCompletedEvent creates a new SongCompletedEvent.
func NewSongCompletedEvent(song Song) SongCompletedEvent {
	return SongCompletedEvent{baseEvent: newBaseEvent(), Song: song}
}

// SongProgressEvent is published periodically during playback.
type SongProgressEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e SongProgressEvent) Type() EventType { return EventSongProgress }

// NewSongProgressEvent creates a new SongProgressEvent.
func NewSongProgressEvent(position, duration time.Duration) SongProgressEvent {
	return SongProgressEvent{baseEvent: newBaseEvent(), Position: position, Duration: duration}
}

// SongErrorEvent is published when an engine operation on a song fails.
type SongErrorEvent struct {
	baseEvent
	Song Song
	Err  error
}

// Type returns the event type.
func (e SongErrorEvent) Type() EventType { return EventSongError }

// NewSongErrorEvent creates a new SongErrorEvent.
func NewSongErrorEvent(song Song, err error) SongErrorEvent {
	return SongErrorEvent{baseEvent: newBaseEvent(), Song: song, Err: err}
}

// AutoNextEvent is published when a song completes and the queue should
// advance. The playback service signals the queue service with it.
type AutoNextEvent struct {
	baseEvent
	Song  Song
	Index int
}

// Type returns the event type.
func (e AutoNextEvent) Type() EventType { return EventAutoNext }

// NewAutoNextEvent creates a new AutoNextEvent.
func NewAutoNextEvent(song Song, index int) AutoNextEvent {
	return AutoNextEvent{baseEvent: newBaseEvent(), Song: song, Index: index}
}

// VolumeChangedEvent is published when the volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Volume float64 // 0.0 to 1.0
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType { return EventVolumeChanged }

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(volume float64) VolumeChangedEvent {
	return VolumeChangedEvent{baseEvent: newBaseEvent(), Volume: volume}
}

// MuteToggledEvent is published when mute is toggled.
type MuteToggledEvent struct {
	baseEvent
	Muted bool
}

// Type returns the event type.
func (e MuteToggledEvent) Type() EventType { return EventMuteToggled }

// NewMuteToggledEvent creates a new MuteToggledEvent.
func NewMuteToggledEvent(muted bool) MuteToggledEvent {
	return MuteToggledEvent{baseEvent: newBaseEvent(), Muted: muted}
}

// LoopToggledEvent is published when loop mode is toggled.
type LoopToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e LoopToggledEvent) Type() EventType { return EventLoopToggled }

// NewLoopToggledEvent creates a new LoopToggledEvent.
func NewLoopToggledEvent(enabled bool) LoopToggledEvent {
	return LoopToggledEvent{baseEvent: newBaseEvent(), Enabled: enabled}
}

// QueueChangedEvent is published when the queue contents or position change.
type QueueChangedEvent struct {
	baseEvent
	Queue []Song
	Index int // current song index, -1 when none
}

// Type returns the event type.
func (e QueueChangedEvent) Type() EventType { return EventQueueChanged }

// NewQueueChangedEvent creates a new QueueChangedEvent.
func NewQueueChangedEvent(queue []Song, index int) QueueChangedEvent {
	return QueueChangedEvent{baseEvent: newBaseEvent(), Queue: queue, Index: index}
}

// SongQueuedEvent is published when a song is appended to the queue.
type SongQueuedEvent struct {
	baseEvent
	Song  Song
	Index int
}

// Type returns the event type.
func (e SongQueuedEvent) Type() EventType { return EventSongQueued }

// NewSongQueuedEvent creates a new SongQueuedEvent.
func NewSongQueuedEvent(song Song, index int) SongQueuedEvent {
	return SongQueuedEvent{baseEvent: newBaseEvent(), Song: song, Index: index}
}

// FavoriteToggledEvent is published when a song's favorite flag flips.
type FavoriteToggledEvent struct {
	baseEvent
	Song     Song
	Favorite bool
}

// Type returns the event type.
func (e FavoriteToggledEvent) Type() EventType { return EventFavoriteToggled }

// NewFavoriteToggledEvent creates a new FavoriteToggledEvent.
func NewFavoriteToggledEvent(song Song, favorite bool) FavoriteToggledEvent {
	return FavoriteToggledEvent{baseEvent: newBaseEvent(), Song: song, Favorite: favorite}
}

// SongPlayedEvent is published when a song's last-played timestamp is
// recorded.
type SongPlayedEvent struct {
	baseEvent
	Song     Song
	PlayedAt time.Time
}

// Type returns the event type.
func (e SongPlayedEvent) Type() EventType { return EventSongPlayed }

// NewSongPlayedEvent creates a new SongPlayedEvent.
func NewSongPlayedEvent(song Song, playedAt time.Time) SongPlayedEvent {
	return SongPlayedEvent{baseEvent: newBaseEvent(), Song: song, PlayedAt: playedAt}
}

// CatalogUpdatedEvent is published after catalog writes that views should
// reflect (scan upserts, favorite toggles, play records).
type CatalogUpdatedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e CatalogUpdatedEvent) Type() EventType { return EventCatalogUpdated }

// NewCatalogUpdatedEvent creates a new CatalogUpdatedEvent.
func NewCatalogUpdatedEvent() CatalogUpdatedEvent {
	return CatalogUpdatedEvent{baseEvent: newBaseEvent()}
}

// ScanStartedEvent is published when a library scan starts.
type ScanStartedEvent struct {
	baseEvent
	Paths []string
}

// Type returns the event type.
func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// NewScanStartedEvent creates a new ScanStartedEvent.
func NewScanStartedEvent(paths []string) ScanStartedEvent {
	return ScanStartedEvent{baseEvent: newBaseEvent(), Paths: paths}
}

// ScanProgressEvent is published for each processed file during a scan.
type ScanProgressEvent struct {
	baseEvent
	Progress ScanProgress
}

// Type returns the event type.
func (e ScanProgressEvent) Type() EventType { return EventScanProgress }

// NewScanProgressEvent creates a new ScanProgressEvent.
func NewScanProgressEvent(progress ScanProgress) ScanProgressEvent {
	return ScanProgressEvent{baseEvent: newBaseEvent(), Progress: progress}
}

// ScanCompletedEvent is published when a library scan completes.
type ScanCompletedEvent struct {
	baseEvent
	Report ScanReport
}

// Type returns the event type.
func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// NewScanCompletedEvent creates a new ScanCompletedEvent.
func NewScanCompletedEvent(report ScanReport) ScanCompletedEvent {
	return ScanCompletedEvent{baseEvent: newBaseEvent(), Report: report}
}

// ScanCancelledEvent is published when a library scan is cancelled.
type ScanCancelledEvent struct {
	baseEvent
	Reason string
}

// Type returns the event type.
func (e ScanCancelledEvent) Type() EventType { return EventScanCancelled }

// NewScanCancelledEvent creates a new ScanCancelledEvent.
func NewScanCancelledEvent(reason string) ScanCancelledEvent {
	return ScanCancelledEvent{baseEvent: newBaseEvent(), Reason: reason}
}
