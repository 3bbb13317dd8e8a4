// Package domain defines domain-specific errors, independent of any
// infrastructure concern.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services and adapters.
var (
	// ErrSongNotFound is returned when a requested song is not in the
	// catalog or queue.
	ErrSongNotFound = errors.New("song not found")

	// ErrInvalidSongHandle is returned when an engine operation is
	// attempted with no loaded song.
	ErrInvalidSongHandle = errors.New("invalid song handle")

	// ErrQueueEmpty is returned for navigation on an empty queue.
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrEndOfQueue is returned when skipping past the last queued song.
	ErrEndOfQueue = errors.New("end of queue reached")

	// ErrStartOfQueue is returned when skipping before the first queued song.
	ErrStartOfQueue = errors.New("start of queue reached")

	// ErrInvalidIndex is returned when a queue index is out of bounds.
	ErrInvalidIndex = errors.New("invalid queue index")

	// ErrInvalidVolume is returned when the volume is outside 0.0-1.0.
	ErrInvalidVolume = errors.New("invalid volume: must be between 0.0 and 1.0")

	// ErrInvalidPosition is returned when seeking outside the song.
	ErrInvalidPosition = errors.New("invalid playback position")

	// ErrNotInitialized is returned when a component is used before
	// initialization.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrAlreadyInitialized is returned on double initialization.
	ErrAlreadyInitialized = errors.New("component already initialized")

	// ErrUnsupportedFormat is returned for files outside the extension
	// allow-list.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrFileNotFound is returned when an audio file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFilePath is returned for an empty or malformed path.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrScanCancelled is returned when a library scan is cancelled.
	ErrScanCancelled = errors.New("scan cancelled")

	// ErrScanInProgress is returned when a scan is started while another
	// one runs.
	ErrScanInProgress = errors.New("scan already in progress")
)

// AudioEngineError wraps a failure inside the audio engine with context.
type AudioEngineError struct {
	Op      string // operation that failed ("load", "play", "seek", ...)
	Path    string // file path, if applicable
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AudioEngineError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("audio engine %s failed for %q: %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("audio engine %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *AudioEngineError) Unwrap() error { return e.Err }

// NewAudioEngineError creates a new AudioEngineError.
func NewAudioEngineError(op, path, message string, err error) *AudioEngineError {
	return &AudioEngineError{Op: op, Path: path, Message: message, Err: err}
}

// RepositoryError wraps a persistence-layer failure with context.
type RepositoryError struct {
	Op      string // operation that failed ("upsert", "all", "toggle", ...)
	Kind    string // repository kind ("catalog", "history", "preferences")
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Kind, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error { return e.Err }

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, kind, message string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Kind: kind, Message: message, Err: err}
}

// ServiceError wraps a service-layer failure with context.
type ServiceError struct {
	Service string
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error { return e.Err }

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Message: message, Err: err}
}
