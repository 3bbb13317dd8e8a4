package service

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/ports"
)

// audioExtensions is the scan allow-list. It matches what the playback
// engine can decode.
var audioExtensions = []string{
	".mp3",
	".flac",
	".ogg", ".oga",
	".wav",
}

// LibraryService scans directories for audio files, extracts their metadata
// and upserts them into the catalog.
// All operations are thread-safe via sync.RWMutex.
type LibraryService struct {
	logger    *slog.Logger
	extractor ports.MetadataExtractor
	songs     ports.SongRepository
	bus       ports.EventBus

	// excludeContains skips any file whose path contains one of these
	// substrings (hidden directories, other apps' media caches).
	excludeContains []string

	scanning   bool
	cancelScan context.CancelFunc

	mu sync.RWMutex
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	logger *slog.Logger,
	extractor ports.MetadataExtractor,
	songs ports.SongRepository,
	bus ports.EventBus,
	excludeContains []string,
) *LibraryService {
	return &LibraryService{
		logger:          logger,
		extractor:       extractor,
		songs:           songs,
		bus:             bus,
		excludeContains: excludeContains,
	}
}

// Scan walks the given roots recursively, extracts metadata from every
// audio file and upserts the results into the catalog. Only one scan may
// run at a time. Publishes progress events while running.
func (s *LibraryService) Scan(ctx context.Context, paths []string) (*domain.ScanReport, error) {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return nil, domain.ErrScanInProgress
	}
	s.scanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	s.cancelScan = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.scanning = false
		s.cancelScan = nil
		s.mu.Unlock()
	}()

	started := time.Now()
	s.bus.Publish(domain.NewScanStartedEvent(paths))

	// First pass: collect candidate files so progress has a total.
	files := make([]string, 0)
	seen := make(map[string]struct{})
	for _, root := range paths {
		collected, err := s.collectAudioFiles(scanCtx, root, seen)
		files = append(files, collected...)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				s.bus.Publish(domain.NewScanCancelledEvent("scan cancelled"))
				return nil, domain.ErrScanCancelled
			}
			return nil, err
		}
	}

	report := &domain.ScanReport{
		Paths:     paths,
		FilesSeen: len(files),
	}

	for i, filePath := range files {
		select {
		case <-scanCtx.Done():
			s.bus.Publish(domain.NewScanCancelledEvent("scan cancelled"))
			return report, domain.ErrScanCancelled
		default:
		}

		song, err := s.extractor.Extract(filePath)
		if err != nil {
			// Unreadable file. Log and keep scanning.
			s.logger.Warn("skipping unreadable file",
				slog.String("file_path", filePath), slog.Any("error", err))
			report.Skipped++
			continue
		}

		if err := s.songs.Upsert(scanCtx, song); err != nil {
			s.logger.Warn("failed to catalog song",
				slog.String("file_path", filePath), slog.Any("error", err))
			report.Skipped++
			continue
		}
		report.SongsUpserted++

		s.bus.Publish(domain.NewScanProgressEvent(domain.ScanProgress{
			CurrentFile:  filePath,
			FilesScanned: i + 1,
			TotalFiles:   len(files),
			SongsFound:   report.SongsUpserted,
		}))
	}

	report.Elapsed = time.Since(started)

	s.bus.Publish(domain.NewScanCompletedEvent(*report))
	s.bus.Publish(domain.NewCatalogUpdatedEvent())

	s.logger.Info("library scan finished",
		slog.Int("files_seen", report.FilesSeen),
		slog.Int("songs_upserted", report.SongsUpserted),
		slog.Int("skipped", report.Skipped),
		slog.Duration("elapsed", report.Elapsed))

	return report, nil
}

// CancelScan cancels the currently running scan operation.
func (s *LibraryService) CancelScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanning {
		return domain.NewServiceError("LibraryService", "CancelScan", "no scan in progress", nil)
	}

	if s.cancelScan != nil {
		s.cancelScan()
	}

	return nil
}

// IsScanning returns true if a scan is currently in progress.
func (s *LibraryService) IsScanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanning
}

// IsFormatSupported checks the file extension against the allow-list.
func (s *LibraryService) IsFormatSupported(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, supported := range audioExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// SupportedFormats returns the extension allow-list.
func (s *LibraryService) SupportedFormats() []string {
	formats := make([]string, len(audioExtensions))
	copy(formats, audioExtensions)
	return formats
}

// isExcluded reports whether the path matches the exclude-list.
func (s *LibraryService) isExcluded(path string) bool {
	for _, fragment := range s.excludeContains {
		if fragment != "" && strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

// collectAudioFiles walks root and returns the audio files that pass the
// allow- and exclude-lists. Files already in seen are skipped, so roots
// that overlap do not produce duplicates. Unreadable directories are
// skipped, not fatal.
func (s *LibraryService) collectAudioFiles(ctx context.Context, root string, seen map[string]struct{}) ([]string, error) {
	files := make([]string, 0)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if err != nil {
			// Permission denied and similar. Skip and keep walking.
			s.logger.Debug("skipping unreadable path",
				slog.String("path", path), slog.Any("error", err))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if s.isExcluded(path + string(filepath.Separator)) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(path) || !s.IsFormatSupported(path) {
			return nil
		}

		if _, dup := seen[path]; dup {
			return nil
		}
		seen[path] = struct{}{}
		files = append(files, path)

		return nil
	})

	if errors.Is(err, context.Canceled) {
		return files, context.Canceled
	}

	return files, err
}

// ExtractMetadata extracts metadata for a single file without touching the
// catalog.
func (s *LibraryService) ExtractMetadata(filePath string) (*domain.Song, error) {
	if !s.IsFormatSupported(filePath) {
		return nil, domain.ErrUnsupportedFormat
	}

	return s.extractor.Extract(filePath)
}

// Shutdown cancels any running scan.
func (s *LibraryService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scanning && s.cancelScan != nil {
		s.cancelScan()
	}

	return nil
}

// Verify that LibraryService implements the expected interface patterns
var _ interface {
	Scan(context.Context, []string) (*domain.ScanReport, error)
	CancelScan() error
	IsScanning() bool
	IsFormatSupported(string) bool
	SupportedFormats() []string
	ExtractMetadata(string) (*domain.Song, error)
	Shutdown() error
} = (*LibraryService)(nil)
