// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/naddyballia/Raaz-Music/internal/adapter/audio/beep"
	"github.com/naddyballia/Raaz-Music/internal/adapter/audio/mock"
	"github.com/naddyballia/Raaz-Music/internal/adapter/catalog/sqlite"
	"github.com/naddyballia/Raaz-Music/internal/adapter/eventbus"
	"github.com/naddyballia/Raaz-Music/internal/adapter/repository/fyneprefs"
	fyneui "github.com/naddyballia/Raaz-Music/internal/adapter/ui/fyne"
	"github.com/naddyballia/Raaz-Music/internal/config"
	"github.com/naddyballia/Raaz-Music/internal/logger"
	"github.com/naddyballia/Raaz-Music/internal/ports"
	"github.com/naddyballia/Raaz-Music/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	cfg     *config.Config
	fyneApp fyne.App

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine
	extractor   ports.MetadataExtractor
	store       *sqlite.Store

	// Repositories
	historyRepo     ports.HistoryRepository
	preferencesRepo ports.PreferencesRepository

	// Services
	playbackService   *service.PlaybackService
	queueService      *service.QueueService
	libraryService    *service.LibraryService
	catalogService    *service.CatalogService
	preferenceService *service.PreferenceService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow
}

// Options holds application start-up options.
type Options struct {
	// AppID is the unique application identifier
	AppID string

	// ConfigPath is the config file location ("" for the default)
	ConfigPath string

	// UseMockAudio determines whether to use a mock audio engine (for testing)
	UseMockAudio bool

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultOptions returns the default application options.
func DefaultOptions() Options {
	return Options{
		AppID: "com.raaz.player",
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(opts Options) (*Application, error) {
	app := &Application{}

	// Step 1: Load configuration
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to prepare data directories: %w", err)
	}
	app.cfg = cfg

	// Step 2: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", opts.AppID),
		slog.String("version", GetVersionInfo().Version))

	// Step 3: Create Fyne application
	if opts.TestFyneApp != nil {
		app.fyneApp = opts.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(opts.AppID)
	}

	// Step 4: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 5: Create the audio engine and metadata extractor
	bufferSize := time.Duration(cfg.Audio.BufferMillis) * time.Millisecond
	if opts.UseMockAudio {
		engine := mock.NewEngine()
		if err := engine.Initialize(cfg.Audio.SampleRate, bufferSize); err != nil {
			return nil, fmt.Errorf("failed to initialize audio engine: %w", err)
		}
		app.audioEngine = engine
		app.extractor = mock.NewExtractor()
	} else {
		engine := beep.NewEngine(app.logger.With(slog.String("engine", "beep")))
		if err := engine.Initialize(cfg.Audio.SampleRate, bufferSize); err != nil {
			return nil, fmt.Errorf("failed to initialize audio engine: %w", err)
		}
		app.audioEngine = engine
		app.extractor = beep.NewExtractor()
	}

	// Step 6: Open the song catalog
	store, err := sqlite.Open(cfg.DatabaseFile())
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	app.store = store

	// Step 7: Create repositories
	prefs := app.fyneApp.Preferences()
	app.historyRepo = fyneprefs.NewHistoryRepository(prefs)
	app.preferencesRepo = fyneprefs.NewPreferencesRepository(prefs)

	// Step 8: Create services (with dependency injection)
	app.playbackService = service.NewPlaybackService(
		app.logger.With(slog.String("service", "playback")),
		app.audioEngine,
		app.eventBus,
		app.store,
	)

	app.queueService = service.NewQueueService(
		app.logger.With(slog.String("service", "queue")),
		app.playbackService,
		app.store,
		app.historyRepo,
		app.eventBus,
	)

	app.libraryService = service.NewLibraryService(
		app.logger.With(slog.String("service", "library")),
		app.extractor,
		app.store,
		app.eventBus,
		cfg.Library.ExcludeContains,
	)

	app.catalogService = service.NewCatalogService(
		app.logger.With(slog.String("service", "catalog")),
		app.store,
		app.eventBus,
		cfg.Library.RecentLimit,
	)

	app.preferenceService = service.NewPreferenceService(
		app.logger.With(slog.String("service", "preference")),
		app.preferencesRepo,
	)

	// Step 9: Load saved state
	if err := app.loadSavedState(); err != nil {
		// Non-fatal - just log and continue
		app.logger.Warn("failed to load saved state", slog.Any("error", err))
	}

	// Step 10: Create UI
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp)

	// Step 11: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.playbackService,
		app.queueService,
		app.libraryService,
		app.catalogService,
		app.preferenceService,
		app.eventBus,
		app.mainWindow,
		cfg.Library.Paths,
	)

	// Connect presenter to the main window
	app.mainWindow.SetPresenter(app.presenter)

	return app, nil
}

// GetServices returns the wired services, mainly for tests.
func (a *Application) GetServices() (*service.PlaybackService, *service.QueueService, *service.LibraryService, *service.CatalogService, *service.PreferenceService) {
	return a.playbackService, a.queueService, a.libraryService, a.catalogService, a.preferenceService
}

// GetEventBus returns the application event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the underlying Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// loadSavedState restores the application state from the previous session.
func (a *Application) loadSavedState() error {
	// Load saved queue and position
	if err := a.queueService.LoadQueue(context.Background()); err != nil {
		return fmt.Errorf("failed to load queue: %w", err)
	}

	// Load saved volume
	volume := a.preferenceService.GetVolume()
	if volume > 0 {
		if err := a.playbackService.SetVolume(volume); err != nil {
			a.logger.Warn("failed to set volume", slog.Any("error", err))
		}
	}

	// Load saved loop mode
	a.playbackService.SetLoop(a.preferenceService.GetLoopMode())

	return nil
}

// Run starts the application.
// This is called from main.go after the application is created.
func (a *Application) Run() {
	a.logger.Info("Raaz music player started",
		slog.Int("library_paths", len(a.cfg.Library.Paths)))

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down application")

	// Shutdown UI and presenter
	if a.presenter != nil {
		a.presenter.Shutdown()
	}

	// Shutdown services (in reverse order of creation)
	if a.preferenceService != nil {
		if err := a.preferenceService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown preference service", slog.Any("error", err))
		}
	}

	if a.libraryService != nil {
		if err := a.libraryService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown library service", slog.Any("error", err))
		}
	}

	// Queue shutdown persists the queue before playback stops
	if a.queueService != nil {
		if err := a.queueService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown queue service", slog.Any("error", err))
		}
	}

	if a.playbackService != nil {
		if err := a.playbackService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown playback service", slog.Any("error", err))
		}
	}

	// Shutdown audio engine
	if a.audioEngine != nil {
		if err := a.audioEngine.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown audio engine", slog.Any("error", err))
		}
	}

	// Close the catalog last; services above may still flush writes
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close catalog", slog.Any("error", err))
		}
	}

	a.logger.Info("application shutdown complete")
}
