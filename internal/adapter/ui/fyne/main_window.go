package fyne

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	appName      = "Raaz"
	windowWidth  = 520
	windowHeight = 420
)

// MainWindow is the main UI window implementing the UIView interface.
//
// It follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	// UI components
	prevButton     *widget.Button
	playButton     *widget.Button
	stopButton     *widget.Button
	nextButton     *widget.Button
	muteButton     *widget.Button
	loopButton     *widget.Button
	songInfo       *widget.Label
	currentTime    *widget.Label
	endTime        *widget.Label
	progressSlider *widget.Slider
	volumeSlider   *widget.Slider
	albumArt       *canvas.Image

	// Library window, created lazily on first open
	libraryWindow *LibraryWindow

	// Lifecycle management
	closeOnce sync.Once

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window.
func NewMainWindow(app fyneapp.App) *MainWindow {
	w := &MainWindow{
		app: app,
	}

	w.window = app.NewWindow(appName)

	// Build UI
	w.buildUI()

	// Set window properties
	w.window.Resize(fyneapp.Size{
		Width:  windowWidth,
		Height: windowHeight,
	})
	w.window.SetFixedSize(true)

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
	w.addShortcuts()
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	// Album art display
	w.albumArt = canvas.NewImageFromResource(theme.MediaMusicIcon())
	w.albumArt.FillMode = canvas.ImageFillContain

	// Control buttons
	w.prevButton = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), nil)
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	w.nextButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), nil)
	w.muteButton = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), nil)
	w.loopButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), nil)

	// Song info label
	w.songInfo = widget.NewLabel("")
	w.songInfo.Truncation = fyneapp.TextTruncateClip
	w.songInfo.TextStyle = fyneapp.TextStyle{
		Bold:   true,
		Italic: true,
	}

	// Volume slider
	w.volumeSlider = widget.NewSlider(0, 100)
	w.volumeSlider.Orientation = widget.Horizontal
	volIcon := canvas.NewImageFromResource(theme.VolumeUpIcon())
	volumeHolder := container.NewHBox(volIcon, w.volumeSlider)

	// Button container
	buttonsHBox := container.NewHBox(
		w.prevButton, w.playButton, w.stopButton,
		w.nextButton, w.muteButton, w.loopButton,
	)
	buttonsHolder := container.NewBorder(nil, nil, buttonsHBox, volumeHolder, w.songInfo)

	// Progress slider
	w.progressSlider = widget.NewSlider(0, 100)
	w.currentTime = widget.NewLabel("00:00")
	w.endTime = widget.NewLabel("00:00")
	sliderHolder := container.NewBorder(nil, nil, w.currentTime, w.endTime, w.progressSlider)

	// Main layout
	controls := container.NewVBox(buttonsHolder, sliderHolder)
	splitContainer := container.NewBorder(nil, controls, nil, nil, w.albumArt)
	w.window.SetContent(container.NewPadded(splitContainer))

	// Menu
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// wirePresenterHandlers connects UI events to presenter handlers.
func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	// Button handlers
	w.playButton.OnTapped = func() {
		w.presenter.OnPlayClicked()
	}

	w.stopButton.OnTapped = func() {
		w.presenter.OnStopClicked()
	}

	w.nextButton.OnTapped = func() {
		w.presenter.OnNextClicked()
	}

	w.prevButton.OnTapped = func() {
		w.presenter.OnPreviousClicked()
	}

	w.muteButton.OnTapped = func() {
		w.presenter.OnMuteClicked()
	}

	w.loopButton.OnTapped = func() {
		w.presenter.OnLoopClicked()
	}

	// Volume slider
	w.volumeSlider.OnChanged = func(value float64) {
		w.presenter.OnVolumeChanged(value)
	}

	// Progress slider (seeking). OnChangeEnded fires once when the user
	// releases the slider, so dragging does not flood the engine.
	w.progressSlider.OnChangeEnded = func(value float64) {
		w.presenter.OnSeekRequested(value)
	}
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	menus := make([]*fyneapp.Menu, 0)
	separator := fyneapp.NewMenuItemSeparator()

	openFile := fyneapp.NewMenuItem("Open", func() {
		w.handleOpenFile()
	})

	openFolder := fyneapp.NewMenuItem("Open Folder", func() {
		w.handleOpenFolder()
	})

	rescan := fyneapp.NewMenuItem("Rescan Library", func() {
		if w.presenter != nil {
			w.presenter.OnRescanClicked()
		}
	})

	viewLibrary := fyneapp.NewMenuItem("View Library", func() {
		if w.presenter != nil {
			w.presenter.OnLibraryMenuClicked()
		}
	})

	exitMenu := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})

	fileMenuItems := fyneapp.NewMenu("File", openFile, openFolder, separator, rescan, viewLibrary, separator, exitMenu)
	menus = append(menus, fileMenuItems)

	return menus
}

// handleOpenFile handles the "Open" menu action.
func (w *MainWindow) handleOpenFile() {
	if w.presenter == nil {
		return
	}

	dialog := NewFileDialog(w.window, func(filePath string) {
		if err := w.presenter.OnFileOpened(filePath); err != nil {
			w.ShowNotification("Error", fmt.Sprintf("Failed to open file: %v", err))
		}
	}, w.presenter.Logger())
	dialog.Show()
}

// handleOpenFolder handles the "Open Folder" menu action.
func (w *MainWindow) handleOpenFolder() {
	if w.presenter == nil {
		return
	}

	dialog := NewFolderDialog(w.window, func(folderPath string) {
		if err := w.presenter.OnFolderOpened(folderPath); err != nil {
			w.ShowNotification("Error", fmt.Sprintf("Failed to scan folder: %v", err))
		}
	}, w.presenter.Logger())
	dialog.Show()
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyUp,
		Modifier: desktop.AltModifier,
	}, func(shortcut fyneapp.Shortcut) {
		// Volume up
		newVol := w.volumeSlider.Value + 5
		if newVol > 100 {
			newVol = 100
		}
		w.volumeSlider.SetValue(newVol)
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyDown,
		Modifier: desktop.AltModifier,
	}, func(shortcut fyneapp.Shortcut) {
		// Volume down
		newVol := w.volumeSlider.Value - 5
		if newVol < 0 {
			newVol = 0
		}
		w.volumeSlider.SetValue(newVol)
	})
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		if w.libraryWindow != nil {
			w.libraryWindow.Close()
		}
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation
//
// The presenter calls these from event handlers and from its progress
// goroutine, so every widget mutation is queued on the Fyne event loop.

// SetPlayState updates the play/pause button state.
func (w *MainWindow) SetPlayState(playing bool) {
	fyneapp.Do(func() {
		if playing {
			w.playButton.SetIcon(theme.MediaPauseIcon())
		} else {
			w.playButton.SetIcon(theme.MediaPlayIcon())
		}
		w.playButton.Refresh()
	})
}

// SetMuteState updates the mute button state.
func (w *MainWindow) SetMuteState(muted bool) {
	fyneapp.Do(func() {
		if muted {
			w.muteButton.SetIcon(theme.VolumeMuteIcon())
		} else {
			w.muteButton.SetIcon(theme.VolumeUpIcon())
		}
		w.muteButton.Refresh()
	})
}

// SetLoopState updates the loop button state.
func (w *MainWindow) SetLoopState(enabled bool) {
	fyneapp.Do(func() {
		if enabled {
			w.loopButton.Importance = widget.HighImportance
		} else {
			w.loopButton.Importance = widget.MediumImportance
		}
		w.loopButton.Refresh()
	})
}

// SetVolume updates the volume slider. The value is on the 0-100 scale.
func (w *MainWindow) SetVolume(volume float64) {
	fyneapp.Do(func() {
		w.volumeSlider.Value = volume
		w.volumeSlider.Refresh()
	})
}

// SetSongInfo updates the displayed song information.
func (w *MainWindow) SetSongInfo(title, artist, album string) {
	// Format: "Artist - Title"
	var text string
	if artist != "" && title != "" {
		text = fmt.Sprintf("%s - %s", artist, title)
	} else if title != "" {
		text = title
	} else {
		text = "No song loaded"
	}

	fyneapp.Do(func() {
		w.songInfo.SetText(text)
	})
}

// SetAlbumArt updates the album artwork.
func (w *MainWindow) SetAlbumArt(imageData []byte) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		// If decode fails, use default
		w.ClearAlbumArt()
		return
	}

	fyneapp.Do(func() {
		w.albumArt.Resource = nil
		w.albumArt.Image = img
		w.albumArt.Refresh()
	})
}

// ClearAlbumArt resets the album artwork to default.
func (w *MainWindow) ClearAlbumArt() {
	fyneapp.Do(func() {
		w.albumArt.Resource = theme.MediaMusicIcon()
		w.albumArt.Image = nil
		w.albumArt.Refresh()
	})
}

// SetCurrentTime updates the current playback time display.
func (w *MainWindow) SetCurrentTime(seconds float64) {
	format := fmt.Sprintf("%.2d:%.2d", int(seconds/60), int(math.Mod(seconds, 60)))
	fyneapp.Do(func() {
		w.currentTime.SetText(format)
	})
}

// SetTotalTime updates the total song duration display.
func (w *MainWindow) SetTotalTime(seconds float64) {
	format := fmt.Sprintf("%.2d:%.2d", int(seconds/60), int(math.Mod(seconds, 60)))
	fyneapp.Do(func() {
		w.progressSlider.Max = seconds
		w.endTime.SetText(format)
	})
}

// SetProgress updates the progress slider position.
func (w *MainWindow) SetProgress(position, duration float64) {
	if duration <= 0 {
		return
	}
	fyneapp.Do(func() {
		w.progressSlider.Value = position
		w.progressSlider.Refresh()
	})
}

// ShowLibraryWindow opens the library window, creating it on first use.
func (w *MainWindow) ShowLibraryWindow() {
	if w.libraryWindow != nil && w.libraryWindow.IsVisible() {
		w.libraryWindow.RequestFocus()
		return
	}

	w.libraryWindow = NewLibraryWindow(w.app, w.presenter)
	w.libraryWindow.SetOnClosed(func() {
		w.libraryWindow = nil
	})
	w.libraryWindow.Show()
}

// RefreshLibrary reloads the library window lists, if the window is open.
func (w *MainWindow) RefreshLibrary() {
	if w.libraryWindow != nil && w.libraryWindow.IsVisible() {
		w.libraryWindow.Reload()
	}
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
