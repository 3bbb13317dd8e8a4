package fyne

import (
	"fmt"
	"strings"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/naddyballia/Raaz-Music/internal/adapter/ui/fyne/widgets"
	"github.com/naddyballia/Raaz-Music/internal/domain"
)

// LibraryWindow shows the song catalog in three tabs: the full library,
// favorites, and recently played. Rows support double-tap to play and a
// favorite toggle. A search box filters all tabs by title, artist, album
// and file path.
type LibraryWindow struct {
	window      fyneapp.Window
	app         fyneapp.App
	tabs        *container.AppTabs
	searchEntry *widget.Entry

	allList      *libraryList
	favoriteList *libraryList
	recentList   *libraryList

	// Dependencies
	presenter *Presenter

	// Lifecycle
	onWindowClosed func()
	isVisible      bool
}

// libraryList is one tab's list widget together with its data.
type libraryList struct {
	list   *widget.List
	source func() []domain.Song
	all    []domain.Song // Full collection for this tab
	data   []domain.Song // Filtered view (shown in the list)
}

// NewLibraryWindow creates a new library window and loads the catalog.
func NewLibraryWindow(app fyneapp.App, presenter *Presenter) *LibraryWindow {
	w := &LibraryWindow{
		app:       app,
		presenter: presenter,
	}

	// Create the window
	w.window = app.NewWindow("Library")
	w.window.Resize(fyneapp.NewSize(560, 640))

	// Build UI
	w.buildUI()

	// Set window close handler
	w.window.SetOnClosed(func() {
		w.isVisible = false
		if w.onWindowClosed != nil {
			w.onWindowClosed()
		}
	})

	// Load initial catalog data
	w.reloadData()

	return w
}

// buildUI constructs the library window UI layout.
func (w *LibraryWindow) buildUI() {
	// Create the search entry
	w.searchEntry = widget.NewEntry()
	w.searchEntry.SetPlaceHolder("Search...")
	w.searchEntry.OnChanged = func(query string) {
		w.applySearch(query)
	}

	w.allList = w.newLibraryList(w.presenter.AllSongs)
	w.favoriteList = w.newLibraryList(w.presenter.FavoriteSongs)
	w.recentList = w.newLibraryList(w.presenter.RecentlyPlayed)

	w.tabs = container.NewAppTabs(
		container.NewTabItem("All Songs", w.allList.list),
		container.NewTabItem("Favorites", w.favoriteList.list),
		container.NewTabItem("Recently Played", w.recentList.list),
	)

	content := container.NewBorder(
		w.searchEntry, // Top
		nil,           // Bottom
		nil,           // Left
		nil,           // Right
		w.tabs,        // Center
	)

	w.window.SetContent(content)
}

// newLibraryList creates a list widget backed by the given catalog view.
func (w *LibraryWindow) newLibraryList(source func() []domain.Song) *libraryList {
	l := &libraryList{
		source: source,
	}

	l.list = widget.NewList(
		func() int {
			return len(l.data)
		},
		func() fyneapp.CanvasObject {
			return w.createCell(l)
		},
		func(i widget.ListItemID, obj fyneapp.CanvasObject) {
			w.updateCell(l, i, obj)
		},
	)

	return l
}

// createCell creates a new cell for a list. The row is a border layout
// with the song label in the center and the favorite toggle on the right.
func (w *LibraryWindow) createCell(l *libraryList) fyneapp.CanvasObject {
	label := widgets.NewDoubleTapLabel(func(index int) {
		w.onCellDoubleTapped(l, index)
	})
	label.Truncation = fyneapp.TextTruncateEllipsis

	favorite := widget.NewCheck("", nil)

	return container.NewBorder(nil, nil, nil, favorite, label)
}

// updateCell updates a list cell with song information.
func (w *LibraryWindow) updateCell(l *libraryList, i widget.ListItemID, obj fyneapp.CanvasObject) {
	holder, ok := obj.(*fyneapp.Container)
	if !ok || len(holder.Objects) < 2 {
		return
	}

	if i < 0 || i >= len(l.data) {
		return
	}

	song := l.data[i]

	label, ok := holder.Objects[0].(*widgets.DoubleTapLabel)
	if !ok {
		return
	}
	label.SetIndex(i)
	label.SetText(w.cellText(song))

	favorite, ok := holder.Objects[1].(*widget.Check)
	if !ok {
		return
	}

	// Detach the handler while syncing state so SetChecked does not
	// fire a toggle for the song previously bound to this cell.
	favorite.OnChanged = nil
	favorite.SetChecked(song.Favorite)
	favorite.OnChanged = func(bool) {
		w.onFavoriteToggled(l, i)
	}
}

// cellText formats the row text for a song.
func (w *LibraryWindow) cellText(song domain.Song) string {
	if song.Artist != "" {
		return fmt.Sprintf("%s - %s", song.Artist, song.DisplayTitle())
	}
	return song.DisplayTitle()
}

// onCellDoubleTapped handles double-tap events on list cells.
func (w *LibraryWindow) onCellDoubleTapped(l *libraryList, index int) {
	if index < 0 || index >= len(l.data) {
		return
	}

	if w.presenter != nil {
		w.presenter.OnSongActivated(l.data[index])
	}
}

// onFavoriteToggled handles the favorite checkbox on a list cell.
func (w *LibraryWindow) onFavoriteToggled(l *libraryList, index int) {
	if index < 0 || index >= len(l.data) {
		return
	}

	if w.presenter != nil {
		w.presenter.OnFavoriteToggled(l.data[index])
	}
}

// applySearch filters all tabs based on the search query.
func (w *LibraryWindow) applySearch(query string) {
	query = strings.ToLower(strings.TrimSpace(query))

	for _, l := range w.lists() {
		if query == "" {
			l.data = l.all
		} else {
			filtered := make([]domain.Song, 0)
			for _, song := range l.all {
				if w.matchesSearch(song, query) {
					filtered = append(filtered, song)
				}
			}
			l.data = filtered
		}
		l.list.Refresh()
	}
}

// matchesSearch checks if a song matches the search query.
func (w *LibraryWindow) matchesSearch(song domain.Song, query string) bool {
	if strings.Contains(strings.ToLower(song.FilePath), query) {
		return true
	}
	if strings.Contains(strings.ToLower(song.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(song.Artist), query) {
		return true
	}
	if strings.Contains(strings.ToLower(song.Album), query) {
		return true
	}
	return false
}

// lists returns all three tab lists.
func (w *LibraryWindow) lists() []*libraryList {
	return []*libraryList{w.allList, w.favoriteList, w.recentList}
}

// reloadData pulls fresh catalog data and re-applies the active search.
func (w *LibraryWindow) reloadData() {
	for _, l := range w.lists() {
		l.all = l.source()
	}
	w.applySearch(w.searchEntry.Text)
}

// Reload refreshes the lists from the catalog. Safe to call from any
// goroutine; the UI update is queued on the Fyne event loop.
func (w *LibraryWindow) Reload() {
	fyneapp.Do(func() {
		w.reloadData()
	})
}

// Show makes the window visible.
func (w *LibraryWindow) Show() {
	w.isVisible = true
	w.window.Show()
}

// IsVisible reports whether the window is currently shown.
func (w *LibraryWindow) IsVisible() bool {
	return w.isVisible
}

// RequestFocus brings the window to the front.
func (w *LibraryWindow) RequestFocus() {
	w.window.RequestFocus()
}

// SetOnClosed registers a callback invoked when the user closes the window.
func (w *LibraryWindow) SetOnClosed(callback func()) {
	w.onWindowClosed = callback
}

// Close closes the window.
func (w *LibraryWindow) Close() {
	w.window.Close()
}
