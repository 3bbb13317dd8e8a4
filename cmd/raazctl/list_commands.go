package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naddyballia/Raaz-Music/internal/domain"
)

const timeRounding = 10 * time.Millisecond

func newSongsCommand(ctx *commandContext) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List the song catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			songs, err := store.All(context.Background())
			if err != nil {
				return fmt.Errorf("list songs: %w", err)
			}
			songs = filterSongs(songs, search)

			fmt.Fprintln(cmd.OutOrStdout(), renderSongTable(songs, false))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title, artist, album or path")
	return cmd
}

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List favorite songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			songs, err := store.Favorites(context.Background())
			if err != nil {
				return fmt.Errorf("list favorites: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSongTable(songs, false))
			return nil
		},
	}
}

func newRecentCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently played songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			if limit <= 0 {
				limit = cfg.Library.RecentLimit
			}

			songs, err := store.RecentlyPlayed(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("list recently played: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSongTable(songs, true))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of songs to list")
	return cmd
}

// filterSongs keeps songs matching the query in title, artist, album or path.
func filterSongs(songs []domain.Song, query string) []domain.Song {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return songs
	}

	filtered := make([]domain.Song, 0, len(songs))
	for _, song := range songs {
		haystack := strings.ToLower(song.Title + "\x00" + song.Artist + "\x00" + song.Album + "\x00" + song.FilePath)
		if strings.Contains(haystack, query) {
			filtered = append(filtered, song)
		}
	}
	return filtered
}

// renderSongTable renders songs in a table. When withPlayed is set, a
// last-played column replaces the duration column.
func renderSongTable(songs []domain.Song, withPlayed bool) string {
	if len(songs) == 0 {
		return "No songs found"
	}

	headers := []string{"Title", "Artist", "Album", "Duration", "Fav"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
	if withPlayed {
		headers = []string{"Title", "Artist", "Album", "Played", "Fav"}
	}

	rows := make([][]string, 0, len(songs))
	for _, song := range songs {
		fourth := formatDuration(song.Duration)
		if withPlayed {
			fourth = formatPlayed(song.LastPlayedAt)
		}
		fav := ""
		if song.Favorite {
			fav = "*"
		}
		rows = append(rows, []string{song.DisplayTitle(), song.Artist, song.Album, fourth, fav})
	}

	return renderTable(headers, rows, aligns)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatPlayed(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
