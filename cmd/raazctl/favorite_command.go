package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/naddyballia/Raaz-Music/internal/domain"
)

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "favorite <file>",
		Short: "Mark a catalogued song as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			song, err := store.SetFavorite(context.Background(), path, !unset)
			if errors.Is(err, domain.ErrSongNotFound) {
				return fmt.Errorf("%s is not in the catalog; run 'raazctl scan' first", path)
			}
			if err != nil {
				return fmt.Errorf("update favorite: %w", err)
			}

			state := "favorite"
			if unset {
				state = "no longer a favorite"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", song.DisplayTitle(), state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "Remove the favorite mark instead")
	return cmd
}
