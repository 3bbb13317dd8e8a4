package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naddyballia/Raaz-Music/internal/adapter/audio/beep"
	"github.com/naddyballia/Raaz-Music/internal/adapter/eventbus"
	"github.com/naddyballia/Raaz-Music/internal/domain"
	"github.com/naddyballia/Raaz-Music/internal/service"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path...]",
		Short: "Scan library folders into the catalog",
		Long: "Scan walks the given folders (or the configured library paths when " +
			"none are given), reads tags from every supported audio file and " +
			"updates the catalog. Favorites and play history are preserved.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = cfg.Library.Paths
			}
			if len(paths) == 0 {
				return fmt.Errorf("no library paths configured; pass folders as arguments or set library.paths in the config")
			}

			log := ctx.logger()
			bus := eventbus.NewSyncEventBus()
			bus.SetLogger(log.With(slog.String("component", "eventbus")))

			out := cmd.OutOrStdout()
			bus.Subscribe(domain.EventScanProgress, func(event domain.Event) {
				progress, ok := event.(domain.ScanProgressEvent)
				if !ok {
					return
				}
				if progress.Progress.FilesScanned%100 == 0 {
					if pct := progress.Progress.Percentage(); pct >= 0 {
						fmt.Fprintf(out, "scanned %d of %d files (%.0f%%)\n",
							progress.Progress.FilesScanned, progress.Progress.TotalFiles, pct)
					} else {
						fmt.Fprintf(out, "scanned %d files...\n", progress.Progress.FilesScanned)
					}
				}
			})

			library := service.NewLibraryService(
				log.With(slog.String("service", "library")),
				beep.NewExtractor(),
				store,
				bus,
				cfg.Library.ExcludeContains,
			)

			// Ctrl-C cancels the scan; partial results are kept.
			scanCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := library.Scan(scanCtx, paths)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			fmt.Fprintf(out, "Scanned %d folders in %s\n", len(report.Paths), report.Elapsed.Round(timeRounding))
			fmt.Fprintf(out, "  files seen:      %d\n", report.FilesSeen)
			fmt.Fprintf(out, "  songs catalogued: %d\n", report.SongsUpserted)
			fmt.Fprintf(out, "  skipped:         %d\n", report.Skipped)
			return nil
		},
	}
}
