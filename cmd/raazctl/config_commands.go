package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naddyballia/Raaz-Music/internal/config"
)

func newConfigCommand(rootConfigFlag *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(rootConfigFlag))
	configCmd.AddCommand(newConfigValidateCommand(rootConfigFlag))
	configCmd.AddCommand(newConfigShowCommand(rootConfigFlag))

	return configCmd
}

// resolveConfigPath prefers the subcommand's --path, then the root
// --config flag, then empty (the default location).
func resolveConfigPath(pathFlag string, rootConfigFlag *string) string {
	if path := strings.TrimSpace(pathFlag); path != "" {
		return path
	}
	if rootConfigFlag != nil {
		return strings.TrimSpace(*rootConfigFlag)
	}
	return ""
}

func newConfigInitCommand(rootConfigFlag *string) *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := resolveConfigPath(targetPath, rootConfigFlag)
			if target == "" {
				target = config.DefaultPath()
			}

			if err := config.WriteSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", config.ExpandHome(target))
			fmt.Fprintln(out, "Edit library.paths to point at your music folders, then run 'raazctl scan'.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigValidateCommand(rootConfigFlag *string) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath(configPath, rootConfigFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Library paths: %d\n", len(cfg.Library.Paths))
			fmt.Fprintf(out, "Catalog database: %s\n", cfg.DatabaseFile())
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "path", "p", "", "Configuration file to validate")
	return cmd
}

func newConfigShowCommand(rootConfigFlag *string) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath(configPath, rootConfigFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			rows := [][]string{
				{"library.paths", strings.Join(cfg.Library.Paths, ", ")},
				{"library.exclude_contains", strings.Join(cfg.Library.ExcludeContains, ", ")},
				{"library.recent_limit", fmt.Sprintf("%d", cfg.Library.RecentLimit)},
				{"storage.data_dir", cfg.Storage.DataDir},
				{"audio.sample_rate", fmt.Sprintf("%d", cfg.Audio.SampleRate)},
				{"audio.buffer_millis", fmt.Sprintf("%d", cfg.Audio.BufferMillis)},
				{"logging.level", cfg.Logging.Level},
				{"logging.format", cfg.Logging.Format},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "path", "p", "", "Configuration file to show")
	return cmd
}
