package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naddyballia/Raaz-Music/internal/app"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app.GetVersionInfo().FullString())
			return nil
		},
	}
}
