package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show node and edge counts for the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "table" {
				return fmt.Errorf("unknown format %q: want json or table", format)
			}

			b, err := newBackend(cmd.Context(), cliLogger())
			if err != nil {
				return err
			}

			stats, err := b.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if format == "table" {
				formatTable(cmd.OutOrStdout(), []string{"STAT", "VALUE"}, statsRows(stats))
				return nil
			}
			return formatJSON(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: json|table")
	return cmd
}
