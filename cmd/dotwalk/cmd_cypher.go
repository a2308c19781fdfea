package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

func newCypherCmd() *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "cypher",
		Short: "Export the graph as a Cypher import script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}

			b, err := newBackend(cmd.Context(), cliLogger())
			if err != nil {
				return err
			}

			script, err := b.Cypher(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := io.WriteString(out, script); err != nil {
				out.Close() //nolint:errcheck // write error wins.
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "export only the first N edges (0 for all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")
	return cmd
}
