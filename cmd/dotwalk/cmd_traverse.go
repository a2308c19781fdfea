package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/persistorai/dotwalk/client"
)

type traverseOpts struct {
	algorithm string
	direction string
	depth     int
	depthSet  bool
	format    string
	output    string
}

func newTraverseCmd() *cobra.Command {
	var o traverseOpts
	cmd := &cobra.Command{
		Use:   "traverse <start>",
		Short: "Walk the graph from a start model and render the reachable subgraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch o.format {
			case "dot", "json", "summary":
			default:
				return fmt.Errorf("unknown format %q: want dot, json or summary", o.format)
			}

			o.depthSet = cmd.Flags().Changed("depth")
			req := buildTraversalRequest(args[0], o, cmd.Flags().Changed("source"))

			ctx := cmd.Context()

			b, err := newBackend(ctx, cliLogger())
			if err != nil {
				return err
			}

			report, err := b.Traverse(ctx, req)
			if err != nil {
				return err
			}

			out, err := openOutput(o.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := writeReport(out, report, o.format); err != nil {
				out.Close() //nolint:errcheck // write error wins.
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVarP(&o.algorithm, "algorithm", "a", "", "DFS or BFS (default DFS)")
	cmd.Flags().StringVarP(&o.direction, "direction", "d", "", "downstream or upstream (default downstream)")
	cmd.Flags().IntVar(&o.depth, "depth", 0, "maximum depth (default: server or config default)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "dot", "output format: dot|json|summary")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file, - for stdout")
	return cmd
}

// buildTraversalRequest merges flags with config file defaults. A remote server only
// receives a source when it was given explicitly on the command line.
func buildTraversalRequest(start string, o traverseOpts, explicitSource bool) *client.TraversalRequest {
	req := &client.TraversalRequest{
		Start:     strings.TrimSpace(start),
		Algorithm: o.algorithm,
		Direction: o.direction,
	}
	if req.Algorithm == "" {
		req.Algorithm = fileDefaults.Algorithm
	}
	if req.Direction == "" {
		req.Direction = fileDefaults.Direction
	}
	if o.depthSet {
		depth := o.depth
		req.MaxDepth = &depth
	} else if fileDefaults.Depth != nil {
		depth := *fileDefaults.Depth
		req.MaxDepth = &depth
	}
	if flagURL != "" && explicitSource {
		req.Source = flagSource
	}
	return req
}

func writeReport(w io.Writer, r *client.TraversalReport, format string) error {
	switch format {
	case "json":
		return formatJSON(w, r)
	case "summary":
		formatSummary(w, r)
		return nil
	default:
		_, err := io.WriteString(w, r.DOT)
		return err
	}
}
