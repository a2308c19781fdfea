package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/persistorai/dotwalk/client"
)

func formatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func formatTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			width := 0
			if i < len(widths) {
				width = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", width, cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// formatSummary prints the human-readable traversal summary.
func formatSummary(w io.Writer, r *client.TraversalReport) {
	upstream := r.Direction == "upstream"

	fmt.Fprintf(w, "Start:      %s", r.Start)
	if r.Requested != "" && r.Requested != r.Start {
		fmt.Fprintf(w, " (requested %q)", r.Requested)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Traversal:  %s %s, max depth %d\n", r.Algorithm, r.Direction, r.MaxDepth)

	if r.Empty {
		if upstream {
			fmt.Fprintf(w, "No upstream models found for %s\n", r.Start)
		} else {
			fmt.Fprintf(w, "No downstream models found for %s\n", r.Start)
		}
		return
	}

	fmt.Fprintf(w, "Nodes:      %d\n", r.Summary.Nodes)
	fmt.Fprintf(w, "Edges:      %d\n", r.Summary.Edges)
	fmt.Fprintf(w, "Levels:     %d\n", r.Summary.Levels)

	extremes := "Terminal nodes"
	if upstream {
		extremes = "Base models"
	}
	fmt.Fprintf(w, "%s (depth %d): %s\n", extremes, r.Summary.MaxDepth, strings.Join(r.Summary.ExtremeNodes, ", "))
	fmt.Fprintf(w, "Average path length: %.2f\n", r.Summary.AvgPathLength)
	fmt.Fprintln(w, r.Summary.Analysis)
}

// statsRows flattens graph stats for table output.
func statsRows(s *client.GraphStats) [][]string {
	return [][]string{
		{"source", s.Source},
		{"forward_nodes", fmt.Sprint(s.ForwardNodes)},
		{"reverse_nodes", fmt.Sprint(s.ReverseNodes)},
		{"edges", fmt.Sprint(s.EdgeCount)},
		{"labels", fmt.Sprint(s.LabelCount)},
		{"sample_nodes", strings.Join(s.SampleNodes, ", ")},
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout for "" or "-", otherwise creates the named file.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}
