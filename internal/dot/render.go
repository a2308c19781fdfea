package dot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/persistorai/dotwalk/internal/models"
)

var levelColors = []string{
	"red", "orange", "yellow", "lightgreen", "lightblue",
	"lightpink", "lavender", "lightcyan", "lightgray",
}

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Sanitize replaces every character outside [a-zA-Z0-9._-] with an underscore.
func Sanitize(s string) string {
	return unsafeNameRe.ReplaceAllString(s, "_")
}

// RenderInput is the traversal output handed to Render.
type RenderInput struct {
	Result    *models.TraversalResult
	Algorithm models.Algorithm
	Start     models.NodeID
	Direction models.Direction
}

// directionWords holds the direction-specific vocabulary of rendered output.
type directionWords struct {
	title    string
	extremes string
	paths    string
	marker   string
}

func wordsFor(dir models.Direction) directionWords {
	if dir == models.Upstream {
		return directionWords{title: "Backward", extremes: "Base models", paths: "Paths to base models", marker: "[BASE]"}
	}

	return directionWords{title: "Forward", extremes: "Terminal nodes", paths: "Paths to terminal nodes", marker: "[TERMINAL]"}
}

// Render writes a traversal result as an annotated digraph. The output is deterministic
// for a given input and parses back into the same edge set.
func Render(in RenderInput, labels LabelSource) string {
	res := in.Result
	if res == nil {
		res = &models.TraversalResult{}
	}

	words := wordsFor(in.Direction)
	maxLevel := res.MaxLevel()
	extremes := res.Extremes()

	var b strings.Builder

	fmt.Fprintf(&b, "digraph \"%s_Subgraph_Analysis_of_%s\" {\n", words.title, Sanitize(string(in.Start)))
	b.WriteString("    node [shape=box, style=filled];\n")
	b.WriteString("    edge [color=blue];\n\n")

	fmt.Fprintf(&b, "    // Nodes visited: %d\n", len(res.Order))
	fmt.Fprintf(&b, "    // Edges found: %d\n", len(res.Edges))
	fmt.Fprintf(&b, "    // Maximum depth: %d levels\n", maxLevel)
	fmt.Fprintf(&b, "    // %s: %s\n\n", words.extremes, joinIDs(extremes, ", "))

	if len(extremes) > 0 {
		fmt.Fprintf(&b, "    // %s:\n", words.paths)
		for _, n := range extremes {
			p, ok := res.Paths[n]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "    // %s: %s (%d steps)\n", n, joinIDs(p, " -> "), len(p)-1)
		}
		b.WriteString("\n")
	}

	writeRankGroups(&b, res, maxLevel)

	for _, n := range res.Order {
		level := res.Levels[n]
		steps := res.Steps(n)
		extreme := level == maxLevel

		label := fmt.Sprintf(`%s\nLevel: %d`, DisplayName(labels, n), level)
		if steps > 0 {
			label += fmt.Sprintf(`\nSteps: %d`, steps)
		}

		style := ""
		if extreme {
			label += `\n` + words.marker
			style = `, style="filled,bold", penwidth=3`
		}

		fmt.Fprintf(&b, "    \"%s\" [fillcolor=%s, label=\"%s\"%s];\n", n, levelColors[level%len(levelColors)], label, style)
	}

	b.WriteString("\n    // Edges with level labels\n")

	for _, e := range UniqueEdges(res.Edges) {
		fmt.Fprintf(&b, "    \"%s\" -> \"%s\" [label=\"L%d\"];\n", e.From, e.To, e.Level)
	}

	b.WriteString("}\n")

	return b.String()
}

func writeRankGroups(b *strings.Builder, res *models.TraversalResult, maxLevel int) {
	groups := make(map[int][]models.NodeID)
	for _, n := range res.Order {
		lvl, ok := res.Levels[n]
		if !ok {
			continue
		}
		groups[lvl] = append(groups[lvl], n)
	}

	for lvl := 0; lvl <= maxLevel; lvl++ {
		members := groups[lvl]
		if len(members) == 0 {
			continue
		}

		fmt.Fprintf(b, "    // Level %d (%d nodes)\n", lvl, len(members))
		b.WriteString("    { rank=same; ")
		for _, n := range members {
			fmt.Fprintf(b, "\"%s\"; ", n)
		}
		b.WriteString("}\n")
	}

	b.WriteString("\n")
}

// UniqueEdges returns the distinct (from, to) pairs of edges, keeping first instances in order.
func UniqueEdges(edges []models.Edge) []models.Edge {
	seen := make(map[[2]models.NodeID]struct{}, len(edges))
	out := make([]models.Edge, 0, len(edges))

	for _, e := range edges {
		key := [2]models.NodeID{e.From, e.To}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}

	return out
}

// Filename returns the download filename for a rendered traversal.
func Filename(start string, dir models.Direction) string {
	safe := strings.Join(strings.Fields(start), "_")
	safe = nonWordRe.ReplaceAllString(safe, "_")
	if safe == "" {
		safe = "model"
	}

	return fmt.Sprintf("%s_analysis_of_model_%s.dot", wordsFor(dir).title, safe)
}

var nonWordRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func joinIDs(ids []models.NodeID, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}

	return strings.Join(parts, sep)
}
