package dot

import (
	"regexp"

	"github.com/persistorai/dotwalk/internal/models"
)

var lineSplitRe = regexp.MustCompile(`\r?\n`)

// Parse builds forward and reverse adjacency plus a label table from text.
// It never fails: lines that declare neither a node nor an edge are skipped.
func Parse(text string) *models.Graph {
	g := models.NewGraph()
	g.Lines = lineSplitRe.Split(text, -1)

	for _, raw := range g.Lines {
		line := ClassifyLine(raw)

		switch line.Kind {
		case LineNode:
			g.Labels[line.ID] = line.Label
			g.Forward.Ensure(line.ID)
			g.Reverse.Ensure(line.ID)
		case LineEdge:
			from := models.NodeID(NormalizeID(string(line.From)))
			to := models.NodeID(NormalizeID(string(line.To)))

			g.Forward.Append(from, to)
			g.Forward.Ensure(to)
			g.Reverse.Append(to, from)
			g.Reverse.Ensure(from)
			g.Edges = append(g.Edges, models.DeclaredEdge{From: from, To: to, Label: line.Label})
		}
	}

	return g
}
