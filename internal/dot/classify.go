// Package dot parses and renders the line-oriented DOT subset used for model lineage graphs.
package dot

import (
	"regexp"
	"strings"

	"github.com/persistorai/dotwalk/internal/models"
)

// LineKind tags the result of ClassifyLine.
type LineKind int

// Line kinds.
const (
	LineIgnored LineKind = iota
	LineNode
	LineEdge
)

func (k LineKind) String() string {
	switch k {
	case LineNode:
		return "node"
	case LineEdge:
		return "edge"
	default:
		return "ignored"
	}
}

// Line is one classified input line. For LineNode, ID and Label are set. For LineEdge,
// From and To are the raw (unnormalized) endpoints and Label is the optional edge label.
type Line struct {
	Kind  LineKind
	ID    models.NodeID
	From  models.NodeID
	To    models.NodeID
	Label string
}

var (
	headerRe     = regexp.MustCompile(`\bdigraph\b|\bgraph\b`)
	nodeQuotedRe = regexp.MustCompile(`^"([^"]+)"\s*\[.*label="([^"]+)".*\]`)
	nodeBareRe   = regexp.MustCompile(`^([\w./-]+)\s*\[.*label="([^"]+)".*\]`)
	edgeQuotedRe = regexp.MustCompile(`"([^"]+)"\s*->\s*"([^"]+)"`)
	edgeBareRe   = regexp.MustCompile(`([\w./-]+)\s*->\s*([\w./-]+)`)
	labelAttrRe  = regexp.MustCompile(`label="([^"]*)"`)
	zeroPadRe    = regexp.MustCompile(`^0+\d+$`)
)

// ClassifyLine trims raw and reports whether it declares a node, an edge, or neither.
func ClassifyLine(raw string) Line {
	line := strings.TrimSpace(raw)
	if line == "" || line == "{" || line == "}" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
		return Line{Kind: LineIgnored}
	}

	if headerRe.MatchString(line) {
		return Line{Kind: LineIgnored}
	}

	if m := nodeQuotedRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineNode, ID: models.NodeID(m[1]), Label: m[2]}
	}

	if m := nodeBareRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineNode, ID: models.NodeID(m[1]), Label: m[2]}
	}

	loc := edgeQuotedRe.FindStringSubmatchIndex(line)
	if loc == nil {
		loc = edgeBareRe.FindStringSubmatchIndex(line)
	}

	if loc == nil {
		return Line{Kind: LineIgnored}
	}

	edge := Line{
		Kind: LineEdge,
		From: models.NodeID(strings.TrimSpace(line[loc[2]:loc[3]])),
		To:   models.NodeID(strings.TrimSpace(line[loc[4]:loc[5]])),
	}

	if m := labelAttrRe.FindStringSubmatch(line[loc[1]:]); m != nil {
		edge.Label = m[1]
	}

	return edge
}

// NormalizeID strips leading zeros from an all-digit identifier that starts with a zero.
// An all-zero identifier collapses to "0". Any other identifier is returned unchanged.
func NormalizeID(id string) string {
	if !zeroPadRe.MatchString(id) {
		return id
	}

	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" {
		return "0"
	}

	return trimmed
}
