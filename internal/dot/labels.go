package dot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/persistorai/dotwalk/internal/models"
)

// LabelSource resolves node identifiers to display labels.
type LabelSource interface {
	LabelFor(id models.NodeID) (string, bool)
}

var (
	digitsRe     = regexp.MustCompile(`^\d+$`)
	paddedEdgeRe = regexp.MustCompile(`"0*(\d+)"\s*->\s*"0*(\d+)"`)
)

// padWidth is the fixed width of zero-padded numeric ids in generated graphs.
const padWidth = 7

// Labeler looks up display labels in a parsed graph.
type Labeler struct {
	labels models.LabelTable
	lines  []string
}

// NewLabeler creates a Labeler over g's label table and raw lines.
func NewLabeler(g *models.Graph) *Labeler {
	return &Labeler{labels: g.Labels, lines: g.Lines}
}

// LabelFor returns the declared label for id. It falls back to scanning raw lines for a
// node declaration of id, then for numeric ids to zero-padded ids on edge lines.
// The boolean is false when no label is found; callers display the raw id instead.
func (l *Labeler) LabelFor(id models.NodeID) (string, bool) {
	if label, ok := l.labels[id]; ok && label != "" {
		return label, true
	}

	if label, ok := l.scanDeclarations(id); ok {
		return label, true
	}

	return l.scanPadded(id)
}

func (l *Labeler) scanDeclarations(id models.NodeID) (string, bool) {
	re, err := regexp.Compile(`^\s*"?` + regexp.QuoteMeta(string(id)) + `"?\s*\[.*label="([^"]+)".*\]`)
	if err != nil {
		return "", false
	}

	for _, line := range l.lines {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}

	return "", false
}

func (l *Labeler) scanPadded(id models.NodeID) (string, bool) {
	raw := string(id)
	if !digitsRe.MatchString(raw) {
		return "", false
	}

	padded := strings.Repeat("0", max(0, padWidth-len(raw))) + raw
	needle := fmt.Sprintf("%q", padded)

	for _, line := range l.lines {
		if !strings.Contains(line, needle) {
			continue
		}

		m := paddedEdgeRe.FindStringSubmatch(line)
		if m == nil || (m[1] != raw && m[2] != raw) {
			continue
		}

		// Node declarations keep their padding, so the label may live under either form.
		for _, key := range []string{raw, padded} {
			if label, ok := l.labels[models.NodeID(key)]; ok && label != "" {
				return label, true
			}
		}
	}

	return "", false
}

// DisplayName returns the label for id from src, or id itself when none is known.
func DisplayName(src LabelSource, id models.NodeID) string {
	if src != nil {
		if label, ok := src.LabelFor(id); ok {
			return label
		}
	}

	return string(id)
}
