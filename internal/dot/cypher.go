package dot

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/persistorai/dotwalk/internal/models"
)

// CypherStats reports what WriteCypher emitted.
type CypherStats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// WriteCypher writes a Cypher import script for the first limit declared edges of g
// (all edges when limit is 0). Nodes used by those edges are merged first, sorted by id.
func WriteCypher(w io.Writer, g *models.Graph, limit int) (CypherStats, error) {
	edges := g.Edges
	if limit > 0 && len(edges) > limit {
		edges = edges[:limit]
	}

	used := make(map[models.NodeID]struct{}, len(edges)*2)
	for _, e := range edges {
		used[e.From] = struct{}{}
		used[e.To] = struct{}{}
	}

	ids := make([]models.NodeID, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	labeler := NewLabeler(g)
	for _, id := range ids {
		name, _ := labeler.LabelFor(id)
		if _, err := fmt.Fprintf(w, "MERGE (n:Dataset {id: %s}) SET n.name = %s;\n", cypherString(string(id)), cypherString(name)); err != nil {
			return CypherStats{}, fmt.Errorf("writing node %s: %w", id, err)
		}
	}

	for _, e := range edges {
		rel := "[:TRAINED_ON]"
		if e.Label != "" {
			rel = "[:TRAINED_ON {type: " + cypherString(e.Label) + "}]"
		}

		if _, err := fmt.Fprintf(w, "MATCH (a:Dataset {id: %s}), (b:Dataset {id: %s}) MERGE (a)-%s->(b);\n",
			cypherString(string(e.From)), cypherString(string(e.To)), rel); err != nil {
			return CypherStats{}, fmt.Errorf("writing edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return CypherStats{Nodes: len(ids), Edges: len(edges)}, nil
}

// cypherString quotes s as a double-quoted Cypher string literal. Control and other
// non-printable characters become \uXXXX escapes; invalid UTF-8 becomes U+FFFD.
func cypherString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if unicode.IsPrint(r) {
				b.WriteRune(r)
				continue
			}

			if r1, r2 := utf16.EncodeRune(r); r1 != unicode.ReplacementChar {
				fmt.Fprintf(&b, `\u%04X\u%04X`, r1, r2)
				continue
			}

			fmt.Fprintf(&b, `\u%04X`, r)
		}
	}

	b.WriteByte('"')

	return b.String()
}
