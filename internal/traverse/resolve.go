// Package traverse resolves start nodes and runs depth-bounded traversals over adjacency.
package traverse

import (
	"strings"

	"github.com/persistorai/dotwalk/internal/dot"
	"github.com/persistorai/dotwalk/internal/models"
)

// Resolve finds the node in adj that best matches requested. It tries, in order: an exact
// key, the zero-stripped key, the first key in insertion order that contains or is contained
// in requested (case-insensitive), and finally a node that only appears as a neighbor, for
// which an empty entry is created in adj.
func Resolve(adj *models.Adjacency, requested string) (models.NodeID, bool) {
	exact := models.NodeID(requested)
	if adj.Has(exact) {
		return exact, true
	}

	normalized := models.NodeID(dot.NormalizeID(requested))
	if adj.Has(normalized) {
		return normalized, true
	}

	lower := strings.ToLower(requested)
	for _, key := range adj.Keys() {
		k := strings.ToLower(string(key))
		if strings.Contains(k, lower) || strings.Contains(lower, k) {
			return key, true
		}
	}

	for _, candidate := range []models.NodeID{exact, normalized} {
		if adj.ContainsTarget(candidate) {
			adj.Ensure(candidate)
			return candidate, true
		}
	}

	return "", false
}
