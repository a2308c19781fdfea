// Package models defines the data types shared by the parser, traversal engine and API layers.
package models

import "time"

// NodeID identifies a node in a parsed graph.
type NodeID string

// String returns the raw identifier.
func (id NodeID) String() string { return string(id) }

// Adjacency maps node identifiers to their ordered neighbor lists.
// Keys keep insertion order; neighbor lists keep declaration order and duplicates.
type Adjacency struct {
	keys      []NodeID
	neighbors map[NodeID][]NodeID
}

// NewAdjacency creates an empty Adjacency.
func NewAdjacency() *Adjacency {
	return &Adjacency{neighbors: make(map[NodeID][]NodeID)}
}

// Ensure creates an empty entry for id if none exists.
func (a *Adjacency) Ensure(id NodeID) {
	if _, ok := a.neighbors[id]; ok {
		return
	}
	a.keys = append(a.keys, id)
	a.neighbors[id] = []NodeID{}
}

// Append adds to to the neighbor list of from, creating the entry if needed.
func (a *Adjacency) Append(from, to NodeID) {
	a.Ensure(from)
	a.neighbors[from] = append(a.neighbors[from], to)
}

// Has reports whether id is a key.
func (a *Adjacency) Has(id NodeID) bool {
	_, ok := a.neighbors[id]
	return ok
}

// Neighbors returns the neighbor list of id, or nil when id is not a key.
func (a *Adjacency) Neighbors(id NodeID) []NodeID {
	return a.neighbors[id]
}

// Keys returns all keys in insertion order.
func (a *Adjacency) Keys() []NodeID {
	return append([]NodeID(nil), a.keys...)
}

// Len returns the number of keys.
func (a *Adjacency) Len() int {
	return len(a.keys)
}

// EdgeCount returns the total length of all neighbor lists.
func (a *Adjacency) EdgeCount() int {
	n := 0
	for _, nbs := range a.neighbors {
		n += len(nbs)
	}
	return n
}

// ContainsTarget reports whether id appears in any neighbor list.
func (a *Adjacency) ContainsTarget(id NodeID) bool {
	for _, key := range a.keys {
		for _, nb := range a.neighbors[key] {
			if nb == id {
				return true
			}
		}
	}
	return false
}

// LabelTable maps node identifiers to declared display labels.
// A missing entry means no label was declared.
type LabelTable map[NodeID]string

// DeclaredEdge is one edge declaration in source order.
type DeclaredEdge struct {
	From  NodeID `json:"from"`
	To    NodeID `json:"to"`
	Label string `json:"label,omitempty"`
}

// Graph is the parsed state of one graph source. It is built once per parse and
// replaced wholesale; callers pass it explicitly to every core operation.
type Graph struct {
	Source  string
	Forward *Adjacency
	Reverse *Adjacency
	Labels  LabelTable
	Lines   []string
	Edges   []DeclaredEdge
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Forward: NewAdjacency(),
		Reverse: NewAdjacency(),
		Labels:  make(LabelTable),
	}
}

// For returns the adjacency walked by a traversal in the given direction.
func (g *Graph) For(dir Direction) *Adjacency {
	if dir == Upstream {
		return g.Reverse
	}
	return g.Forward
}

// GraphStats summarizes a loaded graph.
type GraphStats struct {
	Source       string   `json:"source"`
	ForwardNodes int      `json:"forward_nodes"`
	ReverseNodes int      `json:"reverse_nodes"`
	EdgeCount    int      `json:"edge_count"`
	LabelCount   int      `json:"label_count"`
	SampleNodes  []NodeID `json:"sample_nodes"`
}

// sampleSize caps the node sample shown in stats and lookup errors.
const sampleSize = 10

// GraphStatus describes the currently loaded graph.
type GraphStatus struct {
	Loaded   bool      `json:"loaded"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// Stats computes summary counts for g.
func (g *Graph) Stats() GraphStats {
	return GraphStats{
		Source:       g.Source,
		ForwardNodes: g.Forward.Len(),
		ReverseNodes: g.Reverse.Len(),
		EdgeCount:    g.Forward.EdgeCount(),
		LabelCount:   len(g.Labels),
		SampleNodes:  SampleKeys(g.Forward, sampleSize),
	}
}

// SampleKeys returns up to n keys of a in enumeration order.
func SampleKeys(a *Adjacency, n int) []NodeID {
	keys := a.Keys()
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
