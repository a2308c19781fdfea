package models

import (
	"fmt"
	"strings"
)

// Algorithm selects the traversal strategy.
type Algorithm string

// Supported traversal algorithms.
const (
	DFS Algorithm = "DFS"
	BFS Algorithm = "BFS"
)

// ParseAlgorithm converts user input into an Algorithm. Empty input yields DFS.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "DFS":
		return DFS, nil
	case "BFS":
		return BFS, nil
	default:
		return "", fmt.Errorf("%w: algorithm must be DFS or BFS, got %q", ErrInvalidRequest, s)
	}
}

// Direction selects which adjacency a traversal walks.
type Direction string

// Supported traversal directions.
const (
	Downstream Direction = "downstream"
	Upstream   Direction = "upstream"
)

// ParseDirection converts user input into a Direction. Empty input yields Downstream.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "downstream", "forward":
		return Downstream, nil
	case "upstream", "backward", "reverse":
		return Upstream, nil
	default:
		return "", fmt.Errorf("%w: direction must be downstream or upstream, got %q", ErrInvalidRequest, s)
	}
}

// Edge is a traversal edge record. Level is the depth of the child endpoint.
type Edge struct {
	From  NodeID `json:"from"`
	To    NodeID `json:"to"`
	Level int    `json:"level"`
}

// TraversalResult is produced atomically by one traversal and never mutated afterward.
type TraversalResult struct {
	Order  []NodeID            `json:"order"`
	Edges  []Edge              `json:"edges"`
	Levels map[NodeID]int      `json:"levels"`
	Parent map[NodeID]NodeID   `json:"-"`
	Paths  map[NodeID][]NodeID `json:"paths"`
}

// MaxLevel returns the deepest level in r, or 0 when r has no levels.
func (r *TraversalResult) MaxLevel() int {
	maxLevel := 0
	for _, lvl := range r.Levels {
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	return maxLevel
}

// Extremes returns the nodes at MaxLevel, in visit order.
func (r *TraversalResult) Extremes() []NodeID {
	maxLevel := r.MaxLevel()
	out := make([]NodeID, 0)
	for _, n := range r.Order {
		if lvl, ok := r.Levels[n]; ok && lvl == maxLevel {
			out = append(out, n)
		}
	}
	return out
}

// Steps returns the discovery-path length of n minus one.
func (r *TraversalResult) Steps(n NodeID) int {
	p := r.Paths[n]
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}
