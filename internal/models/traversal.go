package models

import "strings"

// maxStartLen bounds the start node identifier accepted from callers.
const maxStartLen = 255

// TraversalRequest is the payload for running a traversal.
type TraversalRequest struct {
	Start     string    `json:"start"`
	Algorithm Algorithm `json:"algorithm,omitempty"`
	MaxDepth  *int      `json:"max_depth,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Source    string    `json:"source,omitempty"`
}

// Validate checks required fields and canonicalizes Algorithm and Direction.
func (r *TraversalRequest) Validate() error {
	r.Start = strings.TrimSpace(r.Start)
	if r.Start == "" {
		return ErrMissingStart
	}

	if len(r.Start) > maxStartLen {
		return ErrFieldTooLong("start", maxStartLen)
	}

	algo, err := ParseAlgorithm(string(r.Algorithm))
	if err != nil {
		return err
	}
	r.Algorithm = algo

	dir, err := ParseDirection(string(r.Direction))
	if err != nil {
		return err
	}
	r.Direction = dir

	if r.MaxDepth != nil && *r.MaxDepth < 0 {
		return ErrNegativeDepth
	}

	return nil
}

// ReloadRequest asks the server to re-read its graph source, optionally switching to a new one.
type ReloadRequest struct {
	Source string `json:"source,omitempty"`
}

// RenderNode is a render-ready view of one visited node.
type RenderNode struct {
	ID      NodeID `json:"id"`
	Label   string `json:"label"`
	Level   int    `json:"level"`
	Steps   int    `json:"steps"`
	Extreme bool   `json:"extreme"`
}

// TraversalSummary holds the counts shown to users after a traversal.
type TraversalSummary struct {
	Nodes         int      `json:"nodes"`
	Edges         int      `json:"edges"`
	Levels        int      `json:"levels"`
	MaxDepth      int      `json:"max_depth"`
	ExtremeNodes  []NodeID `json:"extreme_nodes"`
	AvgPathLength float64  `json:"avg_path_length"`
	Analysis      string   `json:"analysis"`
}

// TraversalReport is the full outcome of a traversal request.
type TraversalReport struct {
	Requested string              `json:"requested"`
	Start     NodeID              `json:"start"`
	Algorithm Algorithm           `json:"algorithm"`
	Direction Direction           `json:"direction"`
	MaxDepth  int                 `json:"max_depth"`
	DOT       string              `json:"dot"`
	Order     []NodeID            `json:"order"`
	Edges     []Edge              `json:"edges"`
	Levels    map[NodeID]int      `json:"levels"`
	Paths     map[NodeID][]NodeID `json:"paths"`
	Nodes     []RenderNode        `json:"nodes"`
	Summary   TraversalSummary    `json:"summary"`
	Empty     bool                `json:"empty"`
	Filename  string              `json:"filename"`
}
