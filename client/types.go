package client

import "time"

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	GraphLoaded   bool      `json:"graph_loaded"`
	Source        string    `json:"source,omitempty"`
	LoadedAt      time.Time `json:"loaded_at,omitzero"`
}

// GraphStats summarizes the loaded graph.
type GraphStats struct {
	Source       string   `json:"source"`
	ForwardNodes int      `json:"forward_nodes"`
	ReverseNodes int      `json:"reverse_nodes"`
	EdgeCount    int      `json:"edge_count"`
	LabelCount   int      `json:"label_count"`
	SampleNodes  []string `json:"sample_nodes"`
}

// ReloadRequest is the payload for reloading the graph.
type ReloadRequest struct {
	Source string `json:"source,omitempty"`
}

// TraversalRequest is the payload for running a traversal. Empty fields take server defaults.
type TraversalRequest struct {
	Start     string `json:"start"`
	Algorithm string `json:"algorithm,omitempty"`
	MaxDepth  *int   `json:"max_depth,omitempty"`
	Direction string `json:"direction,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Edge is one traversed edge, oriented in graph direction.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Level int    `json:"level"`
}

// RenderNode is a render-ready visited node.
type RenderNode struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Level   int    `json:"level"`
	Steps   int    `json:"steps"`
	Extreme bool   `json:"extreme"`
}

// TraversalSummary holds headline counts for a traversal.
type TraversalSummary struct {
	Nodes         int      `json:"nodes"`
	Edges         int      `json:"edges"`
	Levels        int      `json:"levels"`
	MaxDepth      int      `json:"max_depth"`
	ExtremeNodes  []string `json:"extreme_nodes"`
	AvgPathLength float64  `json:"avg_path_length"`
	Analysis      string   `json:"analysis"`
}

// TraversalReport is the server's response to a traversal request.
type TraversalReport struct {
	Requested string              `json:"requested"`
	Start     string              `json:"start"`
	Algorithm string              `json:"algorithm"`
	Direction string              `json:"direction"`
	MaxDepth  int                 `json:"max_depth"`
	DOT       string              `json:"dot"`
	Order     []string            `json:"order"`
	Edges     []Edge              `json:"edges"`
	Levels    map[string]int      `json:"levels"`
	Paths     map[string][]string `json:"paths"`
	Nodes     []RenderNode        `json:"nodes"`
	Summary   TraversalSummary    `json:"summary"`
	Empty     bool                `json:"empty"`
	Filename  string              `json:"filename"`
}
