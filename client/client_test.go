package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL+"/", WithUserAgent("dotwalk-test"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	var gotUA string
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "0.3.0", GraphLoaded: true, Source: "g.dot"})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" || !resp.GraphLoaded || resp.Source != "g.dot" {
		t.Errorf("unexpected health: %+v", resp)
	}
	if gotUA != "dotwalk-test" {
		t.Errorf("user agent: got %q", gotUA)
	}
}

func TestStatsAndReload(t *testing.T) {
	var reloadBody ReloadRequest
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/graph/stats": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, GraphStats{ForwardNodes: 12, ReverseNodes: 12, EdgeCount: 20})
		},
		"POST /api/v1/graph/reload": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&reloadBody) //nolint:errcheck
			jsonResponse(w, 200, GraphStats{Source: reloadBody.Source, ForwardNodes: 3})
		},
	})
	ctx := context.Background()

	stats, err := c.Stats(ctx)
	if err != nil || stats.ForwardNodes != 12 || stats.EdgeCount != 20 {
		t.Fatalf("Stats: err=%v stats=%+v", err, stats)
	}

	stats, err = c.Reload(ctx, "other.dot")
	if err != nil || stats.Source != "other.dot" || reloadBody.Source != "other.dot" {
		t.Fatalf("Reload: err=%v stats=%+v", err, stats)
	}
}

func TestTraverse(t *testing.T) {
	var got TraversalRequest
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/traversals": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
			jsonResponse(w, 200, TraversalReport{
				Start:    "A",
				Order:    []string{"A", "B", "C"},
				Edges:    []Edge{{From: "A", To: "B", Level: 1}, {From: "A", To: "C", Level: 1}},
				Levels:   map[string]int{"A": 0, "B": 1, "C": 1},
				Filename: "Forward_analysis_of_model_A.dot",
			})
		},
	})

	depth := 2
	report, err := c.Traverse(context.Background(), &TraversalRequest{Start: "A", Algorithm: "BFS", MaxDepth: &depth})
	if err != nil {
		t.Fatalf("Traverse() error: %v", err)
	}
	if got.Start != "A" || got.Algorithm != "BFS" || got.MaxDepth == nil || *got.MaxDepth != 2 {
		t.Errorf("request body: %+v", got)
	}
	if len(report.Order) != 3 || report.Levels["C"] != 1 || report.Edges[0].To != "B" {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestTraverseDOT(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/traversals/dot": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("start") != "A" || q.Get("direction") != "upstream" || q.Get("max_depth") != "0" {
				http.Error(w, "bad query "+r.URL.RawQuery, http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Disposition", `attachment; filename="Backward_analysis_of_model_A.dot"`)
			w.Write([]byte("digraph \"Backward_Subgraph_Analysis_of_A\" {\n}\n")) //nolint:errcheck
		},
	})

	depth := 0
	text, name, err := c.TraverseDOT(context.Background(), &TraversalRequest{Start: "A", Direction: "upstream", MaxDepth: &depth})
	if err != nil {
		t.Fatalf("TraverseDOT() error: %v", err)
	}
	if name != "Backward_analysis_of_model_A.dot" || text != "digraph \"Backward_Subgraph_Analysis_of_A\" {\n}\n" {
		t.Errorf("got %q %q", name, text)
	}
}

func TestGraphSourceAndCypher(t *testing.T) {
	var gotLimit string
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/graph/source": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-Graph-Source", "g.dot")
			w.Write([]byte(`"a" -> "b"`)) //nolint:errcheck
		},
		"GET /api/v1/graph/cypher": func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			w.Write([]byte("MERGE ...")) //nolint:errcheck
		},
	})
	ctx := context.Background()

	text, locator, err := c.Graph.Source(ctx)
	if err != nil || text != `"a" -> "b"` || locator != "g.dot" {
		t.Fatalf("Source: err=%v text=%q locator=%q", err, text, locator)
	}

	script, err := c.Graph.Cypher(ctx, 50)
	if err != nil || script != "MERGE ..." || gotLimit != "50" {
		t.Fatalf("Cypher: err=%v script=%q limit=%q", err, script, gotLimit)
	}
}

func TestAPIError(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/traversals": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]any{
				"code":       "start_node_not_found",
				"message":    `start node "gpt-9" not found in downstream graph`,
				"request_id": "rid",
				"details":    map[string]any{"direction": "downstream", "candidates": []string{"llama-2", "vicuna"}},
			})
		},
		"GET /api/v1/graph/stats": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 503, map[string]string{"code": "no_graph_loaded", "message": "no graph loaded"})
		},
		"GET /api/v1/graph/source": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("slow down")) //nolint:errcheck
		},
	})
	ctx := context.Background()

	_, err := c.Traverse(ctx, &TraversalRequest{Start: "gpt-9"})
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got: %v", err)
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if cands := apiErr.Candidates(); len(cands) != 2 || cands[0] != "llama-2" {
		t.Errorf("candidates: %v", cands)
	}

	_, err = c.Stats(ctx)
	if !IsNoGraphLoaded(err) || IsNotFound(err) {
		t.Errorf("expected no graph loaded, got: %v", err)
	}

	_, _, err = c.Graph.Source(ctx)
	if !IsRateLimited(err) {
		t.Errorf("expected rate limited, got: %v", err)
	}
	if apiErr, ok := err.(*APIError); !ok || apiErr.Code != "unknown" || apiErr.Message != "slow down" {
		t.Errorf("expected raw body fallback, got: %v", err)
	}
}
