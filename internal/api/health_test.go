package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/persistorai/dotwalk/internal/api"
	"github.com/persistorai/dotwalk/internal/models"
)

func TestLiveness_ReturnsOK(t *testing.T) {
	t.Parallel()

	loadedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := api.NewHealthHandler(&mockGraphService{
		status: models.GraphStatus{Loaded: true, Source: "graphs/lineage.dot", LoadedAt: loadedAt},
	}, "test-v1")

	r := newTestRouter()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["status"] != "ok" || body["version"] != "test-v1" {
		t.Errorf("unexpected status/version: %v", body)
	}

	if body["graph_loaded"] != true || body["source"] != "graphs/lineage.dot" {
		t.Errorf("unexpected graph status: %v", body)
	}

	if body["loaded_at"] != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected loaded_at: %v", body["loaded_at"])
	}
}

func TestLiveness_NoGraph(t *testing.T) {
	t.Parallel()

	h := api.NewHealthHandler(&mockGraphService{}, "test-v1")

	r := newTestRouter()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["graph_loaded"] != false {
		t.Errorf("expected graph_loaded false, got %v", body["graph_loaded"])
	}

	if _, ok := body["loaded_at"]; ok {
		t.Errorf("expected loaded_at to be omitted, got %v", body["loaded_at"])
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		loaded bool
		want   int
	}{
		{name: "graph loaded", loaded: true, want: http.StatusOK},
		{name: "no graph", loaded: false, want: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := api.NewHealthHandler(&mockGraphService{status: models.GraphStatus{Loaded: tc.loaded}}, "v")

			r := newTestRouter()
			r.GET("/ready", h.Readiness)

			if w := doRequest(r, http.MethodGet, "/ready", ""); w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}
