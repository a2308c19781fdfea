package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/persistorai/dotwalk/internal/api"
	"github.com/persistorai/dotwalk/internal/httputil"
	"github.com/persistorai/dotwalk/internal/service"
	"github.com/persistorai/dotwalk/internal/source"
)

// newSourceRouter wires the real service and loader behind the router, allowing
// only the graph file and the graphs directory.
func newSourceRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	dir := t.TempDir()
	graphPath := filepath.Join(dir, "lineage.dot")
	if err := os.WriteFile(graphPath, []byte("\"A\" -> \"B\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("DB_PASSWORD=hunter2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "graphs"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "graphs", "other.dot"), []byte("\"X\" -> \"Y\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	log := testLogger()
	svc := service.NewGraphService(source.NewLoader(time.Second, log), log, service.Options{
		DefaultMaxDepth: 5,
		MaxDepthLimit:   100,
		Sources:         source.NewAllowlist(graphPath, filepath.Join(dir, "graphs")+"/"),
	})
	if _, err := svc.Load(context.Background(), graphPath); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Graph:       svc,
		CORSOrigins: []string{"http://localhost:8000"},
	}), dir
}

func TestSources_OutsideAllowlistRejected(t *testing.T) {
	r, dir := newSourceRouter(t)
	secret := filepath.Join(dir, "secret.txt")
	missing := filepath.Join(dir, "nope", "shadow")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"reload file", http.MethodPost, "/api/v1/graph/reload", `{"source":"` + secret + `"}`},
		{"reload url", http.MethodPost, "/api/v1/graph/reload", `{"source":"http://169.254.169.254/latest/meta-data/"}`},
		{"traverse file", http.MethodPost, "/api/v1/traversals", `{"start":"A","source":"` + missing + `"}`},
		{"download file", http.MethodGet, "/api/v1/traversals/dot?start=A&source=" + secret, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var body httputil.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Code != api.ErrCodeInvalidRequest || strings.Contains(body.Message, "no such file") {
				t.Errorf("unexpected error body: %+v", body)
			}
		})
	}

	w := doRequest(r, http.MethodGet, "/api/v1/graph/source", "")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "hunter2") {
		t.Errorf("expected the configured graph to remain, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSources_AllowedDirectory(t *testing.T) {
	r, dir := newSourceRouter(t)
	other := filepath.Join(dir, "graphs", "other.dot")

	w := doRequest(r, http.MethodPost, "/api/v1/traversals", `{"start":"X","source":"`+other+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/api/v1/graph/source", "")
	if !strings.Contains(w.Body.String(), `"A" -> "B"`) {
		t.Errorf("expected per-request source to leave the current graph, got %s", w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/v1/graph/reload", `{"source":"`+other+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected reload of allowed source, got %d: %s", w.Code, w.Body.String())
	}
}
