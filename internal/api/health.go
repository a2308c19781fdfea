// Package api provides HTTP handlers for dotwalk.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	graph     GraphService
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
func NewHealthHandler(graph GraphService, version string) *HealthHandler {
	return &HealthHandler{
		graph:     graph,
		version:   version,
		startTime: time.Now(),
	}
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	GraphLoaded   bool      `json:"graph_loaded"`
	Source        string    `json:"source,omitempty"`
	LoadedAt      time.Time `json:"loaded_at,omitzero"`
}

// Liveness handles GET /api/v1/health. It succeeds whether or not a graph is loaded.
func (h *HealthHandler) Liveness(c *gin.Context) {
	st := h.graph.Status()

	c.JSON(http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		GraphLoaded:   st.Loaded,
		Source:        st.Source,
		LoadedAt:      st.LoadedAt,
	})
}

// Readiness handles GET /api/v1/ready. Traversals cannot run until a graph is loaded.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.graph.Status().Loaded {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": gin.H{"graph": "not_loaded"}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": gin.H{"graph": "ok"}})
}
