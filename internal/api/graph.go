package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/dotwalk/internal/models"
)

// dotContentType is the media type for Graphviz DOT text.
const dotContentType = "text/vnd.graphviz; charset=utf-8"

// GraphHandler serves endpoints about the loaded graph itself.
type GraphHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler.
func NewGraphHandler(svc GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// Stats handles GET /graph/stats.
func (h *GraphHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "getting graph stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Source handles GET /graph/source and returns the raw DOT text.
func (h *GraphHandler) Source(c *gin.Context) {
	text, locator, err := h.svc.Source(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "reading graph source")
		return
	}

	c.Header("X-Graph-Source", locator)
	c.Data(http.StatusOK, dotContentType, []byte(text))
}

// Reload handles POST /graph/reload. An empty body re-reads the current source.
func (h *GraphHandler) Reload(c *gin.Context) {
	var req models.ReloadRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
			return
		}
	}

	stats, err := h.svc.Reload(c.Request.Context(), req.Source)
	if err != nil {
		respondServiceError(c, h.log, err, "reloading graph")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Cypher handles GET /graph/cypher?limit=N.
func (h *GraphHandler) Cypher(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "limit must be a non-negative integer")
			return
		}
		limit = v
	}

	var buf bytes.Buffer
	stats, err := h.svc.Cypher(c.Request.Context(), &buf, limit)
	if err != nil {
		respondServiceError(c, h.log, err, "exporting cypher")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="graph.cypher"`)
	c.Header("X-Cypher-Nodes", strconv.Itoa(stats.Nodes))
	c.Header("X-Cypher-Edges", strconv.Itoa(stats.Edges))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
