package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/dotwalk/internal/models"
)

// TraversalHandler runs traversals against the loaded graph.
type TraversalHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewTraversalHandler creates a TraversalHandler.
func NewTraversalHandler(svc GraphService, log *logrus.Logger) *TraversalHandler {
	return &TraversalHandler{svc: svc, log: log}
}

// Create handles POST /traversals and returns the full report as JSON.
func (h *TraversalHandler) Create(c *gin.Context) {
	var req models.TraversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	report, err := h.svc.Traverse(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "running traversal")
		return
	}

	c.JSON(http.StatusOK, report)
}

// Download handles GET /traversals/dot and returns the rendered DOT as an attachment.
func (h *TraversalHandler) Download(c *gin.Context) {
	req := models.TraversalRequest{
		Start:     c.Query("start"),
		Algorithm: models.Algorithm(c.Query("algorithm")),
		Direction: models.Direction(c.Query("direction")),
		Source:    c.Query("source"),
	}

	if s := c.Query("max_depth"); s != "" {
		depth, err := strconv.Atoi(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "max_depth must be an integer")
			return
		}
		req.MaxDepth = &depth
	}

	report, err := h.svc.Traverse(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "running traversal")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, dotContentType, []byte(report.DOT))
}
