package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/dotwalk/internal/httputil"
	"github.com/persistorai/dotwalk/internal/metrics"
	"github.com/persistorai/dotwalk/internal/models"
	"github.com/persistorai/dotwalk/internal/service"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeNotFound          = "not_found"
	ErrCodeStartNotFound     = "start_node_not_found"
	ErrCodeNoGraphLoaded     = "no_graph_loaded"
	ErrCodeSourceUnavailable = "source_unavailable"
	ErrCodeInternalError     = "internal_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// startNodeDetails lets callers offer the user alternatives.
type startNodeDetails struct {
	Direction  models.Direction `json:"direction"`
	Candidates []models.NodeID  `json:"candidates"`
}

// respondServiceError maps a GraphService error to a status and code. Only
// unexpected errors are logged, under action.
func respondServiceError(c *gin.Context, log *logrus.Logger, err error, action string) {
	var startErr *models.StartNodeError

	switch {
	case errors.As(err, &startErr):
		metrics.ErrorsTotal.WithLabelValues(ErrCodeStartNotFound).Inc()
		httputil.RespondErrorDetails(c, http.StatusNotFound, ErrCodeStartNotFound, startErr.Error(),
			startNodeDetails{Direction: startErr.Direction, Candidates: startErr.Candidates})
	case service.IsClientError(err):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, models.ErrNoGraphLoaded):
		respondError(c, http.StatusServiceUnavailable, ErrCodeNoGraphLoaded, "no graph loaded")
	case errors.Is(err, models.ErrSourceUnavailable):
		// The cause names local paths and upstream responses; it stays in the log.
		log.WithError(err).Warn(action)
		respondError(c, http.StatusBadGateway, ErrCodeSourceUnavailable, "graph source unavailable")
	default:
		log.WithError(err).Error(action)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
