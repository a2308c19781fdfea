package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/persistorai/dotwalk/internal/httputil"
	"github.com/persistorai/dotwalk/internal/metrics"
)

// respondError counts the error code and delegates to httputil.RespondError.
func respondError(c *gin.Context, code int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, code, errCode, message)
}
