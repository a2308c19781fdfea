package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/dotwalk/internal/middleware"
	"github.com/persistorai/dotwalk/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Graph       GraphService
	CORSOrigins []string
	Version     string

	// Hub streams graph events at /events. The route is not registered when nil.
	Hub *ws.Hub

	// TraversalRate is the per-IP requests per second allowed on traversal routes.
	TraversalRate int
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
	globalRate  = 100     // requests per second per IP
	globalBurst = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, globalRate, globalBurst).Handler())
	r.Use(middleware.Prometheus())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	health := NewHealthHandler(deps.Graph, deps.Version)
	graph := NewGraphHandler(deps.Graph, deps.Log)
	traversals := NewTraversalHandler(deps.Graph, deps.Log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	g := api.Group("/graph", middleware.NoStore())
	g.GET("/stats", graph.Stats)
	g.GET("/source", graph.Source)
	g.GET("/cypher", graph.Cypher)
	g.POST("/reload", graph.Reload)

	rate := deps.TraversalRate
	if rate <= 0 {
		rate = 20
	}

	t := api.Group("/traversals", middleware.NewRateLimiter(ctx, float64(rate), rate*2).Handler())
	t.POST("", traversals.Create)
	t.GET("/dot", traversals.Download)

	if deps.Hub != nil {
		api.GET("/events", eventsHandler(ctx, deps.Log, deps.Hub, deps.CORSOrigins))
	}
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
