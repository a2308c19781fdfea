// Package metrics defines Prometheus metrics for dotwalk.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dotwalk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotwalk_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotwalk_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	TraversalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotwalk_traversals_total",
			Help: "Traversals by algorithm, direction and outcome",
		},
		[]string{"algorithm", "direction", "outcome"},
	)

	TraversalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dotwalk_traversal_duration_seconds",
			Help:    "Time spent resolving, traversing and rendering",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"algorithm"},
	)

	NodeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dotwalk_graph_nodes",
			Help: "Nodes in the loaded graph",
		},
	)

	EdgeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dotwalk_graph_edges",
			Help: "Edges in the loaded graph",
		},
	)

	ReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotwalk_graph_reloads_total",
			Help: "Graph source loads by result",
		},
		[]string{"result"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dotwalk_ws_connections",
			Help: "Active event stream connections",
		},
	)

	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotwalk_events_published_total",
			Help: "Graph events published to the event stream",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		TraversalsTotal, TraversalDuration,
		NodeCount, EdgeCount, ReloadsTotal,
		WSConnections, EventsTotal,
	)
}
