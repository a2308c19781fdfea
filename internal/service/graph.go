// Package service holds the loaded graph and runs traversals against it.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/dotwalk/internal/dot"
	"github.com/persistorai/dotwalk/internal/metrics"
	"github.com/persistorai/dotwalk/internal/models"
	"github.com/persistorai/dotwalk/internal/traverse"
)

// SourceLoader is the source-access interface GraphService depends on.
type SourceLoader interface {
	Load(ctx context.Context, locator string) (string, error)
}

// EventPublisher receives graph lifecycle events. ws.Hub satisfies it.
type EventPublisher interface {
	Publish(eventType string, data any)
}

// Event types passed to EventPublisher.
const (
	EventGraphLoaded     = "graph.loaded"
	EventGraphLoadFailed = "graph.load_failed"
)

// loadFailure is the payload of a graph.load_failed event.
type loadFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// SourcePolicy decides which sources a request may name. *source.Allowlist satisfies it.
type SourcePolicy interface {
	Allows(locator string) bool
}

// Options configures a GraphService. Events may be nil. A nil Sources accepts every
// source and is only meant for in-process use where the caller already owns the file system.
type Options struct {
	DefaultMaxDepth int
	MaxDepthLimit   int
	Events          EventPublisher
	Sources         SourcePolicy
}

// GraphService owns the current graph. A load parses fully before swapping the graph in,
// and traversals are serialized because start node resolution may add entries.
type GraphService struct {
	loader SourceLoader
	log    *logrus.Logger
	opts   Options

	mu       sync.Mutex
	graph    *models.Graph
	text     string
	loadedAt time.Time
}

// NewGraphService creates a GraphService with no graph loaded.
func NewGraphService(loader SourceLoader, log *logrus.Logger, opts Options) *GraphService {
	if opts.MaxDepthLimit <= 0 {
		opts.MaxDepthLimit = 100
	}

	return &GraphService{loader: loader, log: log, opts: opts}
}

// Load reads and parses locator, replacing the current graph on success. The locator is
// trusted: request-supplied sources go through Reload or Traverse.
func (s *GraphService) Load(ctx context.Context, locator string) (*models.GraphStats, error) {
	g, text, err := s.read(ctx, locator)
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("failure").Inc()
		s.publish(EventGraphLoadFailed, loadFailure{Source: locator, Error: publicError(err)})
		return nil, err
	}

	s.mu.Lock()
	s.graph = g
	s.text = text
	s.loadedAt = time.Now()
	stats := g.Stats()
	s.mu.Unlock()

	metrics.ReloadsTotal.WithLabelValues("success").Inc()
	metrics.NodeCount.Set(float64(stats.ForwardNodes))
	metrics.EdgeCount.Set(float64(stats.EdgeCount))

	s.log.WithFields(logrus.Fields{
		"source": locator,
		"nodes":  stats.ForwardNodes,
		"edges":  stats.EdgeCount,
		"labels": stats.LabelCount,
	}).Info("graph loaded")

	s.publish(EventGraphLoaded, stats)

	return &stats, nil
}

// publicError hides read failures, which name local paths and upstream responses.
func publicError(err error) string {
	if errors.Is(err, models.ErrSourceUnavailable) {
		return models.ErrSourceUnavailable.Error()
	}

	return err.Error()
}

// read loads and parses locator without touching the current graph.
func (s *GraphService) read(ctx context.Context, locator string) (*models.Graph, string, error) {
	text, err := s.loader.Load(ctx, locator)
	if err != nil {
		return nil, "", err
	}

	g := dot.Parse(text)
	g.Source = locator

	return g, text, nil
}

// checkSource rejects locators the source policy does not allow.
func (s *GraphService) checkSource(locator string) error {
	if s.opts.Sources == nil || s.opts.Sources.Allows(locator) {
		return nil
	}

	s.log.WithField("source", locator).Warn("rejected graph source")

	return models.ErrSourceNotAllowed
}

// Reload re-reads locator, or the current source when locator is empty. A non-empty
// locator must be allowed by the source policy.
func (s *GraphService) Reload(ctx context.Context, locator string) (*models.GraphStats, error) {
	if locator != "" {
		if err := s.checkSource(locator); err != nil {
			return nil, err
		}
	}

	if locator == "" {
		s.mu.Lock()
		if s.graph != nil {
			locator = s.graph.Source
		}
		s.mu.Unlock()
	}

	if locator == "" {
		return nil, models.ErrNoGraphLoaded
	}

	return s.Load(ctx, locator)
}

// Status reports whether a graph is loaded and from where.
func (s *GraphService) Status() models.GraphStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return models.GraphStatus{}
	}

	return models.GraphStatus{Loaded: true, Source: s.graph.Source, LoadedAt: s.loadedAt}
}

// Stats returns summary counts for the current graph.
func (s *GraphService) Stats(_ context.Context) (*models.GraphStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return nil, models.ErrNoGraphLoaded
	}

	stats := s.graph.Stats()

	return &stats, nil
}

// Source returns the raw text of the current graph and its locator.
func (s *GraphService) Source(_ context.Context) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return "", "", models.ErrNoGraphLoaded
	}

	return s.text, s.graph.Source, nil
}

// Cypher writes a Cypher import script for the current graph to w.
func (s *GraphService) Cypher(_ context.Context, w io.Writer, limit int) (dot.CypherStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		return dot.CypherStats{}, models.ErrNoGraphLoaded
	}

	return dot.WriteCypher(w, s.graph, limit)
}

// Traverse resolves the requested start node and runs a bounded traversal. When the
// request names a source other than the loaded one, that source is parsed for this
// traversal only; the current graph changes only through Load and Reload.
func (s *GraphService) Traverse(ctx context.Context, req models.TraversalRequest) (*models.TraversalReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	depth := s.opts.DefaultMaxDepth
	if req.MaxDepth != nil {
		depth = *req.MaxDepth
	}

	if depth > s.opts.MaxDepthLimit {
		return nil, fmt.Errorf("%w of %d", models.ErrDepthLimit, s.opts.MaxDepthLimit)
	}

	if req.Source != "" {
		if err := s.checkSource(req.Source); err != nil {
			s.countTraversal(req, "rejected")
			return nil, err
		}
	}

	started := time.Now()

	g, release, err := s.graphFor(ctx, req.Source)
	if err != nil {
		outcome := "source_error"
		if errors.Is(err, models.ErrNoGraphLoaded) {
			outcome = "no_graph"
		}
		s.countTraversal(req, outcome)
		return nil, err
	}
	defer release()

	adj := g.For(req.Direction)

	start, ok := traverse.Resolve(adj, req.Start)
	if !ok {
		s.countTraversal(req, "not_found")
		return nil, &models.StartNodeError{
			Requested:  req.Start,
			Direction:  req.Direction,
			Candidates: models.SampleKeys(adj, 10),
		}
	}

	s.log.WithFields(logrus.Fields{
		"start":     start,
		"algorithm": req.Algorithm,
		"direction": req.Direction,
		"max_depth": depth,
	}).Debug("graph.traverse")

	res := traverse.Run(adj, start, depth, req.Algorithm, req.Direction)
	report := buildReport(g, res, req, start, depth)

	outcome := "ok"
	if report.Empty {
		outcome = "empty"
	}
	s.countTraversal(req, outcome)
	metrics.TraversalDuration.WithLabelValues(string(req.Algorithm)).Observe(time.Since(started).Seconds())

	return report, nil
}

// graphFor returns the graph a traversal of locator runs against, plus a release func.
// The current graph is returned locked since start node resolution may add entries to
// it. Any other locator is parsed for this call only and never replaces the current graph.
func (s *GraphService) graphFor(ctx context.Context, locator string) (*models.Graph, func(), error) {
	s.mu.Lock()
	if s.graph != nil && (locator == "" || locator == s.graph.Source) {
		return s.graph, s.mu.Unlock, nil
	}
	s.mu.Unlock()

	if locator == "" {
		return nil, nil, models.ErrNoGraphLoaded
	}

	g, _, err := s.read(ctx, locator)
	if err != nil {
		return nil, nil, err
	}

	return g, func() {}, nil
}

func (s *GraphService) publish(eventType string, data any) {
	if s.opts.Events != nil {
		s.opts.Events.Publish(eventType, data)
	}
}

func (s *GraphService) countTraversal(req models.TraversalRequest, outcome string) {
	metrics.TraversalsTotal.WithLabelValues(string(req.Algorithm), string(req.Direction), outcome).Inc()
}

// IsClientError reports whether err was caused by the request rather than the server.
func IsClientError(err error) bool {
	return errors.Is(err, models.ErrMissingStart) ||
		errors.Is(err, models.ErrNegativeDepth) ||
		errors.Is(err, models.ErrDepthLimit) ||
		errors.Is(err, models.ErrInvalidRequest)
}
