package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/dotwalk/client"
	"github.com/persistorai/dotwalk/internal/models"
	"github.com/persistorai/dotwalk/internal/service"
	"github.com/persistorai/dotwalk/internal/source"
)

// backend runs commands either in-process or against a dotwalk server.
type backend interface {
	Traverse(ctx context.Context, req *client.TraversalRequest) (*client.TraversalReport, error)
	Stats(ctx context.Context) (*client.GraphStats, error)
	Cypher(ctx context.Context, limit int) (string, error)
}

var errNoSource = errors.New("no graph source: pass --source, set DOTWALK_SOURCE, or use --url")

// localDepthLimit is effectively unbounded; the server enforces its own limit.
const localDepthLimit = 10_000

func newBackend(ctx context.Context, log *logrus.Logger) (backend, error) {
	if flagURL != "" {
		return &remoteBackend{c: client.New(flagURL, client.WithUserAgent("dotwalk-cli/"+versionString()))}, nil
	}

	if flagSource == "" {
		return nil, errNoSource
	}

	svc := service.NewGraphService(source.NewLoader(30*time.Second, log), log, service.Options{
		DefaultMaxDepth: 5,
		MaxDepthLimit:   localDepthLimit,
	})
	if _, err := svc.Load(ctx, flagSource); err != nil {
		return nil, err
	}

	return &localBackend{svc: svc}, nil
}

type remoteBackend struct {
	c *client.Client
}

func (b *remoteBackend) Traverse(ctx context.Context, req *client.TraversalRequest) (*client.TraversalReport, error) {
	return b.c.Traverse(ctx, req)
}

func (b *remoteBackend) Stats(ctx context.Context) (*client.GraphStats, error) {
	return b.c.Stats(ctx)
}

func (b *remoteBackend) Cypher(ctx context.Context, limit int) (string, error) {
	return b.c.Graph.Cypher(ctx, limit)
}

type localBackend struct {
	svc *service.GraphService
}

func (b *localBackend) Traverse(ctx context.Context, req *client.TraversalRequest) (*client.TraversalReport, error) {
	report, err := b.svc.Traverse(ctx, models.TraversalRequest{
		Start:     req.Start,
		Algorithm: models.Algorithm(req.Algorithm),
		MaxDepth:  req.MaxDepth,
		Direction: models.Direction(req.Direction),
	})
	if err != nil {
		return nil, err
	}
	return convert[client.TraversalReport](report)
}

func (b *localBackend) Stats(ctx context.Context) (*client.GraphStats, error) {
	stats, err := b.svc.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return convert[client.GraphStats](stats)
}

func (b *localBackend) Cypher(ctx context.Context, limit int) (string, error) {
	var sb strings.Builder
	if _, err := b.svc.Cypher(ctx, &sb, limit); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// convert maps a service result onto its client type through the shared JSON shape,
// so local and remote runs format identically.
func convert[T any](v any) (*T, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return &out, nil
}
