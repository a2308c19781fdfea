package api_test

import (
	"context"
	"io"

	"github.com/persistorai/dotwalk/internal/dot"
	"github.com/persistorai/dotwalk/internal/models"
)

// mockGraphService implements api.GraphService for testing. Unset functions
// behave as if no graph is loaded.
type mockGraphService struct {
	status     models.GraphStatus
	statsFn    func(ctx context.Context) (*models.GraphStats, error)
	sourceFn   func(ctx context.Context) (string, string, error)
	reloadFn   func(ctx context.Context, locator string) (*models.GraphStats, error)
	traverseFn func(ctx context.Context, req models.TraversalRequest) (*models.TraversalReport, error)
	cypherFn   func(ctx context.Context, w io.Writer, limit int) (dot.CypherStats, error)
}

func (m *mockGraphService) Status() models.GraphStatus { return m.status }

func (m *mockGraphService) Stats(ctx context.Context) (*models.GraphStats, error) {
	if m.statsFn == nil {
		return nil, models.ErrNoGraphLoaded
	}
	return m.statsFn(ctx)
}

func (m *mockGraphService) Source(ctx context.Context) (string, string, error) {
	if m.sourceFn == nil {
		return "", "", models.ErrNoGraphLoaded
	}
	return m.sourceFn(ctx)
}

func (m *mockGraphService) Reload(ctx context.Context, locator string) (*models.GraphStats, error) {
	if m.reloadFn == nil {
		return nil, models.ErrNoGraphLoaded
	}
	return m.reloadFn(ctx, locator)
}

func (m *mockGraphService) Traverse(ctx context.Context, req models.TraversalRequest) (*models.TraversalReport, error) {
	if m.traverseFn == nil {
		return nil, models.ErrNoGraphLoaded
	}
	return m.traverseFn(ctx, req)
}

func (m *mockGraphService) Cypher(ctx context.Context, w io.Writer, limit int) (dot.CypherStats, error) {
	if m.cypherFn == nil {
		return dot.CypherStats{}, models.ErrNoGraphLoaded
	}
	return m.cypherFn(ctx, w, limit)
}
