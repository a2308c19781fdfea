package api

import (
	"context"
	"io"

	"github.com/persistorai/dotwalk/internal/dot"
	"github.com/persistorai/dotwalk/internal/models"
)

// GraphService defines the graph operations used by the handlers.
type GraphService interface {
	Status() models.GraphStatus
	Stats(ctx context.Context) (*models.GraphStats, error)
	Source(ctx context.Context) (text, locator string, err error)
	Reload(ctx context.Context, locator string) (*models.GraphStats, error)
	Traverse(ctx context.Context, req models.TraversalRequest) (*models.TraversalReport, error)
	Cypher(ctx context.Context, w io.Writer, limit int) (dot.CypherStats, error)
}
