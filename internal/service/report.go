package service

import (
	"github.com/persistorai/dotwalk/internal/dot"
	"github.com/persistorai/dotwalk/internal/models"
)

func buildReport(g *models.Graph, res *models.TraversalResult, req models.TraversalRequest, start models.NodeID, depth int) *models.TraversalReport {
	labels := dot.NewLabeler(g)
	maxLevel := res.MaxLevel()

	nodes := make([]models.RenderNode, 0, len(res.Order))
	totalSteps := 0

	for _, n := range res.Order {
		level := res.Levels[n]
		steps := res.Steps(n)
		totalSteps += steps

		nodes = append(nodes, models.RenderNode{
			ID:      n,
			Label:   dot.DisplayName(labels, n),
			Level:   level,
			Steps:   steps,
			Extreme: level == maxLevel,
		})
	}

	analysis := "Forward subgraph analysis complete"
	if req.Direction == models.Upstream {
		analysis = "Backward subgraph analysis complete"
	}

	return &models.TraversalReport{
		Requested: req.Start,
		Start:     start,
		Algorithm: req.Algorithm,
		Direction: req.Direction,
		MaxDepth:  depth,
		DOT: dot.Render(dot.RenderInput{
			Result:    res,
			Algorithm: req.Algorithm,
			Start:     start,
			Direction: req.Direction,
		}, labels),
		Order:  res.Order,
		Edges:  res.Edges,
		Levels: res.Levels,
		Paths:  res.Paths,
		Nodes:  nodes,
		Summary: models.TraversalSummary{
			Nodes:         len(res.Order),
			Edges:         len(res.Edges),
			Levels:        maxLevel + 1,
			MaxDepth:      maxLevel,
			ExtremeNodes:  res.Extremes(),
			AvgPathLength: float64(totalSteps) / float64(max(len(res.Paths), 1)),
			Analysis:      analysis,
		},
		Empty:    len(res.Order) <= 1,
		Filename: dot.Filename(req.Start, req.Direction),
	}
}
