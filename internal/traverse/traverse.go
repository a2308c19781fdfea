package traverse

import "github.com/persistorai/dotwalk/internal/models"

type frame struct {
	node  models.NodeID
	depth int
}

// Run dispatches to DFS or BFS.
func Run(adj *models.Adjacency, start models.NodeID, maxDepth int, algo models.Algorithm, dir models.Direction) *models.TraversalResult {
	if algo == models.BFS {
		return BFS(adj, start, maxDepth, dir)
	}

	return DFS(adj, start, maxDepth, dir)
}

// DFS walks adj depth-first from start. Children are visited in declared neighbor order.
// Every adjacency of a visited node emits an edge record, but a neighbor is only expanded
// when it is unvisited and within maxDepth. A node is expanded at the level it was first
// discovered at, so levels always agree with paths.
func DFS(adj *models.Adjacency, start models.NodeID, maxDepth int, dir models.Direction) *models.TraversalResult {
	res := newResult(start)
	visited := make(map[models.NodeID]bool)
	stack := []frame{{node: start, depth: 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[top.node] {
			continue
		}
		visited[top.node] = true
		res.Order = append(res.Order, top.node)

		depth := res.Levels[top.node]
		var next []frame

		for _, nb := range adj.Neighbors(top.node) {
			res.Edges = append(res.Edges, edgeFor(top.node, nb, depth+1, dir))

			if visited[nb] || depth+1 > maxDepth {
				continue
			}

			if _, seen := res.Levels[nb]; !seen {
				res.Levels[nb] = depth + 1
				res.Parent[nb] = top.node
			}
			next = append(next, frame{node: nb, depth: depth + 1})
		}

		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}

	res.Paths = buildPaths(res.Order, res.Parent)

	return res
}

// BFS walks adj breadth-first from start. The start node is marked visited on seeding and
// neighbors are marked when enqueued.
func BFS(adj *models.Adjacency, start models.NodeID, maxDepth int, dir models.Direction) *models.TraversalResult {
	res := newResult(start)
	visited := map[models.NodeID]bool{start: true}
	queue := []frame{{node: start, depth: 0}}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		res.Order = append(res.Order, cur.node)

		for _, nb := range adj.Neighbors(cur.node) {
			res.Edges = append(res.Edges, edgeFor(cur.node, nb, cur.depth+1, dir))

			if visited[nb] || cur.depth+1 > maxDepth {
				continue
			}

			visited[nb] = true
			res.Levels[nb] = cur.depth + 1
			res.Parent[nb] = cur.node
			queue = append(queue, frame{node: nb, depth: cur.depth + 1})
		}
	}

	res.Paths = buildPaths(res.Order, res.Parent)

	return res
}

func newResult(start models.NodeID) *models.TraversalResult {
	return &models.TraversalResult{
		Order:  make([]models.NodeID, 0),
		Edges:  make([]models.Edge, 0),
		Levels: map[models.NodeID]int{start: 0},
		Parent: make(map[models.NodeID]models.NodeID),
	}
}

// edgeFor orients an emitted edge so arrows always point from source to dependent.
func edgeFor(node, nb models.NodeID, level int, dir models.Direction) models.Edge {
	if dir == models.Upstream {
		return models.Edge{From: nb, To: node, Level: level}
	}

	return models.Edge{From: node, To: nb, Level: level}
}

func buildPaths(order []models.NodeID, parent map[models.NodeID]models.NodeID) map[models.NodeID][]models.NodeID {
	paths := make(map[models.NodeID][]models.NodeID, len(order))

	for _, n := range order {
		var rev []models.NodeID
		for cur, ok := n, true; ok; cur, ok = parent[cur] {
			rev = append(rev, cur)
		}

		path := make([]models.NodeID, len(rev))
		for i, id := range rev {
			path[len(rev)-1-i] = id
		}
		paths[n] = path
	}

	return paths
}
