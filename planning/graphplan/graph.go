// Package graphplan specializes the planning engine to an arbitrary
// weighted directed graph, the Go analogue of robotutils' GraphDStar
// over org.jgrapht.Graph: here the graph library is
// gonum.org/v1/gonum/graph, and vertex identity is gonum's native
// int64 node ID.
package graphplan

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"go.viam.com/dstarplan/planning"
)

// HeuristicFunc computes h(a, b) for a pair of node IDs. It must be
// admissible and consistent with respect to the wrapped graph's edge
// weights; see planning.Oracle.
type HeuristicFunc func(a, b int64) planning.Cost

// ZeroHeuristic always returns 0, degrading search to uniform-cost
// (Dijkstra-equivalent) behavior. This is the default when no
// domain-specific heuristic is supplied, mirroring GraphDStar's
// abstract h with no subclass override.
func ZeroHeuristic(int64, int64) planning.Cost { return 0 }

// Oracle adapts a gonum weighted directed graph into
// planning.Oracle[int64].
type Oracle struct {
	g *simple.WeightedDirectedGraph
	h HeuristicFunc
}

// NewOracle wraps g, using h as the heuristic. Pass ZeroHeuristic if
// the caller has no domain-specific distance estimate.
func NewOracle(g *simple.WeightedDirectedGraph, h HeuristicFunc) *Oracle {
	if h == nil {
		h = ZeroHeuristic
	}
	return &Oracle{g: g, h: h}
}

// Successors returns every node with an edge from v.
func (o *Oracle) Successors(v int64) []int64 {
	return nodeIDs(graph.NodesOf(o.g.From(v)))
}

// Predecessors returns every node with an edge to v.
func (o *Oracle) Predecessors(v int64) []int64 {
	return nodeIDs(graph.NodesOf(o.g.To(v)))
}

func nodeIDs(nodes []graph.Node) []int64 {
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}

// Cost returns the weight of the edge from u to v, or +Inf if no such
// edge exists, matching GraphDStar.c.
func (o *Oracle) Cost(u, v int64) planning.Cost {
	edge := o.g.WeightedEdge(u, v)
	if edge == nil {
		return planning.Inf
	}
	return planning.Cost(edge.Weight())
}

// Heuristic evaluates the oracle's configured heuristic function.
func (o *Oracle) Heuristic(a, b int64) planning.Cost {
	return o.h(a, b)
}
