package gridplan

import "go.viam.com/dstarplan/planning"

// Oracle adapts a Grid into planning.Oracle[Coord]: movement is
// restricted to the four cardinal neighbors, edge cost is the average
// of the two endpoint costs plus one (so that even a free cell costs
// something to cross), and the heuristic is Manhattan distance.
//
// The "+1" floor makes every move cost at least 1 regardless of how
// cheap both endpoints are. That's intentional, not an oversight; see
// DESIGN.md.
type Oracle struct {
	grid *Grid
}

// NewOracle wraps grid as a planning.Oracle[Coord].
func NewOracle(grid *Grid) *Oracle {
	return &Oracle{grid: grid}
}

// Successors and Predecessors are identical for this oracle: the grid's
// adjacency is symmetric, so the four cardinal neighbors serve both
// roles, excluding any neighbor that falls outside the grid.
func (o *Oracle) Successors(c Coord) []Coord   { return o.neighbors(c) }
func (o *Oracle) Predecessors(c Coord) []Coord { return o.neighbors(c) }

func (o *Oracle) neighbors(c Coord) []Coord {
	nbrs := cardinalNeighbors(c)
	out := make([]Coord, 0, len(nbrs))
	for _, n := range nbrs {
		if o.grid.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Cost returns the cost of moving from a to b. It is +Inf for any pair
// that isn't cardinally adjacent, and for any pair where either
// endpoint carries a negative (untraversable) cost.
func (o *Oracle) Cost(a, b Coord) planning.Cost {
	if manhattan(a, b) != 1 {
		return planning.Inf
	}
	ca, cb := o.grid.Get(a), o.grid.Get(b)
	if ca < 0 || cb < 0 {
		return planning.Inf
	}
	return planning.Cost(float64(ca)+float64(cb))/2 + 1
}

// Heuristic returns the Manhattan distance between a and b, which is
// admissible and consistent for a grid whose cheapest possible edge
// cost is the "+1" floor in Cost.
func (o *Oracle) Heuristic(a, b Coord) planning.Cost {
	return planning.Cost(manhattan(a, b))
}

func manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
