// Package gridplan specializes the planning engine to a dense 2D grid
// of per-cell traversal costs, the Go analogue of robotutils' GridMap
// plus GridDStar pairing: a StaticMap-like cost buffer underneath an
// Oracle that turns adjacency into edge costs.
package gridplan

import (
	"fmt"

	"go.viam.com/dstarplan/planning"
)

// Coord is a 2D integer grid coordinate. Grids in this package are
// always two-dimensional; see DESIGN.md for why this repo does not
// attempt an N-dimensional generic lattice.
type Coord struct {
	X, Y int
}

// Grid is a dense rectangular cost buffer. A negative cell cost marks
// the cell untraversable, mirroring robotutils' StaticMap convention.
type Grid struct {
	width, height int
	cells         []int8
}

// NewGrid returns a width x height grid with every cell initialized to
// cost 0.
func NewGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, cells: make([]int8, width*height)}
}

// Width and Height return the grid's fixed dimensions.
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c names a cell inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid) offset(c Coord) int {
	return c.Y*g.width + c.X
}

// Get returns the raw cost stored at c. It panics if c is out of
// bounds; callers that might pass an untrusted coordinate should check
// InBounds first.
func (g *Grid) Get(c Coord) int8 {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("gridplan: coordinate %+v out of bounds for %dx%d grid", c, g.width, g.height))
	}
	return g.cells[g.offset(c)]
}

// Set stores val at c without flagging any change to a planner. Use
// SetCost instead once a planner is tracking this grid, so that the
// engine's Change Log sees the edges this cell touches.
func (g *Grid) Set(c Coord, val int8) {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("gridplan: coordinate %+v out of bounds for %dx%d grid", c, g.width, g.height))
	}
	g.cells[g.offset(c)] = val
}

// changeFlagger is the subset of planning.Engine[Coord] that SetCost
// needs; satisfied by *planning.Engine[Coord] itself.
type changeFlagger interface {
	FlagCostChange(u, v Coord, oldCost, newCost planning.Cost)
}

// SetCost changes the cost of cell c to val and flags every edge that
// touches c (both directions, to each in-bounds cardinal neighbor) to flagger's
// Change Log with its old and new cost. This mirrors GridDStar.setCost:
// compute affected edge costs before and after the mutation, change the
// map, then report the deltas.
//
// If val equals the cell's current cost, SetCost does nothing.
func (g *Grid) SetCost(flagger changeFlagger, c Coord, val int8) {
	if val == g.Get(c) {
		return
	}

	o := NewOracle(g)
	nbrs := cardinalNeighbors(c)

	type edge struct {
		u, v Coord
		old  planning.Cost
	}
	var affected []edge
	for _, n := range nbrs {
		if !g.InBounds(n) {
			continue
		}
		affected = append(affected, edge{n, c, o.Cost(n, c)})
		affected = append(affected, edge{c, n, o.Cost(c, n)})
	}

	g.Set(c, val)

	for _, a := range affected {
		flagger.FlagCostChange(a.u, a.v, a.old, o.Cost(a.u, a.v))
	}
}

func cardinalNeighbors(c Coord) [4]Coord {
	return [4]Coord{
		{c.X + 1, c.Y},
		{c.X - 1, c.Y},
		{c.X, c.Y + 1},
		{c.X, c.Y - 1},
	}
}
