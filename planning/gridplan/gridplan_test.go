package gridplan

import (
	"context"
	"testing"

	"go.viam.com/test"

	"go.viam.com/rdk/logging"

	"go.viam.com/dstarplan/planning"
)

func testLogger(t *testing.T) logging.Logger {
	return logging.NewTestLogger(t)
}

// TestStraightCorridor covers a clear straight-line corridor: the
// planner should find the direct Manhattan path.
func TestStraightCorridor(t *testing.T) {
	g := NewGrid(5, 1)
	o := NewOracle(g)
	e := planning.New[Coord](testLogger(t), o, Coord{0, 0}, Coord{4, 0})

	path, err := e.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldHaveLength, 5)
	test.That(t, path[0], test.ShouldResemble, Coord{0, 0})
	test.That(t, path[len(path)-1], test.ShouldResemble, Coord{4, 0})
}

// TestWallInsertionForcesDetour covers inserting a wall across the
// direct corridor: the replan must route around the walled cell while
// keeping the same start and goal.
func TestWallInsertionForcesDetour(t *testing.T) {
	g := NewGrid(3, 3)
	o := NewOracle(g)
	e := planning.New[Coord](testLogger(t), o, Coord{0, 1}, Coord{2, 1})

	path, err := e.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldResemble, []Coord{{0, 1}, {1, 1}, {2, 1}})

	g.SetCost(e, Coord{1, 1}, -1)
	path, err = e.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path), test.ShouldBeGreaterThan, 3)
	test.That(t, path[0], test.ShouldResemble, Coord{0, 1})
	test.That(t, path[len(path)-1], test.ShouldResemble, Coord{2, 1})
	for _, c := range path {
		test.That(t, c, test.ShouldNotResemble, Coord{1, 1})
	}
}

// TestWallBlocksOnlyRoute covers a wall that severs the only route to
// the goal: Plan must report no path rather than erroring.
func TestWallBlocksOnlyRoute(t *testing.T) {
	g := NewGrid(1, 3)
	o := NewOracle(g)
	e := planning.New[Coord](testLogger(t), o, Coord{0, 0}, Coord{0, 2})

	g.SetCost(e, Coord{0, 1}, -1)
	path, err := e.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldBeEmpty)
}

// TestMovingStartKeepsIPQBounded covers moving the start vertex toward
// the goal on an open 5x5 grid: every edge costs exactly 1 (the "+1"
// floor on an all-zero cost grid), so the Manhattan distance from
// (0,0) to (4,4) gives a starting cost of 8, and moving the start to
// (2,2) — Manhattan distance 4 from the goal — must bring that down to
// exactly 4. The open set must stay small and bounded rather than
// growing toward the grid's 25 vertices, since UpdateStart only shifts
// keys by km rather than re-expanding the whole frontier.
func TestMovingStartKeepsIPQBounded(t *testing.T) {
	g := NewGrid(5, 5)
	o := NewOracle(g)
	e := planning.New[Coord](testLogger(t), o, Coord{0, 0}, Coord{4, 4})

	_, err := e.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, e.StartCost(), test.ShouldEqual, planning.Cost(8))

	bound := e.QueueSize()
	test.That(t, bound, test.ShouldBeLessThan, g.Width()*g.Height())

	e.UpdateStart(Coord{2, 2})
	_, err = e.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, e.StartCost(), test.ShouldEqual, planning.Cost(4))
	test.That(t, e.QueueSize(), test.ShouldBeLessThanOrEqualTo, bound)
}

func TestSetCostNoOpWhenUnchanged(t *testing.T) {
	g := NewGrid(3, 3)
	o := NewOracle(g)
	e := planning.New[Coord](testLogger(t), o, Coord{0, 0}, Coord{2, 2})
	_, err := e.Plan(context.Background())
	test.That(t, err, test.ShouldBeNil)

	g.SetCost(e, Coord{1, 1}, 0) // already 0; should be a no-op
	test.That(t, g.Get(Coord{1, 1}), test.ShouldEqual, int8(0))
}

func TestOracleRejectsNonAdjacentPairs(t *testing.T) {
	g := NewGrid(5, 5)
	o := NewOracle(g)
	test.That(t, o.Cost(Coord{0, 0}, Coord{2, 2}).IsInf(), test.ShouldBeTrue)
	test.That(t, o.Cost(Coord{0, 0}, Coord{1, 0}).IsInf(), test.ShouldBeFalse)
}

func TestOracleExcludesOutOfBoundsNeighbors(t *testing.T) {
	g := NewGrid(3, 3)
	o := NewOracle(g)
	nbrs := o.Successors(Coord{0, 0})
	for _, n := range nbrs {
		test.That(t, g.InBounds(n), test.ShouldBeTrue)
	}
	test.That(t, len(nbrs), test.ShouldEqual, 2)
}
