package planning

import "math"

// Cost is a nonnegative real-valued edge or path cost. Inf is its top
// element: every arithmetic and comparison operation in this package
// treats Inf as absorbing, i.e. Inf + x == Inf for any finite x.
type Cost float64

// Inf is the cost assigned to non-adjacent vertex pairs and to vertices
// with no known path to the goal.
var Inf Cost = Cost(math.Inf(1))

// IsInf reports whether c is the top element.
func (c Cost) IsInf() bool {
	return math.IsInf(float64(c), 1)
}

// Add returns c + other, saturating at Inf.
func (c Cost) Add(other Cost) Cost {
	if c.IsInf() || other.IsInf() {
		return Inf
	}
	return c + other
}

// Less reports whether c sorts strictly before other.
func (c Cost) Less(other Cost) bool {
	return float64(c) < float64(other)
}

// Key is the IPQ's composite ordering key: Primary is
// min(g,rhs)+h(start,s)+k_m, Secondary is min(g,rhs) (the tie-breaker
// that favors better-confirmed estimates). Exported so the IPQ can be
// exercised directly in tests.
//
// Comparison is lexicographic on (Primary, Secondary); this type never
// subtracts keys to compare them, which would be unsafe once Cost
// values approach Inf.
type Key struct {
	Primary   Cost
	Secondary Cost
}

// Less implements the lexicographic tuple order.
func (k Key) Less(other Key) bool {
	if k.Primary != other.Primary {
		return k.Primary.Less(other.Primary)
	}
	return k.Secondary.Less(other.Secondary)
}
