package planning

// Oracle is the caller-supplied view of the graph and heuristic. It is
// read-only from the engine's perspective: the only sanctioned way to
// announce a graph mutation is Engine.FlagCostChange.
//
// Successors and Predecessors must return finite collections. For
// undirected graphs, callers mirror Successors into Predecessors.
// Cost must be nonnegative and may return Inf for non-adjacent pairs.
// Heuristic must be admissible and consistent: Heuristic(a, a) == 0,
// and Heuristic(a, b) <= Cost(a, c) + Heuristic(c, b) for every
// neighbor c of a. Violating consistency invalidates optimality but
// must never panic the engine.
type Oracle[V comparable] interface {
	Successors(v V) []V
	Predecessors(v V) []V
	Cost(u, v V) Cost
	Heuristic(a, b V) Cost
}
