// Package planning implements an incremental shortest-path replanner
// (D*-lite) and its supporting indexed priority queue. Given a
// directed, weighted graph whose edge costs may change over time and
// whose start vertex may move, Engine produces an optimal path to a
// fixed goal and reuses work across successive queries so that the
// cost of a replan scales with the local change rather than with the
// size of the graph.
package planning

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
	"go.viam.com/rdk/logging"
)

// record is the per-vertex (g, rhs) state. Missing records are treated
// as (g=Inf, rhs=Inf); see recordFor.
type record struct {
	g   Cost
	rhs Cost
}

// Engine is an incremental goal-rooted shortest-path planner. Engine is
// not safe for concurrent use except for FlagCostChange, which may be
// called from any goroutine while no Plan call is in progress.
type Engine[V comparable] struct {
	logger logging.Logger
	oracle Oracle[V]

	goal  V
	start V

	lastStart V
	km        Cost

	records map[V]*record
	queue   *IPQ[V]

	changes *changeLog[V]
}

// New constructs an Engine rooted at goal, with start as the initial
// starting vertex. All per-vertex records begin absent (treated as
// (Inf, Inf)) except the goal, whose rhs is fixed at 0 and which is
// inserted into the IPQ with a key computed against start (k_m = 0,
// lastStart = start).
func New[V comparable](logger logging.Logger, oracle Oracle[V], start, goal V) *Engine[V] {
	e := &Engine[V]{
		logger:    logger,
		oracle:    oracle,
		goal:      goal,
		start:     start,
		lastStart: start,
		km:        0,
		records:   make(map[V]*record),
		queue:     NewIPQ[V](),
		changes:   newChangeLog[V](),
	}
	goalRecord := e.recordFor(goal)
	goalRecord.rhs = 0
	e.queue.Add(goal, e.key(goal))
	return e
}

// Start returns the engine's current starting vertex.
func (e *Engine[V]) Start() V {
	return e.start
}

// Goal returns the engine's fixed goal vertex.
func (e *Engine[V]) Goal() V {
	return e.goal
}

// QueueSize returns the number of vertices currently in the open set,
// i.e. the number of vertices with g != rhs. Exposed so callers outside
// this package can assert that a replan stayed local rather than
// touching the whole graph.
func (e *Engine[V]) QueueSize() int {
	return e.queue.Size()
}

// StartCost returns the current g-value of the start vertex: the
// planner's current best estimate of the path cost from start to goal.
// It is Inf if the goal is currently believed unreachable from start.
func (e *Engine[V]) StartCost() Cost {
	return e.g(e.start)
}

// recordFor returns the per-vertex record for v, creating it lazily
// (with g = rhs = Inf) on first touch. Records are never explicitly
// destroyed; they persist for the lifetime of the engine so that
// incrementality holds across calls.
func (e *Engine[V]) recordFor(v V) *record {
	r, ok := e.records[v]
	if !ok {
		r = &record{g: Inf, rhs: Inf}
		e.records[v] = r
	}
	return r
}

// g and rhs return a vertex's current estimates without creating a
// record, answering Inf for anything never touched.
func (e *Engine[V]) g(v V) Cost {
	if r, ok := e.records[v]; ok {
		return r.g
	}
	return Inf
}

func (e *Engine[V]) rhs(v V) Cost {
	if r, ok := e.records[v]; ok {
		return r.rhs
	}
	return Inf
}

func minCost(a, b Cost) Cost {
	if a.Less(b) {
		return a
	}
	return b
}

// key computes the composite ordering key for s:
// (min(g,rhs) + h(start,s) + k_m, min(g,rhs)).
func (e *Engine[V]) key(s V) Key {
	m := minCost(e.g(s), e.rhs(s))
	return Key{
		Primary:   m.Add(e.oracle.Heuristic(e.start, s)).Add(e.km),
		Secondary: m,
	}
}

// updateVertex recomputes v's rhs from its successors and repositions
// it in the IPQ (removing it if it is now locally consistent).
func (e *Engine[V]) updateVertex(v V) error {
	if v != e.goal {
		best := Inf
		for _, sp := range e.oracle.Successors(v) {
			c := e.oracle.Cost(v, sp)
			if c.IsInf() {
				continue
			}
			if c < 0 {
				return errors.Wrapf(ErrNegativeCost, "edge (%v -> %v)", v, sp)
			}
			cand := c.Add(e.g(sp))
			if cand.Less(best) {
				best = cand
			}
		}
		e.recordFor(v).rhs = best
	}

	if e.queue.Contains(v) {
		e.queue.Remove(v)
	}

	if e.g(v) != e.rhs(v) {
		e.queue.Add(v, e.key(v))
	}
	return nil
}

// computeShortestPath is the main replanning loop. It runs until the
// start's estimates agree and are no larger than the frontier's
// minimum key, or until ctx is cancelled. On cancellation it returns
// ctx.Err() with (g, rhs, IPQ) left internally consistent and safe to
// resume on a later call.
func (e *Engine[V]) computeShortestPath(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "planning.Engine.computeShortestPath")
	defer span.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u, kOld, ok := e.queue.Peek()
		if !ok {
			break
		}
		startKey := e.key(e.start)
		if !kOld.Less(startKey) && e.rhs(e.start) == e.g(e.start) {
			break
		}

		kNew := e.key(u)
		if kOld.Less(kNew) {
			e.queue.Update(u, kNew)
			continue
		}

		e.queue.Remove(u)
		gu, rhsu := e.g(u), e.rhs(u)

		switch {
		case gu > rhsu:
			// locally overconsistent.
			e.recordFor(u).g = rhsu
			for _, s := range e.oracle.Predecessors(u) {
				if err := e.updateVertex(s); err != nil {
					return err
				}
			}
		case gu < rhsu:
			// locally underconsistent.
			e.recordFor(u).g = Inf
			preds := e.oracle.Predecessors(u)
			if err := e.updateVertex(u); err != nil {
				return err
			}
			for _, s := range preds {
				if err := e.updateVertex(s); err != nil {
					return err
				}
			}
		default:
			// gu == rhsu does not occur while every queued vertex is
			// locally inconsistent (updateVertex keeps it so); nothing to do,
			// the loop will re-evaluate.
		}
	}
	return nil
}

// Plan is one full planning cycle: drain the Change Log, run
// computeShortestPath, and extract a path. It returns a nil slice, not
// an error, when the goal is unreachable from start. A nil ctx is
// treated as context.Background().
func (e *Engine[V]) Plan(ctx context.Context) ([]V, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := trace.StartSpan(ctx, "planning.Engine.Plan")
	defer span.End()

	for _, ch := range e.changes.drain() {
		e.logger.Debugf("planning: applying flagged change on (%v -> %v): %v -> %v", ch.u, ch.v, ch.oldCost, ch.newCost)
		if err := e.updateVertex(ch.u); err != nil {
			return nil, err
		}
	}

	if err := e.computeShortestPath(ctx); err != nil {
		return nil, err
	}

	if e.logger.GetLevel() == logging.DEBUG {
		if cfg := e.checkHeuristicConsistency(); cfg != "" {
			e.logger.Warnf("planning: %s", cfg)
		}
	}

	if e.g(e.start).IsInf() {
		return nil, nil
	}

	return e.extractPath()
}

// extractPath walks forward from start, at each step taking the
// successor that minimizes c(current, s') + g(s'). This reconstructs
// an optimal path without storing parent pointers, which also sidesteps
// staleness issues a backward parent-pointer walk would have after a
// partial replan.
func (e *Engine[V]) extractPath() ([]V, error) {
	path := []V{e.start}
	if e.start == e.goal {
		return path, nil
	}

	current := e.start
	visited := map[V]bool{current: true}
	for current != e.goal {
		successors := e.oracle.Successors(current)
		var next V
		found := false
		best := Inf
		for _, sp := range successors {
			c := e.oracle.Cost(current, sp).Add(e.g(sp))
			if !found || c.Less(best) {
				best = c
				next = sp
				found = true
			}
		}
		if !found || best.IsInf() {
			// g(start) was finite but no forward edge realizes it; the
			// oracle is inconsistent with itself between computeShortestPath
			// and extractPath (e.g. a concurrent mutation the caller was
			// supposed to serialize against). Report what we found so far.
			return path, nil
		}
		if visited[next] {
			// A consistent, admissible heuristic rules this out; guard
			// against looping forever if the caller's oracle is not.
			return path, nil
		}
		path = append(path, next)
		visited[next] = true
		current = next
	}
	return path, nil
}

// UpdateStart moves the engine's notion of the current start vertex
// without re-keying the whole IPQ: k_m is incremented by
// h(lastStart, newStart), and lastStart/start both become newStart. The
// stale-key check inside computeShortestPath tolerates the resulting
// conservative keys.
func (e *Engine[V]) UpdateStart(newStart V) {
	e.km = e.km.Add(e.oracle.Heuristic(e.lastStart, newStart))
	e.lastStart = newStart
	e.start = newStart
}

// FlagCostChange appends a reported edge-cost delta to the Change Log.
// The engine does not apply the change to (g, rhs) immediately; all
// effects are realized at the top of the next Plan call. Safe to call
// concurrently with other FlagCostChange calls, but not while a Plan
// call is in progress.
func (e *Engine[V]) FlagCostChange(u, v V, oldCost, newCost Cost) {
	e.changes.push(u, v, oldCost, newCost)
}

// checkHeuristicConsistency is an optional debug-only diagnostic: it
// scans touched vertices for a heuristic violation and returns a
// description if found, or "" if none is detected. It never alters
// engine state. Its cost grows with the number of vertices touched so
// far, not with the change that triggered this Plan call, so Plan only
// calls it when debug logging is enabled.
func (e *Engine[V]) checkHeuristicConsistency() string {
	if e.oracle.Heuristic(e.goal, e.goal) != 0 {
		return "h(goal, goal) != 0"
	}
	for v := range e.records {
		hv := e.oracle.Heuristic(e.start, v)
		for _, s := range e.oracle.Successors(v) {
			c := e.oracle.Cost(v, s)
			if c.IsInf() {
				continue
			}
			hs := e.oracle.Heuristic(e.start, s)
			if c.Add(hs).Less(hv) {
				return "heuristic violates h(a,b) <= c(a,c)+h(c,b) near a vertex touched during planning"
			}
		}
	}
	return ""
}
