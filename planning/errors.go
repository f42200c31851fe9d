package planning

import "github.com/pkg/errors"

// Sentinel errors returned by Plan. These are returned immediately
// (engine state is left unchanged) rather than wrapped into a generic
// failure, so callers can errors.Is against them.
var (
	// ErrNegativeCost is returned when the oracle reports a negative
	// edge cost during updateVertex. The engine has no way to recover a
	// sensible rhs in the presence of negative costs, so it fails fast
	// instead of silently producing a wrong answer.
	ErrNegativeCost = errors.New("planning: oracle reported a negative edge cost")

	// ErrGraphMutatedDuringPlan is available for callers that wrap their
	// oracle with mutation detection; the engine itself does not detect
	// concurrent graph mutation (that's the caller's responsibility), but
	// exports this sentinel so such a wrapper's errors are in the same
	// family as the engine's own.
	ErrGraphMutatedDuringPlan = errors.New("planning: graph was mutated while a plan call was in progress")
)
