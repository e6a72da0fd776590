// Package triangles — shared types, configuration options, and sentinel
// errors for both streaming estimators.
//
// The Options surface is intentionally small: the four construction
// parameters (seed, k, α, β) are positional because no estimator is valid
// without them, and the oracle rides in as a functional option because it
// is the only optional collaborator.
package triangles

import (
	"errors"

	"github.com/katalvlaran/tristream/oracle"
)

// Sentinel errors shared by Estimator and DynamicEstimator construction
// and event processing.
var (
	// ErrBadBudget indicates a non-positive memory budget k.
	ErrBadBudget = errors.New("triangles: memory budget must be positive")

	// ErrBadAlpha indicates α outside the open interval (0,1).
	ErrBadAlpha = errors.New("triangles: alpha must lie in (0,1)")

	// ErrBadBeta indicates β outside the open interval (0,1).
	ErrBadBeta = errors.New("triangles: beta must lie in (0,1)")

	// ErrBadPartition indicates that the derived caps ⌊k·α⌋, ⌊(k−W)·β⌋,
	// k−W−H leave the waiting room or the reservoir without a single slot
	// (an empty heavy set is legal: it just disables deterministic
	// retention). Budgets of a few dozen edges or more with moderate α, β
	// never trip this.
	ErrBadPartition = errors.New("triangles: waiting room and reservoir caps must be positive")

	// ErrIndexDesync indicates the reservoir's id→slot index disagrees
	// with the retained subgraph. Unreachable while the structural
	// invariants hold. DynamicEstimator.ProcessEdge returns it; the
	// insertion-only Estimator ignores the result of its subgraph removals
	// and never returns it.
	ErrIndexDesync = errors.New("triangles: reservoir index out of sync with subgraph")
)

// caps holds the frozen partition capacities derived from (k, α, β).
type caps struct {
	w int64 // waiting-room capacity ⌊k·α⌋
	h int64 // heavy-set capacity ⌊(k−W)·β⌋
	s int64 // reservoir capacity k−W−H
}

// splitBudget validates (k, α, β) and derives the partition caps.
// The arithmetic is frozen here once; estimators never recompute it.
func splitBudget(k int64, alpha, beta float64) (caps, error) {
	if k <= 0 {
		return caps{}, ErrBadBudget
	}
	if alpha <= 0 || alpha >= 1 {
		return caps{}, ErrBadAlpha
	}
	if beta <= 0 || beta >= 1 {
		return caps{}, ErrBadBeta
	}

	var c caps
	c.w = int64(float64(k) * alpha)
	c.h = int64(float64(k-c.w) * beta)
	c.s = k - c.w - c.h
	if c.w <= 0 || c.s <= 0 {
		return caps{}, ErrBadPartition
	}

	return c, nil
}

// Option configures optional estimator collaborators.
type Option func(*options)

// options collects the optional construction state.
type options struct {
	oracle oracle.Oracle
}

// WithOracle installs the heaviness predictor consulted on every placement
// decision. The two built-in shapes are oracle.EdgeMap (keyed by packed
// edge id) and oracle.NodeMap (minimum of the endpoint scores). Omitting
// the option — or installing nil — makes every lookup return
// oracle.HeavinessUnknown, degrading the heavy set to fill-and-freeze.
func WithOracle(o oracle.Oracle) Option {
	return func(cfg *options) { cfg.oracle = o }
}

// heaviness consults the installed oracle, mapping "no oracle" to the
// unknown sentinel so call sites need no nil checks.
func (cfg *options) heaviness(u, v int64) int {
	if cfg.oracle == nil {
		return oracle.HeavinessUnknown
	}

	return cfg.oracle.Heaviness(u, v)
}
