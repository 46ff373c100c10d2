// Package optimize implements gradient-descent parameter search over
// pricing configurations. Three parameterizations share one descent
// skeleton: a single bedroom type's base rate, every selected type plus
// every view adjustment, and the full set including floor-rule increments.
package optimize

// Scope selects the parameterization of a whole-configuration run.
type Scope string

const (
	// ScopeBaseOnly tunes bedroom-type base rates and view adjustments
	ScopeBaseOnly Scope = "base_only"

	// ScopeAllParameters additionally frees floor-rule increments and
	// jump increments
	ScopeAllParameters Scope = "all_parameters"
)

// Options holds the descent tuning knobs. The defaults are hand-tuned:
// plain gradient descent with no line search or momentum is sensitive to
// the learning rate, so each parameterization carries its own.
type Options struct {
	// MaxIterations is the iteration budget per run
	MaxIterations int `json:"max_iterations"`

	// ConvergenceThreshold terminates the run once the cost change
	// between iterations falls below it
	ConvergenceThreshold float64 `json:"convergence_threshold"`

	// Epsilon is the central finite-difference step. It must be large
	// enough that per-unit price changes cross the rounding granularity
	// across the population, or gradients vanish on the plateaus.
	Epsilon float64 `json:"epsilon"`

	// LearningRateSingle is the step scale for one-parameter runs
	LearningRateSingle float64 `json:"learning_rate_single"`

	// LearningRateAll is the step scale for base+view runs
	LearningRateAll float64 `json:"learning_rate_all"`

	// LearningRateFull is the step scale for runs that also free the
	// floor-rule parameters
	LearningRateFull float64 `json:"learning_rate_full"`

	// ConstraintFactor weights the quadratic drift penalty that keeps
	// optimized values near their baselines
	ConstraintFactor float64 `json:"constraint_factor"`
}

// DefaultOptions returns the hand-tuned defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations:        300,
		ConvergenceThreshold: 1e-3,
		Epsilon:              0.5,
		LearningRateSingle:   0.1,
		LearningRateAll:      0.05,
		LearningRateFull:     0.01,
		ConstraintFactor:     0.01,
	}
}

// normalized fills zero-valued knobs from the defaults so a partially
// populated Options (e.g. loaded from config) stays usable.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.ConvergenceThreshold <= 0 {
		o.ConvergenceThreshold = def.ConvergenceThreshold
	}
	if o.Epsilon <= 0 {
		o.Epsilon = def.Epsilon
	}
	if o.LearningRateSingle <= 0 {
		o.LearningRateSingle = def.LearningRateSingle
	}
	if o.LearningRateAll <= 0 {
		o.LearningRateAll = def.LearningRateAll
	}
	if o.LearningRateFull <= 0 {
		o.LearningRateFull = def.LearningRateFull
	}
	if o.ConstraintFactor <= 0 {
		o.ConstraintFactor = def.ConstraintFactor
	}
	return o
}
