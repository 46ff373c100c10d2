// Package optimize - run results
package optimize

import (
	"unit-pricing/core/types"
)

// Result is the outcome of one optimization run. Running to the
// iteration budget without converging is not an error: callers detect it
// from Converged and the actual iteration count.
type Result struct {
	// Config is the optimized configuration; the input is never mutated
	Config *types.PricingConfiguration `json:"config"`

	// InitialMetric is the targeted weighted average before the run
	InitialMetric float64 `json:"initial_metric"`

	// FinalMetric is the same figure under the optimized configuration
	FinalMetric float64 `json:"final_metric"`

	// Iterations is the number of iterations actually executed
	Iterations int `json:"iterations"`

	// Converged reports whether the run terminated on the cost threshold
	Converged bool `json:"converged"`
}
