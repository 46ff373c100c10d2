// Package optimize - shared gradient-descent skeleton
package optimize

import (
	"context"
	"math"
)

// objective is a scalar cost over a trial parameter vector. Callers may
// mutate the slice between invocations; the objective must not retain it.
type objective func(vec []float64) float64

// descend runs plain gradient descent over vec in place. Gradients are
// estimated by central finite differences with step opts.Epsilon, and
// each update is clamped back into the parameter domain.
//
// The loop has three exits: convergence (cost change below threshold),
// iteration-budget exhaustion (not an error; the caller sees the actual
// iteration count), and context cancellation, checked once per iteration.
func descend(ctx context.Context, vec []float64, obj objective, clamp func(i int, v float64) float64, learningRate float64, opts Options) (iterations int, converged bool, err error) {
	grad := make([]float64, len(vec))
	prevCost := math.Inf(1)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return iter, false, err
		}

		cost := obj(vec)
		if math.Abs(cost-prevCost) < opts.ConvergenceThreshold {
			return iter, true, nil
		}
		prevCost = cost

		for i := range vec {
			v := vec[i]
			vec[i] = v + opts.Epsilon
			up := obj(vec)
			vec[i] = v - opts.Epsilon
			down := obj(vec)
			vec[i] = v
			grad[i] = (up - down) / (2 * opts.Epsilon)
		}

		for i := range vec {
			vec[i] = clamp(i, vec[i]-learningRate*grad[i])
		}
	}

	return opts.MaxIterations, false, nil
}
