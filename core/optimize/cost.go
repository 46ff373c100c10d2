// Package optimize - cost functions
package optimize

import (
	"unit-pricing/core/aggregate"
	"unit-pricing/core/pricing"
	"unit-pricing/core/types"
)

// negativePenalty is the hard-penalty weight applied when a trial floor
// increment or jump increment goes negative. It dominates every other
// term so descent is pushed straight back into the feasible region.
const negativePenalty = 1e6

// singleTypeObjective builds the one-parameter cost: squared deviation of
// the type's weighted-average PSF from target, plus a quadratic drift
// penalty anchored at the pre-optimization base rate.
func singleTypeObjective(units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode, bedroomType string, metric types.MetricKind, target, original float64, opts Options) objective {
	scratch := cfg.Clone()
	return func(vec []float64) float64 {
		if bt, ok := scratch.BedroomType(bedroomType); ok {
			bt.BasePsf = vec[0]
		}
		avg := aggregate.TypeAveragePsf(units, scratch, mode, bedroomType, metric)

		dev := avg - target
		drift := vec[0] - original
		return dev*dev + opts.ConstraintFactor*drift*drift
	}
}

// vectorObjective builds the multi-parameter cost shared by the base+view
// and full parameterizations: squared deviation of the population's
// overall weighted PSF from target, plus per-parameter drift penalties.
// Floor parameters carry a doubled drift weight, and any trial value that
// would drive an increment negative incurs the hard penalty.
func vectorObjective(units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode, metric types.MetricKind, target float64, params []parameter, opts Options) objective {
	scratch := cfg.Clone()
	return func(vec []float64) float64 {
		applyParameters(scratch, params, vec)
		avg := aggregate.WeightedAverage(pricing.Evaluate(units, scratch, mode, nil), metric, "")

		dev := avg - target
		cost := dev * dev

		for i, p := range params {
			weight := opts.ConstraintFactor
			if p.kind == paramFloorIncrement || p.kind == paramJumpIncrement {
				weight *= 2
				if vec[i] < 0 {
					cost += negativePenalty * -vec[i]
				}
			}
			drift := vec[i] - p.original
			cost += weight * drift * drift
		}

		return cost
	}
}
