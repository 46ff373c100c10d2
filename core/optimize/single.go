// Package optimize - single bedroom-type optimization
package optimize

import (
	"context"

	"go.uber.org/zap"

	"unit-pricing/core/aggregate"
	"unit-pricing/core/types"
	"unit-pricing/internal/errors"
	"unit-pricing/internal/logging"
)

// OptimizeSingle adjusts one bedroom type's base rate until the type's
// weighted-average PSF reaches targetPsf, with minimal drift from the
// baseline value. The returned configuration is a new object carrying the
// pre-optimization base under OriginalBasePsf for revert.
func OptimizeSingle(ctx context.Context, units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode, bedroomType string, targetPsf float64, metric types.MetricKind, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, errors.Input("pricing configuration is nil")
	}
	if targetPsf <= 0 {
		return nil, errors.Inputf("target PSF must be positive, got %.2f", targetPsf)
	}
	if _, ok := cfg.BedroomType(bedroomType); !ok {
		return nil, errors.NotFound("bedroom type", bedroomType)
	}
	if !hasPricableUnits(units, bedroomType, metric) {
		return nil, errors.Optimization("no units with positive area for bedroom type").
			WithContext("bedroom_type", bedroomType)
	}
	opts = opts.normalized()

	initial := aggregate.TypeAveragePsf(units, cfg, mode, bedroomType, metric)

	out := cfg.Clone()
	bt, _ := out.BedroomType(bedroomType)
	stampBaseline(&bt.OriginalBasePsf, bt.BasePsf)
	original := *bt.OriginalBasePsf

	vec := []float64{bt.BasePsf}
	obj := singleTypeObjective(units, out, mode, bedroomType, metric, targetPsf, original, opts)
	p := parameter{kind: paramBasePsf, original: original}

	iterations, converged, err := descend(ctx, vec, obj, func(_ int, v float64) float64 {
		return p.clamp(v)
	}, opts.LearningRateSingle, opts)
	if err != nil {
		return nil, err
	}

	bt.BasePsf = vec[0]
	bt.TargetAvgPsf = targetPsf
	out.TargetMetric = metric
	markOptimized(out, bedroomType)

	final := aggregate.TypeAveragePsf(units, out, mode, bedroomType, metric)

	logging.Info("single-type optimization finished",
		zap.String("bedroom_type", bedroomType),
		zap.Float64("target", targetPsf),
		zap.Float64("initial", initial),
		zap.Float64("final", final),
		zap.Int("iterations", iterations),
		zap.Bool("converged", converged))

	return &Result{
		Config:        out,
		InitialMetric: initial,
		FinalMetric:   final,
		Iterations:    iterations,
		Converged:     converged,
	}, nil
}

// hasPricableUnits reports whether any unit of the type carries a
// positive area under the metric. A selection without one would make the
// target metric undefined, so the run is rejected up front.
func hasPricableUnits(units []types.Unit, bedroomType string, metric types.MetricKind) bool {
	for _, u := range units {
		if u.BedroomType != bedroomType {
			continue
		}
		area := u.SaleableArea
		if metric == types.MetricAC {
			area = u.ACArea
		}
		if area > 0 {
			return true
		}
	}
	return false
}

// stampBaseline records the pre-optimization value once; repeated runs
// keep the earliest baseline so revert restores the true original.
func stampBaseline(slot **float64, current float64) {
	if *slot == nil {
		v := current
		*slot = &v
	}
}

func markOptimized(cfg *types.PricingConfiguration, bedroomType string) {
	cfg.IsOptimized = true
	for _, t := range cfg.OptimizedTypes {
		if t == bedroomType {
			return
		}
	}
	cfg.OptimizedTypes = append(cfg.OptimizedTypes, bedroomType)
}
