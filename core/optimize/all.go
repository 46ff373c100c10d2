// Package optimize - whole-configuration optimization
package optimize

import (
	"context"

	"go.uber.org/zap"

	"unit-pricing/core/aggregate"
	"unit-pricing/core/pricing"
	"unit-pricing/core/types"
	"unit-pricing/internal/errors"
	"unit-pricing/internal/logging"
)

// OptimizeAll adjusts the base rates of the selected bedroom types and
// every view adjustment (plus, under ScopeAllParameters, every floor-rule
// increment and jump increment) until the population's overall weighted
// PSF reaches targetPsf.
//
// An empty selection means every configured bedroom type. The optimized
// metric is computed over the units belonging to the selected types.
func OptimizeAll(ctx context.Context, units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode, targetPsf float64, selectedTypes []string, scope Scope, metric types.MetricKind, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, errors.Input("pricing configuration is nil")
	}
	if targetPsf <= 0 {
		return nil, errors.Inputf("target PSF must be positive, got %.2f", targetPsf)
	}
	if scope != ScopeBaseOnly && scope != ScopeAllParameters {
		return nil, errors.Inputf("unknown optimization scope %q", scope)
	}
	opts = opts.normalized()

	selected := make(map[string]bool)
	if len(selectedTypes) == 0 {
		for _, bt := range cfg.BedroomTypes {
			selected[bt.Type] = true
		}
	} else {
		for _, t := range selectedTypes {
			if _, ok := cfg.BedroomType(t); !ok {
				return nil, errors.NotFound("bedroom type", t)
			}
			selected[t] = true
		}
	}

	population := make([]types.Unit, 0, len(units))
	for _, u := range units {
		if !selected[u.BedroomType] {
			continue
		}
		area := u.SaleableArea
		if metric == types.MetricAC {
			area = u.ACArea
		}
		if area > 0 {
			population = append(population, u)
		}
	}
	if len(population) == 0 {
		return nil, errors.Optimization("selected bedroom types have no units with positive area")
	}

	initial := aggregate.WeightedAverage(pricing.Evaluate(population, cfg, mode, nil), metric, "")

	out := cfg.Clone()
	stampBaselines(out, selected, scope)

	params, vec := buildParameters(out, selected, scope)
	if len(params) == 0 {
		return nil, errors.Optimization("configuration has no tunable parameters for the selection")
	}

	obj := vectorObjective(population, out, mode, metric, targetPsf, params, opts)

	learningRate := opts.LearningRateAll
	if scope == ScopeAllParameters {
		// The full parameterization can reach a few hundred dimensions;
		// the coarser rate diverges there.
		learningRate = opts.LearningRateFull
	}

	iterations, converged, err := descend(ctx, vec, obj, func(i int, v float64) float64 {
		return params[i].clamp(v)
	}, learningRate, opts)
	if err != nil {
		return nil, err
	}

	applyParameters(out, params, vec)
	out.TargetAvgPsf = targetPsf
	out.TargetMetric = metric
	for t := range selected {
		markOptimized(out, t)
	}

	final := aggregate.WeightedAverage(pricing.Evaluate(population, out, mode, nil), metric, "")

	logging.Info("whole-configuration optimization finished",
		zap.String("scope", string(scope)),
		zap.Int("parameters", len(params)),
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

// stampBaselines records pre-optimization values for every parameter the
// run may touch. Existing baselines are kept so chained runs still revert
// to the true originals.
func stampBaselines(cfg *types.PricingConfiguration, selected map[string]bool, scope Scope) {
	for i := range cfg.BedroomTypes {
		bt := &cfg.BedroomTypes[i]
		if selected[bt.Type] {
			stampBaseline(&bt.OriginalBasePsf, bt.BasePsf)
		}
	}
	for i := range cfg.Views {
		v := &cfg.Views[i]
		stampBaseline(&v.OriginalPsfAdjustment, v.PsfAdjustment)
	}
	if scope == ScopeAllParameters && cfg.OriginalFloorRiseRules == nil && len(cfg.FloorRiseRules) > 0 {
		cfg.OriginalFloorRiseRules = cloneFloorRules(cfg.FloorRiseRules)
	}
}

func cloneFloorRules(rules []types.FloorRiseRule) []types.FloorRiseRule {
	scratch := types.PricingConfiguration{FloorRiseRules: rules}
	return scratch.Clone().FloorRiseRules
}
