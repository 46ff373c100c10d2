// Package optimize - baseline restore
package optimize

import (
	"unit-pricing/core/types"
)

// RevertAll is the scope value that restores every optimized field.
const RevertAll = "*"

// Revert restores pre-optimization values from the Original* shadow
// fields and clears the corresponding bookkeeping. Scope is a bedroom
// type tag, or RevertAll for the whole configuration.
//
// Revert is stateless with respect to the optimizer: it only copies
// stored baselines back, it never re-runs an inverse search. The input
// configuration is not mutated; a type that was never optimized reverts
// to an unchanged copy.
func Revert(cfg *types.PricingConfiguration, scope string) *types.PricingConfiguration {
	out := cfg.Clone()

	if scope == RevertAll {
		for i := range out.BedroomTypes {
			revertType(&out.BedroomTypes[i])
		}
		for i := range out.Views {
			v := &out.Views[i]
			if v.OriginalPsfAdjustment != nil {
				v.PsfAdjustment = *v.OriginalPsfAdjustment
				v.OriginalPsfAdjustment = nil
			}
		}
		if out.OriginalFloorRiseRules != nil {
			out.FloorRiseRules = out.OriginalFloorRiseRules
			out.OriginalFloorRiseRules = nil
		}
		out.OptimizedTypes = nil
		out.TargetAvgPsf = 0
		out.TargetMetric = ""
		out.IsOptimized = false
		return out
	}

	if bt, ok := out.BedroomType(scope); ok {
		revertType(bt)
	}
	out.OptimizedTypes = removeString(out.OptimizedTypes, scope)
	out.IsOptimized = stillOptimized(out)
	return out
}

func revertType(bt *types.BedroomTypePricing) {
	if bt.OriginalBasePsf == nil {
		return
	}
	bt.BasePsf = *bt.OriginalBasePsf
	bt.OriginalBasePsf = nil
	bt.TargetAvgPsf = 0
}

// stillOptimized reports whether any optimized value remains in effect.
func stillOptimized(cfg *types.PricingConfiguration) bool {
	if len(cfg.OptimizedTypes) > 0 || cfg.OriginalFloorRiseRules != nil {
		return true
	}
	for _, v := range cfg.Views {
		if v.OriginalPsfAdjustment != nil {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
