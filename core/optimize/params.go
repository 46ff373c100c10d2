// Package optimize - parameter vector construction and domain clamps
package optimize

import (
	"unit-pricing/core/types"
)

// floorIncrementFloor keeps tuned floor increments strictly positive so
// the monotonicity of the floor premium is preserved.
const floorIncrementFloor = 1e-6

type paramKind int

const (
	paramBasePsf paramKind = iota
	paramViewAdjustment
	paramFloorIncrement
	paramJumpIncrement
)

// parameter identifies one tunable slot in a configuration.
type parameter struct {
	kind paramKind

	// index into the configuration slice the kind refers to
	index int

	// original is the pre-optimization baseline the drift penalty and
	// clamps are anchored to
	original float64
}

// buildParameters assembles the tunable slots of cfg for a run over the
// given bedroom types. Originals must already be stamped on cfg. The
// vector order follows configuration slice order, so it is deterministic.
func buildParameters(cfg *types.PricingConfiguration, selected map[string]bool, scope Scope) ([]parameter, []float64) {
	var params []parameter
	var vec []float64

	for i := range cfg.BedroomTypes {
		bt := &cfg.BedroomTypes[i]
		if !selected[bt.Type] {
			continue
		}
		params = append(params, parameter{kind: paramBasePsf, index: i, original: originalOf(bt.OriginalBasePsf, bt.BasePsf)})
		vec = append(vec, bt.BasePsf)
	}

	for i := range cfg.Views {
		v := &cfg.Views[i]
		params = append(params, parameter{kind: paramViewAdjustment, index: i, original: originalOf(v.OriginalPsfAdjustment, v.PsfAdjustment)})
		vec = append(vec, v.PsfAdjustment)
	}

	if scope == ScopeAllParameters {
		for i := range cfg.FloorRiseRules {
			rule := &cfg.FloorRiseRules[i]
			params = append(params, parameter{kind: paramFloorIncrement, index: i, original: rule.PsfIncrement})
			vec = append(vec, rule.PsfIncrement)

			if rule.JumpIncrement != nil {
				params = append(params, parameter{kind: paramJumpIncrement, index: i, original: *rule.JumpIncrement})
				vec = append(vec, *rule.JumpIncrement)
			}
		}
	}

	return params, vec
}

// applyParameters writes a trial vector into cfg. cfg is expected to be a
// scratch clone owned by the optimizer.
func applyParameters(cfg *types.PricingConfiguration, params []parameter, vec []float64) {
	for i, p := range params {
		switch p.kind {
		case paramBasePsf:
			cfg.BedroomTypes[p.index].BasePsf = vec[i]
		case paramViewAdjustment:
			cfg.Views[p.index].PsfAdjustment = vec[i]
		case paramFloorIncrement:
			cfg.FloorRiseRules[p.index].PsfIncrement = vec[i]
		case paramJumpIncrement:
			v := vec[i]
			cfg.FloorRiseRules[p.index].JumpIncrement = &v
		}
	}
}

// clamp constrains a trial value to the parameter's domain: base rates
// stay at or above 1, floor increments stay positive and at most twice
// their baseline, jump increments stay within [0, max(2*baseline, 1)].
// View adjustments are unconstrained.
func (p parameter) clamp(v float64) float64 {
	switch p.kind {
	case paramBasePsf:
		if v < 1 {
			return 1
		}
	case paramFloorIncrement:
		hi := 2 * p.original
		if hi < floorIncrementFloor {
			hi = floorIncrementFloor
		}
		if v < floorIncrementFloor {
			return floorIncrementFloor
		}
		if v > hi {
			return hi
		}
	case paramJumpIncrement:
		hi := 2 * p.original
		if hi < 1 {
			hi = 1
		}
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
	}
	return v
}

func originalOf(stamped *float64, current float64) float64 {
	if stamped != nil {
		return *stamped
	}
	return current
}
