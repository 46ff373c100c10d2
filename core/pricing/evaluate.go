// Package pricing - per-unit price evaluation
package pricing

import (
	"math"

	"unit-pricing/core/types"
)

// priceRounding is the granularity final prices are rounded up to.
// Rounding is always upward so the rounded book value never understates
// the computed one.
const priceRounding = 1000

// UnitFilter is an externally supplied predicate gating flat adders.
// A nil filter passes every unit.
type UnitFilter func(types.Unit) bool

// Evaluate prices every unit under the given configuration and mode.
// The result preserves input order and is recomputed fresh on every call.
//
// Data-quality problems never abort the batch: an unmapped bedroom type or
// view contributes a zero adjustment, and a missing area yields zero for
// the affected metric.
func Evaluate(units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode, filter UnitFilter) []types.PricedUnit {
	priced := make([]types.PricedUnit, 0, len(units))
	for _, u := range units {
		priced = append(priced, evaluateUnit(u, cfg, mode, filter))
	}
	return priced
}

func evaluateUnit(u types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode, filter UnitFilter) types.PricedUnit {
	p := types.PricedUnit{Unit: u}

	p.BasePsf = cfg.DefaultBasePsf
	if bt, ok := cfg.BedroomType(u.BedroomType); ok {
		p.BasePsf = bt.BasePsf
	}

	if v, ok := cfg.View(u.View); ok {
		p.ViewPremium = v.PsfAdjustment
	}

	if mode != types.ModeACOnly {
		p.FloorPremium = FloorPremium(u.Floor, cfg.FloorRiseRules)
	}

	// Several category columns may match the same unit; their
	// adjustments accumulate.
	for _, cat := range cfg.AdditionalCategories {
		if u.Categories[cat.Column] == cat.Category && cat.Category != "" {
			p.CategoryPremium += cat.PsfAdjustment
		}
	}

	balcony := u.ResolvedBalconyArea()
	fullPct := cfg.Balcony.FullAreaPct / 100
	remainderRate := cfg.Balcony.RemainderRate / 100
	p.PricedBalconyArea = balcony*fullPct + balcony*(1-fullPct)*remainderRate

	if mode == types.ModeACOnly {
		p.EffectiveArea = u.ACArea
	} else {
		p.EffectiveArea = u.ACArea + p.PricedBalconyArea
	}

	rate := p.BasePsf + p.ViewPremium + p.FloorPremium + p.CategoryPremium
	p.RawPrice = rate * p.EffectiveArea

	for _, adder := range cfg.FlatAdders {
		if adderApplies(adder, u, filter) {
			p.FlatAddTotal += adder.Amount
		}
	}

	p.FinalPrice = roundUp(p.RawPrice + p.FlatAddTotal)

	refArea := u.SaleableArea
	if mode == types.ModeACOnly {
		refArea = u.ACArea
	}
	if refArea > 0 {
		p.FinalPsf = p.FinalPrice / refArea
	}
	if u.ACArea > 0 {
		p.FinalAcPsf = p.FinalPrice / u.ACArea
	}

	return p
}

// adderApplies implements the conjunctive two-layer gate: the adder must
// carry at least one filter kind, every configured kind must match, and
// the unit must pass the caller's active filter.
func adderApplies(adder types.FlatPriceAdder, u types.Unit, filter UnitFilter) bool {
	if len(adder.Units) == 0 && len(adder.Columns) == 0 {
		// An adder with no filters never applies.
		return false
	}

	if len(adder.Units) > 0 && !containsString(adder.Units, u.Name) {
		return false
	}

	for column, allowed := range adder.Columns {
		if !containsString(allowed, u.Categories[column]) {
			return false
		}
	}

	if filter != nil && !filter(u) {
		return false
	}

	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// roundUp rounds a price up to the nearest rounding step. Non-positive
// inputs round to zero.
func roundUp(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Ceil(price/priceRounding) * priceRounding
}
