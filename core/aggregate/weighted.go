// Package aggregate - value-weighted pricing metrics
// Averages are weighted by priced value over area, not by unit count:
// the overall figure is total value divided by total area, which differs
// from the mean of per-unit PSF ratios whenever areas are uneven.
package aggregate

import (
	"unit-pricing/core/pricing"
	"unit-pricing/core/types"
)

// OverallAveragePsf returns total final price over total reference area
// for the mode (saleable area in standard mode, AC area in AC-only mode).
// Units with non-positive area or price are discarded first.
func OverallAveragePsf(units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode) float64 {
	metric := types.MetricSaleable
	if mode == types.ModeACOnly {
		metric = types.MetricAC
	}
	return WeightedAverage(pricing.Evaluate(units, cfg, mode, nil), metric, "")
}

// OverallAverageAcPsf returns total final price over total AC area.
func OverallAverageAcPsf(units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode) float64 {
	return WeightedAverage(pricing.Evaluate(units, cfg, mode, nil), types.MetricAC, "")
}

// TypeAveragePsf returns the weighted average restricted to one bedroom
// type, under the given metric kind.
func TypeAveragePsf(units []types.Unit, cfg *types.PricingConfiguration, mode types.PricingMode, bedroomType string, metric types.MetricKind) float64 {
	return WeightedAverage(pricing.Evaluate(units, cfg, mode, nil), metric, bedroomType)
}

// WeightedAverage reduces already-priced units to a weighted-average PSF.
// bedroomType narrows the population; empty means all units. Units whose
// area or price is not positive carry no information and are skipped, so
// an empty or degenerate population yields zero rather than NaN.
func WeightedAverage(priced []types.PricedUnit, metric types.MetricKind, bedroomType string) float64 {
	var totalValue, totalArea float64
	for _, p := range priced {
		if bedroomType != "" && p.BedroomType != bedroomType {
			continue
		}
		area := p.SaleableArea
		if metric == types.MetricAC {
			area = p.ACArea
		}
		if area <= 0 || p.FinalPrice <= 0 {
			continue
		}
		totalValue += p.FinalPrice
		totalArea += area
	}
	if totalArea <= 0 {
		return 0
	}
	return totalValue / totalArea
}
