// Package aggregate - weighted-average law tests
package aggregate

import (
	"math"
	"testing"

	"unit-pricing/core/pricing"
	"unit-pricing/core/types"
)

func skewedConfig() *types.PricingConfiguration {
	return &types.PricingConfiguration{
		DefaultBasePsf: 1000,
		BedroomTypes: []types.BedroomTypePricing{
			{Type: "studio", BasePsf: 3000},
			{Type: "penthouse", BasePsf: 1000},
		},
	}
}

// skewedUnits pairs a tiny expensive unit with a huge cheap one so the
// value-weighted average and the per-unit mean visibly disagree.
func skewedUnits() []types.Unit {
	return []types.Unit{
		{Name: "S-01", BedroomType: "studio", SaleableArea: 10, ACArea: 10},
		{Name: "P-01", BedroomType: "penthouse", SaleableArea: 1000, ACArea: 1000},
	}
}

// TestWeightedAverageLaw proves the overall figure is total value over
// total area, not the mean of per-unit PSF ratios.
func TestWeightedAverageLaw(t *testing.T) {
	units := skewedUnits()
	cfg := skewedConfig()

	priced := pricing.Evaluate(units, cfg, types.ModeStandard, nil)

	var totalValue, totalArea, psfSum float64
	for _, p := range priced {
		totalValue += p.FinalPrice
		totalArea += p.SaleableArea
		psfSum += p.FinalPsf
	}
	unweightedMean := psfSum / float64(len(priced))

	weighted := OverallAveragePsf(units, cfg, types.ModeStandard)
	if math.Abs(weighted-totalValue/totalArea) > 1e-9 {
		t.Fatalf("weighted average = %v, want total value over total area = %v",
			weighted, totalValue/totalArea)
	}

	// On this dataset the two figures must be far apart: the mean is
	// pulled toward the tiny expensive unit.
	if math.Abs(weighted-unweightedMean) < 100 {
		t.Fatalf("weighted (%v) and unweighted (%v) averages should diverge on skewed areas",
			weighted, unweightedMean)
	}
	t.Logf("weighted=%v unweighted=%v", weighted, unweightedMean)
}

// TestWeightedAverageSkipsDegenerateUnits proves zero-area and
// zero-price units carry no weight and an empty population yields zero.
func TestWeightedAverageSkipsDegenerateUnits(t *testing.T) {
	cfg := skewedConfig()
	units := append(skewedUnits(), types.Unit{Name: "X-01", BedroomType: "studio"})

	withDegenerate := OverallAveragePsf(units, cfg, types.ModeStandard)
	without := OverallAveragePsf(skewedUnits(), cfg, types.ModeStandard)
	if withDegenerate != without {
		t.Errorf("degenerate unit changed the average: %v vs %v", withDegenerate, without)
	}

	if got := OverallAveragePsf(nil, cfg, types.ModeStandard); got != 0 {
		t.Errorf("empty population average = %v, want 0", got)
	}
}

// TestTypeAveragePsfRestriction proves the type-restricted figure only
// sees that type's units.
func TestTypeAveragePsfRestriction(t *testing.T) {
	cfg := skewedConfig()
	units := skewedUnits()

	studio := TypeAveragePsf(units, cfg, types.ModeStandard, "studio", types.MetricSaleable)
	penthouse := TypeAveragePsf(units, cfg, types.ModeStandard, "penthouse", types.MetricSaleable)

	if studio <= penthouse {
		t.Fatalf("studio average (%v) should exceed penthouse average (%v)", studio, penthouse)
	}
	if got := TypeAveragePsf(units, cfg, types.ModeStandard, "missing", types.MetricSaleable); got != 0 {
		t.Errorf("average for a type with no units = %v, want 0", got)
	}
}

// TestBuildReportTotals proves the report's totals agree with the
// weighted-average calculator.
func TestBuildReportTotals(t *testing.T) {
	cfg := skewedConfig()
	units := skewedUnits()

	priced := pricing.Evaluate(units, cfg, types.ModeStandard, nil)
	report := BuildReport(priced, cfg, types.ModeStandard, types.MetricSaleable)

	if report.TotalUnits != 2 || report.SkippedUnits != 0 {
		t.Fatalf("unexpected counts: total=%d skipped=%d", report.TotalUnits, report.SkippedUnits)
	}
	if len(report.Types) != 2 {
		t.Fatalf("expected 2 type rows, got %d", len(report.Types))
	}
	want := OverallAveragePsf(units, cfg, types.ModeStandard)
	if math.Abs(report.OverallAvgPsf-want) > 1e-9 {
		t.Errorf("report overall = %v, want %v", report.OverallAvgPsf, want)
	}
}

// TestBuildReportWarnsOnUntagged proves untagged units are grouped and
// surfaced as a warning.
func TestBuildReportWarnsOnUntagged(t *testing.T) {
	cfg := skewedConfig()
	units := append(skewedUnits(), types.Unit{Name: "U-01", SaleableArea: 50, ACArea: 40})

	priced := pricing.Evaluate(units, cfg, types.ModeStandard, nil)
	report := BuildReport(priced, cfg, types.ModeStandard, types.MetricSaleable)

	if len(report.Warnings) == 0 {
		t.Fatal("expected a warning for untagged units")
	}
	t.Logf("warnings: %v", report.Warnings)
}
