// Package optimize - optimizer behavior and revert-law tests
package optimize

import (
	"context"
	"math"
	"testing"

	"unit-pricing/core/aggregate"
	"unit-pricing/core/types"
	"unit-pricing/internal/errors"
)

func intPtr(v int) *int { return &v }

// testOptions are tuned for the small synthetic populations below: the
// finite-difference step has to span the 1,000-rounding granularity of
// 100-area units, and the drift penalty is kept light so the target
// deviation dominates.
func testOptions() Options {
	opts := DefaultOptions()
	opts.Epsilon = 5
	opts.ConstraintFactor = 0.001
	return opts
}

func optimizerConfig() *types.PricingConfiguration {
	return &types.PricingConfiguration{
		DefaultBasePsf: 900,
		BedroomTypes: []types.BedroomTypePricing{
			{Type: "1BR", BasePsf: 1000},
			{Type: "2BR", BasePsf: 1500},
		},
		Views: []types.ViewPricing{
			{View: "sea", PsfAdjustment: 100},
		},
	}
}

// optimizerUnits is a flat population: equal areas, ground floor, no
// balconies, so weighted averages are easy to reason about by hand.
func optimizerUnits() []types.Unit {
	return []types.Unit{
		{Name: "U-01", BedroomType: "1BR", SaleableArea: 100, ACArea: 100},
		{Name: "U-02", BedroomType: "1BR", View: "sea", SaleableArea: 100, ACArea: 100},
		{Name: "U-03", BedroomType: "2BR", SaleableArea: 100, ACArea: 100},
		{Name: "U-04", BedroomType: "2BR", View: "sea", SaleableArea: 100, ACArea: 100},
	}
}

// TestOptimizeSingleRaisesOnlyTargetType proves a target above the
// current average raises that type's base rate and touches nothing else.
func TestOptimizeSingleRaisesOnlyTargetType(t *testing.T) {
	units := optimizerUnits()
	cfg := optimizerConfig()
	target := 1150.0

	res, err := OptimizeSingle(context.Background(), units, cfg, types.ModeStandard, "1BR", target, types.MetricSaleable, testOptions())
	if err != nil {
		t.Fatalf("OptimizeSingle: %v", err)
	}

	if res.FinalMetric <= res.InitialMetric {
		t.Fatalf("final metric %v did not rise above initial %v", res.FinalMetric, res.InitialMetric)
	}
	if math.Abs(res.FinalMetric-target) > 20 {
		t.Fatalf("final metric %v too far from target %v after %d iterations",
			res.FinalMetric, target, res.Iterations)
	}

	bt, _ := res.Config.BedroomType("1BR")
	if bt.BasePsf <= 1000 {
		t.Errorf("1BR base rate %v did not increase", bt.BasePsf)
	}
	if bt.OriginalBasePsf == nil || *bt.OriginalBasePsf != 1000 {
		t.Error("pre-optimization base rate was not recorded")
	}

	other, _ := res.Config.BedroomType("2BR")
	if other.BasePsf != 1500 || other.OriginalBasePsf != nil {
		t.Errorf("2BR was touched: base=%v original=%v", other.BasePsf, other.OriginalBasePsf)
	}
	if v, _ := res.Config.View("sea"); v.PsfAdjustment != 100 {
		t.Errorf("view adjustment was touched: %v", v.PsfAdjustment)
	}

	// The caller's configuration must be untouched.
	if in, _ := cfg.BedroomType("1BR"); in.BasePsf != 1000 || in.OriginalBasePsf != nil {
		t.Error("input configuration was mutated")
	}

	t.Logf("initial=%v final=%v iterations=%d converged=%v",
		res.InitialMetric, res.FinalMetric, res.Iterations, res.Converged)
}

// TestOptimizeAllApproachesTarget proves the base+view parameterization
// closes most of the gap to the overall target.
func TestOptimizeAllApproachesTarget(t *testing.T) {
	units := optimizerUnits()
	cfg := optimizerConfig()
	target := 1400.0

	res, err := OptimizeAll(context.Background(), units, cfg, types.ModeStandard, target, nil, ScopeBaseOnly, types.MetricSaleable, testOptions())
	if err != nil {
		t.Fatalf("OptimizeAll: %v", err)
	}

	initialGap := math.Abs(res.InitialMetric - target)
	finalGap := math.Abs(res.FinalMetric - target)
	if finalGap >= initialGap {
		t.Fatalf("gap did not shrink: initial %v, final %v", initialGap, finalGap)
	}
	if finalGap > 30 {
		t.Fatalf("final metric %v too far from target %v", res.FinalMetric, target)
	}

	for _, bt := range res.Config.BedroomTypes {
		if bt.OriginalBasePsf == nil {
			t.Errorf("type %s has no recorded baseline", bt.Type)
		}
	}
	for _, v := range res.Config.Views {
		if v.OriginalPsfAdjustment == nil {
			t.Errorf("view %s has no recorded baseline", v.View)
		}
	}

	t.Logf("initial=%v final=%v iterations=%d", res.InitialMetric, res.FinalMetric, res.Iterations)
}

// TestOptimizeAllFullScopeKeepsIncrementsNonNegative proves the full
// parameterization never drives a floor increment negative, even when
// the target pulls every parameter down hard.
func TestOptimizeAllFullScopeKeepsIncrementsNonNegative(t *testing.T) {
	units := []types.Unit{
		{Name: "F-01", BedroomType: "1BR", Floor: 3, SaleableArea: 100, ACArea: 100},
		{Name: "F-10", BedroomType: "1BR", Floor: 10, SaleableArea: 100, ACArea: 100},
		{Name: "F-18", BedroomType: "2BR", Floor: 18, SaleableArea: 100, ACArea: 100},
	}
	jump := 20.0
	cfg := optimizerConfig()
	cfg.FloorRiseRules = []types.FloorRiseRule{
		{StartFloor: 1, EndFloor: intPtr(10), PsfIncrement: 5},
		{StartFloor: 11, PsfIncrement: 8, JumpEveryFloor: intPtr(5), JumpIncrement: &jump},
	}

	initial := aggregate.OverallAveragePsf(units, cfg, types.ModeStandard)
	target := initial - 400 // unconstrained descent would go negative

	res, err := OptimizeAll(context.Background(), units, cfg, types.ModeStandard, target, nil, ScopeAllParameters, types.MetricSaleable, testOptions())
	if err != nil {
		t.Fatalf("OptimizeAll: %v", err)
	}

	for i, rule := range res.Config.FloorRiseRules {
		if rule.PsfIncrement <= 0 {
			t.Errorf("rule %d: psf increment went non-positive: %v", i, rule.PsfIncrement)
		}
		if rule.JumpIncrement != nil && *rule.JumpIncrement < 0 {
			t.Errorf("rule %d: jump increment went negative: %v", i, *rule.JumpIncrement)
		}
	}
	for _, bt := range res.Config.BedroomTypes {
		if bt.BasePsf < 1 {
			t.Errorf("type %s base rate fell below 1: %v", bt.Type, bt.BasePsf)
		}
	}
	if res.Config.OriginalFloorRiseRules == nil {
		t.Error("original floor rules were not recorded")
	}

	t.Logf("initial=%v final=%v", res.InitialMetric, res.FinalMetric)
}

// TestRevertLawSingle proves revert restores every numeric field a
// single-type run touched.
func TestRevertLawSingle(t *testing.T) {
	units := optimizerUnits()
	cfg := optimizerConfig()

	res, err := OptimizeSingle(context.Background(), units, cfg, types.ModeStandard, "1BR", 1200, types.MetricSaleable, testOptions())
	if err != nil {
		t.Fatalf("OptimizeSingle: %v", err)
	}

	reverted := Revert(res.Config, "1BR")

	bt, _ := reverted.BedroomType("1BR")
	if bt.BasePsf != 1000 {
		t.Errorf("base rate not restored: %v", bt.BasePsf)
	}
	if bt.OriginalBasePsf != nil {
		t.Error("baseline shadow field not cleared")
	}
	if bt.TargetAvgPsf != 0 {
		t.Errorf("per-type target not cleared: %v", bt.TargetAvgPsf)
	}
	if reverted.IsOptimized || len(reverted.OptimizedTypes) != 0 {
		t.Errorf("optimization bookkeeping not cleared: optimized=%v types=%v",
			reverted.IsOptimized, reverted.OptimizedTypes)
	}
}

// TestRevertLawAll proves a whole-configuration revert restores bases,
// views and floor rules after a full-scope run.
func TestRevertLawAll(t *testing.T) {
	units := []types.Unit{
		{Name: "F-05", BedroomType: "1BR", Floor: 5, SaleableArea: 100, ACArea: 100},
		{Name: "F-09", BedroomType: "2BR", View: "sea", Floor: 9, SaleableArea: 100, ACArea: 100},
	}
	cfg := optimizerConfig()
	cfg.FloorRiseRules = []types.FloorRiseRule{
		{StartFloor: 1, EndFloor: intPtr(12), PsfIncrement: 6},
	}

	res, err := OptimizeAll(context.Background(), units, cfg, types.ModeStandard, 1600, nil, ScopeAllParameters, types.MetricSaleable, testOptions())
	if err != nil {
		t.Fatalf("OptimizeAll: %v", err)
	}

	reverted := Revert(res.Config, RevertAll)

	for i, bt := range reverted.BedroomTypes {
		if bt.BasePsf != cfg.BedroomTypes[i].BasePsf || bt.OriginalBasePsf != nil {
			t.Errorf("type %s not restored: base=%v", bt.Type, bt.BasePsf)
		}
	}
	for i, v := range reverted.Views {
		if v.PsfAdjustment != cfg.Views[i].PsfAdjustment || v.OriginalPsfAdjustment != nil {
			t.Errorf("view %s not restored: adjustment=%v", v.View, v.PsfAdjustment)
		}
	}
	for i, rule := range reverted.FloorRiseRules {
		if rule.PsfIncrement != cfg.FloorRiseRules[i].PsfIncrement {
			t.Errorf("floor rule %d not restored: increment=%v", i, rule.PsfIncrement)
		}
	}
	if reverted.OriginalFloorRiseRules != nil || reverted.IsOptimized || reverted.TargetAvgPsf != 0 {
		t.Error("whole-configuration bookkeeping not cleared")
	}
}

// TestOptimizeRejectsInvalidRequests proves bad targets and empty
// selections fail with typed errors instead of silent NaN results.
func TestOptimizeRejectsInvalidRequests(t *testing.T) {
	units := optimizerUnits()
	cfg := optimizerConfig()
	ctx := context.Background()

	if _, err := OptimizeSingle(ctx, units, cfg, types.ModeStandard, "1BR", 0, types.MetricSaleable, testOptions()); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("zero target: got %v, want INPUT_ERROR", err)
	}
	if _, err := OptimizeSingle(ctx, units, cfg, types.ModeStandard, "9BR", 1200, types.MetricSaleable, testOptions()); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("unknown type: got %v, want NOT_FOUND", err)
	}
	if _, err := OptimizeSingle(ctx, nil, cfg, types.ModeStandard, "1BR", 1200, types.MetricSaleable, testOptions()); !errors.IsType(err, errors.TypeOptimization) {
		t.Errorf("no units: got %v, want OPTIMIZATION_ERROR", err)
	}
	if _, err := OptimizeAll(ctx, units, cfg, types.ModeStandard, -5, nil, ScopeBaseOnly, types.MetricSaleable, testOptions()); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("negative target: got %v, want INPUT_ERROR", err)
	}
	if _, err := OptimizeAll(ctx, units, cfg, types.ModeStandard, 1400, nil, Scope("bogus"), types.MetricSaleable, testOptions()); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("bogus scope: got %v, want INPUT_ERROR", err)
	}
}

// TestOptimizeBudgetExhaustionIsNotAnError proves running to the
// iteration budget returns a result with the actual iteration count.
func TestOptimizeBudgetExhaustionIsNotAnError(t *testing.T) {
	opts := testOptions()
	opts.MaxIterations = 2
	opts.ConvergenceThreshold = 1e-12

	res, err := OptimizeSingle(context.Background(), optimizerUnits(), optimizerConfig(), types.ModeStandard, "1BR", 1500, types.MetricSaleable, opts)
	if err != nil {
		t.Fatalf("budget exhaustion should not error: %v", err)
	}
	if res.Converged {
		t.Error("run reported convergence despite the tiny threshold")
	}
	if res.Iterations != 2 {
		t.Errorf("iterations = %d, want the full budget of 2", res.Iterations)
	}
}

// TestOptimizeCancellation proves a cancelled context stops the descent.
func TestOptimizeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := OptimizeSingle(ctx, optimizerUnits(), optimizerConfig(), types.ModeStandard, "1BR", 1500, types.MetricSaleable, testOptions())
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
	t.Logf("cancelled run returned: %v", err)
}
