// Package pricing - floor premium invariant tests
package pricing

import (
	"testing"

	"unit-pricing/core/types"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

// TestFloorPremiumBandScenario walks the reference scenario: two bands,
// the upper one with a jump every 5 floors.
func TestFloorPremiumBandScenario(t *testing.T) {
	rules := []types.FloorRiseRule{
		{StartFloor: 1, EndFloor: intPtr(5), PsfIncrement: 10},
		{StartFloor: 6, EndFloor: intPtr(10), PsfIncrement: 15, JumpEveryFloor: intPtr(5), JumpIncrement: floatPtr(50)},
	}

	// 5 floors at 10, 5 floors at 15, plus one jump at the band's 5th floor.
	got := FloorPremium(10, rules)
	want := 5*10.0 + 5*15.0 + 50.0
	if got != want {
		t.Fatalf("FloorPremium(10) = %v, want %v", got, want)
	}
}

// TestFloorPremiumMonotonic proves the premium is non-decreasing in floor
// for non-negative rule parameters.
func TestFloorPremiumMonotonic(t *testing.T) {
	rules := []types.FloorRiseRule{
		{StartFloor: 1, EndFloor: intPtr(8), PsfIncrement: 7.5},
		{StartFloor: 12, PsfIncrement: 12, JumpEveryFloor: intPtr(3), JumpIncrement: floatPtr(20)},
	}

	prev := 0.0
	for floor := 0; floor <= 30; floor++ {
		premium := FloorPremium(floor, rules)
		if premium < prev {
			t.Fatalf("premium decreased from %v to %v at floor %d", prev, premium, floor)
		}
		prev = premium
	}
	t.Logf("premium at floor 30: %v", prev)
}

// TestFloorPremiumUncoveredFloors proves floors outside every band
// contribute nothing.
func TestFloorPremiumUncoveredFloors(t *testing.T) {
	rules := []types.FloorRiseRule{
		{StartFloor: 5, EndFloor: intPtr(10), PsfIncrement: 10},
	}

	if got := FloorPremium(4, rules); got != 0 {
		t.Errorf("floor below the band should carry no premium, got %v", got)
	}
	// Floors 11 and 12 are uncovered; the premium must stay flat.
	if FloorPremium(12, rules) != FloorPremium(10, rules) {
		t.Error("premium grew across uncovered floors above the band")
	}
}

// TestFloorPremiumOpenEndedRule proves a nil end floor runs to the
// target floor.
func TestFloorPremiumOpenEndedRule(t *testing.T) {
	rules := []types.FloorRiseRule{
		{StartFloor: 1, PsfIncrement: 2},
	}

	if got := FloorPremium(25, rules); got != 50 {
		t.Fatalf("open-ended rule premium at floor 25 = %v, want 50", got)
	}
}

// TestFloorPremiumUnsortedRules proves evaluation order does not depend
// on input order.
func TestFloorPremiumUnsortedRules(t *testing.T) {
	sorted := []types.FloorRiseRule{
		{StartFloor: 1, EndFloor: intPtr(5), PsfIncrement: 10},
		{StartFloor: 6, EndFloor: intPtr(10), PsfIncrement: 15},
	}
	reversed := []types.FloorRiseRule{sorted[1], sorted[0]}

	if FloorPremium(10, sorted) != FloorPremium(10, reversed) {
		t.Fatal("premium depends on rule input order")
	}
}

// TestFloorPremiumGroundFloor proves floor 0 and empty rules yield zero.
func TestFloorPremiumGroundFloor(t *testing.T) {
	rules := []types.FloorRiseRule{{StartFloor: 1, PsfIncrement: 10}}
	if got := FloorPremium(0, rules); got != 0 {
		t.Errorf("ground floor premium = %v, want 0", got)
	}
	if got := FloorPremium(10, nil); got != 0 {
		t.Errorf("premium with no rules = %v, want 0", got)
	}
}
