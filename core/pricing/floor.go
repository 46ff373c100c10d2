// Package pricing implements the rule-based unit pricing evaluator.
// All functions are pure: inputs are never mutated and identical inputs
// produce identical outputs.
package pricing

import (
	"sort"

	"unit-pricing/core/types"
)

// FloorPremium converts a floor index and a set of floor-rise rules into
// the cumulative per-area premium for that floor.
//
// The walk visits floors 1..floor in order. A floor inside a rule's range
// contributes the rule's PsfIncrement; every JumpEveryFloor-th floor of the
// range additionally contributes JumpIncrement. Floors covered by no rule
// contribute nothing. Rules are evaluated in ascending start-floor order;
// non-overlap is a caller-enforced invariant.
//
// With non-negative rule parameters the result is non-decreasing in floor.
func FloorPremium(floor int, rules []types.FloorRiseRule) float64 {
	if floor <= 0 || len(rules) == 0 {
		return 0
	}

	sorted := make([]types.FloorRiseRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartFloor < sorted[j].StartFloor
	})

	premium := 0.0
	for _, rule := range sorted {
		if rule.StartFloor > floor {
			break
		}

		// An open-ended rule runs to the target floor.
		end := floor
		if rule.EndFloor != nil && *rule.EndFloor < end {
			end = *rule.EndFloor
		}

		for f := rule.StartFloor; f <= end; f++ {
			premium += rule.PsfIncrement

			if rule.JumpEveryFloor != nil && rule.JumpIncrement != nil && *rule.JumpEveryFloor > 0 {
				// Jump floors are counted from the rule's own start.
				offset := f - rule.StartFloor + 1
				if offset%*rule.JumpEveryFloor == 0 {
					premium += *rule.JumpIncrement
				}
			}
		}
	}

	return premium
}
