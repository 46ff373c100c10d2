// Package types - Pricing configuration types
package types

// PricingMode selects how a unit's effective area and reference PSF are
// derived during evaluation.
type PricingMode string

const (
	// ModeStandard prices AC area plus blended balcony area, applies the
	// floor-rise premium, and reports PSF over saleable area.
	ModeStandard PricingMode = "standard"

	// ModeACOnly is the floor-less mode: the floor premium is skipped,
	// only AC area is priced, and PSF is reported over AC area.
	ModeACOnly PricingMode = "ac_only"
)

// MetricKind selects the area denominator of the weighted-average metric.
type MetricKind string

const (
	// MetricSaleable weights by saleable area
	MetricSaleable MetricKind = "saleable"

	// MetricAC weights by air-conditioned area
	MetricAC MetricKind = "ac"
)

// BedroomTypePricing holds the tunable base rate for one bedroom type.
type BedroomTypePricing struct {
	// Type is the bedroom-type tag (e.g. "2BR")
	Type string `json:"type" hcl:"type,label"`

	// BasePsf is the per-area base rate
	BasePsf float64 `json:"base_psf" hcl:"base_psf"`

	// TargetAvgPsf is the weighted-average PSF this type should reach
	TargetAvgPsf float64 `json:"target_avg_psf,omitempty" hcl:"target_avg_psf,optional"`

	// OriginalBasePsf is the pre-optimization base rate, kept for revert.
	// Nil means the type has never been optimized.
	OriginalBasePsf *float64 `json:"original_base_psf,omitempty"`
}

// ViewPricing holds the per-area adjustment for one view tag.
type ViewPricing struct {
	// View is the view tag (e.g. "sea")
	View string `json:"view" hcl:"view,label"`

	// PsfAdjustment is added to the base rate for units carrying the view
	PsfAdjustment float64 `json:"psf_adjustment" hcl:"psf_adjustment"`

	// OriginalPsfAdjustment is the pre-optimization adjustment, for revert
	OriginalPsfAdjustment *float64 `json:"original_psf_adjustment,omitempty"`
}

// FloorRiseRule describes a contiguous band of floors sharing a per-floor
// increment. Rules are evaluated in ascending start-floor order; callers
// are responsible for keeping ranges non-overlapping.
type FloorRiseRule struct {
	// StartFloor is the first floor the rule covers (1-based, inclusive)
	StartFloor int `json:"start_floor" hcl:"start_floor"`

	// EndFloor is the last covered floor, inclusive. Nil means open-ended.
	EndFloor *int `json:"end_floor,omitempty" hcl:"end_floor,optional"`

	// PsfIncrement is added per floor inside the range
	PsfIncrement float64 `json:"psf_increment" hcl:"psf_increment"`

	// JumpEveryFloor adds JumpIncrement every N floors within the range
	JumpEveryFloor *int `json:"jump_every_floor,omitempty" hcl:"jump_every_floor,optional"`

	// JumpIncrement is the extra premium applied at each jump floor
	JumpIncrement *float64 `json:"jump_increment,omitempty" hcl:"jump_increment,optional"`
}

// AdditionalCategoryPricing holds the adjustment for one value of one
// ad-hoc category column.
type AdditionalCategoryPricing struct {
	// Column is the category column name (e.g. "stack")
	Column string `json:"column" hcl:"column"`

	// Category is the value within the column that attracts the premium
	Category string `json:"category" hcl:"category"`

	// PsfAdjustment is added per area unit when the unit matches
	PsfAdjustment float64 `json:"psf_adjustment" hcl:"psf_adjustment"`
}

// BalconyPricing controls how balcony area is blended into effective area.
// Both fields are percentages in [0, 100].
type BalconyPricing struct {
	// FullAreaPct is the share of balcony area priced at the full rate
	FullAreaPct float64 `json:"full_area_pct" hcl:"full_area_pct"`

	// RemainderRate is the rate, as a percentage of full, applied to the rest
	RemainderRate float64 `json:"remainder_rate" hcl:"remainder_rate"`
}

// FlatPriceAdder adds a fixed absolute amount to specific units.
// An adder with neither a unit list nor a column map never applies;
// that is deliberate, not an oversight.
type FlatPriceAdder struct {
	// Units is an allow-list of unit names. Empty means the filter is unset.
	Units []string `json:"units,omitempty" hcl:"units,optional"`

	// Columns maps a category column to the values that qualify.
	// Every configured column must match for the adder to apply.
	Columns map[string][]string `json:"columns,omitempty"`

	// Amount is the flat currency amount added to the final price
	Amount float64 `json:"amount" hcl:"amount"`
}

// PricingConfiguration aggregates every pricing rule plus optimization
// bookkeeping. Configurations are value-like: the optimizer returns new
// ones and never edits its input in place.
type PricingConfiguration struct {
	// DefaultBasePsf is the fallback base rate for untagged units
	DefaultBasePsf float64 `json:"default_base_psf"`

	// BedroomTypes holds the per-type base rates
	BedroomTypes []BedroomTypePricing `json:"bedroom_types"`

	// Views holds the per-view adjustments
	Views []ViewPricing `json:"views,omitempty"`

	// FloorRiseRules holds the floor premium bands
	FloorRiseRules []FloorRiseRule `json:"floor_rise_rules,omitempty"`

	// AdditionalCategories holds the ad-hoc column adjustments
	AdditionalCategories []AdditionalCategoryPricing `json:"additional_categories,omitempty"`

	// Balcony controls balcony area blending
	Balcony BalconyPricing `json:"balcony"`

	// FlatAdders holds the flat absolute-amount adders
	FlatAdders []FlatPriceAdder `json:"flat_adders,omitempty"`

	// TargetAvgPsf is the overall weighted-average target used by
	// whole-configuration optimization
	TargetAvgPsf float64 `json:"target_avg_psf,omitempty"`

	// TargetMetric records which metric kind the last optimization targeted
	TargetMetric MetricKind `json:"target_metric,omitempty"`

	// IsOptimized is true while any optimized values are in effect
	IsOptimized bool `json:"is_optimized,omitempty"`

	// OptimizedTypes lists the bedroom types currently carrying
	// optimized base rates
	OptimizedTypes []string `json:"optimized_types,omitempty"`

	// OriginalFloorRiseRules is the pre-optimization rule set, kept for
	// revert. Nil means floor rules have never been optimized.
	OriginalFloorRiseRules []FloorRiseRule `json:"original_floor_rise_rules,omitempty"`
}

// BedroomType returns the pricing entry for a type tag.
func (c *PricingConfiguration) BedroomType(typ string) (*BedroomTypePricing, bool) {
	for i := range c.BedroomTypes {
		if c.BedroomTypes[i].Type == typ {
			return &c.BedroomTypes[i], true
		}
	}
	return nil, false
}

// View returns the pricing entry for a view tag.
func (c *PricingConfiguration) View(view string) (*ViewPricing, bool) {
	for i := range c.Views {
		if c.Views[i].View == view {
			return &c.Views[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy. Optimizers work on clones so the caller's
// configuration is never mutated.
func (c *PricingConfiguration) Clone() *PricingConfiguration {
	out := *c

	if c.BedroomTypes != nil {
		out.BedroomTypes = make([]BedroomTypePricing, len(c.BedroomTypes))
		for i, bt := range c.BedroomTypes {
			out.BedroomTypes[i] = bt
			out.BedroomTypes[i].OriginalBasePsf = copyFloat(bt.OriginalBasePsf)
		}
	}

	if c.Views != nil {
		out.Views = make([]ViewPricing, len(c.Views))
		for i, v := range c.Views {
			out.Views[i] = v
			out.Views[i].OriginalPsfAdjustment = copyFloat(v.OriginalPsfAdjustment)
		}
	}

	out.FloorRiseRules = cloneRules(c.FloorRiseRules)
	out.OriginalFloorRiseRules = cloneRules(c.OriginalFloorRiseRules)

	out.AdditionalCategories = append([]AdditionalCategoryPricing(nil), c.AdditionalCategories...)
	out.OptimizedTypes = append([]string(nil), c.OptimizedTypes...)

	if c.FlatAdders != nil {
		out.FlatAdders = make([]FlatPriceAdder, len(c.FlatAdders))
		for i, fa := range c.FlatAdders {
			out.FlatAdders[i] = fa
			out.FlatAdders[i].Units = append([]string(nil), fa.Units...)
			if fa.Columns != nil {
				cols := make(map[string][]string, len(fa.Columns))
				for k, v := range fa.Columns {
					cols[k] = append([]string(nil), v...)
				}
				out.FlatAdders[i].Columns = cols
			}
		}
	}

	return &out
}

func cloneRules(rules []FloorRiseRule) []FloorRiseRule {
	if rules == nil {
		return nil
	}
	out := make([]FloorRiseRule, len(rules))
	for i, r := range rules {
		out[i] = r
		out[i].EndFloor = copyInt(r.EndFloor)
		out[i].JumpEveryFloor = copyInt(r.JumpEveryFloor)
		out[i].JumpIncrement = copyFloat(r.JumpIncrement)
	}
	return out
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
