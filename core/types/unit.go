// Package types - Unit and priced-unit types
package types

// Unit is a single sellable unit as produced by the upload pipeline.
// Units are immutable: the engine never writes to them.
type Unit struct {
	// Name uniquely identifies the unit within a project (e.g. "A-12-03")
	Name string `json:"name"`

	// BedroomType is the layout tag used as the primary pricing key.
	// Empty means untagged; pricing falls back to the configured default.
	BedroomType string `json:"bedroom_type,omitempty"`

	// View is the view tag (e.g. "sea", "pool"). Empty means no view premium.
	View string `json:"view,omitempty"`

	// Floor is the zero-based floor index
	Floor int `json:"floor"`

	// SaleableArea is the strata/saleable area
	SaleableArea float64 `json:"saleable_area"`

	// ACArea is the air-conditioned (internal) area
	ACArea float64 `json:"ac_area"`

	// BalconyArea is the explicit balcony area. Nil means implied:
	// saleable minus AC area, when that difference is positive.
	BalconyArea *float64 `json:"balcony_area,omitempty"`

	// Categories maps ad-hoc column names to this unit's value for them
	// (e.g. "stack" -> "corner"). Multiple columns may carry premiums.
	Categories map[string]string `json:"categories,omitempty"`
}

// ResolvedBalconyArea returns the balcony area used for pricing: the
// explicit value when present, otherwise saleable minus AC area when
// that difference is positive, otherwise zero.
func (u Unit) ResolvedBalconyArea() float64 {
	if u.BalconyArea != nil {
		return *u.BalconyArea
	}
	if implied := u.SaleableArea - u.ACArea; implied > 0 {
		return implied
	}
	return 0
}

// PricedUnit is a Unit plus every intermediate of a pricing pass.
// It is derived and transient: recomputed fresh on every Evaluate call,
// never cached or persisted.
type PricedUnit struct {
	Unit

	// BasePsf is the resolved per-area base rate for the unit's bedroom type
	BasePsf float64 `json:"base_psf"`

	// ViewPremium is the per-area adjustment for the unit's view tag
	ViewPremium float64 `json:"view_premium"`

	// FloorPremium is the cumulative per-area floor-rise premium
	FloorPremium float64 `json:"floor_premium"`

	// CategoryPremium is the sum of all matching category adjustments
	CategoryPremium float64 `json:"category_premium"`

	// PricedBalconyArea is the balcony area after full/remainder blending
	PricedBalconyArea float64 `json:"priced_balcony_area"`

	// EffectiveArea is the area the per-area rate is applied to
	EffectiveArea float64 `json:"effective_area"`

	// RawPrice is rate times effective area, before flat adders and rounding
	RawPrice float64 `json:"raw_price"`

	// FlatAddTotal is the sum of all flat adder amounts that applied
	FlatAddTotal float64 `json:"flat_add_total"`

	// FinalPrice is raw plus flat, rounded up to the nearest 1,000
	FinalPrice float64 `json:"final_price"`

	// FinalPsf is FinalPrice over the mode's reference area (zero when
	// the reference area is not positive)
	FinalPsf float64 `json:"final_psf"`

	// FinalAcPsf is FinalPrice over AC area (zero when AC area is not positive)
	FinalAcPsf float64 `json:"final_ac_psf"`
}
