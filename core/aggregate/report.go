// Package aggregate - per-type pricing breakdown report
package aggregate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"unit-pricing/core/types"
)

// TypeBreakdown summarizes one bedroom type's priced population.
type TypeBreakdown struct {
	// BedroomType is the type tag; "(untagged)" groups units with no tag
	BedroomType string `json:"bedroom_type"`

	// UnitCount is the number of units priced under this type
	UnitCount int `json:"unit_count"`

	// TotalArea is the summed reference area of valid units
	TotalArea float64 `json:"total_area"`

	// TotalValue is the summed final price of valid units
	TotalValue float64 `json:"total_value"`

	// AvgPsf is the value-weighted average PSF
	AvgPsf float64 `json:"avg_psf"`

	// TargetAvgPsf is the configured target, zero when none is set
	TargetAvgPsf float64 `json:"target_avg_psf,omitempty"`
}

// Report is the value-weighted breakdown of a priced unit set.
type Report struct {
	// Mode is the pricing mode the report was computed under
	Mode types.PricingMode `json:"mode"`

	// Metric is the area denominator used throughout
	Metric types.MetricKind `json:"metric"`

	// Types holds one row per bedroom type, sorted by tag
	Types []TypeBreakdown `json:"types"`

	// TotalUnits counts every input unit, valid or not
	TotalUnits int `json:"total_units"`

	// SkippedUnits counts units discarded for non-positive area or price
	SkippedUnits int `json:"skipped_units"`

	// TotalValue is the summed final price over valid units
	TotalValue float64 `json:"total_value"`

	// TotalArea is the summed reference area over valid units
	TotalArea float64 `json:"total_area"`

	// OverallAvgPsf is total value over total area
	OverallAvgPsf float64 `json:"overall_avg_psf"`

	// Warnings flag data-quality conditions worth surfacing
	Warnings []string `json:"warnings,omitempty"`
}

const untaggedLabel = "(untagged)"

// BuildReport reduces priced units to a per-type breakdown.
func BuildReport(priced []types.PricedUnit, cfg *types.PricingConfiguration, mode types.PricingMode, metric types.MetricKind) *Report {
	report := &Report{
		Mode:       mode,
		Metric:     metric,
		TotalUnits: len(priced),
	}

	rows := make(map[string]*TypeBreakdown)
	for _, p := range priced {
		area := p.SaleableArea
		if metric == types.MetricAC {
			area = p.ACArea
		}
		if area <= 0 || p.FinalPrice <= 0 {
			report.SkippedUnits++
			continue
		}

		tag := p.BedroomType
		if tag == "" {
			tag = untaggedLabel
		}
		row, ok := rows[tag]
		if !ok {
			row = &TypeBreakdown{BedroomType: tag}
			if bt, found := cfg.BedroomType(p.BedroomType); found {
				row.TargetAvgPsf = bt.TargetAvgPsf
			}
			rows[tag] = row
		}

		row.UnitCount++
		row.TotalArea += area
		row.TotalValue += p.FinalPrice
		report.TotalArea += area
		report.TotalValue += p.FinalPrice
	}

	for _, row := range rows {
		if row.TotalArea > 0 {
			row.AvgPsf = row.TotalValue / row.TotalArea
		}
		report.Types = append(report.Types, *row)
	}
	sort.Slice(report.Types, func(i, j int) bool {
		return report.Types[i].BedroomType < report.Types[j].BedroomType
	})

	if report.TotalArea > 0 {
		report.OverallAvgPsf = report.TotalValue / report.TotalArea
	}

	report.generateWarnings(cfg)
	return report
}

func (r *Report) generateWarnings(cfg *types.PricingConfiguration) {
	if r.SkippedUnits > 0 {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("%d of %d units skipped for missing area or zero price", r.SkippedUnits, r.TotalUnits))
	}
	for _, row := range r.Types {
		if row.BedroomType == untaggedLabel {
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("%d units carry no bedroom type and were priced at the default base rate", row.UnitCount))
			continue
		}
		if _, ok := cfg.BedroomType(row.BedroomType); !ok {
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("bedroom type %q has units but no pricing entry", row.BedroomType))
		}
	}
}

// ToJSON returns the report as indented JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToCLI returns the report formatted for terminal display.
func (r *Report) ToCLI() string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("┌──────────────────────────────────────────────────────────────────────┐\n")
	sb.WriteString("│                 PRICING BREAKDOWN (Value-Weighted)                   │\n")
	sb.WriteString("├──────────────────────────────────────────────────────────────────────┤\n")
	for _, row := range r.Types {
		target := "—"
		if row.TargetAvgPsf > 0 {
			target = money(row.TargetAvgPsf)
		}
		sb.WriteString(fmt.Sprintf("│ %-12s %4d units   avg %10s/area   target %10s      \n",
			row.BedroomType, row.UnitCount, money(row.AvgPsf), target))
	}
	sb.WriteString("├──────────────────────────────────────────────────────────────────────┤\n")
	sb.WriteString(fmt.Sprintf("│ Overall: %s/area over %s area units (total value %s)\n",
		money(r.OverallAvgPsf), decimal.NewFromFloat(r.TotalArea).StringFixed(1), money(r.TotalValue)))
	sb.WriteString("└──────────────────────────────────────────────────────────────────────┘\n")

	for _, w := range r.Warnings {
		sb.WriteString(fmt.Sprintf("  ! %s\n", w))
	}

	return sb.String()
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
