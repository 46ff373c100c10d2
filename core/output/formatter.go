// Package output provides output formatting for pricing and
// optimization runs. This package produces human and machine-readable
// outputs; it never computes anything itself.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"unit-pricing/core/aggregate"
	"unit-pricing/core/optimize"
	"unit-pricing/core/types"
	"unit-pricing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// RunMetadata contains execution context
type RunMetadata struct {
	// RunID uniquely identifies the run
	RunID string `json:"run_id"`

	// Timestamp is when the run was performed
	Timestamp string `json:"timestamp"`

	// Duration is how long the run took
	Duration string `json:"duration"`

	// Version is the tool version
	Version string `json:"version"`
}

// PricingRun is the complete output of a pricing pass.
type PricingRun struct {
	// Mode is the pricing mode used
	Mode types.PricingMode `json:"mode"`

	// Units holds the priced units in input order
	Units []types.PricedUnit `json:"units"`

	// Report is the value-weighted breakdown
	Report *aggregate.Report `json:"report"`

	// Metadata contains execution context
	Metadata RunMetadata `json:"metadata"`
}

// OptimizationRun is the complete output of an optimization pass.
type OptimizationRun struct {
	// Operation names the variant that ran (single, all)
	Operation string `json:"operation"`

	// BedroomType is set for single-type runs
	BedroomType string `json:"bedroom_type,omitempty"`

	// TargetPsf is the requested weighted-average target
	TargetPsf float64 `json:"target_psf"`

	// Result is the optimizer's outcome
	Result *optimize.Result `json:"result"`

	// Metadata contains execution context
	Metadata RunMetadata `json:"metadata"`
}

// RenderPricing writes a pricing run in the requested format.
func RenderPricing(w io.Writer, run *PricingRun, format Format, showDetails bool) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, run)
	case FormatCLI:
		renderPricingCLI(w, run, showDetails)
		return nil
	default:
		return errors.Inputf("unknown output format %q", format)
	}
}

// RenderOptimization writes an optimization run in the requested format.
func RenderOptimization(w io.Writer, run *OptimizationRun, format Format) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, run)
	case FormatCLI:
		renderOptimizationCLI(w, run)
		return nil
	default:
		return errors.Inputf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderPricingCLI(w io.Writer, run *PricingRun, showDetails bool) {
	if showDetails {
		fmt.Fprintln(w, "┌────────────────────────────────────────────────────────────────────────────┐")
		fmt.Fprintln(w, "│                              PRICED UNITS                                  │")
		fmt.Fprintln(w, "├────────────────────────────────────────────────────────────────────────────┤")
		fmt.Fprintf(w, "│ %-12s %-8s %5s %10s %12s %10s %10s │\n",
			"UNIT", "TYPE", "FLOOR", "AREA", "PRICE", "PSF", "AC PSF")
		for _, p := range run.Units {
			fmt.Fprintf(w, "│ %-12s %-8s %5d %10s %12s %10s %10s │\n",
				truncate(p.Name, 12),
				truncate(p.BedroomType, 8),
				p.Floor,
				area(p.SaleableArea),
				money(p.FinalPrice),
				money(p.FinalPsf),
				money(p.FinalAcPsf))
		}
		fmt.Fprintln(w, "└────────────────────────────────────────────────────────────────────────────┘")
	}

	if run.Report != nil {
		fmt.Fprint(w, run.Report.ToCLI())
	}
}

func renderOptimizationCLI(w io.Writer, run *OptimizationRun) {
	res := run.Result

	fmt.Fprintln(w, "┌────────────────────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                           OPTIMIZATION RESULT                              │")
	fmt.Fprintln(w, "├────────────────────────────────────────────────────────────────────────────┤")
	if run.BedroomType != "" {
		fmt.Fprintf(w, "│ %-30s %43s │\n", "Bedroom type", run.BedroomType)
	}
	fmt.Fprintf(w, "│ %-30s %43s │\n", "Target PSF", money(run.TargetPsf))
	fmt.Fprintf(w, "│ %-30s %43s │\n", "Initial weighted PSF", money(res.InitialMetric))
	fmt.Fprintf(w, "│ %-30s %43s │\n", "Final weighted PSF", money(res.FinalMetric))
	fmt.Fprintf(w, "│ %-30s %43d │\n", "Iterations", res.Iterations)
	status := "converged"
	if !res.Converged {
		status = "ran to iteration budget"
	}
	fmt.Fprintf(w, "│ %-30s %43s │\n", "Status", status)
	fmt.Fprintln(w, "└────────────────────────────────────────────────────────────────────────────┘")

	fmt.Fprintf(w, "\nRun %s completed in %s\n", run.Metadata.RunID, run.Metadata.Duration)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func area(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
