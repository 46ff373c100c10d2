// Package cmd - price command
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"unit-pricing/adapters/rules"
	"unit-pricing/adapters/units"
	"unit-pricing/core/aggregate"
	"unit-pricing/core/output"
	"unit-pricing/core/pricing"
	"unit-pricing/core/types"
	"unit-pricing/internal/config"
	"unit-pricing/internal/logging"
)

const version = "0.1.0"

var (
	unitsFile    string
	rulesFile    string
	modeFlag     string
	metricFlag   string
	outputFormat string
	showDetails  bool
)

// priceCmd evaluates every unit under the configured rules
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price every unit under a rules file",
	Long: `Evaluate the rule-based price of every unit and print the priced
units together with the value-weighted breakdown per bedroom type.

Examples:
  unit-pricing price --units units.json --rules pricing.hcl
  unit-pricing price --units units.json --rules pricing.hcl --mode ac_only --format json`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVarP(&unitsFile, "units", "u", "", "units JSON file (required)")
	priceCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "pricing rules file, .hcl or .json (required)")
	priceCmd.Flags().StringVarP(&modeFlag, "mode", "m", "standard", "pricing mode (standard, ac_only)")
	priceCmd.Flags().StringVar(&metricFlag, "metric", "saleable", "metric area (saleable, ac)")
	priceCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	priceCmd.Flags().BoolVarP(&showDetails, "details", "d", true, "show the per-unit table")
	_ = priceCmd.MarkFlagRequired("units")
	_ = priceCmd.MarkFlagRequired("rules")
}

func runPrice(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	unitList, cfg, err := loadInputs()
	if err != nil {
		return err
	}
	mode, err := parseMode(modeFlag)
	if err != nil {
		return err
	}
	metric, err := parseMetric(metricFlag)
	if err != nil {
		return err
	}

	logging.Info("pricing units")

	priced := pricing.Evaluate(unitList, cfg, mode, nil)
	report := aggregate.BuildReport(priced, cfg, mode, metric)

	run := &output.PricingRun{
		Mode:     mode,
		Units:    priced,
		Report:   report,
		Metadata: runMetadata(startTime),
	}

	return output.RenderPricing(os.Stdout, run, resolveFormat(), showDetails)
}

func loadInputs() ([]types.Unit, *types.PricingConfiguration, error) {
	unitList, err := units.Load(unitsFile)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := rules.Load(rulesFile)
	if err != nil {
		return nil, nil, err
	}
	return unitList, cfg, nil
}

func parseMode(s string) (types.PricingMode, error) {
	switch types.PricingMode(s) {
	case types.ModeStandard, types.ModeACOnly:
		return types.PricingMode(s), nil
	default:
		return "", fmt.Errorf("unknown pricing mode %q (expected standard or ac_only)", s)
	}
}

func parseMetric(s string) (types.MetricKind, error) {
	switch types.MetricKind(s) {
	case types.MetricSaleable, types.MetricAC:
		return types.MetricKind(s), nil
	default:
		return "", fmt.Errorf("unknown metric %q (expected saleable or ac)", s)
	}
}

func resolveFormat() output.Format {
	if outputFormat != "" {
		return output.Format(outputFormat)
	}
	return output.Format(config.Get().Output.DefaultFormat)
}

func runMetadata(startTime time.Time) output.RunMetadata {
	return output.RunMetadata{
		RunID:     uuid.NewString(),
		Timestamp: startTime.Format(time.RFC3339),
		Duration:  time.Since(startTime).String(),
		Version:   version,
	}
}
