// Package cmd - optimize command
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"unit-pricing/adapters/rules"
	"unit-pricing/core/optimize"
	"unit-pricing/core/output"
	"unit-pricing/internal/config"
)

var (
	optimizeType  string
	optimizeTypes []string
	targetPsf     float64
	scopeFlag     string
	outFile       string
)

// optimizeCmd runs gradient-descent parameter search
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Tune pricing parameters toward a weighted PSF target",
	Long: `Run gradient descent over the configuration's tunable parameters so
the weighted-average PSF reaches the target with minimal drift from the
baseline values.

With --type, only that bedroom type's base rate is tuned. Otherwise the
selected types' base rates and every view adjustment are tuned; with
--scope all_parameters the floor-rule increments are freed as well.

The optimized configuration is written with its pre-optimization values
embedded, so a later revert can restore them.

Examples:
  unit-pricing optimize --units units.json --rules pricing.hcl --type 2BR --target 1950
  unit-pricing optimize --units units.json --rules pricing.hcl --target 1900 --scope all_parameters -o optimized.json`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&unitsFile, "units", "u", "", "units JSON file (required)")
	optimizeCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "pricing rules file, .hcl or .json (required)")
	optimizeCmd.Flags().StringVarP(&modeFlag, "mode", "m", "standard", "pricing mode (standard, ac_only)")
	optimizeCmd.Flags().StringVar(&metricFlag, "metric", "saleable", "metric area (saleable, ac)")
	optimizeCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	optimizeCmd.Flags().StringVarP(&optimizeType, "type", "t", "", "optimize a single bedroom type")
	optimizeCmd.Flags().StringSliceVar(&optimizeTypes, "types", nil, "bedroom types to include (default all)")
	optimizeCmd.Flags().Float64Var(&targetPsf, "target", 0, "target weighted-average PSF (required)")
	optimizeCmd.Flags().StringVar(&scopeFlag, "scope", string(optimize.ScopeBaseOnly), "parameter scope (base_only, all_parameters)")
	optimizeCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the optimized configuration JSON to this file")
	_ = optimizeCmd.MarkFlagRequired("units")
	_ = optimizeCmd.MarkFlagRequired("rules")
	_ = optimizeCmd.MarkFlagRequired("target")
}

func runOptimize(cmd *cobra.Command, args []string) error {
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

	// Ctrl-C stops the descent at the next iteration boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := config.Get().Optimizer

	var result *optimize.Result
	operation := "all"
	if optimizeType != "" {
		operation = "single"
		result, err = optimize.OptimizeSingle(ctx, unitList, cfg, mode, optimizeType, targetPsf, metric, opts)
	} else {
		result, err = optimize.OptimizeAll(ctx, unitList, cfg, mode, targetPsf, optimizeTypes, optimize.Scope(scopeFlag), metric, opts)
	}
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := rules.Save(result.Config, outFile); err != nil {
			return err
		}
		fmt.Printf("Optimized configuration written to %s\n", outFile)
	}

	run := &output.OptimizationRun{
		Operation:   operation,
		BedroomType: optimizeType,
		TargetPsf:   targetPsf,
		Result:      result,
		Metadata:    runMetadata(startTime),
	}

	return output.RenderOptimization(os.Stdout, run, resolveFormat())
}
