// Package cmd - revert command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"unit-pricing/adapters/rules"
	"unit-pricing/core/optimize"
)

var revertScope string

// revertCmd restores pre-optimization values
var revertCmd = &cobra.Command{
	Use:   "revert",
	Short: "Restore pre-optimization pricing values",
	Long: `Restore the stored baseline values of an optimized configuration.

The scope is a bedroom type tag, or "all" to restore every optimized
field. Revert only copies stored baselines back; it never re-runs a
search.

Examples:
  unit-pricing revert --rules optimized.json --scope all -o pricing.json
  unit-pricing revert --rules optimized.json --scope 2BR -o pricing.json`,
	RunE: runRevert,
}

func init() {
	revertCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "optimized configuration JSON file (required)")
	revertCmd.Flags().StringVar(&revertScope, "scope", "all", `bedroom type to revert, or "all"`)
	revertCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the reverted configuration to this file (required)")
	_ = revertCmd.MarkFlagRequired("rules")
	_ = revertCmd.MarkFlagRequired("out")
}

func runRevert(cmd *cobra.Command, args []string) error {
	cfg, err := rules.Load(rulesFile)
	if err != nil {
		return err
	}

	scope := revertScope
	if scope == "all" {
		scope = optimize.RevertAll
	}

	reverted := optimize.Revert(cfg, scope)
	if err := rules.Save(reverted, outFile); err != nil {
		return err
	}

	fmt.Printf("Reverted configuration written to %s\n", outFile)
	return nil
}
