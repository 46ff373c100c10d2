// Package cmd provides the CLI commands for unit-pricing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"unit-pricing/internal/config"
	"unit-pricing/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "unit-pricing",
	Short: "Simulate and optimize rule-based unit pricing",
	Long: `unit-pricing evaluates rule-based prices for real-estate units and
tunes the configuration's parameters so a weighted target price-per-area
metric is reached with minimal drift from the baseline values.

Examples:
  unit-pricing price --units units.json --rules pricing.hcl
  unit-pricing optimize --units units.json --rules pricing.hcl --type 2BR --target 1950
  unit-pricing revert --rules optimized.json --scope all`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.unit-pricing.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(revertCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("unit-pricing version 0.1.0")
	},
}
