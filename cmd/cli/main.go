// Package main is the entry point for the unit-pricing CLI.
package main

import (
	"os"

	"unit-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
