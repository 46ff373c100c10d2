// Package rules loads pricing configurations from rule files.
// Rule files are authored in HCL; optimized configurations round-trip
// through JSON so a later revert can restore the stored baselines.
package rules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"unit-pricing/core/types"
	"unit-pricing/internal/errors"
)

// rulesFile is the HCL file schema. Core pricing structs that map onto
// blocks one-to-one are decoded directly; the flat adder's column map
// needs its own block shape.
type rulesFile struct {
	DefaultBasePsf float64 `hcl:"default_base_psf"`
	TargetAvgPsf   float64 `hcl:"target_avg_psf,optional"`

	BedroomTypes []types.BedroomTypePricing        `hcl:"bedroom_type,block"`
	Views        []types.ViewPricing               `hcl:"view,block"`
	FloorRules   []types.FloorRiseRule             `hcl:"floor_rule,block"`
	Categories   []types.AdditionalCategoryPricing `hcl:"category,block"`
	Balcony      *types.BalconyPricing             `hcl:"balcony,block"`
	FlatAdders   []flatAdderBlock                  `hcl:"flat_adder,block"`
}

type flatAdderBlock struct {
	Units   []string      `hcl:"units,optional"`
	Columns []columnBlock `hcl:"column,block"`
	Amount  float64       `hcl:"amount"`
}

type columnBlock struct {
	Name   string   `hcl:"name,label"`
	Values []string `hcl:"values"`
}

// Load reads a pricing configuration from a rules file. The format is
// chosen by extension: .hcl for authored rule files, .json for
// configurations previously written by Save.
func Load(path string) (*types.PricingConfiguration, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return loadHCL(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, errors.Inputf("unsupported rules file extension: %s", path)
	}
}

func loadHCL(path string) (*types.PricingConfiguration, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to read rules file", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse rules file", diagsError(diags))
	}

	var raw rulesFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Parsing("failed to decode rules file", diagsError(diags))
	}

	cfg := &types.PricingConfiguration{
		DefaultBasePsf:       raw.DefaultBasePsf,
		TargetAvgPsf:         raw.TargetAvgPsf,
		BedroomTypes:         raw.BedroomTypes,
		Views:                raw.Views,
		FloorRiseRules:       raw.FloorRules,
		AdditionalCategories: raw.Categories,
	}
	if raw.Balcony != nil {
		cfg.Balcony = *raw.Balcony
	}
	for _, fa := range raw.FlatAdders {
		adder := types.FlatPriceAdder{
			Units:  fa.Units,
			Amount: fa.Amount,
		}
		if len(fa.Columns) > 0 {
			adder.Columns = make(map[string][]string, len(fa.Columns))
			for _, col := range fa.Columns {
				adder.Columns[col.Name] = col.Values
			}
		}
		cfg.FlatAdders = append(cfg.FlatAdders, adder)
	}

	return cfg, nil
}

func loadJSON(path string) (*types.PricingConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to read configuration file", err)
	}
	var cfg types.PricingConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Parsing("failed to decode configuration file", err)
	}
	return &cfg, nil
}

// Save writes a configuration as JSON, preserving the Original* shadow
// fields so the file stays revertible.
func Save(cfg *types.PricingConfiguration, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Internal("failed to encode configuration", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to write configuration file", err)
	}
	return nil
}

func diagsError(diags hcl.Diagnostics) error {
	return diags
}
