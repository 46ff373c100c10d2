// Package units loads unit records from JSON files.
// The loader follows the engine's local-recovery posture: suspicious rows
// are logged and kept, never dropped silently, and one malformed row does
// not abort the batch.
package units

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"unit-pricing/core/types"
	"unit-pricing/internal/errors"
	"unit-pricing/internal/logging"
)

// Load reads a JSON array of unit records.
func Load(path string) ([]types.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to read units file", err)
	}

	var units []types.Unit
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, errors.Parsing("failed to decode units file", err)
	}

	for _, u := range units {
		if u.Name == "" {
			logging.Warn("unit record has no name")
		}
		if u.SaleableArea <= 0 && u.ACArea <= 0 {
			// Priced anyway; the evaluator yields zero metrics for it.
			logging.Warn("unit has no positive area", zap.String("unit", u.Name))
		}
		if u.Floor < 0 {
			logging.Warn("unit has a negative floor index",
				zap.String("unit", u.Name), zap.Int("floor", u.Floor))
		}
	}

	return units, nil
}
