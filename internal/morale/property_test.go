//go:build property
// +build property

package morale_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/morale"
)

// TestCalculateAlwaysWithinEnvelope verifies Calculate never escapes the
// fixed [-1000, 1000] morale envelope, for any mix of operational
// buildings, regardless of how extreme their catalogue morale_boost is.
func TestCalculateAlwaysWithinEnvelope(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("morale is always clamped to [-1000, 1000]", prop.ForAll(
		func(boost float64, count int, mode string) bool {
			cfg := &config.Cache{
				BuildingTypes: map[string]config.BuildingConfig{
					"keep": {MoraleBoost: boost, MoraleEffectMode: mode},
				},
			}
			var buildings []fiefdom.Building
			for i := 0; i < count; i++ {
				buildings = append(buildings, fiefdom.Building{Type: "keep", Level: 1})
			}
			snap := fiefdom.Snapshot{Buildings: buildings}

			score := morale.Calculate(cfg, snap)
			return score >= -1000 && score <= 1000
		},
		gen.Float64Range(-1_000_000, 1_000_000),
		gen.IntRange(0, 50),
		gen.OneConstOf("add", "max", "multiply", "bogus"),
	))

	properties.TestingRun(t)
}

// TestUnknownModeDefaultsToAdd verifies an unrecognised morale_effect_mode
// string always falls back to the additive rule, never max or multiply.
func TestUnknownModeDefaultsToAdd(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("an unknown mode behaves exactly like add", prop.ForAll(
		func(boost float64, count int, mode string) bool {
			switch mode {
			case "add", "max", "multiply":
				return true // not the case under test
			}
			cfg := config.BuildingConfig{MoraleBoost: boost, MoraleEffectMode: mode}
			addCfg := config.BuildingConfig{MoraleBoost: boost, MoraleEffectMode: "add"}

			return morale.BuildingContribution(cfg, count) == morale.BuildingContribution(addCfg, count)
		},
		gen.Float64Range(-1000, 1000),
		gen.IntRange(0, 20),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
