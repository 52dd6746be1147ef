package morale

import (
	"testing"

	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
)

func TestBuildingContributionModes(t *testing.T) {
	add := config.BuildingConfig{MoraleBoost: 2, MoraleEffectMode: "add"}
	if got := BuildingContribution(add, 3); got != 6 {
		t.Fatalf("expected additive contribution 6, got %v", got)
	}

	max := config.BuildingConfig{MoraleBoost: 5, MoraleEffectMode: "max"}
	if got := BuildingContribution(max, 3); got != 5 {
		t.Fatalf("expected max-mode contribution 5 regardless of count, got %v", got)
	}

	mul := config.BuildingConfig{MoraleBoost: 2, MoraleEffectMode: "multiply"}
	if got := BuildingContribution(mul, 3); got != 8 {
		t.Fatalf("expected multiplicative contribution 2^3=8, got %v", got)
	}
}

func TestBuildingContributionUnknownModeDefaultsToAdd(t *testing.T) {
	cfg := config.BuildingConfig{MoraleBoost: 1, MoraleEffectMode: "bogus"}
	if got := BuildingContribution(cfg, 4); got != 4 {
		t.Fatalf("expected unknown mode to fall back to add, got %v", got)
	}
}

func TestCalculateClampsToEnvelope(t *testing.T) {
	cfgCache := &config.Cache{
		BuildingTypes: map[string]config.BuildingConfig{
			"shrine": {MoraleBoost: 2000, MoraleEffectMode: "add"},
		},
	}
	snap := fiefdom.Snapshot{
		Buildings: []fiefdom.Building{{Type: "shrine", Level: 1}},
	}
	if got := Calculate(cfgCache, snap); got != maxMorale {
		t.Fatalf("expected clamp to %v, got %v", maxMorale, got)
	}
}

func TestCalculateIgnoresUnderConstructionBuildings(t *testing.T) {
	cfgCache := &config.Cache{
		BuildingTypes: map[string]config.BuildingConfig{
			"shrine": {MoraleBoost: 10, MoraleEffectMode: "add"},
		},
	}
	snap := fiefdom.Snapshot{
		Buildings: []fiefdom.Building{{Type: "shrine", Level: 0}},
	}
	if got := Calculate(cfgCache, snap); got != 0 {
		t.Fatalf("expected 0 morale from an unfinished building, got %v", got)
	}
}

func TestWallContributionExtrapolatesPastLevelArray(t *testing.T) {
	cfgCache := &config.Cache{
		Wall: config.WallConfig{
			Walls: map[string]config.WallGenerationConfig{
				"1": {MoraleBoost: []float64{2, 4}},
			},
		},
	}
	walls := []fiefdom.Wall{{Generation: 1, Level: 4}}
	if got := WallContribution(cfgCache, walls); got != 8 {
		t.Fatalf("expected extrapolated wall contribution 8, got %v", got)
	}
}
