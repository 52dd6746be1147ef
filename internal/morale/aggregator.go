// Package morale composes the per-source morale contributions of a
// fiefdom snapshot into a single clamped score.
package morale

import (
	"math"

	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
)

const (
	minMorale = -1000.0
	maxMorale = 1000.0
)

// EffectMode is the composition rule for a building's morale contribution
// when the fiefdom holds multiple operational copies.
type EffectMode string

const (
	ModeAdd      EffectMode = "add"
	ModeMax      EffectMode = "max"
	ModeMultiply EffectMode = "multiply"
)

func parseMode(s string) EffectMode {
	switch EffectMode(s) {
	case ModeAdd, ModeMax, ModeMultiply:
		return EffectMode(s)
	default:
		return ModeAdd
	}
}

func clamp(v float64) float64 {
	return math.Max(minMorale, math.Min(maxMorale, v))
}

// BuildingContribution computes one building type's morale contribution
// given how many operational instances the fiefdom holds.
func BuildingContribution(cfg config.BuildingConfig, count int) float64 {
	if cfg.MoraleBoost == 0 || count == 0 {
		return 0
	}
	switch parseMode(cfg.MoraleEffectMode) {
	case ModeMax:
		return cfg.MoraleBoost
	case ModeMultiply:
		result := 1.0
		for i := 0; i < count; i++ {
			result *= cfg.MoraleBoost
		}
		return result
	default:
		return cfg.MoraleBoost * float64(count)
	}
}

// WallContribution sums the morale_boost of every wall at level >= 1,
// indexed by level and extrapolated past the array length.
func WallContribution(cfgCache *config.Cache, walls []fiefdom.Wall) float64 {
	var total float64
	for _, w := range walls {
		if w.Level <= 0 {
			continue
		}
		genCfg, ok := cfgCache.WallGeneration(w.Generation)
		if !ok {
			continue
		}
		if boost, ok := config.ExtrapolateFloat64(genCfg.MoraleBoost, w.Level-1); ok {
			total += boost
		}
	}
	return total
}

func leveledContribution(boost []float64, level int) float64 {
	if level <= 0 || len(boost) == 0 {
		return 0
	}
	v, ok := config.ExtrapolateFloat64(boost, level-1)
	if !ok {
		return 0
	}
	return v
}

// Calculate computes the clamped fiefdom-wide morale score from a full
// snapshot and the config catalogue.
func Calculate(cfgCache *config.Cache, snap fiefdom.Snapshot) float64 {
	var total float64

	counts := map[string]int{}
	for _, b := range snap.Buildings {
		if b.Level >= 1 {
			counts[b.Type]++
		}
	}
	for buildingType, count := range counts {
		if cfg, ok := cfgCache.BuildingConfigFor(buildingType); ok {
			total += BuildingContribution(cfg, count)
		}
	}

	total += WallContribution(cfgCache, snap.Walls)

	for _, o := range snap.Officials {
		if tmpl, ok := cfgCache.Officials[o.TemplateID]; ok {
			total += leveledContribution(tmpl.MoraleBoost, o.Level)
		}
	}
	for _, h := range snap.Heroes {
		if tmpl, ok := cfgCache.Heroes[h.HeroID]; ok {
			total += leveledContribution(tmpl.MoraleBoost, h.Level)
		}
	}
	for _, c := range snap.Combatants {
		if tmpl, ok := cfgCache.PlayerCombatants[c.CombatantID]; ok {
			total += leveledContribution(tmpl.MoraleBoost, c.Level)
		}
	}

	return clamp(total)
}
