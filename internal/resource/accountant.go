// Package resource implements the fiefdom resource ledger: reading,
// deducting and refunding the eight fungible resources, and the cost
// curves (cumulative, upgrade, move) derived from the building catalogue.
package resource

import (
	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
)

// HasEnough reports whether balance covers every named cost.
func HasEnough(balance fiefdom.Resources, costs fiefdom.Resources) bool {
	for k, amount := range costs {
		if balance[k] < amount {
			return false
		}
	}
	return true
}

// Deduct returns a copy of balance with costs subtracted (balance itself is
// left untouched), appending a DiffValue per
// changed field to result. It does not itself refuse an insufficient
// balance; callers must call HasEnough first so the negative-resources
// invariant is enforced at the handler boundary with the correct
// insufficient_resources error code.
func Deduct(fiefdomID int64, balance fiefdom.Resources, costs fiefdom.Resources, result *fiefdom.ActionResult) fiefdom.Resources {
	return apply(fiefdomID, balance, costs, -1, result)
}

// Refund is the additive mirror of Deduct.
func Refund(fiefdomID int64, balance fiefdom.Resources, amounts fiefdom.Resources, result *fiefdom.ActionResult) fiefdom.Resources {
	return apply(fiefdomID, balance, amounts, +1, result)
}

func apply(fiefdomID int64, balance fiefdom.Resources, amounts fiefdom.Resources, sign int64, result *fiefdom.ActionResult) fiefdom.Resources {
	out := balance.Clone()
	for _, k := range fiefdom.AllResourceKinds {
		amount, ok := amounts[k]
		if !ok || amount == 0 {
			continue
		}
		before := out[k]
		out[k] = before + sign*amount
		if result != nil {
			result.AppendDiff(string(k), "fiefdom", fiefdomID, before, out[k])
		}
	}
	return out
}

// CumulativeCost sums cost_fields[i][0..currentLevel-1] from the building
// config: the total spent reaching currentLevel, used for the demolish
// refund.
func CumulativeCost(cfg config.BuildingConfig, currentLevel int) fiefdom.Resources {
	out := fiefdom.Resources{}
	for _, cf := range cfg.CostFields() {
		var total int64
		for j := 0; j < currentLevel && j < len(cf.Costs); j++ {
			total += cf.Costs[j]
		}
		if total > 0 {
			out[fiefdom.ResourceKind(cf.Resource)] = total
		}
	}
	return out
}

// UpgradeCost is cost_fields[i][currentLevel], the cost of the next level,
// extrapolated past the array's length per the catalogue convention.
func UpgradeCost(cfg config.BuildingConfig, currentLevel int) fiefdom.Resources {
	out := fiefdom.Resources{}
	for _, cf := range cfg.CostFields() {
		if len(cf.Costs) == 0 {
			continue
		}
		if amount, ok := config.ExtrapolateInt64(cf.Costs, currentLevel); ok {
			out[fiefdom.ResourceKind(cf.Resource)] = amount
		}
	}
	return out
}

// MoveCost is full_cost/10 (integer division) of the current level's cost,
// per resource.
func MoveCost(cfg config.BuildingConfig, level int) fiefdom.Resources {
	out := fiefdom.Resources{}
	levelIndex := level - 1
	for _, cf := range cfg.CostFields() {
		if levelIndex < 0 || levelIndex >= len(cf.Costs) {
			continue
		}
		out[fiefdom.ResourceKind(cf.Resource)] = cf.Costs[levelIndex] / 10
	}
	return out
}

// DemolishRefund is 80% (integer floor, per resource) of CumulativeCost.
func DemolishRefund(cfg config.BuildingConfig, currentLevel int) fiefdom.Resources {
	cumulative := CumulativeCost(cfg, currentLevel)
	out := make(fiefdom.Resources, len(cumulative))
	for k, v := range cumulative {
		out[k] = (v * 80) / 100
	}
	return out
}

// WallUpgradeCost reads cost_fields[currentLevel] (gold/stone only) for a
// wall generation, i.e. the cost of advancing from currentLevel to
// currentLevel+1.
func WallUpgradeCost(cfg config.WallGenerationConfig, currentLevel int) fiefdom.Resources {
	out := fiefdom.Resources{}
	if currentLevel >= 0 && currentLevel < len(cfg.GoldCost) {
		out[fiefdom.ResourceGold] = cfg.GoldCost[currentLevel]
	}
	if currentLevel >= 0 && currentLevel < len(cfg.StoneCost) {
		out[fiefdom.ResourceStone] = cfg.StoneCost[currentLevel]
	}
	return out
}

// WallLevelOneCost is the cost of creating a wall generation at level 1.
func WallLevelOneCost(cfg config.WallGenerationConfig) fiefdom.Resources {
	out := fiefdom.Resources{}
	if len(cfg.GoldCost) > 0 {
		out[fiefdom.ResourceGold] = cfg.GoldCost[0]
	}
	if len(cfg.StoneCost) > 0 {
		out[fiefdom.ResourceStone] = cfg.StoneCost[0]
	}
	return out
}

// WallHP returns the hit points for a wall at the given level, extrapolated
// past the array's length.
func WallHP(cfg config.WallGenerationConfig, level int) int64 {
	if level <= 0 {
		return 0
	}
	amount, ok := config.ExtrapolateInt64(cfg.HP, level-1)
	if !ok {
		return 0
	}
	return amount
}
