package resource

import (
	"testing"

	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
)

func TestHasEnough(t *testing.T) {
	balance := fiefdom.Resources{fiefdom.ResourceGold: 100, fiefdom.ResourceWood: 10}
	if !HasEnough(balance, fiefdom.Resources{fiefdom.ResourceGold: 100}) {
		t.Fatalf("expected balance to cover exact cost")
	}
	if HasEnough(balance, fiefdom.Resources{fiefdom.ResourceGold: 101}) {
		t.Fatalf("expected insufficient balance to fail")
	}
	if HasEnough(balance, fiefdom.Resources{fiefdom.ResourceStone: 1}) {
		t.Fatalf("expected missing resource kind to fail")
	}
}

func TestDeductAndRefundAreMirrors(t *testing.T) {
	result := fiefdom.NewActionResult()
	balance := fiefdom.Resources{fiefdom.ResourceGold: 100, fiefdom.ResourceWood: 50}
	costs := fiefdom.Resources{fiefdom.ResourceGold: 30, fiefdom.ResourceWood: 10}

	after := Deduct(1, balance, costs, result)
	if after[fiefdom.ResourceGold] != 70 || after[fiefdom.ResourceWood] != 40 {
		t.Fatalf("unexpected balance after deduct: %+v", after)
	}
	if len(result.SideEffects) != 2 {
		t.Fatalf("expected 2 diffs, got %d", len(result.SideEffects))
	}

	restored := Refund(1, after, costs, nil)
	if restored[fiefdom.ResourceGold] != 100 || restored[fiefdom.ResourceWood] != 50 {
		t.Fatalf("refund did not mirror deduct: %+v", restored)
	}
}

func TestCumulativeCostSumsPriorLevels(t *testing.T) {
	cfg := config.BuildingConfig{GoldCost: []int64{10, 20, 30}}
	got := CumulativeCost(cfg, 2)
	if got[fiefdom.ResourceGold] != 30 {
		t.Fatalf("expected cumulative cost 30 for level 2, got %d", got[fiefdom.ResourceGold])
	}
	if got := CumulativeCost(cfg, 0); len(got) != 0 {
		t.Fatalf("expected no cost at level 0, got %+v", got)
	}
}

func TestUpgradeCostExtrapolatesPastArray(t *testing.T) {
	cfg := config.BuildingConfig{GoldCost: []int64{10, 20, 30}}
	if got := UpgradeCost(cfg, 0)[fiefdom.ResourceGold]; got != 10 {
		t.Fatalf("expected level-0 upgrade cost 10, got %d", got)
	}
	if got := UpgradeCost(cfg, 5)[fiefdom.ResourceGold]; got != 60 {
		t.Fatalf("expected extrapolated upgrade cost 60, got %d", got)
	}
}

func TestMoveCostIsTenPercentOfCurrentLevel(t *testing.T) {
	cfg := config.BuildingConfig{GoldCost: []int64{100, 200}}
	if got := MoveCost(cfg, 1)[fiefdom.ResourceGold]; got != 10 {
		t.Fatalf("expected move cost 10 at level 1, got %d", got)
	}
	if got := MoveCost(cfg, 2)[fiefdom.ResourceGold]; got != 20 {
		t.Fatalf("expected move cost 20 at level 2, got %d", got)
	}
	if got := MoveCost(cfg, 0); len(got) != 0 {
		t.Fatalf("expected no move cost under construction, got %+v", got)
	}
}

func TestDemolishRefundIsEightyPercentOfCumulative(t *testing.T) {
	cfg := config.BuildingConfig{GoldCost: []int64{100, 100}}
	got := DemolishRefund(cfg, 2)
	if got[fiefdom.ResourceGold] != 160 {
		t.Fatalf("expected refund 160 (80%% of 200), got %d", got[fiefdom.ResourceGold])
	}
}

func TestWallLevelOneCostAndUpgradeCost(t *testing.T) {
	cfg := config.WallGenerationConfig{GoldCost: []int64{200, 400}, StoneCost: []int64{200, 400}}
	cost := WallLevelOneCost(cfg)
	if cost[fiefdom.ResourceGold] != 200 || cost[fiefdom.ResourceStone] != 200 {
		t.Fatalf("unexpected level-one cost: %+v", cost)
	}
	upgrade := WallUpgradeCost(cfg, 1)
	if upgrade[fiefdom.ResourceGold] != 400 || upgrade[fiefdom.ResourceStone] != 400 {
		t.Fatalf("unexpected upgrade cost: %+v", upgrade)
	}
}

func TestWallHP(t *testing.T) {
	cfg := config.WallGenerationConfig{HP: []int64{1000, 2000, 3000}}
	if got := WallHP(cfg, 0); got != 0 {
		t.Fatalf("expected 0 HP at level 0, got %d", got)
	}
	if got := WallHP(cfg, 1); got != 1000 {
		t.Fatalf("expected 1000 HP at level 1, got %d", got)
	}
	if got := WallHP(cfg, 4); got != 4000 {
		t.Fatalf("expected extrapolated 4000 HP at level 4, got %d", got)
	}
}
