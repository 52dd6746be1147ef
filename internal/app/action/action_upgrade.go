package action

import (
	"context"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/resource"
)

var upgradeFields = []fieldSpec{
	{Name: "fiefdom_id", Code: "fiefdom_id_required", Schema: intSchema},
}

type upgradeHandler struct{}

func (upgradeHandler) Description() string {
	return "Upgrade a building (deferred, needs a TimeAdvancer tick) or a wall (immediate)"
}

func (upgradeHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	result := fiefdom.NewActionResult()

	fields, code, msg, ok := extractFields(payload, upgradeFields)
	if !ok {
		return result.Fail(code, msg)
	}
	fiefdomID := toInt64(fields["fiefdom_id"])

	buildingID, hasBuilding := fieldInt64(payload, "building_id")
	wallID, hasWall := fieldInt64(payload, "wall_id")
	if !hasBuilding && !hasWall {
		return result.Fail("upgrade_id_required", "Either building_id or wall_id is required")
	}

	if fiefdomID != actx.RequestingFiefdomID {
		return result.Fail("not_owner", "User does not own this fiefdom")
	}

	snap, err := uc.Store.FetchFiefdomByID(ctx, fiefdomID, ports.FetchOptions{})
	if err != nil {
		return result.Fail("not_found", "fiefdom not found")
	}

	if hasBuilding {
		b, err := uc.Store.FetchBuildingByID(ctx, buildingID)
		if err != nil || b.FiefdomID != fiefdomID {
			return result.Fail("not_owner", "User does not own this building")
		}
		if b.Level == 0 {
			return result.Fail("upgrade_in_progress", "Building is already under construction")
		}
		cfg, ok := uc.Config.BuildingConfigFor(b.Type)
		if !ok {
			return result.Fail("invalid_config", "Building configuration not found")
		}
		maxLevel := cfg.MaxLevel
		if maxLevel == 0 {
			maxLevel = 1
		}
		if b.Level >= maxLevel {
			return result.Fail("max_level_reached", "Building is at maximum level")
		}
		nextCost := resource.UpgradeCost(cfg, b.Level)
		if !resource.HasEnough(snap.Fiefdom.Balance(), nextCost) {
			return result.Fail("insufficient_resources", "Not enough resources to upgrade")
		}
	}

	if hasWall {
		w, err := uc.Store.FetchWallByID(ctx, wallID)
		if err != nil || w.FiefdomID != fiefdomID {
			return result.Fail("not_owner", "User does not own this wall")
		}
		if w.Level == 0 {
			return result.Fail("upgrade_in_progress", "Wall is already under construction")
		}
		genCfg, ok := uc.Config.WallGeneration(w.Generation)
		if !ok {
			return result.Fail("invalid_config", "Wall configuration not found")
		}
		if w.Level >= len(genCfg.HP) {
			return result.Fail("max_level_reached", "Wall is at maximum level")
		}
		cost := resource.WallUpgradeCost(genCfg, w.Level)
		if !resource.HasEnough(snap.Fiefdom.Balance(), cost) {
			return result.Fail("insufficient_resources", "Not enough resources to upgrade")
		}
	}

	return result.Ok()
}

func (h upgradeHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	validated := h.Validate(ctx, uc, payload, actx)
	if validated.Status != fiefdom.StatusOK {
		return validated
	}

	fiefdomID := toInt64(payload["fiefdom_id"])
	buildingID, hasBuilding := fieldInt64(payload, "building_id")
	wallID, hasWall := fieldInt64(payload, "wall_id")
	now := uc.Now().Unix()
	result := fiefdom.NewActionResult()

	err := uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		snap, err := uc.Store.FetchFiefdomByID(ctx, fiefdomID, ports.FetchOptions{})
		if err != nil {
			return err
		}
		balance := snap.Fiefdom.Balance()
		version := snap.Fiefdom.Version

		if hasBuilding {
			b, err := uc.Store.FetchBuildingByID(ctx, buildingID)
			if err != nil {
				return err
			}
			cfg, ok := uc.Config.BuildingConfigFor(b.Type)
			if !ok {
				return failErr{fiefdom.NewActionResult().Fail("invalid_config", "Building configuration not found")}
			}
			nextCost := resource.UpgradeCost(cfg, b.Level)
			balance = resource.Deduct(fiefdomID, balance, nextCost, result)
			if err := uc.Store.UpdateFiefdomResources(ctx, fiefdomID, balance, version); err != nil {
				return err
			}
			version++
			if err := uc.Store.UpdateBuildingConstructionStart(ctx, buildingID, now, b.Version); err != nil {
				return failErr{fiefdom.NewActionResult().Fail("database_error", "Failed to start upgrade")}
			}
			result.Result["building_id"] = buildingID
			result.Result["upgrade_to_level"] = b.Level + 1
			result.Result["cost"] = nextCost
		}

		if hasWall {
			w, err := uc.Store.FetchWallByID(ctx, wallID)
			if err != nil {
				return err
			}
			genCfg, ok := uc.Config.WallGeneration(w.Generation)
			if !ok {
				return failErr{fiefdom.NewActionResult().Fail("invalid_config", "Wall configuration not found")}
			}
			cost := resource.WallUpgradeCost(genCfg, w.Level)
			balance = resource.Deduct(fiefdomID, balance, cost, result)
			if err := uc.Store.UpdateFiefdomResources(ctx, fiefdomID, balance, version); err != nil {
				return err
			}
			newLevel := w.Level + 1
			newHP := resource.WallHP(genCfg, newLevel)
			if err := uc.Store.UpdateWallLevel(ctx, wallID, newLevel, newHP, w.Version); err != nil {
				return failErr{fiefdom.NewActionResult().Fail("database_error", "Failed to start upgrade")}
			}
			result.Result["wall_id"] = wallID
			result.Result["upgrade_to_level"] = newLevel
			result.Result["new_hp"] = newHP
			result.Result["cost"] = cost
		}

		return nil
	})

	if err != nil {
		if fe, ok := err.(failErr); ok {
			return fe.result
		}
		return fiefdom.NewActionResult().Fail("database_error", err.Error())
	}

	result.ActionTimestamp = now
	return result.Ok()
}
