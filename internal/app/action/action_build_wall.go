package action

import (
	"context"
	"fmt"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/resource"
)

var buildWallFields = []fieldSpec{
	{Name: "fiefdom_id", Code: "fiefdom_id_required", Schema: intSchema},
	{Name: "wall_generation", Code: "wall_generation_required", Schema: intSchema},
}

type buildWallHandler struct{}

func (buildWallHandler) Description() string { return "Build the next wall generation" }

func findWallGeneration(walls []fiefdom.Wall, generation int) (fiefdom.Wall, bool) {
	for _, w := range walls {
		if w.Generation == generation {
			return w, true
		}
	}
	return fiefdom.Wall{}, false
}

func (buildWallHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	result := fiefdom.NewActionResult()

	fields, code, msg, ok := extractFields(payload, buildWallFields)
	if !ok {
		return result.Fail(code, msg)
	}
	fiefdomID := toInt64(fields["fiefdom_id"])
	generation := toInt(fields["wall_generation"])

	if fiefdomID != actx.RequestingFiefdomID {
		return result.Fail("not_owner", "User does not own this fiefdom")
	}

	genCfg, ok := uc.Config.WallGeneration(generation)
	if !ok {
		return result.Fail("generation_invalid", fmt.Sprintf("Invalid wall generation: %d", generation))
	}

	walls, err := uc.Store.FetchFiefdomWalls(ctx, fiefdomID)
	if err != nil {
		return result.Fail("database_error", err.Error())
	}

	if generation > 1 {
		if _, exists := findWallGeneration(walls, generation-1); !exists {
			return result.Fail("generation_sequence_required", fmt.Sprintf("Must build wall generation %d first", generation-1))
		}
	}
	if _, exists := findWallGeneration(walls, generation); exists {
		return result.Fail("generation_exists", fmt.Sprintf("Wall generation %d already exists", generation))
	}

	snap, err := uc.Store.FetchFiefdomByID(ctx, fiefdomID, ports.FetchOptions{})
	if err != nil {
		return result.Fail("not_found", "fiefdom not found")
	}
	cost := resource.WallLevelOneCost(genCfg)
	if !resource.HasEnough(snap.Fiefdom.Balance(), cost) {
		return result.Fail("insufficient_resources", "Not enough resources to build wall")
	}

	return result.Ok()
}

func (h buildWallHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	validated := h.Validate(ctx, uc, payload, actx)
	if validated.Status != fiefdom.StatusOK {
		return validated
	}

	fiefdomID := toInt64(payload["fiefdom_id"])
	generation := toInt(payload["wall_generation"])
	now := uc.Now().Unix()
	result := fiefdom.NewActionResult()

	genCfg, ok := uc.Config.WallGeneration(generation)
	if !ok {
		return fiefdom.NewActionResult().Fail("generation_invalid", "Invalid wall generation")
	}

	err := uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		snap, err := uc.Store.FetchFiefdomByID(ctx, fiefdomID, ports.FetchOptions{IncludeBuildings: true})
		if err != nil {
			return err
		}

		cost := resource.WallLevelOneCost(genCfg)
		newBalance := resource.Deduct(fiefdomID, snap.Fiefdom.Balance(), cost, result)
		if err := uc.Store.UpdateFiefdomResources(ctx, fiefdomID, newBalance, snap.Fiefdom.Version); err != nil {
			return err
		}

		overlapping, err := uc.Spatial.GetOverlappingBuildings(generation, snap.Buildings)
		if err != nil {
			return err
		}

		var demolished []map[string]any
		for _, b := range overlapping {
			cfg, ok := uc.Config.BuildingConfigFor(b.Type)
			if !ok {
				continue
			}
			refund := resource.DemolishRefund(cfg, b.Level)
			newBalance = resource.Refund(fiefdomID, newBalance, refund, result)
			if err := uc.Store.DeleteBuilding(ctx, b.ID); err != nil {
				return failErr{fiefdom.NewActionResult().Fail("database_error", "Failed to demolish overlapping building")}
			}
			demolished = append(demolished, map[string]any{
				"building_id":   b.ID,
				"building_type": b.Type,
				"refund":        refund,
			})
		}
		if len(demolished) > 0 {
			if err := uc.Store.UpdateFiefdomResources(ctx, fiefdomID, newBalance, snap.Fiefdom.Version+1); err != nil {
				return err
			}
		}

		initialHP := resource.WallHP(genCfg, 1)
		wallID, err := uc.Store.CreateWall(ctx, fiefdom.Wall{
			FiefdomID:           fiefdomID,
			Generation:          generation,
			Level:               1,
			HP:                  initialHP,
			ConstructionStartTs: now,
		})
		if err != nil {
			return failErr{fiefdom.NewActionResult().Fail("database_error", "Failed to create wall")}
		}

		result.Result["wall_id"] = wallID
		result.Result["generation"] = generation
		result.Result["level"] = 1
		result.Result["hp"] = initialHP
		result.Result["width"] = genCfg.Width
		result.Result["length"] = genCfg.Length
		result.Result["thickness"] = genCfg.Thickness
		result.Result["cost"] = cost
		result.Result["demolished_buildings"] = demolished
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
