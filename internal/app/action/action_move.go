package action

import (
	"context"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/resource"
)

var moveFields = []fieldSpec{
	{Name: "building_id", Code: "building_id_required", Schema: intSchema},
}

type moveHandler struct{}

func (moveHandler) Description() string { return "Move a building (10% of current level cost)" }

func (moveHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	result := fiefdom.NewActionResult()

	fields, code, msg, ok := extractFields(payload, moveFields)
	if !ok {
		return result.Fail(code, msg)
	}
	x, hasX := fieldInt64(payload, "x")
	y, hasY := fieldInt64(payload, "y")
	if !hasX || !hasY {
		return result.Fail("coordinates_required", "x and y coordinates are required")
	}
	buildingID := toInt64(fields["building_id"])

	b, err := uc.Store.FetchBuildingByID(ctx, buildingID)
	if err != nil {
		return result.Fail("not_owner", "User does not own this building")
	}
	if b.FiefdomID != actx.RequestingFiefdomID {
		return result.Fail("not_owner", "User does not own this building")
	}
	if b.Type == fiefdom.HomeBaseType {
		return result.Fail("home_base_immutable", "Manor House (home_base) cannot be moved")
	}
	if b.Level <= 0 {
		return result.Fail("cannot_move_under_construction", "Cannot move building under construction")
	}

	buildings, err := uc.Store.FetchFiefdomBuildings(ctx, actx.RequestingFiefdomID)
	if err != nil {
		return result.Fail("database_error", err.Error())
	}

	placement := uc.Spatial.CheckPlacement(b.Type, int(x), int(y), false, buildingID, buildings)
	if !placement.Valid {
		return result.Fail("move_location_invalid", placement.ErrorMessage)
	}

	return result.Ok()
}

func (h moveHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	validated := h.Validate(ctx, uc, payload, actx)
	if validated.Status != fiefdom.StatusOK {
		return validated
	}

	buildingID := toInt64(payload["building_id"])
	x, _ := fieldInt64(payload, "x")
	y, _ := fieldInt64(payload, "y")
	now := uc.Now().Unix()
	result := fiefdom.NewActionResult()

	err := uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		b, err := uc.Store.FetchBuildingByID(ctx, buildingID)
		if err != nil {
			return err
		}
		cfg, ok := uc.Config.BuildingConfigFor(b.Type)
		if !ok {
			return failErr{fiefdom.NewActionResult().Fail("invalid_config", "Building configuration not found")}
		}

		snap, err := uc.Store.FetchFiefdomByID(ctx, b.FiefdomID, ports.FetchOptions{})
		if err != nil {
			return err
		}

		cost := resource.MoveCost(cfg, b.Level)
		if !resource.HasEnough(snap.Fiefdom.Balance(), cost) {
			return failErr{result.Fail("insufficient_resources", "not enough resources")}
		}
		newBalance := resource.Deduct(b.FiefdomID, snap.Fiefdom.Balance(), cost, result)
		if err := uc.Store.UpdateFiefdomResources(ctx, b.FiefdomID, newBalance, snap.Fiefdom.Version); err != nil {
			return err
		}
		if err := uc.Store.UpdateBuildingPosition(ctx, buildingID, int(x), int(y), b.Version); err != nil {
			return err
		}

		result.Result["building_id"] = buildingID
		result.Result["new_x"] = x
		result.Result["new_y"] = y
		result.Result["cost"] = cost
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
