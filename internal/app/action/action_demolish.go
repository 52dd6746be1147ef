package action

import (
	"context"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/resource"
)

var demolishFields = []fieldSpec{
	{Name: "building_id", Code: "building_id_required", Schema: intSchema},
}

type demolishHandler struct{}

func (demolishHandler) Description() string { return "Demolish a building (80% refund of cumulative costs)" }

func (demolishHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	result := fiefdom.NewActionResult()

	fields, code, msg, ok := extractFields(payload, demolishFields)
	if !ok {
		return result.Fail(code, msg)
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
		return result.Fail("home_base_immutable", "Manor House (home_base) cannot be demolished")
	}

	return result.Ok()
}

func (h demolishHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	validated := h.Validate(ctx, uc, payload, actx)
	if validated.Status != fiefdom.StatusOK {
		return validated
	}

	buildingID := toInt64(payload["building_id"])
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

		refund := resource.DemolishRefund(cfg, b.Level)
		newBalance := resource.Refund(b.FiefdomID, snap.Fiefdom.Balance(), refund, result)
		if err := uc.Store.UpdateFiefdomResources(ctx, b.FiefdomID, newBalance, snap.Fiefdom.Version); err != nil {
			return err
		}
		if err := uc.Store.DeleteBuilding(ctx, buildingID); err != nil {
			return err
		}

		result.Result["building_id"] = buildingID
		result.Result["refund"] = refund
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
