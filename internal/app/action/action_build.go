package action

import (
	"context"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/resource"
)

var buildFields = []fieldSpec{
	{Name: "fiefdom_id", Code: "fiefdom_id_required", Schema: intSchema},
	{Name: "building_type", Code: "building_type_required", Schema: stringSchema},
}

type buildHandler struct{}

func (buildHandler) Description() string { return "Build a new structure at a level-0 footprint" }

func (buildHandler) Validate(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	result := fiefdom.NewActionResult()

	fields, code, msg, ok := extractFields(payload, buildFields)
	if !ok {
		return result.Fail(code, msg)
	}
	fiefdomID := toInt64(fields["fiefdom_id"])
	buildingType := toString(fields["building_type"])

	if fiefdomID != actx.RequestingFiefdomID {
		return result.Fail("not_owner", "User does not own this fiefdom")
	}

	cfg, ok := uc.Config.BuildingConfigFor(buildingType)
	if !ok {
		return result.Fail("unknown_building", "Unknown building type: "+buildingType)
	}
	if !uc.Config.Loaded() {
		return result.Fail("invalid_config", "Building configuration not found")
	}

	snap, err := uc.Store.FetchFiefdomByID(ctx, fiefdomID, ports.FetchOptions{IncludeBuildings: true})
	if err != nil {
		return result.Fail("not_found", "fiefdom not found")
	}

	hasHomeBase := false
	for _, b := range snap.Buildings {
		if b.Type == fiefdom.HomeBaseType && b.Level >= 1 {
			hasHomeBase = true
			break
		}
	}

	displayName := cfg.DisplayName
	if displayName == "" {
		displayName = buildingType
	}

	if buildingType == fiefdom.HomeBaseType {
		if hasHomeBase {
			return result.Fail("home_base_exists", "A "+displayName+" (home_base) already exists")
		}
	} else if !hasHomeBase {
		return result.Fail("home_base_required", "You must build a "+displayName+" (home_base) before other buildings")
	}

	x, hasX := fieldInt64(payload, "x")
	y, hasY := fieldInt64(payload, "y")
	if !hasX || !hasY {
		return result.Fail("coordinates_required", "x and y coordinates are required for building placement")
	}

	placement := uc.Spatial.CheckPlacement(buildingType, int(x), int(y), true, 0, snap.Buildings)
	if !placement.Valid {
		if placement.ErrorCode == "home_base_origin" {
			return result.Fail("home_base_origin", placement.ErrorMessage)
		}
		return result.Fail("invalid_location", "Cannot build at specified location")
	}

	return result.Ok()
}

func (h buildHandler) Execute(ctx context.Context, uc *UseCase, payload map[string]any, actx *fiefdom.ActionContext) *fiefdom.ActionResult {
	validated := h.Validate(ctx, uc, payload, actx)
	if validated.Status != fiefdom.StatusOK {
		return validated
	}

	fiefdomID := toInt64(payload["fiefdom_id"])
	buildingType := toString(payload["building_type"])
	x, _ := fieldInt64(payload, "x")
	y, _ := fieldInt64(payload, "y")

	cfg, ok := uc.Config.BuildingConfigFor(buildingType)
	if !ok {
		return fiefdom.NewActionResult().Fail("invalid_config", "Building configuration not found")
	}

	now := uc.Now().Unix()
	result := fiefdom.NewActionResult()

	err := uc.Tx.RunInTx(ctx, func(ctx context.Context) error {
		snap, err := uc.Store.FetchFiefdomByID(ctx, fiefdomID, ports.FetchOptions{})
		if err != nil {
			return err
		}

		costs := resource.UpgradeCost(cfg, 0)
		if !resource.HasEnough(snap.Fiefdom.Balance(), costs) {
			return failErr{result.Fail("insufficient_resources", "not enough resources")}
		}
		newBalance := resource.Deduct(fiefdomID, snap.Fiefdom.Balance(), costs, result)
		if err := uc.Store.UpdateFiefdomResources(ctx, fiefdomID, newBalance, snap.Fiefdom.Version); err != nil {
			return err
		}

		if _, err := uc.Store.CreateBuilding(ctx, fiefdom.Building{
			FiefdomID:           fiefdomID,
			Type:                buildingType,
			Level:               0,
			X:                   int(x),
			Y:                   int(y),
			ConstructionStartTs: now,
		}); err != nil {
			return err
		}

		result.Result["building_type"] = buildingType
		result.Result["fiefdom_id"] = fiefdomID
		result.Result["x"] = x
		result.Result["y"] = y
		result.Result["construction_start_ts"] = now
		result.Result["level"] = 0
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

// failErr lets a handler return a fully-formed ActionResult out of a
// TxManager.RunInTx closure without losing its error code to the generic
// database_error path.
type failErr struct {
	result *fiefdom.ActionResult
}

func (f failErr) Error() string { return f.result.ErrorMessage }
