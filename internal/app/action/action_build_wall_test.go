package action

import (
	"context"
	"testing"

	"fiefdomengine/internal/domain/fiefdom"
)

func TestBuildWallRequiresPriorGeneration(t *testing.T) {
	rig := newTestRig(t)
	rig.seedFiefdomWithHomeBase(t, 1)

	result := buildWallHandler{}.Validate(context.Background(), rig.UC, map[string]any{
		"fiefdom_id":      float64(1),
		"wall_generation": float64(2),
	}, testContext(1))

	if result.ErrorCode != "generation_sequence_required" {
		t.Fatalf("expected generation_sequence_required, got %+v", result)
	}
}

func TestBuildWallRejectsExistingGeneration(t *testing.T) {
	rig := newTestRig(t)
	rig.seedFiefdomWithHomeBase(t, 1)
	rig.Store.SeedWall(fiefdom.Wall{FiefdomID: 1, Generation: 1, Level: 1, HP: 1000, Version: 1})

	result := buildWallHandler{}.Validate(context.Background(), rig.UC, map[string]any{
		"fiefdom_id":      float64(1),
		"wall_generation": float64(1),
	}, testContext(1))

	if result.ErrorCode != "generation_exists" {
		t.Fatalf("expected generation_exists, got %+v", result)
	}
}

func TestBuildWallCascadeDemolishesOverlappingBuildings(t *testing.T) {
	rig := newTestRig(t)
	rig.seedFiefdomWithHomeBase(t, 1)
	overlapID := rig.Store.SeedBuilding(fiefdom.Building{FiefdomID: 1, Type: "barracks", Level: 1, X: 19, Y: 19, Version: 1})

	result := buildWallHandler{}.Execute(context.Background(), rig.UC, map[string]any{
		"fiefdom_id":      float64(1),
		"wall_generation": float64(1),
	}, testContext(1))

	if result.Status != fiefdom.StatusOK {
		t.Fatalf("expected OK, got %+v", result)
	}

	demolished, _ := result.Result["demolished_buildings"].([]map[string]any)
	if len(demolished) != 1 {
		t.Fatalf("expected exactly one cascade-demolished building, got %+v", result.Result["demolished_buildings"])
	}

	if _, err := rig.Store.FetchBuildingByID(context.Background(), overlapID); err == nil {
		t.Fatalf("expected overlapping building to have been demolished")
	}

	walls, err := rig.Store.FetchFiefdomWalls(context.Background(), 1)
	if err != nil || len(walls) != 1 {
		t.Fatalf("expected exactly one wall created, walls=%+v err=%v", walls, err)
	}
	if walls[0].Level != 1 || walls[0].HP != 1000 {
		t.Fatalf("expected new wall at level 1 with 1000 hp, got %+v", walls[0])
	}
}

func TestBuildWallFailsWithoutEnoughResources(t *testing.T) {
	rig := newTestRig(t)
	rig.Store.SeedFiefdom(fiefdom.Fiefdom{ID: 1, OwnerID: 1, Gold: 1, Stone: 1, Version: 1})
	rig.Store.SeedBuilding(fiefdom.Building{FiefdomID: 1, Type: fiefdom.HomeBaseType, Level: 1, Version: 1})

	result := buildWallHandler{}.Validate(context.Background(), rig.UC, map[string]any{
		"fiefdom_id":      float64(1),
		"wall_generation": float64(1),
	}, testContext(1))

	if result.ErrorCode != "insufficient_resources" {
		t.Fatalf("expected insufficient_resources, got %+v", result)
	}
}
