package memory

import (
	"context"
	"testing"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
)

func TestFetchFiefdomByIDReturnsNotFound(t *testing.T) {
	s := New()
	_, err := s.FetchFiefdomByID(context.Background(), 999, ports.FetchOptions{})
	if err != ports.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchFiefdomByIDHonoursFetchOptions(t *testing.T) {
	s := New()
	id := s.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1})
	s.SeedBuilding(fiefdom.Building{FiefdomID: id, Type: "barracks"})
	s.SeedWall(fiefdom.Wall{FiefdomID: id, Generation: 1})

	bare, err := s.FetchFiefdomByID(context.Background(), id, ports.FetchOptions{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if bare.Buildings != nil || bare.Walls != nil {
		t.Fatalf("expected no related rows without opts, got %+v", bare)
	}

	full, err := s.FetchFiefdomByID(context.Background(), id, ports.FetchOptions{IncludeBuildings: true, IncludeWalls: true})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(full.Buildings) != 1 || len(full.Walls) != 1 {
		t.Fatalf("expected one building and one wall, got %+v", full)
	}
}

func TestUpdateBuildingLevelEnforcesExpectedVersion(t *testing.T) {
	s := New()
	id := s.SeedBuilding(fiefdom.Building{Type: "barracks", Level: 1, Version: 1})

	if err := s.UpdateBuildingLevel(context.Background(), id, 2, 2); err != ports.ErrConflict {
		t.Fatalf("expected ErrConflict on a stale version, got %v", err)
	}
	if err := s.UpdateBuildingLevel(context.Background(), id, 2, 1); err != nil {
		t.Fatalf("expected update to succeed with the right version, got %v", err)
	}

	b, err := s.FetchBuildingByID(context.Background(), id)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if b.Level != 2 || b.Version != 2 {
		t.Fatalf("expected level 2 and version bumped to 2, got %+v", b)
	}
	if b.ConstructionStartTs != 0 {
		t.Fatalf("expected construction_start_ts cleared on completion, got %d", b.ConstructionStartTs)
	}
}

func TestUpdateFiefdomResourcesWritesBalanceAndBumpsVersion(t *testing.T) {
	s := New()
	id := s.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1, Gold: 100, Version: 1})

	err := s.UpdateFiefdomResources(context.Background(), id, fiefdom.Resources{fiefdom.ResourceGold: 250}, 1)
	if err != nil {
		t.Fatalf("update resources: %v", err)
	}

	snap, err := s.FetchFiefdomByID(context.Background(), id, ports.FetchOptions{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.Fiefdom.Gold != 250 || snap.Fiefdom.Version != 2 {
		t.Fatalf("expected gold 250 and version bumped to 2, got %+v", snap.Fiefdom)
	}
}

func TestFetchAllFiefdomIDsReturnsEveryID(t *testing.T) {
	s := New()
	a := s.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1})
	b := s.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 2})

	ids, err := s.FetchAllFiefdomIDs(context.Background())
	if err != nil {
		t.Fatalf("fetch ids: %v", err)
	}
	seen := map[int64]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[a] || !seen[b] {
		t.Fatalf("expected both seeded fiefdoms among %v", ids)
	}
}

func TestDeleteWallRemovesIt(t *testing.T) {
	s := New()
	id := s.SeedWall(fiefdom.Wall{FiefdomID: 1, Generation: 1})

	if err := s.DeleteWall(context.Background(), id); err != nil {
		t.Fatalf("delete wall: %v", err)
	}
	if _, err := s.FetchWallByID(context.Background(), id); err != ports.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
