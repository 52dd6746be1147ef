package timeadvance

import (
	"context"
	"testing"
	"time"

	memoryrepo "fiefdomengine/internal/adapter/repo/memory"
	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/testutil/catalogue"
)

const testNowUnix = int64(1_700_000_000)

func newTestAdvancer(t *testing.T) (*Advancer, *memoryrepo.Store) {
	t.Helper()
	dir := t.TempDir()
	catalogue.WriteMinimal(t, dir)
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load catalogue: %v", err)
	}

	store := memoryrepo.New()
	tx := memoryrepo.NewTxManager(store)
	a := New(store, tx, cfg)
	a.Now = func() time.Time { return time.Unix(testNowUnix, 0) }
	return a, store
}

func TestAdvanceIsNoOpBelowMinHoursElapsed(t *testing.T) {
	a, store := newTestAdvancer(t)
	id := store.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1, LastUpdateTime: testNowUnix - 1})

	result, err := a.Advance(context.Background(), id)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(result.CompletedBuildings) != 0 || len(result.Productions) != 0 {
		t.Fatalf("expected a no-op result, got %+v", result)
	}
}

func TestAdvanceCompletesDueBuildingConstruction(t *testing.T) {
	a, store := newTestAdvancer(t)
	id := store.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1, LastUpdateTime: testNowUnix - 3600})
	buildingID := store.SeedBuilding(fiefdom.Building{
		FiefdomID: id, Type: "barracks", Level: 0,
		ConstructionStartTs: testNowUnix - 40, // construction_times[0] = 30s
	})

	result, err := a.Advance(context.Background(), id)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(result.CompletedBuildings) != 1 || result.CompletedBuildings[0].NewLevel != 1 {
		t.Fatalf("expected one completed building at level 1, got %+v", result.CompletedBuildings)
	}

	b, err := store.FetchBuildingByID(context.Background(), buildingID)
	if err != nil {
		t.Fatalf("fetch building: %v", err)
	}
	if b.Level != 1 || b.ConstructionStartTs != 0 {
		t.Fatalf("expected level 1 with construction_start_ts cleared, got %+v", b)
	}
}

func TestAdvanceCompletesDueWallConstruction(t *testing.T) {
	a, store := newTestAdvancer(t)
	id := store.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1, LastUpdateTime: testNowUnix - 3600})
	wallID := store.SeedWall(fiefdom.Wall{
		FiefdomID: id, Generation: 1, Level: 1, HP: 1000,
		ConstructionStartTs: testNowUnix - 130, // construction_times[level=1] = 120s
	})

	result, err := a.Advance(context.Background(), id)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(result.CompletedWalls) != 1 || result.CompletedWalls[0].NewLevel != 2 {
		t.Fatalf("expected one completed wall at level 2, got %+v", result.CompletedWalls)
	}

	w, err := store.FetchWallByID(context.Background(), wallID)
	if err != nil {
		t.Fatalf("fetch wall: %v", err)
	}
	if w.Level != 2 || w.HP != 2000 {
		t.Fatalf("expected level 2 with hp 2000, got %+v", w)
	}
}

func TestAdvanceCreditsFlatProductionForElapsedCycles(t *testing.T) {
	a, store := newTestAdvancer(t)
	id := store.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1, LastUpdateTime: testNowUnix - 3*3600})
	store.SeedBuilding(fiefdom.Building{FiefdomID: id, Type: fiefdom.HomeBaseType, Level: 1})

	result, err := a.Advance(context.Background(), id)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(result.Productions) != 1 {
		t.Fatalf("expected one production credit, got %+v", result.Productions)
	}
	// periodicity 1h, amount 5, 3 full hours elapsed -> 15 gold.
	if result.Productions[0].Amount != 15 {
		t.Fatalf("expected 15 gold credited, got %v", result.Productions[0].Amount)
	}

	snap, err := store.FetchFiefdomByID(context.Background(), id, ports.FetchOptions{})
	if err != nil {
		t.Fatalf("fetch fiefdom: %v", err)
	}
	if snap.Fiefdom.Gold != 15 {
		t.Fatalf("expected gold balance of 15, got %d", snap.Fiefdom.Gold)
	}
}

func TestAdvanceIgnoresUnderConstructionBuildingsForProduction(t *testing.T) {
	a, store := newTestAdvancer(t)
	id := store.SeedFiefdom(fiefdom.Fiefdom{OwnerID: 1, LastUpdateTime: testNowUnix - 3*3600})
	store.SeedBuilding(fiefdom.Building{FiefdomID: id, Type: fiefdom.HomeBaseType, Level: 0})

	result, err := a.Advance(context.Background(), id)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(result.Productions) != 0 {
		t.Fatalf("expected no production from an unfinished building, got %+v", result.Productions)
	}
}

func TestAdvanceAllFansOutAcrossFiefdoms(t *testing.T) {
	a, store := newTestAdvancer(t)
	for i := 0; i < 3; i++ {
		store.SeedFiefdom(fiefdom.Fiefdom{OwnerID: int64(i + 1), LastUpdateTime: testNowUnix - 3600})
	}

	results, err := a.AdvanceAll(context.Background())
	if err != nil {
		t.Fatalf("advance all: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}
