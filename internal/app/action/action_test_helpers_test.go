package action

import (
	"testing"
	"time"

	memoryrepo "fiefdomengine/internal/adapter/repo/memory"
	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
	"fiefdomengine/internal/testutil/catalogue"
)

// testRig bundles a UseCase backed by the in-memory store and a fixed
// catalogue, for the action handlers to exercise without a live database.
type testRig struct {
	UC    *UseCase
	Store *memoryrepo.Store
}

func newTestRig(t *testing.T) testRig {
	t.Helper()
	dir := t.TempDir()
	catalogue.WriteMinimal(t, dir)
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load catalogue: %v", err)
	}

	store := memoryrepo.New()
	tx := memoryrepo.NewTxManager(store)
	uc := NewUseCase(store, tx, cfg, nil)
	uc.Now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	return testRig{UC: uc, Store: store}
}

func (r testRig) seedFiefdomWithHomeBase(t *testing.T, fiefdomID int64) {
	t.Helper()
	r.Store.SeedFiefdom(fiefdom.Fiefdom{
		ID: fiefdomID, OwnerID: 1,
		Gold: 100000, Wood: 100000, Stone: 100000, Version: 1,
	})
	r.Store.SeedBuilding(fiefdom.Building{
		ID: fiefdomID*1000 + 1, FiefdomID: fiefdomID, Type: fiefdom.HomeBaseType, Level: 1, X: 0, Y: 0, Version: 1,
	})
}

func testContext(fiefdomID int64) *fiefdom.ActionContext {
	return &fiefdom.ActionContext{RequestingFiefdomID: fiefdomID, RequestID: "test-request"}
}
