package ports

import (
	"context"

	"fiefdomengine/internal/domain/fiefdom"
)

// FetchOptions selects which child collections FetchFiefdomByID eagerly
// loads alongside the fiefdom row.
type FetchOptions struct {
	IncludeBuildings  bool
	IncludeWalls      bool
	IncludeOfficials  bool
	IncludeHeroes     bool
	IncludeCombatants bool
}

// FiefdomStore is the typed read/write accessor over persisted fiefdom
// state (spec §4.4). Every write is valid only inside a TxManager.RunInTx
// scope; each returns an error rather than panicking on failure, and a
// version mismatch on an update surfaces ErrConflict.
type FiefdomStore interface {
	FetchFiefdomByID(ctx context.Context, id int64, opts FetchOptions) (fiefdom.Snapshot, error)
	FetchFiefdomsByOwner(ctx context.Context, ownerID int64) ([]fiefdom.Fiefdom, error)

	FetchFiefdomBuildings(ctx context.Context, fiefdomID int64) ([]fiefdom.Building, error)
	FetchFiefdomWalls(ctx context.Context, fiefdomID int64) ([]fiefdom.Wall, error)
	FetchFiefdomOfficials(ctx context.Context, fiefdomID int64) ([]fiefdom.Official, error)
	FetchFiefdomHeroes(ctx context.Context, fiefdomID int64) ([]fiefdom.FiefdomHero, error)
	FetchFiefdomCombatants(ctx context.Context, fiefdomID int64) ([]fiefdom.StationedCombatant, error)

	FetchBuildingByID(ctx context.Context, id int64) (fiefdom.Building, error)
	FetchWallByID(ctx context.Context, id int64) (fiefdom.Wall, error)

	CreateBuilding(ctx context.Context, b fiefdom.Building) (int64, error)
	UpdateBuildingLevel(ctx context.Context, id int64, level int, expectedVersion int64) error
	UpdateBuildingConstructionStart(ctx context.Context, id int64, ts int64, expectedVersion int64) error
	UpdateBuildingPosition(ctx context.Context, id int64, x, y int, expectedVersion int64) error
	DeleteBuilding(ctx context.Context, id int64) error

	CreateWall(ctx context.Context, w fiefdom.Wall) (int64, error)
	UpdateWallLevel(ctx context.Context, id int64, level int, hp int64, expectedVersion int64) error
	UpdateWallHP(ctx context.Context, id int64, hp int64, expectedVersion int64) error
	UpdateWallConstructionStart(ctx context.Context, id int64, ts int64, expectedVersion int64) error
	DeleteWall(ctx context.Context, id int64) error

	UpdateFiefdomResources(ctx context.Context, id int64, balance fiefdom.Resources, expectedVersion int64) error
	UpdateFiefdomPeasants(ctx context.Context, id int64, peasants int64, expectedVersion int64) error
	UpdateFiefdomWallCount(ctx context.Context, id int64, wallCount int, expectedVersion int64) error
	UpdateFiefdomMorale(ctx context.Context, id int64, morale float64, expectedVersion int64) error
	UpdateFiefdomLastUpdateTime(ctx context.Context, id int64, ts int64, expectedVersion int64) error

	FetchAllFiefdomIDs(ctx context.Context) ([]int64, error)
}
