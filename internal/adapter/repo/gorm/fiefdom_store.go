package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fiefdomengine/internal/adapter/repo/gorm/model"
	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
)

// FiefdomStore is the GORM-backed ports.FiefdomStore implementation.
type FiefdomStore struct {
	db *gorm.DB
}

// NewFiefdomStore returns a FiefdomStore backed by db.
func NewFiefdomStore(db *gorm.DB) FiefdomStore {
	return FiefdomStore{db: db}
}

func toDomainFiefdom(m model.Fiefdom) fiefdom.Fiefdom {
	return fiefdom.Fiefdom{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		X:              int(m.X),
		Y:              int(m.Y),
		Gold:           m.Gold,
		Wood:           m.Wood,
		Stone:          m.Stone,
		Steel:          m.Steel,
		Bronze:         m.Bronze,
		Grain:          m.Grain,
		Leather:        m.Leather,
		Mana:           m.Mana,
		Peasants:       m.Peasants,
		WallCount:      int(m.WallCount),
		Morale:         m.Morale,
		LastUpdateTime: m.LastUpdateTime,
		Version:        m.Version,
	}
}

func toDomainBuilding(m model.Building) fiefdom.Building {
	return fiefdom.Building{
		ID:                  m.ID,
		FiefdomID:           m.FiefdomID,
		Type:                m.Name,
		Level:               int(m.Level),
		X:                   int(m.X),
		Y:                   int(m.Y),
		ConstructionStartTs: m.ConstructionStartTs,
		Version:             m.Version,
	}
}

func toDomainWall(m model.Wall) fiefdom.Wall {
	return fiefdom.Wall{
		ID:                  m.ID,
		FiefdomID:           m.FiefdomID,
		Generation:          int(m.Generation),
		Level:               int(m.Level),
		HP:                  m.HP,
		ConstructionStartTs: m.ConstructionStartTs,
		Version:             m.Version,
	}
}

func toDomainOfficial(m model.Official) fiefdom.Official {
	return fiefdom.Official{
		ID:           m.ID,
		FiefdomID:    m.FiefdomID,
		Role:         fiefdom.OfficialRole(m.Role),
		TemplateID:   m.TemplateID,
		PortraitID:   int(m.PortraitID),
		Name:         m.Name,
		Level:        int(m.Level),
		Intelligence: m.Intelligence,
		Charisma:     m.Charisma,
		Wisdom:       m.Wisdom,
		Diligence:    m.Diligence,
	}
}

func toDomainHero(m model.Hero) fiefdom.FiefdomHero {
	return fiefdom.FiefdomHero{ID: m.ID, FiefdomID: m.FiefdomID, HeroID: m.HeroID, Level: int(m.Level)}
}

func toDomainCombatant(m model.Combatant) fiefdom.StationedCombatant {
	return fiefdom.StationedCombatant{
		ID: m.ID, FiefdomID: m.FiefdomID, CombatantID: m.CombatantID,
		Level: int(m.Level), Count: m.Count,
	}
}

func (r FiefdomStore) FetchFiefdomByID(ctx context.Context, id int64, opts ports.FetchOptions) (fiefdom.Snapshot, error) {
	var m model.Fiefdom
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiefdom.Snapshot{}, ports.ErrNotFound
		}
		return fiefdom.Snapshot{}, err
	}

	snap := fiefdom.Snapshot{Fiefdom: toDomainFiefdom(m)}

	if opts.IncludeBuildings {
		buildings, err := r.FetchFiefdomBuildings(ctx, id)
		if err != nil {
			return fiefdom.Snapshot{}, err
		}
		snap.Buildings = buildings
	}
	if opts.IncludeWalls {
		walls, err := r.FetchFiefdomWalls(ctx, id)
		if err != nil {
			return fiefdom.Snapshot{}, err
		}
		snap.Walls = walls
	}
	if opts.IncludeOfficials {
		officials, err := r.FetchFiefdomOfficials(ctx, id)
		if err != nil {
			return fiefdom.Snapshot{}, err
		}
		snap.Officials = officials
	}
	if opts.IncludeHeroes {
		heroes, err := r.FetchFiefdomHeroes(ctx, id)
		if err != nil {
			return fiefdom.Snapshot{}, err
		}
		snap.Heroes = heroes
	}
	if opts.IncludeCombatants {
		combatants, err := r.FetchFiefdomCombatants(ctx, id)
		if err != nil {
			return fiefdom.Snapshot{}, err
		}
		snap.Combatants = combatants
	}

	return snap, nil
}

func (r FiefdomStore) FetchFiefdomsByOwner(ctx context.Context, ownerID int64) ([]fiefdom.Fiefdom, error) {
	var rows []model.Fiefdom
	if err := getDBFromCtx(ctx, r.db).Where("owner_id = ?", ownerID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]fiefdom.Fiefdom, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainFiefdom(m))
	}
	return out, nil
}

func (r FiefdomStore) FetchFiefdomBuildings(ctx context.Context, fiefdomID int64) ([]fiefdom.Building, error) {
	var rows []model.Building
	if err := getDBFromCtx(ctx, r.db).Where("fiefdom_id = ?", fiefdomID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]fiefdom.Building, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBuilding(m))
	}
	return out, nil
}

func (r FiefdomStore) FetchFiefdomWalls(ctx context.Context, fiefdomID int64) ([]fiefdom.Wall, error) {
	var rows []model.Wall
	if err := getDBFromCtx(ctx, r.db).Where("fiefdom_id = ?", fiefdomID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]fiefdom.Wall, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainWall(m))
	}
	return out, nil
}

func (r FiefdomStore) FetchFiefdomOfficials(ctx context.Context, fiefdomID int64) ([]fiefdom.Official, error) {
	var rows []model.Official
	if err := getDBFromCtx(ctx, r.db).Where("fiefdom_id = ?", fiefdomID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]fiefdom.Official, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainOfficial(m))
	}
	return out, nil
}

func (r FiefdomStore) FetchFiefdomHeroes(ctx context.Context, fiefdomID int64) ([]fiefdom.FiefdomHero, error) {
	var rows []model.Hero
	if err := getDBFromCtx(ctx, r.db).Where("fiefdom_id = ?", fiefdomID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]fiefdom.FiefdomHero, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainHero(m))
	}
	return out, nil
}

func (r FiefdomStore) FetchFiefdomCombatants(ctx context.Context, fiefdomID int64) ([]fiefdom.StationedCombatant, error) {
	var rows []model.Combatant
	if err := getDBFromCtx(ctx, r.db).Where("fiefdom_id = ?", fiefdomID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]fiefdom.StationedCombatant, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCombatant(m))
	}
	return out, nil
}

func (r FiefdomStore) FetchBuildingByID(ctx context.Context, id int64) (fiefdom.Building, error) {
	var m model.Building
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiefdom.Building{}, ports.ErrNotFound
		}
		return fiefdom.Building{}, err
	}
	return toDomainBuilding(m), nil
}

func (r FiefdomStore) FetchWallByID(ctx context.Context, id int64) (fiefdom.Wall, error) {
	var m model.Wall
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiefdom.Wall{}, ports.ErrNotFound
		}
		return fiefdom.Wall{}, err
	}
	return toDomainWall(m), nil
}

func (r FiefdomStore) CreateBuilding(ctx context.Context, b fiefdom.Building) (int64, error) {
	m := model.Building{
		FiefdomID:           b.FiefdomID,
		Name:                b.Type,
		Level:               int32(b.Level),
		X:                   int32(b.X),
		Y:                   int32(b.Y),
		ConstructionStartTs: b.ConstructionStartTs,
		Version:             1,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r FiefdomStore) UpdateBuildingLevel(ctx context.Context, id int64, level int, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Building{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"level": level, "construction_start_ts": 0, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateBuildingConstructionStart(ctx context.Context, id int64, ts int64, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Building{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"construction_start_ts": ts, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateBuildingPosition(ctx context.Context, id int64, x, y int, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Building{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"x": x, "y": y, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) DeleteBuilding(ctx context.Context, id int64) error {
	return getDBFromCtx(ctx, r.db).Delete(&model.Building{}, id).Error
}

func (r FiefdomStore) CreateWall(ctx context.Context, w fiefdom.Wall) (int64, error) {
	m := model.Wall{
		FiefdomID:           w.FiefdomID,
		Generation:          int32(w.Generation),
		Level:               int32(w.Level),
		HP:                  w.HP,
		ConstructionStartTs: w.ConstructionStartTs,
		Version:             1,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r FiefdomStore) UpdateWallLevel(ctx context.Context, id int64, level int, hp int64, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Wall{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"level": level, "hp": hp, "construction_start_ts": 0, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateWallHP(ctx context.Context, id int64, hp int64, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Wall{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"hp": hp, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateWallConstructionStart(ctx context.Context, id int64, ts int64, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Wall{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"construction_start_ts": ts, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) DeleteWall(ctx context.Context, id int64) error {
	return getDBFromCtx(ctx, r.db).Delete(&model.Wall{}, id).Error
}

func (r FiefdomStore) UpdateFiefdomResources(ctx context.Context, id int64, balance fiefdom.Resources, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Fiefdom{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"gold":    balance[fiefdom.ResourceGold],
			"wood":    balance[fiefdom.ResourceWood],
			"stone":   balance[fiefdom.ResourceStone],
			"steel":   balance[fiefdom.ResourceSteel],
			"bronze":  balance[fiefdom.ResourceBronze],
			"grain":   balance[fiefdom.ResourceGrain],
			"leather": balance[fiefdom.ResourceLeather],
			"mana":    balance[fiefdom.ResourceMana],
			"version": expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateFiefdomPeasants(ctx context.Context, id int64, peasants int64, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Fiefdom{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"peasants": peasants, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateFiefdomWallCount(ctx context.Context, id int64, wallCount int, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Fiefdom{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"wall_count": wallCount, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateFiefdomMorale(ctx context.Context, id int64, morale float64, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Fiefdom{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"morale": morale, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) UpdateFiefdomLastUpdateTime(ctx context.Context, id int64, ts int64, expectedVersion int64) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.Fiefdom{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{"last_update_time": ts, "version": expectedVersion + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r FiefdomStore) FetchAllFiefdomIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := getDBFromCtx(ctx, r.db).Model(&model.Fiefdom{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

var _ ports.FiefdomStore = FiefdomStore{}
