// Package memory implements ports.FiefdomStore and ports.TxManager
// entirely in process memory, for use in handler and time-advance tests
// without a database.
package memory

import (
	"context"
	"sync"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/domain/fiefdom"
)

// Store is a FiefdomStore test double: every operation locks its own
// mutex, giving per-call atomicity without the cross-call transaction
// isolation a real database would provide.
type Store struct {
	mu sync.Mutex

	nextID     int64
	fiefdoms   map[int64]fiefdom.Fiefdom
	buildings  map[int64]fiefdom.Building
	walls      map[int64]fiefdom.Wall
	officials  map[int64]fiefdom.Official
	heroes     map[int64]fiefdom.FiefdomHero
	combatants map[int64]fiefdom.StationedCombatant
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		fiefdoms:   map[int64]fiefdom.Fiefdom{},
		buildings:  map[int64]fiefdom.Building{},
		walls:      map[int64]fiefdom.Wall{},
		officials:  map[int64]fiefdom.Official{},
		heroes:     map[int64]fiefdom.FiefdomHero{},
		combatants: map[int64]fiefdom.StationedCombatant{},
	}
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// SeedFiefdom inserts a fiefdom directly, for test setup. Not part of
// ports.FiefdomStore.
func (s *Store) SeedFiefdom(f fiefdom.Fiefdom) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == 0 {
		f.ID = s.allocID()
	}
	if f.Version == 0 {
		f.Version = 1
	}
	s.fiefdoms[f.ID] = f
	return f.ID
}

// SeedBuilding inserts a building directly, for test setup.
func (s *Store) SeedBuilding(b fiefdom.Building) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.allocID()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	s.buildings[b.ID] = b
	return b.ID
}

// SeedWall inserts a wall directly, for test setup.
func (s *Store) SeedWall(w fiefdom.Wall) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == 0 {
		w.ID = s.allocID()
	}
	if w.Version == 0 {
		w.Version = 1
	}
	s.walls[w.ID] = w
	return w.ID
}

func (s *Store) FetchFiefdomByID(ctx context.Context, id int64, opts ports.FetchOptions) (fiefdom.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fiefdoms[id]
	if !ok {
		return fiefdom.Snapshot{}, ports.ErrNotFound
	}
	snap := fiefdom.Snapshot{Fiefdom: f}
	if opts.IncludeBuildings {
		snap.Buildings = s.buildingsForLocked(id)
	}
	if opts.IncludeWalls {
		snap.Walls = s.wallsForLocked(id)
	}
	if opts.IncludeOfficials {
		snap.Officials = s.officialsForLocked(id)
	}
	if opts.IncludeHeroes {
		snap.Heroes = s.heroesForLocked(id)
	}
	if opts.IncludeCombatants {
		snap.Combatants = s.combatantsForLocked(id)
	}
	return snap, nil
}

func (s *Store) buildingsForLocked(fiefdomID int64) []fiefdom.Building {
	var out []fiefdom.Building
	for _, b := range s.buildings {
		if b.FiefdomID == fiefdomID {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) wallsForLocked(fiefdomID int64) []fiefdom.Wall {
	var out []fiefdom.Wall
	for _, w := range s.walls {
		if w.FiefdomID == fiefdomID {
			out = append(out, w)
		}
	}
	return out
}

func (s *Store) officialsForLocked(fiefdomID int64) []fiefdom.Official {
	var out []fiefdom.Official
	for _, o := range s.officials {
		if o.FiefdomID == fiefdomID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) heroesForLocked(fiefdomID int64) []fiefdom.FiefdomHero {
	var out []fiefdom.FiefdomHero
	for _, h := range s.heroes {
		if h.FiefdomID == fiefdomID {
			out = append(out, h)
		}
	}
	return out
}

func (s *Store) combatantsForLocked(fiefdomID int64) []fiefdom.StationedCombatant {
	var out []fiefdom.StationedCombatant
	for _, c := range s.combatants {
		if c.FiefdomID == fiefdomID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) FetchFiefdomsByOwner(ctx context.Context, ownerID int64) ([]fiefdom.Fiefdom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []fiefdom.Fiefdom
	for _, f := range s.fiefdoms {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Store) FetchFiefdomBuildings(ctx context.Context, fiefdomID int64) ([]fiefdom.Building, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildingsForLocked(fiefdomID), nil
}

func (s *Store) FetchFiefdomWalls(ctx context.Context, fiefdomID int64) ([]fiefdom.Wall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallsForLocked(fiefdomID), nil
}

func (s *Store) FetchFiefdomOfficials(ctx context.Context, fiefdomID int64) ([]fiefdom.Official, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.officialsForLocked(fiefdomID), nil
}

func (s *Store) FetchFiefdomHeroes(ctx context.Context, fiefdomID int64) ([]fiefdom.FiefdomHero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heroesForLocked(fiefdomID), nil
}

func (s *Store) FetchFiefdomCombatants(ctx context.Context, fiefdomID int64) ([]fiefdom.StationedCombatant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.combatantsForLocked(fiefdomID), nil
}

func (s *Store) FetchBuildingByID(ctx context.Context, id int64) (fiefdom.Building, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buildings[id]
	if !ok {
		return fiefdom.Building{}, ports.ErrNotFound
	}
	return b, nil
}

func (s *Store) FetchWallByID(ctx context.Context, id int64) (fiefdom.Wall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.walls[id]
	if !ok {
		return fiefdom.Wall{}, ports.ErrNotFound
	}
	return w, nil
}

func (s *Store) CreateBuilding(ctx context.Context, b fiefdom.Building) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.allocID()
	b.Version = 1
	s.buildings[b.ID] = b
	return b.ID, nil
}

func (s *Store) UpdateBuildingLevel(ctx context.Context, id int64, level int, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buildings[id]
	if !ok {
		return ports.ErrNotFound
	}
	if b.Version != expectedVersion {
		return ports.ErrConflict
	}
	b.Level = level
	b.ConstructionStartTs = 0
	b.Version++
	s.buildings[id] = b
	return nil
}

func (s *Store) UpdateBuildingConstructionStart(ctx context.Context, id int64, ts int64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buildings[id]
	if !ok {
		return ports.ErrNotFound
	}
	if b.Version != expectedVersion {
		return ports.ErrConflict
	}
	b.ConstructionStartTs = ts
	b.Version++
	s.buildings[id] = b
	return nil
}

func (s *Store) UpdateBuildingPosition(ctx context.Context, id int64, x, y int, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buildings[id]
	if !ok {
		return ports.ErrNotFound
	}
	if b.Version != expectedVersion {
		return ports.ErrConflict
	}
	b.X, b.Y = x, y
	b.Version++
	s.buildings[id] = b
	return nil
}

func (s *Store) DeleteBuilding(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buildings, id)
	return nil
}

func (s *Store) CreateWall(ctx context.Context, w fiefdom.Wall) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.allocID()
	w.Version = 1
	s.walls[w.ID] = w
	return w.ID, nil
}

func (s *Store) UpdateWallLevel(ctx context.Context, id int64, level int, hp int64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.walls[id]
	if !ok {
		return ports.ErrNotFound
	}
	if w.Version != expectedVersion {
		return ports.ErrConflict
	}
	w.Level = level
	w.HP = hp
	w.ConstructionStartTs = 0
	w.Version++
	s.walls[id] = w
	return nil
}

func (s *Store) UpdateWallHP(ctx context.Context, id int64, hp int64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.walls[id]
	if !ok {
		return ports.ErrNotFound
	}
	if w.Version != expectedVersion {
		return ports.ErrConflict
	}
	w.HP = hp
	w.Version++
	s.walls[id] = w
	return nil
}

func (s *Store) UpdateWallConstructionStart(ctx context.Context, id int64, ts int64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.walls[id]
	if !ok {
		return ports.ErrNotFound
	}
	if w.Version != expectedVersion {
		return ports.ErrConflict
	}
	w.ConstructionStartTs = ts
	w.Version++
	s.walls[id] = w
	return nil
}

func (s *Store) DeleteWall(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.walls, id)
	return nil
}

func (s *Store) UpdateFiefdomResources(ctx context.Context, id int64, balance fiefdom.Resources, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fiefdoms[id]
	if !ok {
		return ports.ErrNotFound
	}
	if f.Version != expectedVersion {
		return ports.ErrConflict
	}
	f.SetBalance(balance)
	f.Version++
	s.fiefdoms[id] = f
	return nil
}

func (s *Store) UpdateFiefdomPeasants(ctx context.Context, id int64, peasants int64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fiefdoms[id]
	if !ok {
		return ports.ErrNotFound
	}
	if f.Version != expectedVersion {
		return ports.ErrConflict
	}
	f.Peasants = peasants
	f.Version++
	s.fiefdoms[id] = f
	return nil
}

func (s *Store) UpdateFiefdomWallCount(ctx context.Context, id int64, wallCount int, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fiefdoms[id]
	if !ok {
		return ports.ErrNotFound
	}
	if f.Version != expectedVersion {
		return ports.ErrConflict
	}
	f.WallCount = wallCount
	f.Version++
	s.fiefdoms[id] = f
	return nil
}

func (s *Store) UpdateFiefdomMorale(ctx context.Context, id int64, morale float64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fiefdoms[id]
	if !ok {
		return ports.ErrNotFound
	}
	if f.Version != expectedVersion {
		return ports.ErrConflict
	}
	f.Morale = morale
	f.Version++
	s.fiefdoms[id] = f
	return nil
}

func (s *Store) UpdateFiefdomLastUpdateTime(ctx context.Context, id int64, ts int64, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fiefdoms[id]
	if !ok {
		return ports.ErrNotFound
	}
	if f.Version != expectedVersion {
		return ports.ErrConflict
	}
	f.LastUpdateTime = ts
	f.Version++
	s.fiefdoms[id] = f
	return nil
}

func (s *Store) FetchAllFiefdomIDs(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.fiefdoms))
	for id := range s.fiefdoms {
		ids = append(ids, id)
	}
	return ids, nil
}

var _ ports.FiefdomStore = (*Store)(nil)
