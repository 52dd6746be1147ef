// Package timeadvance implements the periodic state-advance pass: finishing
// due construction, crediting accumulated production, and stamping each
// fiefdom's last-update time.
package timeadvance

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"fiefdomengine/internal/app/ports"
	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
)

// minHoursElapsed mirrors the original engine's guard against advancing a
// fiefdom that was just updated (clock skew / back-to-back calls).
const minHoursElapsed = 0.001

// CompletionEvent records one building or wall finishing construction.
type CompletionEvent struct {
	Name     string
	NewLevel int
}

// ProductionUpdate records one resource credit applied to a fiefdom by an
// operational building.
type ProductionUpdate struct {
	Resource   fiefdom.ResourceKind
	Amount     float64
	SourceType string
	SourceID   int64
	FiefdomID  int64
}

// Result is the outcome of advancing a single fiefdom.
type Result struct {
	FiefdomID           int64
	NewTimestamp        int64
	HoursElapsed        float64
	CompletedBuildings  []CompletionEvent
	CompletedWalls      []CompletionEvent
	Productions         []ProductionUpdate
}

// Advancer ticks fiefdom state forward to the current wall-clock time.
type Advancer struct {
	Store  ports.FiefdomStore
	Tx     ports.TxManager
	Config *config.Cache
	Now    func() time.Time
}

// New returns an Advancer using the wall clock.
func New(store ports.FiefdomStore, tx ports.TxManager, cfg *config.Cache) *Advancer {
	return &Advancer{Store: store, Tx: tx, Config: cfg, Now: time.Now}
}

// Advance ticks one fiefdom forward. When less than minHoursElapsed has
// passed it returns, without an error, a Result that carries the elapsed
// hours but no completions or production, and leaves the fiefdom unchanged.
func (a *Advancer) Advance(ctx context.Context, fiefdomID int64) (Result, error) {
	result := Result{FiefdomID: fiefdomID}

	snap, err := a.Store.FetchFiefdomByID(ctx, fiefdomID, ports.FetchOptions{IncludeBuildings: true, IncludeWalls: true})
	if err != nil {
		return result, err
	}

	now := a.Now().Unix()
	hoursElapsed := float64(now-snap.Fiefdom.LastUpdateTime) / 3600.0
	result.NewTimestamp = now
	result.HoursElapsed = hoursElapsed
	if hoursElapsed < minHoursElapsed {
		return result, nil
	}

	err = a.Tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, b := range snap.Buildings {
			if b.ConstructionStartTs <= 0 {
				continue
			}
			cfg, ok := a.Config.BuildingConfigFor(b.Type)
			if !ok {
				continue
			}
			seconds, ok := config.ExtrapolateInt64(cfg.ConstructionTimes, b.Level)
			if !ok || seconds <= 0 {
				continue
			}
			if now-b.ConstructionStartTs < seconds {
				continue
			}
			newLevel := b.Level + 1
			if err := a.Store.UpdateBuildingLevel(ctx, b.ID, newLevel, b.Version); err != nil {
				if err == ports.ErrConflict {
					continue
				}
				return err
			}
			result.CompletedBuildings = append(result.CompletedBuildings, CompletionEvent{Name: b.Type, NewLevel: newLevel})
		}

		for _, w := range snap.Walls {
			if w.ConstructionStartTs <= 0 {
				continue
			}
			genCfg, ok := a.Config.WallGeneration(w.Generation)
			if !ok {
				continue
			}
			seconds, ok := config.ExtrapolateInt64(genCfg.ConstructionTimes, w.Level)
			if !ok || seconds <= 0 {
				continue
			}
			if now-w.ConstructionStartTs < seconds {
				continue
			}
			newLevel := w.Level + 1
			newHP, _ := config.ExtrapolateInt64(genCfg.HP, newLevel-1)
			if err := a.Store.UpdateWallLevel(ctx, w.ID, newLevel, newHP, w.Version); err != nil {
				if err == ports.ErrConflict {
					continue
				}
				return err
			}
			result.CompletedWalls = append(result.CompletedWalls, CompletionEvent{Name: "wall_gen", NewLevel: newLevel})
		}

		balance := snap.Fiefdom.Balance()
		peasants := snap.Fiefdom.Peasants
		version := snap.Fiefdom.Version

		for _, b := range snap.Buildings {
			if b.Level <= 0 {
				continue
			}
			cfg, ok := a.Config.BuildingConfigFor(b.Type)
			if !ok {
				continue
			}
			for _, prod := range cfg.Production {
				amount := produced(prod, hoursElapsed)
				if amount == 0 {
					continue
				}
				if prod.Resource == "peasants" {
					peasants += int64(math.Round(amount))
				} else {
					balance[fiefdom.ResourceKind(prod.Resource)] += int64(math.Round(amount))
				}
				result.Productions = append(result.Productions, ProductionUpdate{
					Resource:   fiefdom.ResourceKind(prod.Resource),
					Amount:     amount,
					SourceType: "building",
					SourceID:   b.ID,
					FiefdomID:  fiefdomID,
				})
			}
		}

		if len(result.Productions) > 0 {
			if err := a.Store.UpdateFiefdomResources(ctx, fiefdomID, balance, version); err != nil {
				return err
			}
			version++
			if peasants != snap.Fiefdom.Peasants {
				if err := a.Store.UpdateFiefdomPeasants(ctx, fiefdomID, peasants, version); err != nil {
					return err
				}
				version++
			}
		}

		return a.Store.UpdateFiefdomLastUpdateTime(ctx, fiefdomID, now, version)
	})

	return result, err
}

// produced computes the resource credit for one production spec over the
// elapsed hours, using the closed-form geometric sum for a compounding
// multiplier and a plain multiply for the flat (multiplier == 1) case.
func produced(spec config.ProductionSpec, hoursElapsed float64) float64 {
	if spec.Periodicity <= 0 {
		return 0
	}
	cycles := hoursElapsed / spec.Periodicity
	fullCycles := int(cycles)
	if fullCycles <= 0 {
		return 0
	}
	if spec.AmountMultiplier == 1.0 || spec.AmountMultiplier == 0 {
		return spec.Amount * float64(fullCycles)
	}
	return spec.Amount * (math.Pow(spec.AmountMultiplier, float64(fullCycles)) - 1.0) / (spec.AmountMultiplier - 1.0)
}

// AdvanceAll ticks every fiefdom forward concurrently, each in its own
// transaction. The first failure cancels the shared context, so advances
// not yet started are skipped, and that error is returned; fiefdoms that
// already committed stay advanced.
func (a *Advancer) AdvanceAll(ctx context.Context) ([]Result, error) {
	ids, err := a.Store.FetchAllFiefdomIDs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(16)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			r, err := a.Advance(ctx, id)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
