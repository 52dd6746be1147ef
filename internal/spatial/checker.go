// Package spatial implements axis-aligned rectangle collision between
// buildings and between buildings and wall perimeters.
package spatial

import (
	"fmt"

	"fiefdomengine/internal/config"
	"fiefdomengine/internal/domain/fiefdom"
)

// Rectangle is an axis-aligned box anchored at its lower-left corner.
type Rectangle struct {
	X, Y, W, H int
}

// Overlaps reports standard AABB overlap between two rectangles.
func (r Rectangle) Overlaps(o Rectangle) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Checker answers placement and collision queries against a config cache.
// It holds no state of its own and is safe for concurrent use.
type Checker struct {
	Config *config.Cache
}

// New returns a Checker backed by cfg.
func New(cfg *config.Cache) *Checker {
	return &Checker{Config: cfg}
}

// Dimensions returns the width/height of a building type, defaulting to
// 1x1 when the type is unknown to the catalogue.
func (c *Checker) Dimensions(buildingType string) (w, h int) {
	cfg, ok := c.Config.BuildingConfigFor(buildingType)
	if !ok {
		return 1, 1
	}
	w, h = cfg.Width, cfg.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

// PlacementResult is the outcome of CheckPlacement.
type PlacementResult struct {
	Valid               bool
	OverlappingBuildingIDs []int64
	ErrorCode           string
	ErrorMessage        string
}

func isValidPosition(x, y int) bool {
	return x >= fiefdom.MinValidCoord && x <= fiefdom.MaxValidCoord &&
		y >= fiefdom.MinValidCoord && y <= fiefdom.MaxValidCoord
}

// CheckPlacement validates a prospective building footprint against the
// coordinate envelope, the home-base-at-origin rule and every existing
// building of the fiefdom (optionally excluding one, for the move action).
func (c *Checker) CheckPlacement(
	buildingType string,
	x, y int,
	enforceHomeBaseOrigin bool,
	excludeBuildingID int64,
	existing []fiefdom.Building,
) PlacementResult {
	if !isValidPosition(x, y) {
		return PlacementResult{ErrorCode: "out_of_range", ErrorMessage: "position is outside the valid range"}
	}

	if buildingType == fiefdom.HomeBaseType && enforceHomeBaseOrigin {
		if x != 0 || y != 0 {
			return PlacementResult{ErrorCode: "home_base_origin", ErrorMessage: "home base must be built at location (0, 0)"}
		}
	}

	w, h := c.Dimensions(buildingType)
	newRect := Rectangle{X: x, Y: y, W: w, H: h}

	var overlapping []int64
	for _, b := range existing {
		if b.ID == excludeBuildingID {
			continue
		}
		bw, bh := c.Dimensions(b.Type)
		if newRect.Overlaps(Rectangle{X: b.X, Y: b.Y, W: bw, H: bh}) {
			overlapping = append(overlapping, b.ID)
		}
	}

	if len(overlapping) > 0 {
		return PlacementResult{
			Valid:                  false,
			OverlappingBuildingIDs: overlapping,
			ErrorCode:              "invalid_location",
			ErrorMessage:           "location overlaps with existing buildings",
		}
	}

	return PlacementResult{Valid: true}
}

// PerimeterRects returns the four edge rectangles of a wall generation's
// hollow perimeter, centred at the origin.
func PerimeterRects(cfg config.WallGenerationConfig) []Rectangle {
	halfW := cfg.Width / 2
	halfL := cfg.Length / 2
	t := cfg.Thickness
	if t <= 0 {
		t = 1
	}
	return []Rectangle{
		{X: -halfW, Y: halfL - t, W: cfg.Width, H: t},   // top edge
		{X: -halfW, Y: -halfL, W: cfg.Width, H: t},      // bottom edge
		{X: -halfW, Y: -halfL, W: t, H: cfg.Length},     // left edge
		{X: halfW - t, Y: -halfL, W: t, H: cfg.Length},  // right edge
	}
}

// OverlapsWalls reports whether a rectangle overlaps any edge of the given
// wall generation's perimeter.
func (c *Checker) OverlapsWalls(generation int, x, y, w, h int) (bool, error) {
	genCfg, ok := c.Config.WallGeneration(generation)
	if !ok {
		return false, fmt.Errorf("spatial: unknown wall generation %d", generation)
	}
	rect := Rectangle{X: x, Y: y, W: w, H: h}
	for _, edge := range PerimeterRects(genCfg) {
		if rect.Overlaps(edge) {
			return true, nil
		}
	}
	return false, nil
}

// GetOverlappingBuildings returns the operational buildings (level >= 1)
// whose footprint overlaps the given wall generation's perimeter; used by
// build_wall to cascade-demolish.
func (c *Checker) GetOverlappingBuildings(generation int, buildings []fiefdom.Building) ([]fiefdom.Building, error) {
	var out []fiefdom.Building
	for _, b := range buildings {
		if b.Level < 1 {
			continue
		}
		w, h := c.Dimensions(b.Type)
		overlaps, err := c.OverlapsWalls(generation, b.X, b.Y, w, h)
		if err != nil {
			return nil, err
		}
		if overlaps {
			out = append(out, b)
		}
	}
	return out, nil
}
