// Package config loads the fixed set of JSON catalogue documents that drive
// costs, dimensions, level curves, construction times and morale, and
// serves them read-only for the lifetime of the process.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// SupportedSchemaVersion is the constraint every loaded catalogue document
// must satisfy via its optional top-level "schema_version" field. A
// document without the field is treated as compatible, matching the
// original catalogue format which predates versioning.
var SupportedSchemaVersion = mustConstraint("<= 1.x")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ProductionSpec describes one resource a building produces while
// operational: amount per cycle (optionally compounding via
// amount_multiplier) every periodicity hours.
type ProductionSpec struct {
	Resource              string  `json:"resource"`
	Amount                float64 `json:"amount"`
	AmountMultiplier      float64 `json:"amount_multiplier"`
	Periodicity           float64 `json:"periodicity"`
	PeriodicityMultiplier float64 `json:"periodicity_multiplier"`
}

// BuildingConfig is one entry of fiefdom_building_types.json.
type BuildingConfig struct {
	DisplayName      string           `json:"display_name"`
	Width            int              `json:"width"`
	Height           int              `json:"height"`
	MaxLevel         int              `json:"max_level"`
	GoldCost         []int64          `json:"gold_cost"`
	WoodCost         []int64          `json:"wood_cost"`
	StoneCost        []int64          `json:"stone_cost"`
	SteelCost        []int64          `json:"steel_cost"`
	BronzeCost       []int64          `json:"bronze_cost"`
	GrainCost        []int64          `json:"grain_cost"`
	LeatherCost      []int64          `json:"leather_cost"`
	ManaCost         []int64          `json:"mana_cost"`
	ConstructionTimes []int64         `json:"construction_times"`
	MoraleBoost      float64          `json:"morale_boost"`
	MoraleEffectMode string           `json:"morale_effect_mode"`
	Production       []ProductionSpec `json:"production"`
}

// CostFields returns the eight (resource, cost array) pairs in the fixed
// canonical order the accountant and handlers iterate in.
func (b BuildingConfig) CostFields() []struct {
	Resource string
	Costs    []int64
} {
	return []struct {
		Resource string
		Costs    []int64
	}{
		{"gold", b.GoldCost},
		{"wood", b.WoodCost},
		{"stone", b.StoneCost},
		{"steel", b.SteelCost},
		{"bronze", b.BronzeCost},
		{"grain", b.GrainCost},
		{"leather", b.LeatherCost},
		{"mana", b.ManaCost},
	}
}

// WallGenerationConfig is one entry of wall_config.json's "walls" map,
// keyed by generation number as a string.
type WallGenerationConfig struct {
	Width             int       `json:"width"`
	Length            int       `json:"length"`
	Thickness         int       `json:"thickness"`
	HP                []int64   `json:"hp"`
	GoldCost          []int64   `json:"gold_cost"`
	StoneCost         []int64   `json:"stone_cost"`
	MoraleBoost       []float64 `json:"morale_boost"`
	ConstructionTimes []int64   `json:"construction_times"`
}

// WallConfig is the embedded wall catalogue: per-generation config plus a
// global cap.
type WallConfig struct {
	MaxWallCount int                             `json:"max_wall_count"`
	Walls        map[string]WallGenerationConfig `json:"walls"`
}

// LeveledEntity is the shape shared by hero, combatant and official
// catalogue entries: a per-level morale boost array plus whatever stats the
// concrete type adds.
type LeveledEntity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MaxLevel    int        `json:"max_level"`
	MoraleBoost []float64 `json:"morale_boost"`
}

// OfficialTemplate is one entry of fiefdom_officials.json.
type OfficialTemplate struct {
	LeveledEntity
	EligibleRoles []string `json:"eligible_roles"`
	Intelligence  []int    `json:"intelligence"`
	Charisma      []int    `json:"charisma"`
	Wisdom        []int    `json:"wisdom"`
	Diligence     []int    `json:"diligence"`
	PortraitID    int      `json:"portrait_id"`
}

// CombatantTemplate is one entry of player_combatants.json / enemy_combatants.json.
type CombatantTemplate struct {
	LeveledEntity
	DamageMelee   []int64 `json:"damage_melee"`
	DamageRanged  []int64 `json:"damage_ranged"`
	DamageMagical []int64 `json:"damage_magical"`
	Costs         []Resources `json:"costs"`
}

// Resources mirrors fiefdom.Resources for JSON decoding without importing
// the domain package's richer type.
type Resources map[string]int64

// DamageType is one entry of damage_types.json.
type DamageType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cache is the process-wide, initialised-once holder of parsed
// configuration. It is safe to share across concurrent requests without
// locking because it is never mutated after Load returns.
type Cache struct {
	loaded bool

	BuildingTypes map[string]BuildingConfig
	Wall          WallConfig
	Heroes        map[string]LeveledEntity
	Officials     map[string]OfficialTemplate
	PlayerCombatants map[string]CombatantTemplate
	EnemyCombatants  map[string]CombatantTemplate
	DamageTypes      []DamageType

	Digest string
}

// Loaded reports whether initialisation succeeded. Once false, every
// config-dependent validation must fail with invalid_config rather than
// panicking or silently treating an entry as absent.
func (c *Cache) Loaded() bool { return c.loaded }

// Load reads the fixed set of documents from dir. On any failure it
// returns an error and leaves the cache's Loaded() false; the caller is
// expected to keep a zero-value Cache in that case rather than discard it,
// since some callers need Loaded() to answer false rather than panic on a
// nil pointer.
func Load(dir string) (*Cache, error) {
	c := &Cache{
		BuildingTypes:    map[string]BuildingConfig{},
		Heroes:           map[string]LeveledEntity{},
		Officials:        map[string]OfficialTemplate{},
		PlayerCombatants: map[string]CombatantTemplate{},
		EnemyCombatants:  map[string]CombatantTemplate{},
	}

	digest := sha256.New()

	loadMap := func(name string, out any) error {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", name, err)
		}
		if err := checkSchemaVersion(name, raw); err != nil {
			return err
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("config: parse %s: %w", name, err)
		}
		digest.Write(raw)
		return nil
	}

	if err := loadMap("fiefdom_building_types.json", &c.BuildingTypes); err != nil {
		return c, err
	}
	if err := loadMap("wall_config.json", &c.Wall); err != nil {
		return c, err
	}
	if err := loadMap("heroes.json", &c.Heroes); err != nil {
		return c, err
	}
	if err := loadMap("fiefdom_officials.json", &c.Officials); err != nil {
		return c, err
	}
	if err := loadMap("player_combatants.json", &c.PlayerCombatants); err != nil {
		return c, err
	}
	if err := loadMap("enemy_combatants.json", &c.EnemyCombatants); err != nil {
		return c, err
	}
	if err := loadMap("damage_types.json", &c.DamageTypes); err != nil {
		return c, err
	}

	c.Digest = hex.EncodeToString(digest.Sum(nil))
	c.loaded = true
	return c, nil
}

type versionStamp struct {
	SchemaVersion string `json:"schema_version"`
}

func checkSchemaVersion(name string, raw []byte) error {
	var stamp versionStamp
	// Tolerate documents that are JSON arrays or that omit the field
	// entirely; only object documents carrying the field are checked.
	if err := json.Unmarshal(raw, &stamp); err != nil || stamp.SchemaVersion == "" {
		return nil
	}
	v, err := semver.NewVersion(stamp.SchemaVersion)
	if err != nil {
		return fmt.Errorf("config: %s: invalid schema_version %q: %w", name, stamp.SchemaVersion, err)
	}
	if !SupportedSchemaVersion.Check(v) {
		return fmt.Errorf("config: %s: schema_version %s does not satisfy %s", name, v, SupportedSchemaVersion)
	}
	return nil
}

// BuildingConfigFor looks up a building type, reporting whether it exists.
func (c *Cache) BuildingConfigFor(buildingType string) (BuildingConfig, bool) {
	cfg, ok := c.BuildingTypes[buildingType]
	return cfg, ok
}

// WallGeneration looks up the config for a generation number.
func (c *Cache) WallGeneration(generation int) (WallGenerationConfig, bool) {
	cfg, ok := c.Wall.Walls[fmt.Sprint(generation)]
	return cfg, ok
}

// ExtrapolateInt64 implements the catalogue's linear-extrapolation-past-
// length rule: for an index k within [0, len) it is a direct lookup;
// beyond that it extends the trend of the last two entries.
func ExtrapolateInt64(arr []int64, k int) (int64, bool) {
	if len(arr) == 0 {
		return 0, false
	}
	if k < len(arr) {
		return arr[k], true
	}
	last := len(arr) - 1
	if last == 0 {
		return arr[last], true
	}
	delta := arr[last] - arr[last-1]
	return arr[last] + int64(k-last)*delta, true
}

// ExtrapolateFloat64 is the float64 counterpart of ExtrapolateInt64, used
// for morale_boost arrays.
func ExtrapolateFloat64(arr []float64, k int) (float64, bool) {
	if len(arr) == 0 {
		return 0, false
	}
	if k < len(arr) {
		return arr[k], true
	}
	last := len(arr) - 1
	if last == 0 {
		return arr[last], true
	}
	delta := arr[last] - arr[last-1]
	return arr[last] + float64(k-last)*delta, true
}
