// Package catalogue writes a minimal, valid game catalogue to disk so
// tests across the action, timeadvance and http packages can exercise
// config.Load without each hand-rolling the JSON documents themselves.
package catalogue

import (
	"os"
	"path/filepath"
	"testing"
)

var files = map[string]string{
	"fiefdom_building_types.json": `{
  "home_base": {
    "display_name": "Home Base",
    "width": 4, "height": 4, "max_level": 5,
    "gold_cost": [0, 100, 200, 400],
    "wood_cost": [0, 50, 100, 200],
    "construction_times": [0, 60, 120, 240],
    "morale_boost": 10,
    "morale_effect_mode": "add",
    "production": [{"resource": "gold", "amount": 5, "amount_multiplier": 1, "periodicity": 1, "periodicity_multiplier": 1}]
  },
  "barracks": {
    "display_name": "Barracks",
    "width": 2, "height": 2, "max_level": 3,
    "gold_cost": [50, 100, 200],
    "wood_cost": [50, 100, 200],
    "construction_times": [30, 60, 120],
    "morale_boost": 0,
    "morale_effect_mode": "add"
  },
  "farm": {
    "display_name": "Farm",
    "width": 2, "height": 2, "max_level": 3,
    "gold_cost": [20, 40, 80],
    "grain_cost": [0, 20, 40],
    "construction_times": [15, 30, 60],
    "morale_boost": 1,
    "morale_effect_mode": "add",
    "production": [{"resource": "grain", "amount": 10, "amount_multiplier": 1, "periodicity": 1, "periodicity_multiplier": 1}]
  }
}`,
	"wall_config.json": `{
  "max_wall_count": 4,
  "walls": {
    "1": {
      "width": 40, "length": 40, "thickness": 2,
      "hp": [1000, 2000, 3000],
      "gold_cost": [200, 400, 800],
      "stone_cost": [200, 400, 800],
      "morale_boost": [2, 4, 6],
      "construction_times": [60, 120, 240]
    },
    "2": {
      "width": 60, "length": 60, "thickness": 2,
      "hp": [1500, 3000],
      "gold_cost": [400, 800],
      "stone_cost": [400, 800],
      "morale_boost": [3, 6],
      "construction_times": [120, 240]
    }
  }
}`,
	"heroes.json": `{
  "marshal": {"id": "marshal", "name": "Marshal", "max_level": 5, "morale_boost": [1, 2, 3, 4, 5]}
}`,
	"fiefdom_officials.json": `{
  "bailiff_default": {
    "id": "bailiff_default", "name": "Bailiff", "max_level": 3, "morale_boost": [1, 2, 3],
    "eligible_roles": ["bailiff"],
    "intelligence": [1, 2, 3], "charisma": [1, 2, 3], "wisdom": [1, 2, 3], "diligence": [1, 2, 3],
    "portrait_id": 1
  }
}`,
	"player_combatants.json": `{
  "militia": {
    "id": "militia", "name": "Militia", "max_level": 3, "morale_boost": [0, 0, 0],
    "damage_melee": [5, 10, 15],
    "costs": [{"gold": 10}, {"gold": 20}, {"gold": 30}]
  }
}`,
	"enemy_combatants.json": `{
  "raider": {
    "id": "raider", "name": "Raider", "max_level": 2, "morale_boost": [0, 0],
    "damage_melee": [8, 16]
  }
}`,
	"damage_types.json": `[{"id": "physical", "name": "Physical"}, {"id": "magical", "name": "Magical"}]`,
}

// WriteMinimal writes the fixed set of catalogue documents config.Load
// expects into dir, which must already exist (typically t.TempDir()).
func WriteMinimal(t *testing.T, dir string) {
	t.Helper()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}
