// Package model holds the GORM row structs backing the fiefdom store. Field
// names follow the column names original_source's SQLite schema used
// (fiefdoms, fiefdom_buildings, fiefdom_walls, fiefdom_officials,
// fiefdom_heroes, fiefdom_stationed_combatants) so the migrations stay a
// direct translation of the original schema.
package model

// Fiefdom is the fiefdoms table.
type Fiefdom struct {
	ID             int64  `gorm:"column:id;primaryKey"`
	OwnerID        int64  `gorm:"column:owner_id;index"`
	Name           string `gorm:"column:name"`
	X              int32  `gorm:"column:x"`
	Y              int32  `gorm:"column:y"`
	Gold           int64  `gorm:"column:gold"`
	Wood           int64  `gorm:"column:wood"`
	Stone          int64  `gorm:"column:stone"`
	Steel          int64  `gorm:"column:steel"`
	Bronze         int64  `gorm:"column:bronze"`
	Grain          int64  `gorm:"column:grain"`
	Leather        int64  `gorm:"column:leather"`
	Mana           int64  `gorm:"column:mana"`
	Peasants       int64  `gorm:"column:peasants"`
	WallCount      int32  `gorm:"column:wall_count"`
	Morale         float64 `gorm:"column:morale"`
	LastUpdateTime int64  `gorm:"column:last_update_time"`
	Version        int64  `gorm:"column:version"`
}

func (Fiefdom) TableName() string { return "fiefdoms" }

// Building is the fiefdom_buildings table.
type Building struct {
	ID                  int64 `gorm:"column:id;primaryKey"`
	FiefdomID           int64 `gorm:"column:fiefdom_id;index"`
	Name                string `gorm:"column:name"`
	Level               int32 `gorm:"column:level"`
	X                   int32 `gorm:"column:x"`
	Y                   int32 `gorm:"column:y"`
	ConstructionStartTs int64 `gorm:"column:construction_start_ts"`
	Version             int64 `gorm:"column:version"`
}

func (Building) TableName() string { return "fiefdom_buildings" }

// Wall is the fiefdom_walls table, keyed uniquely by (fiefdom_id, generation).
type Wall struct {
	ID                  int64 `gorm:"column:id;primaryKey"`
	FiefdomID           int64 `gorm:"column:fiefdom_id;index:idx_wall_fiefdom_generation,unique"`
	Generation          int32 `gorm:"column:generation;index:idx_wall_fiefdom_generation,unique"`
	Level               int32 `gorm:"column:level"`
	HP                  int64 `gorm:"column:hp"`
	ConstructionStartTs int64 `gorm:"column:construction_start_ts"`
	Version             int64 `gorm:"column:version"`
}

func (Wall) TableName() string { return "fiefdom_walls" }

// Official is the fiefdom_officials table.
type Official struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	FiefdomID    int64  `gorm:"column:fiefdom_id;index"`
	Role         string `gorm:"column:role"`
	TemplateID   string `gorm:"column:template_id"`
	PortraitID   int32  `gorm:"column:portrait_id"`
	Name         string `gorm:"column:name"`
	Level        int32  `gorm:"column:level"`
	Intelligence uint8  `gorm:"column:intelligence"`
	Charisma     uint8  `gorm:"column:charisma"`
	Wisdom       uint8  `gorm:"column:wisdom"`
	Diligence    uint8  `gorm:"column:diligence"`
}

func (Official) TableName() string { return "fiefdom_officials" }

// Hero is the fiefdom_heroes table: a hero stationed at a fiefdom.
type Hero struct {
	ID        int64 `gorm:"column:id;primaryKey"`
	FiefdomID int64 `gorm:"column:fiefdom_id;index"`
	HeroID    string `gorm:"column:hero_id"`
	Level     int32 `gorm:"column:level"`
}

func (Hero) TableName() string { return "fiefdom_heroes" }

// Combatant is the fiefdom_stationed_combatants table.
type Combatant struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	FiefdomID   int64  `gorm:"column:fiefdom_id;index"`
	CombatantID string `gorm:"column:combatant_id"`
	Level       int32  `gorm:"column:level"`
	Count       int64  `gorm:"column:count"`
}

func (Combatant) TableName() string { return "fiefdom_stationed_combatants" }
