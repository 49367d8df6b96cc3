package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/layout"
	templatedomain "github.com/warekit/warehouse-layout/internal/template/domain"
)

// WarehouseConfig is the active structural configuration of one physical
// warehouse. It carries its own copy of the structural fields, so the
// template it was applied from can be edited or deleted without touching
// the warehouse.
type WarehouseConfig struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	WarehouseID string `json:"warehouse_id" gorm:"index;not null"`
	Name        string `json:"name"`
	ShareCode   string `json:"share_code" gorm:"uniqueIndex;not null"`

	NumAisles             int    `json:"num_aisles" gorm:"not null"`
	RacksPerAisle         int    `json:"racks_per_aisle" gorm:"not null"`
	PositionsPerRack      int    `json:"positions_per_rack" gorm:"not null"`
	LevelsPerPosition     int    `json:"levels_per_position" gorm:"not null"`
	LevelNames            string `json:"level_names" gorm:"default:'ABCD'"`
	DefaultPalletCapacity int    `json:"default_pallet_capacity" gorm:"default:1"`
	BidimensionalRacks    bool   `json:"bidimensional_racks" gorm:"default:false"`

	PositionNumberingStart int  `json:"position_numbering_start" gorm:"default:1"`
	PositionNumberingSplit bool `json:"position_numbering_split" gorm:"default:false"`

	ReceivingAreas datatypes.JSON `json:"receiving_areas" gorm:"type:jsonb;default:'[]'"`
	StagingAreas   datatypes.JSON `json:"staging_areas" gorm:"type:jsonb;default:'[]'"`
	DockAreas      datatypes.JSON `json:"dock_areas" gorm:"type:jsonb;default:'[]'"`

	DefaultZone string `json:"default_zone" gorm:"default:'MAIN'"`

	// AppliedTemplateID records provenance only. The config never reads
	// through to the template after apply.
	AppliedTemplateID   *uint  `json:"applied_template_id"`
	AppliedTemplateCode string `json:"applied_template_code"`

	TotalStorageLocations int `json:"total_storage_locations" gorm:"default:0"`
	TotalCapacity         int `json:"total_capacity" gorm:"default:0"`

	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (WarehouseConfig) TableName() string {
	return "warehouse_configs"
}

// Structure returns the structural configuration of the warehouse.
func (c *WarehouseConfig) Structure() layout.Structure {
	return layout.Structure{
		NumAisles:              c.NumAisles,
		RacksPerAisle:          c.RacksPerAisle,
		PositionsPerRack:       c.PositionsPerRack,
		LevelsPerPosition:      c.LevelsPerPosition,
		LevelNames:             c.LevelNames,
		DefaultPalletCapacity:  c.DefaultPalletCapacity,
		BidimensionalRacks:     c.BidimensionalRacks,
		PositionNumberingStart: c.PositionNumberingStart,
		PositionNumberingSplit: c.PositionNumberingSplit,
	}
}

// SetStructure copies structural fields from a layout structure.
func (c *WarehouseConfig) SetStructure(s layout.Structure) {
	c.NumAisles = s.NumAisles
	c.RacksPerAisle = s.RacksPerAisle
	c.PositionsPerRack = s.PositionsPerRack
	c.LevelsPerPosition = s.LevelsPerPosition
	c.LevelNames = s.LevelNames
	c.DefaultPalletCapacity = s.DefaultPalletCapacity
	c.BidimensionalRacks = s.BidimensionalRacks
	c.PositionNumberingStart = s.PositionNumberingStart
	if c.PositionNumberingStart == 0 {
		c.PositionNumberingStart = 1
	}
	c.PositionNumberingSplit = s.PositionNumberingSplit
}

// SpecialAreas decodes all three special-area collections.
func (c *WarehouseConfig) SpecialAreas() ([]layout.SpecialArea, error) {
	var all []layout.SpecialArea
	for _, raw := range []datatypes.JSON{c.ReceivingAreas, c.StagingAreas, c.DockAreas} {
		areas, err := templatedomain.DecodeAreas(raw)
		if err != nil {
			return nil, err
		}
		all = append(all, areas...)
	}
	return all, nil
}

// SetSpecialAreas splits a flat area list by type and stores the three
// collections.
func (c *WarehouseConfig) SetSpecialAreas(areas []layout.SpecialArea) error {
	grouped := layout.GroupAreasByType(areas)

	receiving, err := templatedomain.EncodeAreas(grouped[layout.AreaReceiving])
	if err != nil {
		return err
	}
	staging, err := templatedomain.EncodeAreas(grouped[layout.AreaStaging])
	if err != nil {
		return err
	}
	dock, err := templatedomain.EncodeAreas(grouped[layout.AreaDock])
	if err != nil {
		return err
	}

	c.ReceivingAreas = receiving
	c.StagingAreas = staging
	c.DockAreas = dock
	return nil
}

// RecalculateTotals refreshes the derived location and capacity counts
// from the structural fields and the stored special areas. Totals are
// never set directly; every write path recomputes them here.
func (c *WarehouseConfig) RecalculateTotals() error {
	areas, err := c.SpecialAreas()
	if err != nil {
		return err
	}
	s := c.Structure()
	c.TotalStorageLocations = layout.StorageLocations(s)
	c.TotalCapacity = layout.TotalCapacity(s, areas)
	return nil
}

// WarehouseSummary is a listing row for the warehouses overview.
type WarehouseSummary struct {
	WarehouseID           string    `json:"warehouse_id"`
	ConfigID              uint      `json:"config_id"`
	Name                  string    `json:"name"`
	ShareCode             string    `json:"share_code"`
	TotalStorageLocations int       `json:"total_storage_locations"`
	TotalCapacity         int       `json:"total_capacity"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ConfigRepository defines the contract for warehouse config data access
type ConfigRepository interface {
	Create(config *WarehouseConfig) error
	FindByID(id uint) (*WarehouseConfig, error)
	FindActiveByWarehouse(warehouseID string) (*WarehouseConfig, error)
	FindByCode(code string) (*WarehouseConfig, error)
	ListWarehouses() ([]WarehouseSummary, error)
	Update(config *WarehouseConfig) error
	// ReplaceActive soft-deletes any active config of the warehouse and
	// stores the new one in a single transaction.
	ReplaceActive(config *WarehouseConfig) error
	CodeExists(code string) (bool, error)
}
