package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/layout"
)

// Visibility levels
const (
	VisibilityPrivate = "PRIVATE"
	VisibilityCompany = "COMPANY"
	VisibilityPublic  = "PUBLIC"
)

// List scopes
const (
	ScopeMy     = "my"
	ScopePublic = "public"
	ScopeAll    = "all"
)

// WarehouseTemplate is a reusable, shareable warehouse-layout blueprint.
// Its special-area collections are snapshots captured at save time; the
// warehouse's Location rows stay authoritative and the snapshots are
// resynchronized from them before editing.
type WarehouseTemplate struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	TemplateCode string `json:"template_code" gorm:"uniqueIndex;not null"`

	NumAisles             int    `json:"num_aisles" gorm:"not null"`
	RacksPerAisle         int    `json:"racks_per_aisle" gorm:"not null"`
	PositionsPerRack      int    `json:"positions_per_rack" gorm:"not null"`
	LevelsPerPosition     int    `json:"levels_per_position" gorm:"not null"`
	LevelNames            string `json:"level_names" gorm:"default:'ABCD'"`
	DefaultPalletCapacity int    `json:"default_pallet_capacity" gorm:"default:1"`
	BidimensionalRacks    bool   `json:"bidimensional_racks" gorm:"default:false"`

	ReceivingAreas datatypes.JSON `json:"receiving_areas_template" gorm:"type:jsonb;default:'[]'"`
	StagingAreas   datatypes.JSON `json:"staging_areas_template" gorm:"type:jsonb;default:'[]'"`
	DockAreas      datatypes.JSON `json:"dock_areas_template" gorm:"type:jsonb;default:'[]'"`

	Visibility    string `json:"visibility" gorm:"default:'PRIVATE'"`
	CreatedByID   uint   `json:"created_by_id" gorm:"index"`
	CreatedByName string `json:"created_by_name"`

	UsageCount    int     `json:"usage_count" gorm:"default:0"`
	DownloadCount int     `json:"download_count" gorm:"default:0"`
	Rating        float64 `json:"rating" gorm:"default:0"`

	Category string         `json:"category"`
	Industry string         `json:"industry"`
	Tags     datatypes.JSON `json:"tags" gorm:"type:jsonb;default:'[]'"`

	PatternName       string         `json:"pattern_name"`
	CanonicalExamples datatypes.JSON `json:"canonical_examples" gorm:"type:jsonb;default:'[]'"`
	FormatConfig      datatypes.JSON `json:"format_config" gorm:"type:jsonb"`

	// BasedOnConfigID points back to the warehouse configuration this
	// template was derived from, when created via "template from config".
	BasedOnConfigID *uint `json:"based_on_config_id"`

	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (WarehouseTemplate) TableName() string {
	return "warehouse_templates"
}

// Structure returns the structural configuration of the template.
func (t *WarehouseTemplate) Structure() layout.Structure {
	return layout.Structure{
		NumAisles:             t.NumAisles,
		RacksPerAisle:         t.RacksPerAisle,
		PositionsPerRack:      t.PositionsPerRack,
		LevelsPerPosition:     t.LevelsPerPosition,
		LevelNames:            t.LevelNames,
		DefaultPalletCapacity: t.DefaultPalletCapacity,
		BidimensionalRacks:    t.BidimensionalRacks,
	}
}

// SpecialAreas decodes all three special-area snapshot collections.
func (t *WarehouseTemplate) SpecialAreas() ([]layout.SpecialArea, error) {
	var all []layout.SpecialArea
	for _, raw := range []datatypes.JSON{t.ReceivingAreas, t.StagingAreas, t.DockAreas} {
		areas, err := DecodeAreas(raw)
		if err != nil {
			return nil, err
		}
		all = append(all, areas...)
	}
	return all, nil
}

// SetSpecialAreas splits a flat area list by type and stores the three
// snapshot collections.
func (t *WarehouseTemplate) SetSpecialAreas(areas []layout.SpecialArea) error {
	grouped := layout.GroupAreasByType(areas)

	receiving, err := EncodeAreas(grouped[layout.AreaReceiving])
	if err != nil {
		return err
	}
	staging, err := EncodeAreas(grouped[layout.AreaStaging])
	if err != nil {
		return err
	}
	dock, err := EncodeAreas(grouped[layout.AreaDock])
	if err != nil {
		return err
	}

	t.ReceivingAreas = receiving
	t.StagingAreas = staging
	t.DockAreas = dock
	return nil
}

// EncodeAreas marshals special areas into a JSONB column value. A nil
// slice encodes as an empty list, never null.
func EncodeAreas(areas []layout.SpecialArea) (datatypes.JSON, error) {
	if areas == nil {
		areas = []layout.SpecialArea{}
	}
	raw, err := json.Marshal(areas)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodeAreas unmarshals a JSONB column value into special areas.
func DecodeAreas(raw datatypes.JSON) ([]layout.SpecialArea, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var areas []layout.SpecialArea
	if err := json.Unmarshal(raw, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

// ListFilter narrows template listings.
type ListFilter struct {
	Scope  string // my, public, all
	Search string // free text over name/description/tags
	UserID uint
	Limit  int
	Offset int
}

// TemplateRepository defines the contract for template data access
type TemplateRepository interface {
	Create(template *WarehouseTemplate) error
	FindByID(id uint) (*WarehouseTemplate, error)
	FindByCode(code string) (*WarehouseTemplate, error)
	FindAll(filter ListFilter) ([]WarehouseTemplate, error)
	FindPopular(limit int) ([]WarehouseTemplate, error)
	Update(template *WarehouseTemplate) error
	Delete(id uint) error
	CodeExists(code string) (bool, error)
	IncrementUsage(id uint) error
}
