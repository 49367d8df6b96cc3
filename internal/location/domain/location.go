package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/layout"
)

// Location types. Storage rows carry hierarchy coordinates; special
// rows carry a zone and capacity instead.
const (
	TypeStorage      = "STORAGE"
	TypeReceiving    = string(layout.AreaReceiving)
	TypeStaging      = string(layout.AreaStaging)
	TypeDock         = string(layout.AreaDock)
	TypeTransitional = string(layout.AreaTransitional)
)

// Location is one addressable slot in a warehouse. Location rows are the
// source of truth for the warehouse's physical layout; config and
// template snapshots are projections of them.
type Location struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	WarehouseID string `json:"warehouse_id" gorm:"uniqueIndex:idx_warehouse_code;not null"`
	Code        string `json:"code" gorm:"uniqueIndex:idx_warehouse_code;not null"`

	LocationType string `json:"location_type" gorm:"default:'STORAGE';index"`
	Zone         string `json:"zone" gorm:"default:'MAIN'"`

	// Hierarchy coordinates, set for storage locations only.
	Aisle    *int    `json:"aisle"`
	Rack     *int    `json:"rack"`
	Position *int    `json:"position"`
	Level    *string `json:"level"`

	FullAddress string `json:"full_address"`

	PalletCapacity int `json:"pallet_capacity" gorm:"default:1"`

	AllowedProducts     datatypes.JSON `json:"allowed_products" gorm:"type:jsonb;default:'[]'"`
	SpecialRequirements datatypes.JSON `json:"special_requirements" gorm:"type:jsonb;default:'{}'"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Location) TableName() string {
	return "warehouse_locations"
}

// IsStorage reports whether this is a storage slot rather than a
// special area.
func (l *Location) IsStorage() bool {
	return l.LocationType == TypeStorage
}

// BeforeSave keeps the derived full address in sync with the
// coordinates.
func (l *Location) BeforeSave(tx *gorm.DB) error {
	if l.IsStorage() && l.Aisle != nil && l.Rack != nil && l.Position != nil && l.Level != nil {
		l.FullAddress = layout.FullAddress(*l.Aisle, *l.Rack, *l.Position, *l.Level)
	}
	return nil
}

// AreaRow projects this location into the special-area reconciliation
// shape.
func (l *Location) AreaRow() layout.AreaRow {
	return layout.AreaRow{
		Code:      l.Code,
		Type:      l.LocationType,
		Capacity:  l.PalletCapacity,
		Zone:      l.Zone,
		IsStorage: l.IsStorage(),
	}
}

// ListFilter narrows location listings.
type ListFilter struct {
	WarehouseID  string
	LocationType string
	Zone         string
	Aisle        *int
	Search       string
	Limit        int
	Offset       int
}

// BulkError describes one failed row of a bulk insert.
type BulkError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// LocationRepository defines the contract for location data access
type LocationRepository interface {
	Create(location *Location) error
	FindByID(id uint) (*Location, error)
	FindByCode(warehouseID, code string) (*Location, error)
	FindAll(filter ListFilter) ([]Location, error)
	Count(filter ListFilter) (int64, error)
	Update(location *Location) error
	Delete(id uint) error
	// BulkCreate inserts each row independently and reports per-row
	// failures instead of aborting the batch.
	BulkCreate(locations []Location) (created int, errs []BulkError, err error)
	// DeleteByWarehouse removes every location row of a warehouse, used
	// before a full regeneration.
	DeleteByWarehouse(warehouseID string) error
}
