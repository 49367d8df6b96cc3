package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Location{})
}

func (r *GormLocationRepository) Create(location *domain.Location) error {
	return r.db.Create(location).Error
}

func (r *GormLocationRepository) FindByID(id uint) (*domain.Location, error) {
	var location domain.Location
	err := r.db.First(&location, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *GormLocationRepository) FindByCode(warehouseID, code string) (*domain.Location, error) {
	var location domain.Location
	err := r.db.
		Where("warehouse_id = ? AND code = ?", warehouseID, code).
		First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *GormLocationRepository) applyFilter(filter domain.ListFilter) *gorm.DB {
	query := r.db.Model(&domain.Location{}).
		Where("warehouse_id = ?", filter.WarehouseID)

	if filter.LocationType != "" {
		query = query.Where("location_type = ?", filter.LocationType)
	}
	if filter.Zone != "" {
		query = query.Where("zone = ?", filter.Zone)
	}
	if filter.Aisle != nil {
		query = query.Where("aisle = ?", *filter.Aisle)
	}
	if filter.Search != "" {
		query = query.Where("code ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func (r *GormLocationRepository) FindAll(filter domain.ListFilter) ([]domain.Location, error) {
	query := r.applyFilter(filter)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var locations []domain.Location
	err := query.Order("code").Find(&locations).Error
	return locations, err
}

func (r *GormLocationRepository) Count(filter domain.ListFilter) (int64, error) {
	var count int64
	err := r.applyFilter(filter).Count(&count).Error
	return count, err
}

func (r *GormLocationRepository) Update(location *domain.Location) error {
	return r.db.Save(location).Error
}

// Delete removes the row outright. Codes are unique per warehouse and a
// deleted code must be reusable immediately, so no tombstone is kept
// that would still occupy the unique index.
func (r *GormLocationRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Location{}, id).Error
}

// BulkCreate inserts rows one by one inside a transaction-per-row model
// so a duplicate code poisons only its own row, not the batch.
func (r *GormLocationRepository) BulkCreate(locations []domain.Location) (int, []domain.BulkError, error) {
	created := 0
	var bulkErrs []domain.BulkError

	for i := range locations {
		if err := r.db.Create(&locations[i]).Error; err != nil {
			bulkErrs = append(bulkErrs, domain.BulkError{
				Code:  locations[i].Code,
				Error: fmt.Sprintf("failed to insert: %v", err),
			})
			continue
		}
		created++
	}

	return created, bulkErrs, nil
}

// DeleteByWarehouse deletes every location row of a warehouse before
// regeneration rewrites the full set.
func (r *GormLocationRepository) DeleteByWarehouse(warehouseID string) error {
	return r.db.
		Where("warehouse_id = ?", warehouseID).
		Delete(&domain.Location{}).Error
}
