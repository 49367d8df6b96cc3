package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

type GormConfigRepository struct {
	db *gorm.DB
}

func NewGormConfigRepository(db *gorm.DB) *GormConfigRepository {
	return &GormConfigRepository{db: db}
}

func (r *GormConfigRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.WarehouseConfig{})
}

func (r *GormConfigRepository) Create(config *domain.WarehouseConfig) error {
	return r.db.Create(config).Error
}

func (r *GormConfigRepository) FindByID(id uint) (*domain.WarehouseConfig, error) {
	var config domain.WarehouseConfig
	err := r.db.First(&config, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *GormConfigRepository) FindActiveByWarehouse(warehouseID string) (*domain.WarehouseConfig, error) {
	var config domain.WarehouseConfig
	err := r.db.
		Where("warehouse_id = ? AND is_active = ?", warehouseID, true).
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *GormConfigRepository) FindByCode(code string) (*domain.WarehouseConfig, error) {
	var config domain.WarehouseConfig
	err := r.db.Where("share_code = ?", code).First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *GormConfigRepository) ListWarehouses() ([]domain.WarehouseSummary, error) {
	var summaries []domain.WarehouseSummary
	err := r.db.Model(&domain.WarehouseConfig{}).
		Select("warehouse_id, id AS config_id, name, share_code, total_storage_locations, total_capacity, updated_at").
		Where("is_active = ?", true).
		Order("warehouse_id").
		Scan(&summaries).Error
	return summaries, err
}

func (r *GormConfigRepository) Update(config *domain.WarehouseConfig) error {
	return r.db.Save(config).Error
}

// ReplaceActive retires any active config of the warehouse and stores the
// new one in the same transaction, so the one-active-config invariant
// holds even across concurrent applies.
func (r *GormConfigRepository) ReplaceActive(config *domain.WarehouseConfig) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.WarehouseConfig{}).
			Where("warehouse_id = ? AND is_active = ?", config.WarehouseID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Where("warehouse_id = ? AND is_active = ?", config.WarehouseID, false).
			Delete(&domain.WarehouseConfig{}).Error; err != nil {
			return err
		}

		config.IsActive = true
		return tx.Create(config).Error
	})
}

// CodeExists counts soft-deleted rows too. share_code is unique across
// the whole table, so a code held by a tombstone is still taken.
func (r *GormConfigRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Unscoped().Model(&domain.WarehouseConfig{}).
		Where("share_code = ?", code).
		Count(&count).Error
	return count > 0, err
}
