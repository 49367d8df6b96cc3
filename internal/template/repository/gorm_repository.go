package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/template/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

type GormTemplateRepository struct {
	db *gorm.DB
}

func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

func (r *GormTemplateRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.WarehouseTemplate{})
}

func (r *GormTemplateRepository) Create(template *domain.WarehouseTemplate) error {
	return r.db.Create(template).Error
}

func (r *GormTemplateRepository) FindByID(id uint) (*domain.WarehouseTemplate, error) {
	var template domain.WarehouseTemplate
	err := r.db.First(&template, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormTemplateRepository) FindByCode(code string) (*domain.WarehouseTemplate, error) {
	var template domain.WarehouseTemplate
	err := r.db.Where("template_code = ?", code).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormTemplateRepository) FindAll(filter domain.ListFilter) ([]domain.WarehouseTemplate, error) {
	query := r.db.Model(&domain.WarehouseTemplate{})

	switch filter.Scope {
	case domain.ScopeMy:
		query = query.Where("created_by_id = ?", filter.UserID)
	case domain.ScopePublic:
		query = query.Where("visibility = ?", domain.VisibilityPublic)
	case domain.ScopeAll, "":
		query = query.Where("visibility IN ? OR created_by_id = ?",
			[]string{domain.VisibilityPublic, domain.VisibilityCompany}, filter.UserID)
	default:
		return nil, fmt.Errorf("unknown scope %q", filter.Scope)
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", like, like, like)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var templates []domain.WarehouseTemplate
	err := query.Order("updated_at DESC").Limit(limit).Offset(filter.Offset).Find(&templates).Error
	return templates, err
}

func (r *GormTemplateRepository) FindPopular(limit int) ([]domain.WarehouseTemplate, error) {
	if limit <= 0 {
		limit = 10
	}
	var templates []domain.WarehouseTemplate
	err := r.db.
		Where("visibility = ? AND is_active = ?", domain.VisibilityPublic, true).
		Order("usage_count DESC, rating DESC").
		Limit(limit).
		Find(&templates).Error
	return templates, err
}

func (r *GormTemplateRepository) Update(template *domain.WarehouseTemplate) error {
	return r.db.Save(template).Error
}

// Delete soft-deletes a template. Rows stay referenced by historical
// configurations, so a hard delete is never issued.
func (r *GormTemplateRepository) Delete(id uint) error {
	return r.db.Delete(&domain.WarehouseTemplate{}, id).Error
}

func (r *GormTemplateRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.WarehouseTemplate{}).
		Where("template_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *GormTemplateRepository) IncrementUsage(id uint) error {
	return r.db.Model(&domain.WarehouseTemplate{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
