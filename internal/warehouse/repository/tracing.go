package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
)

var tracer = otel.Tracer("warehouse-repository")

// GormConfigRepositoryWithTracing wraps GormConfigRepository with tracing
type GormConfigRepositoryWithTracing struct {
	*GormConfigRepository
}

// NewGormConfigRepositoryWithTracing creates a new repository with tracing
func NewGormConfigRepositoryWithTracing(db *gorm.DB) *GormConfigRepositoryWithTracing {
	return &GormConfigRepositoryWithTracing{
		GormConfigRepository: NewGormConfigRepository(db),
	}
}

// ReplaceActiveWithContext records a span around the config swap
func (r *GormConfigRepositoryWithTracing) ReplaceActiveWithContext(ctx context.Context, config *domain.WarehouseConfig) error {
	_, span := tracer.Start(ctx, "repository.ReplaceActive",
		trace.WithAttributes(
			attribute.String("warehouse.id", config.WarehouseID),
			attribute.String("config.share_code", config.ShareCode),
		),
	)
	defer span.End()

	if err := r.GormConfigRepository.ReplaceActive(config); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("config.id", int(config.ID)))
	return nil
}

// FindActiveByWarehouseWithContext records a span around the active lookup
func (r *GormConfigRepositoryWithTracing) FindActiveByWarehouseWithContext(ctx context.Context, warehouseID string) (*domain.WarehouseConfig, error) {
	_, span := tracer.Start(ctx, "repository.FindActiveByWarehouse",
		trace.WithAttributes(
			attribute.String("warehouse.id", warehouseID),
		),
	)
	defer span.End()

	config, err := r.GormConfigRepository.FindActiveByWarehouse(warehouseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("config.id", int(config.ID)))
	return config, nil
}
