package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/location/domain"
)

var tracer = otel.Tracer("location-repository")

// GormLocationRepositoryWithTracing wraps GormLocationRepository with tracing
type GormLocationRepositoryWithTracing struct {
	*GormLocationRepository
}

// NewGormLocationRepositoryWithTracing creates a new repository with tracing
func NewGormLocationRepositoryWithTracing(db *gorm.DB) *GormLocationRepositoryWithTracing {
	return &GormLocationRepositoryWithTracing{
		GormLocationRepository: NewGormLocationRepository(db),
	}
}

// BulkCreateWithContext records a span around a bulk insert
func (r *GormLocationRepositoryWithTracing) BulkCreateWithContext(ctx context.Context, locations []domain.Location) (int, []domain.BulkError, error) {
	_, span := tracer.Start(ctx, "repository.BulkCreate",
		trace.WithAttributes(
			attribute.Int("locations.requested", len(locations)),
		),
	)
	defer span.End()

	created, bulkErrs, err := r.GormLocationRepository.BulkCreate(locations)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return created, bulkErrs, err
	}

	span.SetAttributes(
		attribute.Int("locations.created", created),
		attribute.Int("locations.failed", len(bulkErrs)),
	)
	return created, bulkErrs, nil
}

// DeleteByWarehouseWithContext records a span around a full wipe
func (r *GormLocationRepositoryWithTracing) DeleteByWarehouseWithContext(ctx context.Context, warehouseID string) error {
	_, span := tracer.Start(ctx, "repository.DeleteByWarehouse",
		trace.WithAttributes(
			attribute.String("warehouse.id", warehouseID),
		),
	)
	defer span.End()

	if err := r.GormLocationRepository.DeleteByWarehouse(warehouseID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
