package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/template/domain"
)

var tracer = otel.Tracer("template-repository")

// GormTemplateRepositoryWithTracing wraps GormTemplateRepository with tracing
type GormTemplateRepositoryWithTracing struct {
	*GormTemplateRepository
}

// NewGormTemplateRepositoryWithTracing creates a new repository with tracing
func NewGormTemplateRepositoryWithTracing(db *gorm.DB) *GormTemplateRepositoryWithTracing {
	return &GormTemplateRepositoryWithTracing{
		GormTemplateRepository: NewGormTemplateRepository(db),
	}
}

// CreateWithContext records a span around template creation
func (r *GormTemplateRepositoryWithTracing) CreateWithContext(ctx context.Context, template *domain.WarehouseTemplate) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("template.name", template.Name),
			attribute.String("template.visibility", template.Visibility),
		),
	)
	defer span.End()

	err := r.GormTemplateRepository.Create(template)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(
		attribute.Int("template.id", int(template.ID)),
		attribute.String("template.code", template.TemplateCode),
	)
	return nil
}

// FindByCodeWithContext records a span around code lookup
func (r *GormTemplateRepositoryWithTracing) FindByCodeWithContext(ctx context.Context, code string) (*domain.WarehouseTemplate, error) {
	_, span := tracer.Start(ctx, "repository.FindByCode",
		trace.WithAttributes(
			attribute.String("template.code", code),
		),
	)
	defer span.End()

	template, err := r.GormTemplateRepository.FindByCode(code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("template.id", int(template.ID)))
	return template, nil
}

// IncrementUsageWithContext records a span around the usage counter bump
func (r *GormTemplateRepositoryWithTracing) IncrementUsageWithContext(ctx context.Context, id uint) error {
	_, span := tracer.Start(ctx, "repository.IncrementUsage",
		trace.WithAttributes(
			attribute.Int("template.id", int(id)),
		),
	)
	defer span.End()

	if err := r.GormTemplateRepository.IncrementUsage(id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
