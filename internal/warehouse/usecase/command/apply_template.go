package command

import (
	"context"
	"fmt"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/warehouse/client"
	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
	"github.com/warekit/warehouse-layout/kafka"
	"github.com/warekit/warehouse-layout/pkg/apperror"
	"github.com/warekit/warehouse-layout/pkg/logger"
)

// Apply step names used in partial-failure reporting.
const (
	StepSaveConfig        = "save-config"
	StepGenerateLocations = "generate-locations"
)

// ApplyTemplateCommand applies a template to a warehouse. Exactly one of
// TemplateID and TemplateCode selects the template.
type ApplyTemplateCommand struct {
	WarehouseID  string
	TemplateID   uint
	TemplateCode string
	Name         string
	DefaultZone  string
	AppliedByID  uint
}

// ApplyResult reports what the apply produced.
type ApplyResult struct {
	Config           *domain.WarehouseConfig `json:"config"`
	LocationsCreated int                     `json:"locations_created"`
	StorageLocations int                     `json:"storage_locations"`
	SpecialAreas     int                     `json:"special_areas"`
}

// ApplyTemplateHandler orchestrates the apply flow: resolve the
// template, persist the config copy, regenerate locations, publish the
// applied event.
type ApplyTemplateHandler struct {
	repo      domain.ConfigRepository
	resolver  TemplateResolver
	generator LocationGenerator
	publisher kafka.EventPublisher
}

// NewApplyTemplateHandler creates a new apply template handler
func NewApplyTemplateHandler(
	repo domain.ConfigRepository,
	resolver TemplateResolver,
	generator LocationGenerator,
	publisher kafka.EventPublisher,
) *ApplyTemplateHandler {
	return &ApplyTemplateHandler{
		repo:      repo,
		resolver:  resolver,
		generator: generator,
		publisher: publisher,
	}
}

// Handle executes the apply. The config stores its own copy of the
// template's structure; after this call the warehouse never reads
// through to the template again. Failures after the config is saved
// come back as PartialError naming the failed step, so callers can
// retry just the regeneration.
func (h *ApplyTemplateHandler) Handle(ctx context.Context, cmd ApplyTemplateCommand) (*ApplyResult, error) {
	if cmd.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}

	template, err := h.resolve(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !template.Structure.Valid() {
		return nil, fmt.Errorf("template %q has invalid structural fields", template.TemplateCode)
	}
	if template.Structure.PositionNumberingStart == 0 {
		// Normalize before the shape comparison below; stored configs
		// always carry an explicit start.
		template.Structure.PositionNumberingStart = 1
	}

	config, err := h.upsertConfig(ctx, cmd, template)
	if err != nil {
		return nil, &apperror.PartialError{Step: StepSaveConfig, Err: err}
	}

	zone := config.DefaultZone
	created, err := h.generator.Regenerate(ctx, cmd.WarehouseID, zone, config.Structure(), template.SpecialAreas)
	if err != nil {
		return nil, &apperror.PartialError{Step: StepGenerateLocations, Err: err}
	}

	h.publish(ctx, cmd, template, config, created)

	return &ApplyResult{
		Config:           config,
		LocationsCreated: created,
		StorageLocations: config.TotalStorageLocations,
		SpecialAreas:     len(template.SpecialAreas),
	}, nil
}

func (h *ApplyTemplateHandler) resolve(ctx context.Context, cmd ApplyTemplateCommand) (*client.ResolvedTemplate, error) {
	switch {
	case cmd.TemplateID != 0:
		template, err := h.resolver.GetTemplate(ctx, cmd.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve template %d: %w", cmd.TemplateID, err)
		}
		return template, nil
	case cmd.TemplateCode != "":
		template, err := h.resolver.GetTemplateByCode(ctx, cmd.TemplateCode)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve template %q: %w", cmd.TemplateCode, err)
		}
		return template, nil
	default:
		return nil, fmt.Errorf("template id or code is required")
	}
}

// upsertConfig reuses the active config when the same template is
// reapplied with an unchanged shape, so repeated applies are idempotent.
// Otherwise the active config is replaced.
func (h *ApplyTemplateHandler) upsertConfig(ctx context.Context, cmd ApplyTemplateCommand, template *client.ResolvedTemplate) (*domain.WarehouseConfig, error) {
	existing, err := h.repo.FindActiveByWarehouse(cmd.WarehouseID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if existing != nil &&
		existing.AppliedTemplateID != nil &&
		*existing.AppliedTemplateID == template.ID &&
		existing.Structure().SameShape(template.Structure) {
		if err := existing.RecalculateTotals(); err != nil {
			return nil, err
		}
		if err := h.repo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	name := cmd.Name
	if name == "" {
		name = template.Name
	}
	zone := cmd.DefaultZone
	if zone == "" {
		zone = "MAIN"
	}

	code, err := layout.UniqueShareCode(layout.WarehouseCodePrefix, template.Structure, h.repo.CodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate share code: %w", err)
	}

	templateID := template.ID
	config := &domain.WarehouseConfig{
		WarehouseID:         cmd.WarehouseID,
		Name:                name,
		ShareCode:           code,
		DefaultZone:         zone,
		AppliedTemplateID:   &templateID,
		AppliedTemplateCode: template.TemplateCode,
	}
	config.SetStructure(template.Structure)
	if err := config.SetSpecialAreas(template.SpecialAreas); err != nil {
		return nil, err
	}
	if err := config.RecalculateTotals(); err != nil {
		return nil, err
	}

	if err := h.repo.ReplaceActive(config); err != nil {
		return nil, err
	}
	return config, nil
}

// publish emits the applied events. Event loss only delays the usage
// counter, so failures are logged and swallowed.
func (h *ApplyTemplateHandler) publish(ctx context.Context, cmd ApplyTemplateCommand, template *client.ResolvedTemplate, config *domain.WarehouseConfig, created int) {
	err := h.publisher.PublishTemplateApplied(ctx, kafka.TemplateAppliedEvent{
		TemplateID:    template.ID,
		TemplateCode:  template.TemplateCode,
		WarehouseID:   cmd.WarehouseID,
		ConfigID:      config.ID,
		LocationCount: created,
		AppliedByID:   cmd.AppliedByID,
	})
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("warehouse_id", cmd.WarehouseID).
			Uint("template_id", template.ID).
			Msg("Failed to publish template applied event")
	}

	err = h.publisher.PublishLocationsGenerated(ctx, kafka.LocationsGeneratedEvent{
		WarehouseID:  cmd.WarehouseID,
		ConfigID:     config.ID,
		StorageCount: config.TotalStorageLocations,
		SpecialCount: len(template.SpecialAreas),
	})
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("warehouse_id", cmd.WarehouseID).
			Msg("Failed to publish locations generated event")
	}
}
