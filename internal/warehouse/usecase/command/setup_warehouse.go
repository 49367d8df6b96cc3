package command

import (
	"context"
	"fmt"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
	"github.com/warekit/warehouse-layout/kafka"
	"github.com/warekit/warehouse-layout/pkg/apperror"
	"github.com/warekit/warehouse-layout/pkg/logger"
)

// SetupWarehouseCommand configures a warehouse from scratch, without a
// template.
type SetupWarehouseCommand struct {
	WarehouseID string
	Name        string
	DefaultZone string

	Structure    layout.Structure
	SpecialAreas []layout.SpecialArea
}

// SetupWarehouseHandler handles manual warehouse setup
type SetupWarehouseHandler struct {
	repo      domain.ConfigRepository
	generator LocationGenerator
	publisher kafka.EventPublisher
}

// NewSetupWarehouseHandler creates a new setup warehouse handler
func NewSetupWarehouseHandler(
	repo domain.ConfigRepository,
	generator LocationGenerator,
	publisher kafka.EventPublisher,
) *SetupWarehouseHandler {
	return &SetupWarehouseHandler{
		repo:      repo,
		generator: generator,
		publisher: publisher,
	}
}

// Handle executes the setup. Like a template apply, this replaces the
// active config and regenerates all location rows.
func (h *SetupWarehouseHandler) Handle(ctx context.Context, cmd SetupWarehouseCommand) (*ApplyResult, error) {
	if cmd.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}
	if err := validateStructure(cmd.Structure, cmd.SpecialAreas); err != nil {
		return nil, err
	}

	code, err := layout.UniqueShareCode(layout.WarehouseCodePrefix, cmd.Structure, h.repo.CodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate share code: %w", err)
	}

	zone := cmd.DefaultZone
	if zone == "" {
		zone = "MAIN"
	}

	config := &domain.WarehouseConfig{
		WarehouseID: cmd.WarehouseID,
		Name:        cmd.Name,
		ShareCode:   code,
		DefaultZone: zone,
	}
	config.SetStructure(cmd.Structure)
	if err := config.SetSpecialAreas(cmd.SpecialAreas); err != nil {
		return nil, err
	}
	if err := config.RecalculateTotals(); err != nil {
		return nil, err
	}

	if err := h.repo.ReplaceActive(config); err != nil {
		return nil, &apperror.PartialError{Step: StepSaveConfig, Err: err}
	}

	created, err := h.generator.Regenerate(ctx, cmd.WarehouseID, zone, config.Structure(), cmd.SpecialAreas)
	if err != nil {
		return nil, &apperror.PartialError{Step: StepGenerateLocations, Err: err}
	}

	if err := h.publisher.PublishLocationsGenerated(ctx, kafka.LocationsGeneratedEvent{
		WarehouseID:  cmd.WarehouseID,
		ConfigID:     config.ID,
		StorageCount: config.TotalStorageLocations,
		SpecialCount: len(cmd.SpecialAreas),
	}); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("warehouse_id", cmd.WarehouseID).
			Msg("Failed to publish locations generated event")
	}

	return &ApplyResult{
		Config:           config,
		LocationsCreated: created,
		StorageLocations: config.TotalStorageLocations,
		SpecialAreas:     len(cmd.SpecialAreas),
	}, nil
}

func validateStructure(s layout.Structure, areas []layout.SpecialArea) error {
	verr := apperror.NewValidationError()

	if s.NumAisles < 1 {
		verr.Add("num_aisles", "must be a positive integer")
	}
	if s.RacksPerAisle < 1 {
		verr.Add("racks_per_aisle", "must be a positive integer")
	}
	if s.PositionsPerRack < 1 {
		verr.Add("positions_per_rack", "must be a positive integer")
	}
	if s.LevelsPerPosition < 1 {
		verr.Add("levels_per_position", "must be a positive integer")
	}
	if s.LevelNames != "" && len([]rune(s.LevelNames)) < s.LevelsPerPosition {
		verr.Add("level_names", "must name every level")
	}

	for i, area := range areas {
		if err := area.Validate(); err != nil {
			verr.Add(fmt.Sprintf("special_areas[%d]", i), err.Error())
		}
	}

	return verr.ErrOrNil()
}
