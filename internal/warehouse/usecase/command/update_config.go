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

// UpdateConfigCommand edits the active config of a warehouse. Nil
// pointers mean "no change".
type UpdateConfigCommand struct {
	WarehouseID string

	Name        *string
	DefaultZone *string

	NumAisles             *int
	RacksPerAisle         *int
	PositionsPerRack      *int
	LevelsPerPosition     *int
	LevelNames            *string
	DefaultPalletCapacity *int
	BidimensionalRacks    *bool

	PositionNumberingStart *int
	PositionNumberingSplit *bool

	SpecialAreas *[]layout.SpecialArea
}

// UpdateConfigHandler handles config updates
type UpdateConfigHandler struct {
	repo      domain.ConfigRepository
	generator LocationGenerator
	publisher kafka.EventPublisher
}

// NewUpdateConfigHandler creates a new update config handler
func NewUpdateConfigHandler(
	repo domain.ConfigRepository,
	generator LocationGenerator,
	publisher kafka.EventPublisher,
) *UpdateConfigHandler {
	return &UpdateConfigHandler{
		repo:      repo,
		generator: generator,
		publisher: publisher,
	}
}

// Handle executes the update. Structural changes regenerate all location
// rows; name-only edits leave them untouched.
func (h *UpdateConfigHandler) Handle(ctx context.Context, cmd UpdateConfigCommand) (*domain.WarehouseConfig, error) {
	if cmd.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}

	config, err := h.repo.FindActiveByWarehouse(cmd.WarehouseID)
	if err != nil {
		return nil, err
	}

	before := config.Structure()
	applyConfigUpdates(config, cmd)
	after := config.Structure()

	if err := validateStructure(after, nil); err != nil {
		return nil, err
	}

	areasChanged := false
	if cmd.SpecialAreas != nil {
		for i, area := range *cmd.SpecialAreas {
			if verr := area.Validate(); verr != nil {
				return nil, fmt.Errorf("special_areas[%d]: %w", i, verr)
			}
		}
		if err := config.SetSpecialAreas(*cmd.SpecialAreas); err != nil {
			return nil, err
		}
		areasChanged = true
	}

	if err := config.RecalculateTotals(); err != nil {
		return nil, err
	}
	if err := h.repo.Update(config); err != nil {
		return nil, &apperror.PartialError{Step: StepSaveConfig, Err: err}
	}

	if !before.SameShape(after) || areasChanged {
		areas, err := config.SpecialAreas()
		if err != nil {
			return nil, err
		}
		if _, err := h.generator.Regenerate(ctx, cmd.WarehouseID, config.DefaultZone, after, areas); err != nil {
			return nil, &apperror.PartialError{Step: StepGenerateLocations, Err: err}
		}

		if err := h.publisher.PublishLocationsGenerated(ctx, kafka.LocationsGeneratedEvent{
			WarehouseID:  cmd.WarehouseID,
			ConfigID:     config.ID,
			StorageCount: config.TotalStorageLocations,
			SpecialCount: len(areas),
		}); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("warehouse_id", cmd.WarehouseID).
				Msg("Failed to publish locations generated event")
		}
	}

	return config, nil
}

func applyConfigUpdates(config *domain.WarehouseConfig, cmd UpdateConfigCommand) {
	if cmd.Name != nil {
		config.Name = *cmd.Name
	}
	if cmd.DefaultZone != nil {
		config.DefaultZone = *cmd.DefaultZone
	}
	if cmd.NumAisles != nil {
		config.NumAisles = *cmd.NumAisles
	}
	if cmd.RacksPerAisle != nil {
		config.RacksPerAisle = *cmd.RacksPerAisle
	}
	if cmd.PositionsPerRack != nil {
		config.PositionsPerRack = *cmd.PositionsPerRack
	}
	if cmd.LevelsPerPosition != nil {
		config.LevelsPerPosition = *cmd.LevelsPerPosition
	}
	if cmd.LevelNames != nil {
		config.LevelNames = *cmd.LevelNames
	}
	if cmd.DefaultPalletCapacity != nil {
		config.DefaultPalletCapacity = *cmd.DefaultPalletCapacity
	}
	if cmd.BidimensionalRacks != nil {
		config.BidimensionalRacks = *cmd.BidimensionalRacks
	}
	if cmd.PositionNumberingStart != nil {
		config.PositionNumberingStart = *cmd.PositionNumberingStart
	}
	if cmd.PositionNumberingSplit != nil {
		config.PositionNumberingSplit = *cmd.PositionNumberingSplit
	}
}
