package command

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/template/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

// UpdateTemplateCommand represents the command to update a template.
// Nil pointers mean "no change"; in particular, absent special-area
// arrays never clear the stored snapshots.
type UpdateTemplateCommand struct {
	ID          uint
	RequestedBy uint

	Name        *string
	Description *string

	NumAisles             *int
	RacksPerAisle         *int
	PositionsPerRack      *int
	LevelsPerPosition     *int
	LevelNames            *string
	DefaultPalletCapacity *int
	BidimensionalRacks    *bool

	ReceivingAreas *[]layout.SpecialArea
	StagingAreas   *[]layout.SpecialArea
	DockAreas      *[]layout.SpecialArea

	Visibility *string
	Category   *string
	Industry   *string
	Tags       *[]string

	PatternName       *string
	CanonicalExamples *[]string
	IsActive          *bool
}

// UpdateTemplateHandler handles template update command
type UpdateTemplateHandler struct {
	repo domain.TemplateRepository
}

// NewUpdateTemplateHandler creates a new update template handler
func NewUpdateTemplateHandler(repo domain.TemplateRepository) *UpdateTemplateHandler {
	return &UpdateTemplateHandler{repo: repo}
}

// Handle executes the update template command
func (h *UpdateTemplateHandler) Handle(cmd UpdateTemplateCommand) (*domain.WarehouseTemplate, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid template id")
	}

	template, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if template.CreatedByID != cmd.RequestedBy {
		return nil, fmt.Errorf("only the template creator can modify it")
	}

	applyScalarUpdates(template, cmd)

	if err := validateUpdated(template); err != nil {
		return nil, err
	}

	if err := applyCollectionUpdates(template, cmd); err != nil {
		return nil, err
	}

	template.UpdatedAt = time.Now()
	if err := h.repo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return template, nil
}

func applyScalarUpdates(template *domain.WarehouseTemplate, cmd UpdateTemplateCommand) {
	if cmd.Name != nil {
		template.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		template.Description = *cmd.Description
	}
	if cmd.NumAisles != nil {
		template.NumAisles = *cmd.NumAisles
	}
	if cmd.RacksPerAisle != nil {
		template.RacksPerAisle = *cmd.RacksPerAisle
	}
	if cmd.PositionsPerRack != nil {
		template.PositionsPerRack = *cmd.PositionsPerRack
	}
	if cmd.LevelsPerPosition != nil {
		template.LevelsPerPosition = *cmd.LevelsPerPosition
	}
	if cmd.LevelNames != nil {
		template.LevelNames = *cmd.LevelNames
	}
	if cmd.DefaultPalletCapacity != nil {
		template.DefaultPalletCapacity = *cmd.DefaultPalletCapacity
	}
	if cmd.BidimensionalRacks != nil {
		template.BidimensionalRacks = *cmd.BidimensionalRacks
	}
	if cmd.Visibility != nil {
		template.Visibility = *cmd.Visibility
	}
	if cmd.Category != nil {
		template.Category = *cmd.Category
	}
	if cmd.Industry != nil {
		template.Industry = *cmd.Industry
	}
	if cmd.PatternName != nil {
		template.PatternName = *cmd.PatternName
	}
	if cmd.IsActive != nil {
		template.IsActive = *cmd.IsActive
	}
}

func applyCollectionUpdates(template *domain.WarehouseTemplate, cmd UpdateTemplateCommand) error {
	if cmd.ReceivingAreas != nil {
		raw, err := domain.EncodeAreas(*cmd.ReceivingAreas)
		if err != nil {
			return err
		}
		template.ReceivingAreas = raw
	}
	if cmd.StagingAreas != nil {
		raw, err := domain.EncodeAreas(*cmd.StagingAreas)
		if err != nil {
			return err
		}
		template.StagingAreas = raw
	}
	if cmd.DockAreas != nil {
		raw, err := domain.EncodeAreas(*cmd.DockAreas)
		if err != nil {
			return err
		}
		template.DockAreas = raw
	}
	if cmd.Tags != nil {
		raw, err := encodeStrings(*cmd.Tags)
		if err != nil {
			return err
		}
		template.Tags = raw
	}
	if cmd.CanonicalExamples != nil {
		raw, err := encodeStrings(*cmd.CanonicalExamples)
		if err != nil {
			return err
		}
		template.CanonicalExamples = raw
	}
	return nil
}

func validateUpdated(template *domain.WarehouseTemplate) error {
	verr := apperror.NewValidationError()

	if template.Name == "" {
		verr.Add("name", "name is required")
	}
	if template.NumAisles < 1 {
		verr.Add("num_aisles", "must be a positive integer")
	}
	if template.RacksPerAisle < 1 {
		verr.Add("racks_per_aisle", "must be a positive integer")
	}
	if template.PositionsPerRack < 1 {
		verr.Add("positions_per_rack", "must be a positive integer")
	}
	if template.LevelsPerPosition < 1 {
		verr.Add("levels_per_position", "must be a positive integer")
	}
	if template.LevelNames != "" && len([]rune(template.LevelNames)) < template.LevelsPerPosition {
		verr.Add("level_names", "must name every level")
	}

	return verr.ErrOrNil()
}

func encodeStrings(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
