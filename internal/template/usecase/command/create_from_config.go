package command

import (
	"fmt"
	"strings"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// CreateFromConfigCommand captures an applied warehouse configuration as
// a reusable template. The config's special areas arrive already
// reconciled from its live Location rows.
type CreateFromConfigCommand struct {
	ConfigID    uint
	Name        string
	Description string
	Visibility  string

	Structure    layout.Structure
	SpecialAreas []layout.SpecialArea

	CreatedByID   uint
	CreatedByName string
}

// CreateFromConfigHandler handles template-from-config creation
type CreateFromConfigHandler struct {
	repo domain.TemplateRepository
}

// NewCreateFromConfigHandler creates a new create-from-config handler
func NewCreateFromConfigHandler(repo domain.TemplateRepository) *CreateFromConfigHandler {
	return &CreateFromConfigHandler{repo: repo}
}

// Handle executes the create-from-config command
func (h *CreateFromConfigHandler) Handle(cmd CreateFromConfigCommand) (*domain.WarehouseTemplate, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !cmd.Structure.Valid() {
		return nil, fmt.Errorf("configuration has invalid structural fields")
	}

	code, err := layout.UniqueShareCode(layout.TemplateCodePrefix, cmd.Structure, h.repo.CodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate template code: %w", err)
	}

	visibility := cmd.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPrivate
	}

	configID := cmd.ConfigID
	template := &domain.WarehouseTemplate{
		Name:                  strings.TrimSpace(cmd.Name),
		Description:           cmd.Description,
		TemplateCode:          code,
		NumAisles:             cmd.Structure.NumAisles,
		RacksPerAisle:         cmd.Structure.RacksPerAisle,
		PositionsPerRack:      cmd.Structure.PositionsPerRack,
		LevelsPerPosition:     cmd.Structure.LevelsPerPosition,
		LevelNames:            cmd.Structure.LevelNames,
		DefaultPalletCapacity: cmd.Structure.DefaultPalletCapacity,
		BidimensionalRacks:    cmd.Structure.BidimensionalRacks,
		Visibility:            visibility,
		CreatedByID:           cmd.CreatedByID,
		CreatedByName:         cmd.CreatedByName,
		BasedOnConfigID:       &configID,
		IsActive:              true,
	}

	if err := template.SetSpecialAreas(cmd.SpecialAreas); err != nil {
		return nil, fmt.Errorf("failed to encode special areas: %w", err)
	}

	if err := h.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template from config: %w", err)
	}

	return template, nil
}
