package command

import (
	"fmt"
	"strings"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/template/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

// CreateTemplateCommand represents the command to create a template
type CreateTemplateCommand struct {
	Name        string
	Description string

	NumAisles             int
	RacksPerAisle         int
	PositionsPerRack      int
	LevelsPerPosition     int
	LevelNames            string
	DefaultPalletCapacity int
	BidimensionalRacks    bool

	ReceivingAreas []layout.SpecialArea
	StagingAreas   []layout.SpecialArea
	DockAreas      []layout.SpecialArea

	Visibility string
	Category   string
	Industry   string
	Tags       []string

	PatternName       string
	CanonicalExamples []string

	CreatedByID   uint
	CreatedByName string
}

// CreateTemplateHandler handles create template command
type CreateTemplateHandler struct {
	repo domain.TemplateRepository
}

// NewCreateTemplateHandler creates a new create template handler
func NewCreateTemplateHandler(repo domain.TemplateRepository) *CreateTemplateHandler {
	return &CreateTemplateHandler{repo: repo}
}

// Handle executes the create template command. Validation reports every
// violated field, not just the first.
func (h *CreateTemplateHandler) Handle(cmd CreateTemplateCommand) (*domain.WarehouseTemplate, error) {
	if err := validateTemplateFields(cmd); err != nil {
		return nil, err
	}

	structure := layout.Structure{
		NumAisles:             cmd.NumAisles,
		RacksPerAisle:         cmd.RacksPerAisle,
		PositionsPerRack:      cmd.PositionsPerRack,
		LevelsPerPosition:     cmd.LevelsPerPosition,
		LevelNames:            cmd.LevelNames,
		DefaultPalletCapacity: cmd.DefaultPalletCapacity,
		BidimensionalRacks:    cmd.BidimensionalRacks,
	}

	code, err := layout.UniqueShareCode(layout.TemplateCodePrefix, structure, h.repo.CodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate template code: %w", err)
	}

	visibility := cmd.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPrivate
	}

	levelNames := cmd.LevelNames
	if levelNames == "" {
		levelNames = defaultLevelNames(cmd.LevelsPerPosition)
	}

	palletCapacity := cmd.DefaultPalletCapacity
	if palletCapacity <= 0 {
		palletCapacity = 1
	}

	template := &domain.WarehouseTemplate{
		Name:                  strings.TrimSpace(cmd.Name),
		Description:           cmd.Description,
		TemplateCode:          code,
		NumAisles:             cmd.NumAisles,
		RacksPerAisle:         cmd.RacksPerAisle,
		PositionsPerRack:      cmd.PositionsPerRack,
		LevelsPerPosition:     cmd.LevelsPerPosition,
		LevelNames:            levelNames,
		DefaultPalletCapacity: palletCapacity,
		BidimensionalRacks:    cmd.BidimensionalRacks,
		Visibility:            visibility,
		Category:              cmd.Category,
		Industry:              cmd.Industry,
		PatternName:           cmd.PatternName,
		CreatedByID:           cmd.CreatedByID,
		CreatedByName:         cmd.CreatedByName,
		IsActive:              true,
	}

	if err := encodeTemplateCollections(template, cmd); err != nil {
		return nil, fmt.Errorf("failed to encode template collections: %w", err)
	}

	if err := h.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return template, nil
}

func validateTemplateFields(cmd CreateTemplateCommand) error {
	verr := apperror.NewValidationError()

	if strings.TrimSpace(cmd.Name) == "" {
		verr.Add("name", "name is required")
	}
	if cmd.NumAisles < 1 {
		verr.Add("num_aisles", "must be a positive integer")
	}
	if cmd.RacksPerAisle < 1 {
		verr.Add("racks_per_aisle", "must be a positive integer")
	}
	if cmd.PositionsPerRack < 1 {
		verr.Add("positions_per_rack", "must be a positive integer")
	}
	if cmd.LevelsPerPosition < 1 {
		verr.Add("levels_per_position", "must be a positive integer")
	}
	if cmd.LevelNames != "" && len([]rune(cmd.LevelNames)) < cmd.LevelsPerPosition {
		verr.Add("level_names", "must name every level")
	}
	if cmd.Visibility != "" &&
		cmd.Visibility != domain.VisibilityPrivate &&
		cmd.Visibility != domain.VisibilityCompany &&
		cmd.Visibility != domain.VisibilityPublic {
		verr.Add("visibility", "must be PRIVATE, COMPANY or PUBLIC")
	}

	validateAreas(verr, "receiving_areas_template", cmd.ReceivingAreas)
	validateAreas(verr, "staging_areas_template", cmd.StagingAreas)
	validateAreas(verr, "dock_areas_template", cmd.DockAreas)

	return verr.ErrOrNil()
}

func validateAreas(verr *apperror.ValidationError, field string, areas []layout.SpecialArea) {
	for i, area := range areas {
		if err := area.Validate(); err != nil {
			verr.Add(fmt.Sprintf("%s[%d]", field, i), err.Error())
		}
	}
}

func encodeTemplateCollections(template *domain.WarehouseTemplate, cmd CreateTemplateCommand) error {
	receiving, err := domain.EncodeAreas(cmd.ReceivingAreas)
	if err != nil {
		return err
	}
	staging, err := domain.EncodeAreas(cmd.StagingAreas)
	if err != nil {
		return err
	}
	dock, err := domain.EncodeAreas(cmd.DockAreas)
	if err != nil {
		return err
	}
	tags, err := encodeStrings(cmd.Tags)
	if err != nil {
		return err
	}
	examples, err := encodeStrings(cmd.CanonicalExamples)
	if err != nil {
		return err
	}

	template.ReceivingAreas = receiving
	template.StagingAreas = staging
	template.DockAreas = dock
	template.Tags = tags
	template.CanonicalExamples = examples
	return nil
}

func defaultLevelNames(levels int) string {
	if levels < 1 {
		return ""
	}
	names := make([]rune, 0, levels)
	for i := 0; i < levels; i++ {
		names = append(names, rune('A'+i%26))
	}
	return string(names)
}
