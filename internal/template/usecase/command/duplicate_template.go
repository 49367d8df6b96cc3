package command

import (
	"fmt"
	"strings"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// DuplicateTemplateCommand represents the command to duplicate a template
type DuplicateTemplateCommand struct {
	SourceID      uint
	NewName       string
	RequestedBy   uint
	RequestedName string
}

// DuplicateTemplateHandler handles template duplication
type DuplicateTemplateHandler struct {
	repo domain.TemplateRepository
}

// NewDuplicateTemplateHandler creates a new duplicate template handler
func NewDuplicateTemplateHandler(repo domain.TemplateRepository) *DuplicateTemplateHandler {
	return &DuplicateTemplateHandler{repo: repo}
}

// Handle copies a template under a new name and code. Identity and usage
// fields are stripped, and the copy starts inactive until explicitly
// activated.
func (h *DuplicateTemplateHandler) Handle(cmd DuplicateTemplateCommand) (*domain.WarehouseTemplate, error) {
	if cmd.SourceID == 0 {
		return nil, fmt.Errorf("invalid template id")
	}
	if strings.TrimSpace(cmd.NewName) == "" {
		return nil, fmt.Errorf("new name is required")
	}

	source, err := h.repo.FindByID(cmd.SourceID)
	if err != nil {
		return nil, err
	}

	code, err := layout.UniqueShareCode(layout.TemplateCodePrefix, source.Structure(), h.repo.CodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate template code: %w", err)
	}

	dup := *source
	dup.ID = 0
	dup.Name = strings.TrimSpace(cmd.NewName)
	dup.TemplateCode = code
	dup.UsageCount = 0
	dup.DownloadCount = 0
	dup.Rating = 0
	dup.Visibility = domain.VisibilityPrivate
	dup.CreatedByID = cmd.RequestedBy
	dup.CreatedByName = cmd.RequestedName
	dup.BasedOnConfigID = nil
	dup.IsActive = false

	if err := h.repo.Create(&dup); err != nil {
		return nil, fmt.Errorf("failed to duplicate template: %w", err)
	}

	return &dup, nil
}
