package command

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// SyncAreasCommand replaces a template's special-area snapshot with the
// live areas projected from a warehouse's Location rows. Locations are
// the source of truth; the snapshot is a cache recomputed on read, never
// merged back.
type SyncAreasCommand struct {
	TemplateID uint
	Areas      []layout.SpecialArea
}

// SyncAreasHandler handles special-area snapshot resynchronization
type SyncAreasHandler struct {
	repo domain.TemplateRepository
}

// NewSyncAreasHandler creates a new sync areas handler
func NewSyncAreasHandler(repo domain.TemplateRepository) *SyncAreasHandler {
	return &SyncAreasHandler{repo: repo}
}

// Handle executes the sync areas command
func (h *SyncAreasHandler) Handle(cmd SyncAreasCommand) (*domain.WarehouseTemplate, error) {
	if cmd.TemplateID == 0 {
		return nil, fmt.Errorf("invalid template id")
	}

	template, err := h.repo.FindByID(cmd.TemplateID)
	if err != nil {
		return nil, err
	}

	if err := template.SetSpecialAreas(cmd.Areas); err != nil {
		return nil, fmt.Errorf("failed to encode special areas: %w", err)
	}

	if err := h.repo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to sync special areas: %w", err)
	}

	return template, nil
}
