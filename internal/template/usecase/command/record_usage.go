package command

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// RecordUsageCommand bumps a template's usage counter. Issued once per
// successful apply, driven by template.applied events; never by
// previews or validations.
type RecordUsageCommand struct {
	TemplateID uint
}

// RecordUsageHandler handles usage counting
type RecordUsageHandler struct {
	repo domain.TemplateRepository
}

// NewRecordUsageHandler creates a new record usage handler
func NewRecordUsageHandler(repo domain.TemplateRepository) *RecordUsageHandler {
	return &RecordUsageHandler{repo: repo}
}

// Handle executes the record usage command
func (h *RecordUsageHandler) Handle(cmd RecordUsageCommand) error {
	if cmd.TemplateID == 0 {
		return fmt.Errorf("invalid template id")
	}
	if err := h.repo.IncrementUsage(cmd.TemplateID); err != nil {
		return fmt.Errorf("failed to increment usage count: %w", err)
	}
	return nil
}
