package command

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/template/domain"
)

// DeleteTemplateCommand represents the command to delete a template
type DeleteTemplateCommand struct {
	ID          uint
	RequestedBy uint
}

// DeleteTemplateHandler handles template deletion
type DeleteTemplateHandler struct {
	repo domain.TemplateRepository
}

// NewDeleteTemplateHandler creates a new delete template handler
func NewDeleteTemplateHandler(repo domain.TemplateRepository) *DeleteTemplateHandler {
	return &DeleteTemplateHandler{repo: repo}
}

// Handle soft-deletes a template. Templates applied by live warehouses
// keep working: configurations carry their own structural copy, so the
// delete only removes the blueprint from listings.
func (h *DeleteTemplateHandler) Handle(cmd DeleteTemplateCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid template id")
	}

	template, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if template.CreatedByID != cmd.RequestedBy {
		return fmt.Errorf("only the template creator can delete it")
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}
