package command

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/location/domain"
)

// DeleteLocationCommand removes a single location row.
type DeleteLocationCommand struct {
	ID uint
}

// DeleteLocationHandler handles location deletion
type DeleteLocationHandler struct {
	repo domain.LocationRepository
}

// NewDeleteLocationHandler creates a new delete location handler
func NewDeleteLocationHandler(repo domain.LocationRepository) *DeleteLocationHandler {
	return &DeleteLocationHandler{repo: repo}
}

// Handle executes the delete location command
func (h *DeleteLocationHandler) Handle(cmd DeleteLocationCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid location id")
	}

	if _, err := h.repo.FindByID(cmd.ID); err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}
