package command

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/location/domain"
)

// UpdateLocationCommand edits a location row. Nil pointers mean "no
// change". Code and warehouse are immutable; delete and recreate to
// move a slot.
type UpdateLocationCommand struct {
	ID uint

	Zone           *string
	PalletCapacity *int
	IsActive       *bool
}

// UpdateLocationHandler handles location updates
type UpdateLocationHandler struct {
	repo domain.LocationRepository
}

// NewUpdateLocationHandler creates a new update location handler
func NewUpdateLocationHandler(repo domain.LocationRepository) *UpdateLocationHandler {
	return &UpdateLocationHandler{repo: repo}
}

// Handle executes the update location command
func (h *UpdateLocationHandler) Handle(cmd UpdateLocationCommand) (*domain.Location, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid location id")
	}

	location, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Zone != nil {
		location.Zone = *cmd.Zone
	}
	if cmd.PalletCapacity != nil {
		if *cmd.PalletCapacity < 0 {
			return nil, fmt.Errorf("pallet capacity must not be negative")
		}
		location.PalletCapacity = *cmd.PalletCapacity
	}
	if cmd.IsActive != nil {
		location.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return location, nil
}
