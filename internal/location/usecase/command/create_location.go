package command

import (
	"fmt"
	"strings"

	"github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

// CreateLocationCommand adds a single location row to a warehouse.
type CreateLocationCommand struct {
	WarehouseID  string
	Code         string
	LocationType string
	Zone         string

	Aisle    *int
	Rack     *int
	Position *int
	Level    *string

	PalletCapacity int
}

// CreateLocationHandler handles single location creation
type CreateLocationHandler struct {
	repo domain.LocationRepository
}

// NewCreateLocationHandler creates a new create location handler
func NewCreateLocationHandler(repo domain.LocationRepository) *CreateLocationHandler {
	return &CreateLocationHandler{repo: repo}
}

// Handle executes the create location command
func (h *CreateLocationHandler) Handle(cmd CreateLocationCommand) (*domain.Location, error) {
	location, err := buildLocation(cmd)
	if err != nil {
		return nil, err
	}

	if _, err := h.repo.FindByCode(cmd.WarehouseID, location.Code); err == nil {
		return nil, &apperror.ConflictError{
			Resource: "location",
			Detail:   fmt.Sprintf("code %q already exists in warehouse %q", location.Code, cmd.WarehouseID),
		}
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := h.repo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

func buildLocation(cmd CreateLocationCommand) (*domain.Location, error) {
	verr := apperror.NewValidationError()

	code := strings.ToUpper(strings.TrimSpace(cmd.Code))
	if code == "" {
		verr.Add("code", "code is required")
	}
	if cmd.WarehouseID == "" {
		verr.Add("warehouse_id", "warehouse id is required")
	}

	locationType := cmd.LocationType
	if locationType == "" {
		locationType = domain.TypeStorage
	}
	switch locationType {
	case domain.TypeStorage, domain.TypeReceiving, domain.TypeStaging, domain.TypeDock, domain.TypeTransitional:
	default:
		verr.Add("location_type", fmt.Sprintf("unknown type %q", cmd.LocationType))
	}

	if locationType == domain.TypeStorage {
		if cmd.Aisle == nil || cmd.Rack == nil || cmd.Position == nil || cmd.Level == nil {
			verr.Add("coordinates", "storage locations need aisle, rack, position and level")
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	zone := cmd.Zone
	if zone == "" {
		zone = "MAIN"
	}
	capacity := cmd.PalletCapacity
	if capacity <= 0 {
		capacity = 1
	}

	return &domain.Location{
		WarehouseID:    cmd.WarehouseID,
		Code:           code,
		LocationType:   locationType,
		Zone:           zone,
		Aisle:          cmd.Aisle,
		Rack:           cmd.Rack,
		Position:       cmd.Position,
		Level:          cmd.Level,
		PalletCapacity: capacity,
		IsActive:       true,
	}, nil
}
