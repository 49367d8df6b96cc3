package command

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/pkg/apperror"
)

// BulkCreateCommand inserts a batch of location rows. Rows that fail
// validation or collide on code are reported individually; the rest are
// still created.
type BulkCreateCommand struct {
	WarehouseID string
	Locations   []CreateLocationCommand
}

// BulkResult summarizes a bulk insert.
type BulkResult struct {
	CreatedCount int                `json:"created_count"`
	ErrorCount   int                `json:"error_count"`
	Errors       []domain.BulkError `json:"errors,omitempty"`
}

// BulkCreateHandler handles batched location creation
type BulkCreateHandler struct {
	repo domain.LocationRepository
}

// NewBulkCreateHandler creates a new bulk create handler
func NewBulkCreateHandler(repo domain.LocationRepository) *BulkCreateHandler {
	return &BulkCreateHandler{repo: repo}
}

// Handle executes the bulk create command
func (h *BulkCreateHandler) Handle(cmd BulkCreateCommand) (*BulkResult, error) {
	if cmd.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}
	if len(cmd.Locations) == 0 {
		return nil, fmt.Errorf("no locations given")
	}

	result := &BulkResult{}
	rows := make([]domain.Location, 0, len(cmd.Locations))
	seen := make(map[string]bool, len(cmd.Locations))

	for _, item := range cmd.Locations {
		item.WarehouseID = cmd.WarehouseID

		location, err := buildLocation(item)
		if err != nil {
			result.Errors = append(result.Errors, domain.BulkError{
				Code:  item.Code,
				Error: err.Error(),
			})
			continue
		}

		if seen[location.Code] {
			result.Errors = append(result.Errors, domain.BulkError{
				Code:  location.Code,
				Error: "duplicate code within batch",
			})
			continue
		}
		seen[location.Code] = true

		if _, err := h.repo.FindByCode(cmd.WarehouseID, location.Code); err == nil {
			result.Errors = append(result.Errors, domain.BulkError{
				Code:  location.Code,
				Error: "code already exists",
			})
			continue
		} else if !apperror.IsNotFound(err) {
			return nil, err
		}

		rows = append(rows, *location)
	}

	if len(rows) > 0 {
		created, insertErrs, err := h.repo.BulkCreate(rows)
		if err != nil {
			return nil, fmt.Errorf("bulk insert failed: %w", err)
		}
		result.CreatedCount = created
		result.Errors = append(result.Errors, insertErrs...)
	}

	result.ErrorCount = len(result.Errors)
	return result, nil
}
