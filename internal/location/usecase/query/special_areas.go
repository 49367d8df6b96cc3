package query

import (
	"context"
	"fmt"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/location/domain"
)

// SpecialAreasQuery projects the live special areas of a warehouse from
// its location rows.
type SpecialAreasQuery struct {
	WarehouseID string
}

// SpecialAreasHandler handles the live special-area projection. It also
// implements the warehouse service's AreaReader port.
type SpecialAreasHandler struct {
	repo domain.LocationRepository
}

// NewSpecialAreasHandler creates a new special areas handler
func NewSpecialAreasHandler(repo domain.LocationRepository) *SpecialAreasHandler {
	return &SpecialAreasHandler{repo: repo}
}

// Handle executes the special areas query. Storage rows are filtered
// out; everything else is copied verbatim into the area shape.
func (h *SpecialAreasHandler) Handle(query SpecialAreasQuery) ([]layout.SpecialArea, error) {
	if query.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}

	locations, err := h.repo.FindAll(domain.ListFilter{WarehouseID: query.WarehouseID})
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	rows := make([]layout.AreaRow, 0, len(locations))
	for i := range locations {
		rows = append(rows, locations[i].AreaRow())
	}

	return layout.LocationsToSpecialAreas(rows), nil
}

// LiveSpecialAreas implements the AreaReader port.
func (h *SpecialAreasHandler) LiveSpecialAreas(ctx context.Context, warehouseID string) ([]layout.SpecialArea, error) {
	return h.Handle(SpecialAreasQuery{WarehouseID: warehouseID})
}
