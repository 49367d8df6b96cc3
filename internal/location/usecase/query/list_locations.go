package query

import (
	"fmt"
	"strconv"

	"github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/pkg/fetchguard"
)

// ListLocationsQuery lists locations of a warehouse with filters.
type ListLocationsQuery struct {
	WarehouseID  string
	LocationType string
	Zone         string
	Aisle        *int
	Search       string
	Limit        int
	Offset       int
}

// ListResult carries a page of locations plus the unpaged total.
type ListResult struct {
	Locations []domain.Location `json:"locations"`
	Total     int64             `json:"total"`
}

// ListLocationsHandler handles listing locations. Identical concurrent
// listings share one database round trip through the guard; location
// lists are large and the UI refetches them aggressively.
type ListLocationsHandler struct {
	repo  domain.LocationRepository
	guard *fetchguard.Guard
}

// NewListLocationsHandler creates a new list locations handler
func NewListLocationsHandler(repo domain.LocationRepository) *ListLocationsHandler {
	return &ListLocationsHandler{
		repo:  repo,
		guard: fetchguard.NewGuard(),
	}
}

// Handle executes the list locations query
func (h *ListLocationsHandler) Handle(query ListLocationsQuery) (*ListResult, error) {
	if query.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}

	key := h.key(query)
	v, _, err := h.guard.Do(key, func() (interface{}, error) {
		filter := domain.ListFilter{
			WarehouseID:  query.WarehouseID,
			LocationType: query.LocationType,
			Zone:         query.Zone,
			Aisle:        query.Aisle,
			Search:       query.Search,
			Limit:        query.Limit,
			Offset:       query.Offset,
		}

		locations, err := h.repo.FindAll(filter)
		if err != nil {
			return nil, err
		}
		total, err := h.repo.Count(filter)
		if err != nil {
			return nil, err
		}
		return &ListResult{Locations: locations, Total: total}, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*ListResult), nil
}

func (h *ListLocationsHandler) key(query ListLocationsQuery) string {
	params := map[string]string{
		"warehouse": query.WarehouseID,
		"type":      query.LocationType,
		"zone":      query.Zone,
		"search":    query.Search,
		"limit":     strconv.Itoa(query.Limit),
		"offset":    strconv.Itoa(query.Offset),
	}
	if query.Aisle != nil {
		params["aisle"] = strconv.Itoa(*query.Aisle)
	}
	return fetchguard.Key("locations", params)
}
